package cookies

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ytmkit/ytmkit/internal/shared"
)

// Load reads a cookie set from the given path.
//
// A missing file is not an error: it yields an empty set, which callers
// must treat as "no usable credentials". Malformed content yields an empty
// set plus a [shared.ErrCredentialIO] so the failure can be reported
// without breaking the caller.
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Set{}, nil
		}
		return Set{}, fmt.Errorf("%w: read %s: %w", shared.ErrCredentialIO, path, err)
	}

	var set Set
	if err := json.Unmarshal(data, &set); err != nil {
		return Set{}, fmt.Errorf("%w: parse %s: %w", shared.ErrCredentialIO, path, err)
	}

	return set, nil
}

// Save serializes the set to path, replacing any previous content.
//
// The write goes through a temp file in the same directory followed by a
// rename, so a crash mid-write never leaves a truncated cookie file.
func Save(path string, set Set) error {
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %w", shared.ErrCredentialIO, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".cookies-*.json")
	if err != nil {
		return fmt.Errorf("%w: create temp in %s: %w", shared.ErrCredentialIO, dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %w", shared.ErrCredentialIO, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close %s: %w", shared.ErrCredentialIO, tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename to %s: %w", shared.ErrCredentialIO, path, err)
	}

	return nil
}
