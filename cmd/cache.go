package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/ytmkit/ytmkit/internal/shared"
)

// CacheList prints recently cached songs.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	repo := r.ensureRepo()
	if repo == nil {
		return fmt.Errorf("%w: song cache disabled (set database.path)", shared.ErrMissingConfig)
	}

	songs, err := repo.List(cmd.Int("limit"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, true)
	}

	count, err := repo.Count()
	if err != nil {
		return err
	}

	r.writePlain("Cached songs: %d\n\n", count)
	for i, song := range songs {
		r.writePlain("%d. %s - %s (%s)\n", i+1, song.Artist, song.Title, song.ID)
	}
	return nil
}

// CachePrune deletes stale cache entries.
func (r *Runner) CachePrune(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	repo := r.ensureRepo()
	if repo == nil {
		return fmt.Errorf("%w: song cache disabled (set database.path)", shared.ErrMissingConfig)
	}

	olderThan, err := time.ParseDuration(cmd.String("older-than"))
	if err != nil {
		return fmt.Errorf("%w: bad --older-than value: %v", shared.ErrInvalidInput, err)
	}

	removed, err := repo.Prune(olderThan)
	if err != nil {
		return err
	}

	r.logger.Info("cache pruned", "removed", removed, "older_than", olderThan)
	r.writePlain("✓ Pruned %d songs older than %s\n", removed, olderThan)
	return nil
}
