package source

import (
	"regexp"

	"github.com/ytmkit/ytmkit/internal/models"
	"github.com/ytmkit/ytmkit/internal/stream"
)

// Target is the classification of an input identifier. ID may be empty
// when the input matched no extractable identifier; callers must treat
// that as their error, not substitute a default.
type Target struct {
	Kind models.Kind
	ID   string
}

var (
	playlistParamRe = regexp.MustCompile(`[?&]list=([A-Za-z0-9_-]+)`)
	albumPathRe     = regexp.MustCompile(`/(?:browse|album)/(MPREb[A-Za-z0-9_-]+)`)
	artistPathRe    = regexp.MustCompile(`/(?:channel|artist)/(UC[A-Za-z0-9_-]+)`)
)

// Classify pattern-matches an identifier in priority order: playlist query
// parameter, album path segment, artist path segment, then video-ID
// extraction. It is pure and total: every non-empty input yields exactly
// one Target, falling back to [models.KindVideo] with an empty ID.
func Classify(input string) Target {
	if m := playlistParamRe.FindStringSubmatch(input); m != nil {
		return Target{Kind: models.KindPlaylist, ID: m[1]}
	}
	if m := albumPathRe.FindStringSubmatch(input); m != nil {
		return Target{Kind: models.KindAlbum, ID: m[1]}
	}
	if m := artistPathRe.FindStringSubmatch(input); m != nil {
		return Target{Kind: models.KindArtist, ID: m[1]}
	}

	id, _ := stream.ExtractVideoID(input)
	return Target{Kind: models.KindVideo, ID: id}
}
