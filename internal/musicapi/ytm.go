package musicapi

import (
	"context"

	"github.com/raitonoberu/ytmusic"
)

// searchSongsDirect runs a song search through the built-in ytmusic client
// when no proxy backend is configured. Only the rate limiter honors ctx:
// the ytmusic library exposes no context API, so an in-flight search cannot
// be canceled.
func (c *Client) searchSongsDirect(ctx context.Context, query string) ([]Track, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	result, err := ytmusic.TrackSearch(query).Next()
	if err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(result.Tracks))
	for _, t := range result.Tracks {
		if t.VideoID == "" {
			continue
		}

		out := Track{
			VideoID:     t.VideoID,
			Title:       t.Title,
			DurationSec: t.Duration,
		}
		for _, a := range t.Artists {
			out.Artists = append(out.Artists, Artist{Name: a.Name})
		}
		for _, th := range t.Thumbnails {
			out.Thumbnails = append(out.Thumbnails, Image{URL: th.URL, Width: th.Width, Height: th.Height})
		}

		tracks = append(tracks, out)
	}

	c.log.Debug("direct song search", "query", query, "results", len(tracks))
	return tracks, nil
}
