package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/ytmkit/ytmkit/internal/models"
	"github.com/ytmkit/ytmkit/internal/shared"
	"github.com/ytmkit/ytmkit/internal/source"
)

// parseSearchType maps a CLI type flag onto a search index.
func parseSearchType(value string) (models.SearchType, error) {
	switch value {
	case "song", "songs", "":
		return models.SearchSongs, nil
	case "album", "albums":
		return models.SearchAlbums, nil
	case "playlist", "playlists":
		return models.SearchPlaylists, nil
	case "artist", "artists":
		return models.SearchArtists, nil
	default:
		return "", fmt.Errorf("%w: unknown search type %q", shared.ErrInvalidInput, value)
	}
}

// Search runs a typed search and prints the results.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: query argument is required", shared.ErrMissingArgument)
	}

	searchType, err := parseSearchType(cmd.String("type"))
	if err != nil {
		return err
	}

	if err := r.ensureSource(ctx); err != nil {
		return err
	}

	r.logger.Info("searching", "query", query, "type", searchType)

	if cmd.Bool("first") {
		song := r.source.SearchSong(ctx, query)
		if song == nil {
			r.writePlain("No match found\n")
			return nil
		}
		if cmd.Bool("json") {
			return r.writeJSON(song, cmd.Bool("pretty"))
		}
		r.printSong(*song)
		return nil
	}

	songs := r.source.Search(ctx, query, source.SearchOptions{
		Type:  searchType,
		Limit: cmd.Int("limit"),
	})

	if cmd.Bool("json") {
		return r.writeJSON(songs, cmd.Bool("pretty"))
	}

	if len(songs) == 0 {
		r.writePlain("No results\n")
		return nil
	}

	for i, song := range songs {
		line := fmt.Sprintf("%d. %s - %s", i+1, song.Artist, song.Title)
		if song.Duration > 0 {
			line += fmt.Sprintf(" [%s]", shared.FormatDuration(song.Duration))
		}
		r.writePlain("%s\n   %s\n", line, song.URL)
	}
	return nil
}
