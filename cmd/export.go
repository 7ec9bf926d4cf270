package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/ytmkit/ytmkit/internal/formatter"
	"github.com/ytmkit/ytmkit/internal/models"
	"github.com/ytmkit/ytmkit/internal/shared"
)

// Export resolves a collection and writes it to disk in the chosen format.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	input := cmd.StringArg("url")
	if input == "" {
		return fmt.Errorf("%w: url argument is required", shared.ErrMissingArgument)
	}

	format := cmd.String("format")
	output := cmd.String("output")

	if err := r.ensureSource(ctx); err != nil {
		return err
	}

	r.logger.Info("exporting", "input", input, "format", format)

	resolved, err := r.source.Resolve(ctx, input)
	if err != nil {
		return err
	}

	var playlist *models.Playlist
	if resolved.IsCollection() {
		playlist = resolved.Playlist
	} else {
		// Single songs export as a one-entry collection.
		playlist = &models.Playlist{
			ID:    resolved.Song.ID,
			Name:  resolved.Song.Title,
			Kind:  models.KindPlaylist,
			Songs: []models.Song{*resolved.Song},
			URL:   resolved.Song.URL,
		}
	}

	switch format {
	case "csv":
		result, err := formatter.WriteCSVExport(playlist, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d songs\n", len(playlist.Songs))
		r.writePlain("Songs: %s\n", result.SongsFile)
		r.writePlain("Metadata: %s\n", result.MetadataFile)

	case "markdown", "md":
		result, err := formatter.WriteMarkdownExport(playlist, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d songs to %s\n", len(playlist.Songs), result.Directory)
		for _, file := range result.Files {
			r.writePlain("  %s\n", file)
		}

	case "text", "txt":
		path, err := formatter.WriteTextExport(playlist, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d songs to %s\n", len(playlist.Songs), path)

	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidInput, format)
	}

	return nil
}
