package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/urfave/cli/v3"

	"github.com/ytmkit/ytmkit/internal/models"
	"github.com/ytmkit/ytmkit/internal/shared"
	"github.com/ytmkit/ytmkit/internal/source"
	"github.com/ytmkit/ytmkit/internal/tasks"
)

// Resolve turns a URL into a song or collection and prints it.
func (r *Runner) Resolve(ctx context.Context, cmd *cli.Command) error {
	input := cmd.StringArg("url")
	if input == "" {
		return fmt.Errorf("%w: url argument is required", shared.ErrMissingArgument)
	}

	if err := r.ensureSource(ctx); err != nil {
		return err
	}

	if cmd.Bool("prefetch") {
		return r.resolveWithPrefetch(ctx, input, cmd.Int("workers"))
	}

	r.logger.Info("resolving", "input", input)

	resolved, err := r.source.Resolve(ctx, input)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(resolved, cmd.Bool("pretty"))
	}

	if resolved.IsCollection() {
		r.printPlaylist(resolved.Playlist)
	} else {
		r.printSong(*resolved.Song)
	}
	return nil
}

// resolveWithPrefetch resolves and fetches stream URLs for every song,
// streaming progress to the terminal as it goes.
func (r *Runner) resolveWithPrefetch(ctx context.Context, input string, workers int) error {
	engine := tasks.NewPrefetchEngine(r.source, workers)

	progress := make(chan tasks.ProgressUpdate, 64)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := engine.Run(ctx, input, progress)
	close(progress)
	wg.Wait()
	if err != nil {
		return err
	}

	r.writePlainln("✓ Prefetch complete: %d/%d streams resolved", result.SuccessCount, result.TotalSongs)
	for _, sr := range result.Streams {
		if sr.Error != nil {
			continue
		}
		r.writePlain("%s - %s\n  %s\n", sr.Song.Artist, sr.Song.Title, sr.URL)
	}
	return nil
}

// Stream prints the playable stream URL for a video.
func (r *Runner) Stream(ctx context.Context, cmd *cli.Command) error {
	input := cmd.StringArg("url")
	if input == "" {
		return fmt.Errorf("%w: url argument is required", shared.ErrMissingArgument)
	}

	if err := r.ensureSource(ctx); err != nil {
		return err
	}

	song, err := videoTarget(input)
	if err != nil {
		return err
	}

	streamURL, err := r.source.StreamURL(ctx, song)
	if err != nil {
		return err
	}

	r.writePlain("%s\n", streamURL)
	return nil
}

// Related lists autoplay candidates for a video.
func (r *Runner) Related(ctx context.Context, cmd *cli.Command) error {
	input := cmd.StringArg("url")
	if input == "" {
		return fmt.Errorf("%w: url argument is required", shared.ErrMissingArgument)
	}

	if err := r.ensureSource(ctx); err != nil {
		return err
	}

	song, err := videoTarget(input)
	if err != nil {
		return err
	}

	related := r.source.RelatedSongs(ctx, song)
	if cmd.Bool("json") {
		return r.writeJSON(related, cmd.Bool("pretty"))
	}

	if len(related) == 0 {
		r.writePlain("No related songs found\n")
		return nil
	}

	for i, s := range related {
		r.writePlain("%d. %s - %s [%s]\n", i+1, s.Artist, s.Title, shared.FormatDuration(s.Duration))
	}
	return nil
}

// videoTarget extracts a video identity from a URL or bare ID.
func videoTarget(input string) (*models.Song, error) {
	target := source.Classify(input)
	if target.Kind != models.KindVideo || target.ID == "" {
		return nil, fmt.Errorf("%w: %q is not a video reference", shared.ErrInvalidInput, input)
	}
	return &models.Song{ID: target.ID, URL: models.WatchURL(target.ID)}, nil
}

func (r *Runner) printSong(song models.Song) {
	r.writePlain("Title: %s\n", song.Title)
	if song.Artist != "" {
		r.writePlain("Artist: %s\n", song.Artist)
	}
	if song.Album != "" {
		r.writePlain("Album: %s\n", song.Album)
	}
	r.writePlain("ID: %s\n", song.ID)
	if song.Duration > 0 {
		r.writePlain("Duration: %s\n", shared.FormatDuration(song.Duration))
	}
	r.writePlain("URL: %s\n", song.URL)
}

func (r *Runner) printPlaylist(playlist *models.Playlist) {
	kind := strings.ToUpper(playlist.Kind.String()[:1]) + playlist.Kind.String()[1:]
	r.writePlain("%s: %s\n", kind, playlist.Name)
	r.writePlain("ID: %s\n", playlist.ID)
	r.writePlain("Songs: %d\n\n", len(playlist.Songs))
	for i, song := range playlist.Songs {
		r.writePlain("%d. %s - %s [%s]\n", i+1, song.Artist, song.Title, shared.FormatDuration(song.Duration))
	}
}
