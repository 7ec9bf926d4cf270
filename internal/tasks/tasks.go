package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/ytmkit/ytmkit/internal/models"
	"github.com/ytmkit/ytmkit/internal/shared"
	"github.com/ytmkit/ytmkit/internal/source"
)

// StreamResult represents the outcome of fetching one song's stream URL.
type StreamResult struct {
	Song  models.Song // Song the fetch was attempted for
	URL   string      // Playable stream URL (empty on failure)
	Error error       // Error if the fetch failed
}

// PrefetchRunResult contains all data from a full prefetch operation.
type PrefetchRunResult struct {
	Resolved     *models.Resolved // Resolution outcome (song or collection)
	Streams      []StreamResult   // Per-song fetch results in playlist order
	SuccessCount int              // Number of successfully fetched streams
	FailedCount  int              // Number of failed fetches
	TotalSongs   int              // Total songs processed
}

// Engine defines long-running resolution operations.
type Engine interface {
	// Run resolves an identifier and fetches stream URLs for every song in the result.
	Run(ctx context.Context, input string, progress chan<- ProgressUpdate) (*PrefetchRunResult, error)
}

// PrefetchEngine implements [Engine] on top of a resolution source.
//
// Stream fetches run on a bounded worker pool; results keep playlist order
// regardless of completion order.
type PrefetchEngine struct {
	src     source.Plugin
	workers int
}

// NewPrefetchEngine creates a new PrefetchEngine with the provided source.
// Worker counts below 1 default to 4.
func NewPrefetchEngine(src source.Plugin, workers int) *PrefetchEngine {
	if workers < 1 {
		workers = 4
	}
	return &PrefetchEngine{src: src, workers: workers}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *PrefetchEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run resolves the input and fetches a stream URL for every resolved song.
//
// Resolution failures abort the run; individual stream failures are
// recorded in the result and counted, not fatal.
func (e *PrefetchEngine) Run(ctx context.Context, input string, progress chan<- ProgressUpdate) (*PrefetchRunResult, error) {
	if e.src == nil {
		return nil, fmt.Errorf("%w: resolution source not initialized", shared.ErrNotInitialized)
	}

	e.sendProgress(progress, resolvingUpdate(input))

	resolved, err := e.src.Resolve(ctx, input)
	if err != nil {
		return nil, err
	}
	e.sendProgress(progress, resolvedUpdate(resolved))

	var songs []models.Song
	if resolved.IsCollection() {
		songs = resolved.Playlist.Songs
	} else {
		songs = []models.Song{*resolved.Song}
	}

	total := len(songs)
	result := &PrefetchRunResult{
		Resolved:   resolved,
		Streams:    make([]StreamResult, total),
		TotalSongs: total,
	}

	e.sendProgress(progress, fetchStreamUpdate(0, total, nil))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		step int
	)
	sem := make(chan struct{}, e.workers)

	for i := range songs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			song := songs[i]
			url, err := e.src.StreamURL(ctx, &song)

			mu.Lock()
			step++
			current := step
			result.Streams[i] = StreamResult{Song: song, URL: url, Error: err}
			if err == nil {
				result.SuccessCount++
			} else {
				result.FailedCount++
			}
			mu.Unlock()

			if err == nil {
				e.sendProgress(progress, fetchStreamUpdate(current, total, &song))
			} else {
				e.sendProgress(progress, streamFailedUpdate(current, total, &song, err))
			}
		}(i)
	}
	wg.Wait()

	return result, nil
}
