package tasks

import (
	"fmt"

	"github.com/ytmkit/ytmkit/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ResolveInput Phase = iota
	FetchStreams
)

func (p Phase) String() string {
	switch p {
	case ResolveInput:
		return "resolve_input"
	case FetchStreams:
		return "fetch_streams"
	default:
		return ""
	}
}

func resolvingUpdate(input string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveInput,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Resolving %s...", input),
	}
}

func resolvedUpdate(resolved *models.Resolved) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveInput,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Resolved %s", resolved),
		Data:    resolved,
	}
}

func fetchStreamUpdate(step, total int, song *models.Song) ProgressUpdate {
	if song == nil {
		return ProgressUpdate{
			Phase:   FetchStreams,
			Step:    step,
			Total:   total,
			Message: "Fetching stream URLs...",
		}
	}
	return ProgressUpdate{
		Phase:   FetchStreams,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s - %s", step, total, song.Artist, song.Title),
	}
}

func streamFailedUpdate(step, total int, song *models.Song, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchStreams,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, song.Title, err),
	}
}
