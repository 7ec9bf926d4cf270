package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/ytmkit/ytmkit/internal/shared"
	"github.com/ytmkit/ytmkit/internal/ui"
)

// TUI launches the interactive search picker.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
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

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/ytmkit-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.source, query, searchType, cmd.Int("limit"))
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	if song := model.Selected(); song != nil {
		r.writePlain("%s - %s\n%s\n", song.Artist, song.Title, song.URL)
	}

	return nil
}
