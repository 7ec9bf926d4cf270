package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/ytmkit/ytmkit/internal/cookies"
	"github.com/ytmkit/ytmkit/internal/shared"
)

// reloadConfig replaces the runner's configuration when the flagged file exists.
func (r *Runner) reloadConfig(path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, keeping current", "path", path, "error", err)
		return
	}
	r.config = config
}

// CookiesValidate checks the stored cookie set for expiry.
func (r *Runner) CookiesValidate(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	path := r.config.Cookies.Path
	set, err := cookies.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load cookies from %s: %w", path, err)
	}

	v := cookies.Validate(set, r.config.Cookies.RefreshLead.Std())

	if v.Valid {
		r.writePlain("✓ Cookies valid (%d cookies)\n", len(set))
	} else {
		r.writePlain("✗ Cookies invalid: %s\n", v.Message)
	}
	if v.ExpiringSoon {
		r.writePlain("⚠ Expiring soon\n")
	}
	if !v.NearestExpiry.IsZero() {
		r.writePlain("Nearest expiry: %s\n", v.NearestExpiry.Format(time.RFC3339))
	}

	if !v.Valid {
		return fmt.Errorf("%w: %s", shared.ErrInvalidInput, v.Message)
	}
	return nil
}

// CookiesRefresh re-acquires cookies through an automated browser session.
func (r *Runner) CookiesRefresh(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	if cmd.Bool("headful") {
		r.config.Cookies.Headless = false
	}

	manager := r.ensureManager()

	budget := r.config.Cookies.NavTimeout.Std() + r.config.Cookies.LoginTimeout.Std() + time.Minute
	refreshCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	r.logger.Info("refreshing cookies", "headless", r.config.Cookies.Headless)

	set, err := manager.Refresh(refreshCtx)
	if err != nil {
		if errors.Is(err, shared.ErrAutomationUnavailable) {
			r.writePlain("✗ No browser automation available.\n")
			r.writePlain("Opening %s so you can sign in and export cookies manually,\n", cookies.DefaultOrigin)
			r.writePlain("then import them with 'ytmkit cookies import --curl-file <file>'.\n")
			if openErr := shared.OpenBrowser(cookies.DefaultOrigin); openErr != nil {
				r.logger.Warn("failed to open browser", "error", openErr)
			}
		}
		return err
	}

	r.writePlain("✓ Cookies refreshed (%d cookies)\n", len(set))
	if v := cookies.Validate(set, r.config.Cookies.RefreshLead.Std()); !v.NearestExpiry.IsZero() {
		r.writePlain("Nearest expiry: %s\n", v.NearestExpiry.Format(time.RFC3339))
	}
	return nil
}

// CookiesImport builds a cookie file from a copied cURL command.
func (r *Runner) CookiesImport(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	curlCmd := cmd.String("curl")
	curlFile := cmd.String("curl-file")

	if curlCmd == "" && curlFile == "" {
		return fmt.Errorf("%w: either --curl or --curl-file must be provided", shared.ErrMissingArgument)
	}
	if curlCmd != "" && curlFile != "" {
		return fmt.Errorf("%w: cannot specify both --curl and --curl-file", shared.ErrInvalidInput)
	}

	var headers *shared.CurlHeaders
	var err error
	if curlFile != "" {
		headers, err = shared.ParseCurlFile(curlFile)
	} else {
		headers, err = shared.ParseCurlCommand([]byte(curlCmd))
	}
	if err != nil {
		return fmt.Errorf("failed to parse cURL input: %w", err)
	}

	pairs := headers.CookiePairs()
	if len(pairs) == 0 {
		return fmt.Errorf("%w: no Cookie header found in cURL input", shared.ErrInvalidInput)
	}

	set := cookies.FromPairs(pairs, ".youtube.com")
	path := r.config.Cookies.Path
	if err := cookies.Save(path, set); err != nil {
		return fmt.Errorf("failed to save cookies: %w", err)
	}

	r.logger.Info("cookies imported", "count", len(set), "path", path)
	r.writePlain("✓ Imported %d cookies to %s\n", len(set), path)
	r.writePlain("Note: imported cookies are session-scoped; expiry tracking begins after the next refresh.\n")
	return nil
}

// CookiesWatch runs the periodic refresh scheduler until interrupted.
func (r *Runner) CookiesWatch(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	manager := r.ensureManager()

	unsubscribe := manager.Subscribe(cookies.ObserverFuncs{
		OnUpdated: func(set cookies.Set) {
			r.writePlain("[%s] refreshed %d cookies\n", time.Now().Format(time.TimeOnly), len(set))
		},
		OnError: func(err error) {
			r.writePlain("[%s] refresh failed: %v\n", time.Now().Format(time.TimeOnly), err)
		},
	})
	defer unsubscribe()

	manager.StartAutoRefresh()
	defer manager.StopAutoRefresh()

	r.writePlain("Watching cookies every %s (ctrl+c to stop)\n", r.config.Cookies.RefreshInterval.Std())

	watchCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-watchCtx.Done()

	r.writePlain("\nStopped\n")
	return nil
}
