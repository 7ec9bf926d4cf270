package cookies

import (
	"context"
	"time"
)

// SessionOptions configures one automated browser session.
type SessionOptions struct {
	Headless   bool
	NavTimeout time.Duration
}

// Driver is the browser-automation capability the manager refreshes through.
//
// It is injected at construction; a nil driver makes refresh a typed
// "automation unavailable" failure rather than a caught import error.
// The rod-backed implementation lives in internal/browser.
type Driver interface {
	// Open launches an isolated browser context. The returned session must
	// be closed by the caller regardless of later failures.
	Open(ctx context.Context, opts SessionOptions) (Session, error)
}

// Session is one live browser context scoped to a single refresh attempt.
type Session interface {
	// SetCookies injects a cookie set into the context before navigation.
	SetCookies(set Set) error

	// Navigate drives the context to the given origin and waits for load.
	Navigate(ctx context.Context, url string) error

	// LoggedIn probes DOM/application state for an authenticated session.
	LoggedIn(ctx context.Context) (bool, error)

	// Cookies reads back the full cookie set from the context.
	Cookies(ctx context.Context) (Set, error)

	// Close tears the context down. Safe to call after any failure.
	Close() error
}
