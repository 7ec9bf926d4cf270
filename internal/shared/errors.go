package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Caller-input errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")

	// Resolution errors
	ErrUpstreamFetch     = fmt.Errorf("upstream fetch failed")
	ErrNoPlayableContent = fmt.Errorf("no playable content")
	ErrNoAudioFormat     = fmt.Errorf("No suitable audio format found")
	ErrNotInitialized    = fmt.Errorf("source not initialized")
	ErrInitFailed        = fmt.Errorf("source initialization failed")

	// Cookie lifecycle errors
	ErrCredentialIO          = fmt.Errorf("credential file I/O failed")
	ErrAutomationUnavailable = fmt.Errorf("browser automation unavailable")
	ErrNavigationTimeout     = fmt.Errorf("navigation timed out")
)
