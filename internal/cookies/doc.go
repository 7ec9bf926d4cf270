// Package cookies implements the browser-cookie lifecycle: load, validate,
// persist, and periodically re-acquire the credential set used to
// authenticate stream fetches.
//
// # Lifecycle
//
// A [Set] is loaded from a JSON file (browser cookie-export layout) or
// supplied inline, replaced wholesale on each successful refresh, and never
// partially mutated. [Validate] derives a freshness report without touching
// state; [Manager.Refresh] re-acquires the set through an automated browser
// session supplied by an injected [Driver].
//
// # Failure policy
//
// No operation lets an internal failure escape as a panic or surprise
// error: file problems degrade to an empty set plus a logged
// [shared.ErrCredentialIO]; a missing driver is the typed
// [shared.ErrAutomationUnavailable]; refresh failures flow to subscribers
// via [Observer.RefreshFailed] and leave the cookie file untouched.
//
// # Scheduling
//
// [Manager.StartAutoRefresh] runs a fixed-interval check that refreshes
// only when the set is invalid or expiring within the configured lead.
// Refreshes are deliberately not serialized against manual calls: the last
// save wins on the cookie file.
package cookies
