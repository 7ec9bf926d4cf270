// Package tasks implements long-running resolution operations.
//
// The core abstraction is [PrefetchEngine], which resolves an identifier
// into songs and then fetches playable stream URLs for all of them with
// bounded concurrency. Operations emit progress updates via channels for
// non-blocking status reporting to CLI/UI layers.
package tasks
