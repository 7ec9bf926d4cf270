// Package models defines the host-facing value objects produced by resolution.
//
// The package contains two categories of types:
//
// 1. Value objects handed to the host queue framework:
//   - [Song] : a single playable track with a stream-resolvable video ID
//   - [Playlist] : an ordered collection of songs (playlist, album, or artist catalog)
//   - [Resolved] : the tagged union returned by resolve operations
//
// 2. Classification enums shared across packages:
//   - [Kind] : what a URL points at (video, playlist, album, artist)
//   - [SearchType] : which search index a free-text query targets
//
// Field mapping policy is applied uniformly by the source package: missing
// titles become [UnknownTitle], missing artists become [UnknownArtist],
// thumbnails take the last (highest resolution) entry of the upstream
// thumbnail sequence, and colon-delimited durations are parsed into seconds.
package models
