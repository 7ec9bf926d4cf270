// Package repositories implements SQLite persistence for resolved song metadata.
//
// The song cache is keyed by video ID and lets repeat resolutions and
// autoplay lookups skip upstream fetches entirely. Entries carry a
// cached_at timestamp so stale rows can be pruned.
//
// Key Implementations:
//   - [SongRepository] : song metadata persistence with upsert semantics
//   - [CacheAdapter] : best-effort cache facade consumed by the resolver
package repositories
