// Package musicapi defines the [API] boundary to the YouTube Music catalog
// and implements it with a rate-limited HTTP client.
//
// # Boundary contract
//
// Every lookup returns either a populated result or (nil, nil) when the
// catalog has nothing for the identifier; "nothing found" is never an
// error. Network and decode failures are errors and carry the upstream
// message verbatim.
//
// # Implementation
//
// [Client] talks to a ytmusicapi-compatible proxy over JSON. When no proxy
// is configured, song search falls back to the built-in ytmusic client
// (github.com/raitonoberu/ytmusic) and browse lookups report the proxy as
// required.
package musicapi

import "context"

// Image is a thumbnail entry. Upstream orders thumbnails ascending by
// resolution, so the last entry is the largest.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Artist identifies one credited artist.
type Artist struct {
	Name string `json:"name"`
	ID   string `json:"id,omitempty"`
}

// AlbumRef is the album a track belongs to.
type AlbumRef struct {
	Name string `json:"name"`
	ID   string `json:"id,omitempty"`
}

// Track is the catalog's shape for a single song or video.
type Track struct {
	VideoID     string    `json:"videoId"`
	Title       string    `json:"title"`
	Artists     []Artist  `json:"artists"`
	Album       *AlbumRef `json:"album,omitempty"`
	Duration    string    `json:"duration"`         // colon-delimited, e.g. "3:45"
	DurationSec int       `json:"duration_seconds"` // preferred when non-zero
	Thumbnails  []Image   `json:"thumbnails"`
}

// PlaylistResult is a playlist with its track listing.
type PlaylistResult struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	TrackCount int     `json:"trackCount"`
	Thumbnails []Image `json:"thumbnails"`
	Tracks     []Track `json:"tracks"`
}

// AlbumResult is an album with its track listing.
type AlbumResult struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Artists    []Artist `json:"artists"`
	Year       string   `json:"year,omitempty"`
	Thumbnails []Image  `json:"thumbnails"`
	Tracks     []Track  `json:"tracks"`
}

// ArtistResult is an artist page with their top tracks.
type ArtistResult struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Thumbnails []Image `json:"thumbnails"`
	Tracks     []Track `json:"tracks"`
}

// AlbumSummary is an album search hit (no track listing).
type AlbumSummary struct {
	BrowseID   string   `json:"browseId"`
	Title      string   `json:"title"`
	Artists    []Artist `json:"artists"`
	Year       string   `json:"year,omitempty"`
	Thumbnails []Image  `json:"thumbnails"`
}

// PlaylistSummary is a playlist search hit.
type PlaylistSummary struct {
	BrowseID   string  `json:"browseId"`
	Title      string  `json:"title"`
	ItemCount  int     `json:"itemCount"`
	Thumbnails []Image `json:"thumbnails"`
}

// ArtistSummary is an artist search hit.
type ArtistSummary struct {
	BrowseID   string  `json:"browseId"`
	Name       string  `json:"artist"`
	Thumbnails []Image `json:"thumbnails"`
}

// API is the search/browse boundary the resolver depends on.
type API interface {
	// Health probes the backend; used during source initialization.
	Health(ctx context.Context) error

	Playlist(ctx context.Context, id string) (*PlaylistResult, error)
	Album(ctx context.Context, id string) (*AlbumResult, error)
	Artist(ctx context.Context, id string) (*ArtistResult, error)

	// Related returns tracks related to a video for autoplay.
	Related(ctx context.Context, videoID string) ([]Track, error)

	SearchSongs(ctx context.Context, query string) ([]Track, error)
	SearchAlbums(ctx context.Context, query string) ([]AlbumSummary, error)
	SearchPlaylists(ctx context.Context, query string) ([]PlaylistSummary, error)
	SearchArtists(ctx context.Context, query string) ([]ArtistSummary, error)
}
