package models

import "fmt"

// Placeholders substituted when upstream metadata omits a field.
const (
	UnknownTitle  = "Unknown Title"
	UnknownArtist = "Unknown Artist"
)

// Kind classifies what a YouTube Music identifier points at.
type Kind int

const (
	KindVideo Kind = iota
	KindPlaylist
	KindAlbum
	KindArtist
)

func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindPlaylist:
		return "playlist"
	case KindAlbum:
		return "album"
	case KindArtist:
		return "artist"
	default:
		return ""
	}
}

// SearchType selects which search index a free-text query runs against.
type SearchType string

const (
	SearchSongs     SearchType = "song"
	SearchAlbums    SearchType = "album"
	SearchPlaylists SearchType = "playlist"
	SearchArtists   SearchType = "artist"
)

// Song represents a single playable track with a stream-resolvable video ID.
type Song struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Album     string `json:"album,omitempty"`
	Duration  int    `json:"duration"` // Duration in seconds
	Thumbnail string `json:"thumbnail,omitempty"`
	URL       string `json:"url"`
}

// Playlist represents an ordered collection of songs: a playlist, an album,
// or an artist's catalog.
type Playlist struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Kind      Kind   `json:"-"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Songs     []Song `json:"songs"`
	URL       string `json:"url"`
}

// Resolved is the tagged union returned by resolution: exactly one of Song
// or Playlist is non-nil.
type Resolved struct {
	Song     *Song
	Playlist *Playlist
}

// IsCollection reports whether the resolution produced a playlist rather
// than a single song.
func (r *Resolved) IsCollection() bool { return r.Playlist != nil }

func (r *Resolved) String() string {
	switch {
	case r.Song != nil:
		return fmt.Sprintf("song %s (%s)", r.Song.ID, r.Song.Title)
	case r.Playlist != nil:
		return fmt.Sprintf("%s %s (%d songs)", r.Playlist.Kind, r.Playlist.ID, len(r.Playlist.Songs))
	default:
		return "empty resolution"
	}
}

// WatchURL builds the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://music.youtube.com/watch?v=" + videoID
}

// BrowseURL builds the canonical browse URL for a playlist, album, or artist ID.
func BrowseURL(kind Kind, id string) string {
	switch kind {
	case KindPlaylist:
		return "https://music.youtube.com/playlist?list=" + id
	case KindArtist:
		return "https://music.youtube.com/channel/" + id
	default:
		return "https://music.youtube.com/browse/" + id
	}
}
