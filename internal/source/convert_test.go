package source

import (
	"testing"
	"time"

	"github.com/kkdai/youtube/v2"

	"github.com/ytmkit/ytmkit/internal/models"
	"github.com/ytmkit/ytmkit/internal/musicapi"
)

func track(id, title string, artists ...string) musicapi.Track {
	t := musicapi.Track{VideoID: id, Title: title}
	for _, name := range artists {
		t.Artists = append(t.Artists, musicapi.Artist{Name: name})
	}
	return t
}

func TestSongFromTrack(t *testing.T) {
	t.Run("full track", func(t *testing.T) {
		in := track("abc123def45", "Song Title", "Artist A", "Artist B")
		in.DurationSec = 215
		in.Album = &musicapi.AlbumRef{Name: "The Album"}
		in.Thumbnails = []musicapi.Image{
			{URL: "https://i.ytimg.com/small.jpg", Width: 60},
			{URL: "https://i.ytimg.com/large.jpg", Width: 544},
		}

		song, ok := songFromTrack(in)
		if !ok {
			t.Fatal("expected convertible track")
		}
		if song.ID != "abc123def45" || song.Title != "Song Title" {
			t.Errorf("unexpected identity: %+v", song)
		}
		if song.Artist != "Artist A, Artist B" {
			t.Errorf("Artist = %q", song.Artist)
		}
		if song.Album != "The Album" {
			t.Errorf("Album = %q", song.Album)
		}
		if song.Duration != 215 {
			t.Errorf("Duration = %d", song.Duration)
		}
		if song.Thumbnail != "https://i.ytimg.com/large.jpg" {
			t.Errorf("Thumbnail = %q, want largest", song.Thumbnail)
		}
		if song.URL != models.WatchURL("abc123def45") {
			t.Errorf("URL = %q", song.URL)
		}
	})

	t.Run("missing video id is not convertible", func(t *testing.T) {
		if _, ok := songFromTrack(track("", "Unstreamable")); ok {
			t.Error("expected conversion to fail without a video id")
		}
	})

	t.Run("placeholders for missing metadata", func(t *testing.T) {
		song, ok := songFromTrack(track("abc123def45", ""))
		if !ok {
			t.Fatal("expected convertible track")
		}
		if song.Title != models.UnknownTitle {
			t.Errorf("Title = %q, want placeholder", song.Title)
		}
		if song.Artist != models.UnknownArtist {
			t.Errorf("Artist = %q, want placeholder", song.Artist)
		}
	})

	t.Run("clock duration fallback", func(t *testing.T) {
		in := track("abc123def45", "Timed")
		in.Duration = "3:45"
		song, _ := songFromTrack(in)
		if song.Duration != 225 {
			t.Errorf("Duration = %d, want 225", song.Duration)
		}
	})
}

func TestSongFromVideo(t *testing.T) {
	video := &youtube.Video{
		ID:       "abc123def45",
		Title:    "Video Title",
		Author:   "Channel Name",
		Duration: 3*time.Minute + 30*time.Second,
		Thumbnails: youtube.Thumbnails{
			{URL: "https://i.ytimg.com/small.jpg"},
			{URL: "https://i.ytimg.com/large.jpg"},
		},
	}

	song := songFromVideo(video)
	if song.ID != "abc123def45" || song.Title != "Video Title" {
		t.Errorf("unexpected identity: %+v", song)
	}
	if song.Artist != "Channel Name" {
		t.Errorf("Artist = %q", song.Artist)
	}
	if song.Duration != 210 {
		t.Errorf("Duration = %d, want 210", song.Duration)
	}
	if song.Thumbnail != "https://i.ytimg.com/large.jpg" {
		t.Errorf("Thumbnail = %q", song.Thumbnail)
	}
}

func TestConvertTracks(t *testing.T) {
	tracks := []musicapi.Track{
		track("id00000000a", "First", "A"),
		track("", "Dropped"),
		track("id00000000b", "Second", "B"),
		track("id00000000c", "Third", "C"),
	}

	for _, concurrent := range []bool{false, true} {
		name := "sequential"
		if concurrent {
			name = "concurrent"
		}
		t.Run(name, func(t *testing.T) {
			songs := convertTracks(tracks, 0, concurrent)
			if len(songs) != 3 {
				t.Fatalf("got %d songs, want 3", len(songs))
			}
			for i, want := range []string{"First", "Second", "Third"} {
				if songs[i].Title != want {
					t.Errorf("songs[%d].Title = %q, want %q", i, songs[i].Title, want)
				}
			}
		})
	}

	t.Run("limit truncates before conversion", func(t *testing.T) {
		songs := convertTracks(tracks, 2, false)
		// The cap applies to the raw track list, so the unconvertible
		// second entry still consumes a slot.
		if len(songs) != 1 {
			t.Fatalf("got %d songs, want 1", len(songs))
		}
		if songs[0].Title != "First" {
			t.Errorf("songs[0].Title = %q", songs[0].Title)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if songs := convertTracks(nil, 10, true); len(songs) != 0 {
			t.Errorf("got %d songs, want 0", len(songs))
		}
	})
}
