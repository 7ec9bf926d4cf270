package source

import (
	"testing"

	"github.com/ytmkit/ytmkit/internal/models"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name  string
		input string
		kind  models.Kind
		id    string
	}{
		{
			name:  "playlist param",
			input: "https://music.youtube.com/playlist?list=PLabc123_-XYZ",
			kind:  models.KindPlaylist,
			id:    "PLabc123_-XYZ",
		},
		{
			name:  "playlist param after other params",
			input: "https://music.youtube.com/watch?v=dQw4w9WgXcQ&list=RDAMVMdQw4w9WgXcQ",
			kind:  models.KindPlaylist,
			id:    "RDAMVMdQw4w9WgXcQ",
		},
		{
			name:  "album browse path",
			input: "https://music.youtube.com/browse/MPREb_9nqEki4ZDpp",
			kind:  models.KindAlbum,
			id:    "MPREb_9nqEki4ZDpp",
		},
		{
			name:  "album path alias",
			input: "https://music.youtube.com/album/MPREb_9nqEki4ZDpp",
			kind:  models.KindAlbum,
			id:    "MPREb_9nqEki4ZDpp",
		},
		{
			name:  "artist channel path",
			input: "https://music.youtube.com/channel/UCmMUZbaYdNH0bEd1PAlAqsA",
			kind:  models.KindArtist,
			id:    "UCmMUZbaYdNH0bEd1PAlAqsA",
		},
		{
			name:  "watch url",
			input: "https://music.youtube.com/watch?v=dQw4w9WgXcQ",
			kind:  models.KindVideo,
			id:    "dQw4w9WgXcQ",
		},
		{
			name:  "short url",
			input: "https://youtu.be/dQw4w9WgXcQ",
			kind:  models.KindVideo,
			id:    "dQw4w9WgXcQ",
		},
		{
			name:  "bare video id",
			input: "dQw4w9WgXcQ",
			kind:  models.KindVideo,
			id:    "dQw4w9WgXcQ",
		},
		{
			name:  "unrecognized input",
			input: "https://x.co/a",
			kind:  models.KindVideo,
			id:    "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			target := Classify(tc.input)
			if target.Kind != tc.kind {
				t.Errorf("Classify(%q).Kind = %v, want %v", tc.input, target.Kind, tc.kind)
			}
			if target.ID != tc.id {
				t.Errorf("Classify(%q).ID = %q, want %q", tc.input, target.ID, tc.id)
			}
		})
	}

	t.Run("playlist outranks video id", func(t *testing.T) {
		target := Classify("https://music.youtube.com/watch?v=dQw4w9WgXcQ&list=PLlist")
		if target.Kind != models.KindPlaylist {
			t.Errorf("expected playlist classification, got %v", target.Kind)
		}
	})
}
