package source

import (
	"strings"
	"sync"

	"github.com/kkdai/youtube/v2"

	"github.com/ytmkit/ytmkit/internal/models"
	"github.com/ytmkit/ytmkit/internal/musicapi"
	"github.com/ytmkit/ytmkit/internal/shared"
)

// songFromTrack maps one catalog track into a host song. Tracks without a
// stream identifier are not convertible.
func songFromTrack(t musicapi.Track) (models.Song, bool) {
	if t.VideoID == "" {
		return models.Song{}, false
	}

	song := models.Song{
		ID:        t.VideoID,
		Title:     t.Title,
		Artist:    joinArtists(t.Artists),
		Duration:  t.DurationSec,
		Thumbnail: lastThumbnail(t.Thumbnails),
		URL:       models.WatchURL(t.VideoID),
	}
	if song.Title == "" {
		song.Title = models.UnknownTitle
	}
	if song.Duration == 0 {
		song.Duration = shared.ParseClockDuration(t.Duration)
	}
	if t.Album != nil {
		song.Album = t.Album.Name
	}

	return song, true
}

// songFromVideo maps detailed stream-info metadata into a host song.
func songFromVideo(v *youtube.Video) models.Song {
	song := models.Song{
		ID:       v.ID,
		Title:    v.Title,
		Artist:   v.Author,
		Duration: int(v.Duration.Seconds()),
		URL:      models.WatchURL(v.ID),
	}
	if song.Title == "" {
		song.Title = models.UnknownTitle
	}
	if song.Artist == "" {
		song.Artist = models.UnknownArtist
	}
	if n := len(v.Thumbnails); n > 0 {
		song.Thumbnail = v.Thumbnails[n-1].URL
	}
	return song
}

// joinArtists joins credited artist names with ", ", defaulting to the
// unknown-artist placeholder.
func joinArtists(artists []musicapi.Artist) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	if len(names) == 0 {
		return models.UnknownArtist
	}
	return strings.Join(names, ", ")
}

// lastThumbnail returns the last (highest resolution) thumbnail URL, or ""
// when the sequence is empty.
func lastThumbnail(images []musicapi.Image) string {
	if len(images) == 0 {
		return ""
	}
	return images[len(images)-1].URL
}

// convertTracks converts a track list into songs, truncating to limit
// first (0 means no cap) and dropping entries that fail conversion. The
// concurrent mode converts all entries at once into order-preserving
// slots; results are identical to the sequential mode.
func convertTracks(tracks []musicapi.Track, limit int, concurrent bool) []models.Song {
	if limit > 0 && len(tracks) > limit {
		tracks = tracks[:limit]
	}

	if !concurrent {
		songs := make([]models.Song, 0, len(tracks))
		for _, t := range tracks {
			if song, ok := songFromTrack(t); ok {
				songs = append(songs, song)
			}
		}
		return songs
	}

	slots := make([]*models.Song, len(tracks))
	var wg sync.WaitGroup
	for i, t := range tracks {
		wg.Add(1)
		go func(i int, t musicapi.Track) {
			defer wg.Done()
			if song, ok := songFromTrack(t); ok {
				slots[i] = &song
			}
		}(i, t)
	}
	wg.Wait()

	songs := make([]models.Song, 0, len(tracks))
	for _, s := range slots {
		if s != nil {
			songs = append(songs, *s)
		}
	}
	return songs
}
