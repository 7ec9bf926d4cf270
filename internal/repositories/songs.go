package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ytmkit/ytmkit/internal/models"
)

const songSchema = `
	CREATE TABLE IF NOT EXISTS songs (
		video_id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		artist TEXT NOT NULL,
		album TEXT NOT NULL DEFAULT '',
		duration INTEGER NOT NULL DEFAULT 0,
		thumbnail TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL DEFAULT '',
		cached_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_songs_cached_at ON songs (cached_at);
`

// SongRepository persists resolved song metadata keyed by video ID.
//
// Writes are upserts: re-resolving a video replaces its cached metadata
// and refreshes the cached_at timestamp.
type SongRepository struct {
	db *sql.DB
}

// NewSongRepository creates a new SongRepository with the given database connection
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

// InitSchema creates the songs table and its indexes if they do not exist
func (r *SongRepository) InitSchema() error {
	if _, err := r.db.Exec(songSchema); err != nil {
		return fmt.Errorf("failed to initialize song schema: %w", err)
	}
	return nil
}

// Upsert inserts or replaces the cached metadata for a song
func (r *SongRepository) Upsert(song models.Song) error {
	if song.ID == "" {
		return fmt.Errorf("cannot cache song without a video id")
	}

	query := `
		INSERT INTO songs (video_id, title, artist, album, duration, thumbnail, url, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(video_id) DO UPDATE SET
			title = excluded.title,
			artist = excluded.artist,
			album = excluded.album,
			duration = excluded.duration,
			thumbnail = excluded.thumbnail,
			url = excluded.url,
			cached_at = excluded.cached_at
	`

	_, err := r.db.Exec(query,
		song.ID,
		song.Title,
		song.Artist,
		song.Album,
		song.Duration,
		song.Thumbnail,
		song.URL,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert song: %w", err)
	}

	return nil
}

// Get retrieves a cached song by video ID. Returns sql.ErrNoRows when the
// song is not cached.
func (r *SongRepository) Get(videoID string) (*models.Song, error) {
	query := `
		SELECT video_id, title, artist, album, duration, thumbnail, url
		FROM songs
		WHERE video_id = ?
	`

	var song models.Song
	err := r.db.QueryRow(query, videoID).Scan(
		&song.ID,
		&song.Title,
		&song.Artist,
		&song.Album,
		&song.Duration,
		&song.Thumbnail,
		&song.URL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get song %s: %w", videoID, err)
	}

	return &song, nil
}

// List returns the most recently cached songs, newest first, capped at limit
func (r *SongRepository) List(limit int) ([]models.Song, error) {
	query := `
		SELECT video_id, title, artist, album, duration, thumbnail, url
		FROM songs
		ORDER BY cached_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	defer rows.Close()

	var songs []models.Song
	for rows.Next() {
		var song models.Song
		if err := rows.Scan(&song.ID, &song.Title, &song.Artist, &song.Album, &song.Duration, &song.Thumbnail, &song.URL); err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate songs: %w", err)
	}

	return songs, nil
}

// Prune deletes entries cached before the cutoff and reports how many were removed
func (r *SongRepository) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)

	result, err := r.db.Exec(`DELETE FROM songs WHERE cached_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune songs: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned songs: %w", err)
	}

	return removed, nil
}

// Count returns the number of cached songs
func (r *SongRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM songs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count songs: %w", err)
	}
	return count, nil
}
