package repositories

import (
	"database/sql"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/ytmkit/ytmkit/internal/models"
	"github.com/ytmkit/ytmkit/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with the song schema applied
func setupTestDB(t *testing.T) *SongRepository {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := NewSongRepository(db)
	if err := repo.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return repo
}

func testSong(id, title string) models.Song {
	return models.Song{
		ID:       id,
		Title:    title,
		Artist:   "Test Artist",
		Album:    "Test Album",
		Duration: 180,
		URL:      models.WatchURL(id),
	}
}

func TestSongRepository(t *testing.T) {
	t.Run("Upsert and Get", func(t *testing.T) {
		repo := setupTestDB(t)

		if err := repo.Upsert(testSong("abc123def45", "First Song")); err != nil {
			t.Fatalf("failed to upsert song: %v", err)
		}

		song, err := repo.Get("abc123def45")
		if err != nil {
			t.Fatalf("failed to get song: %v", err)
		}
		if song.Title != "First Song" || song.Artist != "Test Artist" || song.Duration != 180 {
			t.Errorf("unexpected song: %+v", song)
		}
	})

	t.Run("Upsert replaces existing metadata", func(t *testing.T) {
		repo := setupTestDB(t)

		if err := repo.Upsert(testSong("abc123def45", "Old Title")); err != nil {
			t.Fatalf("failed to upsert song: %v", err)
		}
		if err := repo.Upsert(testSong("abc123def45", "New Title")); err != nil {
			t.Fatalf("failed to re-upsert song: %v", err)
		}

		song, err := repo.Get("abc123def45")
		if err != nil {
			t.Fatalf("failed to get song: %v", err)
		}
		if song.Title != "New Title" {
			t.Errorf("Title = %q, want replacement", song.Title)
		}

		count, err := repo.Count()
		if err != nil {
			t.Fatalf("failed to count songs: %v", err)
		}
		if count != 1 {
			t.Errorf("count = %d, want 1 after upsert", count)
		}
	})

	t.Run("Get missing song", func(t *testing.T) {
		repo := setupTestDB(t)

		_, err := repo.Get("nope")
		if !errors.Is(err, sql.ErrNoRows) {
			t.Errorf("error = %v, want sql.ErrNoRows", err)
		}
	})

	t.Run("Upsert rejects empty video id", func(t *testing.T) {
		repo := setupTestDB(t)

		if err := repo.Upsert(models.Song{Title: "No ID"}); err == nil {
			t.Error("expected error for song without a video id")
		}
	})

	t.Run("List newest first", func(t *testing.T) {
		repo := setupTestDB(t)

		for _, id := range []string{"song00000_a", "song00000_b", "song00000_c"} {
			if err := repo.Upsert(testSong(id, id)); err != nil {
				t.Fatalf("failed to upsert %s: %v", id, err)
			}
			// cached_at has sub-second precision; a short sleep keeps
			// insertion order observable.
			time.Sleep(2 * time.Millisecond)
		}

		songs, err := repo.List(2)
		if err != nil {
			t.Fatalf("failed to list songs: %v", err)
		}
		if len(songs) != 2 {
			t.Fatalf("got %d songs, want 2", len(songs))
		}
		if songs[0].ID != "song00000_c" || songs[1].ID != "song00000_b" {
			t.Errorf("unexpected ordering: %s, %s", songs[0].ID, songs[1].ID)
		}
	})

	t.Run("Prune removes only stale entries", func(t *testing.T) {
		repo := setupTestDB(t)

		if err := repo.Upsert(testSong("fresh000000", "Fresh")); err != nil {
			t.Fatalf("failed to upsert song: %v", err)
		}

		// Backdate one entry past the cutoff.
		if err := repo.Upsert(testSong("stale000000", "Stale")); err != nil {
			t.Fatalf("failed to upsert song: %v", err)
		}
		if _, err := repo.db.Exec(`UPDATE songs SET cached_at = ? WHERE video_id = ?`,
			time.Now().UTC().Add(-48*time.Hour), "stale000000"); err != nil {
			t.Fatalf("failed to backdate song: %v", err)
		}

		removed, err := repo.Prune(24 * time.Hour)
		if err != nil {
			t.Fatalf("failed to prune: %v", err)
		}
		if removed != 1 {
			t.Errorf("removed = %d, want 1", removed)
		}
		if _, err := repo.Get("fresh000000"); err != nil {
			t.Errorf("fresh entry was pruned: %v", err)
		}
		if _, err := repo.Get("stale000000"); !errors.Is(err, sql.ErrNoRows) {
			t.Errorf("stale entry survived: %v", err)
		}
	})
}

func TestCacheAdapter(t *testing.T) {
	repo := setupTestDB(t)
	adapter := NewCacheAdapter(repo, shared.NewLogger(io.Discard))

	t.Run("miss then hit", func(t *testing.T) {
		if _, ok := adapter.Get("abc123def45"); ok {
			t.Error("expected cache miss")
		}

		adapter.Put(testSong("abc123def45", "Cached Song"))

		song, ok := adapter.Get("abc123def45")
		if !ok {
			t.Fatal("expected cache hit")
		}
		if song.Title != "Cached Song" {
			t.Errorf("Title = %q", song.Title)
		}
	})

	t.Run("put failure is swallowed", func(t *testing.T) {
		// Empty video id fails the upsert; the adapter must not panic
		// or surface the error.
		adapter.Put(models.Song{Title: "No ID"})
	})
}
