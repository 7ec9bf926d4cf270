package repositories

import (
	"github.com/charmbracelet/log"

	"github.com/ytmkit/ytmkit/internal/models"
	"github.com/ytmkit/ytmkit/internal/shared"
)

// CacheAdapter implements source.SongCacher on top of [SongRepository].
//
// Cache traffic is best effort: storage failures are logged and swallowed
// so a broken cache file never blocks resolution.
type CacheAdapter struct {
	repo *SongRepository
	log  *log.Logger
}

// NewCacheAdapter creates a new CacheAdapter with the given repository
func NewCacheAdapter(repo *SongRepository, logger *log.Logger) *CacheAdapter {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &CacheAdapter{repo: repo, log: logger.With("component", "songcache")}
}

// Get looks up a cached song by video ID
func (a *CacheAdapter) Get(videoID string) (*models.Song, bool) {
	song, err := a.repo.Get(videoID)
	if err != nil {
		return nil, false
	}
	return song, true
}

// Put caches a song, logging and discarding storage failures
func (a *CacheAdapter) Put(song models.Song) {
	if err := a.repo.Upsert(song); err != nil {
		a.log.Warn("failed to cache song", "video", song.ID, "error", err)
	}
}
