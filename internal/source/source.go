package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/kkdai/youtube/v2"

	"github.com/ytmkit/ytmkit/internal/cookies"
	"github.com/ytmkit/ytmkit/internal/models"
	"github.com/ytmkit/ytmkit/internal/musicapi"
	"github.com/ytmkit/ytmkit/internal/shared"
	"github.com/ytmkit/ytmkit/internal/stream"
)

// Plugin is the contract the host queue framework drives. The host calls
// Init exactly once before any other non-pure operation.
type Plugin interface {
	Name() string
	Validate(input string) bool
	Init(ctx context.Context) error
	Resolve(ctx context.Context, input string) (*models.Resolved, error)
	SearchSong(ctx context.Context, query string) *models.Song
	Search(ctx context.Context, query string, opts SearchOptions) []models.Song
	StreamURL(ctx context.Context, song *models.Song) (string, error)
	RelatedSongs(ctx context.Context, song *models.Song) []models.Song
}

// SearchOptions selects the index and result cap for [Source.Search].
type SearchOptions struct {
	Type  models.SearchType // defaults to song search
	Limit int               // defaults to 3
}

// StreamInfo is what the source needs from the stream layer.
type StreamInfo interface {
	Info(ctx context.Context, idOrURL string) (*youtube.Video, error)
	StreamURL(ctx context.Context, idOrURL string) (string, error)
}

// SongCacher persists converted songs so repeat lookups skip upstream
// fetches. Implementations must tolerate duplicate puts.
type SongCacher interface {
	Get(videoID string) (*models.Song, bool)
	Put(song models.Song)
}

const (
	defaultName     = "ytmusic"
	defaultMaxItems = 100
	defaultLimit    = 3
)

// Adapter lifecycle states.
const (
	stateUninitialized int32 = iota
	stateInitializing
	stateReady
	stateFailed
)

// Options configures a [Source].
type Options struct {
	Name               string
	API                musicapi.API
	Manager            *cookies.Manager // optional; enables client hot-swap
	ClientOptions      stream.ClientOptions
	MaxCollectionItems int
	ConcurrentBatch    bool
	Cache              SongCacher // optional
	Logger             *log.Logger

	// NewStream overrides authenticated-client construction; tests use it
	// to substitute fakes.
	NewStream func(set cookies.Set) (StreamInfo, error)
}

// Source resolves YouTube Music identifiers into host value objects and
// keeps its authenticated stream client in sync with the cookie manager.
type Source struct {
	name        string
	api         musicapi.API
	manager     *cookies.Manager
	cache       SongCacher
	maxItems    int
	concurrent  bool
	newStream   func(cookies.Set) (StreamInfo, error)
	unsubscribe func()
	log         *log.Logger

	state   atomic.Int32
	client  atomic.Pointer[clientBox]
	version atomic.Int64
}

// clientBox wraps the interface so it can live in an atomic.Pointer.
type clientBox struct{ s StreamInfo }

var _ Plugin = (*Source)(nil)
var _ cookies.Observer = (*Source)(nil)

// New builds a source, constructs the initial authenticated client from
// the manager's current cookie set (or an anonymous one), and subscribes
// to cookie updates.
func New(opts Options) (*Source, error) {
	if opts.API == nil {
		return nil, fmt.Errorf("%w: nil music API", shared.ErrInvalidInput)
	}
	if opts.Name == "" {
		opts.Name = defaultName
	}
	if opts.MaxCollectionItems <= 0 {
		opts.MaxCollectionItems = defaultMaxItems
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	s := &Source{
		name:       opts.Name,
		api:        opts.API,
		manager:    opts.Manager,
		cache:      opts.Cache,
		maxItems:   opts.MaxCollectionItems,
		concurrent: opts.ConcurrentBatch,
		log:        opts.Logger.With("component", "source"),
	}

	s.newStream = opts.NewStream
	if s.newStream == nil {
		clientOpts := opts.ClientOptions
		logger := opts.Logger
		s.newStream = func(set cookies.Set) (StreamInfo, error) {
			return stream.NewClient(set, clientOpts, logger)
		}
	}

	var seed cookies.Set
	if s.manager != nil {
		seed = s.manager.Load()
	}
	client, err := s.newStream(seed)
	if err != nil {
		return nil, fmt.Errorf("build stream client: %w", err)
	}
	s.client.Store(&clientBox{s: client})

	if s.manager != nil {
		s.unsubscribe = s.manager.Subscribe(s)
	}

	return s, nil
}

// Name returns the stable source identity the host registers.
func (s *Source) Name() string { return s.name }

// ClientVersion counts authenticated-client rebuilds; diagnostic only.
func (s *Source) ClientVersion() int64 { return s.version.Load() }

// Close unsubscribes from the cookie manager. It does not stop the
// manager itself, which other sources may share.
func (s *Source) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// CookiesUpdated implements [cookies.Observer]: rebuild the authenticated
// client and swap it in a single step. In-flight requests keep using the
// instance they captured.
func (s *Source) CookiesUpdated(set cookies.Set) {
	client, err := s.newStream(set)
	if err != nil {
		s.log.Error("failed to rebuild authenticated client", "error", err)
		return
	}
	s.client.Store(&clientBox{s: client})
	v := s.version.Add(1)
	s.log.Info("authenticated client rebuilt", "version", v, "cookies", len(set))
}

// RefreshFailed implements [cookies.Observer]. The current client stays in
// place; stale cookies beat no cookies.
func (s *Source) RefreshFailed(err error) {
	s.log.Warn("cookie refresh failed, keeping current client", "error", err)
}

func (s *Source) stream() StreamInfo { return s.client.Load().s }

// Init transitions the source to Ready after the music API confirms it is
// reachable. Failure is fatal and sticky: the host must construct a new
// source rather than retry.
func (s *Source) Init(ctx context.Context) error {
	if s.state.Load() == stateReady {
		return nil
	}
	if !s.state.CompareAndSwap(stateUninitialized, stateInitializing) {
		if s.state.Load() == stateFailed {
			return fmt.Errorf("%w: previous initialization failed", shared.ErrInitFailed)
		}
		return fmt.Errorf("%w: initialization already in progress", shared.ErrInitFailed)
	}

	if err := s.api.Health(ctx); err != nil {
		s.state.Store(stateFailed)
		return fmt.Errorf("%w: music API unreachable: %w", shared.ErrInitFailed, err)
	}

	s.state.Store(stateReady)
	s.log.Info("source ready", "name", s.name)
	return nil
}

func (s *Source) requireReady() error {
	if s.state.Load() != stateReady {
		return shared.ErrNotInitialized
	}
	return nil
}

// Validate reports whether the input is a URL this source can resolve.
// Pure: no I/O.
func (s *Source) Validate(input string) bool {
	if !strings.Contains(input, "://") {
		return false
	}
	if t := Classify(input); t.ID != "" {
		return true
	}
	return stream.ValidateURL(input)
}

// Resolve turns an identifier into a single song or a collection.
//
// Unlike the search operations, failures surface as errors: the caller
// needs to report a failed resolution to the end user, and a silent empty
// result would hide it.
func (s *Source) Resolve(ctx context.Context, input string) (*models.Resolved, error) {
	if err := s.requireReady(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input) == "" {
		return nil, fmt.Errorf("%w: empty identifier", shared.ErrInvalidInput)
	}

	target := Classify(input)
	if target.ID == "" {
		return nil, fmt.Errorf("%w: no %s id in %q", shared.ErrInvalidInput, target.Kind, input)
	}

	s.log.Debug("resolving", "kind", target.Kind, "id", target.ID)

	if target.Kind == models.KindVideo {
		song, err := s.resolveVideo(ctx, target.ID)
		if err != nil {
			return nil, err
		}
		return &models.Resolved{Song: song}, nil
	}

	playlist, err := s.resolveCollection(ctx, target)
	if err != nil {
		return nil, err
	}
	return &models.Resolved{Playlist: playlist}, nil
}

func (s *Source) resolveVideo(ctx context.Context, id string) (*models.Song, error) {
	if s.cache != nil {
		if song, ok := s.cache.Get(id); ok {
			return song, nil
		}
	}

	video, err := s.stream().Info(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: video %s: %w", shared.ErrUpstreamFetch, id, err)
	}

	song := songFromVideo(video)
	if s.cache != nil {
		s.cache.Put(song)
	}
	return &song, nil
}

func (s *Source) resolveCollection(ctx context.Context, target Target) (*models.Playlist, error) {
	playlist := &models.Playlist{
		ID:   target.ID,
		Kind: target.Kind,
		URL:  models.BrowseURL(target.Kind, target.ID),
	}

	var tracks []musicapi.Track
	var err error
	switch target.Kind {
	case models.KindPlaylist:
		var result *musicapi.PlaylistResult
		if result, err = s.api.Playlist(ctx, target.ID); result != nil {
			playlist.Name = result.Title
			playlist.Thumbnail = lastThumbnail(result.Thumbnails)
			tracks = result.Tracks
		}
	case models.KindAlbum:
		var result *musicapi.AlbumResult
		if result, err = s.api.Album(ctx, target.ID); result != nil {
			playlist.Name = result.Title
			playlist.Thumbnail = lastThumbnail(result.Thumbnails)
			tracks = result.Tracks
		}
	case models.KindArtist:
		var result *musicapi.ArtistResult
		if result, err = s.api.Artist(ctx, target.ID); result != nil {
			playlist.Name = result.Name
			playlist.Thumbnail = lastThumbnail(result.Thumbnails)
			tracks = result.Tracks
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", shared.ErrUpstreamFetch, target.Kind, target.ID, err)
	}
	if playlist.Name == "" && len(tracks) == 0 {
		return nil, fmt.Errorf("%w: %s %s: not found", shared.ErrUpstreamFetch, target.Kind, target.ID)
	}

	playlist.Songs = convertTracks(tracks, s.maxItems, s.concurrent)
	if len(playlist.Songs) == 0 {
		return nil, fmt.Errorf("%w: %s %s has no convertible tracks", shared.ErrNoPlayableContent, target.Kind, target.ID)
	}

	if s.cache != nil {
		for _, song := range playlist.Songs {
			s.cache.Put(song)
		}
	}

	return playlist, nil
}

// SearchSong returns the first playable song for a query, or nil when
// there are no results or the top result lacks a stream identifier.
// Upstream failures degrade to nil; they never surface as errors.
func (s *Source) SearchSong(ctx context.Context, query string) *models.Song {
	if err := s.requireReady(); err != nil {
		s.log.Warn("search before init", "error", err)
		return nil
	}

	tracks, err := s.api.SearchSongs(ctx, query)
	if err != nil {
		s.log.Warn("song search failed", "query", query, "error", err)
		return nil
	}
	if len(tracks) == 0 {
		return nil
	}

	song, ok := songFromTrack(tracks[0])
	if !ok {
		return nil
	}
	return &song
}

// Search runs a typed search and returns up to opts.Limit songs. Entries
// without a stream identifier are dropped; upstream failures degrade to an
// empty list.
func (s *Source) Search(ctx context.Context, query string, opts SearchOptions) []models.Song {
	if err := s.requireReady(); err != nil {
		s.log.Warn("search before init", "error", err)
		return nil
	}

	if opts.Limit <= 0 {
		opts.Limit = defaultLimit
	}
	if opts.Type == "" {
		opts.Type = models.SearchSongs
	}

	var songs []models.Song
	var err error
	switch opts.Type {
	case models.SearchSongs:
		var tracks []musicapi.Track
		if tracks, err = s.api.SearchSongs(ctx, query); err == nil {
			songs = convertTracks(tracks, opts.Limit, s.concurrent)
		}
	case models.SearchAlbums:
		var albums []musicapi.AlbumSummary
		if albums, err = s.api.SearchAlbums(ctx, query); err == nil {
			for _, a := range albums {
				if a.BrowseID == "" {
					continue
				}
				songs = append(songs, models.Song{
					ID:        a.BrowseID,
					Title:     orUnknown(a.Title),
					Artist:    joinArtists(a.Artists),
					Thumbnail: lastThumbnail(a.Thumbnails),
					URL:       models.BrowseURL(models.KindAlbum, a.BrowseID),
				})
			}
		}
	case models.SearchPlaylists:
		var lists []musicapi.PlaylistSummary
		if lists, err = s.api.SearchPlaylists(ctx, query); err == nil {
			for _, p := range lists {
				if p.BrowseID == "" {
					continue
				}
				songs = append(songs, models.Song{
					ID:        p.BrowseID,
					Title:     orUnknown(p.Title),
					Artist:    models.UnknownArtist,
					Thumbnail: lastThumbnail(p.Thumbnails),
					URL:       models.BrowseURL(models.KindPlaylist, p.BrowseID),
				})
			}
		}
	case models.SearchArtists:
		var artists []musicapi.ArtistSummary
		if artists, err = s.api.SearchArtists(ctx, query); err == nil {
			for _, a := range artists {
				if a.BrowseID == "" {
					continue
				}
				songs = append(songs, models.Song{
					ID:        a.BrowseID,
					Title:     orUnknown(a.Name),
					Artist:    orUnknown(a.Name),
					Thumbnail: lastThumbnail(a.Thumbnails),
					URL:       models.BrowseURL(models.KindArtist, a.BrowseID),
				})
			}
		}
	default:
		s.log.Warn("unknown search type", "type", opts.Type)
		return nil
	}

	if err != nil {
		s.log.Warn("search failed", "type", opts.Type, "query", query, "error", err)
		return nil
	}
	if len(songs) > opts.Limit {
		songs = songs[:opts.Limit]
	}
	return songs
}

// StreamURL resolves the current playable URL for a song's best audio-only
// format. Failures surface as errors with the song identity attached.
func (s *Source) StreamURL(ctx context.Context, song *models.Song) (string, error) {
	if err := s.requireReady(); err != nil {
		return "", err
	}
	if song == nil || song.ID == "" {
		return "", fmt.Errorf("%w: song without a stream identifier", shared.ErrInvalidInput)
	}

	streamURL, err := s.stream().StreamURL(ctx, song.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNoAudioFormat) {
			return "", err
		}
		return "", fmt.Errorf("%w: video %s: %w", shared.ErrUpstreamFetch, song.ID, err)
	}
	return streamURL, nil
}

// RelatedSongs returns autoplay candidates for a song. Absent or malformed
// related data degrades to an empty list.
func (s *Source) RelatedSongs(ctx context.Context, song *models.Song) []models.Song {
	if err := s.requireReady(); err != nil {
		s.log.Warn("related lookup before init", "error", err)
		return nil
	}
	if song == nil || song.ID == "" {
		return nil
	}

	tracks, err := s.api.Related(ctx, song.ID)
	if err != nil {
		s.log.Warn("related lookup failed", "video", song.ID, "error", err)
		return nil
	}

	songs := convertTracks(tracks, s.maxItems, s.concurrent)
	if s.cache != nil {
		for _, related := range songs {
			s.cache.Put(related)
		}
	}
	return songs
}

func orUnknown(title string) string {
	if title == "" {
		return models.UnknownTitle
	}
	return title
}
