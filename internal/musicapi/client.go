package musicapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/ytmkit/ytmkit/internal/shared"
)

const defaultBurst = 2

// Client implements [API] against a ytmusicapi-compatible proxy.
//
// Requests are throttled by a token-bucket limiter so collection resolution
// and related-song fans-out cannot hammer the backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *log.Logger
}

var _ API = (*Client)(nil)

// NewClient creates a catalog client. baseURL may be empty, which enables
// the built-in song-search fallback and disables browse lookups.
// rps caps outbound requests per second; zero or negative means unlimited.
func NewClient(baseURL string, rps float64, logger *log.Logger) *Client {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(limit, defaultBurst),
		log:        logger.With("component", "musicapi"),
	}
}

// Proxied reports whether a proxy backend is configured.
func (c *Client) Proxied() bool { return c.baseURL != "" }

// doRequest performs one rate-limited GET and decodes the JSON response
// into result. A 404 sets found=false with a nil error.
func (c *Client) doRequest(ctx context.Context, endpoint string, result any) (found bool, err error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Detail != "" {
			return false, fmt.Errorf("music API error (status %d): %s", resp.StatusCode, errResp.Detail)
		}
		return false, fmt.Errorf("music API error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return false, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return true, nil
}

// requireProxy guards browse endpoints that the built-in client cannot serve.
func (c *Client) requireProxy(op string) error {
	if c.Proxied() {
		return nil
	}
	return fmt.Errorf("%w: %s requires a configured api proxy", shared.ErrUpstreamFetch, op)
}

// Health calls GET /api/health on the proxy. Without a proxy it is a no-op
// success, since the built-in search client has nothing to probe.
func (c *Client) Health(ctx context.Context) error {
	if !c.Proxied() {
		return nil
	}
	if _, err := c.doRequest(ctx, "/api/health", nil); err != nil {
		return err
	}
	return nil
}

// Playlist retrieves a playlist with tracks via GET /api/playlists/{id}.
func (c *Client) Playlist(ctx context.Context, id string) (*PlaylistResult, error) {
	if err := c.requireProxy("playlist lookup"); err != nil {
		return nil, err
	}

	var out PlaylistResult
	found, err := c.doRequest(ctx, "/api/playlists/"+url.PathEscape(id), &out)
	if err != nil || !found {
		return nil, err
	}
	return &out, nil
}

// Album retrieves an album with tracks via GET /api/albums/{id}.
func (c *Client) Album(ctx context.Context, id string) (*AlbumResult, error) {
	if err := c.requireProxy("album lookup"); err != nil {
		return nil, err
	}

	var out AlbumResult
	found, err := c.doRequest(ctx, "/api/albums/"+url.PathEscape(id), &out)
	if err != nil || !found {
		return nil, err
	}
	return &out, nil
}

// Artist retrieves an artist page via GET /api/artists/{id}.
func (c *Client) Artist(ctx context.Context, id string) (*ArtistResult, error) {
	if err := c.requireProxy("artist lookup"); err != nil {
		return nil, err
	}

	var out ArtistResult
	found, err := c.doRequest(ctx, "/api/artists/"+url.PathEscape(id), &out)
	if err != nil || !found {
		return nil, err
	}
	return &out, nil
}

// Related retrieves autoplay candidates via GET /api/related/{videoID}.
func (c *Client) Related(ctx context.Context, videoID string) ([]Track, error) {
	if err := c.requireProxy("related lookup"); err != nil {
		return nil, err
	}

	var out []Track
	found, err := c.doRequest(ctx, "/api/related/"+url.PathEscape(videoID), &out)
	if err != nil || !found {
		return nil, err
	}
	return out, nil
}

// SearchSongs searches the songs index. Without a proxy it uses the
// built-in ytmusic search client.
func (c *Client) SearchSongs(ctx context.Context, query string) ([]Track, error) {
	if !c.Proxied() {
		return c.searchSongsDirect(ctx, query)
	}

	var out []Track
	found, err := c.doRequest(ctx, searchEndpoint(query, "songs"), &out)
	if err != nil || !found {
		return nil, err
	}
	return out, nil
}

// SearchAlbums searches the albums index via the proxy.
func (c *Client) SearchAlbums(ctx context.Context, query string) ([]AlbumSummary, error) {
	if err := c.requireProxy("album search"); err != nil {
		return nil, err
	}

	var out []AlbumSummary
	found, err := c.doRequest(ctx, searchEndpoint(query, "albums"), &out)
	if err != nil || !found {
		return nil, err
	}
	return out, nil
}

// SearchPlaylists searches the playlists index via the proxy.
func (c *Client) SearchPlaylists(ctx context.Context, query string) ([]PlaylistSummary, error) {
	if err := c.requireProxy("playlist search"); err != nil {
		return nil, err
	}

	var out []PlaylistSummary
	found, err := c.doRequest(ctx, searchEndpoint(query, "playlists"), &out)
	if err != nil || !found {
		return nil, err
	}
	return out, nil
}

// SearchArtists searches the artists index via the proxy.
func (c *Client) SearchArtists(ctx context.Context, query string) ([]ArtistSummary, error) {
	if err := c.requireProxy("artist search"); err != nil {
		return nil, err
	}

	var out []ArtistSummary
	found, err := c.doRequest(ctx, searchEndpoint(query, "artists"), &out)
	if err != nil || !found {
		return nil, err
	}
	return out, nil
}

func searchEndpoint(query, filter string) string {
	return fmt.Sprintf("/api/search?q=%s&filter=%s", url.QueryEscape(query), filter)
}
