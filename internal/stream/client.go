// Package stream wraps the YouTube stream-info client with an
// authenticated HTTP transport built from the current cookie set.
//
// Clients are immutable: when cookies change, the source builds a new
// client and swaps it in; in-flight requests keep the instance they
// captured. The cookie manager never holds a reference to a client.
package stream

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/kkdai/youtube/v2"

	"github.com/ytmkit/ytmkit/internal/cookies"
	"github.com/ytmkit/ytmkit/internal/shared"
)

const defaultTimeout = 30 * time.Second

// cookieOrigin is the URL the jar is seeded against; the cookies' own
// Domain attributes scope them from there.
var cookieOrigin = &url.URL{Scheme: "https", Host: "www.youtube.com"}

// ClientOptions are the passthrough construction options for the
// authenticated HTTP client.
type ClientOptions struct {
	Timeout      time.Duration
	MaxIdleConns int
	MaxRedirects int    // 0 means the default limit
	LocalAddr    string // optional bind address for outbound connections
	ProxyURL     string
}

// Client is a stream-info client bound to one cookie set.
type Client struct {
	yt  *youtube.Client
	log *log.Logger
}

// NewClient builds an authenticated client from the cookie set and options.
// An empty set produces an anonymous client, which still resolves public
// videos.
func NewClient(set cookies.Set, opts ClientOptions, logger *log.Logger) (*Client, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("build cookie jar: %w", err)
	}
	if len(set) > 0 {
		jar.SetCookies(cookieOrigin, set.HTTP())
	}

	transport := &http.Transport{
		Proxy:        http.ProxyFromEnvironment,
		MaxIdleConns: opts.MaxIdleConns,
	}

	if opts.ProxyURL != "" {
		proxy, err := url.Parse(opts.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("%w: bad proxy url %q: %w", shared.ErrInvalidInput, opts.ProxyURL, err)
		}
		transport.Proxy = http.ProxyURL(proxy)
	}

	if opts.LocalAddr != "" {
		ip := net.ParseIP(opts.LocalAddr)
		if ip == nil {
			return nil, fmt.Errorf("%w: bad local address %q", shared.ErrInvalidInput, opts.LocalAddr)
		}
		dialer := &net.Dialer{LocalAddr: &net.TCPAddr{IP: ip}, Timeout: defaultTimeout}
		transport.DialContext = dialer.DialContext
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	hc := &http.Client{
		Jar:       jar,
		Timeout:   timeout,
		Transport: transport,
	}
	if opts.MaxRedirects > 0 {
		maxRedirects := opts.MaxRedirects
		hc.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		}
	}

	return &Client{
		yt:  &youtube.Client{HTTPClient: hc},
		log: logger.With("component", "stream"),
	}, nil
}

// Info fetches detailed metadata for a video ID or watch URL.
func (c *Client) Info(ctx context.Context, idOrURL string) (*youtube.Video, error) {
	video, err := c.yt.GetVideoContext(ctx, idOrURL)
	if err != nil {
		return nil, fmt.Errorf("fetch video info %q: %w", idOrURL, err)
	}
	return video, nil
}

// StreamURL resolves the playable URL of the best audio-only format for a
// video.
func (c *Client) StreamURL(ctx context.Context, idOrURL string) (string, error) {
	video, err := c.Info(ctx, idOrURL)
	if err != nil {
		return "", err
	}

	format, err := SelectAudioFormat(video.Formats)
	if err != nil {
		return "", fmt.Errorf("%s (%s): %w", video.ID, video.Title, err)
	}

	streamURL, err := c.yt.GetStreamURLContext(ctx, video, format)
	if err != nil {
		return "", fmt.Errorf("resolve stream url %s: %w", video.ID, err)
	}

	c.log.Debug("stream url resolved", "video", video.ID, "itag", format.ItagNo, "bitrate", format.Bitrate)
	return streamURL, nil
}

// ExtractVideoID pulls the video ID out of a watch URL or bare ID. The
// second return is false when the input cannot carry a video ID.
func ExtractVideoID(input string) (string, bool) {
	id, err := youtube.ExtractVideoID(input)
	if err != nil {
		return "", false
	}
	return id, true
}

// ValidateURL reports whether the stream-info client recognizes the input
// as a resolvable video reference.
func ValidateURL(input string) bool {
	_, ok := ExtractVideoID(input)
	return ok
}
