// Package browser implements the cookie manager's automation capability on
// top of go-rod, driving a real Chromium instance to replay the
// authenticated YouTube Music session and read back fresh cookies.
package browser

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/ytmkit/ytmkit/internal/cookies"
	"github.com/ytmkit/ytmkit/internal/shared"
)

// loggedInProbe checks the page's ytcfg for an authenticated session. It
// must never throw: probe failures read as "not logged in".
const loggedInProbe = `() => {
	try {
		if (window.ytcfg && typeof window.ytcfg.get === "function") {
			return window.ytcfg.get("LOGGED_IN") === true;
		}
	} catch (e) {}
	return false;
}`

// Driver launches isolated rod browser contexts.
type Driver struct {
	log *log.Logger

	// BinPath optionally pins the Chromium binary instead of letting the
	// launcher resolve one.
	BinPath string
}

var _ cookies.Driver = (*Driver)(nil)

// NewDriver builds a rod driver. It fails fast when no Chromium binary can
// be resolved, so "automation unavailable" surfaces at construction instead
// of on the first refresh.
func NewDriver(logger *log.Logger) (*Driver, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	bin, has := launcher.LookPath()
	if !has {
		return nil, fmt.Errorf("%w: no chromium binary found", shared.ErrAutomationUnavailable)
	}

	return &Driver{log: logger.With("component", "browser"), BinPath: bin}, nil
}

// Open launches a fresh browser context. The caller owns the returned
// session and must close it.
func (d *Driver) Open(ctx context.Context, opts cookies.SessionOptions) (cookies.Session, error) {
	l := launcher.New().Headless(opts.Headless).Leakless(true)
	if d.BinPath != "" {
		l = l.Bin(d.BinPath)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	d.log.Debug("browser launched", "headless", opts.Headless)
	return &session{browser: b, launcher: l, log: d.log}, nil
}

// session wraps one rod browser and its first page.
type session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	log      *log.Logger
}

func (s *session) SetCookies(set cookies.Set) error {
	params := make([]*proto.NetworkCookieParam, 0, len(set))
	for _, c := range set {
		p := &proto.NetworkCookieParam{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
			SameSite: sameSiteParam(c.SameSite),
		}
		if exp, ok := c.Expiry(); ok {
			p.Expires = proto.TimeSinceEpoch(float64(exp.UnixNano()) / 1e9)
		}
		params = append(params, p)
	}

	return s.browser.SetCookies(params)
}

func (s *session) Navigate(ctx context.Context, url string) error {
	page, err := s.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return fmt.Errorf("open page: %w", err)
	}
	s.page = page

	page = page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait load %s: %w", url, err)
	}

	return nil
}

func (s *session) LoggedIn(ctx context.Context) (bool, error) {
	if s.page == nil {
		return false, fmt.Errorf("no page navigated")
	}

	obj, err := s.page.Context(ctx).Eval(loggedInProbe)
	if err == nil && obj.Value.Bool() {
		return true, nil
	}

	// SPA navigation can leave ytcfg unset; an authentication cookie is an
	// acceptable secondary signal.
	set, cerr := s.Cookies(ctx)
	if cerr != nil {
		return false, cerr
	}
	_, has := set.Get("SAPISID")
	return has, err
}

func (s *session) Cookies(ctx context.Context) (cookies.Set, error) {
	raw, err := s.browser.Context(ctx).GetCookies()
	if err != nil {
		return nil, fmt.Errorf("read browser cookies: %w", err)
	}

	set := make(cookies.Set, 0, len(raw))
	for _, c := range raw {
		out := cookies.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
			SameSite: sameSiteCookie(c.SameSite),
		}
		if c.Expires > 0 {
			out.ExpirationDate = float64(c.Expires)
		}
		set = append(set, out)
	}

	return set, nil
}

func (s *session) Close() error {
	err := s.browser.Close()
	s.launcher.Cleanup()
	if err != nil {
		return fmt.Errorf("close browser: %w", err)
	}
	return nil
}

func sameSiteParam(s cookies.SameSite) proto.NetworkCookieSameSite {
	switch s {
	case cookies.SameSiteStrict:
		return proto.NetworkCookieSameSiteStrict
	case cookies.SameSiteLax:
		return proto.NetworkCookieSameSiteLax
	case cookies.SameSiteNone:
		return proto.NetworkCookieSameSiteNone
	default:
		return ""
	}
}

func sameSiteCookie(s proto.NetworkCookieSameSite) cookies.SameSite {
	switch s {
	case proto.NetworkCookieSameSiteStrict:
		return cookies.SameSiteStrict
	case proto.NetworkCookieSameSiteLax:
		return cookies.SameSiteLax
	case proto.NetworkCookieSameSiteNone:
		return cookies.SameSiteNone
	default:
		return cookies.SameSiteUnspecified
	}
}
