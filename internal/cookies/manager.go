package cookies

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ytmkit/ytmkit/internal/shared"
)

// DefaultOrigin is the authenticated origin refresh sessions navigate to.
const DefaultOrigin = "https://music.youtube.com"

// Defaults applied when the corresponding option is zero.
const (
	DefaultInterval     = 24 * time.Hour
	DefaultLead         = time.Hour
	DefaultNavTimeout   = 60 * time.Second
	DefaultLoginTimeout = 5 * time.Minute
	DefaultLoginPoll    = 2 * time.Second
)

// Observer receives cookie lifecycle notifications. Multiple observers may
// subscribe to one manager; notifications run synchronously in subscription
// order.
type Observer interface {
	// CookiesUpdated fires after a refresh produced and persisted a new set.
	CookiesUpdated(set Set)

	// RefreshFailed fires when a refresh attempt fails for any reason.
	RefreshFailed(err error)
}

// ObserverFuncs adapts plain callbacks to the [Observer] interface. Either
// field may be nil.
type ObserverFuncs struct {
	OnUpdated func(Set)
	OnError   func(error)
}

func (o ObserverFuncs) CookiesUpdated(set Set) {
	if o.OnUpdated != nil {
		o.OnUpdated(set)
	}
}

func (o ObserverFuncs) RefreshFailed(err error) {
	if o.OnError != nil {
		o.OnError(err)
	}
}

// Options configures a [Manager].
type Options struct {
	// Path is the on-disk cookie file used by Load and Save.
	Path string

	// Cookies optionally seeds the manager with an inline set; when
	// non-nil it takes precedence over Path on Load.
	Cookies Set

	// Driver is the browser-automation capability. Nil means refresh
	// fails with [shared.ErrAutomationUnavailable].
	Driver Driver

	Origin       string
	Interval     time.Duration // periodic check cadence
	Lead         time.Duration // force refresh this long before expiry
	NavTimeout   time.Duration
	LoginTimeout time.Duration // headful login wait bound
	LoginPoll    time.Duration
	Headless     bool
	AutoStart    bool

	Logger *log.Logger
}

// Manager owns the cookie set's on-disk representation, drives periodic
// re-acquisition through automated browser sessions, and notifies
// subscribers of updates.
//
// Refreshes are not serialized: a manual Refresh racing a scheduled tick is
// last-writer-wins on the cookie file.
type Manager struct {
	opts Options
	log  *log.Logger

	mu      sync.Mutex
	inline  Set // pathless or seed set; the scheduler writes it, callers read it
	subs    map[int]Observer
	nextSub int
	stop    chan struct{}
	done    chan struct{}
}

// NewManager builds a manager and, when opts.AutoStart is set, starts the
// periodic refresh scheduler.
func NewManager(opts Options) *Manager {
	if opts.Origin == "" {
		opts.Origin = DefaultOrigin
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Lead <= 0 {
		opts.Lead = DefaultLead
	}
	if opts.NavTimeout <= 0 {
		opts.NavTimeout = DefaultNavTimeout
	}
	if opts.LoginTimeout <= 0 {
		opts.LoginTimeout = DefaultLoginTimeout
	}
	if opts.LoginPoll <= 0 {
		opts.LoginPoll = DefaultLoginPoll
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	m := &Manager{
		opts:   opts,
		log:    opts.Logger.With("component", "cookies"),
		inline: opts.Cookies,
		subs:   make(map[int]Observer),
	}

	if opts.AutoStart {
		m.StartAutoRefresh()
	}

	return m
}

// Subscribe registers an observer and returns its unsubscribe function.
func (m *Manager) Subscribe(o Observer) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	m.subs[id] = o

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

func (m *Manager) observers() []Observer {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Observer, 0, len(m.subs))
	for id := 0; id < m.nextSub; id++ {
		if o, ok := m.subs[id]; ok {
			out = append(out, o)
		}
	}
	return out
}

// Load returns the current cookie set: the inline seed when configured,
// otherwise the on-disk file. Load failures are reported through the
// logger and degrade to an empty set; they never escape to the caller.
func (m *Manager) Load() Set {
	m.mu.Lock()
	inline := m.inline
	m.mu.Unlock()
	if inline != nil {
		return inline
	}
	if m.opts.Path == "" {
		return Set{}
	}

	set, err := Load(m.opts.Path)
	if err != nil {
		m.log.Error("failed to load cookie file", "path", m.opts.Path, "error", err)
	}
	return set
}

// Save persists the set to the configured path. With no path configured the
// set is kept inline only.
func (m *Manager) Save(set Set) error {
	if m.opts.Path == "" {
		m.mu.Lock()
		m.inline = set
		m.mu.Unlock()
		return nil
	}
	if err := Save(m.opts.Path, set); err != nil {
		return err
	}
	// The file is now the source of truth for subsequent loads.
	m.mu.Lock()
	m.inline = nil
	m.mu.Unlock()
	return nil
}

// Refresh performs one automated browser session: inject the current set,
// navigate to the authenticated origin, optionally wait for a human login
// in headful mode, read back the fresh set, persist it, and notify
// subscribers.
//
// On failure the cookie file is untouched, subscribers get RefreshFailed,
// and the error is returned; nothing is raised past this boundary.
func (m *Manager) Refresh(ctx context.Context) (Set, error) {
	set, err := m.refresh(ctx)
	if err != nil {
		m.log.Error("cookie refresh failed", "error", err)
		for _, o := range m.observers() {
			o.RefreshFailed(err)
		}
		return nil, err
	}

	m.log.Info("cookie refresh complete", "cookies", len(set))
	for _, o := range m.observers() {
		o.CookiesUpdated(set)
	}
	return set, nil
}

func (m *Manager) refresh(ctx context.Context) (Set, error) {
	if m.opts.Driver == nil {
		return nil, shared.ErrAutomationUnavailable
	}

	logger := m.log.With("session", shared.GenerateID()[:8])
	logger.Info("starting refresh session", "origin", m.opts.Origin, "headless", m.opts.Headless)

	sess, err := m.opts.Driver.Open(ctx, SessionOptions{
		Headless:   m.opts.Headless,
		NavTimeout: m.opts.NavTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrAutomationUnavailable, err)
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			logger.Warn("failed to close browser session", "error", cerr)
		}
	}()

	if current := m.Load(); len(current) > 0 {
		// Best effort: a failed injection just means a clean session.
		if err := sess.SetCookies(current); err != nil {
			logger.Warn("cookie injection failed, continuing with clean session", "error", err)
		}
	}

	navCtx, cancel := context.WithTimeout(ctx, m.opts.NavTimeout)
	defer cancel()
	if err := sess.Navigate(navCtx, m.opts.Origin); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", shared.ErrNavigationTimeout, m.opts.Origin, err)
	}

	loggedIn, err := sess.LoggedIn(ctx)
	if err != nil {
		logger.Warn("login probe failed", "error", err)
	}
	if !loggedIn && !m.opts.Headless {
		m.waitForLogin(ctx, sess, logger)
	} else if !loggedIn {
		logger.Warn("session not authenticated; captured cookies may be anonymous")
	}

	fresh, err := sess.Cookies(ctx)
	if err != nil {
		return nil, fmt.Errorf("read cookies: %w", err)
	}

	if err := m.Save(fresh); err != nil {
		// Reported, not fatal: the in-memory set is still good.
		logger.Error("failed to persist refreshed cookies", "error", err)
	}

	return fresh, nil
}

// waitForLogin polls the login probe until it succeeds, the bound elapses,
// or the context is canceled. Elapsing the bound is not an error; refresh
// proceeds with whatever state exists.
func (m *Manager) waitForLogin(ctx context.Context, sess Session, logger *log.Logger) {
	logger.Info("waiting for manual login", "timeout", m.opts.LoginTimeout)

	poll := time.NewTicker(m.opts.LoginPoll)
	defer poll.Stop()
	deadline := time.After(m.opts.LoginTimeout)

	for {
		select {
		case <-ctx.Done():
			return
		case <-deadline:
			logger.Warn("login wait elapsed, proceeding with current session state")
			return
		case <-poll.C:
			ok, err := sess.LoggedIn(ctx)
			if err != nil {
				continue
			}
			if ok {
				logger.Info("login detected")
				return
			}
		}
	}
}

// StartAutoRefresh launches the periodic refresh scheduler. Starting an
// already-running scheduler is a logged no-op.
func (m *Manager) StartAutoRefresh() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stop != nil {
		m.log.Info("auto refresh already running")
		return
	}

	m.stop = make(chan struct{})
	m.done = make(chan struct{})
	go m.run(m.stop, m.done)
	m.log.Info("auto refresh started", "interval", m.opts.Interval)
}

// StopAutoRefresh stops the scheduler and waits for the loop to exit.
// Stopping a stopped scheduler is a no-op. An in-progress refresh is not
// aborted.
func (m *Manager) StopAutoRefresh() {
	m.mu.Lock()
	stop, done := m.stop, m.done
	m.stop, m.done = nil, nil
	m.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
	m.log.Info("auto refresh stopped")
}

// Close stops the scheduler. Safe to call multiple times.
func (m *Manager) Close() {
	m.StopAutoRefresh()
}

func (m *Manager) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.tick()
		}
	}
}

// tick runs one scheduled check: refresh only when the current set is
// invalid or expiring soon. Errors are reported, never propagated to the
// scheduler loop.
func (m *Manager) tick() {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error("refresh tick panicked", "panic", r)
		}
	}()

	set := m.Load()
	v := Validate(set, m.opts.Lead)
	if v.Valid && !v.ExpiringSoon {
		m.log.Debug("cookies still fresh, skipping refresh", "status", v.Message)
		return
	}

	m.log.Info("scheduled refresh triggered", "status", v.Message)

	budget := m.opts.NavTimeout + m.opts.LoginTimeout + time.Minute
	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()

	if _, err := m.Refresh(ctx); err != nil {
		m.log.Error("scheduled refresh failed", "error", err)
	}
}
