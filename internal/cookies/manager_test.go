package cookies

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ytmkit/ytmkit/internal/shared"
)

// fakeSession scripts one browser session for manager tests.
type fakeSession struct {
	loggedIn   bool
	cookies    Set
	injectErr  error
	navErr     error
	readErr    error
	injected   Set
	navigated  string
	closed     atomic.Int32
	loginPolls atomic.Int32
}

func (s *fakeSession) SetCookies(set Set) error {
	s.injected = set
	return s.injectErr
}

func (s *fakeSession) Navigate(ctx context.Context, url string) error {
	s.navigated = url
	return s.navErr
}

func (s *fakeSession) LoggedIn(ctx context.Context) (bool, error) {
	s.loginPolls.Add(1)
	return s.loggedIn, nil
}

func (s *fakeSession) Cookies(ctx context.Context) (Set, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	return s.cookies, nil
}

func (s *fakeSession) Close() error {
	s.closed.Add(1)
	return nil
}

type fakeDriver struct {
	session *fakeSession
	openErr error
	opens   atomic.Int32
}

func (d *fakeDriver) Open(ctx context.Context, opts SessionOptions) (Session, error) {
	d.opens.Add(1)
	if d.openErr != nil {
		return nil, d.openErr
	}
	return d.session, nil
}

// countingObserver tallies notifications.
type countingObserver struct {
	updated atomic.Int32
	failed  atomic.Int32
	lastSet Set
	lastErr error
}

func (o *countingObserver) CookiesUpdated(set Set) {
	o.updated.Add(1)
	o.lastSet = set
}

func (o *countingObserver) RefreshFailed(err error) {
	o.failed.Add(1)
	o.lastErr = err
}

func testManager(t *testing.T, opts Options) *Manager {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}
	m := NewManager(opts)
	t.Cleanup(m.Close)
	return m
}

func TestRefresh(t *testing.T) {
	fresh := Set{{Name: "SAPISID", Value: "new", Domain: ".youtube.com", Path: "/"}}

	t.Run("happy path persists and notifies", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cookies.json")
		seed := Set{{Name: "SAPISID", Value: "old", Domain: ".youtube.com", Path: "/"}}
		if err := Save(path, seed); err != nil {
			t.Fatal(err)
		}

		sess := &fakeSession{loggedIn: true, cookies: fresh}
		driver := &fakeDriver{session: sess}
		m := testManager(t, Options{Path: path, Driver: driver, Headless: true})

		obs := &countingObserver{}
		m.Subscribe(obs)

		got, err := m.Refresh(context.Background())
		if err != nil {
			t.Fatalf("refresh: %v", err)
		}
		if len(got) != 1 || got[0].Value != "new" {
			t.Errorf("unexpected set: %+v", got)
		}
		if sess.navigated != DefaultOrigin {
			t.Errorf("navigated to %q", sess.navigated)
		}
		if len(sess.injected) != 1 || sess.injected[0].Value != "old" {
			t.Errorf("expected current set injected, got %+v", sess.injected)
		}
		if sess.closed.Load() != 1 {
			t.Error("session not closed")
		}
		if obs.updated.Load() != 1 || obs.failed.Load() != 0 {
			t.Errorf("observer counts: updated=%d failed=%d", obs.updated.Load(), obs.failed.Load())
		}

		persisted, err := Load(path)
		if err != nil {
			t.Fatal(err)
		}
		if len(persisted) != 1 || persisted[0].Value != "new" {
			t.Errorf("persisted set = %+v", persisted)
		}
	})

	t.Run("nil driver is automation unavailable", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cookies.json")
		if err := Save(path, fresh); err != nil {
			t.Fatal(err)
		}
		before, _ := os.ReadFile(path)

		m := testManager(t, Options{Path: path})
		obs := &countingObserver{}
		m.Subscribe(obs)

		set, err := m.Refresh(context.Background())
		if !errors.Is(err, shared.ErrAutomationUnavailable) {
			t.Errorf("expected ErrAutomationUnavailable, got %v", err)
		}
		if set != nil {
			t.Errorf("expected nil set, got %+v", set)
		}
		if obs.failed.Load() != 1 {
			t.Errorf("expected exactly one RefreshFailed, got %d", obs.failed.Load())
		}
		if obs.updated.Load() != 0 {
			t.Error("CookiesUpdated must not fire on failure")
		}

		after, _ := os.ReadFile(path)
		if string(before) != string(after) {
			t.Error("cookie file must be untouched on failure")
		}
	})

	t.Run("navigation failure closes session and notifies", func(t *testing.T) {
		sess := &fakeSession{navErr: errors.New("net::ERR_TIMED_OUT")}
		driver := &fakeDriver{session: sess}
		m := testManager(t, Options{Driver: driver, Headless: true})

		obs := &countingObserver{}
		m.Subscribe(obs)

		if _, err := m.Refresh(context.Background()); !errors.Is(err, shared.ErrNavigationTimeout) {
			t.Errorf("expected ErrNavigationTimeout, got %v", err)
		}
		if sess.closed.Load() != 1 {
			t.Error("session must be torn down on error")
		}
		if obs.failed.Load() != 1 {
			t.Errorf("expected one RefreshFailed, got %d", obs.failed.Load())
		}
	})

	t.Run("injection failure proceeds with clean session", func(t *testing.T) {
		sess := &fakeSession{loggedIn: true, cookies: fresh, injectErr: errors.New("bad cookie")}
		m := testManager(t, Options{
			Cookies:  Set{{Name: "old", Value: "x"}},
			Driver:   &fakeDriver{session: sess},
			Headless: true,
		})

		if _, err := m.Refresh(context.Background()); err != nil {
			t.Fatalf("injection failure must not fail refresh: %v", err)
		}
	})

	t.Run("headful login wait polls until logged in", func(t *testing.T) {
		sess := &fakeSession{loggedIn: false, cookies: fresh}
		m := testManager(t, Options{
			Driver:       &fakeDriver{session: sess},
			Headless:     false,
			LoginTimeout: 200 * time.Millisecond,
			LoginPoll:    10 * time.Millisecond,
		})

		start := time.Now()
		if _, err := m.Refresh(context.Background()); err != nil {
			t.Fatalf("elapsed login wait must not fail refresh: %v", err)
		}
		if elapsed := time.Since(start); elapsed < 200*time.Millisecond {
			t.Errorf("expected to wait out the bound, waited %v", elapsed)
		}
		if sess.loginPolls.Load() < 2 {
			t.Errorf("expected repeated polling, got %d probes", sess.loginPolls.Load())
		}
	})
}

func TestSubscribe(t *testing.T) {
	m := testManager(t, Options{Cookies: Set{}})

	a, b := &countingObserver{}, &countingObserver{}
	m.Subscribe(a)
	unsub := m.Subscribe(b)
	unsub()

	if _, err := m.Refresh(context.Background()); err == nil {
		t.Fatal("expected failure with nil driver")
	}
	if a.failed.Load() != 1 {
		t.Errorf("subscribed observer missed notification: %d", a.failed.Load())
	}
	if b.failed.Load() != 0 {
		t.Errorf("unsubscribed observer still notified: %d", b.failed.Load())
	}
}

func TestTick(t *testing.T) {
	fresh := Set{{Name: "SAPISID", Value: "new"}}

	t.Run("valid and not expiring skips refresh", func(t *testing.T) {
		driver := &fakeDriver{session: &fakeSession{cookies: fresh}}
		m := testManager(t, Options{
			Cookies: Set{{Name: "SID", ExpirationDate: epoch(time.Now().Add(72 * time.Hour))}},
			Driver:  driver,
			Lead:    time.Hour,
		})

		m.tick()
		if driver.opens.Load() != 0 {
			t.Errorf("refresh must not run for fresh cookies, opened %d sessions", driver.opens.Load())
		}
	})

	t.Run("expired set triggers refresh", func(t *testing.T) {
		driver := &fakeDriver{session: &fakeSession{loggedIn: true, cookies: fresh}}
		m := testManager(t, Options{
			Cookies:  Set{{Name: "SID", ExpirationDate: epoch(time.Now().Add(-time.Hour))}},
			Driver:   driver,
			Headless: true,
		})

		m.tick()
		if driver.opens.Load() != 1 {
			t.Errorf("expected one refresh session, got %d", driver.opens.Load())
		}
	})

	t.Run("tick errors stay contained", func(t *testing.T) {
		m := testManager(t, Options{
			Cookies: Set{{Name: "SID", ExpirationDate: epoch(time.Now().Add(-time.Hour))}},
		})
		m.tick() // nil driver; must not panic
	})
}

func TestScheduler(t *testing.T) {
	t.Run("start is idempotent and stop is safe twice", func(t *testing.T) {
		m := testManager(t, Options{Cookies: Set{}, Interval: time.Hour})
		m.StartAutoRefresh()
		m.StartAutoRefresh()
		m.StopAutoRefresh()
		m.StopAutoRefresh()
		m.Close()
	})

	t.Run("autostart honors option", func(t *testing.T) {
		m := testManager(t, Options{Cookies: Set{}, Interval: time.Hour, AutoStart: true})
		m.mu.Lock()
		running := m.stop != nil
		m.mu.Unlock()
		if !running {
			t.Error("expected scheduler running after autostart")
		}
	})
}

func TestConcurrentLoadAndRefresh(t *testing.T) {
	fresh := Set{{Name: "SAPISID", Value: "new", Domain: ".youtube.com", Path: "/"}}
	driver := &fakeDriver{session: &fakeSession{loggedIn: true, cookies: fresh}}
	m := testManager(t, Options{
		Cookies:  Set{{Name: "SAPISID", Value: "seed", Domain: ".youtube.com", Path: "/"}},
		Driver:   driver,
		Headless: true,
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			if _, err := m.Refresh(context.Background()); err != nil {
				t.Errorf("refresh failed: %v", err)
				return
			}
		}
	}()

	// Pathless managers keep the set inline; reads must stay consistent
	// while the refresh goroutine replaces it.
	for i := 0; i < 50; i++ {
		if set := m.Load(); len(set) == 0 {
			t.Error("load observed an empty set during refresh churn")
		}
	}
	<-done

	if got := m.Load()[0].Value; got != "new" {
		t.Errorf("expected refreshed cookie value, got %q", got)
	}
}
