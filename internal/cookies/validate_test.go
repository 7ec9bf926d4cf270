package cookies

import (
	"testing"
	"time"
)

func epoch(t time.Time) float64 { return float64(t.UnixNano()) / float64(time.Second) }

func TestValidateAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	lead := time.Hour

	t.Run("empty set", func(t *testing.T) {
		for _, set := range []Set{nil, {}} {
			v := ValidateAt(set, lead, now)
			if v.Valid {
				t.Error("expected empty set to be invalid")
			}
			if v.Message != "No credentials provided" {
				t.Errorf("unexpected message: %q", v.Message)
			}
		}
	})

	t.Run("session cookies never expire", func(t *testing.T) {
		set := Set{{Name: "SID", Value: "x", Domain: ".youtube.com", Path: "/"}}
		v := ValidateAt(set, lead, now)
		if !v.Valid || v.Expired || v.ExpiringSoon {
			t.Errorf("unexpected validation: %+v", v)
		}
		if !v.NearestExpiry.IsZero() {
			t.Errorf("expected zero nearest expiry, got %v", v.NearestExpiry)
		}
	})

	t.Run("any expired cookie invalidates the set", func(t *testing.T) {
		set := Set{
			{Name: "fresh", ExpirationDate: epoch(now.Add(48 * time.Hour))},
			{Name: "stale", ExpirationDate: epoch(now.Add(-time.Minute))},
		}
		v := ValidateAt(set, lead, now)
		if v.Valid {
			t.Error("expected invalid")
		}
		if !v.Expired {
			t.Error("expected Expired true")
		}
	})

	t.Run("expiring soon stays valid", func(t *testing.T) {
		set := Set{
			{Name: "soon", ExpirationDate: epoch(now.Add(30 * time.Minute))},
			{Name: "fresh", ExpirationDate: epoch(now.Add(48 * time.Hour))},
		}
		v := ValidateAt(set, lead, now)
		if !v.Valid {
			t.Error("expected valid")
		}
		if !v.ExpiringSoon {
			t.Error("expected ExpiringSoon true")
		}
		if got, want := v.NearestExpiry, now.Add(30*time.Minute); !got.Equal(want) {
			t.Errorf("nearest expiry = %v, want %v", got, want)
		}
	})

	t.Run("outside lead window is quiet", func(t *testing.T) {
		set := Set{{Name: "fresh", ExpirationDate: epoch(now.Add(2 * time.Hour))}}
		v := ValidateAt(set, lead, now)
		if !v.Valid || v.ExpiringSoon {
			t.Errorf("unexpected validation: %+v", v)
		}
	})

	t.Run("expiry exactly now counts as expiring not expired", func(t *testing.T) {
		set := Set{{Name: "edge", ExpirationDate: epoch(now)}}
		v := ValidateAt(set, lead, now)
		if !v.Valid {
			t.Error("strictly-before semantics: expiry == now is not expired")
		}
		if !v.ExpiringSoon {
			t.Error("expiry == now falls inside the lead window")
		}
	})
}

func TestCookieExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("fractional epoch seconds survive", func(t *testing.T) {
		c := Cookie{Name: "c", ExpirationDate: epoch(now) + 0.5}
		exp, ok := c.Expiry()
		if !ok {
			t.Fatal("expected expiry")
		}
		if exp.Sub(now) < 400*time.Millisecond || exp.Sub(now) > 600*time.Millisecond {
			t.Errorf("expected ~500ms past now, got %v", exp.Sub(now))
		}
	})

	t.Run("session cookie", func(t *testing.T) {
		c := Cookie{Name: "c"}
		if !c.Session() {
			t.Error("expected session cookie")
		}
		if c.ExpiredAt(now) {
			t.Error("session cookies never clock-expire")
		}
	})
}
