package cookies

import (
	"net/http"
	"time"
)

// SameSite mirrors the browser cookie same-site policy.
type SameSite string

const (
	SameSiteStrict      SameSite = "strict"
	SameSiteLax         SameSite = "lax"
	SameSiteNone        SameSite = "no_restriction"
	SameSiteUnspecified SameSite = "unspecified"
)

// Cookie is one browser cookie record.
//
// The JSON field layout matches what browser cookie-export extensions
// produce, so an exported cookies.json drops in as-is. A zero
// ExpirationDate marks a session cookie, which never expires by clock.
type Cookie struct {
	Name           string   `json:"name"`
	Value          string   `json:"value"`
	Domain         string   `json:"domain"`
	Path           string   `json:"path"`
	Secure         bool     `json:"secure"`
	HTTPOnly       bool     `json:"httpOnly"`
	HostOnly       bool     `json:"hostOnly,omitempty"`
	SameSite       SameSite `json:"sameSite,omitempty"`
	ExpirationDate float64  `json:"expirationDate,omitempty"` // epoch seconds
}

// Key returns the identity of a cookie within a set: (name, domain, path).
func (c Cookie) Key() string {
	return c.Name + "|" + c.Domain + "|" + c.Path
}

// Session reports whether the cookie is session-scoped (no expiry).
func (c Cookie) Session() bool {
	return c.ExpirationDate == 0
}

// Expiry returns the cookie's absolute expiry time. The second return is
// false for session cookies.
func (c Cookie) Expiry() (time.Time, bool) {
	if c.Session() {
		return time.Time{}, false
	}
	sec := int64(c.ExpirationDate)
	nsec := int64((c.ExpirationDate - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec), true
}

// ExpiredAt reports whether the cookie's expiry is strictly before now.
func (c Cookie) ExpiredAt(now time.Time) bool {
	exp, ok := c.Expiry()
	return ok && exp.Before(now)
}

// ExpiresWithin reports whether a non-expired cookie's expiry falls inside
// the lead window starting at now.
func (c Cookie) ExpiresWithin(now time.Time, lead time.Duration) bool {
	exp, ok := c.Expiry()
	return ok && !exp.Before(now) && exp.Before(now.Add(lead))
}

// HTTP converts the cookie into an [http.Cookie] for jar seeding.
func (c Cookie) HTTP() *http.Cookie {
	hc := &http.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Domain:   c.Domain,
		Path:     c.Path,
		Secure:   c.Secure,
		HttpOnly: c.HTTPOnly,
	}
	if exp, ok := c.Expiry(); ok {
		hc.Expires = exp
	}
	switch c.SameSite {
	case SameSiteStrict:
		hc.SameSite = http.SameSiteStrictMode
	case SameSiteLax:
		hc.SameSite = http.SameSiteLaxMode
	case SameSiteNone:
		hc.SameSite = http.SameSiteNoneMode
	default:
		hc.SameSite = http.SameSiteDefaultMode
	}
	return hc
}

// Set is an ordered collection of cookies, persisted and replaced as a unit.
type Set []Cookie

// HTTP converts the whole set for jar seeding.
func (s Set) HTTP() []*http.Cookie {
	out := make([]*http.Cookie, 0, len(s))
	for _, c := range s {
		out = append(out, c.HTTP())
	}
	return out
}

// Get looks up a cookie by name, ignoring domain/path scope. Returns the
// first match in set order.
func (s Set) Get(name string) (Cookie, bool) {
	for _, c := range s {
		if c.Name == name {
			return c, true
		}
	}
	return Cookie{}, false
}

// FromPairs builds a session-scoped set from name/value pairs (e.g. parsed
// out of a cURL Cookie header) bound to the given domain.
func FromPairs(pairs [][2]string, domain string) Set {
	set := make(Set, 0, len(pairs))
	for _, p := range pairs {
		set = append(set, Cookie{
			Name:     p[0],
			Value:    p[1],
			Domain:   domain,
			Path:     "/",
			Secure:   true,
			SameSite: SameSiteUnspecified,
		})
	}
	return set
}
