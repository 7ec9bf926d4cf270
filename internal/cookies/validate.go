package cookies

import (
	"fmt"
	"time"
)

// Validation is the derived freshness report for a cookie set.
//
// Valid and ExpiringSoon are independent signals: a set with no expired
// cookie is valid even when some cookie expires inside the lead window.
type Validation struct {
	Valid         bool
	Expired       bool
	ExpiringSoon  bool
	NearestExpiry time.Time // zero when every cookie is session-scoped
	Message       string
}

// Validate computes a [Validation] for the set against the current clock,
// using lead as the refresh-before-expiry window.
func Validate(set Set, lead time.Duration) Validation {
	return ValidateAt(set, lead, time.Now())
}

// ValidateAt is [Validate] with an explicit clock.
func ValidateAt(set Set, lead time.Duration, now time.Time) Validation {
	if len(set) == 0 {
		return Validation{Message: "No credentials provided"}
	}

	var v Validation
	expired := 0
	for _, c := range set {
		exp, ok := c.Expiry()
		if !ok {
			continue
		}
		if v.NearestExpiry.IsZero() || exp.Before(v.NearestExpiry) {
			v.NearestExpiry = exp
		}
		if c.ExpiredAt(now) {
			expired++
		} else if c.ExpiresWithin(now, lead) {
			v.ExpiringSoon = true
		}
	}

	v.Expired = expired > 0
	v.Valid = !v.Expired

	switch {
	case v.Expired:
		v.Message = fmt.Sprintf("%d of %d cookies expired", expired, len(set))
	case v.ExpiringSoon:
		v.Message = fmt.Sprintf("cookies expiring soon (nearest %s)", v.NearestExpiry.Format(time.RFC3339))
	default:
		v.Message = fmt.Sprintf("%d cookies valid", len(set))
	}

	return v
}
