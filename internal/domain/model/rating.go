package model

import (
	"math"
	"strconv"
	"strings"
)

// Rating is a contest rating as reported upstream. Upstream normally sends
// a JSON number, but string-wrapped numerics appear in the wild, so both
// decode. The coercion rule is deliberate and narrow: JSON numbers and
// quoted numerics (surrounding whitespace allowed) parsed with
// strconv.ParseFloat; everything else, plus NaN and infinities, is kept as
// "unusable" and plots as a gap instead of failing the fetch.
type Rating struct {
	value float64
	valid bool
}

// NewRating builds a usable Rating unless v is NaN or infinite.
func NewRating(v float64) Rating {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Rating{}
	}
	return Rating{value: v, valid: true}
}

// Value returns the numeric rating and whether it is usable.
func (r Rating) Value() (float64, bool) {
	return r.value, r.valid
}

// UnmarshalJSON implements tolerant decoding. It never returns an error:
// an unreadable rating degrades to the zero (unusable) Rating.
func (r *Rating) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*r = Rating{}
		return nil
	}
	if strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) && len(s) >= 2 {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*r = Rating{}
		return nil
	}
	*r = NewRating(v)
	return nil
}

// MarshalJSON renders unusable ratings as null so chart consumers see an
// explicit gap.
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(r.value, 'f', -1, 64)), nil
}
