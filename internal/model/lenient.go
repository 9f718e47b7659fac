package model

import (
	"bytes"
	"math"
	"strconv"
	"strings"
)

// LenientNumber is a quantity or amount read from untrusted form input.
//
// Decoding never fails: null, missing, empty, non-numeric, negative and
// non-finite values all become zero. This is a deliberate leniency policy
// so a half-filled form still produces totals; it is not validation.
type LenientNumber float64

// UnmarshalJSON accepts JSON numbers and numeric strings
func (n *LenientNumber) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if len(raw) > 0 && raw[0] == '"' {
		s, err := strconv.Unquote(string(raw))
		if err != nil {
			*n = 0
			return nil
		}
		*n = LenientNumber(ParseLenient(s))
		return nil
	}
	*n = LenientNumber(ParseLenient(string(raw)))
	return nil
}

// Float64 returns the coerced value
func (n LenientNumber) Float64() float64 {
	return float64(n)
}

// ParseLenient parses a form value, substituting zero for anything that is
// not a finite, non-negative number. Grouping commas are ignored.
func ParseLenient(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || s == "null" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return sanitize(v)
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// clampPercent keeps a percentage discount within 0-100
func clampPercent(v float64) float64 {
	return math.Min(sanitize(v), 100)
}
