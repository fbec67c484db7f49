// Package model defines the invoice and ESG data types shared across the
// backend. Numeric invoice fields use Number so that loosely typed dashboard
// payloads (numbers, grouped strings, nulls) normalize to a float or an
// explicit no-value marker instead of failing to decode.
package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Number is a nullable float that tolerates heterogeneous JSON input.
// Invalid means "no value": the field was absent, null, or unparseable.
type Number struct {
	Value float64
	Valid bool
}

// Num returns a valid Number holding v.
func Num(v float64) Number {
	return Number{Value: v, Valid: true}
}

// ParseNumber coerces an arbitrary scalar into a float. Strings are trimmed
// and thousands separators stripped before parsing. It never panics; any
// conversion failure reports ok=false.
func ParseNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(x, ",", ""))
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// UnmarshalJSON accepts numbers, numeric strings, and null. Anything that
// cannot be coerced becomes the no-value marker rather than an error.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*n = Number{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = Number{}
			return nil
		}
		f, ok := ParseNumber(s)
		*n = Number{Value: f, Valid: ok}
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*n = Number{}
		return nil
	}
	*n = Num(f)
	return nil
}

// MarshalJSON emits the float value, or null for the no-value marker.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Or returns the value when valid, otherwise the supplied default.
func (n Number) Or(def float64) float64 {
	if n.Valid {
		return n.Value
	}
	return def
}
