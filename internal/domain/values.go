package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ============================================================
// Lenient JSON scalars
// ============================================================
//
// The dashboard forms post numbers sometimes as JSON numbers and sometimes
// as strings ("80", "1.5", ""). These types accept both shapes.

// Number is a numeric request field.
// Null, an absent key and "" leave it unset.
type Number struct {
	// Set reports that a non-empty value was sent.
	Set bool
	// Valid reports that the value parsed as a finite float.
	Valid bool
	Value float64

	raw string
}

// NumberOf returns a set and valid Number.
func NumberOf(v float64) Number {
	return Number{Set: true, Valid: true, Value: v, raw: strconv.FormatFloat(v, 'f', -1, 64)}
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number{}

	s := string(bytes.TrimSpace(b))
	switch {
	case s == "null":
		return nil
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
		if s == "" {
			return nil
		}
	case strings.HasPrefix(s, "{"), strings.HasPrefix(s, "["):
		return fmt.Errorf("expected number, got %.20s", s)
	}

	n.Set = true
	n.raw = s
	if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		n.Valid = true
		n.Value = v
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	switch {
	case !n.Set:
		return []byte("null"), nil
	case n.Valid:
		return json.Marshal(n.Value)
	default:
		return json.Marshal(n.raw)
	}
}

// Raw returns the value as it was sent, or "" when unset.
func (n Number) Raw() string {
	return n.raw
}

// FloatOr returns the parsed value, or def when the value is unset,
// unparseable or zero.
func (n Number) FloatOr(def float64) float64 {
	if !n.Valid || n.Value == 0 {
		return def
	}
	return n.Value
}

// IntOr returns the value truncated towards zero, or def when the value is
// unset, unparseable or truncates to zero.
func (n Number) IntOr(def int64) int64 {
	if !n.Valid {
		return def
	}
	v := math.Trunc(n.Value)
	if v == 0 || v > math.MaxInt64 || v < math.MinInt64 {
		return def
	}
	return int64(v)
}

// ID returns a positive integer identifier, or false.
func (n Number) ID() (int64, bool) {
	if !n.Valid || n.Value != math.Trunc(n.Value) || n.Value <= 0 || n.Value > math.MaxInt64 {
		return 0, false
	}
	return int64(n.Value), true
}

// Text is a string request field that also accepts JSON numbers and booleans
// (house numbers and postal codes arrive as either).
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	switch {
	case s == "null":
		*t = ""
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*t = Text(str)
	case strings.HasPrefix(s, "{"), strings.HasPrefix(s, "["):
		return fmt.Errorf("expected string, got %.20s", s)
	default:
		*t = Text(s)
	}
	return nil
}

// String returns the text as a plain string.
func (t Text) String() string {
	return string(t)
}

// OrNil returns nil for empty text, for nullable columns.
func (t Text) OrNil() *string {
	if t == "" {
		return nil
	}
	s := string(t)
	return &s
}
