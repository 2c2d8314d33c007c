package valueobject

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrMissingGoalID is returned by CoerceGoalID when no id is present.
var ErrMissingGoalID = errors.New("goal id is missing")

// timestampLayouts are tried in order. Offsets may be extended (+02:00), basic (+0200)
// or hour-only (+02). Layouts without a zone parse as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 value into a UTC instant.
// Zone-less values are read as UTC. Anything absent or unparseable yields nil.
func ParseTimestamp(v any) *time.Time {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	return nil
}

// CoerceAmount converts a loosely typed amount into a finite, non-negative float64.
// Non-numeric, negative, NaN and infinite values become 0.
func CoerceAmount(v any) float64 {
	f := CoerceSigned(v)
	if f < 0 {
		return 0
	}
	return f
}

// CoerceSigned converts a loosely typed number into a finite float64, keeping its sign.
func CoerceSigned(v any) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// CoerceGoalID converts a loosely typed identifier ("8000", 8000, 8000.0) into an int64.
func CoerceGoalID(v any) (int64, error) {
	switch t := v.(type) {
	case nil:
		return 0, ErrMissingGoalID
	case int:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int64:
		return t, nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) || t != math.Trunc(t) {
			return 0, fmt.Errorf("goal id %v is not an integer", t)
		}
		return int64(t), nil
	case json.Number:
		if id, err := t.Int64(); err == nil {
			return id, nil
		}
		f, err := t.Float64()
		if err != nil {
			return 0, fmt.Errorf("goal id %q is not an integer: %w", t.String(), err)
		}
		return CoerceGoalID(f)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, ErrMissingGoalID
		}
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("goal id %q is not an integer: %w", s, err)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("goal id has unsupported type %T", v)
	}
}

// CoerceString returns v when it is a string, otherwise its default formatting.
func CoerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// RoundTo rounds x half away from zero to the given number of decimal places.
func RoundTo(x float64, places int32) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return decimal.NewFromFloat(x).Round(places).InexactFloat64()
}
