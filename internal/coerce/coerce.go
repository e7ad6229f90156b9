// Package coerce turns loosely typed caller input (values decoded from UI
// JSON, form strings) into the integer and time shapes the backend expects.
package coerce

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Int parses integral numbers and numeric strings. Fractional values are
// rejected rather than truncated.
func Int(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case float32:
		return floatInt(float64(x))
	case float64:
		return floatInt(x)
	case json.Number:
		return stringInt(x.String())
	case string:
		return stringInt(x)
	default:
		return 0, false
	}
}

func floatInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	// int64(f) is undefined outside the int64 range
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func stringInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return floatInt(f)
	}
	return 0, false
}

// PositiveInt returns v as an int >= 1, or def when v is missing, invalid or
// not positive.
func PositiveInt(v any, def int) int {
	n, ok := Int(v)
	if !ok || n < 1 || n > math.MaxInt32 {
		return def
	}
	return int(n)
}

// ID returns v as int64 when it is integral, otherwise the trimmed string
// form. Callers use it where the backend accepts either.
func ID(v any) any {
	if n, ok := Int(v); ok {
		return n
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return v
}

// Present reports whether a required value was supplied: nil and blank
// strings count as missing.
func Present(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(x) != ""
	case *string:
		return x != nil && strings.TrimSpace(*x) != ""
	default:
		return true
	}
}

var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Time accepts time.Time, *time.Time, and strings in common ISO-8601 forms.
func Time(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, !x.IsZero()
	case *time.Time:
		if x == nil || x.IsZero() {
			return time.Time{}, false
		}
		return *x, true
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range layouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
