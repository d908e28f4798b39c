// Package timestamp converts the three wire encodings of an instant
// (seconds+nanos pair, date string, native value) into one canonical form:
// UTC, millisecond precision. Everything downstream of the HTTP layer works
// with the canonical form only.
package timestamp

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var ErrNotAnInstant = errors.New("value is not a recognizable instant")

// SecondsNanos mirrors the structured timestamp shape some clients send:
// whole seconds since epoch plus a nanosecond remainder.
type SecondsNanos struct {
	Seconds int64 `json:"seconds"`
	Nanos   int64 `json:"nanos"`
}

var stringLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalize maps any accepted input shape onto the canonical instant.
// Already-canonical values pass through unchanged, so the function is
// idempotent. Unsupported or unparseable input yields ErrNotAnInstant.
func Normalize(input any) (time.Time, error) {
	switch value := input.(type) {
	case nil:
		return time.Time{}, fmt.Errorf("nil input: %w", ErrNotAnInstant)
	case time.Time:
		if value.IsZero() {
			return time.Time{}, fmt.Errorf("zero time: %w", ErrNotAnInstant)
		}
		return canonical(value), nil
	case *time.Time:
		if value == nil {
			return time.Time{}, fmt.Errorf("nil input: %w", ErrNotAnInstant)
		}
		return Normalize(*value)
	case SecondsNanos:
		return canonical(time.Unix(value.Seconds, value.Nanos)), nil
	case *SecondsNanos:
		if value == nil {
			return time.Time{}, fmt.Errorf("nil input: %w", ErrNotAnInstant)
		}
		return Normalize(*value)
	case string:
		return normalizeString(value)
	case float64:
		return normalizeEpochMillis(value)
	case int64:
		return canonical(time.UnixMilli(value)), nil
	case int:
		return canonical(time.UnixMilli(int64(value))), nil
	case json.Number:
		parsed, err := value.Float64()
		if err != nil {
			return time.Time{}, fmt.Errorf("numeric timestamp %q: %w", value.String(), ErrNotAnInstant)
		}
		return normalizeEpochMillis(parsed)
	default:
		return time.Time{}, fmt.Errorf("unsupported type %T: %w", input, ErrNotAnInstant)
	}
}

func normalizeString(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty string: %w", ErrNotAnInstant)
	}
	for _, layout := range stringLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return canonical(parsed), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q: %w", raw, ErrNotAnInstant)
}

func normalizeEpochMillis(millis float64) (time.Time, error) {
	if math.IsNaN(millis) || math.IsInf(millis, 0) {
		return time.Time{}, fmt.Errorf("non-finite epoch value: %w", ErrNotAnInstant)
	}
	return canonical(time.UnixMilli(int64(millis))), nil
}

func canonical(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
