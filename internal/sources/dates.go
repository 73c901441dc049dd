package sources

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Epoch-seconds values land in this band for any plausible ad date; larger
// numbers are epoch millis.
const (
	minEpochSeconds = 1e9
	maxEpochSeconds = 1e12
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ResolveTimestamp tries candidate values in order and returns the first one
// that parses to a usable time: numeric epoch seconds, numeric epoch millis,
// then ISO-style strings. Returns false when nothing parses.
func ResolveTimestamp(candidates ...interface{}) (time.Time, bool) {
	for _, c := range candidates {
		if t, ok := parseOne(c); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseOne(v interface{}) (time.Time, bool) {
	switch val := v.(type) {
	case nil:
		return time.Time{}, false
	case float64:
		return fromEpoch(val)
	case int64:
		return fromEpoch(float64(val))
	case int:
		return fromEpoch(float64(val))
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return fromEpoch(f)
		}
		return time.Time{}, false
	case string:
		return fromString(val)
	default:
		return time.Time{}, false
	}
}

func fromEpoch(v float64) (time.Time, bool) {
	if v < minEpochSeconds {
		return time.Time{}, false
	}
	if v < maxEpochSeconds {
		return time.Unix(int64(v), 0).UTC(), true
	}
	return time.UnixMilli(int64(v)).UTC(), true
}

func fromString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "undefined") {
		return time.Time{}, false
	}
	// Numeric strings carry epochs too.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return fromEpoch(f)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
