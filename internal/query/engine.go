package query

import (
	"log"
	"strings"
	"time"
)

// WarnFunc receives diagnostics for degraded-path handling (malformed nested
// JSON, unparseable dates). The engine never fails a query over bad data; it
// warns and continues so a partially filled filter panel can never crash a
// caller.
type WarnFunc func(format string, args ...interface{})

// Engine runs filter, search, sort, statistics, and recommendation passes over
// in-memory property collections. All operations are pure: they never mutate
// their input and hold no state between calls.
type Engine struct {
	warn WarnFunc
	now  func() time.Time
}

// New creates an engine. A nil warn falls back to the standard logger.
func New(warn WarnFunc) *Engine {
	if warn == nil {
		warn = log.Printf
	}
	return &Engine{
		warn: warn,
		now:  time.Now,
	}
}

// dateLayouts are the formats accepted for availability and creation dates.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseDate parses a feed date string, reporting success.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// fold lowercases and trims a string for case-insensitive comparison.
func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// matchAmenity reports whether a requested amenity matches a listing amenity.
// Matching is a case-insensitive substring test in either direction, so
// "pool" matches "Swimming Pool" and "Swimming Pool" matches "pool deck".
func matchAmenity(requested, have string) bool {
	r := fold(requested)
	h := fold(have)
	if r == "" || h == "" {
		return false
	}
	return strings.Contains(h, r) || strings.Contains(r, h)
}
