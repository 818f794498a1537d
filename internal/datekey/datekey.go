// Package datekey converts between times and the local "YYYY-MM-DD" keys used
// to index planned outfits and group wear-log entries.
//
// Keys are built from the time's own location, never from its UTC form, so an
// evening in UTC-5 stays on the same calendar day. Keys are fixed-width and
// zero-padded, so comparing them as strings compares them chronologically.
package datekey

import (
	"fmt"
	"time"
)

// Layout is the date-key format.
const Layout = "2006-01-02"

// Key returns the date key of t in t's location.
func Key(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// Today returns the date key of now.
func Today(now time.Time) string {
	return Key(now)
}

// Valid reports whether key is a well-formed date key.
func Valid(key string) bool {
	if len(key) != len(Layout) {
		return false
	}
	_, err := time.Parse(Layout, key)
	return err == nil
}

// Parse returns midnight of the day named by key in loc.
func Parse(key string, loc *time.Location) (time.Time, error) {
	if len(key) != len(Layout) {
		return time.Time{}, fmt.Errorf("invalid date key %q", key)
	}
	t, err := time.ParseInLocation(Layout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}

// Noon returns 12:00 on the day named by key in loc. Date-only events are
// stored at noon so they map back to the same key across DST changes.
func Noon(key string, loc *time.Location) (time.Time, error) {
	t, err := Parse(key, loc)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, loc), nil
}

// Before reports whether day a comes before day b.
func Before(a, b string) bool {
	return a < b
}

// AddDays returns the key n days after key, in loc.
func AddDays(key string, n int, loc *time.Location) (string, error) {
	t, err := Parse(key, loc)
	if err != nil {
		return "", err
	}
	return Key(t.AddDate(0, 0, n)), nil
}
