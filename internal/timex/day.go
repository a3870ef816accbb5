package timex

import (
	"fmt"
	"time"
)

// DayLayout is the wire and storage form of a calendar day.
const DayLayout = "2006-01-02"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	DayLayout,
}

// StartOfDay returns 00:00:00 of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// CivilDay rebuilds a day value read back from storage. Drivers return DATE
// columns as UTC midnight; the civil date is kept and re-anchored in loc.
func CivilDay(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// FormatDay renders the calendar day of t (already in the wanted zone).
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseTimestamp accepts RFC 3339 timestamps and zone-less local forms
// ("2024-01-10T08:00"), interpreting the latter in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// ParseDay parses any accepted timestamp form and truncates it to the
// start of its calendar day in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	t, err := ParseTimestamp(s, loc)
	if err != nil {
		return time.Time{}, err
	}
	return StartOfDay(t, loc), nil
}

