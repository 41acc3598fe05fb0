package models

import (
	"strings"
	"time"
)

// Layouts accepted when re-parsing stored instants. The app has always
// written RFC 3339, but imported backups may carry date-only values.
var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseInstant parses a stored ISO-8601 instant. Returns false for
// empty or unparseable values; callers decide the fallback.
func ParseInstant(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatInstant renders an instant the way every store record does.
func FormatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// DayStart zeroes the time-of-day components in t's location.
// Calendar-day comparisons across the app go through this.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameCalendarDay compares two instants at day granularity in local time.
func SameCalendarDay(a, b time.Time) bool {
	return DayStart(a.Local()).Equal(DayStart(b.Local()))
}

// DaysBetween returns the whole calendar days from a to b in local
// time. The dates are re-anchored in UTC before subtracting so that a
// short or long DST day still counts as exactly one day.
func DaysBetween(a, b time.Time) int {
	al, bl := a.Local(), b.Local()
	ad := time.Date(al.Year(), al.Month(), al.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(bl.Year(), bl.Month(), bl.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad) / (24 * time.Hour))
}

func containsFold(haystack, loweredNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), loweredNeedle)
}
