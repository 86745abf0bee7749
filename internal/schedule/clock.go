package schedule

import (
	"fmt"
	"time"
)

// Storage formats for naive dates and clock times.
const (
	DateLayout  = "2006-01-02" // YYYY-MM-DD
	ClockLayout = "15:04"      // HH:MM, zero-padded 24-hour
)

// TimeOfDay is a local clock time expressed as minutes since midnight.
// Schedule items persist their times as HH:MM strings; this is the
// structured value used whenever two times need to be compared.
type TimeOfDay int

// ParseClock parses a zero-padded 24-hour "HH:MM" string. Only the
// canonical form is accepted: stored times sort lexicographically, so a
// shape like "9:30" would order after "15:00" and break within-day
// sorting.
func ParseClock(s string) (TimeOfDay, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	tod := TimeOfDay(t.Hour()*60 + t.Minute())
	if tod.String() != s {
		return 0, fmt.Errorf("invalid clock time %q: must be zero-padded HH:MM", s)
	}
	return tod, nil
}

// Hour returns the hour component (0-23).
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component (0-59).
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// Before reports whether t is strictly earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool { return t < other }

// String formats the time back to zero-padded "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// ParseDate parses a naive YYYY-MM-DD calendar date. The returned time
// carries no meaningful clock component.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// FormatDate renders a date in the storage layout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
