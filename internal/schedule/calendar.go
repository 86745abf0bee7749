package schedule

import (
	"sort"
	"time"

	"clinician-scheduler-server/internal/models"
)

// View names a calendar window relative to the current date.
type View string

const (
	ViewToday         View = "today"
	ViewWeek          View = "week"
	ViewMonth         View = "month"
	ViewPreviousDay   View = "previous-day"
	ViewPreviousWeek  View = "previous-week"
	ViewPreviousMonth View = "previous-month"
)

// ParseView validates a view name supplied over the wire.
func ParseView(s string) (View, error) {
	switch View(s) {
	case ViewToday, ViewWeek, ViewMonth, ViewPreviousDay, ViewPreviousWeek, ViewPreviousMonth:
		return View(s), nil
	default:
		return "", &ValidationError{Field: "view", Reason: "unknown view " + s}
	}
}

// DateRange is an inclusive pair of naive calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the YYYY-MM-DD date string falls inside the
// range. The storage layout sorts lexicographically, so string
// comparison against the formatted endpoints is exact.
func (r DateRange) Contains(date string) bool {
	return date >= FormatDate(r.Start) && date <= FormatDate(r.End)
}

// dateOnly strips the clock component, keeping the calendar date naive.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ResolveRange maps a named view plus the current date to a concrete
// inclusive date range. Weeks run Sunday through Saturday. The only
// possible error is an unknown view, which indicates a caller bug.
func ResolveRange(view View, today time.Time) (DateRange, error) {
	day := dateOnly(today)

	switch view {
	case ViewToday:
		return DateRange{Start: day, End: day}, nil

	case ViewWeek:
		start := day.AddDate(0, 0, -int(day.Weekday()))
		return DateRange{Start: start, End: start.AddDate(0, 0, 6)}, nil

	case ViewMonth:
		first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return DateRange{Start: first, End: first.AddDate(0, 1, -1)}, nil

	case ViewPreviousDay:
		prev := day.AddDate(0, 0, -1)
		return DateRange{Start: prev, End: prev}, nil

	case ViewPreviousWeek:
		anchor := day.AddDate(0, 0, -7)
		start := anchor.AddDate(0, 0, -int(anchor.Weekday()))
		return DateRange{Start: start, End: start.AddDate(0, 0, 6)}, nil

	case ViewPreviousMonth:
		firstOfCurrent := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return DateRange{
			Start: firstOfCurrent.AddDate(0, -1, 0),
			End:   firstOfCurrent.AddDate(0, 0, -1),
		}, nil

	default:
		return DateRange{}, &ValidationError{Field: "view", Reason: "unknown view " + string(view)}
	}
}

// Filter narrows a selection by exact type and status match. Zero values
// mean no constraint on that field.
type Filter struct {
	Type   models.ItemType
	Status models.ItemStatus
}

// SelectInRange returns the items whose date falls inside the range and
// that satisfy every provided filter.
func SelectInRange(items []models.ScheduleItem, r DateRange, f Filter) []models.ScheduleItem {
	selected := make([]models.ScheduleItem, 0, len(items))
	for _, item := range items {
		if !r.Contains(item.Date) {
			continue
		}
		if f.Type != "" && item.Type != f.Type {
			continue
		}
		if f.Status != "" && item.Status != f.Status {
			continue
		}
		selected = append(selected, item)
	}
	return selected
}

// GroupByDate buckets items by calendar date. Every input item lands in
// exactly one bucket, keyed by its YYYY-MM-DD date; items within a
// bucket are ordered by start time ascending.
func GroupByDate(items []models.ScheduleItem) map[string][]models.ScheduleItem {
	grouped := make(map[string][]models.ScheduleItem)
	for _, item := range items {
		grouped[item.Date] = append(grouped[item.Date], item)
	}
	for date := range grouped {
		bucket := grouped[date]
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].StartTime < bucket[j].StartTime
		})
	}
	return grouped
}

// Counts summarizes a collection of items for dashboard rendering.
// Accepted deliberately merges accepted and approved items; Today counts
// items dated today regardless of status.
type Counts struct {
	Pending   int `json:"pending"`
	Accepted  int `json:"accepted"`
	Completed int `json:"completed"`
	Today     int `json:"today"`
}

// Summarize computes the dashboard counts over items.
func Summarize(items []models.ScheduleItem, today time.Time) Counts {
	todayStr := FormatDate(dateOnly(today))
	var counts Counts
	for _, item := range items {
		switch item.Status {
		case models.ItemStatusPending:
			counts.Pending++
		case models.ItemStatusAccepted, models.ItemStatusApproved:
			counts.Accepted++
		case models.ItemStatusCompleted:
			counts.Completed++
		}
		if item.Date == todayStr {
			counts.Today++
		}
	}
	return counts
}

// SlotConfig controls bookable slot generation. Zero values fall back to
// the standard 09:00-17:00 day in 30 minute steps.
type SlotConfig struct {
	StartHour   int
	EndHour     int
	StepMinutes int
}

// GenerateSlots produces the slot start boundaries for a working day as
// HH:MM strings. The end hour is exclusive: no slot starts at it. The
// generator performs no availability filtering against existing
// bookings.
func GenerateSlots(cfg SlotConfig) []string {
	if cfg.StartHour == 0 && cfg.EndHour == 0 {
		cfg.StartHour, cfg.EndHour = 9, 17
	}
	if cfg.StepMinutes <= 0 {
		cfg.StepMinutes = 30
	}

	var slots []string
	for m := cfg.StartHour * 60; m < cfg.EndHour*60; m += cfg.StepMinutes {
		slots = append(slots, TimeOfDay(m).String())
	}
	return slots
}
