package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinician-scheduler-server/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveRange(t *testing.T) {
	// 2024-03-13 is a Wednesday.
	wednesday := date(2024, time.March, 13)

	cases := []struct {
		name  string
		view  View
		today time.Time
		start time.Time
		end   time.Time
	}{
		{"today", ViewToday, wednesday, wednesday, wednesday},
		{"week runs sunday to saturday", ViewWeek, wednesday, date(2024, time.March, 10), date(2024, time.March, 16)},
		{"week anchored on sunday itself", ViewWeek, date(2024, time.March, 10), date(2024, time.March, 10), date(2024, time.March, 16)},
		{"month", ViewMonth, wednesday, date(2024, time.March, 1), date(2024, time.March, 31)},
		{"leap february", ViewMonth, date(2024, time.February, 15), date(2024, time.February, 1), date(2024, time.February, 29)},
		{"previous day", ViewPreviousDay, wednesday, date(2024, time.March, 12), date(2024, time.March, 12)},
		{"previous day across month edge", ViewPreviousDay, date(2024, time.March, 1), date(2024, time.February, 29), date(2024, time.February, 29)},
		{"previous week", ViewPreviousWeek, wednesday, date(2024, time.March, 3), date(2024, time.March, 9)},
		{"previous month", ViewPreviousMonth, wednesday, date(2024, time.February, 1), date(2024, time.February, 29)},
		{"previous month rolls the year", ViewPreviousMonth, date(2024, time.January, 20), date(2023, time.December, 1), date(2023, time.December, 31)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := ResolveRange(tc.view, tc.today)
			require.NoError(t, err)
			assert.Equal(t, tc.start, r.Start)
			assert.Equal(t, tc.end, r.End)
			assert.False(t, r.End.Before(r.Start))
		})
	}
}

func TestResolveRange_WeekSpansSevenDays(t *testing.T) {
	// Any reference date must yield exactly seven days for the week views.
	for offset := 0; offset < 14; offset++ {
		today := date(2024, time.February, 20).AddDate(0, 0, offset)
		for _, view := range []View{ViewWeek, ViewPreviousWeek} {
			r, err := ResolveRange(view, today)
			require.NoError(t, err)
			assert.Equal(t, time.Sunday, r.Start.Weekday())
			assert.Equal(t, 6, int(r.End.Sub(r.Start).Hours()/24))
		}
	}
}

func TestResolveRange_UnknownView(t *testing.T) {
	_, err := ResolveRange(View("fortnight"), date(2024, time.March, 13))
	assert.Error(t, err)
}

func TestParseView(t *testing.T) {
	v, err := ParseView("previous-month")
	require.NoError(t, err)
	assert.Equal(t, ViewPreviousMonth, v)

	_, err = ParseView("yesterday")
	assert.Error(t, err)
}

func calendarItems() []models.ScheduleItem {
	return []models.ScheduleItem{
		{Title: "Late clinic", Date: "2024-03-12", StartTime: "15:00", Type: models.TypeAppointment, Status: models.ItemStatusAccepted},
		{Title: "Ward round", Date: "2024-03-12", StartTime: "08:00", Type: models.TypeTask, Status: models.ItemStatusPending},
		{Title: "Theatre", Date: "2024-03-13", StartTime: "10:30", Type: models.TypeSurgery, Status: models.ItemStatusApproved},
		{Title: "Handover", Date: "2024-03-20", StartTime: "17:00", Type: models.TypeMeeting, Status: models.ItemStatusCompleted},
	}
}

func TestSelectInRange(t *testing.T) {
	r := DateRange{Start: date(2024, time.March, 10), End: date(2024, time.March, 16)}

	inRange := SelectInRange(calendarItems(), r, Filter{})
	assert.Len(t, inRange, 3, "the march 20 meeting is outside the week")

	surgeries := SelectInRange(calendarItems(), r, Filter{Type: models.TypeSurgery})
	require.Len(t, surgeries, 1)
	assert.Equal(t, "Theatre", surgeries[0].Title)

	pending := SelectInRange(calendarItems(), r, Filter{Status: models.ItemStatusPending})
	require.Len(t, pending, 1)
	assert.Equal(t, "Ward round", pending[0].Title)

	none := SelectInRange(calendarItems(), r, Filter{Type: models.TypeSurgery, Status: models.ItemStatusPending})
	assert.Empty(t, none)
}

func TestGroupByDate_PartitionAndOrder(t *testing.T) {
	items := calendarItems()
	grouped := GroupByDate(items)

	total := 0
	for _, bucket := range grouped {
		total += len(bucket)
	}
	assert.Equal(t, len(items), total, "grouping must partition the input")

	tuesday := grouped["2024-03-12"]
	require.Len(t, tuesday, 2)
	assert.Equal(t, "Ward round", tuesday[0].Title, "buckets are ordered by start time")
	assert.Equal(t, "Late clinic", tuesday[1].Title)
}

func TestSummarize(t *testing.T) {
	items := []models.ScheduleItem{
		{Date: "2024-03-13", Status: models.ItemStatusPending},
		{Date: "2024-03-14", Status: models.ItemStatusAccepted},
		{Date: "2024-03-13", Status: models.ItemStatusApproved},
		{Date: "2024-03-10", Status: models.ItemStatusCompleted},
		{Date: "2024-03-13", Status: models.ItemStatusRejected},
		{Date: "2024-03-13", Status: models.ItemStatusCancelled},
	}

	counts := Summarize(items, date(2024, time.March, 13))
	assert.Equal(t, 1, counts.Pending)
	assert.Equal(t, 2, counts.Accepted, "approved items count into the accepted bucket")
	assert.Equal(t, 1, counts.Completed)
	assert.Equal(t, 4, counts.Today, "today counts every status")
}

func TestGenerateSlots_Defaults(t *testing.T) {
	slots := GenerateSlots(SlotConfig{})
	require.Len(t, slots, 16)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "16:30", slots[len(slots)-1])
	assert.NotContains(t, slots, "17:00", "the end hour is exclusive")
}

func TestGenerateSlots_CustomWindow(t *testing.T) {
	slots := GenerateSlots(SlotConfig{StartHour: 8, EndHour: 10, StepMinutes: 15})
	assert.Equal(t, []string{"08:00", "08:15", "08:30", "08:45", "09:00", "09:15", "09:30", "09:45"}, slots)
}
