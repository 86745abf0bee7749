package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinician-scheduler-server/internal/models"
)

func validInput() NewItemInput {
	return NewItemInput{
		ClinicianID: "clin-1",
		Title:       "Morning clinic",
		Type:        models.TypeAppointment,
		Date:        "2024-03-12",
		StartTime:   "09:00",
		EndTime:     "12:00",
	}
}

func TestNewItem_DefaultsAndStamps(t *testing.T) {
	item, err := NewItem(validInput(), testNow)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMedium, item.Priority)
	assert.Equal(t, models.ItemStatusAccepted, item.Status)
	assert.False(t, item.RequiresApproval)
	assert.Equal(t, testNow, item.CreatedAt)
	assert.Empty(t, item.ID)
}

func TestNewItem_ValidationErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*NewItemInput)
		field  string
	}{
		{"empty title", func(in *NewItemInput) { in.Title = "" }, "title"},
		{"missing clinician", func(in *NewItemInput) { in.ClinicianID = "" }, "clinicianId"},
		{"unknown type", func(in *NewItemInput) { in.Type = "holiday" }, "type"},
		{"unknown priority", func(in *NewItemInput) { in.Priority = "asap" }, "priority"},
		{"bad date", func(in *NewItemInput) { in.Date = "12/03/2024" }, "date"},
		{"bad start time", func(in *NewItemInput) { in.StartTime = "9am" }, "startTime"},
		{"bad end time", func(in *NewItemInput) { in.EndTime = "noon" }, "endTime"},
		{"inverted times", func(in *NewItemInput) { in.StartTime = "14:00"; in.EndTime = "13:00" }, "startTime"},
		{"equal times", func(in *NewItemInput) { in.StartTime = "14:00"; in.EndTime = "14:00" }, "startTime"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := NewItem(in, testNow)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestNewItem_RejectsNonCanonicalTimes(t *testing.T) {
	// A non-zero-padded time stored raw would sort after "15:00" in its
	// date bucket, so it must never get past creation or edit.
	in := validInput()
	in.StartTime = "9:30"
	_, err := NewItem(in, testNow)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "startTime", verr.Field)

	item, err := NewItem(validInput(), testNow)
	require.NoError(t, err)
	_, err = EditFields(item, Patch{EndTime: strPtr("9:45")}, testNow)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "endTime", verr.Field)
}

func TestRequiresApproval(t *testing.T) {
	assert.True(t, RequiresApproval("admin-1", "clin-1"))
	assert.False(t, RequiresApproval("clin-1", "clin-1"), "self-scheduled work needs no gate")
	assert.False(t, RequiresApproval("", "clin-1"))
}

func TestEditFields(t *testing.T) {
	item, err := NewItem(validInput(), testNow)
	require.NoError(t, err)

	edited, err := EditFields(item, Patch{
		Title:     strPtr("Afternoon clinic"),
		StartTime: strPtr("13:00"),
		EndTime:   strPtr("16:00"),
		Room:      strPtr("B204"),
	}, testNow)
	require.NoError(t, err)
	assert.Equal(t, "Afternoon clinic", edited.Title)
	assert.Equal(t, "13:00", edited.StartTime)
	assert.Equal(t, "B204", edited.Room)
	assert.Equal(t, item.Status, edited.Status, "edits never change status")
}

func TestEditFields_RejectsInvertedPair(t *testing.T) {
	item, err := NewItem(validInput(), testNow)
	require.NoError(t, err)

	// Moving only the start past the stored end must fail.
	_, err = EditFields(item, Patch{StartTime: strPtr("13:00")}, testNow)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "startTime", verr.Field)
}

func TestEditFields_EmptyTitleRejected(t *testing.T) {
	item, err := NewItem(validInput(), testNow)
	require.NoError(t, err)

	_, err = EditFields(item, Patch{Title: strPtr("")}, testNow)
	assert.Error(t, err)
}
