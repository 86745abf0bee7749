package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinician-scheduler-server/internal/models"
)

var testNow = time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC)

func pendingItem() models.ScheduleItem {
	return models.ScheduleItem{
		ClinicianID:      "clin-1",
		Title:            "Ward round cover",
		Type:             models.TypeTask,
		Status:           models.ItemStatusPending,
		Date:             "2024-03-12",
		StartTime:        "09:00",
		EndTime:          "11:00",
		AssignedBy:       "Dana Admin",
		AssignedByID:     "admin-1",
		RequiresApproval: true,
	}
}

func itemWithStatus(s models.ItemStatus) models.ScheduleItem {
	item := pendingItem()
	item.Status = s
	return item
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, models.ItemStatusPending, InitialStatus(true))
	assert.Equal(t, models.ItemStatusAccepted, InitialStatus(false))
}

func TestApplyTransition_ApprovalFlow(t *testing.T) {
	clinician := Actor{ID: "clin-1", Role: models.RoleClinician}

	approved, effect, err := ApplyTransition(pendingItem(), OpApprove, clinician, Payload{}, testNow)
	require.NoError(t, err)
	assert.Equal(t, models.ItemStatusApproved, approved.Status)
	assert.Equal(t, EffectNotifyAssigner, effect)

	accepted, _, err := ApplyTransition(approved, OpAccept, clinician, Payload{}, testNow)
	require.NoError(t, err)
	assert.Equal(t, models.ItemStatusAccepted, accepted.Status)

	completed, _, err := ApplyTransition(accepted, OpComplete, clinician, Payload{}, testNow)
	require.NoError(t, err)
	assert.Equal(t, models.ItemStatusCompleted, completed.Status)
}

func TestApplyTransition_RejectStoresReason(t *testing.T) {
	clinician := Actor{ID: "clin-1", Role: models.RoleClinician}

	rejected, effect, err := ApplyTransition(pendingItem(), OpReject, clinician, Payload{Reason: "schedule conflict"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, models.ItemStatusRejected, rejected.Status)
	assert.Equal(t, "schedule conflict", rejected.RejectionReason)
	assert.Equal(t, EffectNotifyAssigner, effect)
}

func TestApplyTransition_CompleteDirectlyFromApproved(t *testing.T) {
	// An approved item can be closed out without an explicit accept.
	completed, _, err := ApplyTransition(itemWithStatus(models.ItemStatusApproved), OpComplete, Actor{ID: "clin-1"}, Payload{}, testNow)
	require.NoError(t, err)
	assert.Equal(t, models.ItemStatusCompleted, completed.Status)
}

func TestApplyTransition_ApproveWithoutGateFails(t *testing.T) {
	item := pendingItem()
	item.RequiresApproval = false

	for _, op := range []Operation{OpApprove, OpReject} {
		_, _, err := ApplyTransition(item, op, Actor{ID: "clin-1"}, Payload{}, testNow)
		var invalid *InvalidTransition
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, op, invalid.Op)
	}
}

func TestApplyTransition_Totality(t *testing.T) {
	// Every (status, operation) pair outside the legal table fails with
	// InvalidTransition and leaves the item's status untouched.
	legal := map[Operation][]models.ItemStatus{
		OpApprove:  {models.ItemStatusPending},
		OpReject:   {models.ItemStatusPending},
		OpAccept:   {models.ItemStatusApproved},
		OpComplete: {models.ItemStatusAccepted, models.ItemStatusApproved},
		OpCancel: {
			models.ItemStatusPending, models.ItemStatusApproved,
			models.ItemStatusRejected, models.ItemStatusAccepted,
		},
	}
	isLegal := func(op Operation, s models.ItemStatus) bool {
		for _, ls := range legal[op] {
			if ls == s {
				return true
			}
		}
		return false
	}

	ops := []Operation{OpApprove, OpReject, OpAccept, OpComplete, OpCancel}
	for _, op := range ops {
		for _, status := range models.ItemStatuses {
			in := itemWithStatus(status)
			out, effect, err := ApplyTransition(in, op, Actor{ID: "clin-1"}, Payload{}, testNow)
			if isLegal(op, status) {
				assert.NoError(t, err, "%s on %s should succeed", op, status)
				continue
			}
			var invalid *InvalidTransition
			require.ErrorAs(t, err, &invalid, "%s on %s should fail", op, status)
			assert.Equal(t, op, invalid.Op)
			assert.Equal(t, status, invalid.Current)
			assert.Equal(t, in.Status, out.Status, "failed transition must not mutate")
			assert.Equal(t, EffectNone, effect)
		}
	}
}

func TestApplyTransition_ReapplyRejected(t *testing.T) {
	approved, _, err := ApplyTransition(pendingItem(), OpApprove, Actor{ID: "clin-1"}, Payload{}, testNow)
	require.NoError(t, err)

	_, _, err = ApplyTransition(approved, OpApprove, Actor{ID: "clin-1"}, Payload{}, testNow)
	var invalid *InvalidTransition
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, models.ItemStatusApproved, invalid.Current)
}

func TestApplyTransition_TerminalClosure(t *testing.T) {
	ops := []Operation{OpApprove, OpReject, OpAccept, OpComplete, OpCancel}
	for _, status := range []models.ItemStatus{models.ItemStatusCompleted, models.ItemStatusCancelled} {
		for _, op := range ops {
			_, _, err := ApplyTransition(itemWithStatus(status), op, Actor{ID: "clin-1"}, Payload{}, testNow)
			assert.Error(t, err, "%s must fail on %s", op, status)
		}

		_, err := EditFields(itemWithStatus(status), Patch{Notes: strPtr("late note")}, testNow)
		var rejected *EditRejected
		require.ErrorAs(t, err, &rejected)
		assert.Equal(t, status, rejected.Current)
	}
}

func TestApplyTransition_CancelKeepsNotes(t *testing.T) {
	item := pendingItem()
	item.Notes = "bring the ward handover sheet"

	cancelled, _, err := ApplyTransition(item, OpCancel, Actor{ID: "clin-1"}, Payload{Reason: "clinic closed"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, models.ItemStatusCancelled, cancelled.Status)
	assert.Equal(t, "clinic closed", cancelled.CancellationReason)
	assert.Equal(t, "bring the ward handover sheet", cancelled.Notes)
}

func TestApplyTransition_CancelNotifiesOtherParty(t *testing.T) {
	byClinician, effect, err := ApplyTransition(pendingItem(), OpCancel, Actor{ID: "clin-1"}, Payload{}, testNow)
	require.NoError(t, err)
	assert.Equal(t, models.ItemStatusCancelled, byClinician.Status)
	assert.Equal(t, EffectNotifyAssigner, effect)

	_, effect, err = ApplyTransition(pendingItem(), OpCancel, Actor{ID: "admin-1"}, Payload{}, testNow)
	require.NoError(t, err)
	assert.Equal(t, EffectNotifyClinician, effect)
}

func TestApplyAll_ContinuesPastFailures(t *testing.T) {
	items := []models.ScheduleItem{
		pendingItem(),
		itemWithStatus(models.ItemStatusCompleted),
		pendingItem(),
	}

	results := ApplyAll(items, OpApprove, Actor{ID: "clin-1"}, Payload{}, testNow)
	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, models.ItemStatusApproved, results[0].Item.Status)
	assert.Error(t, results[1].Err)
	assert.Equal(t, models.ItemStatusCompleted, results[1].Item.Status)
	assert.NoError(t, results[2].Err)
}

func TestParseOperation(t *testing.T) {
	op, err := ParseOperation("approve")
	require.NoError(t, err)
	assert.Equal(t, OpApprove, op)

	_, err = ParseOperation("archive")
	assert.Error(t, err)

	_, err = ParseOperation("")
	assert.Error(t, err)
}

func TestEndToEndAssignmentScenario(t *testing.T) {
	// Admin assigns work: approval gate applies, item starts pending.
	assigned, err := NewItem(NewItemInput{
		ClinicianID:  "clin-1",
		Title:        "Cover ICU on-call",
		Type:         models.TypeOnCall,
		Date:         "2024-03-16",
		StartTime:    "18:00",
		EndTime:      "23:00",
		AssignedBy:   "Dana Admin",
		AssignedByID: "admin-1",
	}, testNow)
	require.NoError(t, err)
	assert.True(t, assigned.RequiresApproval)
	assert.Equal(t, models.ItemStatusPending, assigned.Status)

	rejected, _, err := ApplyTransition(assigned, OpReject, Actor{ID: "clin-1"}, Payload{Reason: "schedule conflict"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, models.ItemStatusRejected, rejected.Status)

	_, _, err = ApplyTransition(rejected, OpAccept, Actor{ID: "clin-1"}, Payload{}, testNow)
	assert.Error(t, err)

	// Self-scheduled work skips the gate entirely.
	selfScheduled, err := NewItem(NewItemInput{
		ClinicianID: "clin-1",
		Title:       "Chart review",
		Type:        models.TypeAdministrative,
		Date:        "2024-03-13",
		StartTime:   "14:00",
		EndTime:     "15:00",
	}, testNow)
	require.NoError(t, err)
	assert.False(t, selfScheduled.RequiresApproval)
	assert.Equal(t, models.ItemStatusAccepted, selfScheduled.Status)

	_, _, err = ApplyTransition(selfScheduled, OpApprove, Actor{ID: "clin-1"}, Payload{}, testNow)
	assert.Error(t, err)
	_, _, err = ApplyTransition(selfScheduled, OpReject, Actor{ID: "clin-1"}, Payload{}, testNow)
	assert.Error(t, err)
}

func strPtr(s string) *string { return &s }
