// Package schedule holds the scheduling core: the schedule item status
// engine and the calendar resolver. Everything here is a pure function
// over caller-supplied values; persistence, identity and notification
// delivery belong to the callers.
package schedule

import (
	"time"

	"clinician-scheduler-server/internal/models"
)

// Operation is a status-changing action on a schedule item.
type Operation string

const (
	OpApprove  Operation = "approve"
	OpReject   Operation = "reject"
	OpAccept   Operation = "accept"
	OpComplete Operation = "complete"
	OpCancel   Operation = "cancel"
)

// ParseOperation validates an operation name supplied over the wire.
func ParseOperation(s string) (Operation, error) {
	switch Operation(s) {
	case OpApprove, OpReject, OpAccept, OpComplete, OpCancel:
		return Operation(s), nil
	case "":
		return "", &ValidationError{Field: "operation", Reason: "required"}
	default:
		return "", &ValidationError{Field: "operation", Reason: "unknown operation " + s}
	}
}

// Actor identifies who requested a transition. The engine records it
// opaquely; role gating happens in the calling layer.
type Actor struct {
	ID   string
	Name string
	Role models.Role
}

// Effect signals the side effect a successful transition should produce
// downstream. The engine only reports it; notification delivery and audit
// are the caller's concern.
type Effect string

const (
	EffectNone            Effect = ""
	EffectNotifyAssigner  Effect = "notify-assigner"
	EffectNotifyClinician Effect = "notify-clinician"
)

// Payload carries optional per-operation data, currently only the free
// text reason accompanying a rejection or cancellation.
type Payload struct {
	Reason string
}

// InitialStatus implements the creation-time decision: items that must
// pass the approval gate start pending, self-scheduled items start
// accepted with no approval step.
func InitialStatus(requiresApproval bool) models.ItemStatus {
	if requiresApproval {
		return models.ItemStatusPending
	}
	return models.ItemStatusAccepted
}

// Terminal reports whether a status freezes the item: completed and
// cancelled items accept no further transitions or field edits.
func Terminal(s models.ItemStatus) bool {
	return s == models.ItemStatusCompleted || s == models.ItemStatusCancelled
}

// ApplyTransition validates op against the item's current status and, if
// legal, returns a copy with the new status applied plus the side effect
// the caller should carry out. On failure the input item is returned
// unchanged alongside an *InvalidTransition; there is no partial
// mutation.
func ApplyTransition(item models.ScheduleItem, op Operation, actor Actor, payload Payload, now time.Time) (models.ScheduleItem, Effect, error) {
	switch op {
	case OpApprove:
		if item.Status != models.ItemStatusPending || !item.RequiresApproval {
			return item, EffectNone, &InvalidTransition{Op: op, Current: item.Status}
		}
		item.Status = models.ItemStatusApproved
		item.UpdatedAt = now
		return item, EffectNotifyAssigner, nil

	case OpReject:
		if item.Status != models.ItemStatusPending || !item.RequiresApproval {
			return item, EffectNone, &InvalidTransition{Op: op, Current: item.Status}
		}
		item.Status = models.ItemStatusRejected
		item.RejectionReason = payload.Reason
		item.UpdatedAt = now
		return item, EffectNotifyAssigner, nil

	case OpAccept:
		if item.Status != models.ItemStatusApproved {
			return item, EffectNone, &InvalidTransition{Op: op, Current: item.Status}
		}
		item.Status = models.ItemStatusAccepted
		item.UpdatedAt = now
		return item, EffectNotifyAssigner, nil

	case OpComplete:
		// An approved item may be closed out without an explicit accept.
		if item.Status != models.ItemStatusAccepted && item.Status != models.ItemStatusApproved {
			return item, EffectNone, &InvalidTransition{Op: op, Current: item.Status}
		}
		item.Status = models.ItemStatusCompleted
		item.UpdatedAt = now
		return item, EffectNotifyAssigner, nil

	case OpCancel:
		if Terminal(item.Status) {
			return item, EffectNone, &InvalidTransition{Op: op, Current: item.Status}
		}
		item.Status = models.ItemStatusCancelled
		item.CancellationReason = payload.Reason
		item.UpdatedAt = now
		effect := EffectNotifyClinician
		if actor.ID == item.ClinicianID {
			effect = EffectNotifyAssigner
		}
		return item, effect, nil

	default:
		return item, EffectNone, &InvalidTransition{Op: op, Current: item.Status}
	}
}

// TransitionResult is the per-item outcome of a batch transition.
type TransitionResult struct {
	Item   models.ScheduleItem
	Effect Effect
	Err    error
}

// ApplyAll applies op to every item, continuing past failures so a bulk
// status refresh reports per-item results instead of aborting on the
// first invalid item.
func ApplyAll(items []models.ScheduleItem, op Operation, actor Actor, payload Payload, now time.Time) []TransitionResult {
	results := make([]TransitionResult, len(items))
	for i, item := range items {
		updated, effect, err := ApplyTransition(item, op, actor, payload, now)
		results[i] = TransitionResult{Item: updated, Effect: effect, Err: err}
	}
	return results
}
