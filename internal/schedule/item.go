package schedule

import (
	"time"

	"clinician-scheduler-server/internal/models"
)

// NewItemInput carries the caller-supplied fields for creating a
// schedule item. AssignedByID identifies the originator when someone
// other than the clinician creates the item.
type NewItemInput struct {
	ClinicianID  string
	Title        string
	Description  string
	Notes        string
	Type         models.ItemType
	Date         string
	StartTime    string
	EndTime      string
	Location     string
	Room         string
	AssignedBy   string
	AssignedByID string
	Priority     models.Priority
	PatientID    string
	PatientName  string
}

// RequiresApproval decides whether an item must pass the approval gate:
// work assigned by someone other than the clinician themself does.
func RequiresApproval(assignedByID, clinicianID string) bool {
	return assignedByID != "" && assignedByID != clinicianID
}

// ValidateNew checks the required fields and enumerations for a new item.
func ValidateNew(in NewItemInput) error {
	if in.Title == "" {
		return &ValidationError{Field: "title", Reason: "required"}
	}
	if in.ClinicianID == "" {
		return &ValidationError{Field: "clinicianId", Reason: "required"}
	}
	if !models.ValidItemType(in.Type) {
		return &ValidationError{Field: "type", Reason: "unknown type " + string(in.Type)}
	}
	if in.Priority != "" && !models.ValidPriority(in.Priority) {
		return &ValidationError{Field: "priority", Reason: "unknown priority " + string(in.Priority)}
	}
	if _, err := ParseDate(in.Date); err != nil {
		return &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	start, err := ParseClock(in.StartTime)
	if err != nil {
		return &ValidationError{Field: "startTime", Reason: "must be HH:MM"}
	}
	end, err := ParseClock(in.EndTime)
	if err != nil {
		return &ValidationError{Field: "endTime", Reason: "must be HH:MM"}
	}
	if !start.Before(end) {
		return &ValidationError{Field: "startTime", Reason: "must be before endTime"}
	}
	return nil
}

// NewItem validates the input and builds a schedule item with its
// approval flag and initial status decided per the creation-time policy.
// The item carries no ID; the owning store assigns one on create.
func NewItem(in NewItemInput, now time.Time) (models.ScheduleItem, error) {
	if err := ValidateNew(in); err != nil {
		return models.ScheduleItem{}, err
	}

	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	requiresApproval := RequiresApproval(in.AssignedByID, in.ClinicianID)

	item := models.ScheduleItem{
		ClinicianID:      in.ClinicianID,
		Title:            in.Title,
		Description:      in.Description,
		Notes:            in.Notes,
		Type:             in.Type,
		Status:           InitialStatus(requiresApproval),
		Date:             in.Date,
		StartTime:        in.StartTime,
		EndTime:          in.EndTime,
		Location:         in.Location,
		Room:             in.Room,
		AssignedBy:       in.AssignedBy,
		AssignedByID:     in.AssignedByID,
		RequiresApproval: requiresApproval,
		Priority:         priority,
		PatientID:        in.PatientID,
		PatientName:      in.PatientName,
	}
	item.CreatedAt = now
	item.UpdatedAt = now
	return item, nil
}

// Patch carries optional field updates for an item edit. Nil pointers
// leave the field untouched. Status and ID are never patchable.
type Patch struct {
	Title       *string
	Description *string
	Notes       *string
	Date        *string
	StartTime   *string
	EndTime     *string
	Location    *string
	Room        *string
	Priority    *models.Priority
}

// EditFields applies a patch to an item, rejecting edits on completed or
// cancelled items and re-validating any changed date or time. The input
// item is returned unchanged on failure.
func EditFields(item models.ScheduleItem, patch Patch, now time.Time) (models.ScheduleItem, error) {
	if Terminal(item.Status) {
		return item, &EditRejected{Current: item.Status}
	}

	updated := item
	if patch.Title != nil {
		if *patch.Title == "" {
			return item, &ValidationError{Field: "title", Reason: "required"}
		}
		updated.Title = *patch.Title
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	if patch.Notes != nil {
		updated.Notes = *patch.Notes
	}
	if patch.Date != nil {
		if _, err := ParseDate(*patch.Date); err != nil {
			return item, &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
		}
		updated.Date = *patch.Date
	}
	if patch.StartTime != nil {
		if _, err := ParseClock(*patch.StartTime); err != nil {
			return item, &ValidationError{Field: "startTime", Reason: "must be HH:MM"}
		}
		updated.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		if _, err := ParseClock(*patch.EndTime); err != nil {
			return item, &ValidationError{Field: "endTime", Reason: "must be HH:MM"}
		}
		updated.EndTime = *patch.EndTime
	}
	if patch.Location != nil {
		updated.Location = *patch.Location
	}
	if patch.Room != nil {
		updated.Room = *patch.Room
	}
	if patch.Priority != nil {
		if !models.ValidPriority(*patch.Priority) {
			return item, &ValidationError{Field: "priority", Reason: "unknown priority " + string(*patch.Priority)}
		}
		updated.Priority = *patch.Priority
	}

	// The patched pair must still be ordered even when only one side moved.
	start, err := ParseClock(updated.StartTime)
	if err != nil {
		return item, &ValidationError{Field: "startTime", Reason: "must be HH:MM"}
	}
	end, err := ParseClock(updated.EndTime)
	if err != nil {
		return item, &ValidationError{Field: "endTime", Reason: "must be HH:MM"}
	}
	if !start.Before(end) {
		return item, &ValidationError{Field: "startTime", Reason: "must be before endTime"}
	}

	updated.UpdatedAt = now
	return updated, nil
}
