package models

// ItemType classifies a unit of clinician work.
type ItemType string

const (
	TypeAppointment    ItemType = "appointment"
	TypeSurgery        ItemType = "surgery"
	TypeTask           ItemType = "task"
	TypeAdministrative ItemType = "administrative"
	TypeMeeting        ItemType = "meeting"
	TypeTraining       ItemType = "training"
	TypeConsultation   ItemType = "consultation"
	TypeOnCall         ItemType = "on-call"
	TypeBreak          ItemType = "break"
	TypeOther          ItemType = "other"
)

// ItemTypes lists every valid schedule item type.
var ItemTypes = []ItemType{
	TypeAppointment, TypeSurgery, TypeTask, TypeAdministrative, TypeMeeting,
	TypeTraining, TypeConsultation, TypeOnCall, TypeBreak, TypeOther,
}

// ValidItemType reports whether t belongs to the closed type enumeration.
func ValidItemType(t ItemType) bool {
	for _, known := range ItemTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ItemStatus represents where a schedule item sits in its lifecycle.
type ItemStatus string

const (
	ItemStatusPending   ItemStatus = "pending"
	ItemStatusApproved  ItemStatus = "approved"
	ItemStatusRejected  ItemStatus = "rejected"
	ItemStatusAccepted  ItemStatus = "accepted"
	ItemStatusCompleted ItemStatus = "completed"
	ItemStatusCancelled ItemStatus = "cancelled"
)

// ItemStatuses lists every valid schedule item status.
var ItemStatuses = []ItemStatus{
	ItemStatusPending, ItemStatusApproved, ItemStatusRejected,
	ItemStatusAccepted, ItemStatusCompleted, ItemStatusCancelled,
}

// ValidItemStatus reports whether s belongs to the status enumeration.
func ValidItemStatus(s ItemStatus) bool {
	for _, known := range ItemStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Priority is display-only and has no workflow effect.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ValidPriority reports whether p belongs to the priority enumeration.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ScheduleItem represents a single time-boxed unit of clinician work:
// an appointment, surgery, task, meeting, on-call shift and so on.
// Dates are naive calendar dates stored as YYYY-MM-DD; clock times are
// zero-padded 24-hour HH:MM strings. Status changes go through the
// schedule package, never by direct field writes.
type ScheduleItem struct {
	BaseModel
	ClinicianID        string     `gorm:"size:36;index" json:"clinicianId"`
	Title              string     `gorm:"size:255;not null" json:"title"`
	Description        string     `gorm:"type:text" json:"description"`
	Notes              string     `gorm:"type:text" json:"notes"`
	Type               ItemType   `gorm:"size:20" json:"type"`
	Status             ItemStatus `gorm:"size:20;default:'pending'" json:"status"`
	Date               string     `gorm:"size:10;index" json:"date"`
	StartTime          string     `gorm:"size:5" json:"startTime"`
	EndTime            string     `gorm:"size:5" json:"endTime"`
	Location           string     `gorm:"size:255" json:"location"`
	Room               string     `gorm:"size:100" json:"room"`
	AssignedBy         string     `gorm:"size:200" json:"assignedBy,omitempty"`
	AssignedByID       string     `gorm:"size:36;index" json:"assignedById,omitempty"`
	RequiresApproval   bool       `gorm:"default:false" json:"requiresApproval"`
	Priority           Priority   `gorm:"size:10;default:'medium'" json:"priority"`
	PatientID          string     `gorm:"size:36;index" json:"patientId,omitempty"`
	PatientName        string     `gorm:"size:200" json:"patientName,omitempty"`
	RejectionReason    string     `gorm:"size:500" json:"rejectionReason,omitempty"`
	CancellationReason string     `gorm:"size:500" json:"cancellationReason,omitempty"`

	// Relations
	Clinician User `gorm:"foreignKey:ClinicianID" json:"-"`
}
