package models

// AppointmentStatus represents the status of a booked patient encounter.
// Appointments carry their own linear status set; they do not share the
// schedule item approval lifecycle.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no-show"
)

// ValidAppointmentStatus reports whether s is a known appointment status.
func ValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Appointment represents a clinical encounter booked against a patient.
// AppointmentDate is a naive YYYY-MM-DD date and AppointmentTime is the
// HH:MM slot boundary the booking was made for.
type Appointment struct {
	BaseModel
	PatientID       string            `gorm:"size:36;index" json:"patientId"`
	PatientName     string            `gorm:"size:200" json:"patientName"`
	ClinicianID     string            `gorm:"size:36;index" json:"clinicianId"`
	AppointmentDate string            `gorm:"size:10;index" json:"appointmentDate"`
	AppointmentTime string            `gorm:"size:5" json:"appointmentTime"`
	Status          AppointmentStatus `gorm:"size:20;default:'scheduled'" json:"status"`
	Reason          string            `gorm:"size:255" json:"reason"`

	// Relations
	Patient   User `gorm:"foreignKey:PatientID" json:"-"`
	Clinician User `gorm:"foreignKey:ClinicianID" json:"-"`
}
