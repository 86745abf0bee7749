package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinician-scheduler-server/internal/config"
	"clinician-scheduler-server/internal/middleware"
	"clinician-scheduler-server/internal/models"
	"clinician-scheduler-server/internal/schedule"
	"clinician-scheduler-server/internal/utils"
)

// AppointmentHandler handles the patient booking flow: slot listing,
// booking and the appointment's own status lifecycle.
type AppointmentHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, cfg *config.Config) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Cfg: cfg}
}

func (h *AppointmentHandler) slotConfig() schedule.SlotConfig {
	return schedule.SlotConfig{
		StartHour:   h.Cfg.SlotStartHour,
		EndHour:     h.Cfg.SlotEndHour,
		StepMinutes: h.Cfg.SlotStepMinutes,
	}
}

// SlotInfo annotates a bookable slot boundary for display. Taken is
// visual only; the generator itself performs no availability filtering.
type SlotInfo struct {
	Time  string `json:"time"`
	Taken bool   `json:"taken"`
}

// GetSlots handles listing the bookable time slots for a clinician on a
// given date.
func (h *AppointmentHandler) GetSlots(c *gin.Context) {
	dateStr := c.Query("date")
	if _, err := schedule.ParseDate(dateStr); err != nil {
		utils.BadRequest(c, "Query parameter date must be YYYY-MM-DD")
		return
	}
	clinicianID := c.Query("clinicianId")
	if clinicianID == "" {
		utils.BadRequest(c, "Query parameter clinicianId is required")
		return
	}

	var booked []models.Appointment
	err := h.DB.
		Where("clinician_id = ? AND appointment_date = ? AND status NOT IN ?",
			clinicianID, dateStr, []models.AppointmentStatus{models.StatusCancelled, models.StatusNoShow}).
		Find(&booked).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	taken := make(map[string]bool, len(booked))
	for _, apt := range booked {
		taken[apt.AppointmentTime] = true
	}

	boundaries := schedule.GenerateSlots(h.slotConfig())
	slots := make([]SlotInfo, len(boundaries))
	for i, boundary := range boundaries {
		slots[i] = SlotInfo{Time: boundary, Taken: taken[boundary]}
	}

	utils.Success(c, "Slots fetched successfully", gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

// BookAppointmentRequest represents the request body for booking an
// appointment.
type BookAppointmentRequest struct {
	ClinicianID     string `json:"clinicianId" binding:"required,uuid"`
	PatientID       string `json:"patientId" binding:"required,uuid"`
	AppointmentDate string `json:"appointmentDate" binding:"required"`
	AppointmentTime string `json:"appointmentTime" binding:"required"`
	Reason          string `json:"reason" binding:"required"`
}

// BookAppointment handles booking a new appointment. Typically initiated
// by a patient; admins may book on a patient's behalf.
func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	var req BookAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole == models.RolePatient && userID != req.PatientID {
		utils.Forbidden(c, "Patients can only book appointments for themselves.")
		return
	}

	if _, err := schedule.ParseDate(req.AppointmentDate); err != nil {
		utils.BadRequest(c, "Appointment date must be YYYY-MM-DD")
		return
	}

	// The requested time must be one of the generated slot boundaries.
	validSlot := false
	for _, boundary := range schedule.GenerateSlots(h.slotConfig()) {
		if boundary == req.AppointmentTime {
			validSlot = true
			break
		}
	}
	if !validSlot {
		utils.BadRequest(c, "Appointment time is not a bookable slot")
		return
	}

	var clinician models.User
	if err := h.DB.Where("id = ? AND role = ?", req.ClinicianID, models.RoleClinician).First(&clinician).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Clinician not found or user is not a clinician")
		} else {
			utils.InternalServerError(c, "Database error verifying clinician: "+err.Error())
		}
		return
	}

	var patient models.User
	if err := h.DB.Where("id = ? AND role = ?", req.PatientID, models.RolePatient).First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
		}
		return
	}

	appointment := models.Appointment{
		PatientID:       req.PatientID,
		PatientName:     patient.FullName(),
		ClinicianID:     req.ClinicianID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Status:          models.StatusScheduled,
		Reason:          req.Reason,
	}

	if err := h.DB.Create(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	utils.Created(c, "Appointment booked successfully", appointment)
}

// GetAppointmentsForUser handles fetching appointments for the logged-in
// user: patients see their bookings, clinicians their encounters, admins
// everything.
func (h *AppointmentHandler) GetAppointmentsForUser(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	query := h.DB.Order("appointment_date asc, appointment_time asc")
	if dateStr := c.Query("date"); dateStr != "" {
		if _, err := schedule.ParseDate(dateStr); err != nil {
			utils.BadRequest(c, "Query parameter date must be YYYY-MM-DD")
			return
		}
		query = query.Where("appointment_date = ?", dateStr)
	}

	var appointments []models.Appointment
	var err error
	switch userRole {
	case models.RolePatient:
		err = query.Where("patient_id = ?", userID).Find(&appointments).Error
	case models.RoleClinician:
		err = query.Where("clinician_id = ?", userID).Find(&appointments).Error
	case models.RoleAdmin:
		err = query.Find(&appointments).Error
	default:
		utils.Forbidden(c, "User role not permitted to view appointments.")
		return
	}

	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// UpdateAppointmentStatusRequest represents the request body for updating
// an appointment's status.
type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=scheduled confirmed completed cancelled no-show"`
	Reason string                   `json:"reason"`
}

// UpdateAppointmentStatus handles updating the status of an appointment.
// Clinicians and admins may set any status; patients may only cancel a
// scheduled or confirmed booking.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	canUpdate := false
	switch {
	case userRole == models.RoleAdmin:
		canUpdate = true
	case userRole == models.RoleClinician && userID == appointment.ClinicianID:
		canUpdate = true
	case userRole == models.RolePatient && userID == appointment.PatientID:
		if req.Status != models.StatusCancelled {
			utils.Forbidden(c, "Patients can only cancel appointments.")
			return
		}
		canUpdate = appointment.Status == models.StatusScheduled || appointment.Status == models.StatusConfirmed
	}

	if !canUpdate {
		utils.Forbidden(c, "You are not authorized to update this appointment's status.")
		return
	}

	appointment.Status = req.Status
	if req.Reason != "" {
		appointment.Reason = req.Reason
	}
	appointment.UpdatedAt = time.Now()

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment status: "+err.Error())
		return
	}

	utils.Success(c, "Appointment status updated successfully", appointment)
}
