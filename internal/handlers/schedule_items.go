package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinician-scheduler-server/internal/middleware"
	"clinician-scheduler-server/internal/models"
	"clinician-scheduler-server/internal/schedule"
	"clinician-scheduler-server/internal/utils"
)

// ScheduleItemHandler handles schedule item requests: creation, calendar
// views, status transitions and field edits. Status legality lives in
// the schedule package; this layer adds role gating and persistence.
type ScheduleItemHandler struct {
	DB *gorm.DB
}

// NewScheduleItemHandler creates a new ScheduleItemHandler.
func NewScheduleItemHandler(db *gorm.DB) *ScheduleItemHandler {
	return &ScheduleItemHandler{DB: db}
}

// actorFromContext loads the authenticated user as a transition actor.
func (h *ScheduleItemHandler) actorFromContext(c *gin.Context) (schedule.Actor, *models.User, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return schedule.Actor{}, nil, false
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.Unauthorized(c, "Authenticated user not found")
		return schedule.Actor{}, nil, false
	}

	return schedule.Actor{ID: user.ID, Name: user.FullName(), Role: user.Role}, &user, true
}

// CreateScheduleItemRequest represents the request body for creating a
// schedule item.
type CreateScheduleItemRequest struct {
	ClinicianID string `json:"clinicianId" binding:"required,uuid"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
	Type        string `json:"type" binding:"required"`
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"startTime" binding:"required"`
	EndTime     string `json:"endTime" binding:"required"`
	Location    string `json:"location"`
	Room        string `json:"room"`
	Priority    string `json:"priority"`
	PatientID   string `json:"patientId"`
	PatientName string `json:"patientName"`
}

// CreateScheduleItem handles creating a new schedule item. A clinician
// self-schedules their own work; an admin assigns work to a clinician,
// which inserts the approval gate.
func (h *ScheduleItemHandler) CreateScheduleItem(c *gin.Context) {
	var req CreateScheduleItemRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	actor, actorUser, ok := h.actorFromContext(c)
	if !ok {
		return
	}

	if actor.ID != req.ClinicianID && actor.Role != models.RoleAdmin {
		utils.Forbidden(c, "Only admins can assign work to another clinician.")
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

	input := schedule.NewItemInput{
		ClinicianID: req.ClinicianID,
		Title:       req.Title,
		Description: req.Description,
		Notes:       req.Notes,
		Type:        models.ItemType(req.Type),
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		Room:        req.Room,
		Priority:    models.Priority(req.Priority),
		PatientID:   req.PatientID,
		PatientName: req.PatientName,
	}
	if actor.ID != req.ClinicianID {
		input.AssignedBy = actorUser.FullName()
		input.AssignedByID = actor.ID
	}

	item, err := schedule.NewItem(input, time.Now())
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.DB.Create(&item).Error; err != nil {
		utils.InternalServerError(c, "Failed to create schedule item: "+err.Error())
		return
	}

	utils.Created(c, "Schedule item created successfully", item)
}

// GetScheduleItems handles fetching schedule items for a calendar view.
// Clinicians see their own schedule; admins may pass clinicianId to view
// someone else's.
func (h *ScheduleItemHandler) GetScheduleItems(c *gin.Context) {
	actor, _, ok := h.actorFromContext(c)
	if !ok {
		return
	}

	clinicianID := actor.ID
	if requested := c.Query("clinicianId"); requested != "" && requested != actor.ID {
		if actor.Role != models.RoleAdmin {
			utils.Forbidden(c, "Only admins can view another clinician's schedule.")
			return
		}
		clinicianID = requested
	}

	view, err := schedule.ParseView(c.DefaultQuery("view", string(schedule.ViewWeek)))
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	dateRange, err := schedule.ResolveRange(view, time.Now())
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	filter := schedule.Filter{
		Type:   models.ItemType(c.Query("type")),
		Status: models.ItemStatus(c.Query("status")),
	}
	if filter.Type != "" && !models.ValidItemType(filter.Type) {
		utils.BadRequest(c, "Unknown type filter: "+string(filter.Type))
		return
	}
	if filter.Status != "" && !models.ValidItemStatus(filter.Status) {
		utils.BadRequest(c, "Unknown status filter: "+string(filter.Status))
		return
	}

	var items []models.ScheduleItem
	err = h.DB.
		Where("clinician_id = ? AND date BETWEEN ? AND ?",
			clinicianID, schedule.FormatDate(dateRange.Start), schedule.FormatDate(dateRange.End)).
		Order("date asc, start_time asc").
		Find(&items).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch schedule items: "+err.Error())
		return
	}

	selected := schedule.SelectInRange(items, dateRange, filter)

	utils.Success(c, "Schedule items fetched successfully", gin.H{
		"view":  view,
		"start": schedule.FormatDate(dateRange.Start),
		"end":   schedule.FormatDate(dateRange.End),
		"total": len(selected),
		"days":  schedule.GroupByDate(selected),
	})
}

// GetScheduleSummary handles the dashboard counts for a clinician.
func (h *ScheduleItemHandler) GetScheduleSummary(c *gin.Context) {
	actor, _, ok := h.actorFromContext(c)
	if !ok {
		return
	}

	clinicianID := actor.ID
	if requested := c.Query("clinicianId"); requested != "" && requested != actor.ID {
		if actor.Role != models.RoleAdmin {
			utils.Forbidden(c, "Only admins can view another clinician's summary.")
			return
		}
		clinicianID = requested
	}

	var items []models.ScheduleItem
	if err := h.DB.Where("clinician_id = ?", clinicianID).Find(&items).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch schedule items: "+err.Error())
		return
	}

	utils.Success(c, "Schedule summary fetched successfully", schedule.Summarize(items, time.Now()))
}

// GetScheduleItemByID handles fetching a single schedule item.
func (h *ScheduleItemHandler) GetScheduleItemByID(c *gin.Context) {
	actor, _, ok := h.actorFromContext(c)
	if !ok {
		return
	}

	var item models.ScheduleItem
	if err := h.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Schedule item not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if actor.Role != models.RoleAdmin && actor.ID != item.ClinicianID && actor.ID != item.AssignedByID {
		utils.Forbidden(c, "You are not authorized to view this schedule item")
		return
	}

	utils.Success(c, "Schedule item fetched successfully", item)
}

// UpdateItemStatusRequest represents the request body for a status
// transition.
type UpdateItemStatusRequest struct {
	Operation string `json:"operation" binding:"required"`
	Reason    string `json:"reason"`
}

// allowedToTransition gates operations by role: approve/reject belong to
// the assignee reviewing assigned work or an admin confirming; accept
// and complete belong to the assignee; cancel to either party.
func allowedToTransition(op schedule.Operation, actor schedule.Actor, item models.ScheduleItem) bool {
	switch op {
	case schedule.OpApprove, schedule.OpReject:
		return actor.ID == item.ClinicianID || actor.Role == models.RoleAdmin
	case schedule.OpAccept, schedule.OpComplete:
		return actor.ID == item.ClinicianID
	case schedule.OpCancel:
		return actor.ID == item.ClinicianID || actor.ID == item.AssignedByID || actor.Role == models.RoleAdmin
	}
	return false
}

// UpdateScheduleItemStatus handles a status transition on a schedule item.
func (h *ScheduleItemHandler) UpdateScheduleItemStatus(c *gin.Context) {
	var req UpdateItemStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	op, err := schedule.ParseOperation(req.Operation)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	actor, _, ok := h.actorFromContext(c)
	if !ok {
		return
	}

	var item models.ScheduleItem
	if err := h.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Schedule item not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !allowedToTransition(op, actor, item) {
		utils.Forbidden(c, "You are not authorized to "+string(op)+" this schedule item.")
		return
	}

	updated, effect, err := schedule.ApplyTransition(item, op, actor, schedule.Payload{Reason: req.Reason}, time.Now())
	if err != nil {
		var invalid *schedule.InvalidTransition
		if errors.As(err, &invalid) {
			utils.Conflict(c, invalid.Error())
		} else {
			utils.BadRequest(c, err.Error())
		}
		return
	}

	if err := h.DB.Save(&updated).Error; err != nil {
		utils.InternalServerError(c, "Failed to update schedule item status: "+err.Error())
		return
	}

	utils.Success(c, "Schedule item status updated successfully", gin.H{
		"item":   updated,
		"effect": effect,
	})
}

// EditScheduleItemRequest represents the request body for partial field
// updates. Absent fields stay untouched.
type EditScheduleItemRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Notes       *string `json:"notes"`
	Date        *string `json:"date"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	Location    *string `json:"location"`
	Room        *string `json:"room"`
	Priority    *string `json:"priority"`
}

// EditScheduleItem handles editing a schedule item's fields. Completed
// and cancelled items are frozen.
func (h *ScheduleItemHandler) EditScheduleItem(c *gin.Context) {
	var req EditScheduleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	actor, _, ok := h.actorFromContext(c)
	if !ok {
		return
	}

	var item models.ScheduleItem
	if err := h.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Schedule item not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if actor.Role != models.RoleAdmin && actor.ID != item.ClinicianID {
		utils.Forbidden(c, "You are not authorized to edit this schedule item.")
		return
	}

	patch := schedule.Patch{
		Title:       req.Title,
		Description: req.Description,
		Notes:       req.Notes,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		Room:        req.Room,
	}
	if req.Priority != nil {
		priority := models.Priority(*req.Priority)
		patch.Priority = &priority
	}

	updated, err := schedule.EditFields(item, patch, time.Now())
	if err != nil {
		var rejected *schedule.EditRejected
		if errors.As(err, &rejected) {
			utils.Conflict(c, rejected.Error())
		} else {
			utils.BadRequest(c, err.Error())
		}
		return
	}

	if err := h.DB.Save(&updated).Error; err != nil {
		utils.InternalServerError(c, "Failed to update schedule item: "+err.Error())
		return
	}

	utils.Success(c, "Schedule item updated successfully", updated)
}

// BulkStatusRequest represents the request body for applying one
// operation across many items.
type BulkStatusRequest struct {
	IDs       []string `json:"ids" binding:"required,min=1"`
	Operation string   `json:"operation" binding:"required"`
	Reason    string   `json:"reason"`
}

// BulkStatusOutcome is the per-item result of a bulk transition.
type BulkStatusOutcome struct {
	ID     string            `json:"id"`
	Status models.ItemStatus `json:"status"`
	Error  string            `json:"error,omitempty"`
}

// BulkUpdateStatus applies one transition across many items, continuing
// past per-item failures and reporting each outcome. Admin only.
func (h *ScheduleItemHandler) BulkUpdateStatus(c *gin.Context) {
	var req BulkStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	op, err := schedule.ParseOperation(req.Operation)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	actor, _, ok := h.actorFromContext(c)
	if !ok {
		return
	}

	var items []models.ScheduleItem
	if err := h.DB.Where("id IN ?", req.IDs).Find(&items).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch schedule items: "+err.Error())
		return
	}

	results := schedule.ApplyAll(items, op, actor, schedule.Payload{Reason: req.Reason}, time.Now())

	outcomes := make([]BulkStatusOutcome, len(results))
	for i, result := range results {
		outcome := BulkStatusOutcome{ID: result.Item.ID, Status: result.Item.Status}
		if result.Err != nil {
			outcome.Error = result.Err.Error()
		} else if err := h.DB.Save(&result.Item).Error; err != nil {
			outcome.Error = "failed to save: " + err.Error()
		}
		outcomes[i] = outcome
	}

	utils.Success(c, "Bulk status update processed", outcomes)
}
