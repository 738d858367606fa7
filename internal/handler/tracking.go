package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/healthfolio/backend/internal/service"
	"github.com/healthfolio/backend/pkg/model"
	"go.uber.org/zap"
)

// TrackingHandler implements goal and medication reminder endpoints
type TrackingHandler struct {
	goals     *service.GoalService
	reminders *service.ReminderService
	logger    *zap.Logger
}

// NewTrackingHandler creates a new TrackingHandler
func NewTrackingHandler(goals *service.GoalService, reminders *service.ReminderService, logger *zap.Logger) *TrackingHandler {
	return &TrackingHandler{
		goals:     goals,
		reminders: reminders,
		logger:    logger,
	}
}

// CreateGoalRequest carries a new health goal
type CreateGoalRequest struct {
	UserID      string  `json:"user_id" binding:"required"`
	GoalType    string  `json:"goal_type" binding:"required"`
	TargetValue float64 `json:"target_value"`
	TargetDate  string  `json:"target_date"`
	Notes       string  `json:"notes"`
}

// CreateGoal stores a new health goal
func (h *TrackingHandler) CreateGoal(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	goal := &model.HealthGoal{
		GoalType:    model.GoalType(req.GoalType),
		TargetValue: req.TargetValue,
		TargetDate:  req.TargetDate,
		Notes:       req.Notes,
	}

	if err := h.goals.CreateGoal(c.Request.Context(), req.UserID, goal); err != nil {
		h.logger.Error("failed to create goal",
			zap.Error(err),
			zap.String("user_id", req.UserID),
		)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, goal)
}

// ListGoals returns all goals for a user
func (h *TrackingHandler) ListGoals(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "user_id is required",
		})
		return
	}

	goals, err := h.goals.ListGoals(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list goals",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to list goals",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"goals": goals,
		"count": len(goals),
	})
}

// UpdateProgressRequest carries one goal progress entry
type UpdateProgressRequest struct {
	UserID string  `json:"user_id" binding:"required"`
	Value  float64 `json:"value"`
	Date   string  `json:"date"`
}

// UpdateGoalProgress appends a progress entry to a goal
func (h *TrackingHandler) UpdateGoalProgress(c *gin.Context) {
	var req UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	goal, err := h.goals.UpdateProgress(c.Request.Context(), req.UserID, c.Param("id"), req.Value, req.Date)
	if err != nil {
		h.logger.Error("failed to update goal progress",
			zap.Error(err),
			zap.String("user_id", req.UserID),
			zap.String("goal_id", c.Param("id")),
		)
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    "NOT_FOUND",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, goal)
}

// CreateReminderRequest carries a new medication reminder
type CreateReminderRequest struct {
	UserID       string   `json:"user_id" binding:"required"`
	MedicineName string   `json:"medicine_name" binding:"required"`
	Dosage       string   `json:"dosage" binding:"required"`
	Frequency    string   `json:"frequency" binding:"required"`
	Times        []string `json:"times"`
	StartDate    string   `json:"start_date"`
	EndDate      *string  `json:"end_date"`
}

// CreateReminder stores a new medication reminder
func (h *TrackingHandler) CreateReminder(c *gin.Context) {
	var req CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	reminder := &model.MedicationReminder{
		MedicineName: req.MedicineName,
		Dosage:       req.Dosage,
		Frequency:    req.Frequency,
		Times:        req.Times,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	}

	if err := h.reminders.CreateReminder(c.Request.Context(), req.UserID, reminder); err != nil {
		h.logger.Error("failed to create reminder",
			zap.Error(err),
			zap.String("user_id", req.UserID),
		)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, reminder)
}

// ListReminders returns all reminders for a user, active first
func (h *TrackingHandler) ListReminders(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "user_id is required",
		})
		return
	}

	reminders, err := h.reminders.ListReminders(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list reminders",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to list reminders",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reminders": reminders,
		"count":     len(reminders),
	})
}

// DeactivateReminder flips a reminder inactive
func (h *TrackingHandler) DeactivateReminder(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "user_id is required",
		})
		return
	}

	reminderID := c.Param("id")
	if err := h.reminders.DeactivateReminder(c.Request.Context(), userID, reminderID); err != nil {
		h.logger.Error("failed to deactivate reminder",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("reminder_id", reminderID),
		)
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    "NOT_FOUND",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deactivated": reminderID})
}

// LogTakenRequest carries one adherence event
type LogTakenRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Status string `json:"status"`
}

// LogTaken appends a taken-event to a reminder
func (h *TrackingHandler) LogTaken(c *gin.Context) {
	var req LogTakenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	reminderID := c.Param("id")
	if err := h.reminders.LogTaken(c.Request.Context(), req.UserID, reminderID, req.Status); err != nil {
		h.logger.Error("failed to log taken event",
			zap.Error(err),
			zap.String("user_id", req.UserID),
			zap.String("reminder_id", reminderID),
		)
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    "NOT_FOUND",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminder_id": reminderID, "status": req.Status})
}
