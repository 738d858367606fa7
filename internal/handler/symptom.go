package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/healthfolio/backend/internal/service"
	"github.com/healthfolio/backend/pkg/model"
	"go.uber.org/zap"
)

// SymptomHandler implements symptom logging and analysis endpoints
type SymptomHandler struct {
	service *service.SymptomService
	logger  *zap.Logger
}

// NewSymptomHandler creates a new SymptomHandler
func NewSymptomHandler(service *service.SymptomService, logger *zap.Logger) *SymptomHandler {
	return &SymptomHandler{
		service: service,
		logger:  logger,
	}
}

// LogSymptomRequest carries one symptom log entry
type LogSymptomRequest struct {
	UserID      string     `json:"user_id" binding:"required"`
	Name        string     `json:"name" binding:"required"`
	Severity    string     `json:"severity" binding:"required"`
	Description string     `json:"description"`
	Duration    string     `json:"duration"`
	Triggers    string     `json:"triggers"`
	LoggedAt    *time.Time `json:"logged_at"`
}

// LogSymptom appends a symptom entry
func (h *SymptomHandler) LogSymptom(c *gin.Context) {
	var req LogSymptomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	entry := &model.SymptomEntry{
		Name:        req.Name,
		Severity:    model.SymptomSeverity(req.Severity),
		Description: req.Description,
		Duration:    req.Duration,
		Triggers:    req.Triggers,
	}
	if req.LoggedAt != nil {
		entry.LoggedAt = *req.LoggedAt
	}

	if err := h.service.LogSymptom(c.Request.Context(), req.UserID, entry); err != nil {
		h.logger.Error("failed to log symptom",
			zap.Error(err),
			zap.String("user_id", req.UserID),
		)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ListSymptoms returns the user's symptom log
func (h *SymptomHandler) ListSymptoms(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "user_id is required",
		})
		return
	}

	entries, err := h.service.History(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get symptom history",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to get symptom history",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"symptoms": entries,
		"count":    len(entries),
	})
}

// GetPatterns returns the symptom pattern analysis
func (h *SymptomHandler) GetPatterns(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "user_id is required",
		})
		return
	}

	analysis, err := h.service.Patterns(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to analyze symptom patterns",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to analyze symptom patterns",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, analysis)
}
