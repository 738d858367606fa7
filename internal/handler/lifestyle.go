package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/healthfolio/backend/internal/service"
	"github.com/healthfolio/backend/pkg/model"
	"go.uber.org/zap"
)

// LifestyleHandler implements quiz and lifestyle guidance endpoints
type LifestyleHandler struct {
	service *service.LifestyleService
	logger  *zap.Logger
}

// NewLifestyleHandler creates a new LifestyleHandler
func NewLifestyleHandler(service *service.LifestyleService, logger *zap.Logger) *LifestyleHandler {
	return &LifestyleHandler{
		service: service,
		logger:  logger,
	}
}

// SaveSectionRequest carries one quiz section's answers
type SaveSectionRequest struct {
	UserID  string            `json:"user_id" binding:"required"`
	Section string            `json:"section" binding:"required"`
	Answers model.QuizAnswers `json:"answers"`
}

// SaveSection merges a quiz section and returns the fresh score
func (h *LifestyleHandler) SaveSection(c *gin.Context) {
	var req SaveSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	score, err := h.service.SaveSection(c.Request.Context(), req.UserID, req.Section, req.Answers)
	if err != nil {
		h.logger.Error("failed to save quiz section",
			zap.Error(err),
			zap.String("user_id", req.UserID),
			zap.String("section", req.Section),
		)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"score":   score,
		"section": req.Section,
	})
}

// GetScore returns the current lifestyle score
func (h *LifestyleHandler) GetScore(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "user_id is required",
		})
		return
	}

	score, err := h.service.Score(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get lifestyle score",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to get lifestyle score",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"score": score})
}

// GetHistory returns the retained quiz history
func (h *LifestyleHandler) GetHistory(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "user_id is required",
		})
		return
	}

	history, err := h.service.History(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get lifestyle history",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to get lifestyle history",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"history": history,
		"count":   len(history),
	})
}

// GetInsights returns improvements, strengths and the weekly plan
func (h *LifestyleHandler) GetInsights(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "user_id is required",
		})
		return
	}

	insights, err := h.service.Insights(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get lifestyle insights",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to get lifestyle insights",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, insights)
}
