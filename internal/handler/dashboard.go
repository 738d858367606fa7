package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/healthfolio/backend/internal/service"
	"go.uber.org/zap"
)

// DashboardHandler implements the dashboard summary endpoint
type DashboardHandler struct {
	service *service.DashboardService
	logger  *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(service *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger,
	}
}

// GetSummary returns the aggregated dashboard view for a user
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "user_id is required",
		})
		return
	}

	summary, err := h.service.GetSummary(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get dashboard summary",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to get dashboard summary",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}
