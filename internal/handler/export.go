package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/healthfolio/backend/internal/audit"
	"github.com/healthfolio/backend/internal/service"
	"go.uber.org/zap"
)

// ExportHandler implements the data export endpoint
type ExportHandler struct {
	service *service.ExportService
	auditor *audit.Logger
	logger  *zap.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(service *service.ExportService, auditor *audit.Logger, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{
		service: service,
		auditor: auditor,
		logger:  logger,
	}
}

// Export streams the user's full health data bundle as JSON or xlsx
func (h *ExportHandler) Export(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "user_id is required",
		})
		return
	}

	format := c.DefaultQuery("format", "json")

	if err := h.auditor.Log(c.Request.Context(), audit.AuditLog{
		UserID:        userID,
		OperationType: audit.OperationRead,
		ResourceType:  audit.ResourceExport,
		ResourceID:    format,
		IPAddress:     c.ClientIP(),
		UserAgent:     c.Request.UserAgent(),
	}); err != nil {
		h.logger.Warn("failed to write audit log", zap.Error(err))
	}

	switch format {
	case "json":
		data, err := h.service.ExportJSON(c.Request.Context(), userID)
		if err != nil {
			h.exportError(c, userID, err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename=health-data.json")
		c.Data(http.StatusOK, "application/json", data)
	case "xlsx":
		data, err := h.service.ExportWorkbook(c.Request.Context(), userID)
		if err != nil {
			h.exportError(c, userID, err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename=health-data.xlsx")
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: fmt.Sprintf("unsupported export format: %s", format),
		})
	}
}

func (h *ExportHandler) exportError(c *gin.Context, userID string, err error) {
	h.logger.Error("failed to export health data",
		zap.Error(err),
		zap.String("user_id", userID),
	)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    "INTERNAL_ERROR",
		Message: "Failed to export health data",
		Details: stringPtr(err.Error()),
	})
}
