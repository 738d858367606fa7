package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/healthfolio/backend/internal/audit"
	"github.com/healthfolio/backend/internal/extract"
	"github.com/healthfolio/backend/internal/service"
	"go.uber.org/zap"
)

// Uploads above this size are rejected before extraction
const maxUploadBytes = 10 << 20

// ReportHandler implements report upload and retrieval endpoints
type ReportHandler struct {
	service *service.ReportService
	auditor *audit.Logger
	logger  *zap.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *service.ReportService, auditor *audit.Logger, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		auditor: auditor,
		logger:  logger,
	}
}

// UploadReport handles a multipart document upload and runs ingestion
func (h *ReportHandler) UploadReport(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "user_id is required",
		})
		return
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "document file is required",
			Details: stringPtr(err.Error()),
		})
		return
	}

	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: fmt.Sprintf("document exceeds maximum size of %d bytes", maxUploadBytes),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "failed to open uploaded document",
			Details: stringPtr(err.Error()),
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "failed to read uploaded document",
			Details: stringPtr(err.Error()),
		})
		return
	}

	var reportedAt time.Time
	if dateStr := c.PostForm("reported_at"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    "VALIDATION_ERROR",
				Message: "reported_at must be YYYY-MM-DD",
				Details: stringPtr(err.Error()),
			})
			return
		}
		reportedAt = parsed
	}

	contentType := fileHeader.Header.Get("Content-Type")

	report, err := h.service.UploadReport(c.Request.Context(), userID, fileHeader.Filename, contentType, data, reportedAt)
	if err != nil {
		var extractionErr *extract.ExtractionError
		if errors.As(err, &extractionErr) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Code:    "EXTRACTION_ERROR",
				Message: "Could not extract text from the uploaded document",
				Details: stringPtr(err.Error()),
			})
			return
		}

		h.logger.Error("failed to ingest report",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to ingest report",
			Details: stringPtr(err.Error()),
		})
		return
	}

	// Audit failures must not fail the upload
	if err := h.auditor.LogCreate(c.Request.Context(), userID, audit.ResourceReport, report.ID, c.ClientIP(), c.Request.UserAgent()); err != nil {
		h.logger.Warn("failed to write audit log", zap.Error(err))
	}

	c.JSON(http.StatusCreated, report)
}

// ListReports retrieves the user's report history
func (h *ReportHandler) ListReports(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "user_id is required",
		})
		return
	}

	reports, err := h.service.History(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get report history",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to get report history",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports": reports,
		"count":   len(reports),
	})
}

// DownloadReportPDF streams the summary PDF and marks the report downloaded
func (h *ReportHandler) DownloadReportPDF(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "user_id is required",
		})
		return
	}

	reportID := c.Param("id")

	pdfBytes, err := h.service.DownloadSummaryPDF(c.Request.Context(), userID, reportID)
	if err != nil {
		h.logger.Error("failed to generate report PDF",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("report_id", reportID),
		)
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "Report not found or PDF generation failed",
			Details: stringPtr(err.Error()),
		})
		return
	}

	if err := h.auditor.Log(c.Request.Context(), audit.AuditLog{
		UserID:        userID,
		OperationType: audit.OperationRead,
		ResourceType:  audit.ResourceReport,
		ResourceID:    reportID,
		IPAddress:     c.ClientIP(),
		UserAgent:     c.Request.UserAgent(),
	}); err != nil {
		h.logger.Warn("failed to write audit log", zap.Error(err))
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=report-%s.pdf", reportID))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
