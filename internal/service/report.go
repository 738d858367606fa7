package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/healthfolio/backend/internal/blobstore"
	"github.com/healthfolio/backend/internal/extract"
	"github.com/healthfolio/backend/pkg/model"
	"go.uber.org/zap"
)

// ReportRepositoryInterface defines the interface for report persistence
type ReportRepositoryInterface interface {
	Save(ctx context.Context, report *model.ReportRecord) error
	FindByUserID(ctx context.Context, userID string) ([]model.ReportRecord, error)
	FindByID(ctx context.Context, reportID string) (*model.ReportRecord, error)
	MarkDownloaded(ctx context.Context, reportID string) error
}

// ReportAnalyzerInterface defines the interface for report analysis
type ReportAnalyzerInterface interface {
	Analyze(ctx context.Context, text string) *AnalysisResult
}

// SummaryPDFGenerator defines the interface for summary PDF rendering
type SummaryPDFGenerator interface {
	GenerateReportSummary(report *model.ReportRecord) ([]byte, error)
}

// ReportService handles report ingestion, history and trend analysis
type ReportService struct {
	repo      ReportRepositoryInterface
	analyzer  ReportAnalyzerInterface
	extractor extract.TextExtractor
	store     blobstore.DocumentStore
	pdfGen    SummaryPDFGenerator
	logger    *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	repo ReportRepositoryInterface,
	analyzer ReportAnalyzerInterface,
	extractor extract.TextExtractor,
	store blobstore.DocumentStore,
	pdfGen SummaryPDFGenerator,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		repo:      repo,
		analyzer:  analyzer,
		extractor: extractor,
		store:     store,
		pdfGen:    pdfGen,
		logger:    logger,
	}
}

// UploadReport ingests a medical document: extracts its text, analyzes
// it, stores the raw document and the resulting record. Analysis
// failures degrade into the stored summary rather than failing the
// upload; extraction failures do fail it.
func (s *ReportService) UploadReport(ctx context.Context, userID, filename, contentType string, data []byte, reportedAt time.Time) (*model.ReportRecord, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if filename == "" {
		return nil, fmt.Errorf("filename is required")
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("document data is required")
	}

	s.logger.Info("ingesting report",
		zap.String("user_id", userID),
		zap.String("filename", filename),
		zap.Int("size_bytes", len(data)),
	)

	text, err := s.extractor.Extract(filename, contentType, data)
	if err != nil {
		s.logger.Warn("text extraction failed",
			zap.Error(err),
			zap.String("filename", filename),
		)
		return nil, err
	}

	analysis := s.analyzer.Analyze(ctx, text)

	reportID := uuid.New().String()

	blobName := fmt.Sprintf("documents/%s/%s-%s", userID, reportID, filename)
	if _, err := s.store.Upload(ctx, blobName, contentType, data); err != nil {
		s.logger.Error("failed to store raw document",
			zap.Error(err),
			zap.String("filename", filename),
		)
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	if reportedAt.IsZero() {
		reportedAt = time.Now()
	}

	report := &model.ReportRecord{
		ID:              reportID,
		UserID:          userID,
		Filename:        filename,
		ReportedAt:      reportedAt,
		DateDisplay:     reportedAt.Format("2006-01-02"),
		Summary:         analysis.Summary,
		Concerns:        analysis.Concerns,
		Recommendations: analysis.Recommendations,
		Metrics:         analysis.Metrics,
		ExtractedText:   text,
		Downloaded:      false,
		CreatedAt:       time.Now(),
	}

	if err := s.repo.Save(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	s.logger.Info("report ingested",
		zap.String("report_id", report.ID),
		zap.String("user_id", userID),
		zap.Int("metrics", len(report.Metrics)),
		zap.Int("concerns", len(report.Concerns)),
	)

	return report, nil
}

// History retrieves the user's reports in insertion order
func (s *ReportService) History(ctx context.Context, userID string) ([]model.ReportRecord, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	return s.repo.FindByUserID(ctx, userID)
}

// HealthScore computes the user's current health score and trend
func (s *ReportService) HealthScore(ctx context.Context, userID string) (int, Trend, error) {
	if userID == "" {
		return 0, "", fmt.Errorf("user ID is required")
	}

	history, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return 0, "", err
	}

	score, trend := ComputeHealthScore(history)
	return score, trend, nil
}

// ScoreTimeline computes the health score after each successive report
func (s *ReportService) ScoreTimeline(ctx context.Context, userID string) ([]ScorePoint, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	history, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return HealthScoreTimeline(history), nil
}

// MetricSeries extracts per-metric time series from the user's reports
func (s *ReportService) MetricSeries(ctx context.Context, userID string) (map[string]MetricSeries, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	history, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return ExtractMetricSeries(history), nil
}

// DownloadSummaryPDF renders the summary PDF for a report and marks the
// record downloaded.
func (s *ReportService) DownloadSummaryPDF(ctx context.Context, userID, reportID string) ([]byte, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if reportID == "" {
		return nil, fmt.Errorf("report ID is required")
	}

	report, err := s.repo.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.UserID != userID {
		return nil, fmt.Errorf("report not found: %s", reportID)
	}

	pdfBytes, err := s.pdfGen.GenerateReportSummary(report)
	if err != nil {
		return nil, fmt.Errorf("failed to generate summary PDF: %w", err)
	}

	if err := s.repo.MarkDownloaded(ctx, reportID); err != nil {
		return nil, err
	}

	s.logger.Info("report summary downloaded",
		zap.String("report_id", reportID),
		zap.String("user_id", userID),
	)

	return pdfBytes, nil
}
