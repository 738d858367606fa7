package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/healthfolio/backend/internal/security"
	"github.com/healthfolio/backend/pkg/model"
)

// ReportRepository manages analyzed report records. Raw extracted text is
// encrypted at rest when an encryptor is configured.
type ReportRepository struct {
	db        *pgxpool.Pool
	encryptor *security.Encryptor
	logger    *zap.Logger
}

// NewReportRepository creates a new ReportRepository. A nil encryptor
// disables at-rest encryption of extracted text.
func NewReportRepository(db *pgxpool.Pool, encryptor *security.Encryptor, logger *zap.Logger) *ReportRepository {
	return &ReportRepository{
		db:        db,
		encryptor: encryptor,
		logger:    logger,
	}
}

func (r *ReportRepository) encryptText(text string) (string, error) {
	if r.encryptor == nil {
		return text, nil
	}
	return r.encryptor.Encrypt(text)
}

func (r *ReportRepository) decryptText(text string) (string, error) {
	if r.encryptor == nil {
		return text, nil
	}
	return r.encryptor.Decrypt(text)
}

// Save stores a new report record
func (r *ReportRepository) Save(ctx context.Context, report *model.ReportRecord) error {
	metricsJSON, err := json.Marshal(report.Metrics)
	if err != nil {
		return fmt.Errorf("failed to marshal report metrics: %w", err)
	}

	extractedText, err := r.encryptText(report.ExtractedText)
	if err != nil {
		return fmt.Errorf("failed to encrypt extracted text: %w", err)
	}

	query := `
		INSERT INTO reports (
			id, user_id, filename, reported_at, date_display,
			summary, concerns, recommendations, metrics,
			extracted_text, downloaded, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
	`

	_, err = r.db.Exec(ctx, query,
		report.ID,
		report.UserID,
		report.Filename,
		report.ReportedAt,
		report.DateDisplay,
		report.Summary,
		report.Concerns,
		report.Recommendations,
		metricsJSON,
		extractedText,
		report.Downloaded,
	)

	if err != nil {
		r.logger.Error("failed to save report",
			zap.Error(err),
			zap.String("user_id", report.UserID),
			zap.String("filename", report.Filename),
		)
		return fmt.Errorf("failed to save report: %w", err)
	}

	return nil
}

// FindByUserID retrieves a user's report history in insertion order.
// Callers must not assume the records are sorted by their user-editable
// report date.
func (r *ReportRepository) FindByUserID(ctx context.Context, userID string) ([]model.ReportRecord, error) {
	query := `
		SELECT
			id, user_id, filename, reported_at, date_display,
			summary, concerns, recommendations, metrics,
			extracted_text, downloaded, created_at
		FROM reports
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to get reports", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to get reports: %w", err)
	}
	defer rows.Close()

	var reports []model.ReportRecord
	for rows.Next() {
		var report model.ReportRecord
		var metricsJSON []byte
		err := rows.Scan(
			&report.ID,
			&report.UserID,
			&report.Filename,
			&report.ReportedAt,
			&report.DateDisplay,
			&report.Summary,
			&report.Concerns,
			&report.Recommendations,
			&metricsJSON,
			&report.ExtractedText,
			&report.Downloaded,
			&report.CreatedAt,
		)
		if err != nil {
			r.logger.Error("failed to scan report", zap.Error(err))
			continue
		}
		if len(metricsJSON) > 0 {
			if err := json.Unmarshal(metricsJSON, &report.Metrics); err != nil {
				r.logger.Error("failed to unmarshal report metrics",
					zap.Error(err),
					zap.String("report_id", report.ID),
				)
			}
		}
		if report.ExtractedText, err = r.decryptText(report.ExtractedText); err != nil {
			r.logger.Error("failed to decrypt extracted text",
				zap.Error(err),
				zap.String("report_id", report.ID),
			)
			continue
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating reports", zap.Error(err))
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}

	return reports, nil
}

// FindByID retrieves a single report record
func (r *ReportRepository) FindByID(ctx context.Context, reportID string) (*model.ReportRecord, error) {
	query := `
		SELECT
			id, user_id, filename, reported_at, date_display,
			summary, concerns, recommendations, metrics,
			extracted_text, downloaded, created_at
		FROM reports
		WHERE id = $1
	`

	var report model.ReportRecord
	var metricsJSON []byte
	err := r.db.QueryRow(ctx, query, reportID).Scan(
		&report.ID,
		&report.UserID,
		&report.Filename,
		&report.ReportedAt,
		&report.DateDisplay,
		&report.Summary,
		&report.Concerns,
		&report.Recommendations,
		&metricsJSON,
		&report.ExtractedText,
		&report.Downloaded,
		&report.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to get report", zap.Error(err), zap.String("report_id", reportID))
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	if len(metricsJSON) > 0 {
		if err := json.Unmarshal(metricsJSON, &report.Metrics); err != nil {
			r.logger.Error("failed to unmarshal report metrics",
				zap.Error(err),
				zap.String("report_id", report.ID),
			)
		}
	}
	if report.ExtractedText, err = r.decryptText(report.ExtractedText); err != nil {
		return nil, fmt.Errorf("failed to decrypt extracted text: %w", err)
	}

	return &report, nil
}

// MarkDownloaded flips the downloaded flag, the only mutation a report
// record supports after creation.
func (r *ReportRepository) MarkDownloaded(ctx context.Context, reportID string) error {
	query := `UPDATE reports SET downloaded = TRUE WHERE id = $1`

	result, err := r.db.Exec(ctx, query, reportID)
	if err != nil {
		r.logger.Error("failed to mark report downloaded",
			zap.Error(err),
			zap.String("report_id", reportID),
		)
		return fmt.Errorf("failed to mark report downloaded: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("report not found: %s", reportID)
	}

	return nil
}
