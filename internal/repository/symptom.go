package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/healthfolio/backend/pkg/model"
)

// SymptomRepository manages the append-only symptom log
type SymptomRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewSymptomRepository creates a new SymptomRepository
func NewSymptomRepository(db *pgxpool.Pool, logger *zap.Logger) *SymptomRepository {
	return &SymptomRepository{
		db:     db,
		logger: logger,
	}
}

// Save appends a symptom entry
func (r *SymptomRepository) Save(ctx context.Context, entry *model.SymptomEntry) error {
	query := `
		INSERT INTO symptoms (
			id, user_id, name, severity, description,
			duration, triggers, logged_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Name,
		entry.Severity,
		entry.Description,
		entry.Duration,
		entry.Triggers,
		entry.LoggedAt,
	)

	if err != nil {
		r.logger.Error("failed to save symptom",
			zap.Error(err),
			zap.String("user_id", entry.UserID),
			zap.String("symptom", entry.Name),
		)
		return fmt.Errorf("failed to save symptom: %w", err)
	}

	return nil
}

// FindByUserID retrieves a user's symptom log in chronological order
func (r *SymptomRepository) FindByUserID(ctx context.Context, userID string) ([]model.SymptomEntry, error) {
	query := `
		SELECT id, user_id, name, severity, description, duration, triggers, logged_at
		FROM symptoms
		WHERE user_id = $1
		ORDER BY logged_at ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to get symptoms", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to get symptoms: %w", err)
	}
	defer rows.Close()

	var entries []model.SymptomEntry
	for rows.Next() {
		var entry model.SymptomEntry
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Name,
			&entry.Severity,
			&entry.Description,
			&entry.Duration,
			&entry.Triggers,
			&entry.LoggedAt,
		)
		if err != nil {
			r.logger.Error("failed to scan symptom entry", zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating symptoms", zap.Error(err))
		return nil, fmt.Errorf("error iterating symptoms: %w", err)
	}

	return entries, nil
}
