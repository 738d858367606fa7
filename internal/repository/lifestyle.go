package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/healthfolio/backend/pkg/model"
)

// LifestyleRepository manages quiz answers and the bounded quiz history
type LifestyleRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewLifestyleRepository creates a new LifestyleRepository
func NewLifestyleRepository(db *pgxpool.Pool, logger *zap.Logger) *LifestyleRepository {
	return &LifestyleRepository{
		db:     db,
		logger: logger,
	}
}

// SaveAnswers upserts the cumulative quiz answers for a user. Answers
// are overwritten in place; history entries carry their own snapshots.
func (r *LifestyleRepository) SaveAnswers(ctx context.Context, userID string, answers model.QuizAnswers) error {
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("failed to marshal quiz answers: %w", err)
	}

	query := `
		INSERT INTO quiz_answers (user_id, answers, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET answers = $2, updated_at = NOW()
	`

	if _, err := r.db.Exec(ctx, query, userID, answersJSON); err != nil {
		r.logger.Error("failed to save quiz answers",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("failed to save quiz answers: %w", err)
	}

	return nil
}

// GetAnswers retrieves the cumulative quiz answers for a user. A user
// who has never answered gets the zero value, not an error.
func (r *LifestyleRepository) GetAnswers(ctx context.Context, userID string) (model.QuizAnswers, error) {
	query := `SELECT answers FROM quiz_answers WHERE user_id = $1`

	var answersJSON []byte
	err := r.db.QueryRow(ctx, query, userID).Scan(&answersJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.QuizAnswers{}, nil
	}
	if err != nil {
		r.logger.Error("failed to get quiz answers", zap.Error(err), zap.String("user_id", userID))
		return model.QuizAnswers{}, fmt.Errorf("failed to get quiz answers: %w", err)
	}

	var answers model.QuizAnswers
	if err := json.Unmarshal(answersJSON, &answers); err != nil {
		return model.QuizAnswers{}, fmt.Errorf("failed to unmarshal quiz answers: %w", err)
	}

	return answers, nil
}

// AppendHistory records a quiz submission and prunes the history down
// to the most recent entries, oldest evicted first.
func (r *LifestyleRepository) AppendHistory(ctx context.Context, entry *model.LifestyleQuizEntry, keep int) error {
	answersJSON, err := json.Marshal(entry.Answers)
	if err != nil {
		return fmt.Errorf("failed to marshal quiz snapshot: %w", err)
	}

	insert := `
		INSERT INTO lifestyle_history (id, user_id, recorded_at, date, score, answers)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if _, err := r.db.Exec(ctx, insert,
		entry.ID,
		entry.UserID,
		entry.Timestamp,
		entry.Date,
		entry.Score,
		answersJSON,
	); err != nil {
		r.logger.Error("failed to append lifestyle history",
			zap.Error(err),
			zap.String("user_id", entry.UserID),
		)
		return fmt.Errorf("failed to append lifestyle history: %w", err)
	}

	prune := `
		DELETE FROM lifestyle_history
		WHERE user_id = $1 AND id NOT IN (
			SELECT id FROM lifestyle_history
			WHERE user_id = $1
			ORDER BY recorded_at DESC
			LIMIT $2
		)
	`

	if _, err := r.db.Exec(ctx, prune, entry.UserID, keep); err != nil {
		r.logger.Error("failed to prune lifestyle history",
			zap.Error(err),
			zap.String("user_id", entry.UserID),
		)
		return fmt.Errorf("failed to prune lifestyle history: %w", err)
	}

	return nil
}

// GetHistory retrieves the retained quiz history in chronological order
func (r *LifestyleRepository) GetHistory(ctx context.Context, userID string) ([]model.LifestyleQuizEntry, error) {
	query := `
		SELECT id, user_id, recorded_at, date, score, answers
		FROM lifestyle_history
		WHERE user_id = $1
		ORDER BY recorded_at ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to get lifestyle history", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to get lifestyle history: %w", err)
	}
	defer rows.Close()

	var entries []model.LifestyleQuizEntry
	for rows.Next() {
		var entry model.LifestyleQuizEntry
		var answersJSON []byte
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Timestamp,
			&entry.Date,
			&entry.Score,
			&answersJSON,
		)
		if err != nil {
			r.logger.Error("failed to scan lifestyle history entry", zap.Error(err))
			continue
		}
		if len(answersJSON) > 0 {
			if err := json.Unmarshal(answersJSON, &entry.Answers); err != nil {
				r.logger.Error("failed to unmarshal quiz snapshot",
					zap.Error(err),
					zap.String("entry_id", entry.ID),
				)
			}
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating lifestyle history", zap.Error(err))
		return nil, fmt.Errorf("error iterating lifestyle history: %w", err)
	}

	return entries, nil
}
