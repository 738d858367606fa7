package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/healthfolio/backend/pkg/model"
)

// GoalRepository manages health goals and their progress logs
type GoalRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(db *pgxpool.Pool, logger *zap.Logger) *GoalRepository {
	return &GoalRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new health goal
func (r *GoalRepository) Create(ctx context.Context, goal *model.HealthGoal) error {
	progressJSON, err := json.Marshal(goal.Progress)
	if err != nil {
		return fmt.Errorf("failed to marshal goal progress: %w", err)
	}

	query := `
		INSERT INTO health_goals (
			id, user_id, goal_type, target_value, current_value,
			target_date, notes, progress, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	`

	_, err = r.db.Exec(ctx, query,
		goal.ID,
		goal.UserID,
		goal.GoalType,
		goal.TargetValue,
		goal.CurrentValue,
		goal.TargetDate,
		goal.Notes,
		progressJSON,
		goal.Status,
	)

	if err != nil {
		r.logger.Error("failed to create health goal",
			zap.Error(err),
			zap.String("user_id", goal.UserID),
			zap.String("goal_type", string(goal.GoalType)),
		)
		return fmt.Errorf("failed to create health goal: %w", err)
	}

	return nil
}

// FindByID retrieves a single goal
func (r *GoalRepository) FindByID(ctx context.Context, goalID string) (*model.HealthGoal, error) {
	query := `
		SELECT id, user_id, goal_type, target_value, current_value,
			target_date, notes, progress, status, created_at
		FROM health_goals
		WHERE id = $1
	`

	var goal model.HealthGoal
	var progressJSON []byte
	err := r.db.QueryRow(ctx, query, goalID).Scan(
		&goal.ID,
		&goal.UserID,
		&goal.GoalType,
		&goal.TargetValue,
		&goal.CurrentValue,
		&goal.TargetDate,
		&goal.Notes,
		&progressJSON,
		&goal.Status,
		&goal.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to get health goal", zap.Error(err), zap.String("goal_id", goalID))
		return nil, fmt.Errorf("failed to get health goal: %w", err)
	}
	if len(progressJSON) > 0 {
		if err := json.Unmarshal(progressJSON, &goal.Progress); err != nil {
			return nil, fmt.Errorf("failed to unmarshal goal progress: %w", err)
		}
	}

	return &goal, nil
}

// FindByUserID retrieves all goals for a user, newest first
func (r *GoalRepository) FindByUserID(ctx context.Context, userID string) ([]model.HealthGoal, error) {
	query := `
		SELECT id, user_id, goal_type, target_value, current_value,
			target_date, notes, progress, status, created_at
		FROM health_goals
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to get health goals", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to get health goals: %w", err)
	}
	defer rows.Close()

	var goals []model.HealthGoal
	for rows.Next() {
		var goal model.HealthGoal
		var progressJSON []byte
		err := rows.Scan(
			&goal.ID,
			&goal.UserID,
			&goal.GoalType,
			&goal.TargetValue,
			&goal.CurrentValue,
			&goal.TargetDate,
			&goal.Notes,
			&progressJSON,
			&goal.Status,
			&goal.CreatedAt,
		)
		if err != nil {
			r.logger.Error("failed to scan health goal", zap.Error(err))
			continue
		}
		if len(progressJSON) > 0 {
			if err := json.Unmarshal(progressJSON, &goal.Progress); err != nil {
				r.logger.Error("failed to unmarshal goal progress",
					zap.Error(err),
					zap.String("goal_id", goal.ID),
				)
			}
		}
		goals = append(goals, goal)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating health goals", zap.Error(err))
		return nil, fmt.Errorf("error iterating health goals: %w", err)
	}

	return goals, nil
}

// Update persists goal mutations from a progress update
func (r *GoalRepository) Update(ctx context.Context, goal *model.HealthGoal) error {
	progressJSON, err := json.Marshal(goal.Progress)
	if err != nil {
		return fmt.Errorf("failed to marshal goal progress: %w", err)
	}

	query := `
		UPDATE health_goals
		SET current_value = $1, progress = $2, status = $3, notes = $4
		WHERE id = $5
	`

	result, err := r.db.Exec(ctx, query,
		goal.CurrentValue,
		progressJSON,
		goal.Status,
		goal.Notes,
		goal.ID,
	)
	if err != nil {
		r.logger.Error("failed to update health goal",
			zap.Error(err),
			zap.String("goal_id", goal.ID),
		)
		return fmt.Errorf("failed to update health goal: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("health goal not found: %s", goal.ID)
	}

	return nil
}
