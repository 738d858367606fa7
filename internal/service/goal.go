package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/healthfolio/backend/pkg/model"
	"go.uber.org/zap"
)

// GoalRepositoryInterface defines the interface for goal persistence
type GoalRepositoryInterface interface {
	Create(ctx context.Context, goal *model.HealthGoal) error
	FindByID(ctx context.Context, goalID string) (*model.HealthGoal, error)
	FindByUserID(ctx context.Context, userID string) ([]model.HealthGoal, error)
	Update(ctx context.Context, goal *model.HealthGoal) error
}

// GoalService manages health goals and their progress tracking
type GoalService struct {
	repo   GoalRepositoryInterface
	logger *zap.Logger
}

// NewGoalService creates a new GoalService
func NewGoalService(repo GoalRepositoryInterface, logger *zap.Logger) *GoalService {
	return &GoalService{
		repo:   repo,
		logger: logger,
	}
}

// CreateGoal stores a new active health goal
func (s *GoalService) CreateGoal(ctx context.Context, userID string, goal *model.HealthGoal) error {
	if userID == "" {
		return fmt.Errorf("user ID is required")
	}
	if !validGoalType(goal.GoalType) {
		return fmt.Errorf("invalid goal type: %s", goal.GoalType)
	}

	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	goal.UserID = userID
	goal.Status = model.GoalStatusActive
	if goal.Progress == nil {
		goal.Progress = []model.GoalProgress{}
	}
	goal.CreatedAt = time.Now()

	if err := s.repo.Create(ctx, goal); err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}

	s.logger.Info("health goal created",
		zap.String("goal_id", goal.ID),
		zap.String("user_id", userID),
		zap.String("goal_type", string(goal.GoalType)),
		zap.Float64("target_value", goal.TargetValue),
	)

	return nil
}

// ListGoals retrieves all goals for a user
func (s *GoalService) ListGoals(ctx context.Context, userID string) ([]model.HealthGoal, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	return s.repo.FindByUserID(ctx, userID)
}

// UpdateProgress appends a progress entry, updates the current value
// and applies the one-directional achievement transition. An achieved
// goal never reverts to active.
func (s *GoalService) UpdateProgress(ctx context.Context, userID, goalID string, value float64, date string) (*model.HealthGoal, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if goalID == "" {
		return nil, fmt.Errorf("goal ID is required")
	}

	goal, err := s.repo.FindByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, fmt.Errorf("health goal not found: %s", goalID)
	}

	now := time.Now()
	if date == "" {
		date = now.Format("2006-01-02")
	}

	goal.Progress = append(goal.Progress, model.GoalProgress{
		Date:       date,
		Value:      value,
		RecordedAt: now,
	})
	goal.CurrentValue = value

	if goal.Status == model.GoalStatusActive && goalAchieved(goal.GoalType, value, goal.TargetValue) {
		goal.Status = model.GoalStatusAchieved
		s.logger.Info("health goal achieved",
			zap.String("goal_id", goal.ID),
			zap.String("user_id", userID),
			zap.Float64("value", value),
			zap.Float64("target_value", goal.TargetValue),
		)
	}

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

// goalAchieved applies the comparison direction implied by the goal
// type: reduction goals achieve at or below target, activity goals at
// or above. Custom goals never auto-achieve.
func goalAchieved(goalType model.GoalType, value, target float64) bool {
	switch goalType {
	case model.GoalWeightLoss, model.GoalBloodPressure, model.GoalCholesterol:
		return value <= target
	case model.GoalExerciseMinutes, model.GoalDailySteps:
		return value >= target
	default:
		return false
	}
}

func validGoalType(goalType model.GoalType) bool {
	switch goalType {
	case model.GoalWeightLoss, model.GoalBloodPressure, model.GoalCholesterol,
		model.GoalExerciseMinutes, model.GoalDailySteps, model.GoalCustom:
		return true
	}
	return false
}
