package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/healthfolio/backend/pkg/model"
	"go.uber.org/zap"
)

// Quiz history is bounded; oldest entries are evicted first.
const quizHistoryLimit = 30

// LifestyleRepositoryInterface defines the interface for quiz persistence
type LifestyleRepositoryInterface interface {
	SaveAnswers(ctx context.Context, userID string, answers model.QuizAnswers) error
	GetAnswers(ctx context.Context, userID string) (model.QuizAnswers, error)
	AppendHistory(ctx context.Context, entry *model.LifestyleQuizEntry, keep int) error
	GetHistory(ctx context.Context, userID string) ([]model.LifestyleQuizEntry, error)
}

// LifestyleInsights bundles the derived lifestyle guidance
type LifestyleInsights struct {
	Score        int                 `json:"score"`
	Improvements []Improvement       `json:"improvements"`
	Strengths    []Strength          `json:"strengths"`
	WeeklyPlan   map[string][]string `json:"weekly_plan"`
}

// LifestyleService manages the lifestyle quiz and its derived guidance
type LifestyleService struct {
	repo   LifestyleRepositoryInterface
	logger *zap.Logger
}

// NewLifestyleService creates a new LifestyleService
func NewLifestyleService(repo LifestyleRepositoryInterface, logger *zap.Logger) *LifestyleService {
	return &LifestyleService{
		repo:   repo,
		logger: logger,
	}
}

// SaveSection merges one quiz section into the user's cumulative
// answers, recomputes the score from scratch and records a history
// entry. Returns the fresh score.
func (s *LifestyleService) SaveSection(ctx context.Context, userID, section string, answers model.QuizAnswers) (int, error) {
	if userID == "" {
		return 0, fmt.Errorf("user ID is required")
	}
	if !ValidSection(section) {
		return 0, fmt.Errorf("unknown quiz section: %s", section)
	}

	current, err := s.repo.GetAnswers(ctx, userID)
	if err != nil {
		return 0, err
	}

	if err := mergeSection(&current, section, answers); err != nil {
		return 0, err
	}

	if err := s.repo.SaveAnswers(ctx, userID, current); err != nil {
		return 0, err
	}

	// The score is always recomputed from the full answer set, never
	// updated incrementally.
	score := ComputeLifestyleScore(current)

	now := time.Now()
	entry := &model.LifestyleQuizEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Timestamp: now,
		Date:      now.Format("2006-01-02"),
		Score:     score,
		Answers:   current,
	}

	if err := s.repo.AppendHistory(ctx, entry, quizHistoryLimit); err != nil {
		return 0, err
	}

	s.logger.Info("quiz section saved",
		zap.String("user_id", userID),
		zap.String("section", section),
		zap.Int("score", score),
		zap.Int("completed_sections", len(current.CompletedSections)),
	)

	return score, nil
}

// Score computes the user's current lifestyle score
func (s *LifestyleService) Score(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, fmt.Errorf("user ID is required")
	}

	answers, err := s.repo.GetAnswers(ctx, userID)
	if err != nil {
		return 0, err
	}

	return ComputeLifestyleScore(answers), nil
}

// Answers retrieves the user's cumulative quiz answers
func (s *LifestyleService) Answers(ctx context.Context, userID string) (model.QuizAnswers, error) {
	if userID == "" {
		return model.QuizAnswers{}, fmt.Errorf("user ID is required")
	}

	return s.repo.GetAnswers(ctx, userID)
}

// History retrieves the retained quiz history, oldest first
func (s *LifestyleService) History(ctx context.Context, userID string) ([]model.LifestyleQuizEntry, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	return s.repo.GetHistory(ctx, userID)
}

// Insights derives the full guidance set from the current answers
func (s *LifestyleService) Insights(ctx context.Context, userID string) (*LifestyleInsights, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	answers, err := s.repo.GetAnswers(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &LifestyleInsights{
		Score:        ComputeLifestyleScore(answers),
		Improvements: PriorityImprovements(answers),
		Strengths:    LifestyleStrengths(answers),
		WeeklyPlan:   WeeklyActionPlan(answers),
	}, nil
}
