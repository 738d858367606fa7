package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/healthfolio/backend/pkg/model"
	"go.uber.org/zap"
)

// SymptomRepositoryInterface defines the interface for symptom persistence
type SymptomRepositoryInterface interface {
	Save(ctx context.Context, entry *model.SymptomEntry) error
	FindByUserID(ctx context.Context, userID string) ([]model.SymptomEntry, error)
}

// SymptomService manages the symptom log and its pattern analysis
type SymptomService struct {
	repo   SymptomRepositoryInterface
	logger *zap.Logger
}

// NewSymptomService creates a new SymptomService
func NewSymptomService(repo SymptomRepositoryInterface, logger *zap.Logger) *SymptomService {
	return &SymptomService{
		repo:   repo,
		logger: logger,
	}
}

// LogSymptom appends a symptom entry to the user's log
func (s *SymptomService) LogSymptom(ctx context.Context, userID string, entry *model.SymptomEntry) error {
	if userID == "" {
		return fmt.Errorf("user ID is required")
	}
	if entry.Name == "" {
		return fmt.Errorf("symptom name is required")
	}
	switch entry.Severity {
	case model.SeverityMild, model.SeverityModerate, model.SeveritySevere:
	default:
		return fmt.Errorf("invalid symptom severity: %s", entry.Severity)
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.UserID = userID
	if entry.LoggedAt.IsZero() {
		entry.LoggedAt = time.Now()
	}

	if err := s.repo.Save(ctx, entry); err != nil {
		return fmt.Errorf("failed to log symptom: %w", err)
	}

	s.logger.Info("symptom logged",
		zap.String("symptom_id", entry.ID),
		zap.String("user_id", userID),
		zap.String("name", entry.Name),
		zap.String("severity", string(entry.Severity)),
	)

	return nil
}

// History retrieves the user's symptom log in chronological order
func (s *SymptomService) History(ctx context.Context, userID string) ([]model.SymptomEntry, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	return s.repo.FindByUserID(ctx, userID)
}

// Patterns analyzes the user's symptom log for recurring symptoms and
// severity trends.
func (s *SymptomService) Patterns(ctx context.Context, userID string) (SymptomAnalysis, error) {
	if userID == "" {
		return SymptomAnalysis{}, fmt.Errorf("user ID is required")
	}

	entries, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return SymptomAnalysis{}, err
	}

	return AnalyzeSymptomPatterns(entries), nil
}
