package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/healthfolio/backend/pkg/model"
)

// MockSymptomRepository is a mock symptom repository
type MockSymptomRepository struct {
	mock.Mock
}

func (m *MockSymptomRepository) Save(ctx context.Context, entry *model.SymptomEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockSymptomRepository) FindByUserID(ctx context.Context, userID string) ([]model.SymptomEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SymptomEntry), args.Error(1)
}

func TestLogSymptom_Defaults(t *testing.T) {
	repo := new(MockSymptomRepository)
	svc := NewSymptomService(repo, zap.NewNop())

	repo.On("Save", mock.Anything, mock.AnythingOfType("*model.SymptomEntry")).Return(nil)

	entry := &model.SymptomEntry{
		Name:     "headache",
		Severity: model.SeverityMild,
	}

	err := svc.LogSymptom(context.Background(), "user-1", entry)

	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "user-1", entry.UserID)
	assert.False(t, entry.LoggedAt.IsZero())
	repo.AssertExpectations(t)
}

func TestLogSymptom_Validation(t *testing.T) {
	svc := NewSymptomService(new(MockSymptomRepository), zap.NewNop())

	tests := []struct {
		name  string
		entry *model.SymptomEntry
	}{
		{"missing name", &model.SymptomEntry{Severity: model.SeverityMild}},
		{"missing severity", &model.SymptomEntry{Name: "headache"}},
		{"unknown severity", &model.SymptomEntry{Name: "headache", Severity: "catastrophic"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.LogSymptom(context.Background(), "user-1", tt.entry)
			assert.Error(t, err)
		})
	}
}

func TestSymptomPatterns_ThroughService(t *testing.T) {
	repo := new(MockSymptomRepository)
	svc := NewSymptomService(repo, zap.NewNop())

	entries := []model.SymptomEntry{
		symptomEntry("migraine", model.SeverityModerate),
		symptomEntry("migraine", model.SeveritySevere),
		symptomEntry("migraine", model.SeverityModerate),
	}
	repo.On("FindByUserID", mock.Anything, "user-1").Return(entries, nil)

	analysis, err := svc.Patterns(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"migraine"}, analysis.RecurringSymptoms)
	assert.Equal(t, "increasing", analysis.SeverityTrends["migraine"])
}
