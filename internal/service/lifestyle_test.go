package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/healthfolio/backend/pkg/model"
)

// MockLifestyleRepository is a mock lifestyle repository
type MockLifestyleRepository struct {
	mock.Mock
}

func (m *MockLifestyleRepository) SaveAnswers(ctx context.Context, userID string, answers model.QuizAnswers) error {
	args := m.Called(ctx, userID, answers)
	return args.Error(0)
}

func (m *MockLifestyleRepository) GetAnswers(ctx context.Context, userID string) (model.QuizAnswers, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.QuizAnswers), args.Error(1)
}

func (m *MockLifestyleRepository) AppendHistory(ctx context.Context, entry *model.LifestyleQuizEntry, keep int) error {
	args := m.Called(ctx, entry, keep)
	return args.Error(0)
}

func (m *MockLifestyleRepository) GetHistory(ctx context.Context, userID string) ([]model.LifestyleQuizEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LifestyleQuizEntry), args.Error(1)
}

func TestSaveSection_MergesIntoExistingAnswers(t *testing.T) {
	// Arrange
	repo := new(MockLifestyleRepository)
	svc := NewLifestyleService(repo, zap.NewNop())

	existing := model.QuizAnswers{
		SleepQuality:      "Good",
		SleepIssues:       []string{"None"},
		CompletedSections: []string{"sleep"},
	}
	repo.On("GetAnswers", mock.Anything, "user-1").Return(existing, nil)

	var savedAnswers model.QuizAnswers
	repo.On("SaveAnswers", mock.Anything, "user-1", mock.AnythingOfType("model.QuizAnswers")).
		Run(func(args mock.Arguments) {
			savedAnswers = args.Get(2).(model.QuizAnswers)
		}).
		Return(nil)

	var savedEntry *model.LifestyleQuizEntry
	repo.On("AppendHistory", mock.Anything, mock.AnythingOfType("*model.LifestyleQuizEntry"), 30).
		Run(func(args mock.Arguments) {
			savedEntry = args.Get(1).(*model.LifestyleQuizEntry)
		}).
		Return(nil)

	// Act
	score, err := svc.SaveSection(context.Background(), "user-1", SectionExercise, model.QuizAnswers{
		ExerciseFrequency: "Daily",
		DailySteps:        "More than 10,000",
	})

	// Assert
	require.NoError(t, err)

	// The sleep answers survive the exercise-section save
	assert.Equal(t, "Good", savedAnswers.SleepQuality)
	assert.Equal(t, "Daily", savedAnswers.ExerciseFrequency)
	assert.Equal(t, []string{"sleep", "exercise"}, savedAnswers.CompletedSections)

	// Score is recomputed from the merged whole: sleep 20 + exercise 20
	assert.Equal(t, 40, score)

	require.NotNil(t, savedEntry)
	assert.Equal(t, 40, savedEntry.Score)
	assert.Equal(t, "user-1", savedEntry.UserID)
	assert.NotEmpty(t, savedEntry.ID)
	assert.Equal(t, savedEntry.Timestamp.Format("2006-01-02"), savedEntry.Date)

	repo.AssertExpectations(t)
}

func TestSaveSection_ResavingSectionDoesNotDuplicateCompletion(t *testing.T) {
	repo := new(MockLifestyleRepository)
	svc := NewLifestyleService(repo, zap.NewNop())

	existing := model.QuizAnswers{
		SleepQuality:      "Poor",
		CompletedSections: []string{"sleep"},
	}
	repo.On("GetAnswers", mock.Anything, "user-1").Return(existing, nil)

	var savedAnswers model.QuizAnswers
	repo.On("SaveAnswers", mock.Anything, "user-1", mock.Anything).
		Run(func(args mock.Arguments) {
			savedAnswers = args.Get(2).(model.QuizAnswers)
		}).
		Return(nil)
	repo.On("AppendHistory", mock.Anything, mock.Anything, 30).Return(nil)

	_, err := svc.SaveSection(context.Background(), "user-1", SectionSleep, model.QuizAnswers{
		SleepQuality: "Excellent",
	})

	require.NoError(t, err)
	assert.Equal(t, "Excellent", savedAnswers.SleepQuality)
	assert.Equal(t, []string{"sleep"}, savedAnswers.CompletedSections)
}

func TestSaveSection_UnknownSection(t *testing.T) {
	repo := new(MockLifestyleRepository)
	svc := NewLifestyleService(repo, zap.NewNop())

	_, err := svc.SaveSection(context.Background(), "user-1", "horoscope", model.QuizAnswers{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown quiz section")
	repo.AssertNotCalled(t, "GetAnswers", mock.Anything, mock.Anything)
}

func TestSaveSection_RequiresUserID(t *testing.T) {
	svc := NewLifestyleService(new(MockLifestyleRepository), zap.NewNop())

	_, err := svc.SaveSection(context.Background(), "", SectionSleep, model.QuizAnswers{})

	assert.Error(t, err)
}

func TestLifestyleScoreAndInsights(t *testing.T) {
	repo := new(MockLifestyleRepository)
	svc := NewLifestyleService(repo, zap.NewNop())

	answers := model.QuizAnswers{
		SleepQuality:      "Excellent",
		SleepIssues:       []string{"None"},
		ExerciseFrequency: "Never",
		StressLevel:       "Very High",
	}
	repo.On("GetAnswers", mock.Anything, "user-1").Return(answers, nil)

	score, err := svc.Score(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 20, score)

	insights, err := svc.Insights(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, score, insights.Score)

	// Exercise and stress rules both fire
	require.Len(t, insights.Improvements, 2)
	assert.Equal(t, "Increase Physical Activity", insights.Improvements[0].Title)
	assert.Equal(t, "Stress Management", insights.Improvements[1].Title)

	// Sleep strength fires
	require.Len(t, insights.Strengths, 1)
	assert.Equal(t, "Sleep Quality", insights.Strengths[0].Area)

	// Weekly plan reflects both customization rules
	assert.Equal(t, "Start with 10-minute walk", insights.WeeklyPlan["Tuesday"][0])
	assert.Contains(t, insights.WeeklyPlan["Sunday"], "Practice stress reduction technique")
}

func TestLifestyleHistory_PropagatesRepoError(t *testing.T) {
	repo := new(MockLifestyleRepository)
	svc := NewLifestyleService(repo, zap.NewNop())

	repo.On("GetHistory", mock.Anything, "user-1").Return(nil, errors.New("db down"))

	_, err := svc.History(context.Background(), "user-1")

	assert.Error(t, err)
}

func TestMergeSection_CopiesOnlyOwnFields(t *testing.T) {
	dst := model.QuizAnswers{StressLevel: "High"}

	err := mergeSection(&dst, SectionNutrition, model.QuizAnswers{
		BreakfastFrequency: "Daily",
		StressLevel:        "Low",
	})

	require.NoError(t, err)
	assert.Equal(t, "Daily", dst.BreakfastFrequency)
	// A stress answer smuggled into the nutrition payload is ignored
	assert.Equal(t, "High", dst.StressLevel)
	assert.Equal(t, []string{"nutrition"}, dst.CompletedSections)
}

func TestValidSection(t *testing.T) {
	for _, section := range QuizSections {
		assert.True(t, ValidSection(section), section)
	}
	assert.False(t, ValidSection("sleeping"))
	assert.False(t, ValidSection(""))
}
