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

// MockReminderRepository is a mock reminder repository
type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) Create(ctx context.Context, reminder *model.MedicationReminder) error {
	args := m.Called(ctx, reminder)
	return args.Error(0)
}

func (m *MockReminderRepository) FindByID(ctx context.Context, reminderID string) (*model.MedicationReminder, error) {
	args := m.Called(ctx, reminderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MedicationReminder), args.Error(1)
}

func (m *MockReminderRepository) FindByUserID(ctx context.Context, userID string) ([]model.MedicationReminder, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MedicationReminder), args.Error(1)
}

func (m *MockReminderRepository) Deactivate(ctx context.Context, reminderID string) error {
	args := m.Called(ctx, reminderID)
	return args.Error(0)
}

func (m *MockReminderRepository) AppendTakenEvent(ctx context.Context, reminderID string, event model.TakenEvent) error {
	args := m.Called(ctx, reminderID, event)
	return args.Error(0)
}

func TestCreateReminder_Defaults(t *testing.T) {
	repo := new(MockReminderRepository)
	svc := NewReminderService(repo, zap.NewNop())

	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.MedicationReminder")).Return(nil)

	reminder := &model.MedicationReminder{
		MedicineName: "Lisinopril",
		Dosage:       "10mg",
		Frequency:    "daily",
	}

	err := svc.CreateReminder(context.Background(), "user-1", reminder)

	require.NoError(t, err)
	assert.NotEmpty(t, reminder.ID)
	assert.Equal(t, "user-1", reminder.UserID)
	assert.True(t, reminder.Active)
	assert.NotNil(t, reminder.Times)
	assert.NotNil(t, reminder.History)
	repo.AssertExpectations(t)
}

func TestCreateReminder_Validation(t *testing.T) {
	svc := NewReminderService(new(MockReminderRepository), zap.NewNop())

	tests := []struct {
		name     string
		reminder *model.MedicationReminder
	}{
		{"missing name", &model.MedicationReminder{Dosage: "10mg", Frequency: "daily"}},
		{"missing dosage", &model.MedicationReminder{MedicineName: "X", Frequency: "daily"}},
		{"missing frequency", &model.MedicationReminder{MedicineName: "X", Dosage: "10mg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CreateReminder(context.Background(), "user-1", tt.reminder)
			assert.Error(t, err)
		})
	}
}

func TestDeactivateReminder_OwnershipCheck(t *testing.T) {
	repo := new(MockReminderRepository)
	svc := NewReminderService(repo, zap.NewNop())

	reminder := &model.MedicationReminder{ID: "rem-1", UserID: "someone-else"}
	repo.On("FindByID", mock.Anything, "rem-1").Return(reminder, nil)

	err := svc.DeactivateReminder(context.Background(), "user-1", "rem-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	repo.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything)
}

func TestDeactivateReminder_Success(t *testing.T) {
	repo := new(MockReminderRepository)
	svc := NewReminderService(repo, zap.NewNop())

	reminder := &model.MedicationReminder{ID: "rem-1", UserID: "user-1", Active: true}
	repo.On("FindByID", mock.Anything, "rem-1").Return(reminder, nil)
	repo.On("Deactivate", mock.Anything, "rem-1").Return(nil)

	err := svc.DeactivateReminder(context.Background(), "user-1", "rem-1")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestLogTaken_DefaultsStatus(t *testing.T) {
	repo := new(MockReminderRepository)
	svc := NewReminderService(repo, zap.NewNop())

	reminder := &model.MedicationReminder{ID: "rem-1", UserID: "user-1"}
	repo.On("FindByID", mock.Anything, "rem-1").Return(reminder, nil)

	var logged model.TakenEvent
	repo.On("AppendTakenEvent", mock.Anything, "rem-1", mock.AnythingOfType("model.TakenEvent")).
		Run(func(args mock.Arguments) {
			logged = args.Get(2).(model.TakenEvent)
		}).
		Return(nil)

	err := svc.LogTaken(context.Background(), "user-1", "rem-1", "")

	require.NoError(t, err)
	assert.Equal(t, "taken", logged.Status)
	assert.False(t, logged.TakenAt.IsZero())
}

func TestLogTaken_ExplicitStatus(t *testing.T) {
	repo := new(MockReminderRepository)
	svc := NewReminderService(repo, zap.NewNop())

	reminder := &model.MedicationReminder{ID: "rem-1", UserID: "user-1"}
	repo.On("FindByID", mock.Anything, "rem-1").Return(reminder, nil)

	var logged model.TakenEvent
	repo.On("AppendTakenEvent", mock.Anything, "rem-1", mock.Anything).
		Run(func(args mock.Arguments) {
			logged = args.Get(2).(model.TakenEvent)
		}).
		Return(nil)

	err := svc.LogTaken(context.Background(), "user-1", "rem-1", "skipped")

	require.NoError(t, err)
	assert.Equal(t, "skipped", logged.Status)
}

func TestLogTaken_OwnershipCheck(t *testing.T) {
	repo := new(MockReminderRepository)
	svc := NewReminderService(repo, zap.NewNop())

	reminder := &model.MedicationReminder{ID: "rem-1", UserID: "someone-else"}
	repo.On("FindByID", mock.Anything, "rem-1").Return(reminder, nil)

	err := svc.LogTaken(context.Background(), "user-1", "rem-1", "taken")

	require.Error(t, err)
	repo.AssertNotCalled(t, "AppendTakenEvent", mock.Anything, mock.Anything, mock.Anything)
}
