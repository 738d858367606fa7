package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/healthfolio/backend/pkg/model"
	"go.uber.org/zap"
)

// ReminderRepositoryInterface defines the interface for reminder persistence
type ReminderRepositoryInterface interface {
	Create(ctx context.Context, reminder *model.MedicationReminder) error
	FindByID(ctx context.Context, reminderID string) (*model.MedicationReminder, error)
	FindByUserID(ctx context.Context, userID string) ([]model.MedicationReminder, error)
	Deactivate(ctx context.Context, reminderID string) error
	AppendTakenEvent(ctx context.Context, reminderID string, event model.TakenEvent) error
}

// ReminderService manages medication reminders and adherence events
type ReminderService struct {
	repo   ReminderRepositoryInterface
	logger *zap.Logger
}

// NewReminderService creates a new ReminderService
func NewReminderService(repo ReminderRepositoryInterface, logger *zap.Logger) *ReminderService {
	return &ReminderService{
		repo:   repo,
		logger: logger,
	}
}

// CreateReminder stores a new active medication reminder
func (s *ReminderService) CreateReminder(ctx context.Context, userID string, reminder *model.MedicationReminder) error {
	if userID == "" {
		return fmt.Errorf("user ID is required")
	}
	if reminder.MedicineName == "" {
		return fmt.Errorf("medicine name is required")
	}
	if reminder.Dosage == "" {
		return fmt.Errorf("dosage is required")
	}
	if reminder.Frequency == "" {
		return fmt.Errorf("frequency is required")
	}

	if reminder.ID == "" {
		reminder.ID = uuid.New().String()
	}
	reminder.UserID = userID
	reminder.Active = true
	if reminder.Times == nil {
		reminder.Times = []string{}
	}
	if reminder.History == nil {
		reminder.History = []model.TakenEvent{}
	}
	reminder.CreatedAt = time.Now()

	if err := s.repo.Create(ctx, reminder); err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}

	s.logger.Info("medication reminder created",
		zap.String("reminder_id", reminder.ID),
		zap.String("user_id", userID),
		zap.String("medicine_name", reminder.MedicineName),
	)

	return nil
}

// ListReminders retrieves all reminders for a user, active first
func (s *ReminderService) ListReminders(ctx context.Context, userID string) ([]model.MedicationReminder, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	return s.repo.FindByUserID(ctx, userID)
}

// DeactivateReminder flips a reminder inactive, preserving its history
func (s *ReminderService) DeactivateReminder(ctx context.Context, userID, reminderID string) error {
	if userID == "" {
		return fmt.Errorf("user ID is required")
	}
	if reminderID == "" {
		return fmt.Errorf("reminder ID is required")
	}

	reminder, err := s.repo.FindByID(ctx, reminderID)
	if err != nil {
		return err
	}
	if reminder.UserID != userID {
		return fmt.Errorf("medication reminder not found: %s", reminderID)
	}

	if err := s.repo.Deactivate(ctx, reminderID); err != nil {
		return err
	}

	s.logger.Info("medication reminder deactivated",
		zap.String("reminder_id", reminderID),
		zap.String("user_id", userID),
	)

	return nil
}

// LogTaken appends a taken-event to a reminder's adherence history
func (s *ReminderService) LogTaken(ctx context.Context, userID, reminderID, status string) error {
	if userID == "" {
		return fmt.Errorf("user ID is required")
	}
	if reminderID == "" {
		return fmt.Errorf("reminder ID is required")
	}
	if status == "" {
		status = "taken"
	}

	reminder, err := s.repo.FindByID(ctx, reminderID)
	if err != nil {
		return err
	}
	if reminder.UserID != userID {
		return fmt.Errorf("medication reminder not found: %s", reminderID)
	}

	event := model.TakenEvent{
		TakenAt: time.Now(),
		Status:  status,
	}

	if err := s.repo.AppendTakenEvent(ctx, reminderID, event); err != nil {
		return err
	}

	s.logger.Info("medication taken event logged",
		zap.String("reminder_id", reminderID),
		zap.String("user_id", userID),
		zap.String("status", status),
	)

	return nil
}
