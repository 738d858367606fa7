package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/healthfolio/backend/pkg/model"
)

// ReminderRepository manages medication reminders and taken-event logs
type ReminderRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewReminderRepository creates a new ReminderRepository
func NewReminderRepository(db *pgxpool.Pool, logger *zap.Logger) *ReminderRepository {
	return &ReminderRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new medication reminder
func (r *ReminderRepository) Create(ctx context.Context, reminder *model.MedicationReminder) error {
	historyJSON, err := json.Marshal(reminder.History)
	if err != nil {
		return fmt.Errorf("failed to marshal reminder history: %w", err)
	}

	query := `
		INSERT INTO medication_reminders (
			id, user_id, medicine_name, dosage, frequency, times,
			start_date, end_date, active, history, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
	`

	_, err = r.db.Exec(ctx, query,
		reminder.ID,
		reminder.UserID,
		reminder.MedicineName,
		reminder.Dosage,
		reminder.Frequency,
		reminder.Times,
		reminder.StartDate,
		reminder.EndDate,
		reminder.Active,
		historyJSON,
	)

	if err != nil {
		r.logger.Error("failed to create medication reminder",
			zap.Error(err),
			zap.String("user_id", reminder.UserID),
			zap.String("medicine_name", reminder.MedicineName),
		)
		return fmt.Errorf("failed to create medication reminder: %w", err)
	}

	return nil
}

// FindByID retrieves a single reminder
func (r *ReminderRepository) FindByID(ctx context.Context, reminderID string) (*model.MedicationReminder, error) {
	query := `
		SELECT id, user_id, medicine_name, dosage, frequency, times,
			start_date, end_date, active, history, created_at
		FROM medication_reminders
		WHERE id = $1
	`

	var reminder model.MedicationReminder
	var historyJSON []byte
	err := r.db.QueryRow(ctx, query, reminderID).Scan(
		&reminder.ID,
		&reminder.UserID,
		&reminder.MedicineName,
		&reminder.Dosage,
		&reminder.Frequency,
		&reminder.Times,
		&reminder.StartDate,
		&reminder.EndDate,
		&reminder.Active,
		&historyJSON,
		&reminder.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to get medication reminder", zap.Error(err), zap.String("reminder_id", reminderID))
		return nil, fmt.Errorf("failed to get medication reminder: %w", err)
	}
	if len(historyJSON) > 0 {
		if err := json.Unmarshal(historyJSON, &reminder.History); err != nil {
			return nil, fmt.Errorf("failed to unmarshal reminder history: %w", err)
		}
	}

	return &reminder, nil
}

// FindByUserID retrieves all reminders for a user, active first
func (r *ReminderRepository) FindByUserID(ctx context.Context, userID string) ([]model.MedicationReminder, error) {
	query := `
		SELECT id, user_id, medicine_name, dosage, frequency, times,
			start_date, end_date, active, history, created_at
		FROM medication_reminders
		WHERE user_id = $1
		ORDER BY active DESC, created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to get medication reminders", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to get medication reminders: %w", err)
	}
	defer rows.Close()

	var reminders []model.MedicationReminder
	for rows.Next() {
		var reminder model.MedicationReminder
		var historyJSON []byte
		err := rows.Scan(
			&reminder.ID,
			&reminder.UserID,
			&reminder.MedicineName,
			&reminder.Dosage,
			&reminder.Frequency,
			&reminder.Times,
			&reminder.StartDate,
			&reminder.EndDate,
			&reminder.Active,
			&historyJSON,
			&reminder.CreatedAt,
		)
		if err != nil {
			r.logger.Error("failed to scan medication reminder", zap.Error(err))
			continue
		}
		if len(historyJSON) > 0 {
			if err := json.Unmarshal(historyJSON, &reminder.History); err != nil {
				r.logger.Error("failed to unmarshal reminder history",
					zap.Error(err),
					zap.String("reminder_id", reminder.ID),
				)
			}
		}
		reminders = append(reminders, reminder)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating medication reminders", zap.Error(err))
		return nil, fmt.Errorf("error iterating medication reminders: %w", err)
	}

	return reminders, nil
}

// Deactivate flips a reminder inactive. Reminders are never deleted so
// the adherence history survives.
func (r *ReminderRepository) Deactivate(ctx context.Context, reminderID string) error {
	query := `UPDATE medication_reminders SET active = FALSE WHERE id = $1`

	result, err := r.db.Exec(ctx, query, reminderID)
	if err != nil {
		r.logger.Error("failed to deactivate medication reminder",
			zap.Error(err),
			zap.String("reminder_id", reminderID),
		)
		return fmt.Errorf("failed to deactivate medication reminder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("medication reminder not found: %s", reminderID)
	}

	return nil
}

// AppendTakenEvent records a taken-event on a reminder's history
func (r *ReminderRepository) AppendTakenEvent(ctx context.Context, reminderID string, event model.TakenEvent) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal taken event: %w", err)
	}

	query := `
		UPDATE medication_reminders
		SET history = COALESCE(history, '[]'::jsonb) || $1::jsonb
		WHERE id = $2
	`

	result, err := r.db.Exec(ctx, query, eventJSON, reminderID)
	if err != nil {
		r.logger.Error("failed to append taken event",
			zap.Error(err),
			zap.String("reminder_id", reminderID),
		)
		return fmt.Errorf("failed to append taken event: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("medication reminder not found: %s", reminderID)
	}

	return nil
}
