package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/healthfolio/backend/internal/security"
	"github.com/healthfolio/backend/pkg/model"
)

// setupTestDB creates a PostgreSQL testcontainer and returns the connection pool
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	if testing.Short() {
		t.Skip("skipping container-backed repository tests in short mode")
	}

	ctx := context.Background()

	// Start PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("healthfolio_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	// Get connection string
	connString, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Create connection pool
	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err)

	// Run migrations
	runMigrations(t, pool)

	cleanup := func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return pool, cleanup
}

// runMigrations runs the database migrations
func runMigrations(t *testing.T, pool *pgxpool.Pool) {
	ctx := context.Background()

	// Create tables
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			filename VARCHAR(500) NOT NULL,
			reported_at TIMESTAMP NOT NULL,
			date_display VARCHAR(50) NOT NULL,
			summary TEXT,
			concerns TEXT[],
			recommendations TEXT[],
			metrics JSONB,
			extracted_text TEXT,
			downloaded BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS quiz_answers (
			user_id UUID PRIMARY KEY,
			answers JSONB NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS lifestyle_history (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			recorded_at TIMESTAMP NOT NULL,
			date VARCHAR(50) NOT NULL,
			score INTEGER NOT NULL CHECK (score >= 0 AND score <= 100),
			answers JSONB
		)`,
		`CREATE TABLE IF NOT EXISTS symptoms (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			name VARCHAR(255) NOT NULL,
			severity VARCHAR(50) NOT NULL,
			description TEXT,
			duration VARCHAR(255),
			triggers TEXT,
			logged_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS health_goals (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			goal_type VARCHAR(100) NOT NULL,
			target_value DOUBLE PRECISION NOT NULL,
			current_value DOUBLE PRECISION NOT NULL,
			target_date VARCHAR(50),
			notes TEXT,
			progress JSONB,
			status VARCHAR(50) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS medication_reminders (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			medicine_name VARCHAR(255) NOT NULL,
			dosage VARCHAR(255) NOT NULL,
			frequency VARCHAR(255) NOT NULL,
			times TEXT[],
			start_date VARCHAR(50),
			end_date VARCHAR(50),
			active BOOLEAN NOT NULL DEFAULT true,
			history JSONB,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
	}

	for _, migration := range migrations {
		_, err := pool.Exec(ctx, migration)
		require.NoError(t, err)
	}
}

func TestProperty_SymptomLogIsAppendOnly(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger, _ := zap.NewDevelopment()
	repo := NewSymptomRepository(pool, logger)

	properties := gopter.NewProperties(nil)

	properties.Property("every saved symptom appears in the log exactly once", prop.ForAll(
		func(n int) bool {
			ctx := context.Background()
			userID := uuid.New().String()
			saved := make(map[string]bool)

			base := time.Now().Add(-time.Duration(n) * time.Hour)
			for i := 0; i < n; i++ {
				entry := &model.SymptomEntry{
					ID:       uuid.New().String(),
					UserID:   userID,
					Name:     fmt.Sprintf("symptom-%d", i),
					Severity: model.SeverityMild,
					LoggedAt: base.Add(time.Duration(i) * time.Hour),
				}
				if err := repo.Save(ctx, entry); err != nil {
					t.Logf("Failed to save symptom: %v", err)
					return false
				}
				saved[entry.ID] = true
			}

			entries, err := repo.FindByUserID(ctx, userID)
			if err != nil {
				t.Logf("Failed to load symptoms: %v", err)
				return false
			}
			if len(entries) != n {
				t.Logf("Expected %d entries, got %d", n, len(entries))
				return false
			}

			// Log must come back in logging order
			for i := 1; i < len(entries); i++ {
				if entries[i].LoggedAt.Before(entries[i-1].LoggedAt) {
					t.Logf("Entries out of order at index %d", i)
					return false
				}
			}

			for _, entry := range entries {
				if !saved[entry.ID] {
					t.Logf("Unexpected entry: %s", entry.ID)
					return false
				}
			}

			return true
		},
		gen.IntRange(1, 15),
	))

	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 20
	properties.TestingRun(t, params)
}

func TestProperty_GoalUpdatePreservesID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger, _ := zap.NewDevelopment()
	repo := NewGoalRepository(pool, logger)

	userID := uuid.New().String()

	properties := gopter.NewProperties(nil)

	properties.Property("goal ID and type survive a progress update", prop.ForAll(
		func(targetValue, currentValue float64) bool {
			ctx := context.Background()

			originalID := uuid.New().String()
			goal := &model.HealthGoal{
				ID:           originalID,
				UserID:       userID,
				GoalType:     model.GoalWeightLoss,
				TargetValue:  targetValue,
				CurrentValue: currentValue,
				TargetDate:   "2026-12-31",
				Progress:     []model.GoalProgress{},
				Status:       model.GoalStatusActive,
			}

			if err := repo.Create(ctx, goal); err != nil {
				t.Logf("Failed to create goal: %v", err)
				return false
			}

			goal.CurrentValue = currentValue / 2
			goal.Progress = append(goal.Progress, model.GoalProgress{
				Value: currentValue / 2,
				Date:  "2026-06-01",
			})
			if err := repo.Update(ctx, goal); err != nil {
				t.Logf("Failed to update goal: %v", err)
				return false
			}

			retrieved, err := repo.FindByID(ctx, originalID)
			if err != nil {
				t.Logf("Failed to retrieve goal: %v", err)
				return false
			}

			return retrieved.ID == originalID &&
				retrieved.GoalType == model.GoalWeightLoss &&
				len(retrieved.Progress) == 1
		},
		gen.Float64Range(1, 500),
		gen.Float64Range(1, 500),
	))

	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 20
	properties.TestingRun(t, params)
}

func TestProperty_ReminderDeactivationKeepsHistory(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger, _ := zap.NewDevelopment()
	repo := NewReminderRepository(pool, logger)

	userID := uuid.New().String()

	properties := gopter.NewProperties(nil)

	properties.Property("deactivated reminders keep their adherence log", prop.ForAll(
		func(takenCount int) bool {
			ctx := context.Background()

			reminderID := uuid.New().String()
			reminder := &model.MedicationReminder{
				ID:           reminderID,
				UserID:       userID,
				MedicineName: "Metformin",
				Dosage:       "500mg",
				Frequency:    "twice daily",
				Times:        []string{"08:00", "20:00"},
				StartDate:    "2026-01-01",
				Active:       true,
				History:      []model.TakenEvent{},
			}

			if err := repo.Create(ctx, reminder); err != nil {
				t.Logf("Failed to create reminder: %v", err)
				return false
			}

			for i := 0; i < takenCount; i++ {
				event := model.TakenEvent{
					TakenAt: time.Now().Add(-time.Duration(i) * 12 * time.Hour),
					Status:  "taken",
				}
				if err := repo.AppendTakenEvent(ctx, reminderID, event); err != nil {
					t.Logf("Failed to append taken event: %v", err)
					return false
				}
			}

			if err := repo.Deactivate(ctx, reminderID); err != nil {
				t.Logf("Failed to deactivate reminder: %v", err)
				return false
			}

			retrieved, err := repo.FindByID(ctx, reminderID)
			if err != nil {
				t.Logf("Failed to retrieve reminder: %v", err)
				return false
			}

			return !retrieved.Active && len(retrieved.History) == takenCount
		},
		gen.IntRange(0, 10),
	))

	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 20
	properties.TestingRun(t, params)
}

func TestProperty_LifestyleHistoryIsBounded(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger, _ := zap.NewDevelopment()
	repo := NewLifestyleRepository(pool, logger)

	properties := gopter.NewProperties(nil)

	properties.Property("history never exceeds the retention limit and keeps the newest entries", prop.ForAll(
		func(total, keep int) bool {
			ctx := context.Background()
			userID := uuid.New().String()

			base := time.Now().Add(-time.Duration(total) * time.Minute)
			var lastID string
			for i := 0; i < total; i++ {
				entry := &model.LifestyleQuizEntry{
					ID:        uuid.New().String(),
					UserID:    userID,
					Timestamp: base.Add(time.Duration(i) * time.Minute),
					Date:      base.Add(time.Duration(i) * time.Minute).Format("2006-01-02"),
					Score:     (i * 7) % 101,
					Answers:   model.QuizAnswers{SleepQuality: "Good"},
				}
				if err := repo.AppendHistory(ctx, entry, keep); err != nil {
					t.Logf("Failed to append history: %v", err)
					return false
				}
				lastID = entry.ID
			}

			entries, err := repo.GetHistory(ctx, userID)
			if err != nil {
				t.Logf("Failed to load history: %v", err)
				return false
			}

			expected := total
			if expected > keep {
				expected = keep
			}
			if len(entries) != expected {
				t.Logf("Expected %d entries, got %d", expected, len(entries))
				return false
			}

			// Eviction drops the oldest, so the newest entry always survives
			return entries[len(entries)-1].ID == lastID
		},
		gen.IntRange(1, 12),
		gen.IntRange(1, 8),
	))

	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 20
	properties.TestingRun(t, params)
}

func TestReportRepository_EncryptsExtractedTextAtRest(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger, _ := zap.NewDevelopment()
	encryptor := newTestEncryptor(t)
	repo := NewReportRepository(pool, encryptor, logger)

	ctx := context.Background()
	userID := uuid.New().String()
	extractedText := "Blood Pressure: 150/95 mmHg\nCholesterol: 240 mg/dL"

	report := &model.ReportRecord{
		ID:            uuid.New().String(),
		UserID:        userID,
		Filename:      "labs.txt",
		ReportedAt:    time.Now(),
		DateDisplay:   time.Now().Format("2006-01-02"),
		Summary:       "Elevated blood pressure and cholesterol.",
		Concerns:      []string{"High blood pressure"},
		Recommendations: []string{
			"Consult with a healthcare professional for proper medical advice.",
		},
		Metrics: []model.Metric{
			{Name: "Blood Pressure", Value: "150/95 mmHg", NormalRange: "90-120/60-80 mmHg", Status: model.MetricStatusHigh},
		},
		ExtractedText: extractedText,
	}
	require.NoError(t, repo.Save(ctx, report))

	// The raw column must not hold the plaintext
	var stored string
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT extracted_text FROM reports WHERE id = $1`, report.ID).Scan(&stored))
	require.NotEqual(t, extractedText, stored)
	require.NotEmpty(t, stored)

	// Reads transparently decrypt
	retrieved, err := repo.FindByID(ctx, report.ID)
	require.NoError(t, err)
	require.Equal(t, extractedText, retrieved.ExtractedText)

	list, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, extractedText, list[0].ExtractedText)
}

func newTestEncryptor(t *testing.T) *security.Encryptor {
	enc, err := security.NewEncryptor([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	return enc
}
