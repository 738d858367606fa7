package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/healthfolio/backend/pkg/model"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ExportService assembles the whole per-user health data bundle and
// renders it as JSON or an Excel workbook.
type ExportService struct {
	reports   ReportRepositoryInterface
	lifestyle LifestyleRepositoryInterface
	symptoms  SymptomRepositoryInterface
	goals     GoalRepositoryInterface
	reminders ReminderRepositoryInterface
	logger    *zap.Logger
}

// NewExportService creates a new ExportService
func NewExportService(
	reports ReportRepositoryInterface,
	lifestyle LifestyleRepositoryInterface,
	symptoms SymptomRepositoryInterface,
	goals GoalRepositoryInterface,
	reminders ReminderRepositoryInterface,
	logger *zap.Logger,
) *ExportService {
	return &ExportService{
		reports:   reports,
		lifestyle: lifestyle,
		symptoms:  symptoms,
		goals:     goals,
		reminders: reminders,
		logger:    logger,
	}
}

// Snapshot gathers every per-user collection into one bundle
func (s *ExportService) Snapshot(ctx context.Context, userID string) (*model.UserHealthData, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	reports, err := s.reports.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	symptoms, err := s.symptoms.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	goals, err := s.goals.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	reminders, err := s.reminders.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	answers, err := s.lifestyle.GetAnswers(ctx, userID)
	if err != nil {
		return nil, err
	}

	history, err := s.lifestyle.GetHistory(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.UserHealthData{
		UserID:      userID,
		Reports:     reports,
		Symptoms:    symptoms,
		Goals:       goals,
		Reminders:   reminders,
		QuizAnswers: answers,
		QuizHistory: history,
	}, nil
}

// ExportJSON renders the full bundle as indented JSON
func (s *ExportService) ExportJSON(ctx context.Context, userID string) ([]byte, error) {
	data, err := s.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	payload := struct {
		*model.UserHealthData
		ExportedAt time.Time `json:"exported_at"`
	}{
		UserHealthData: data,
		ExportedAt:     time.Now(),
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}

	s.logger.Info("JSON export generated",
		zap.String("user_id", userID),
		zap.Int("size_bytes", len(out)),
	)

	return out, nil
}

// ExportWorkbook renders the full bundle as an Excel workbook with one
// sheet per collection.
func (s *ExportService) ExportWorkbook(ctx context.Context, userID string) ([]byte, error) {
	data, err := s.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := s.writeReportsSheet(f, data.Reports); err != nil {
		return nil, err
	}
	if err := s.writeMetricsSheet(f, data.Reports); err != nil {
		return nil, err
	}
	if err := s.writeScoresSheet(f, data.Reports, data.QuizHistory); err != nil {
		return nil, err
	}
	if err := s.writeSymptomsSheet(f, data.Symptoms); err != nil {
		return nil, err
	}
	if err := s.writeGoalsSheet(f, data.Goals); err != nil {
		return nil, err
	}
	if err := s.writeRemindersSheet(f, data.Reminders); err != nil {
		return nil, err
	}

	// Drop the default sheet so the workbook opens on the reports
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to finalize workbook: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("workbook export generated",
		zap.String("user_id", userID),
		zap.Int("size_bytes", buf.Len()),
	)

	return buf.Bytes(), nil
}

func (s *ExportService) writeReportsSheet(f *excelize.File, reports []model.ReportRecord) error {
	const sheet = "Reports"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	headers := []interface{}{"ID", "Filename", "Report Date", "Summary", "Concerns", "Recommendations", "Downloaded"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}

	for i, report := range reports {
		row := []interface{}{
			report.ID,
			report.Filename,
			reportDate(report),
			report.Summary,
			joinLines(report.Concerns),
			joinLines(report.Recommendations),
			report.Downloaded,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return nil
}

func (s *ExportService) writeMetricsSheet(f *excelize.File, reports []model.ReportRecord) error {
	const sheet = "Metrics"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	headers := []interface{}{"Report Date", "Metric", "Value", "Normal Range", "Status", "Notes"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}

	rowNum := 2
	for _, report := range reports {
		date := reportDate(report)
		for _, metric := range report.Metrics {
			row := []interface{}{
				date,
				metric.Name,
				metric.Value,
				metric.NormalRange,
				string(metric.Status),
				metric.Notes,
			}
			cell := fmt.Sprintf("A%d", rowNum)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return err
			}
			rowNum++
		}
	}

	return nil
}

func (s *ExportService) writeScoresSheet(f *excelize.File, reports []model.ReportRecord, history []model.LifestyleQuizEntry) error {
	const sheet = "Scores"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	headers := []interface{}{"Date", "Type", "Score"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}

	rowNum := 2
	for _, point := range HealthScoreTimeline(reports) {
		row := []interface{}{point.Date, "health", point.Score}
		cell := fmt.Sprintf("A%d", rowNum)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
		rowNum++
	}
	for _, entry := range history {
		row := []interface{}{entry.Date, "lifestyle", entry.Score}
		cell := fmt.Sprintf("A%d", rowNum)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
		rowNum++
	}

	return nil
}

func (s *ExportService) writeSymptomsSheet(f *excelize.File, symptoms []model.SymptomEntry) error {
	const sheet = "Symptoms"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	headers := []interface{}{"Logged At", "Name", "Severity", "Description", "Duration", "Triggers"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}

	for i, symptom := range symptoms {
		row := []interface{}{
			symptom.LoggedAt.Format("2006-01-02 15:04"),
			symptom.Name,
			string(symptom.Severity),
			symptom.Description,
			symptom.Duration,
			symptom.Triggers,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return nil
}

func (s *ExportService) writeGoalsSheet(f *excelize.File, goals []model.HealthGoal) error {
	const sheet = "Goals"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	headers := []interface{}{"Type", "Target", "Current", "Target Date", "Status", "Progress Entries", "Notes"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}

	for i, goal := range goals {
		row := []interface{}{
			string(goal.GoalType),
			goal.TargetValue,
			goal.CurrentValue,
			goal.TargetDate,
			string(goal.Status),
			len(goal.Progress),
			goal.Notes,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return nil
}

func (s *ExportService) writeRemindersSheet(f *excelize.File, reminders []model.MedicationReminder) error {
	const sheet = "Reminders"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	headers := []interface{}{"Medicine", "Dosage", "Frequency", "Start Date", "End Date", "Active", "Taken Events"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}

	for i, reminder := range reminders {
		endDate := ""
		if reminder.EndDate != nil {
			endDate = *reminder.EndDate
		}
		row := []interface{}{
			reminder.MedicineName,
			reminder.Dosage,
			reminder.Frequency,
			reminder.StartDate,
			endDate,
			reminder.Active,
			len(reminder.History),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return nil
}

func joinLines(values []string) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += "\n"
		}
		out += v
	}
	return out
}
