package model

import "time"

// MetricStatus classifies a metric value relative to its normal range
type MetricStatus string

const (
	MetricStatusNormal     MetricStatus = "normal"
	MetricStatusHigh       MetricStatus = "high"
	MetricStatusLow        MetricStatus = "low"
	MetricStatusConcerning MetricStatus = "concerning"
)

// Metric represents a named health measurement extracted from a report.
// Value keeps the display form ("120/80 mmHg"); numeric extraction is
// best-effort and happens in the metric series extractor.
type Metric struct {
	Name        string       `json:"name"`
	Value       string       `json:"value"`
	NormalRange string       `json:"normal_range,omitempty"`
	Notes       string       `json:"notes,omitempty"`
	Status      MetricStatus `json:"status,omitempty"`
}

// ReportRecord represents one analyzed medical document. Records are
// immutable after creation except for the Downloaded flag. Slice order
// in a user's history is insertion order, not date order.
type ReportRecord struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Filename        string    `json:"filename"`
	ReportedAt      time.Time `json:"reported_at"`
	DateDisplay     string    `json:"date_display"`
	Summary         string    `json:"summary"`
	Concerns        []string  `json:"concerns"`
	Recommendations []string  `json:"recommendations"`
	Metrics         []Metric  `json:"metrics"`
	ExtractedText   string    `json:"extracted_text,omitempty"`
	Downloaded      bool      `json:"downloaded"`
	CreatedAt       time.Time `json:"created_at"`
}

// QuizAnswers is the cumulative lifestyle quiz answer set for one user.
// Sections are saved independently, so any field may be empty; every
// scoring conditional treats an empty value as "not answered".
type QuizAnswers struct {
	// Sleep section
	SleepQuality       string   `json:"sleep_quality,omitempty"`
	SleepHours         string   `json:"sleep_hours,omitempty"`
	SleepIssues        []string `json:"sleep_issues,omitempty"`
	BedtimeConsistency string   `json:"bedtime_consistency,omitempty"`

	// Work and stress section
	StressLevel          string   `json:"stress_level,omitempty"`
	WorkHours            string   `json:"work_hours,omitempty"`
	RelaxationActivities []string `json:"relaxation_activities,omitempty"`
	WorkSatisfaction     string   `json:"work_satisfaction,omitempty"`

	// Exercise section
	ExerciseFrequency string   `json:"exercise_frequency,omitempty"`
	DailySteps        string   `json:"daily_steps,omitempty"`
	ExerciseTypes     []string `json:"exercise_types,omitempty"`
	ExerciseDuration  string   `json:"exercise_duration,omitempty"`

	// Nutrition section
	BreakfastFrequency string   `json:"breakfast_frequency,omitempty"`
	VegetableServings  string   `json:"vegetable_servings,omitempty"`
	WaterIntake        string   `json:"water_intake,omitempty"`
	ProteinSources     []string `json:"protein_sources,omitempty"`

	// Medication and health management section
	MedicationAdherence string   `json:"medication_adherence,omitempty"`
	DoctorVisits        string   `json:"doctor_visits,omitempty"`
	HealthMonitoring    []string `json:"health_monitoring,omitempty"`

	CompletedSections []string `json:"completed_sections,omitempty"`
}

// LifestyleQuizEntry is one recorded quiz submission with the score
// computed at recording time and the answer snapshot used to compute it.
type LifestyleQuizEntry struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Date      string      `json:"date"`
	Score     int         `json:"score"`
	Answers   QuizAnswers `json:"answers"`
}

// SymptomSeverity is the severity of a logged symptom
type SymptomSeverity string

const (
	SeverityMild     SymptomSeverity = "mild"
	SeverityModerate SymptomSeverity = "moderate"
	SeveritySevere   SymptomSeverity = "severe"
)

// SymptomEntry represents one symptom log. Entries are append-only and
// ordered by logging time.
type SymptomEntry struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Name        string          `json:"name"`
	Severity    SymptomSeverity `json:"severity"`
	Description string          `json:"description,omitempty"`
	Duration    string          `json:"duration,omitempty"`
	Triggers    string          `json:"triggers,omitempty"`
	LoggedAt    time.Time       `json:"logged_at"`
}

// GoalType identifies the kind of health goal and the direction of the
// achievement comparison.
type GoalType string

const (
	GoalWeightLoss       GoalType = "weight_loss"
	GoalBloodPressure    GoalType = "blood_pressure_reduction"
	GoalCholesterol      GoalType = "cholesterol_reduction"
	GoalExerciseMinutes  GoalType = "exercise_minutes"
	GoalDailySteps       GoalType = "daily_steps"
	GoalCustom           GoalType = "custom"
)

// GoalStatus is the lifecycle status of a health goal
type GoalStatus string

const (
	GoalStatusActive   GoalStatus = "active"
	GoalStatusAchieved GoalStatus = "achieved"
)

// GoalProgress is one progress log entry on a goal
type GoalProgress struct {
	Date       string    `json:"date"`
	Value      float64   `json:"value"`
	RecordedAt time.Time `json:"recorded_at"`
}

// HealthGoal represents a tracked health target. Status moves from
// active to achieved exactly once, when a progress update crosses the
// target in the direction implied by the goal type.
type HealthGoal struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	GoalType     GoalType       `json:"goal_type"`
	TargetValue  float64        `json:"target_value"`
	CurrentValue float64        `json:"current_value"`
	TargetDate   string         `json:"target_date"`
	Notes        string         `json:"notes,omitempty"`
	Progress     []GoalProgress `json:"progress"`
	Status       GoalStatus     `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
}

// TakenEvent is one medication adherence event
type TakenEvent struct {
	TakenAt time.Time `json:"taken_at"`
	Status  string    `json:"status"`
}

// MedicationReminder represents a medication schedule with its
// adherence log. Reminders are deactivated rather than deleted.
type MedicationReminder struct {
	ID           string       `json:"id"`
	UserID       string       `json:"user_id"`
	MedicineName string       `json:"medicine_name"`
	Dosage       string       `json:"dosage"`
	Frequency    string       `json:"frequency"`
	Times        []string     `json:"times"`
	StartDate    string       `json:"start_date"`
	EndDate      *string      `json:"end_date,omitempty"`
	Active       bool         `json:"active"`
	History      []TakenEvent `json:"history"`
	CreatedAt    time.Time    `json:"created_at"`
}

// UserHealthData bundles every per-user collection as a whole snapshot.
// The export path reads through this shape only.
type UserHealthData struct {
	UserID      string               `json:"user_id"`
	Reports     []ReportRecord       `json:"reports"`
	Symptoms    []SymptomEntry       `json:"symptoms"`
	Goals       []HealthGoal         `json:"goals"`
	Reminders   []MedicationReminder `json:"reminders"`
	QuizAnswers QuizAnswers          `json:"quiz_answers"`
	QuizHistory []LifestyleQuizEntry `json:"quiz_history"`
}
