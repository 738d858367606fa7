package service

import (
	"fmt"

	"github.com/healthfolio/backend/pkg/model"
)

// Quiz section identifiers
const (
	SectionSleep       = "sleep"
	SectionWork        = "work"
	SectionExercise    = "exercise"
	SectionNutrition   = "nutrition"
	SectionMedications = "medications"
)

// QuizSections lists all quiz sections in presentation order
var QuizSections = []string{
	SectionSleep,
	SectionWork,
	SectionExercise,
	SectionNutrition,
	SectionMedications,
}

// ValidSection reports whether a section identifier is known
func ValidSection(section string) bool {
	for _, s := range QuizSections {
		if s == section {
			return true
		}
	}
	return false
}

// mergeSection copies the answers belonging to one section from src
// into dst. Answers outside the section are left untouched, so saving
// sections one at a time accumulates a complete answer set.
func mergeSection(dst *model.QuizAnswers, section string, src model.QuizAnswers) error {
	switch section {
	case SectionSleep:
		dst.SleepQuality = src.SleepQuality
		dst.SleepHours = src.SleepHours
		dst.SleepIssues = src.SleepIssues
		dst.BedtimeConsistency = src.BedtimeConsistency
	case SectionWork:
		dst.StressLevel = src.StressLevel
		dst.WorkHours = src.WorkHours
		dst.RelaxationActivities = src.RelaxationActivities
		dst.WorkSatisfaction = src.WorkSatisfaction
	case SectionExercise:
		dst.ExerciseFrequency = src.ExerciseFrequency
		dst.DailySteps = src.DailySteps
		dst.ExerciseTypes = src.ExerciseTypes
		dst.ExerciseDuration = src.ExerciseDuration
	case SectionNutrition:
		dst.BreakfastFrequency = src.BreakfastFrequency
		dst.VegetableServings = src.VegetableServings
		dst.WaterIntake = src.WaterIntake
		dst.ProteinSources = src.ProteinSources
	case SectionMedications:
		dst.MedicationAdherence = src.MedicationAdherence
		dst.DoctorVisits = src.DoctorVisits
		dst.HealthMonitoring = src.HealthMonitoring
	default:
		return fmt.Errorf("unknown quiz section: %s", section)
	}

	// Track section completion without duplicating entries
	for _, completed := range dst.CompletedSections {
		if completed == section {
			return nil
		}
	}
	dst.CompletedSections = append(dst.CompletedSections, section)

	return nil
}
