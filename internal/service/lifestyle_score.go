package service

import (
	"github.com/healthfolio/backend/pkg/model"
)

// ComputeLifestyleScore derives a 0-100 wellness score from the quiz
// answers. Five categories contribute up to 20 points each; the sum is
// capped at 100. Unanswered questions simply contribute nothing, so a
// partially completed quiz still scores.
func ComputeLifestyleScore(a model.QuizAnswers) int {
	total := sleepScore(a) + exerciseScore(a) + nutritionScore(a) + stressScore(a) + medicationScore(a)
	if total > 100 {
		return 100
	}
	return total
}

func sleepScore(a model.QuizAnswers) int {
	score := 0
	switch a.SleepQuality {
	case "Good", "Excellent":
		score += 15
	case "Average":
		score += 10
	}
	if len(a.SleepIssues) == 0 || contains(a.SleepIssues, "None") {
		score += 5
	}
	return score
}

func exerciseScore(a model.QuizAnswers) int {
	freqPoints := map[string]int{
		"Daily":     15,
		"5-6 times": 12,
		"3-4 times": 8,
		"1-2 times": 4,
		"Never":     0,
	}
	score := freqPoints[a.ExerciseFrequency]
	if a.DailySteps == "8,000-10,000" || a.DailySteps == "More than 10,000" {
		score += 5
	}
	return score
}

func nutritionScore(a model.QuizAnswers) int {
	score := 0
	if a.BreakfastFrequency == "Often (5-6 times/week)" || a.BreakfastFrequency == "Daily" {
		score += 5
	}
	if a.VegetableServings == "3-4 servings" || a.VegetableServings == "5+ servings" {
		score += 5
	}
	if a.WaterIntake == "6-8 glasses" || a.WaterIntake == "More than 8 glasses" {
		score += 5
	}
	if len(a.ProteinSources) >= 3 {
		score += 5
	}
	return score
}

func stressScore(a model.QuizAnswers) int {
	score := 0
	switch a.StressLevel {
	case "Very Low", "Low":
		score += 10
	case "Moderate":
		score += 6
	}
	if len(a.RelaxationActivities) >= 2 {
		score += 5
	}
	if a.WorkSatisfaction == "Satisfied" || a.WorkSatisfaction == "Very Satisfied" {
		score += 5
	}
	return score
}

func medicationScore(a model.QuizAnswers) int {
	score := 0
	if a.MedicationAdherence == "Usually" || a.MedicationAdherence == "Always" {
		score += 10
	}
	switch a.DoctorVisits {
	case "Once a year", "Twice a year", "Quarterly":
		score += 5
	}
	if len(a.HealthMonitoring) >= 2 {
		score += 5
	}
	return score
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
