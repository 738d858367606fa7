package service

import (
	"fmt"

	"github.com/healthfolio/backend/pkg/model"
)

// maxPriorityImprovements caps how many improvement areas are surfaced
// at once so the user is not overwhelmed.
const maxPriorityImprovements = 3

// Improvement is a rule-triggered lifestyle change suggestion
type Improvement struct {
	Title          string   `json:"title"`
	Status         string   `json:"status"`
	Recommendation string   `json:"recommendation"`
	Benefits       string   `json:"benefits"`
	ActionSteps    []string `json:"action_steps"`
}

// Strength is a maintained healthy habit worth calling out
type Strength struct {
	Area    string `json:"area"`
	Message string `json:"message"`
}

// PriorityImprovements evaluates the improvement rules in a fixed order
// and returns at most three matches. The order is declaration order,
// not severity order: rules that match beyond the cap are dropped even
// if they would score worse than the ones kept.
func PriorityImprovements(a model.QuizAnswers) []Improvement {
	var improvements []Improvement

	if a.SleepQuality == "Very Poor" || a.SleepQuality == "Poor" {
		improvements = append(improvements, Improvement{
			Title:          "Sleep Quality Enhancement",
			Status:         fmt.Sprintf("Current quality: %s", answerOrUnknown(a.SleepQuality)),
			Recommendation: "Improve sleep hygiene and establish a consistent bedtime routine",
			Benefits:       "Better mood, improved memory, stronger immune system, better weight management",
			ActionSteps: []string{
				"Set a consistent bedtime and wake time",
				"Create a relaxing bedtime routine",
				"Avoid screens 1 hour before bed",
				"Keep bedroom cool, dark, and quiet",
			},
		})
	}

	if a.ExerciseFrequency == "Never" || a.ExerciseFrequency == "1-2 times" {
		improvements = append(improvements, Improvement{
			Title:          "Increase Physical Activity",
			Status:         fmt.Sprintf("Current frequency: %s", answerOrUnknown(a.ExerciseFrequency)),
			Recommendation: "Start with 150 minutes of moderate exercise per week",
			Benefits:       "Improved cardiovascular health, better mood, increased energy, weight management",
			ActionSteps: []string{
				"Start with 10-minute daily walks",
				"Take stairs instead of elevators",
				"Park farther away from destinations",
				"Try bodyweight exercises at home",
			},
		})
	}

	if a.BreakfastFrequency == "Never" || a.BreakfastFrequency == "Rarely (1-2 times/week)" {
		improvements = append(improvements, Improvement{
			Title:          "Establish Regular Breakfast Habit",
			Status:         fmt.Sprintf("Current frequency: %s", answerOrUnknown(a.BreakfastFrequency)),
			Recommendation: "Eat a nutritious breakfast daily to jumpstart metabolism",
			Benefits:       "Better energy levels, improved concentration, better weight management",
			ActionSteps: []string{
				"Prepare breakfast the night before",
				"Start with simple options like oatmeal or yogurt",
				"Include protein in every breakfast",
				"Set a morning alarm for breakfast time",
			},
		})
	}

	if a.StressLevel == "High" || a.StressLevel == "Very High" {
		improvements = append(improvements, Improvement{
			Title:          "Stress Management",
			Status:         fmt.Sprintf("Current stress level: %s", answerOrUnknown(a.StressLevel)),
			Recommendation: "Implement daily stress reduction techniques",
			Benefits:       "Lower blood pressure, better sleep, improved immune function, better mood",
			ActionSteps: []string{
				"Practice 5 minutes of deep breathing daily",
				"Try meditation apps like Headspace or Calm",
				"Schedule regular breaks during work",
				"Consider talking to a counselor",
			},
		})
	}

	if len(improvements) > maxPriorityImprovements {
		improvements = improvements[:maxPriorityImprovements]
	}
	return improvements
}

// LifestyleStrengths returns one entry per satisfied strength rule.
// Unlike improvements there is no cap.
func LifestyleStrengths(a model.QuizAnswers) []Strength {
	var strengths []Strength

	if a.SleepQuality == "Good" || a.SleepQuality == "Excellent" {
		strengths = append(strengths, Strength{
			Area:    "Sleep Quality",
			Message: "You have excellent sleep habits! Continue maintaining your sleep routine.",
		})
	}

	if a.ExerciseFrequency == "5-6 times" || a.ExerciseFrequency == "Daily" {
		strengths = append(strengths, Strength{
			Area:    "Physical Activity",
			Message: "Great job staying active! Your exercise routine is excellent.",
		})
	}

	if a.VegetableServings == "3-4 servings" || a.VegetableServings == "5+ servings" {
		strengths = append(strengths, Strength{
			Area:    "Vegetable Intake",
			Message: "Excellent vegetable consumption! You're getting great nutrition.",
		})
	}

	if a.WaterIntake == "6-8 glasses" || a.WaterIntake == "More than 8 glasses" {
		strengths = append(strengths, Strength{
			Area:    "Hydration",
			Message: "Perfect hydration levels! Keep up the great water intake.",
		})
	}

	if a.StressLevel == "Very Low" || a.StressLevel == "Low" {
		strengths = append(strengths, Strength{
			Area:    "Stress Management",
			Message: "Excellent stress management! You're handling stress very well.",
		})
	}

	return strengths
}

func answerOrUnknown(answer string) string {
	if answer == "" {
		return "Unknown"
	}
	return answer
}
