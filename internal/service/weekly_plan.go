package service

import (
	"github.com/healthfolio/backend/pkg/model"
)

// Weekdays lists the plan days in display order, since the plan itself
// is a map.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeeklyActionPlan builds a 7-day checklist from a fixed wellness
// template, customized by two answer-driven rules: users who never
// exercise get an easier opener on Tuesday, Thursday and Saturday, and
// highly stressed users get a stress reduction task appended to every
// day. Deterministic for the same answers.
func WeeklyActionPlan(a model.QuizAnswers) map[string][]string {
	plan := map[string][]string{
		"Monday":    {"Set weekly health goals", "Meal prep for the week"},
		"Tuesday":   {"30-minute walk or exercise", "Practice 5 minutes of meditation"},
		"Wednesday": {"Try a new healthy recipe", "Take work breaks every 2 hours"},
		"Thursday":  {"Physical activity of choice", "Drink extra water throughout the day"},
		"Friday":    {"Review weekly health progress", "Plan weekend activities"},
		"Saturday":  {"Longer physical activity (hiking, sports)", "Prepare healthy meals"},
		"Sunday":    {"Relax and practice self-care", "Plan next week's health goals"},
	}

	if a.ExerciseFrequency == "Never" {
		for _, day := range []string{"Tuesday", "Thursday", "Saturday"} {
			actions := plan[day]
			plan[day] = append([]string{"Start with 10-minute walk"}, actions[1:]...)
		}
	}

	if a.StressLevel == "High" || a.StressLevel == "Very High" {
		for day := range plan {
			plan[day] = append(plan[day], "Practice stress reduction technique")
		}
	}

	return plan
}
