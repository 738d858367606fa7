package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthfolio/backend/pkg/model"
)

func TestWeeklyActionPlan_DefaultTemplate(t *testing.T) {
	plan := WeeklyActionPlan(model.QuizAnswers{})

	require.Len(t, plan, 7)
	for _, day := range Weekdays {
		assert.Len(t, plan[day], 2, day)
	}
	assert.Equal(t, []string{"Set weekly health goals", "Meal prep for the week"}, plan["Monday"])
	assert.Equal(t, []string{"30-minute walk or exercise", "Practice 5 minutes of meditation"}, plan["Tuesday"])
}

func TestWeeklyActionPlan_NeverExercises(t *testing.T) {
	plan := WeeklyActionPlan(model.QuizAnswers{ExerciseFrequency: "Never"})

	// Tuesday, Thursday and Saturday open with an easier activity
	for _, day := range []string{"Tuesday", "Thursday", "Saturday"} {
		require.NotEmpty(t, plan[day], day)
		assert.Equal(t, "Start with 10-minute walk", plan[day][0], day)
		assert.Len(t, plan[day], 2, day)
	}

	// The second action of each replaced day survives
	assert.Equal(t, "Practice 5 minutes of meditation", plan["Tuesday"][1])

	// Other days are untouched
	assert.Equal(t, []string{"Set weekly health goals", "Meal prep for the week"}, plan["Monday"])
}

func TestWeeklyActionPlan_HighStress(t *testing.T) {
	for _, level := range []string{"High", "Very High"} {
		plan := WeeklyActionPlan(model.QuizAnswers{StressLevel: level})

		for _, day := range Weekdays {
			require.Len(t, plan[day], 3, day)
			assert.Equal(t, "Practice stress reduction technique", plan[day][2], day)
		}
	}
}

func TestWeeklyActionPlan_BothRulesStack(t *testing.T) {
	plan := WeeklyActionPlan(model.QuizAnswers{
		ExerciseFrequency: "Never",
		StressLevel:       "Very High",
	})

	require.Len(t, plan["Tuesday"], 3)
	assert.Equal(t, "Start with 10-minute walk", plan["Tuesday"][0])
	assert.Equal(t, "Practice stress reduction technique", plan["Tuesday"][2])
}

func TestWeeklyActionPlan_Deterministic(t *testing.T) {
	answers := model.QuizAnswers{ExerciseFrequency: "Never", StressLevel: "High"}

	assert.Equal(t, WeeklyActionPlan(answers), WeeklyActionPlan(answers))
}
