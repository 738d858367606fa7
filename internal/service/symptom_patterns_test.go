package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthfolio/backend/pkg/model"
)

func symptomEntry(name string, severity model.SymptomSeverity) model.SymptomEntry {
	return model.SymptomEntry{
		ID:       "entry",
		UserID:   "user-1",
		Name:     name,
		Severity: severity,
	}
}

func TestAnalyzeSymptomPatterns_EmptyLog(t *testing.T) {
	analysis := AnalyzeSymptomPatterns(nil)

	assert.Empty(t, analysis.RecurringSymptoms)
	assert.Empty(t, analysis.SeverityTrends)
	assert.Empty(t, analysis.Insights)
	// Empty collections, not nil, so JSON renders [] and {}
	assert.NotNil(t, analysis.RecurringSymptoms)
	assert.NotNil(t, analysis.SeverityTrends)
	assert.NotNil(t, analysis.Insights)
}

func TestAnalyzeSymptomPatterns_RecurringThreshold(t *testing.T) {
	entries := []model.SymptomEntry{
		symptomEntry("headache", model.SeverityMild),
		symptomEntry("headache", model.SeverityMild),
		symptomEntry("nausea", model.SeverityMild),
	}

	analysis := AnalyzeSymptomPatterns(entries)
	assert.Empty(t, analysis.RecurringSymptoms)

	entries = append(entries, symptomEntry("headache", model.SeverityMild))
	analysis = AnalyzeSymptomPatterns(entries)
	assert.Equal(t, []string{"headache"}, analysis.RecurringSymptoms)
}

func TestAnalyzeSymptomPatterns_ExactNameGrouping(t *testing.T) {
	entries := []model.SymptomEntry{
		symptomEntry("headache", model.SeverityMild),
		symptomEntry("Headache", model.SeverityMild),
		symptomEntry("headache ", model.SeverityMild),
	}

	analysis := AnalyzeSymptomPatterns(entries)

	// Name variants are distinct symptoms, none reaches the threshold
	assert.Empty(t, analysis.RecurringSymptoms)
	assert.Len(t, analysis.SeverityTrends, 3)
}

func TestAnalyzeSymptomPatterns_SeverityTrends(t *testing.T) {
	tests := []struct {
		name       string
		severities []model.SymptomSeverity
		expected   string
	}{
		{
			name:       "all mild is stable",
			severities: []model.SymptomSeverity{model.SeverityMild, model.SeverityMild},
			expected:   "stable",
		},
		{
			name:       "average exactly 1.5 is stable",
			severities: []model.SymptomSeverity{model.SeverityMild, model.SeverityModerate},
			expected:   "stable",
		},
		{
			name:       "average above 1.5 is increasing",
			severities: []model.SymptomSeverity{model.SeverityModerate, model.SeverityModerate},
			expected:   "increasing",
		},
		{
			name:       "severe entries push the average up",
			severities: []model.SymptomSeverity{model.SeverityMild, model.SeveritySevere},
			expected:   "increasing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var entries []model.SymptomEntry
			for _, s := range tt.severities {
				entries = append(entries, symptomEntry("back pain", s))
			}

			analysis := AnalyzeSymptomPatterns(entries)
			assert.Equal(t, tt.expected, analysis.SeverityTrends["back pain"])
		})
	}
}

func TestAnalyzeSymptomPatterns_TrendIgnoresEntryOrder(t *testing.T) {
	forward := []model.SymptomEntry{
		symptomEntry("fatigue", model.SeverityMild),
		symptomEntry("fatigue", model.SeverityModerate),
		symptomEntry("fatigue", model.SeveritySevere),
	}
	reversed := []model.SymptomEntry{
		symptomEntry("fatigue", model.SeveritySevere),
		symptomEntry("fatigue", model.SeverityModerate),
		symptomEntry("fatigue", model.SeverityMild),
	}

	// The trend is an average, not a slope, so order cannot matter
	assert.Equal(t,
		AnalyzeSymptomPatterns(forward).SeverityTrends,
		AnalyzeSymptomPatterns(reversed).SeverityTrends,
	)
}

func TestAnalyzeSymptomPatterns_Insights(t *testing.T) {
	entries := []model.SymptomEntry{
		symptomEntry("headache", model.SeverityModerate),
		symptomEntry("headache", model.SeverityModerate),
		symptomEntry("headache", model.SeveritySevere),
		symptomEntry("nausea", model.SeverityMild),
	}

	analysis := AnalyzeSymptomPatterns(entries)

	require.NotEmpty(t, analysis.Insights)
	assert.Equal(t, "You have 1 recurring symptom(s): headache", analysis.Insights[0])
	assert.Contains(t, analysis.Insights, "headache shows increasing severity - consider consulting a doctor")
}

func TestAnalyzeSymptomPatterns_UnknownSeverityScoresZero(t *testing.T) {
	entries := []model.SymptomEntry{
		symptomEntry("dizziness", model.SymptomSeverity("unbearable")),
		symptomEntry("dizziness", model.SymptomSeverity("unbearable")),
	}

	analysis := AnalyzeSymptomPatterns(entries)

	assert.Equal(t, "stable", analysis.SeverityTrends["dizziness"])
}
