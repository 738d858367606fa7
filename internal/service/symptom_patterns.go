package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/healthfolio/backend/pkg/model"
)

// recurringThreshold is the occurrence count at which a symptom counts
// as recurring.
const recurringThreshold = 3

// severityOrdinal maps severity labels to ordinal scores for averaging.
// Unknown labels score zero rather than erroring.
var severityOrdinal = map[model.SymptomSeverity]int{
	model.SeverityMild:     1,
	model.SeverityModerate: 2,
	model.SeveritySevere:   3,
}

// SymptomAnalysis is the result of analyzing a user's symptom log
type SymptomAnalysis struct {
	RecurringSymptoms []string          `json:"recurring_symptoms"`
	SeverityTrends    map[string]string `json:"severity_trends"`
	Insights          []string          `json:"insights"`
}

// AnalyzeSymptomPatterns detects recurring symptoms and per-symptom
// severity trends in a symptom log. Grouping is by exact name. The
// "increasing" classification uses the static average of ordinal
// severities (> 1.5), not a chronological slope; this mirrors the
// simple heuristic the product has always shipped and keeps the result
// independent of entry order.
func AnalyzeSymptomPatterns(entries []model.SymptomEntry) SymptomAnalysis {
	if len(entries) == 0 {
		return SymptomAnalysis{
			RecurringSymptoms: []string{},
			SeverityTrends:    map[string]string{},
			Insights:          []string{},
		}
	}

	counts := make(map[string]int)
	severities := make(map[string][]model.SymptomSeverity)
	var order []string

	for _, entry := range entries {
		if _, seen := counts[entry.Name]; !seen {
			order = append(order, entry.Name)
		}
		counts[entry.Name]++
		severities[entry.Name] = append(severities[entry.Name], entry.Severity)
	}

	var recurring []string
	for _, name := range order {
		if counts[name] >= recurringThreshold {
			recurring = append(recurring, name)
		}
	}
	if recurring == nil {
		recurring = []string{}
	}

	trends := make(map[string]string, len(severities))
	for name, list := range severities {
		sum := 0
		for _, s := range list {
			sum += severityOrdinal[s]
		}
		avg := float64(sum) / float64(len(list))
		if avg > 1.5 {
			trends[name] = "increasing"
		} else {
			trends[name] = "stable"
		}
	}

	insights := []string{}
	if len(recurring) > 0 {
		insights = append(insights, fmt.Sprintf(
			"You have %d recurring symptom(s): %s",
			len(recurring), strings.Join(recurring, ", "),
		))
	}

	increasing := make([]string, 0, len(trends))
	for name, trend := range trends {
		if trend == "increasing" {
			increasing = append(increasing, name)
		}
	}
	sort.Strings(increasing)
	for _, name := range increasing {
		insights = append(insights, fmt.Sprintf(
			"%s shows increasing severity - consider consulting a doctor", name,
		))
	}

	return SymptomAnalysis{
		RecurringSymptoms: recurring,
		SeverityTrends:    trends,
		Insights:          insights,
	}
}
