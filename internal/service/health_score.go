package service

import (
	"github.com/healthfolio/backend/pkg/model"
)

// Trend is the short-term direction of a score series
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// defaultHealthScore is returned for users with no analyzed reports yet
const defaultHealthScore = 85

// ComputeHealthScore derives a 0-100 health score and a trend direction
// from a user's report history. The base score steps down with concern
// density (total concerns relative to total reports); the trend compares
// the concern rate of the last two reports against everything before
// them and nudges the score by 5 in either direction. The function is a
// pure function of its input and may be called on any prefix of the
// history to build a timeline.
func ComputeHealthScore(history []model.ReportRecord) (int, Trend) {
	if len(history) == 0 {
		return defaultHealthScore, TrendNeutral
	}

	totalReports := len(history)
	totalConcerns := 0
	for _, r := range history {
		totalConcerns += len(r.Concerns)
	}

	var baseScore int
	switch {
	case totalConcerns == 0:
		baseScore = 95
	case totalConcerns <= totalReports:
		baseScore = 85
	case totalConcerns <= totalReports*2:
		baseScore = 70
	default:
		baseScore = 55
	}

	trend := TrendNeutral
	if len(history) >= 2 {
		recent := history[len(history)-2:]
		older := history[:len(history)-2]

		recentConcerns := 0
		for _, r := range recent {
			recentConcerns += len(r.Concerns)
		}
		recentRate := float64(recentConcerns) / float64(len(recent))

		// A two-report history has nothing older to compare against,
		// so the trend stays neutral.
		if len(older) > 0 {
			olderConcerns := 0
			for _, r := range older {
				olderConcerns += len(r.Concerns)
			}
			olderRate := float64(olderConcerns) / float64(len(older))

			switch {
			case recentRate < olderRate:
				trend = TrendUp
				baseScore += 5
			case recentRate > olderRate:
				trend = TrendDown
				baseScore -= 5
			}
		}
	}

	return clampScore(baseScore), trend
}

// ScorePoint is one point on the health score timeline
type ScorePoint struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

// HealthScoreTimeline recomputes the health score for every prefix of
// the history, producing the points of the dashboard trend line. The
// date of each point is the report's timestamp when present, otherwise
// the day portion of its stored date string.
func HealthScoreTimeline(history []model.ReportRecord) []ScorePoint {
	points := make([]ScorePoint, 0, len(history))
	for i := range history {
		score, _ := ComputeHealthScore(history[:i+1])
		points = append(points, ScorePoint{
			Date:  reportDate(history[i]),
			Score: score,
		})
	}
	return points
}

// reportDate resolves the chart date for a report. Legacy records may
// lack a structured timestamp and carry only a display string whose
// first ten characters are the YYYY-MM-DD day.
func reportDate(r model.ReportRecord) string {
	if !r.ReportedAt.IsZero() {
		return r.ReportedAt.Format("2006-01-02")
	}
	if len(r.DateDisplay) >= 10 {
		return r.DateDisplay[:10]
	}
	return r.DateDisplay
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
