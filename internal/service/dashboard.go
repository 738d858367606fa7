package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// SeriesWithSummary pairs a metric series with its descriptive stats
type SeriesWithSummary struct {
	Series  MetricSeries   `json:"series"`
	Summary *SeriesSummary `json:"summary,omitempty"`
}

// DashboardSummary aggregates everything the dashboard renders
type DashboardSummary struct {
	HealthScore    int                          `json:"health_score"`
	Trend          Trend                        `json:"trend"`
	ReportCount    int                          `json:"report_count"`
	Timeline       []ScorePoint                 `json:"timeline"`
	MetricSeries   map[string]SeriesWithSummary `json:"metric_series"`
	LifestyleScore int                          `json:"lifestyle_score"`
	QuizEntries    int                          `json:"quiz_entries"`
}

// DashboardService aggregates report and lifestyle data into one view
type DashboardService struct {
	reports   ReportRepositoryInterface
	lifestyle LifestyleRepositoryInterface
	logger    *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(reports ReportRepositoryInterface, lifestyle LifestyleRepositoryInterface, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		reports:   reports,
		lifestyle: lifestyle,
		logger:    logger,
	}
}

// GetSummary computes the dashboard view for a user. Only series with
// at least two points are included, since a single point cannot show a
// trend.
func (s *DashboardService) GetSummary(ctx context.Context, userID string) (*DashboardSummary, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	s.logger.Info("getting dashboard summary",
		zap.String("user_id", userID),
	)

	history, err := s.reports.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	score, trend := ComputeHealthScore(history)

	series := make(map[string]SeriesWithSummary)
	for name, metricSeries := range TrendableSeries(ExtractMetricSeries(history)) {
		entry := SeriesWithSummary{Series: metricSeries}
		if summary, ok := SummarizeSeries(metricSeries); ok {
			entry.Summary = &summary
		}
		series[name] = entry
	}

	answers, err := s.lifestyle.GetAnswers(ctx, userID)
	if err != nil {
		return nil, err
	}

	quizHistory, err := s.lifestyle.GetHistory(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		HealthScore:    score,
		Trend:          trend,
		ReportCount:    len(history),
		Timeline:       HealthScoreTimeline(history),
		MetricSeries:   series,
		LifestyleScore: ComputeLifestyleScore(answers),
		QuizEntries:    len(quizHistory),
	}, nil
}
