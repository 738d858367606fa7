package service

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"

	"github.com/healthfolio/backend/pkg/model"
)

// numericToken matches the first integer or decimal token inside a
// metric display value, e.g. 120 in "120/80 mmHg" or 45.3 in "45.3 mg/dL".
var numericToken = regexp.MustCompile(`\d+\.?\d*`)

// MetricPoint is one observation of a metric on a given date. Value is
// the parsed numeric form; RawValue keeps the display string it came from.
type MetricPoint struct {
	Date     string  `json:"date"`
	Value    float64 `json:"value"`
	RawValue string  `json:"raw_value"`
}

// MetricSeries is the chronological series of one metric across reports
type MetricSeries struct {
	Name   string        `json:"name"`
	Points []MetricPoint `json:"points"`
}

// ExtractMetricSeries builds a per-metric time series from the report
// history. Extraction is best-effort: a metric occurrence whose display
// value contains no numeric token contributes no point and is skipped
// silently. Points within each series are sorted by date.
func ExtractMetricSeries(history []model.ReportRecord) map[string]MetricSeries {
	series := make(map[string]MetricSeries)

	for _, report := range history {
		date := reportDate(report)
		for _, metric := range report.Metrics {
			token := numericToken.FindString(metric.Value)
			if token == "" {
				continue
			}
			value, err := strconv.ParseFloat(token, 64)
			if err != nil {
				continue
			}

			s := series[metric.Name]
			s.Name = metric.Name
			s.Points = append(s.Points, MetricPoint{
				Date:     date,
				Value:    value,
				RawValue: metric.Value,
			})
			series[metric.Name] = s
		}
	}

	for name, s := range series {
		sort.SliceStable(s.Points, func(i, j int) bool {
			return s.Points[i].Date < s.Points[j].Date
		})
		series[name] = s
	}

	return series
}

// TrendableSeries filters the extracted series down to those with at
// least two data points, the minimum needed to draw a trend.
func TrendableSeries(series map[string]MetricSeries) map[string]MetricSeries {
	trendable := make(map[string]MetricSeries)
	for name, s := range series {
		if len(s.Points) >= 2 {
			trendable[name] = s
		}
	}
	return trendable
}

// SeriesSummary carries descriptive statistics for one metric series
type SeriesSummary struct {
	Latest        float64 `json:"latest"`
	LatestDisplay string  `json:"latest_display"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Mean          float64 `json:"mean"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
}

// SummarizeSeries computes latest-value, change and spread statistics
// for a series. Returns ok=false for series with fewer than two points.
func SummarizeSeries(s MetricSeries) (SeriesSummary, bool) {
	if len(s.Points) < 2 {
		return SeriesSummary{}, false
	}

	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value
	}

	latest := s.Points[len(s.Points)-1]
	previous := s.Points[len(s.Points)-2]
	change := latest.Value - previous.Value

	changePercent := 0.0
	if previous.Value != 0 {
		changePercent = change / previous.Value * 100
	}

	mean, _ := stats.Mean(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)

	return SeriesSummary{
		Latest:        latest.Value,
		LatestDisplay: latest.RawValue,
		Change:        change,
		ChangePercent: changePercent,
		Mean:          mean,
		Min:           min,
		Max:           max,
	}, true
}
