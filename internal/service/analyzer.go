package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/healthfolio/backend/internal/ai"
	"github.com/healthfolio/backend/pkg/model"
	"github.com/openai/openai-go/v3"
	"go.uber.org/zap"
)

// AnalysisResult is the structured outcome of analyzing a report document
type AnalysisResult struct {
	Summary         string         `json:"summary"`
	Concerns        []string       `json:"concerns"`
	Recommendations []string       `json:"recommendations"`
	Metrics         []model.Metric `json:"metrics"`
}

// metricPattern describes one regex-extractable health metric
type metricPattern struct {
	key         string
	pattern     *regexp.Regexp
	unit        string
	normalRange string
}

// Ordered so extraction output is deterministic for a given document
var metricPatterns = []metricPattern{
	{"blood_pressure", regexp.MustCompile(`(?i)(?:blood pressure|BP)[\s:]*(\d{2,3})/(\d{2,3})`), "mmHg", "90-120/60-80 mmHg"},
	{"cholesterol", regexp.MustCompile(`(?i)(?:cholesterol|chol)[\s:]*(\d{1,3}(?:\.\d)?)`), "mg/dL", "<200 mg/dL"},
	{"glucose", regexp.MustCompile(`(?i)(?:glucose|blood sugar|BS)[\s:]*(\d{1,3}(?:\.\d)?)`), "mg/dL", "70-100 mg/dL (fasting)"},
	{"hemoglobin", regexp.MustCompile(`(?i)(?:hemoglobin|hgb|hb)[\s:]*(\d{1,2}(?:\.\d)?)`), "g/dL", "12.0-15.5 g/dL (women), 13.5-17.5 g/dL (men)"},
	{"heart_rate", regexp.MustCompile(`(?i)(?:heart rate|HR|pulse)[\s:]*(\d{2,3})`), "bpm", "60-100 bpm"},
	{"temperature", regexp.MustCompile(`(?i)(?:temperature|temp)[\s:]*(\d{2,3}(?:\.\d)?)`), "°F", "97-99°F"},
	{"weight", regexp.MustCompile(`(?i)(?:weight|wt)[\s:]*(\d{2,3}(?:\.\d)?)`), "lbs", "varies by individual"},
	{"height", regexp.MustCompile(`(?i)(?:height|ht)[\s:]*(\d{1,3}(?:\.\d)?)`), "ft", "varies by individual"},
}

// ReportAnalyzer analyzes medical report text: regex extraction of
// common metrics combined with an AI analysis pass.
type ReportAnalyzer struct {
	aiClient ai.ChatCompleter
	logger   *zap.Logger
}

// NewReportAnalyzer creates a new ReportAnalyzer
func NewReportAnalyzer(aiClient ai.ChatCompleter, logger *zap.Logger) *ReportAnalyzer {
	return &ReportAnalyzer{
		aiClient: aiClient,
		logger:   logger,
	}
}

// Analyze produces an AnalysisResult for the given report text.
// A failed AI call degrades to an error-describing summary rather than
// propagating an error, so an upload always yields a stored record.
func (a *ReportAnalyzer) Analyze(ctx context.Context, text string) *AnalysisResult {
	a.logger.Info("analyzing report text",
		zap.Int("text_length", len(text)),
	)

	regexMetrics := a.extractBasicMetrics(text)

	aiResult, err := a.aiAnalysis(ctx, text)
	if err != nil {
		a.logger.Warn("AI analysis unavailable, returning degraded result",
			zap.Error(err),
		)
		return &AnalysisResult{
			Summary:         fmt.Sprintf("AI analysis unavailable: %v. Please check your OpenAI API key.", err),
			Concerns:        []string{},
			Recommendations: []string{"Consult with a healthcare professional for proper medical advice."},
			Metrics:         regexMetrics,
		}
	}

	result := &AnalysisResult{
		Summary:         aiResult.Summary,
		Concerns:        aiResult.Concerns,
		Recommendations: aiResult.Recommendations,
		Metrics:         mergeMetrics(regexMetrics, aiResult.Metrics),
	}

	a.logger.Info("report analysis completed",
		zap.Int("concerns", len(result.Concerns)),
		zap.Int("recommendations", len(result.Recommendations)),
		zap.Int("metrics", len(result.Metrics)),
	)

	return result
}

// extractBasicMetrics extracts common health metrics using regex patterns
func (a *ReportAnalyzer) extractBasicMetrics(text string) []model.Metric {
	var metrics []model.Metric

	for _, mp := range metricPatterns {
		matches := mp.pattern.FindAllStringSubmatch(text, -1)
		for _, match := range matches {
			if mp.key == "blood_pressure" {
				metrics = append(metrics, model.Metric{
					Name:        "Blood Pressure",
					Value:       fmt.Sprintf("%s/%s mmHg", match[1], match[2]),
					NormalRange: mp.normalRange,
				})
				continue
			}

			metrics = append(metrics, model.Metric{
				Name:        titleFromKey(mp.key),
				Value:       fmt.Sprintf("%s %s", match[1], mp.unit),
				NormalRange: mp.normalRange,
			})
		}
	}

	return metrics
}

// aiAnalysis requests a structured JSON analysis from the AI client
func (a *ReportAnalyzer) aiAnalysis(ctx context.Context, text string) (*AnalysisResult, error) {
	systemPrompt := `You are a medical AI assistant that analyzes health reports.
Provide a comprehensive analysis in JSON format with the following structure:
{
    "summary": "A clear, easy-to-understand summary of the health report",
    "concerns": ["List of any concerning findings or values"],
    "recommendations": ["List of general health recommendations"],
    "metrics": [
        {
            "name": "Metric name",
            "value": "Value with units",
            "status": "normal/high/low/concerning",
            "notes": "Additional context or explanation"
        }
    ]
}

Focus on:
- Key health indicators
- Values outside normal ranges
- Overall health trends
- General wellness recommendations

Always include disclaimers about consulting healthcare professionals.
Use simple, non-medical language when possible.
Return ONLY valid JSON, no additional text.`

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
		openai.UserMessage(fmt.Sprintf("Please analyze this health report and provide insights:\n\n%s", text)),
	}

	response, err := a.aiClient.Complete(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("AI analysis failed: %w", err)
	}

	result, err := a.parseAnalysisResponse(response)
	if err != nil {
		a.logger.Error("failed to parse analysis response",
			zap.Error(err),
			zap.String("response", response),
		)
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}

	return result, nil
}

// parseAnalysisResponse parses the AI response into an AnalysisResult
func (a *ReportAnalyzer) parseAnalysisResponse(response string) (*AnalysisResult, error) {
	// Clean up response - sometimes AI adds markdown code blocks
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	var result AnalysisResult
	if err := json.Unmarshal([]byte(response), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	result = a.normalizeResult(result)

	return &result, nil
}

// normalizeResult validates and normalizes the parsed analysis
func (a *ReportAnalyzer) normalizeResult(result AnalysisResult) AnalysisResult {
	if result.Concerns == nil {
		result.Concerns = []string{}
	}
	if result.Recommendations == nil {
		result.Recommendations = []string{}
	}
	if result.Metrics == nil {
		result.Metrics = []model.Metric{}
	}

	for i, metric := range result.Metrics {
		status := model.MetricStatus(strings.ToLower(strings.TrimSpace(string(metric.Status))))
		switch status {
		case model.MetricStatusNormal, model.MetricStatusHigh, model.MetricStatusLow, model.MetricStatusConcerning, "":
			result.Metrics[i].Status = status
		default:
			a.logger.Warn("invalid metric status, clearing",
				zap.String("metric", metric.Name),
				zap.String("status", string(metric.Status)),
			)
			result.Metrics[i].Status = ""
		}
	}

	return result
}

// mergeMetrics combines regex and AI metrics; regex wins on name collision
func mergeMetrics(regexMetrics, aiMetrics []model.Metric) []model.Metric {
	merged := make([]model.Metric, len(regexMetrics))
	copy(merged, regexMetrics)

	regexNames := make(map[string]bool, len(regexMetrics))
	for _, m := range regexMetrics {
		regexNames[strings.ToLower(m.Name)] = true
	}

	for _, m := range aiMetrics {
		if !regexNames[strings.ToLower(m.Name)] {
			merged = append(merged, m)
		}
	}

	return merged
}

// titleFromKey converts a snake_case metric key to a display name
func titleFromKey(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
