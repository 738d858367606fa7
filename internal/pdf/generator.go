package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/healthfolio/backend/pkg/model"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

// PDFGenerator renders report summaries for download
type PDFGenerator struct {
	logger *zap.Logger
}

// NewPDFGenerator creates a new PDFGenerator
func NewPDFGenerator(logger *zap.Logger) *PDFGenerator {
	return &PDFGenerator{
		logger: logger,
	}
}

// GenerateReportSummary creates a PDF summary of an analyzed report
func (g *PDFGenerator) GenerateReportSummary(report *model.ReportRecord) ([]byte, error) {
	g.logger.Info("generating report summary PDF",
		zap.String("report_id", report.ID),
		zap.String("filename", report.Filename),
	)

	// Create new PDF
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	// Add page
	pdf.AddPage()

	// Add title
	g.addTitle(pdf, "Health Report Summary", report)

	// Add all sections
	g.addSummary(pdf, report.Summary)
	g.addMetricsTable(pdf, report.Metrics)
	g.addConcerns(pdf, report.Concerns)
	g.addRecommendations(pdf, report.Recommendations)

	// Generate PDF bytes
	var buf bytes.Buffer
	err := pdf.Output(&buf)
	if err != nil {
		g.logger.Error("failed to generate PDF", zap.Error(err))
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	g.logger.Info("report summary PDF generated successfully",
		zap.Int("size_bytes", buf.Len()),
	)

	return buf.Bytes(), nil
}

// addTitle adds the report title and header information
func (g *PDFGenerator) addTitle(pdf *gofpdf.Fpdf, title string, report *model.ReportRecord) {
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(5)

	reportDate := report.DateDisplay
	if !report.ReportedAt.IsZero() {
		reportDate = report.ReportedAt.Format("2006-01-02")
	}

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Document: %s", report.Filename), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Report Date: %s", reportDate), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(10)
}

// addSectionHeader adds a section header
func (g *PDFGenerator) addSectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(0, 10, title, "", 1, "L", true, 0, "")
	pdf.Ln(3)
	pdf.SetFont("Arial", "", 10)
}

// addSummary adds the analysis summary section
func (g *PDFGenerator) addSummary(pdf *gofpdf.Fpdf, summary string) {
	g.addSectionHeader(pdf, "Summary")

	if summary == "" {
		pdf.CellFormat(0, 8, "No summary available.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	pdf.MultiCell(0, 5, summary, "", "L", false)
	pdf.Ln(5)
}

// addMetricsTable adds the extracted metrics section
func (g *PDFGenerator) addMetricsTable(pdf *gofpdf.Fpdf, metrics []model.Metric) {
	g.addSectionHeader(pdf, "Health Metrics")

	if len(metrics) == 0 {
		pdf.CellFormat(0, 8, "No metrics extracted from this report.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	// Table header
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(55, 7, "Metric", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Value", "1", 0, "L", false, 0, "")
	pdf.CellFormat(45, 7, "Normal Range", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Status", "1", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)

	for _, metric := range metrics {
		status := string(metric.Status)
		if status == "" {
			status = "-"
		}
		normalRange := metric.NormalRange
		if normalRange == "" {
			normalRange = "-"
		}

		pdf.CellFormat(55, 6, metric.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, metric.Value, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, normalRange, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, status, "1", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

// addConcerns adds the areas-of-concern section
func (g *PDFGenerator) addConcerns(pdf *gofpdf.Fpdf, concerns []string) {
	g.addSectionHeader(pdf, "Areas of Concern")

	if len(concerns) == 0 {
		pdf.CellFormat(0, 8, "No concerns identified.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, concern := range concerns {
		pdf.MultiCell(0, 5, fmt.Sprintf("- %s", concern), "", "L", false)
	}
	pdf.Ln(5)
}

// addRecommendations adds the recommendations section
func (g *PDFGenerator) addRecommendations(pdf *gofpdf.Fpdf, recommendations []string) {
	g.addSectionHeader(pdf, "Recommendations")

	if len(recommendations) == 0 {
		pdf.CellFormat(0, 8, "No recommendations provided.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, recommendation := range recommendations {
		pdf.MultiCell(0, 5, fmt.Sprintf("- %s", recommendation), "", "L", false)
	}
	pdf.Ln(5)
}
