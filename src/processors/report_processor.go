package processors

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/username/fincast/backend/src/models"
	"github.com/username/fincast/backend/src/security/validation"
)

// NoInsightsText is the report body before any advice has been generated.
const NoInsightsText = "No insights yet."

// ForecastCSVHeader is the column order of the forecast export.
var ForecastCSVHeader = []string{"date", "forecast", "actual", "lower", "upper"}

type reportBuilderImpl struct{}

// NewReportBuilder creates a new instance of ReportBuilder.
func NewReportBuilder() ReportBuilder {
	return &reportBuilderImpl{}
}

// AdviceText renders the advice as titled plain-text sections. Empty sections are left out.
func (r *reportBuilderImpl) AdviceText(advice *models.Advice) string {
	if advice == nil {
		return NoInsightsText
	}

	var parts []string
	section := func(title, body string) {
		parts = append(parts, title+":\n"+body)
	}

	if advice.PortfolioTip != "" {
		section("Portfolio Optimization", advice.PortfolioTip)
	}
	if advice.RiskAlert != "" {
		section("Risk Alert", advice.RiskAlert)
	}

	if advice.CategoryInsights != "" || advice.TopCategory != "" || advice.BottomCategory != "" || len(advice.TopCategoriesList) > 0 {
		var lines []string
		if advice.CategoryInsights != "" {
			lines = append(lines, advice.CategoryInsights)
		}
		if advice.TopCategory != "" || advice.BottomCategory != "" {
			lines = append(lines,
				"Top Category: "+orDash(advice.TopCategory),
				"Bottom Category: "+orDash(advice.BottomCategory))
		}
		if len(advice.TopCategoriesList) > 0 {
			lines = append(lines, "Top categories:")
			for _, c := range advice.TopCategoriesList {
				lines = append(lines, fmt.Sprintf("- %s (%s%%)", c.Name, signedPercent(c.PercentChange)))
			}
		}
		section("Category Insights", strings.Join(lines, "\n"))
	}

	if advice.Seasonality != "" {
		section("Seasonality Insight", advice.Seasonality)
	}
	if advice.Anomalies != "" {
		section("Anomaly Detection", advice.Anomalies)
	}

	if s := advice.Scenarios; s != nil && (s.Best != "" || s.Base != "" || s.Worst != "") {
		var lines []string
		for _, sc := range []struct{ label, text string }{{"Best", s.Best}, {"Base", s.Base}, {"Worst", s.Worst}} {
			if sc.text != "" {
				lines = append(lines, fmt.Sprintf("- %s: %s", sc.label, sc.text))
			}
		}
		section("Scenario Planning", strings.Join(lines, "\n"))
	}

	if len(advice.Actions) > 0 {
		lines := make([]string, 0, len(advice.Actions))
		for i, a := range advice.Actions {
			horizon := a.Horizon
			if horizon == "" {
				horizon = "Action"
			}
			lines = append(lines, fmt.Sprintf("%d. %s: %s", i+1, horizon, orDash(a.Action)))
		}
		section("Recommended Actions", strings.Join(lines, "\n"))
	}

	if len(parts) == 0 {
		return NoInsightsText
	}
	return strings.Join(parts, "\n\n")
}

// ForecastCSV exports the points in date order. Missing values are empty cells.
func (r *reportBuilderImpl) ForecastCSV(points []models.ForecastPoint) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(ForecastCSVHeader); err != nil {
		return nil, fmt.Errorf("failed to write forecast csv header: %w", err)
	}
	for _, p := range SortByDate(points) {
		record := []string{
			p.Date.String(),
			formatNumber(p.Predicted),
			formatOptional(p.Actual),
			formatOptional(p.LowerBound),
			formatOptional(p.UpperBound),
		}
		for i := range record {
			record[i] = validation.SanitizeForFormulaInjection(record[i])
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write forecast csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush forecast csv: %w", err)
	}
	return buf.Bytes(), nil
}

func signedPercent(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	if v >= 0 {
		return "+" + s
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatNumber(*v)
}
