package processors

import (
	"time"

	"github.com/username/fincast/backend/src/models"
)

// PortfolioProcessor computes the portfolio headline from validated rows.
type PortfolioProcessor interface {
	Overview(rows []models.TransactionRecord) models.PortfolioOverview
	OverviewAsOf(rows []models.TransactionRecord, ref Period) models.PortfolioOverview
}

// CategoryProcessor computes the year-to-date category breakdown.
type CategoryProcessor interface {
	Breakdown(rows []models.TransactionRecord) []models.CategorySummary
	BreakdownAsOf(rows []models.TransactionRecord, ref Period) []models.CategorySummary
}

// ForecastMetricsProcessor derives statistics from a forecast sequence.
// Every method sorts its input by date before reading it.
type ForecastMetricsProcessor interface {
	Stats(points []models.ForecastPoint) models.ForecastStats
	PeaksAndTroughs(points []models.ForecastPoint) models.PeaksAndTroughs
	Accuracy(points []models.ForecastPoint) float64
	RiskLevel(points []models.ForecastPoint) models.RiskLevel
	MarketTrend(points []models.ForecastPoint) models.MarketTrend
	KeyMetrics(points []models.ForecastPoint, confidenceLevel float64) models.KeyMetrics
	Summary(points []models.ForecastPoint) models.ForecastSummary
}

// AdvicePayloadBuilder composes the request body for the advice service.
type AdvicePayloadBuilder interface {
	Build(rows []models.TransactionRecord, points []models.ForecastPoint, confidenceLevel float64) models.AdvicePayload
}

// ReportBuilder renders the downloadable reports.
type ReportBuilder interface {
	AdviceText(advice *models.Advice) string
	ForecastCSV(points []models.ForecastPoint) ([]byte, error)
}

// Period is a year-to-date window ending at Month of Year.
type Period struct {
	Year  int
	Month time.Month
}
