package processors

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/username/fincast/backend/src/models"
)

// MonthLabelLayout renders peak and trough dates, e.g. "Mar 2024".
const MonthLabelLayout = "Jan 2006"

const (
	riskMinFuturePoints = 3
	riskLowCV           = 0.10
	riskHighCV          = 0.35
	trendThreshold      = 0.05
)

type forecastMetricsProcessorImpl struct{}

// NewForecastMetricsProcessor creates a new instance of ForecastMetricsProcessor.
func NewForecastMetricsProcessor() ForecastMetricsProcessor {
	return &forecastMetricsProcessorImpl{}
}

// SortByDate returns a chronologically ordered copy. Points on the same date keep their relative order.
func SortByDate(points []models.ForecastPoint) []models.ForecastPoint {
	sorted := make([]models.ForecastPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date.Time)
	})
	return sorted
}

func splitHistory(points []models.ForecastPoint) (historical, future []models.ForecastPoint) {
	for _, p := range points {
		if p.IsHistorical() {
			historical = append(historical, p)
		} else {
			future = append(future, p)
		}
	}
	return historical, future
}

// Stats averages the observed values and the predictions. With no observed
// values the historical average falls back to the mean prediction.
func (f *forecastMetricsProcessorImpl) Stats(points []models.ForecastPoint) models.ForecastStats {
	if len(points) == 0 {
		return models.ForecastStats{}
	}

	var actualSum, predictedSum float64
	var actualCount int
	for _, p := range points {
		predictedSum += p.Predicted
		if p.Actual != nil {
			actualSum += *p.Actual
			actualCount++
		}
	}

	forecastAvg := predictedSum / float64(len(points))
	actualAvg := forecastAvg
	if actualCount > 0 {
		actualAvg = actualSum / float64(actualCount)
	}

	var trendPct float64
	if actualAvg > 0 {
		trendPct = (forecastAvg - actualAvg) / actualAvg * 100
	}

	return models.ForecastStats{
		ActualAvg:   finiteOrZero(actualAvg),
		ForecastAvg: finiteOrZero(forecastAvg),
		TrendPct:    finiteOrZero(trendPct),
	}
}

// PeaksAndTroughs finds the highest and lowest value in date order; the first one wins a tie.
func (f *forecastMetricsProcessorImpl) PeaksAndTroughs(points []models.ForecastPoint) models.PeaksAndTroughs {
	if len(points) == 0 {
		return models.PeaksAndTroughs{PeakMonth: models.NoDataLabel, TroughMonth: models.NoDataLabel}
	}

	sorted := SortByDate(points)
	peak, trough := sorted[0], sorted[0]
	for _, p := range sorted[1:] {
		if p.Value() > peak.Value() {
			peak = p
		}
		if p.Value() < trough.Value() {
			trough = p
		}
	}

	return models.PeaksAndTroughs{
		PeakMonth:   peak.Date.Format(MonthLabelLayout),
		PeakValue:   peak.Value(),
		TroughMonth: trough.Date.Format(MonthLabelLayout),
		TroughValue: trough.Value(),
	}
}

// Accuracy is 100 minus the mean absolute percentage error over points with a
// non-zero actual, clamped to [0, 100]. It is 0 when no point qualifies.
func (f *forecastMetricsProcessorImpl) Accuracy(points []models.ForecastPoint) float64 {
	var errSum float64
	var count int
	for _, p := range points {
		if p.Actual == nil || *p.Actual == 0 {
			continue
		}
		relErr := math.Abs((*p.Actual - p.Predicted) / *p.Actual)
		if math.IsNaN(relErr) || math.IsInf(relErr, 0) {
			continue
		}
		errSum += relErr
		count++
	}
	if count == 0 {
		return 0
	}

	accuracy := 100 - errSum/float64(count)*100
	return math.Max(0, math.Min(100, accuracy))
}

// RiskLevel buckets the coefficient of variation of future predictions.
func (f *forecastMetricsProcessorImpl) RiskLevel(points []models.ForecastPoint) models.RiskLevel {
	_, future := splitHistory(points)
	if len(future) < riskMinFuturePoints {
		return models.RiskModerate
	}

	var sum float64
	for _, p := range future {
		sum += p.Predicted
	}
	mean := sum / float64(len(future))

	var sqDiff float64
	for _, p := range future {
		sqDiff += (p.Predicted - mean) * (p.Predicted - mean)
	}
	sd := math.Sqrt(sqDiff / float64(len(future)))

	var cv float64
	switch {
	case sd == 0:
		cv = 0
	case mean == 0:
		return models.RiskHigh
	default:
		cv = sd / math.Abs(mean)
	}

	switch {
	case cv < riskLowCV:
		return models.RiskLow
	case cv > riskHighCV:
		return models.RiskHigh
	default:
		return models.RiskModerate
	}
}

// MarketTrend compares the last observed value with the last prediction.
func (f *forecastMetricsProcessorImpl) MarketTrend(points []models.ForecastPoint) models.MarketTrend {
	if len(points) < 2 {
		return models.TrendNeutral
	}

	historical, future := splitHistory(SortByDate(points))
	if len(historical) == 0 || len(future) == 0 {
		return models.TrendNeutral
	}

	lastActual := *historical[len(historical)-1].Actual
	lastForecast := future[len(future)-1].Predicted
	if lastActual == 0 {
		return models.TrendNeutral
	}

	change := (lastForecast - lastActual) / math.Abs(lastActual)
	switch {
	case change > trendThreshold:
		return models.TrendBullish
	case change < -trendThreshold:
		return models.TrendBearish
	default:
		return models.TrendNeutral
	}
}

// KeyMetrics gathers the forecast quality panel.
func (f *forecastMetricsProcessorImpl) KeyMetrics(points []models.ForecastPoint, confidenceLevel float64) models.KeyMetrics {
	return models.KeyMetrics{
		ForecastAccuracy: f.Accuracy(points),
		ConfidenceLevel:  confidenceLevel,
		ConfidenceLabel:  ConfidenceLabel(confidenceLevel),
		RiskLevel:        f.RiskLevel(points),
		MarketTrend:      f.MarketTrend(points),
	}
}

func (f *forecastMetricsProcessorImpl) Summary(points []models.ForecastPoint) models.ForecastSummary {
	return models.ForecastSummary{
		Stats:    f.Stats(points),
		Extremes: f.PeaksAndTroughs(points),
	}
}

// ConfidenceLabel maps a confidence percentage to "High (92%)", "Moderate (75%)" or "Low (50%)".
func ConfidenceLabel(level float64) string {
	tier := "Low"
	switch {
	case level >= 90:
		tier = "High"
	case level >= 70:
		tier = "Moderate"
	}
	return fmt.Sprintf("%s (%s%%)", tier, strconv.FormatFloat(level, 'f', -1, 64))
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
