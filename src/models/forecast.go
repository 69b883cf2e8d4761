package models

// ForecastPoint is one time-indexed prediction. Actual is nil for future points.
type ForecastPoint struct {
	Date       CalendarDate `json:"ds"`
	Predicted  float64      `json:"yhat"`
	Actual     *float64     `json:"actual"`
	LowerBound *float64     `json:"yhat_lower,omitempty"`
	UpperBound *float64     `json:"yhat_upper,omitempty"`
}

// IsHistorical reports whether the point carries an observed value.
func (p ForecastPoint) IsHistorical() bool {
	return p.Actual != nil
}

// Value is the observed value when present, otherwise the prediction.
func (p ForecastPoint) Value() float64 {
	if p.Actual != nil {
		return *p.Actual
	}
	return p.Predicted
}

// RiskLevel buckets the dispersion of future predictions.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

// MarketTrend labels the direction from the last observation to the last prediction.
type MarketTrend string

const (
	TrendBullish MarketTrend = "Bullish"
	TrendBearish MarketTrend = "Bearish"
	TrendNeutral MarketTrend = "Neutral"
)

// NoDataLabel is the month label used when there are no points to report.
const NoDataLabel = "No data"

// ForecastStats holds the averages and trend between observed and predicted values.
type ForecastStats struct {
	ActualAvg   float64 `json:"actualAvg"`
	ForecastAvg float64 `json:"forecastAvg"`
	TrendPct    float64 `json:"trendPct"`
}

// PeaksAndTroughs reports the extreme points of a forecast sequence.
type PeaksAndTroughs struct {
	PeakMonth   string  `json:"peakMonth"`
	PeakValue   float64 `json:"peakValue"`
	TroughMonth string  `json:"troughMonth"`
	TroughValue float64 `json:"troughValue"`
}

// KeyMetrics is the forecast quality panel.
type KeyMetrics struct {
	ForecastAccuracy float64     `json:"forecastAccuracy"`
	ConfidenceLevel  float64     `json:"confidenceLevel"`
	ConfidenceLabel  string      `json:"confidenceLabel"`
	RiskLevel        RiskLevel   `json:"riskLevel"`
	MarketTrend      MarketTrend `json:"marketTrend"`
}

// ForecastSummary bundles what the forecast chart needs besides the points.
type ForecastSummary struct {
	Stats    ForecastStats   `json:"stats"`
	Extremes PeaksAndTroughs `json:"extremes"`
}
