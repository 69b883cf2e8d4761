package models

// AdvicePayload is the request body for the advice service.
// It is rebuilt from scratch on every forecast update.
type AdvicePayload struct {
	TotalValue        float64           `json:"totalValue"`
	GrowthRate        float64           `json:"growthRate"`
	HistoricalAvg     float64           `json:"historicalAvg"`
	ForecastAvg       float64           `json:"forecastAvg"`
	TrendPct          float64           `json:"trendPct"`
	PeakMonth         string            `json:"peakMonth"`
	PeakValue         float64           `json:"peakValue"`
	TroughMonth       string            `json:"troughMonth"`
	TroughValue       float64           `json:"troughValue"`
	ForecastAccuracy  float64           `json:"forecastAccuracy"`
	ConfidenceLevel   float64           `json:"confidenceLevel"`
	RiskAssessment    RiskLevel         `json:"riskAssessment"`
	MarketTrend       MarketTrend       `json:"marketTrend"`
	Categories        []CategorySummary `json:"categories"`
	TopCategory       string            `json:"topCategory"`
	BottomCategory    string            `json:"bottomCategory"`
	TopCategoriesList []CategoryRank    `json:"topCategoriesList"`
	ForecastPoints    []ForecastPoint   `json:"forecastPoints,omitempty"`
	Descriptions      []string          `json:"descriptions,omitempty"`
}

// Scenarios holds best/base/worst case narratives.
type Scenarios struct {
	Best  string `json:"best,omitempty"`
	Base  string `json:"base,omitempty"`
	Worst string `json:"worst,omitempty"`
}

// AdviceAction is one recommended action with its time horizon.
type AdviceAction struct {
	Horizon string `json:"horizon,omitempty"`
	Action  string `json:"action,omitempty"`
}

// Advice is the narrative returned by the advice service. TopCategory,
// BottomCategory and TopCategoriesList are always filled in locally.
type Advice struct {
	PortfolioTip      string         `json:"portfolioTip"`
	RiskAlert         string         `json:"riskAlert"`
	CategoryInsights  string         `json:"categoryInsights,omitempty"`
	CategoryTop       string         `json:"categoryTop,omitempty"`
	CategoryBottom    string         `json:"categoryBottom,omitempty"`
	Seasonality       string         `json:"seasonality,omitempty"`
	Anomalies         string         `json:"anomalies,omitempty"`
	Scenarios         *Scenarios     `json:"scenarios,omitempty"`
	Actions           []AdviceAction `json:"actions,omitempty"`
	NextSteps         []string       `json:"nextSteps,omitempty"`
	TopCategory       string         `json:"topCategory,omitempty"`
	BottomCategory    string         `json:"bottomCategory,omitempty"`
	TopCategoriesList []CategoryRank `json:"topCategoriesList,omitempty"`
}
