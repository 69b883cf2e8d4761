package models

// PortfolioOverview is the year-to-date headline. TotalValue is in thousands.
type PortfolioOverview struct {
	TotalValue      float64 `json:"totalValue"`
	GrowthRate      float64 `json:"growthRate"`
	ReferenceYear   int     `json:"referenceYear,omitempty"`
	ReferenceMonth  int     `json:"referenceMonth,omitempty"`
	ThisPeriodTotal float64 `json:"thisPeriodTotal"`
	LastPeriodTotal float64 `json:"lastPeriodTotal"`
}

// CategorySummary is one category's year-to-date total and change versus the prior year.
type CategorySummary struct {
	Name          string  `json:"name"`
	Amount        float64 `json:"amount"`
	PercentChange float64 `json:"pctChange"`
}

// CategoryRank is a category name with its change, used for top/bottom lists.
type CategoryRank struct {
	Name          string  `json:"name"`
	PercentChange float64 `json:"pctChange"`
}
