package processors

import (
	"github.com/shopspring/decimal"

	"github.com/username/fincast/backend/src/models"
)

// portfolioUnit scales the total into thousands for display.
var portfolioUnit = decimal.NewFromInt(1000)

type portfolioProcessorImpl struct{}

// NewPortfolioProcessor creates a new instance of PortfolioProcessor.
func NewPortfolioProcessor() PortfolioProcessor {
	return &portfolioProcessorImpl{}
}

// Overview anchors the year-to-date comparison on the latest transaction date.
func (p *portfolioProcessorImpl) Overview(rows []models.TransactionRecord) models.PortfolioOverview {
	ref, ok := LatestPeriod(rows)
	if !ok {
		return models.PortfolioOverview{}
	}
	return p.OverviewAsOf(rows, ref)
}

// OverviewAsOf computes the total value and the growth of this year's YTD sum over last year's.
func (p *portfolioProcessorImpl) OverviewAsOf(rows []models.TransactionRecord, ref Period) models.PortfolioOverview {
	if len(rows) == 0 {
		return models.PortfolioOverview{}
	}

	total := sumAmounts(rows, nil)
	thisPeriod := sumAmounts(rows, func(r models.TransactionRecord) bool { return ref.Contains(r.Date, ref.Year) })
	lastPeriod := sumAmounts(rows, func(r models.TransactionRecord) bool { return ref.Contains(r.Date, ref.Year-1) })

	return models.PortfolioOverview{
		TotalValue:      total.Div(portfolioUnit).InexactFloat64(),
		GrowthRate:      percentChange(thisPeriod, lastPeriod),
		ReferenceYear:   ref.Year,
		ReferenceMonth:  int(ref.Month),
		ThisPeriodTotal: thisPeriod.InexactFloat64(),
		LastPeriodTotal: lastPeriod.InexactFloat64(),
	}
}
