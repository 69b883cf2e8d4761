package processors

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/username/fincast/backend/src/models"
	"github.com/username/fincast/backend/src/security/validation"
)

type categoryProcessorImpl struct{}

// NewCategoryProcessor creates a new instance of CategoryProcessor.
func NewCategoryProcessor() CategoryProcessor {
	return &categoryProcessorImpl{}
}

func (p *categoryProcessorImpl) Breakdown(rows []models.TransactionRecord) []models.CategorySummary {
	ref, ok := LatestPeriod(rows)
	if !ok {
		return []models.CategorySummary{}
	}
	return p.BreakdownAsOf(rows, ref)
}

// BreakdownAsOf sums each category over the current and prior year-to-date windows.
// Categories that only appear in the prior window are not reported.
func (p *categoryProcessorImpl) BreakdownAsOf(rows []models.TransactionRecord, ref Period) []models.CategorySummary {
	var order []string
	current := make(map[string]decimal.Decimal)
	previous := make(map[string]decimal.Decimal)

	for _, r := range rows {
		name := categoryKey(r.Category)
		amount := decimal.NewFromFloat(r.Amount)
		switch {
		case ref.Contains(r.Date, ref.Year):
			if _, seen := current[name]; !seen {
				order = append(order, name)
			}
			current[name] = current[name].Add(amount)
		case ref.Contains(r.Date, ref.Year-1):
			previous[name] = previous[name].Add(amount)
		}
	}

	summaries := make([]models.CategorySummary, 0, len(order))
	for _, name := range order {
		summaries = append(summaries, models.CategorySummary{
			Name:          name,
			Amount:        current[name].InexactFloat64(),
			PercentChange: percentChange(current[name], previous[name]),
		})
	}
	return summaries
}

func categoryKey(category string) string {
	name := strings.ToLower(strings.TrimSpace(category))
	if name == "" {
		return validation.UncategorizedCategory
	}
	return name
}
