package processors

import (
	"github.com/shopspring/decimal"

	"github.com/username/fincast/backend/src/models"
)

// LatestPeriod anchors the year-to-date window on the most recent transaction date.
// ok is false for an empty set.
func LatestPeriod(rows []models.TransactionRecord) (Period, bool) {
	if len(rows) == 0 {
		return Period{}, false
	}
	latest := rows[0].Date
	for _, r := range rows[1:] {
		if r.Date.After(latest.Time) {
			latest = r.Date
		}
	}
	return Period{Year: latest.Year(), Month: latest.Month()}, true
}

// Contains reports whether d falls in the window for the given year,
// i.e. January through p.Month of that year.
func (p Period) Contains(d models.CalendarDate, year int) bool {
	return d.Year() == year && d.Month() <= p.Month
}

// Previous is the matching window one year earlier.
func (p Period) Previous() Period {
	return Period{Year: p.Year - 1, Month: p.Month}
}

func sumAmounts(rows []models.TransactionRecord, keep func(models.TransactionRecord) bool) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		if keep == nil || keep(r) {
			total = total.Add(decimal.NewFromFloat(r.Amount))
		}
	}
	return total
}

// percentChange is (curr-prev)/prev*100, or 0 unless prev is positive.
func percentChange(curr, prev decimal.Decimal) float64 {
	if !prev.IsPositive() {
		return 0
	}
	return curr.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)).InexactFloat64()
}
