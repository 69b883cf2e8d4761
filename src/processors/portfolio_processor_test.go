package processors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/username/fincast/backend/src/models"
)

func TestOverview_Empty(t *testing.T) {
	got := NewPortfolioProcessor().Overview(nil)
	assert.Equal(t, models.PortfolioOverview{}, got)
	assert.Zero(t, got.TotalValue)
	assert.Zero(t, got.GrowthRate)
}

func TestOverview_YearToDateAnchoredOnLatestRow(t *testing.T) {
	rows := []models.TransactionRecord{
		tx("2024-01-10", 500, ""),
		tx("2023-02-01", 1000, ""),
		tx("2024-03-15", 1000, ""),
		tx("2023-05-01", 9999, ""), // after March, outside the window
		tx("2022-01-01", 100, ""),
	}

	got := NewPortfolioProcessor().Overview(rows)

	assert.InDelta(t, 12.599, got.TotalValue, 1e-9)
	assert.Equal(t, 2024, got.ReferenceYear)
	assert.Equal(t, int(time.March), got.ReferenceMonth)
	assert.Equal(t, 1500.0, got.ThisPeriodTotal)
	assert.Equal(t, 1000.0, got.LastPeriodTotal)
	assert.InDelta(t, 50.0, got.GrowthRate, 1e-9)
}

func TestOverview_GrowthNeedsPositivePriorTotal(t *testing.T) {
	p := NewPortfolioProcessor()

	noPrior := p.Overview([]models.TransactionRecord{tx("2024-02-01", 300, "")})
	assert.Zero(t, noPrior.GrowthRate)

	negativePrior := p.Overview([]models.TransactionRecord{
		tx("2024-02-01", 300, ""),
		tx("2023-01-01", -200, ""),
	})
	assert.Zero(t, negativePrior.GrowthRate)
	assert.Equal(t, -200.0, negativePrior.LastPeriodTotal)
}

func TestOverviewAsOf_ExplicitPeriod(t *testing.T) {
	rows := []models.TransactionRecord{
		tx("2024-06-01", 100, ""),
		tx("2024-01-01", 50, ""),
		tx("2023-01-01", 25, ""),
	}

	got := NewPortfolioProcessor().OverviewAsOf(rows, Period{Year: 2024, Month: time.January})

	assert.Equal(t, 50.0, got.ThisPeriodTotal)
	assert.Equal(t, 25.0, got.LastPeriodTotal)
	assert.InDelta(t, 100.0, got.GrowthRate, 1e-9)
	assert.InDelta(t, 0.175, got.TotalValue, 1e-12)
}

func TestOverview_SumsWithoutFloatDrift(t *testing.T) {
	rows := make([]models.TransactionRecord, 0, 10)
	for i := 0; i < 10; i++ {
		rows = append(rows, tx("2024-01-01", 0.1, ""))
	}

	got := NewPortfolioProcessor().Overview(rows)

	assert.Equal(t, 1.0, got.ThisPeriodTotal)
	assert.Equal(t, 0.001, got.TotalValue)
}
