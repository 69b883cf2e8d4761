package processors

import (
	"sort"

	"github.com/username/fincast/backend/src/models"
	"github.com/username/fincast/backend/src/security/validation"
)

const (
	payloadForecastPoints = 12
	payloadDescriptions   = 10
	topCategoriesCount    = 3
)

type advicePayloadBuilderImpl struct {
	portfolio  PortfolioProcessor
	categories CategoryProcessor
	metrics    ForecastMetricsProcessor
}

// NewAdvicePayloadBuilder wires the aggregators the payload is composed from.
func NewAdvicePayloadBuilder(portfolio PortfolioProcessor, categories CategoryProcessor, metrics ForecastMetricsProcessor) AdvicePayloadBuilder {
	return &advicePayloadBuilderImpl{portfolio: portfolio, categories: categories, metrics: metrics}
}

// Build recomputes every figure from rows and points; nothing is carried over between calls.
func (b *advicePayloadBuilderImpl) Build(rows []models.TransactionRecord, points []models.ForecastPoint, confidenceLevel float64) models.AdvicePayload {
	sorted := SortByDate(points)
	overview := b.portfolio.Overview(rows)
	stats := b.metrics.Stats(sorted)
	extremes := b.metrics.PeaksAndTroughs(sorted)
	categories := b.categories.Breakdown(rows)
	top, bottom, topList := RankCategories(categories)

	return models.AdvicePayload{
		TotalValue:        overview.TotalValue,
		GrowthRate:        overview.GrowthRate,
		HistoricalAvg:     stats.ActualAvg,
		ForecastAvg:       stats.ForecastAvg,
		TrendPct:          stats.TrendPct,
		PeakMonth:         extremes.PeakMonth,
		PeakValue:         extremes.PeakValue,
		TroughMonth:       extremes.TroughMonth,
		TroughValue:       extremes.TroughValue,
		ForecastAccuracy:  b.metrics.Accuracy(sorted),
		ConfidenceLevel:   confidenceLevel,
		RiskAssessment:    b.metrics.RiskLevel(sorted),
		MarketTrend:       b.metrics.MarketTrend(sorted),
		Categories:        categories,
		TopCategory:       top,
		BottomCategory:    bottom,
		TopCategoriesList: topList,
		ForecastPoints:    lastPoints(sorted, payloadForecastPoints),
		Descriptions:      sampleDescriptions(rows, payloadDescriptions),
	}
}

// RankCategories orders categories by change, highest first, keeping input order on ties.
// It returns the first and last names and the leading entries.
func RankCategories(categories []models.CategorySummary) (top, bottom string, topList []models.CategoryRank) {
	topList = []models.CategoryRank{}
	if len(categories) == 0 {
		return "", "", topList
	}

	ranked := make([]models.CategorySummary, len(categories))
	copy(ranked, categories)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PercentChange > ranked[j].PercentChange
	})

	for i := 0; i < len(ranked) && i < topCategoriesCount; i++ {
		topList = append(topList, models.CategoryRank{Name: ranked[i].Name, PercentChange: ranked[i].PercentChange})
	}
	return ranked[0].Name, ranked[len(ranked)-1].Name, topList
}

func lastPoints(points []models.ForecastPoint, n int) []models.ForecastPoint {
	if len(points) > n {
		points = points[len(points)-n:]
	}
	out := make([]models.ForecastPoint, len(points))
	copy(out, points)
	return out
}

func sampleDescriptions(rows []models.TransactionRecord, limit int) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		if len(out) >= limit {
			break
		}
		desc := validation.SanitizeText(r.Description)
		if desc == "" || seen[desc] {
			continue
		}
		seen[desc] = true
		out = append(out, desc)
	}
	return out
}
