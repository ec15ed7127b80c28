// internal/forecast/engine.go

// Package forecast implements the demand forecast and correlation engine:
// a single-pass batch computation over an in-memory sales extract. It
// aggregates sale lines into daily and per-product series, projects a
// 7-day flat forecast, classifies each sold product into a demand tier
// with trend and restock recommendation, flags active products that never
// sold, and mines frequently co-purchased pairs.
//
// The engine is pure: it owns no persistence, takes its inputs as slices
// and recomputes everything on every call, so concurrent invocations are
// independent.
package forecast

// BuildReport runs the three engine stages over the given sales history
// and product catalog.
func BuildReport(sales []SaleEvent, products []CatalogProduct) *Report {
	names := buildNameMap(products)

	dailyTotals := aggregateDaily(sales)
	series := buildProductSeries(sales, names)

	analyses := classifyProducts(series)
	neverSold := findNeverSold(products, sales)

	summary := Summary{
		TotalProductsAnalyzed:  len(analyses),
		ProductsNeverSoldCount: len(neverSold),
	}
	for _, a := range analyses {
		switch a.DemandLevel {
		case DemandHigh:
			summary.HighDemandProducts++
		case DemandMedium:
			summary.MediumDemandProducts++
		case DemandLow:
			summary.LowDemandProducts++
		}
	}

	return &Report{
		Predictions:       projectDaily(dailyTotals),
		ProductAnalysis:   analyses,
		ProductsNeverSold: neverSold,
		Correlations:      mineCorrelations(sales, names),
		Summary:           summary,
	}
}
