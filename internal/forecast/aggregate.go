// internal/forecast/aggregate.go
package forecast

import (
	"sort"
	"time"
)

const (
	dayLayout  = "2006-01-02"
	hourLayout = "2006-01-02T15"
)

// seriesPoint is one entry of a product's chronological sales series.
type seriesPoint struct {
	date        time.Time
	qtySold     int
	productName string
}

// buildNameMap resolves product id -> display name.
func buildNameMap(products []CatalogProduct) map[string]string {
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	return names
}

// aggregateDaily sums sale quantities per calendar day. Every event counts,
// including lines with no product assigned. The result is sorted ascending
// by date so downstream projection sees a deterministic series.
func aggregateDaily(sales []SaleEvent) []DailyTotal {
	byDay := make(map[string]int)
	for _, s := range sales {
		byDay[s.Date.Format(dayLayout)] += s.QtySold
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	totals := make([]DailyTotal, 0, len(days))
	for _, day := range days {
		totals = append(totals, DailyTotal{Date: day, TotalQty: byDay[day]})
	}
	return totals
}

// buildProductSeries groups sale events per product, resolving names from
// the catalog. Lines without a product id are excluded here; they still
// contribute to the daily totals.
func buildProductSeries(sales []SaleEvent, names map[string]string) map[string][]seriesPoint {
	series := make(map[string][]seriesPoint)
	for _, s := range sales {
		if s.ProductID == "" {
			continue
		}
		name, ok := names[s.ProductID]
		if !ok {
			name = "Unknown Product"
		}
		series[s.ProductID] = append(series[s.ProductID], seriesPoint{
			date:        s.Date,
			qtySold:     s.QtySold,
			productName: name,
		})
	}
	return series
}
