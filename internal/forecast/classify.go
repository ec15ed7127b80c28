// internal/forecast/classify.go
package forecast

import (
	"math"
	"sort"
	"time"
)

const trendWindow = 7

// projectDaily produces the 7-day flat projection from the daily series:
// every predicted day carries the rounded overall daily average. Returns an
// empty slice when there is no sales history at all.
func projectDaily(totals []DailyTotal) []Prediction {
	predictions := make([]Prediction, 0, trendWindow)
	if len(totals) == 0 {
		return predictions
	}

	sum := 0
	for _, t := range totals {
		sum += t.TotalQty
	}
	avg := float64(sum) / float64(lengthOrOne(len(totals)))
	qty := int(math.Round(avg))

	last, err := time.Parse(dayLayout, totals[len(totals)-1].Date)
	if err != nil {
		return predictions
	}
	for i := 1; i <= trendWindow; i++ {
		predictions = append(predictions, Prediction{
			Date:         last.AddDate(0, 0, i).Format(dayLayout),
			PredictedQty: qty,
		})
	}
	return predictions
}

// classifyProducts derives the per-product analysis: average daily sales,
// 7-day projection, trend over the two most recent 7-entry windows, demand
// tier and restock recommendation. Sorted by total sales, highest first.
func classifyProducts(series map[string][]seriesPoint) []ProductAnalysis {
	analyses := make([]ProductAnalysis, 0, len(series))
	for productID, points := range series {
		analyses = append(analyses, analyzeProduct(productID, points))
	}
	sort.Slice(analyses, func(i, j int) bool {
		if analyses[i].TotalSales != analyses[j].TotalSales {
			return analyses[i].TotalSales > analyses[j].TotalSales
		}
		return analyses[i].ProductID < analyses[j].ProductID
	})
	return analyses
}

func analyzeProduct(productID string, points []seriesPoint) ProductAnalysis {
	total := 0
	for _, p := range points {
		total += p.qtySold
	}
	avg := float64(total) / float64(lengthOrOne(len(points)))

	// Most recent entries first; short series just yield shorter windows.
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].date.After(points[j].date)
	})
	recent := points[:min(trendWindow, len(points))]
	previous := points[min(trendWindow, len(points)):min(2*trendWindow, len(points))]

	recentAvg := windowAvg(recent)
	previousAvg := windowAvg(previous)

	trend := TrendStable
	trendPercent := 0.0
	if previousAvg != 0 {
		trendPercent = (recentAvg - previousAvg) / previousAvg * 100
		switch {
		case trendPercent > 20:
			trend = TrendRising
		case trendPercent < -20:
			trend = TrendFalling
		}
	}

	level := DemandLow
	switch {
	case avg >= 5:
		level = DemandHigh
	case avg >= 2:
		level = DemandMedium
	}

	recommendation := recommend(level, trend)

	name := ""
	if len(points) > 0 {
		name = points[0].productName
	}

	return ProductAnalysis{
		ProductID:      productID,
		ProductName:    name,
		TotalSales:     total,
		AvgDailySales:  math.Round(avg*100) / 100,
		Predicted7Days: int(math.Round(avg * trendWindow)),
		Trend:          trend,
		TrendPercent:   math.Round(trendPercent*10) / 10,
		DemandLevel:    level,
		Recommendation: recommendation,
	}
}

// recommend maps tier to a base action, then applies the trend overrides.
// A falling HIGH or MEDIUM product keeps its base recommendation.
func recommend(level DemandLevel, trend Trend) Recommendation {
	rec := RecommendReduce
	switch level {
	case DemandHigh:
		rec = RecommendBuyMore
	case DemandMedium:
		rec = RecommendMaintain
	}
	if trend == TrendRising && level != DemandHigh {
		rec = RecommendBuyMore
	}
	if trend == TrendFalling && level == DemandLow {
		rec = RecommendIgnore
	}
	return rec
}

// findNeverSold returns active products absent from the sold-id set.
func findNeverSold(products []CatalogProduct, sales []SaleEvent) []NeverSoldProduct {
	sold := make(map[string]struct{})
	for _, s := range sales {
		if s.ProductID != "" {
			sold[s.ProductID] = struct{}{}
		}
	}

	neverSold := make([]NeverSoldProduct, 0)
	for _, p := range products {
		if !p.Active {
			continue
		}
		if _, ok := sold[p.ID]; ok {
			continue
		}
		neverSold = append(neverSold, NeverSoldProduct{
			ProductID:    p.ID,
			ProductName:  p.Name,
			SKUID:        p.SKUID,
			CurrentStock: p.CurrentStock,
		})
	}
	return neverSold
}

func windowAvg(points []seriesPoint) float64 {
	sum := 0
	for _, p := range points {
		sum += p.qtySold
	}
	return float64(sum) / float64(lengthOrOne(len(points)))
}

// lengthOrOne guards the divide-by-length convention for empty slices.
func lengthOrOne(n int) int {
	if n == 0 {
		return 1
	}
	return n
}
