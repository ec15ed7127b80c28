// internal/forecast/engine_test.go
package forecast

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sale(t *testing.T, ts, productID string, qty int) SaleEvent {
	t.Helper()
	parsed, err := time.Parse("2006-01-02T15:04", ts)
	require.NoError(t, err)
	return SaleEvent{Date: parsed, ProductID: productID, QtySold: qty}
}

func activeProduct(id, name string) CatalogProduct {
	return CatalogProduct{ID: id, Name: name, Active: true}
}

func TestDailyTotalsPreserveQuantitySum(t *testing.T) {
	sales := []SaleEvent{
		sale(t, "2024-01-01T09:00", "P1", 3),
		sale(t, "2024-01-01T18:30", "P2", 2),
		sale(t, "2024-01-02T10:00", "P1", 5),
		sale(t, "2024-01-03T11:00", "", 4), // unassigned line still counts
	}

	totals := aggregateDaily(sales)

	sum := 0
	for _, d := range totals {
		sum += d.TotalQty
	}
	assert.Equal(t, 14, sum)
	assert.Len(t, totals, 3)
	assert.Equal(t, "2024-01-01", totals[0].Date)
	assert.Equal(t, 5, totals[0].TotalQty)
}

func TestProjectionIsFlatAndSevenDaysLong(t *testing.T) {
	sales := []SaleEvent{
		sale(t, "2024-01-01T09:00", "P1", 3),
		sale(t, "2024-01-02T09:00", "P1", 5),
	}
	report := BuildReport(sales, []CatalogProduct{activeProduct("P1", "Rice")})

	require.Len(t, report.Predictions, 7)
	for i, p := range report.Predictions {
		assert.Equal(t, 4, p.PredictedQty, "projection must repeat the rounded average")
		wantDate := time.Date(2024, 1, 2+i+1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		assert.Equal(t, wantDate, p.Date)
	}
}

func TestScenarioSingleProductTwoDays(t *testing.T) {
	sales := []SaleEvent{
		sale(t, "2024-01-01T10:00", "P1", 3),
		sale(t, "2024-01-02T10:00", "P1", 5),
	}
	report := BuildReport(sales, []CatalogProduct{activeProduct("P1", "Rice")})

	require.Len(t, report.ProductAnalysis, 1)
	a := report.ProductAnalysis[0]
	assert.Equal(t, "P1", a.ProductID)
	assert.Equal(t, "Rice", a.ProductName)
	assert.Equal(t, 8, a.TotalSales)
	assert.Equal(t, 4.0, a.AvgDailySales)
	assert.Equal(t, 28, a.Predicted7Days)
	assert.Equal(t, DemandMedium, a.DemandLevel)
	assert.Equal(t, TrendStable, a.Trend)
	assert.Equal(t, 0.0, a.TrendPercent)
	assert.Equal(t, RecommendMaintain, a.Recommendation)
}

func TestDemandTierBoundaries(t *testing.T) {
	cases := []struct {
		name string
		qty  int
		want DemandLevel
	}{
		{"exactly five is high", 5, DemandHigh},
		{"exactly two is medium", 2, DemandMedium},
		{"below two is low", 1, DemandLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sales := []SaleEvent{sale(t, "2024-03-01T12:00", "P1", tc.qty)}
			report := BuildReport(sales, []CatalogProduct{activeProduct("P1", "Atta")})
			require.Len(t, report.ProductAnalysis, 1)
			assert.Equal(t, tc.want, report.ProductAnalysis[0].DemandLevel)
		})
	}
}

// dailySeries emits one sale per day ending at the given date, oldest first.
func dailySeries(t *testing.T, productID string, quantities []int) []SaleEvent {
	t.Helper()
	var sales []SaleEvent
	start := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	for i, qty := range quantities {
		sales = append(sales, SaleEvent{
			Date:      start.AddDate(0, 0, i),
			ProductID: productID,
			QtySold:   qty,
		})
	}
	return sales
}

func TestTrendAndRecommendationOverrides(t *testing.T) {
	cases := []struct {
		name       string
		quantities []int // oldest first, one per day
		wantTrend  Trend
		wantLevel  DemandLevel
		wantRec    Recommendation
	}{
		{
			name:       "rising medium buys more",
			quantities: []int{2, 2, 2, 2, 2, 2, 2, 4, 4, 4, 4, 4, 4, 4},
			wantTrend:  TrendRising,
			wantLevel:  DemandMedium,
			wantRec:    RecommendBuyMore,
		},
		{
			name:       "falling low is ignored",
			quantities: []int{2, 2, 2, 2, 2, 2, 2, 0, 0, 0, 1, 0, 0, 0},
			wantTrend:  TrendFalling,
			wantLevel:  DemandLow,
			wantRec:    RecommendIgnore,
		},
		{
			name:       "falling high keeps buy more",
			quantities: []int{10, 10, 10, 10, 10, 10, 10, 5, 5, 5, 5, 5, 5, 5},
			wantTrend:  TrendFalling,
			wantLevel:  DemandHigh,
			wantRec:    RecommendBuyMore,
		},
		{
			name:       "falling medium keeps maintain",
			quantities: []int{4, 4, 4, 4, 4, 4, 4, 1, 1, 1, 1, 1, 1, 1},
			wantTrend:  TrendFalling,
			wantLevel:  DemandMedium,
			wantRec:    RecommendMaintain,
		},
		{
			name:       "within threshold stays stable",
			quantities: []int{4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4},
			wantTrend:  TrendStable,
			wantLevel:  DemandMedium,
			wantRec:    RecommendMaintain,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sales := dailySeries(t, "P1", tc.quantities)
			report := BuildReport(sales, []CatalogProduct{activeProduct("P1", "Dal")})
			require.Len(t, report.ProductAnalysis, 1)
			a := report.ProductAnalysis[0]
			assert.Equal(t, tc.wantTrend, a.Trend)
			assert.Equal(t, tc.wantLevel, a.DemandLevel)
			assert.Equal(t, tc.wantRec, a.Recommendation)
		})
	}
}

func TestShortSeriesDoesNotPanic(t *testing.T) {
	// Fewer than 7 points: the previous window is empty and the trend
	// degrades to STABLE via the length-or-one rule.
	sales := dailySeries(t, "P1", []int{3, 4, 2})
	report := BuildReport(sales, []CatalogProduct{activeProduct("P1", "Sugar")})

	require.Len(t, report.ProductAnalysis, 1)
	assert.Equal(t, TrendStable, report.ProductAnalysis[0].Trend)
	assert.Equal(t, 0.0, report.ProductAnalysis[0].TrendPercent)
}

func TestUnknownProductNameFallback(t *testing.T) {
	sales := []SaleEvent{sale(t, "2024-01-01T10:00", "GHOST", 2)}
	report := BuildReport(sales, nil)

	require.Len(t, report.ProductAnalysis, 1)
	assert.Equal(t, "Unknown Product", report.ProductAnalysis[0].ProductName)
}

func TestNeverSoldPartitionsActiveCatalog(t *testing.T) {
	sales := []SaleEvent{
		sale(t, "2024-01-01T10:00", "P1", 3),
		sale(t, "2024-01-01T10:05", "P2", 1),
	}
	products := []CatalogProduct{
		activeProduct("P1", "Rice"),
		activeProduct("P2", "Dal"),
		{ID: "P3", Name: "Ghee", SKUID: "SKU-3", Active: true, CurrentStock: 12},
		{ID: "P4", Name: "Retired", Active: false},
	}
	report := BuildReport(sales, products)

	require.Len(t, report.ProductsNeverSold, 1)
	ns := report.ProductsNeverSold[0]
	assert.Equal(t, "P3", ns.ProductID)
	assert.Equal(t, "SKU-3", ns.SKUID)
	assert.Equal(t, 12, ns.CurrentStock)

	// Analyzed ids and never-sold ids are disjoint and cover all active
	// products between them.
	analyzed := make(map[string]bool)
	for _, a := range report.ProductAnalysis {
		analyzed[a.ProductID] = true
	}
	for _, n := range report.ProductsNeverSold {
		assert.False(t, analyzed[n.ProductID])
	}
	assert.Equal(t, 3, len(report.ProductAnalysis)+len(report.ProductsNeverSold))
}

func TestPairCanonicalizationIgnoresInputOrder(t *testing.T) {
	products := []CatalogProduct{activeProduct("P1", "Rice"), activeProduct("P2", "Dal")}

	// P2 appears before P1, and P2 twice within the hour.
	sales := []SaleEvent{
		sale(t, "2024-01-01T10:05", "P2", 1),
		sale(t, "2024-01-01T10:20", "P1", 2),
		sale(t, "2024-01-01T10:45", "P2", 1),
	}
	report := BuildReport(sales, products)

	require.Len(t, report.Correlations, 1)
	pair := report.Correlations[0]
	assert.Equal(t, "P1", pair.Product1.ID)
	assert.Equal(t, "Rice", pair.Product1.Name)
	assert.Equal(t, "P2", pair.Product2.ID)
	assert.Equal(t, 1, pair.Frequency)
	assert.Equal(t, pair.Frequency, pair.Score)
}

func TestHourBoundarySplitsBucket(t *testing.T) {
	sales := []SaleEvent{
		sale(t, "2024-01-01T10:59", "P1", 1),
		sale(t, "2024-01-01T11:01", "P2", 1),
	}
	report := BuildReport(sales, nil)
	assert.Empty(t, report.Correlations)
}

func TestCorrelationsTruncateToTopFour(t *testing.T) {
	var sales []SaleEvent
	// Five hour buckets, each pairing P0 with a different product; the
	// (P0,P1) pair repeats so it must rank first.
	partners := []string{"P1", "P2", "P3", "P4", "P5"}
	for i, partner := range partners {
		hour := time.Date(2024, 1, 1, 8+i, 0, 0, 0, time.UTC)
		sales = append(sales,
			SaleEvent{Date: hour, ProductID: "P0", QtySold: 1},
			SaleEvent{Date: hour.Add(10 * time.Minute), ProductID: partner, QtySold: 1},
		)
	}
	sales = append(sales,
		SaleEvent{Date: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), ProductID: "P0", QtySold: 1},
		SaleEvent{Date: time.Date(2024, 1, 2, 9, 5, 0, 0, time.UTC), ProductID: "P1", QtySold: 1},
	)

	report := BuildReport(sales, nil)

	require.Len(t, report.Correlations, 4)
	assert.Equal(t, 2, report.Correlations[0].Frequency)
	assert.Equal(t, "P0", report.Correlations[0].Product1.ID)
	assert.Equal(t, "P1", report.Correlations[0].Product2.ID)
	assert.Equal(t, "Unknown", report.Correlations[0].Product1.Name)
}

func TestSummaryCountsMatchAnalysis(t *testing.T) {
	sales := []SaleEvent{
		sale(t, "2024-01-01T10:00", "HIGH1", 9),
		sale(t, "2024-01-01T11:00", "MED1", 3),
		sale(t, "2024-01-01T12:00", "LOW1", 1),
		sale(t, "2024-01-01T13:00", "LOW2", 1),
	}
	report := BuildReport(sales, nil)

	s := report.Summary
	assert.Equal(t, len(report.ProductAnalysis), s.TotalProductsAnalyzed)
	assert.Equal(t, s.TotalProductsAnalyzed,
		s.HighDemandProducts+s.MediumDemandProducts+s.LowDemandProducts)
	assert.Equal(t, 1, s.HighDemandProducts)
	assert.Equal(t, 1, s.MediumDemandProducts)
	assert.Equal(t, 2, s.LowDemandProducts)
}

func TestEmptyInputsYieldEmptyReport(t *testing.T) {
	report := BuildReport(nil, nil)

	assert.Empty(t, report.Predictions)
	assert.Empty(t, report.ProductAnalysis)
	assert.Empty(t, report.ProductsNeverSold)
	assert.Empty(t, report.Correlations)
	assert.Equal(t, Summary{}, report.Summary)

	// Empty sections must serialize as [], never null.
	body, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"predictions":[]`)
	assert.Contains(t, string(body), `"correlations":[]`)
	assert.NotContains(t, string(body), "null")
}

func TestAnalysisSortedByTotalSalesDescending(t *testing.T) {
	sales := []SaleEvent{
		sale(t, "2024-01-01T10:00", "SMALL", 1),
		sale(t, "2024-01-01T10:00", "BIG", 50),
		sale(t, "2024-01-02T10:00", "MID", 10),
	}
	report := BuildReport(sales, nil)

	require.Len(t, report.ProductAnalysis, 3)
	assert.Equal(t, "BIG", report.ProductAnalysis[0].ProductID)
	assert.Equal(t, "MID", report.ProductAnalysis[1].ProductID)
	assert.Equal(t, "SMALL", report.ProductAnalysis[2].ProductID)
}

func TestRoundingOfReportedNumbers(t *testing.T) {
	// Three days: 1 + 1 + 2 = 4 over 3 days -> 1.3333... -> 1.33.
	sales := dailySeries(t, "P1", []int{1, 1, 2})
	report := BuildReport(sales, []CatalogProduct{activeProduct("P1", "Tea")})

	require.Len(t, report.ProductAnalysis, 1)
	a := report.ProductAnalysis[0]
	assert.Equal(t, 1.33, a.AvgDailySales)
	assert.Equal(t, 9, a.Predicted7Days) // round(1.3333 * 7) = round(9.33)
}
