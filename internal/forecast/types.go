// internal/forecast/types.go
package forecast

import "time"

// SaleEvent is one line item of a completed sale, as read from the sales
// table. ProductID is empty when the line was never assigned to a product.
type SaleEvent struct {
	Date      time.Time
	ProductID string
	QtySold   int
}

// CatalogProduct is the product row subset the engine needs.
type CatalogProduct struct {
	ID           string
	Name         string
	SKUID        string
	Active       bool
	CurrentStock int
}

type DemandLevel string

const (
	DemandHigh   DemandLevel = "HIGH"
	DemandMedium DemandLevel = "MEDIUM"
	DemandLow    DemandLevel = "LOW"
)

type Trend string

const (
	TrendRising  Trend = "RISING"
	TrendFalling Trend = "FALLING"
	TrendStable  Trend = "STABLE"
)

type Recommendation string

const (
	RecommendBuyMore  Recommendation = "BUY_MORE"
	RecommendMaintain Recommendation = "MAINTAIN"
	RecommendReduce   Recommendation = "REDUCE"
	RecommendIgnore   Recommendation = "IGNORE"
)

// DailyTotal is the summed quantity for one calendar day.
type DailyTotal struct {
	Date     string `json:"date"`
	TotalQty int    `json:"total_qty"`
}

// Prediction is one entry of the 7-day projection.
type Prediction struct {
	Date         string `json:"date"`
	PredictedQty int    `json:"predicted_qty"`
}

// ProductAnalysis is the per-product classification for products with at
// least one recorded sale.
type ProductAnalysis struct {
	ProductID      string         `json:"product_id"`
	ProductName    string         `json:"product_name"`
	TotalSales     int            `json:"total_sales"`
	AvgDailySales  float64        `json:"avg_daily_sales"`
	Predicted7Days int            `json:"predicted_7days"`
	Trend          Trend          `json:"trend"`
	TrendPercent   float64        `json:"trend_percent"`
	DemandLevel    DemandLevel    `json:"demand_level"`
	Recommendation Recommendation `json:"recommendation"`
}

// NeverSoldProduct is an active product with zero sale events.
type NeverSoldProduct struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	SKUID        string `json:"sku_id"`
	CurrentStock int    `json:"current_stock"`
}

type PairProduct struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductPair is an unordered co-purchase pair; Score mirrors Frequency so
// the dashboard can re-weight pairs later without an API change.
type ProductPair struct {
	Product1  PairProduct `json:"product1"`
	Product2  PairProduct `json:"product2"`
	Frequency int         `json:"frequency"`
	Score     int         `json:"score"`
}

type Summary struct {
	HighDemandProducts     int `json:"high_demand_products"`
	MediumDemandProducts   int `json:"medium_demand_products"`
	LowDemandProducts      int `json:"low_demand_products"`
	TotalProductsAnalyzed  int `json:"total_products_analyzed"`
	ProductsNeverSoldCount int `json:"products_never_sold_count"`
}

// Report is the full forecast payload returned by GET /forecast. All slices
// are non-nil so empty sections serialize as [] rather than null.
type Report struct {
	Predictions       []Prediction       `json:"predictions"`
	ProductAnalysis   []ProductAnalysis  `json:"product_analysis"`
	ProductsNeverSold []NeverSoldProduct `json:"products_never_sold"`
	Correlations      []ProductPair      `json:"correlations"`
	Summary           Summary            `json:"summary"`
}
