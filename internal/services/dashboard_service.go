// internal/services/dashboard_service.go
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/12pranavr/kirana911-backend/internal/models"
)

type DashboardService struct {
	db *gorm.DB
}

type TopSeller struct {
	ProductID   *uuid.UUID      `json:"product_id"`
	ProductName string          `json:"product_name"`
	QtySold     int             `json:"qty_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

type DashboardStats struct {
	TodayRevenue      decimal.Decimal `json:"today_revenue"`
	TodaySalesCount   int64           `json:"today_sales_count"`
	LowStockCount     int64           `json:"low_stock_count"`
	ActiveProducts    int64           `json:"active_products"`
	OutstandingCredit decimal.Decimal `json:"outstanding_credit"`
	UnreadAlerts      int64           `json:"unread_alerts"`
	TopSellers        []TopSeller     `json:"top_sellers"`
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// GetStats assembles the numbers the storefront home screen shows. "Today"
// is the server's local calendar day.
func (s *DashboardService) GetStats(storeID uuid.UUID) (*DashboardStats, error) {
	stats := &DashboardStats{
		TopSellers: []TopSeller{},
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if err := s.db.Model(&models.Sale{}).
		Where("store_id = ? AND sold_at >= ?", storeID, startOfDay).
		Count(&stats.TodaySalesCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count today's sales: %w", err)
	}

	var revenue decimal.NullDecimal
	if err := s.db.Model(&models.Sale{}).
		Where("store_id = ? AND sold_at >= ?", storeID, startOfDay).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&revenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum today's revenue: %w", err)
	}
	if revenue.Valid {
		stats.TodayRevenue = revenue.Decimal
	}

	if err := s.db.Model(&models.Product{}).
		Where("store_id = ? AND active = ? AND current_stock <= reorder_level", storeID, true).
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count low stock products: %w", err)
	}

	if err := s.db.Model(&models.Product{}).
		Where("store_id = ? AND active = ?", storeID, true).
		Count(&stats.ActiveProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count active products: %w", err)
	}

	var outstanding decimal.NullDecimal
	if err := s.db.Model(&models.Customer{}).
		Where("store_id = ?", storeID).
		Select("COALESCE(SUM(credit_balance), 0)").Scan(&outstanding).Error; err != nil {
		return nil, fmt.Errorf("failed to sum outstanding credit: %w", err)
	}
	if outstanding.Valid {
		stats.OutstandingCredit = outstanding.Decimal
	}

	if err := s.db.Model(&models.Notification{}).
		Where("store_id = ? AND read_at IS NULL", storeID).
		Count(&stats.UnreadAlerts).Error; err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	topSellers, err := s.topSellers(storeID, 5, 7)
	if err != nil {
		return nil, err
	}
	stats.TopSellers = topSellers

	return stats, nil
}

func (s *DashboardService) topSellers(storeID uuid.UUID, limit, days int) ([]TopSeller, error) {
	since := time.Now().AddDate(0, 0, -days)

	var rows []TopSeller
	if err := s.db.Model(&models.Sale{}).
		Select("product_id, MAX(product_name) AS product_name, SUM(qty_sold) AS qty_sold, SUM(total_amount) AS revenue").
		Where("store_id = ? AND sold_at >= ? AND product_id IS NOT NULL", storeID, since).
		Group("product_id").
		Order("qty_sold DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch top sellers: %w", err)
	}

	if rows == nil {
		rows = []TopSeller{}
	}

	return rows, nil
}
