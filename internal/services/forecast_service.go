// internal/services/forecast_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/12pranavr/kirana911-backend/internal/config"
	"github.com/12pranavr/kirana911-backend/internal/forecast"
	"github.com/12pranavr/kirana911-backend/internal/models"
)

// ForecastDataSource supplies the two inputs the forecast engine needs.
// The gorm implementation backs production; tests inject fakes.
type ForecastDataSource interface {
	SaleEvents(ctx context.Context, storeID *uuid.UUID) ([]forecast.SaleEvent, error)
	Products(ctx context.Context, storeID *uuid.UUID) ([]forecast.CatalogProduct, error)
}

type ForecastService struct {
	source  ForecastDataSource
	timeout time.Duration
}

func NewForecastService(source ForecastDataSource, cfg *config.Config) *ForecastService {
	return &ForecastService{
		source:  source,
		timeout: time.Duration(cfg.Forecast.FetchTimeout) * time.Second,
	}
}

// GenerateReport fetches sales history and the product catalog, then runs the
// engine. Both reads share a single deadline so a slow database cannot hold
// the request open indefinitely.
func (s *ForecastService) GenerateReport(ctx context.Context, storeID *uuid.UUID) (*forecast.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	sales, err := s.source.SaleEvents(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sales: %w", err)
	}

	products, err := s.source.Products(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	return forecast.BuildReport(sales, products), nil
}

// GormForecastSource reads sale and product rows straight from Postgres.
type GormForecastSource struct {
	db *gorm.DB
}

func NewGormForecastSource(db *gorm.DB) *GormForecastSource {
	return &GormForecastSource{db: db}
}

func (g *GormForecastSource) SaleEvents(ctx context.Context, storeID *uuid.UUID) ([]forecast.SaleEvent, error) {
	query := g.db.WithContext(ctx).Model(&models.Sale{})
	if storeID != nil {
		query = query.Where("store_id = ?", *storeID)
	}

	var rows []models.Sale
	if err := query.Select("sold_at", "product_id", "qty_sold").Find(&rows).Error; err != nil {
		return nil, err
	}

	events := make([]forecast.SaleEvent, 0, len(rows))
	for _, row := range rows {
		event := forecast.SaleEvent{
			Date:    row.SoldAt,
			QtySold: row.QtySold,
		}
		// Unassigned lines keep an empty product id; the engine counts them
		// toward daily totals but skips per-product analysis.
		if row.ProductID != nil {
			event.ProductID = row.ProductID.String()
		}
		events = append(events, event)
	}

	return events, nil
}

func (g *GormForecastSource) Products(ctx context.Context, storeID *uuid.UUID) ([]forecast.CatalogProduct, error) {
	query := g.db.WithContext(ctx).Model(&models.Product{})
	if storeID != nil {
		query = query.Where("store_id = ?", *storeID)
	}

	var rows []models.Product
	if err := query.Select("id", "name", "sku_id", "active", "current_stock").Find(&rows).Error; err != nil {
		return nil, err
	}

	products := make([]forecast.CatalogProduct, 0, len(rows))
	for _, row := range rows {
		products = append(products, forecast.CatalogProduct{
			ID:           row.ID.String(),
			Name:         row.Name,
			SKUID:        row.SKUID,
			Active:       row.Active,
			CurrentStock: row.CurrentStock,
		})
	}

	return products, nil
}
