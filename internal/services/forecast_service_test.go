// internal/services/forecast_service_test.go
package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/12pranavr/kirana911-backend/internal/config"
	"github.com/12pranavr/kirana911-backend/internal/forecast"
)

type fakeForecastSource struct {
	sales       []forecast.SaleEvent
	products    []forecast.CatalogProduct
	salesErr    error
	productsErr error
	waitForCtx  bool

	gotStoreID *uuid.UUID
}

func (f *fakeForecastSource) SaleEvents(ctx context.Context, storeID *uuid.UUID) ([]forecast.SaleEvent, error) {
	f.gotStoreID = storeID
	if f.waitForCtx {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.salesErr != nil {
		return nil, f.salesErr
	}
	return f.sales, nil
}

func (f *fakeForecastSource) Products(ctx context.Context, storeID *uuid.UUID) ([]forecast.CatalogProduct, error) {
	if f.productsErr != nil {
		return nil, f.productsErr
	}
	return f.products, nil
}

func forecastTestConfig(timeoutSeconds int) *config.Config {
	return &config.Config{
		Forecast: config.ForecastConfig{FetchTimeout: timeoutSeconds},
	}
}

func TestGenerateReportBuildsFromSource(t *testing.T) {
	day := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	source := &fakeForecastSource{
		sales: []forecast.SaleEvent{
			{Date: day, ProductID: "p1", QtySold: 4},
			{Date: day.AddDate(0, 0, 1), ProductID: "p1", QtySold: 6},
		},
		products: []forecast.CatalogProduct{
			{ID: "p1", Name: "Toor Dal", Active: true},
			{ID: "p2", Name: "Jaggery", Active: true, CurrentStock: 12},
		},
	}

	svc := NewForecastService(source, forecastTestConfig(5))
	report, err := svc.GenerateReport(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, report.ProductAnalysis, 1)
	assert.Equal(t, "Toor Dal", report.ProductAnalysis[0].ProductName)
	assert.Equal(t, 10, report.ProductAnalysis[0].TotalSales)

	require.Len(t, report.ProductsNeverSold, 1)
	assert.Equal(t, "Jaggery", report.ProductsNeverSold[0].ProductName)

	assert.Len(t, report.Predictions, 7)
	assert.Nil(t, source.gotStoreID)
}

func TestGenerateReportPassesStoreScope(t *testing.T) {
	source := &fakeForecastSource{}
	svc := NewForecastService(source, forecastTestConfig(5))

	storeID := uuid.New()
	_, err := svc.GenerateReport(context.Background(), &storeID)
	require.NoError(t, err)

	require.NotNil(t, source.gotStoreID)
	assert.Equal(t, storeID, *source.gotStoreID)
}

func TestGenerateReportWrapsSourceErrors(t *testing.T) {
	source := &fakeForecastSource{salesErr: errors.New("connection refused")}
	svc := NewForecastService(source, forecastTestConfig(5))

	_, err := svc.GenerateReport(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch sales")

	source = &fakeForecastSource{productsErr: errors.New("connection refused")}
	svc = NewForecastService(source, forecastTestConfig(5))

	_, err = svc.GenerateReport(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch products")
}

func TestGenerateReportHonorsFetchTimeout(t *testing.T) {
	source := &fakeForecastSource{waitForCtx: true}
	svc := NewForecastService(source, forecastTestConfig(1))

	start := time.Now()
	_, err := svc.GenerateReport(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}
