// internal/handlers/forecast_test.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/12pranavr/kirana911-backend/internal/config"
	"github.com/12pranavr/kirana911-backend/internal/forecast"
	"github.com/12pranavr/kirana911-backend/internal/services"
)

type stubForecastSource struct {
	sales    []forecast.SaleEvent
	products []forecast.CatalogProduct
	err      error
}

func (s *stubForecastSource) SaleEvents(ctx context.Context, storeID *uuid.UUID) ([]forecast.SaleEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sales, nil
}

func (s *stubForecastSource) Products(ctx context.Context, storeID *uuid.UUID) ([]forecast.CatalogProduct, error) {
	return s.products, nil
}

func forecastRouter(source services.ForecastDataSource) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{Forecast: config.ForecastConfig{FetchTimeout: 5}}
	handler := NewForecastHandler(services.NewForecastService(source, cfg), nil)

	r := gin.New()
	r.GET("/forecast", handler.GetForecast)
	return r
}

func TestGetForecastReturnsBareReport(t *testing.T) {
	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	source := &stubForecastSource{
		sales: []forecast.SaleEvent{
			{Date: day, ProductID: "p1", QtySold: 3},
		},
		products: []forecast.CatalogProduct{
			{ID: "p1", Name: "Atta", Active: true},
		},
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/forecast", nil)
	forecastRouter(source).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	// The report is the whole payload, not wrapped in the API envelope.
	assert.NotContains(t, body, "success")
	assert.Contains(t, body, "predictions")
	assert.Contains(t, body, "product_analysis")
	assert.Contains(t, body, "products_never_sold")
	assert.Contains(t, body, "correlations")
	assert.Contains(t, body, "summary")
}

func TestGetForecastEmptyDataYieldsEmptyArrays(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/forecast", nil)
	forecastRouter(&stubForecastSource{}).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	for _, field := range []string{"predictions", "product_analysis", "products_never_sold", "correlations"} {
		assert.JSONEq(t, "[]", string(body[field]), "field %s", field)
	}
}

func TestGetForecastFailureReturns500(t *testing.T) {
	source := &stubForecastSource{err: errors.New("connection refused")}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/forecast", nil)
	forecastRouter(source).ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Forecast failed", body["error"])
	assert.Contains(t, body["details"], "connection refused")
}

func TestGetForecastRejectsBadStoreID(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/forecast?store_id=not-a-uuid", nil)
	forecastRouter(&stubForecastSource{}).ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Forecast failed", body["error"])
}
