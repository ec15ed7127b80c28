// internal/services/import_service_test.go
package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapHeaderNormalisesColumnNames(t *testing.T) {
	columns, err := mapHeader([]string{" Name ", "SKU", "Price", "Reorder Level"})
	require.NoError(t, err)

	assert.Equal(t, 0, columns["name"])
	assert.Equal(t, 1, columns["sku"])
	assert.Equal(t, 2, columns["price"])
	assert.Equal(t, 3, columns["reorder_level"])
}

func TestMapHeaderRequiresNameAndPrice(t *testing.T) {
	_, err := mapHeader([]string{"sku", "price"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")

	_, err = mapHeader([]string{"name", "stock"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price")
}

func TestParseRowReadsAllColumns(t *testing.T) {
	columns, err := mapHeader([]string{"name", "sku", "category", "price", "cost_price", "stock", "reorder_level", "unit"})
	require.NoError(t, err)

	row, err := parseRow([]string{"Toor Dal 1kg", "DAL-001", "pulses", "145.50", "120", "40", "10", "pc"}, columns)
	require.NoError(t, err)

	assert.Equal(t, "Toor Dal 1kg", row.name)
	assert.Equal(t, "DAL-001", row.sku)
	assert.Equal(t, "pulses", row.category)
	assert.True(t, row.price.Equal(decimal.RequireFromString("145.50")))
	assert.True(t, row.costPrice.Equal(decimal.RequireFromString("120")))
	assert.Equal(t, 40, row.stock)
	assert.Equal(t, 10, row.reorderLevel)
	assert.Equal(t, "pc", row.unit)
}

func TestParseRowRejectsBadRows(t *testing.T) {
	columns, err := mapHeader([]string{"name", "price", "stock"})
	require.NoError(t, err)

	cases := []struct {
		name string
		row  []string
	}{
		{"empty name", []string{"", "10", "5"}},
		{"bad price", []string{"Atta", "ten", "5"}},
		{"negative price", []string{"Atta", "-10", "5"}},
		{"bad stock", []string{"Atta", "10", "lots"}},
		{"negative stock", []string{"Atta", "10", "-2"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseRow(tc.row, columns)
			assert.Error(t, err)
		})
	}
}

func TestParseRowToleratesShortRows(t *testing.T) {
	columns, err := mapHeader([]string{"name", "price", "stock", "unit"})
	require.NoError(t, err)

	// Trailing cells are often missing in hand-edited sheets.
	row, err := parseRow([]string{"Atta", "55"}, columns)
	require.NoError(t, err)
	assert.Equal(t, 0, row.stock)
	assert.Equal(t, "", row.unit)
}
