// internal/services/sale_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/12pranavr/kirana911-backend/internal/models"
)

func TestIsValidPaymentType(t *testing.T) {
	for _, pt := range []models.PaymentType{
		models.PaymentTypeCash,
		models.PaymentTypeUPI,
		models.PaymentTypeCard,
		models.PaymentTypeCredit,
		models.PaymentTypeOnline,
	} {
		assert.True(t, isValidPaymentType(pt), "payment type %s", pt)
	}

	assert.False(t, isValidPaymentType("cheque"))
	assert.False(t, isValidPaymentType(""))
}

func TestDefaultSortFallsBackForSales(t *testing.T) {
	assert.Equal(t, "sold_at", defaultSort("", "sold_at"))
	assert.Equal(t, "sold_at", defaultSort("created_at", "sold_at"))
	assert.Equal(t, "total_amount", defaultSort("total_amount", "sold_at"))
}
