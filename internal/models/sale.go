// internal/models/sale.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is one line item of a completed sale. The schema deliberately has no
// order id linking the lines of a single checkout; the forecast engine's
// co-purchase miner relies on that and approximates checkouts by clock hour.
type Sale struct {
	BaseModel
	StoreID     uuid.UUID       `json:"store_id" gorm:"type:uuid;not null;index"`
	ProductID   *uuid.UUID      `json:"product_id" gorm:"type:uuid;index"` // nil for unassigned lines
	CustomerID  *uuid.UUID      `json:"customer_id" gorm:"type:uuid;index"`
	ProductName string          `json:"product_name" gorm:"size:255"` // snapshot at time of sale
	QtySold     int             `json:"qty_sold" gorm:"not null"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2)"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2)"`
	PaymentType PaymentType     `json:"payment_type" gorm:"type:varchar(20);default:'cash'"`
	SoldAt      time.Time       `json:"sold_at" gorm:"not null;index"`

	// Relationships
	Store    Store     `json:"store,omitempty" gorm:"foreignKey:StoreID"`
	Product  *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}
