// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	StoreID      uuid.UUID       `json:"store_id" gorm:"type:uuid;not null;index"`
	Name         string          `json:"name" gorm:"size:255;not null"`
	SKUID        string          `json:"sku_id" gorm:"column:sku_id;size:100;index"`
	Category     string          `json:"category" gorm:"size:100;index"`
	Description  string          `json:"description" gorm:"type:text"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	CostPrice    decimal.Decimal `json:"cost_price" gorm:"type:decimal(10,2)"`
	CurrentStock int             `json:"current_stock" gorm:"default:0"`
	ReorderLevel int             `json:"reorder_level" gorm:"default:5"`
	Unit         string          `json:"unit" gorm:"size:20"` // kg, pc, litre
	Active       bool            `json:"active" gorm:"default:true;index"`
	ImageURLs    pq.StringArray  `json:"image_urls" gorm:"type:text[]"`
	Attributes   JSONB           `json:"attributes" gorm:"type:jsonb"`

	// Relationships
	Store Store  `json:"store,omitempty" gorm:"foreignKey:StoreID"`
	Sales []Sale `json:"sales,omitempty" gorm:"foreignKey:ProductID"`
}
