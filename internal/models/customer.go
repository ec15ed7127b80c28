// internal/models/customer.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Customer struct {
	BaseModel
	StoreID       uuid.UUID       `json:"store_id" gorm:"type:uuid;not null;index"`
	Name          string          `json:"name" gorm:"size:100;not null"`
	Phone         string          `json:"phone" gorm:"size:20;index"`
	Email         string          `json:"email" gorm:"size:255"`
	Address       string          `json:"address" gorm:"type:text"`
	CreditBalance decimal.Decimal `json:"credit_balance" gorm:"type:decimal(10,2);default:0"` // outstanding khata

	// Relationships
	Store Store `json:"store,omitempty" gorm:"foreignKey:StoreID"`
}
