// internal/models/store.go
package models

import "github.com/google/uuid"

type Store struct {
	BaseModel
	OwnerID   uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Address   string    `json:"address" gorm:"type:text"`
	Phone     string    `json:"phone" gorm:"size:20"`
	GSTNumber string    `json:"gst_number" gorm:"size:20"`
	Active    bool      `json:"active" gorm:"default:true"`

	// Relationships
	Owner     User       `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Products  []Product  `json:"products,omitempty" gorm:"foreignKey:StoreID"`
	Customers []Customer `json:"customers,omitempty" gorm:"foreignKey:StoreID"`
}
