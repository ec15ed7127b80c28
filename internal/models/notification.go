// internal/models/notification.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	BaseModel
	StoreID   uuid.UUID        `json:"store_id" gorm:"type:uuid;not null;index"`
	ProductID *uuid.UUID       `json:"product_id" gorm:"type:uuid;index"`
	Type      NotificationType `json:"type" gorm:"type:varchar(30);not null"`
	Title     string           `json:"title" gorm:"size:255;not null"`
	Message   string           `json:"message" gorm:"type:text"`
	ReadAt    *time.Time       `json:"read_at"`
}
