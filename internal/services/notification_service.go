// internal/services/notification_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/12pranavr/kirana911-backend/internal/models"
	"github.com/12pranavr/kirana911-backend/internal/utils"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// NotifyLowStock records an in-app alert when a sale drops a product to or
// below its reorder level. Called from a goroutine after checkout; failures
// are logged, never surfaced to the buyer.
func (s *NotificationService) NotifyLowStock(product *models.Product) {
	notifType := models.NotificationTypeLowStock
	title := "Low stock"
	message := fmt.Sprintf("%s is down to %d %s. Reorder level is %d.",
		product.Name, product.CurrentStock, product.Unit, product.ReorderLevel)

	if product.CurrentStock <= 0 {
		notifType = models.NotificationTypeOutOfStock
		title = "Out of stock"
		message = fmt.Sprintf("%s is out of stock.", product.Name)
	}

	notification := &models.Notification{
		StoreID:   product.StoreID,
		ProductID: &product.ID,
		Type:      notifType,
		Title:     title,
		Message:   message,
	}

	if err := s.db.Create(notification).Error; err != nil {
		logrus.WithError(err).WithField("product_id", product.ID).
			Error("Failed to create low stock notification")
	}
}

// NotifyImportComplete summarises a finished inventory sheet import.
func (s *NotificationService) NotifyImportComplete(storeID uuid.UUID, created, updated, skipped int) {
	notification := &models.Notification{
		StoreID: storeID,
		Type:    models.NotificationTypeImport,
		Title:   "Inventory import finished",
		Message: fmt.Sprintf("%d products created, %d updated, %d rows skipped.", created, updated, skipped),
	}

	if err := s.db.Create(notification).Error; err != nil {
		logrus.WithError(err).WithField("store_id", storeID).
			Error("Failed to create import notification")
	}
}

func (s *NotificationService) ListNotifications(storeID uuid.UUID, unreadOnly bool, params utils.PaginationParams) ([]models.Notification, int64, error) {
	query := s.db.Model(&models.Notification{}).Where("store_id = ?", storeID)
	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at"})
	query = utils.ApplyPagination(query, params)

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	return notifications, total, nil
}

func (s *NotificationService) MarkRead(id uuid.UUID, storeID uuid.UUID) error {
	now := time.Now()
	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND store_id = ?", id, storeID).
		Update("read_at", &now)

	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("notification not found")
	}

	return nil
}

func (s *NotificationService) MarkAllRead(storeID uuid.UUID) error {
	now := time.Now()
	if err := s.db.Model(&models.Notification{}).
		Where("store_id = ? AND read_at IS NULL", storeID).
		Update("read_at", &now).Error; err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}

	return nil
}
