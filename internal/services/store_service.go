// internal/services/store_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/12pranavr/kirana911-backend/internal/models"
	"github.com/12pranavr/kirana911-backend/internal/utils"
)

type StoreService struct {
	db *gorm.DB
}

type CreateStoreRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=255"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone" validate:"omitempty,indian_phone"`
	GSTNumber string `json:"gst_number" validate:"omitempty,max=20"`
}

type UpdateStoreRequest struct {
	Name      string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,indian_phone"`
	GSTNumber string `json:"gst_number,omitempty" validate:"omitempty,max=20"`
	Active    *bool  `json:"active,omitempty"`
}

func NewStoreService(db *gorm.DB) *StoreService {
	return &StoreService{db: db}
}

func (s *StoreService) CreateStore(ownerID uuid.UUID, req *CreateStoreRequest) (*models.Store, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	store := &models.Store{
		OwnerID:   ownerID,
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		GSTNumber: req.GSTNumber,
		Active:    true,
	}

	if err := s.db.Create(store).Error; err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	return store, nil
}

// GetStore verifies the caller's access before returning the store. Staff
// and owners only see stores they belong to; admins see everything.
func (s *StoreService) GetStore(id uuid.UUID, userID uuid.UUID, role string) (*models.Store, error) {
	var store models.Store
	if err := s.db.First(&store, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("store not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if role != string(models.UserRoleAdmin) && store.OwnerID != userID {
		return nil, errors.New("unauthorized to access this store")
	}

	return &store, nil
}

func (s *StoreService) ListStores(ownerID uuid.UUID, params utils.PaginationParams) ([]models.Store, int64, error) {
	query := s.db.Model(&models.Store{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count stores: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "name"})
	query = utils.ApplyPagination(query, params)

	var stores []models.Store
	if err := query.Find(&stores).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch stores: %w", err)
	}

	return stores, total, nil
}

func (s *StoreService) UpdateStore(id uuid.UUID, ownerID uuid.UUID, req *UpdateStoreRequest) (*models.Store, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var store models.Store
	if err := s.db.First(&store, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("store not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if store.OwnerID != ownerID {
		return nil, errors.New("unauthorized to update this store")
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.GSTNumber != "" {
		updates["gst_number"] = req.GSTNumber
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if err := s.db.Model(&store).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update store: %w", err)
	}

	return &store, nil
}

// VerifyStoreAccess checks that a user may act on a store. Used by services
// that take a store id from the request path.
func (s *StoreService) VerifyStoreAccess(storeID uuid.UUID, userID uuid.UUID, role string) error {
	if role == string(models.UserRoleAdmin) {
		return nil
	}

	var store models.Store
	if err := s.db.Select("owner_id").First(&store, storeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("store not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if store.OwnerID != userID {
		return errors.New("unauthorized to access this store")
	}

	return nil
}
