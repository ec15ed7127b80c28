// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/12pranavr/kirana911-backend/internal/models"
	"github.com/12pranavr/kirana911-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	StoreID      uuid.UUID              `json:"store_id" validate:"required"`
	Name         string                 `json:"name" validate:"required,min=2,max=255"`
	SKUID        string                 `json:"sku_id" validate:"omitempty,sku"`
	Category     string                 `json:"category,omitempty"`
	Description  string                 `json:"description,omitempty"`
	Price        decimal.Decimal        `json:"price" validate:"required"`
	CostPrice    decimal.Decimal        `json:"cost_price,omitempty"`
	CurrentStock int                    `json:"current_stock" validate:"min=0"`
	ReorderLevel int                    `json:"reorder_level" validate:"omitempty,min=0"`
	Unit         string                 `json:"unit,omitempty"`
	ImageURLs    []string               `json:"image_urls,omitempty"`
	Attributes   map[string]interface{} `json:"attributes,omitempty"`
}

type UpdateProductRequest struct {
	Name         string                 `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	SKUID        string                 `json:"sku_id,omitempty" validate:"omitempty,sku"`
	Category     string                 `json:"category,omitempty"`
	Description  string                 `json:"description,omitempty"`
	Price        *decimal.Decimal       `json:"price,omitempty"`
	CostPrice    *decimal.Decimal       `json:"cost_price,omitempty"`
	CurrentStock *int                   `json:"current_stock,omitempty" validate:"omitempty,min=0"`
	ReorderLevel *int                   `json:"reorder_level,omitempty" validate:"omitempty,min=0"`
	Unit         string                 `json:"unit,omitempty"`
	Active       *bool                  `json:"active,omitempty"`
	ImageURLs    []string               `json:"image_urls,omitempty"`
	Attributes   map[string]interface{} `json:"attributes,omitempty"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	StoreID  uuid.UUID `json:"store_id"`
	Active   *bool     `json:"active,omitempty"`
	LowStock bool      `json:"low_stock,omitempty"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.Price.IsNegative() {
		return nil, errors.New("price cannot be negative")
	}

	// SKUs are unique within a store
	if req.SKUID != "" {
		var count int64
		s.db.Model(&models.Product{}).
			Where("store_id = ? AND sku_id = ?", req.StoreID, req.SKUID).
			Count(&count)
		if count > 0 {
			return nil, errors.New("a product with this SKU already exists")
		}
	}

	reorderLevel := req.ReorderLevel
	if reorderLevel == 0 {
		reorderLevel = 5
	}

	product := &models.Product{
		StoreID:      req.StoreID,
		Name:         req.Name,
		SKUID:        req.SKUID,
		Category:     req.Category,
		Description:  req.Description,
		Price:        req.Price,
		CostPrice:    req.CostPrice,
		CurrentStock: req.CurrentStock,
		ReorderLevel: reorderLevel,
		Unit:         req.Unit,
		Active:       true,
		ImageURLs:    pq.StringArray(req.ImageURLs),
		Attributes:   models.JSONB(req.Attributes),
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *ProductService) GetProduct(id uuid.UUID, storeID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Where("store_id = ?", storeID).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &product, nil
}

func (s *ProductService) UpdateProduct(id uuid.UUID, storeID uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.Where("store_id = ?", storeID).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Prepare updates
	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.SKUID != "" {
		updates["sku_id"] = req.SKUID
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, errors.New("price cannot be negative")
		}
		updates["price"] = *req.Price
	}
	if req.CostPrice != nil {
		updates["cost_price"] = *req.CostPrice
	}
	if req.CurrentStock != nil {
		updates["current_stock"] = *req.CurrentStock
	}
	if req.ReorderLevel != nil {
		updates["reorder_level"] = *req.ReorderLevel
	}
	if req.Unit != "" {
		updates["unit"] = req.Unit
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if req.ImageURLs != nil {
		updates["image_urls"] = pq.StringArray(req.ImageURLs)
	}
	if req.Attributes != nil {
		updates["attributes"] = models.JSONB(req.Attributes)
	}

	if err := s.db.Model(&product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &product, nil
}

// DeleteProduct soft-deletes; sale rows keep the product name snapshot so
// history survives the delete.
func (s *ProductService) DeleteProduct(id uuid.UUID, storeID uuid.UUID) error {
	result := s.db.Where("store_id = ?", storeID).Delete(&models.Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("product not found")
	}

	return nil
}

func (s *ProductService) SearchProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Where("store_id = ?", params.StoreID)

	// Apply filters
	if params.Active != nil {
		query = query.Where("active = ?", *params.Active)
	}

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku_id) LIKE ?", searchTerm, searchTerm)
	}

	if params.LowStock {
		query = query.Where("current_stock <= reorder_level")
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	// Apply sorting and pagination
	allowedSortFields := []string{"created_at", "updated_at", "name", "price", "current_stock", "category"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) GetLowStockProducts(storeID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("store_id = ? AND active = ? AND current_stock <= reorder_level", storeID, true).
		Order("current_stock ASC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch low stock products: %w", err)
	}

	return products, nil
}

func (s *ProductService) AddProductImage(id uuid.UUID, storeID uuid.UUID, imageURL string) (*models.Product, error) {
	var product models.Product
	if err := s.db.Where("store_id = ?", storeID).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	product.ImageURLs = append(product.ImageURLs, imageURL)
	if err := s.db.Model(&product).Update("image_urls", product.ImageURLs).Error; err != nil {
		return nil, fmt.Errorf("failed to update product images: %w", err)
	}

	return &product, nil
}
