// internal/services/sale_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/12pranavr/kirana911-backend/internal/models"
	"github.com/12pranavr/kirana911-backend/internal/utils"
)

type SaleService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type CheckoutLineRequest struct {
	ProductID *uuid.UUID       `json:"product_id,omitempty"` // nil for an unassigned line
	Name      string           `json:"name,omitempty"`       // free-text name for unassigned lines
	QtySold   int              `json:"qty_sold" validate:"required,min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"` // overrides catalog price when set
}

type CheckoutRequest struct {
	StoreID     uuid.UUID             `json:"store_id" validate:"required"`
	CustomerID  *uuid.UUID            `json:"customer_id,omitempty"`
	PaymentType models.PaymentType    `json:"payment_type" validate:"required"`
	SoldAt      *time.Time            `json:"sold_at,omitempty"` // backdated entry for paper records
	Lines       []CheckoutLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type CheckoutResponse struct {
	Sales       []models.Sale   `json:"sales"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type SaleSearchParams struct {
	utils.PaginationParams
	StoreID     uuid.UUID          `json:"store_id"`
	ProductID   *uuid.UUID         `json:"product_id,omitempty"`
	CustomerID  *uuid.UUID         `json:"customer_id,omitempty"`
	PaymentType models.PaymentType `json:"payment_type,omitempty"`
	From        *time.Time         `json:"from,omitempty"`
	To          *time.Time         `json:"to,omitempty"`
}

func NewSaleService(db *gorm.DB, notificationService *NotificationService) *SaleService {
	return &SaleService{
		db:                  db,
		notificationService: notificationService,
	}
}

// Checkout records a basket as one sale row per line. Stock is decremented
// under a row lock; lines without a product id are recorded as-is and never
// touch inventory.
func (s *SaleService) Checkout(req *CheckoutRequest) (*CheckoutResponse, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if !isValidPaymentType(req.PaymentType) {
		return nil, errors.New("invalid payment type")
	}

	soldAt := time.Now()
	if req.SoldAt != nil {
		soldAt = *req.SoldAt
	}

	var (
		sales    []models.Sale
		total    decimal.Decimal
		lowStock []models.Product
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, line := range req.Lines {
			sale := models.Sale{
				StoreID:     req.StoreID,
				CustomerID:  req.CustomerID,
				QtySold:     line.QtySold,
				PaymentType: req.PaymentType,
				SoldAt:      soldAt,
			}

			if line.ProductID != nil {
				// Lock the product row so concurrent checkouts cannot
				// oversell the same stock.
				var product models.Product
				if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
					Where("store_id = ?", req.StoreID).
					First(&product, *line.ProductID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("product %s not found", line.ProductID)
					}
					return fmt.Errorf("database error: %w", err)
				}

				if !product.Active {
					return fmt.Errorf("product %s is not active", product.Name)
				}
				if product.CurrentStock < line.QtySold {
					return fmt.Errorf("insufficient stock for %s: have %d, need %d",
						product.Name, product.CurrentStock, line.QtySold)
				}

				unitPrice := product.Price
				if line.UnitPrice != nil {
					unitPrice = *line.UnitPrice
				}

				sale.ProductID = line.ProductID
				sale.ProductName = product.Name
				sale.UnitPrice = unitPrice
				sale.TotalAmount = unitPrice.Mul(decimal.NewFromInt(int64(line.QtySold)))

				if err := tx.Model(&product).UpdateColumn("current_stock",
					gorm.Expr("current_stock - ?", line.QtySold)).Error; err != nil {
					return fmt.Errorf("failed to update stock: %w", err)
				}

				product.CurrentStock -= line.QtySold
				if product.CurrentStock <= product.ReorderLevel {
					lowStock = append(lowStock, product)
				}
			} else {
				// Unassigned line, e.g. loose goods sold without a catalog
				// entry. Counted in revenue and daily totals only.
				if line.UnitPrice == nil {
					return errors.New("unit price is required for unassigned lines")
				}
				sale.ProductName = line.Name
				sale.UnitPrice = *line.UnitPrice
				sale.TotalAmount = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.QtySold)))
			}

			if err := tx.Create(&sale).Error; err != nil {
				return fmt.Errorf("failed to record sale: %w", err)
			}

			sales = append(sales, sale)
			total = total.Add(sale.TotalAmount)
		}

		// Khata sales accrue to the customer's outstanding balance.
		if req.PaymentType == models.PaymentTypeCredit {
			if req.CustomerID == nil {
				return errors.New("credit sales require a customer")
			}
			if err := tx.Model(&models.Customer{}).
				Where("id = ? AND store_id = ?", *req.CustomerID, req.StoreID).
				UpdateColumn("credit_balance", gorm.Expr("credit_balance + ?", total)).Error; err != nil {
				return fmt.Errorf("failed to update customer credit: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Low stock alerts go out after commit so a rollback never notifies.
	for i := range lowStock {
		product := lowStock[i]
		go s.notificationService.NotifyLowStock(&product)
	}

	return &CheckoutResponse{
		Sales:       sales,
		TotalAmount: total,
	}, nil
}

func (s *SaleService) ListSales(params SaleSearchParams) ([]models.Sale, int64, error) {
	query := s.db.Model(&models.Sale{}).Where("store_id = ?", params.StoreID)

	if params.ProductID != nil {
		query = query.Where("product_id = ?", *params.ProductID)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.PaymentType != "" {
		query = query.Where("payment_type = ?", params.PaymentType)
	}
	if params.From != nil {
		query = query.Where("sold_at >= ?", *params.From)
	}
	if params.To != nil {
		query = query.Where("sold_at <= ?", *params.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sales: %w", err)
	}

	allowedSortFields := []string{"sold_at", "created_at", "total_amount", "qty_sold"}
	params.Sort = defaultSort(params.Sort, "sold_at")
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var sales []models.Sale
	if err := query.Preload("Product").Preload("Customer").Find(&sales).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch sales: %w", err)
	}

	return sales, total, nil
}

func (s *SaleService) GetSale(id uuid.UUID, storeID uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	if err := s.db.Where("store_id = ?", storeID).
		Preload("Product").Preload("Customer").
		First(&sale, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("sale not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &sale, nil
}

// VoidSale reverses a mistaken entry: restores stock, unwinds any khata
// balance, then soft-deletes the row.
func (s *SaleService) VoidSale(id uuid.UUID, storeID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var sale models.Sale
		if err := tx.Where("store_id = ?", storeID).First(&sale, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("sale not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if sale.ProductID != nil {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", *sale.ProductID).
				UpdateColumn("current_stock", gorm.Expr("current_stock + ?", sale.QtySold)).Error; err != nil {
				return fmt.Errorf("failed to restore stock: %w", err)
			}
		}

		if sale.PaymentType == models.PaymentTypeCredit && sale.CustomerID != nil {
			if err := tx.Model(&models.Customer{}).
				Where("id = ?", *sale.CustomerID).
				UpdateColumn("credit_balance", gorm.Expr("credit_balance - ?", sale.TotalAmount)).Error; err != nil {
				return fmt.Errorf("failed to unwind customer credit: %w", err)
			}
		}

		if err := tx.Delete(&sale).Error; err != nil {
			return fmt.Errorf("failed to void sale: %w", err)
		}

		return nil
	})
}

func isValidPaymentType(pt models.PaymentType) bool {
	switch pt {
	case models.PaymentTypeCash, models.PaymentTypeUPI, models.PaymentTypeCard,
		models.PaymentTypeCredit, models.PaymentTypeOnline:
		return true
	}
	return false
}

func defaultSort(current, fallback string) string {
	if current == "" || current == "created_at" {
		return fallback
	}
	return current
}
