// internal/services/customer_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/12pranavr/kirana911-backend/internal/models"
	"github.com/12pranavr/kirana911-backend/internal/utils"
)

type CustomerService struct {
	db *gorm.DB
}

type CreateCustomerRequest struct {
	StoreID uuid.UUID `json:"store_id" validate:"required"`
	Name    string    `json:"name" validate:"required,min=2,max=100"`
	Phone   string    `json:"phone" validate:"omitempty,indian_phone"`
	Email   string    `json:"email" validate:"omitempty,email"`
	Address string    `json:"address,omitempty"`
}

type UpdateCustomerRequest struct {
	Name    string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,indian_phone"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Address string `json:"address,omitempty"`
}

type SettleCreditRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

func (s *CustomerService) CreateCustomer(req *CreateCustomerRequest) (*models.Customer, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// A phone number identifies a customer within a store
	if req.Phone != "" {
		var count int64
		s.db.Model(&models.Customer{}).
			Where("store_id = ? AND phone = ?", req.StoreID, req.Phone).
			Count(&count)
		if count > 0 {
			return nil, errors.New("a customer with this phone already exists")
		}
	}

	customer := &models.Customer{
		StoreID: req.StoreID,
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}

	if err := s.db.Create(customer).Error; err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return customer, nil
}

func (s *CustomerService) GetCustomer(id uuid.UUID, storeID uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.Where("store_id = ?", storeID).First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("customer not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &customer, nil
}

func (s *CustomerService) ListCustomers(storeID uuid.UUID, params utils.PaginationParams) ([]models.Customer, int64, error) {
	query := s.db.Model(&models.Customer{}).Where("store_id = ?", storeID)

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR phone LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "name", "credit_balance"})
	query = utils.ApplyPagination(query, params)

	var customers []models.Customer
	if err := query.Find(&customers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch customers: %w", err)
	}

	return customers, total, nil
}

func (s *CustomerService) UpdateCustomer(id uuid.UUID, storeID uuid.UUID, req *UpdateCustomerRequest) (*models.Customer, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var customer models.Customer
	if err := s.db.Where("store_id = ?", storeID).First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("customer not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}

	if err := s.db.Model(&customer).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return &customer, nil
}

// SettleCredit records a khata repayment. The amount may not exceed the
// outstanding balance.
func (s *CustomerService) SettleCredit(id uuid.UUID, storeID uuid.UUID, req *SettleCreditRequest) (*models.Customer, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if !req.Amount.IsPositive() {
		return nil, errors.New("settlement amount must be positive")
	}

	var customer models.Customer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("store_id = ?", storeID).First(&customer, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("customer not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if req.Amount.GreaterThan(customer.CreditBalance) {
			return errors.New("settlement exceeds outstanding balance")
		}

		customer.CreditBalance = customer.CreditBalance.Sub(req.Amount)
		if err := tx.Model(&customer).
			Update("credit_balance", customer.CreditBalance).Error; err != nil {
			return fmt.Errorf("failed to settle credit: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &customer, nil
}
