// internal/handlers/customer.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/12pranavr/kirana911-backend/internal/services"
	"github.com/12pranavr/kirana911-backend/internal/utils"
)

type CustomerHandler struct {
	customerService *services.CustomerService
	storeService    *services.StoreService
}

func NewCustomerHandler(customerService *services.CustomerService, storeService *services.StoreService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		storeService:    storeService,
	}
}

// POST /stores/:store_id/customers
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	storeID, ok := requireStoreAccess(c, h.storeService)
	if !ok {
		return
	}

	var req services.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	req.StoreID = storeID

	customer, err := h.customerService.CreateCustomer(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, customer)
}

// GET /stores/:store_id/customers
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	storeID, ok := requireStoreAccess(c, h.storeService)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	customers, total, err := h.customerService.ListCustomers(storeID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(customers, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /stores/:store_id/customers/:id
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	storeID, ok := requireStoreAccess(c, h.storeService)
	if !ok {
		return
	}

	customerID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomer(customerID, storeID)
	if err != nil {
		utils.NotFoundResponse(c, "Customer")
		return
	}

	utils.SuccessResponse(c, customer)
}

// PUT /stores/:store_id/customers/:id
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	storeID, ok := requireStoreAccess(c, h.storeService)
	if !ok {
		return
	}

	customerID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	customer, err := h.customerService.UpdateCustomer(customerID, storeID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, customer)
}

// POST /stores/:store_id/customers/:id/settle
func (h *CustomerHandler) SettleCredit(c *gin.Context) {
	storeID, ok := requireStoreAccess(c, h.storeService)
	if !ok {
		return
	}

	customerID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.SettleCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	customer, err := h.customerService.SettleCredit(customerID, storeID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, customer)
}
