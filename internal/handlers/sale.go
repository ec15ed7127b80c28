// internal/handlers/sale.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/12pranavr/kirana911-backend/internal/models"
	"github.com/12pranavr/kirana911-backend/internal/services"
	"github.com/12pranavr/kirana911-backend/internal/utils"
)

type SaleHandler struct {
	saleService  *services.SaleService
	storeService *services.StoreService
}

func NewSaleHandler(saleService *services.SaleService, storeService *services.StoreService) *SaleHandler {
	return &SaleHandler{
		saleService:  saleService,
		storeService: storeService,
	}
}

// POST /stores/:store_id/sales
func (h *SaleHandler) Checkout(c *gin.Context) {
	storeID, ok := requireStoreAccess(c, h.storeService)
	if !ok {
		return
	}

	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	req.StoreID = storeID

	response, err := h.saleService.Checkout(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, response)
}

// GET /stores/:store_id/sales
func (h *SaleHandler) GetSales(c *gin.Context) {
	storeID, ok := requireStoreAccess(c, h.storeService)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	from, to := utils.GetDateRangeParams(c)

	searchParams := services.SaleSearchParams{
		PaginationParams: params,
		StoreID:          storeID,
		From:             from,
		To:               to,
	}

	if productIDStr := c.Query("product_id"); productIDStr != "" {
		if productID, err := uuid.Parse(productIDStr); err == nil {
			searchParams.ProductID = &productID
		}
	}

	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		if customerID, err := uuid.Parse(customerIDStr); err == nil {
			searchParams.CustomerID = &customerID
		}
	}

	if paymentType := c.Query("payment_type"); paymentType != "" {
		searchParams.PaymentType = models.PaymentType(paymentType)
	}

	sales, total, err := h.saleService.ListSales(searchParams)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(sales, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /stores/:store_id/sales/:id
func (h *SaleHandler) GetSale(c *gin.Context) {
	storeID, ok := requireStoreAccess(c, h.storeService)
	if !ok {
		return
	}

	saleID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(saleID, storeID)
	if err != nil {
		utils.NotFoundResponse(c, "Sale")
		return
	}

	utils.SuccessResponse(c, sale)
}

// DELETE /stores/:store_id/sales/:id
func (h *SaleHandler) VoidSale(c *gin.Context) {
	storeID, ok := requireStoreAccess(c, h.storeService)
	if !ok {
		return
	}

	saleID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.saleService.VoidSale(saleID, storeID); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Sale voided"})
}
