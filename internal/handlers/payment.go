// internal/handlers/payment.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/12pranavr/kirana911-backend/internal/services"
	"github.com/12pranavr/kirana911-backend/internal/utils"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
	storeService   *services.StoreService
}

func NewPaymentHandler(paymentService *services.PaymentService, storeService *services.StoreService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		storeService:   storeService,
	}
}

// POST /stores/:store_id/payments/intent
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	storeID, ok := requireStoreAccess(c, h.storeService)
	if !ok {
		return
	}

	var req services.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	response, err := h.paymentService.CreatePaymentIntent(storeID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, response)
}

// GET /stores/:store_id/payments/:payment_intent_id/verify
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	if _, ok := requireStoreAccess(c, h.storeService); !ok {
		return
	}

	paymentIntentID := c.Param("payment_intent_id")
	if paymentIntentID == "" {
		utils.BadRequestResponse(c, "Payment intent ID is required", nil)
		return
	}

	succeeded, err := h.paymentService.VerifyPayment(paymentIntentID)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"succeeded": succeeded})
}
