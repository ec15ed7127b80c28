// internal/handlers/store.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/12pranavr/kirana911-backend/internal/services"
	"github.com/12pranavr/kirana911-backend/internal/utils"
)

type StoreHandler struct {
	storeService *services.StoreService
}

func NewStoreHandler(storeService *services.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// POST /stores
func (h *StoreHandler) CreateStore(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}

	var req services.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	store, err := h.storeService.CreateStore(ownerID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, store)
}

// GET /stores
func (h *StoreHandler) GetStores(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	stores, total, err := h.storeService.ListStores(ownerID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(stores, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /stores/:store_id
func (h *StoreHandler) GetStore(c *gin.Context) {
	storeID, ok := parseUUIDParam(c, "store_id")
	if !ok {
		return
	}

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	role, _ := utils.GetUserRoleFromContext(c)
	store, err := h.storeService.GetStore(storeID, userID, role)
	if err != nil {
		utils.NotFoundResponse(c, "Store")
		return
	}

	utils.SuccessResponse(c, store)
}

// PUT /stores/:store_id
func (h *StoreHandler) UpdateStore(c *gin.Context) {
	storeID, ok := parseUUIDParam(c, "store_id")
	if !ok {
		return
	}

	ownerID, ok := requireUser(c)
	if !ok {
		return
	}

	var req services.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	store, err := h.storeService.UpdateStore(storeID, ownerID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, store)
}
