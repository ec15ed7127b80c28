// internal/handlers/dashboard.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/12pranavr/kirana911-backend/internal/services"
	"github.com/12pranavr/kirana911-backend/internal/utils"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
	storeService     *services.StoreService
}

func NewDashboardHandler(dashboardService *services.DashboardService, storeService *services.StoreService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		storeService:     storeService,
	}
}

// GET /stores/:store_id/dashboard
func (h *DashboardHandler) GetStats(c *gin.Context) {
	storeID, ok := requireStoreAccess(c, h.storeService)
	if !ok {
		return
	}

	stats, err := h.dashboardService.GetStats(storeID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, stats)
}
