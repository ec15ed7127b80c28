// internal/handlers/forecast.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/12pranavr/kirana911-backend/internal/services"
	"github.com/12pranavr/kirana911-backend/internal/utils"
)

type ForecastHandler struct {
	forecastService *services.ForecastService
	storeService    *services.StoreService
}

func NewForecastHandler(forecastService *services.ForecastService, storeService *services.StoreService) *ForecastHandler {
	return &ForecastHandler{
		forecastService: forecastService,
		storeService:    storeService,
	}
}

// GET /forecast
//
// Returns the demand report as a bare JSON object. Dashboard clients consume
// this payload directly, so it is not wrapped in the standard envelope.
func (h *ForecastHandler) GetForecast(c *gin.Context) {
	var storeID *uuid.UUID
	if storeIDStr := c.Query("store_id"); storeIDStr != "" {
		id, err := uuid.Parse(storeIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Forecast failed",
				"details": "invalid store_id",
			})
			return
		}

		userID, ok := requireUser(c)
		if !ok {
			return
		}
		role, _ := utils.GetUserRoleFromContext(c)
		if err := h.storeService.VerifyStoreAccess(id, userID, role); err != nil {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "Forecast failed",
				"details": err.Error(),
			})
			return
		}

		storeID = &id
	}

	report, err := h.forecastService.GenerateReport(c.Request.Context(), storeID)
	if err != nil {
		logrus.WithError(err).Error("Forecast generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Forecast failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, report)
}
