// internal/handlers/notification.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/12pranavr/kirana911-backend/internal/services"
	"github.com/12pranavr/kirana911-backend/internal/utils"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
	storeService        *services.StoreService
}

func NewNotificationHandler(notificationService *services.NotificationService, storeService *services.StoreService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		storeService:        storeService,
	}
}

// GET /stores/:store_id/notifications
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	storeID, ok := requireStoreAccess(c, h.storeService)
	if !ok {
		return
	}

	unreadOnly := false
	if unreadStr := c.Query("unread"); unreadStr != "" {
		if unread, err := strconv.ParseBool(unreadStr); err == nil {
			unreadOnly = unread
		}
	}

	params := utils.GetPaginationParams(c)
	notifications, total, err := h.notificationService.ListNotifications(storeID, unreadOnly, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(notifications, total, params)
	utils.PaginatedResponse(c, result)
}

// PUT /stores/:store_id/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	storeID, ok := requireStoreAccess(c, h.storeService)
	if !ok {
		return
	}

	notificationID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(notificationID, storeID); err != nil {
		utils.NotFoundResponse(c, "Notification")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Notification marked read"})
}

// PUT /stores/:store_id/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	storeID, ok := requireStoreAccess(c, h.storeService)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllRead(storeID); err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "All notifications marked read"})
}
