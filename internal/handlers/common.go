// internal/handlers/common.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/12pranavr/kirana911-backend/internal/services"
	"github.com/12pranavr/kirana911-backend/internal/utils"
)

// parseUUIDParam reads a path parameter as a UUID. On failure it writes the
// error response and reports false.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

// requireUser extracts the authenticated user's id from the request context.
func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return uuid.Nil, false
	}

	return userID, true
}

// requireStoreAccess resolves the store_id path parameter and checks the
// caller may act on that store.
func requireStoreAccess(c *gin.Context, storeService *services.StoreService) (uuid.UUID, bool) {
	storeID, ok := parseUUIDParam(c, "store_id")
	if !ok {
		return uuid.Nil, false
	}

	userID, ok := requireUser(c)
	if !ok {
		return uuid.Nil, false
	}

	role, _ := utils.GetUserRoleFromContext(c)
	if err := storeService.VerifyStoreAccess(storeID, userID, role); err != nil {
		utils.ForbiddenResponse(c, err.Error())
		return uuid.Nil, false
	}

	return storeID, true
}
