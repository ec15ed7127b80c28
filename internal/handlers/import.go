// internal/handlers/import.go
package handlers

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/12pranavr/kirana911-backend/internal/services"
	"github.com/12pranavr/kirana911-backend/internal/utils"
)

const maxImportSize = 20 * 1024 * 1024 // 20MB

type ImportHandler struct {
	importService *services.ImportService
	storeService  *services.StoreService
}

func NewImportHandler(importService *services.ImportService, storeService *services.StoreService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		storeService:  storeService,
	}
}

// POST /stores/:store_id/imports
func (h *ImportHandler) ImportInventory(c *gin.Context) {
	storeID, ok := requireStoreAccess(c, h.storeService)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "Spreadsheet file is required", nil)
		return
	}
	defer file.Close()

	if header.Size > maxImportSize {
		utils.BadRequestResponse(c, "File too large", nil)
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		utils.BadRequestResponse(c, "Only .xlsx and .xls files are supported", nil)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to read file")
		return
	}

	result, err := h.importService.ImportInventory(storeID, header.Filename, data)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, result)
}
