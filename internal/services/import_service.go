// internal/services/import_service.go
package services

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/12pranavr/kirana911-backend/internal/models"
	"github.com/12pranavr/kirana911-backend/internal/utils"
)

// ImportService loads inventory from an Excel sheet. Expected columns:
// name, sku, category, price, cost_price, stock, reorder_level, unit.
// Rows match existing products by SKU; matched rows update, the rest insert.
type ImportService struct {
	db                  *gorm.DB
	storageService      *StorageService
	notificationService *NotificationService
}

type ImportResult struct {
	Created    int           `json:"created"`
	Updated    int           `json:"updated"`
	Skipped    int           `json:"skipped"`
	Errors     []ImportError `json:"errors"`
	ArchiveURL string        `json:"archive_url,omitempty"`
}

type ImportError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type importRow struct {
	name         string
	sku          string
	category     string
	price        decimal.Decimal
	costPrice    decimal.Decimal
	stock        int
	reorderLevel int
	unit         string
}

func NewImportService(db *gorm.DB, storageService *StorageService, notificationService *NotificationService) *ImportService {
	return &ImportService{
		db:                  db,
		storageService:      storageService,
		notificationService: notificationService,
	}
}

func (s *ImportService) ImportInventory(storeID uuid.UUID, filename string, data []byte) (*ImportResult, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, errors.New("spreadsheet has no data rows")
	}

	columns, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: []ImportError{}}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for i, raw := range rows[1:] {
			rowNum := i + 2 // 1-based, after the header

			row, err := parseRow(raw, columns)
			if err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, ImportError{Row: rowNum, Message: err.Error()})
				continue
			}

			if err := s.upsertProduct(tx, storeID, row, result); err != nil {
				return fmt.Errorf("row %d: %w", rowNum, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Archive the raw sheet; an upload failure never fails the import.
	contentHash := utils.HashBytes(data)
	archiveName := fmt.Sprintf("%s_%s", contentHash[:12], filename)
	if upload, err := s.storageService.UploadBytes(data, archiveName,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		s.storageService.GetDefaultUploadOptions("imports")); err != nil {
		logrus.WithError(err).Warn("Failed to archive import sheet")
	} else {
		result.ArchiveURL = upload.URL
	}

	go s.notificationService.NotifyImportComplete(storeID, result.Created, result.Updated, result.Skipped)

	return result, nil
}

func (s *ImportService) upsertProduct(tx *gorm.DB, storeID uuid.UUID, row *importRow, result *ImportResult) error {
	if row.sku != "" {
		var existing models.Product
		err := tx.Where("store_id = ? AND sku_id = ?", storeID, row.sku).First(&existing).Error
		if err == nil {
			updates := map[string]interface{}{
				"name":          row.name,
				"price":         row.price,
				"current_stock": row.stock,
			}
			if row.category != "" {
				updates["category"] = row.category
			}
			if !row.costPrice.IsZero() {
				updates["cost_price"] = row.costPrice
			}
			if row.reorderLevel > 0 {
				updates["reorder_level"] = row.reorderLevel
			}
			if row.unit != "" {
				updates["unit"] = row.unit
			}

			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update product: %w", err)
			}
			result.Updated++
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("database error: %w", err)
		}
	}

	reorderLevel := row.reorderLevel
	if reorderLevel == 0 {
		reorderLevel = 5
	}

	product := &models.Product{
		StoreID:      storeID,
		Name:         row.name,
		SKUID:        row.sku,
		Category:     row.category,
		Price:        row.price,
		CostPrice:    row.costPrice,
		CurrentStock: row.stock,
		ReorderLevel: reorderLevel,
		Unit:         row.unit,
		Active:       true,
	}

	if err := tx.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	result.Created++

	return nil
}

func mapHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int)
	for i, cell := range header {
		key := strings.ToLower(strings.TrimSpace(cell))
		key = strings.ReplaceAll(key, " ", "_")
		columns[key] = i
	}

	for _, required := range []string{"name", "price"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("spreadsheet is missing the %q column", required)
		}
	}

	return columns, nil
}

func parseRow(raw []string, columns map[string]int) (*importRow, error) {
	cell := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(raw) {
			return ""
		}
		return strings.TrimSpace(raw[idx])
	}

	name := cell("name")
	if name == "" {
		return nil, errors.New("name is empty")
	}

	price, err := decimal.NewFromString(cell("price"))
	if err != nil {
		return nil, fmt.Errorf("invalid price %q", cell("price"))
	}
	if price.IsNegative() {
		return nil, errors.New("price cannot be negative")
	}

	row := &importRow{
		name:     name,
		sku:      cell("sku"),
		category: cell("category"),
		price:    price,
		unit:     cell("unit"),
	}

	if v := cell("cost_price"); v != "" {
		costPrice, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid cost price %q", v)
		}
		row.costPrice = costPrice
	}

	if v := cell("stock"); v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil || stock < 0 {
			return nil, fmt.Errorf("invalid stock %q", v)
		}
		row.stock = stock
	}

	if v := cell("reorder_level"); v != "" {
		level, err := strconv.Atoi(v)
		if err != nil || level < 0 {
			return nil, fmt.Errorf("invalid reorder level %q", v)
		}
		row.reorderLevel = level
	}

	return row, nil
}
