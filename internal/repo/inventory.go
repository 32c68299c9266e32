package repo

import (
	"sellerdesk/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryRepository handles inventory data access
type InventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// GetByID gets an inventory record by ID
func (r *InventoryRepository) GetByID(id uuid.UUID) (*models.Inventory, error) {
	var inv models.Inventory
	if err := r.db.Preload("Product").Where("id = ?", id).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetBySubSKU gets an inventory record by sub SKU
func (r *InventoryRepository) GetBySubSKU(subSKU string) (*models.Inventory, error) {
	var inv models.Inventory
	if err := r.db.Where("sub_sku = ?", subSKU).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create creates a new inventory record
func (r *InventoryRepository) Create(inv *models.Inventory) error {
	return r.db.Create(inv).Error
}

// Update updates an inventory record
func (r *InventoryRepository) Update(inv *models.Inventory) error {
	return r.db.Save(inv).Error
}

// List gets inventory with pagination, optional sub SKU search and low-stock filter
func (r *InventoryRepository) List(limit, offset int, search string, lowStockOnly bool) ([]models.Inventory, int64, error) {
	var records []models.Inventory
	var total int64

	query := r.db.Model(&models.Inventory{})
	if search != "" {
		query = query.Where("sub_sku ILIKE ?", "%"+search+"%")
	}
	if lowStockOnly {
		query = query.Where("(on_hand - reserved) <= reorder_threshold")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Preload("Product").Order("sub_sku ASC").Limit(limit).Offset(offset).Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
