package repo

import (
	"sellerdesk/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MarketplaceRepository handles marketplace data access
type MarketplaceRepository struct {
	db *gorm.DB
}

// NewMarketplaceRepository creates a new marketplace repository
func NewMarketplaceRepository(db *gorm.DB) *MarketplaceRepository {
	return &MarketplaceRepository{db: db}
}

// GetByID gets a marketplace by ID
func (r *MarketplaceRepository) GetByID(id uuid.UUID) (*models.Marketplace, error) {
	var marketplace models.Marketplace
	if err := r.db.Where("id = ?", id).First(&marketplace).Error; err != nil {
		return nil, err
	}
	return &marketplace, nil
}

// Create creates a new marketplace
func (r *MarketplaceRepository) Create(marketplace *models.Marketplace) error {
	return r.db.Create(marketplace).Error
}

// Update updates a marketplace
func (r *MarketplaceRepository) Update(marketplace *models.Marketplace) error {
	return r.db.Save(marketplace).Error
}

// Delete soft deletes a marketplace
func (r *MarketplaceRepository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&models.Marketplace{}).Error
}

// List gets marketplaces with pagination and optional name/channel search
func (r *MarketplaceRepository) List(limit, offset int, search string) ([]models.Marketplace, int64, error) {
	var marketplaces []models.Marketplace
	var total int64

	query := r.db.Model(&models.Marketplace{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR channel ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("name ASC").Limit(limit).Offset(offset).Find(&marketplaces).Error; err != nil {
		return nil, 0, err
	}
	return marketplaces, total, nil
}
