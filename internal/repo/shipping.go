package repo

import (
	"sellerdesk/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShippingRepository handles shipping company data access
type ShippingRepository struct {
	db *gorm.DB
}

// NewShippingRepository creates a new shipping repository
func NewShippingRepository(db *gorm.DB) *ShippingRepository {
	return &ShippingRepository{db: db}
}

// GetByID gets a shipping company by ID
func (r *ShippingRepository) GetByID(id uuid.UUID) (*models.ShippingCompany, error) {
	var company models.ShippingCompany
	if err := r.db.Where("id = ?", id).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// Create creates a new shipping company
func (r *ShippingRepository) Create(company *models.ShippingCompany) error {
	return r.db.Create(company).Error
}

// Update updates a shipping company
func (r *ShippingRepository) Update(company *models.ShippingCompany) error {
	return r.db.Save(company).Error
}

// Delete soft deletes a shipping company
func (r *ShippingRepository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&models.ShippingCompany{}).Error
}

// List gets shipping companies with pagination and optional name search
func (r *ShippingRepository) List(limit, offset int, search string) ([]models.ShippingCompany, int64, error) {
	var companies []models.ShippingCompany
	var total int64

	query := r.db.Model(&models.ShippingCompany{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR carrier_code ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("name ASC").Limit(limit).Offset(offset).Find(&companies).Error; err != nil {
		return nil, 0, err
	}
	return companies, total, nil
}
