package repo

import (
	"sellerdesk/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BrandRepository handles brand data access
type BrandRepository struct {
	db *gorm.DB
}

// NewBrandRepository creates a new brand repository
func NewBrandRepository(db *gorm.DB) *BrandRepository {
	return &BrandRepository{db: db}
}

// GetByID gets a brand by ID
func (r *BrandRepository) GetByID(id uuid.UUID) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.Where("id = ?", id).First(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

// GetByName gets a brand by name (case insensitive)
func (r *BrandRepository) GetByName(name string) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

// Create creates a new brand
func (r *BrandRepository) Create(brand *models.Brand) error {
	return r.db.Create(brand).Error
}

// Update updates a brand
func (r *BrandRepository) Update(brand *models.Brand) error {
	return r.db.Save(brand).Error
}

// Delete soft deletes a brand
func (r *BrandRepository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&models.Brand{}).Error
}

// List gets brands with pagination and optional name search
func (r *BrandRepository) List(limit, offset int, search string) ([]models.Brand, int64, error) {
	var brands []models.Brand
	var total int64

	query := r.db.Model(&models.Brand{})
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("name ASC").Limit(limit).Offset(offset).Find(&brands).Error; err != nil {
		return nil, 0, err
	}
	return brands, total, nil
}

// CountProducts counts how many products reference this brand
func (r *BrandRepository) CountProducts(brandID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("brand_id = ?", brandID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
