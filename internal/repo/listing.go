package repo

import (
	"sellerdesk/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListingRepository handles listing data access
type ListingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new listing repository
func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// ListingFilter narrows listing queries
type ListingFilter struct {
	Search        string
	MarketplaceID *uuid.UUID
	Status        models.ListingStatus
}

// GetByID gets a listing with marketplace, product and items preloaded
func (r *ListingRepository) GetByID(id uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	if err := r.db.Preload("Marketplace").Preload("Product").Preload("Items").Where("id = ?", id).First(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// GetBySKUPrefix gets listings sharing a SKU prefix
func (r *ListingRepository) GetBySKUPrefix(prefix string) ([]models.Listing, error) {
	var listings []models.Listing
	if err := r.db.Where("sku_prefix = ?", prefix).Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// Create creates a listing and its items in one transaction
func (r *ListingRepository) Create(listing *models.Listing) error {
	return r.db.Create(listing).Error
}

// Update updates a listing
func (r *ListingRepository) Update(listing *models.Listing) error {
	return r.db.Save(listing).Error
}

// ReplaceItems swaps the listing's per-sub-SKU quantities
func (r *ListingRepository) ReplaceItems(listingID uuid.UUID, items []models.ListingItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", listingID).Delete(&models.ListingItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ListingID = listingID
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

// Delete soft deletes a listing
func (r *ListingRepository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&models.Listing{}).Error
}

// List gets listings with pagination, search and filters
func (r *ListingRepository) List(limit, offset int, filter ListingFilter) ([]models.Listing, int64, error) {
	var listings []models.Listing
	var total int64

	query := r.db.Model(&models.Listing{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR sku_prefix ILIKE ?", pattern, pattern)
	}
	if filter.MarketplaceID != nil {
		query = query.Where("marketplace_id = ?", *filter.MarketplaceID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Preload("Marketplace").Order("created_at DESC").Limit(limit).Offset(offset).Find(&listings).Error; err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// CountByStatus returns listing counts grouped by status
func (r *ListingRepository) CountByStatus() ([]models.ListingStatusCount, error) {
	var counts []models.ListingStatusCount
	err := r.db.Model(&models.Listing{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Order("status ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// FindBySKU resolves a listing by its full SKU (prefix or prefix-suffix)
func (r *ListingRepository) FindBySKU(sku string) (*models.Listing, error) {
	var listing models.Listing
	err := r.db.Where("sku_prefix = ? OR (sku_suffix <> '' AND sku_prefix || '-' || sku_suffix = ?)", sku, sku).
		First(&listing).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}
