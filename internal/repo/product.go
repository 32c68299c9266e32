package repo

import (
	"sellerdesk/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository handles product data access
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ProductFilter narrows product listings
type ProductFilter struct {
	Search   string
	BrandID  *uuid.UUID
	MinPrice *float64
	MaxPrice *float64
	HasStock bool
}

// GetByID gets a product by ID with brand and images preloaded
func (r *ProductRepository) GetByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Brand").Preload("Images").Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetByGroupSKU gets a product by its group SKU
func (r *ProductRepository) GetByGroupSKU(groupSKU string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("group_sku = ?", groupSKU).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetByIDs loads products preserving the order of the given IDs
func (r *ProductRepository) GetByIDs(ids []uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	ordered := make([]models.Product, 0, len(products))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

// Create creates a new product
func (r *ProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update updates a product
func (r *ProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete soft deletes a product
func (r *ProductRepository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&models.Product{}).Error
}

// List gets products with pagination, search and filters
func (r *ProductRepository) List(limit, offset int, filter ProductFilter) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := r.db.Model(&models.Product{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR group_sku ILIKE ? OR sub_sku ILIKE ?", pattern, pattern, pattern)
	}
	if filter.BrandID != nil {
		query = query.Where("brand_id = ?", *filter.BrandID)
	}
	if filter.MinPrice != nil {
		query = query.Where("brand_real_price::numeric >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("brand_real_price::numeric <= ?", *filter.MaxPrice)
	}
	if filter.HasStock {
		query = query.Where("stock_quantity > 0")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Preload("Brand").Order("created_at DESC").Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// UpsertByGroupSKU creates the product or updates the existing row with the
// same group SKU. Used by the import pipeline.
func (r *ProductRepository) UpsertByGroupSKU(product *models.Product) error {
	existing, err := r.GetByGroupSKU(product.GroupSKU)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return r.Create(product)
		}
		return err
	}
	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt
	return r.db.Save(product).Error
}

// AddImage attaches a gallery image to a product
func (r *ProductRepository) AddImage(image *models.ProductImage) error {
	return r.db.Create(image).Error
}

// ListImages lists a product's gallery images in sort order
func (r *ProductRepository) ListImages(productID uuid.UUID) ([]models.ProductImage, error) {
	var images []models.ProductImage
	if err := r.db.Where("product_id = ?", productID).Order("sort_order ASC, created_at ASC").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// GetImage gets one gallery image scoped to its product
func (r *ProductRepository) GetImage(productID, imageID uuid.UUID) (*models.ProductImage, error) {
	var image models.ProductImage
	if err := r.db.Where("id = ? AND product_id = ?", imageID, productID).First(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// DeleteImage removes a gallery image
func (r *ProductRepository) DeleteImage(productID, imageID uuid.UUID) error {
	return r.db.Where("id = ? AND product_id = ?", imageID, productID).Delete(&models.ProductImage{}).Error
}
