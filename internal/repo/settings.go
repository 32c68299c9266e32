package repo

import (
	"sellerdesk/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepository handles settings data access
type SettingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// List returns all settings rows
func (r *SettingsRepository) List() ([]models.Setting, error) {
	var settings []models.Setting
	if err := r.db.Order("key ASC").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// Get returns one setting by key
func (r *SettingsRepository) Get(key string) (*models.Setting, error) {
	var setting models.Setting
	if err := r.db.Where("key = ?", key).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// Upsert writes a key/value pair, replacing any existing value
func (r *SettingsRepository) Upsert(key, value string) error {
	setting := models.Setting{Key: key, Value: value}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}

// ListBrandSettings returns per-brand defaults with brands preloaded
func (r *SettingsRepository) ListBrandSettings() ([]models.BrandSetting, error) {
	var settings []models.BrandSetting
	if err := r.db.Preload("Brand").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// GetBrandSetting returns the defaults for one brand
func (r *SettingsRepository) GetBrandSetting(brandID uuid.UUID) (*models.BrandSetting, error) {
	var setting models.BrandSetting
	if err := r.db.Where("brand_id = ?", brandID).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// SaveBrandSetting creates or updates a brand's defaults
func (r *SettingsRepository) SaveBrandSetting(setting *models.BrandSetting) error {
	existing, err := r.GetBrandSetting(setting.BrandID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return r.db.Create(setting).Error
		}
		return err
	}
	setting.ID = existing.ID
	setting.CreatedAt = existing.CreatedAt
	return r.db.Save(setting).Error
}
