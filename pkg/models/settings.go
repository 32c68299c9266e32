package models

import "github.com/google/uuid"

// Setting is a key/value configuration row
type Setting struct {
	BaseModel
	Key   string `gorm:"uniqueIndex;not null" json:"key" validate:"required"`
	Value string `json:"value"`
}

// BrandSetting holds per-brand listing defaults
type BrandSetting struct {
	BaseModel
	BrandID              uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;constraint:OnDelete:RESTRICT" json:"brand_id" validate:"required"`
	DefaultMarkupPercent string    `gorm:"default:'0'" json:"default_markup_percent"`
	Visible              bool      `gorm:"default:true" json:"visible"`

	Brand *Brand `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
}

// UpdateSettingsRequest carries key/value pairs to upsert
type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings" validate:"required"`
}

// UpdateBrandSettingRequest updates per-brand defaults
type UpdateBrandSettingRequest struct {
	BrandID              uuid.UUID `json:"brand_id" validate:"required"`
	DefaultMarkupPercent *string   `json:"default_markup_percent"`
	Visible              *bool     `json:"visible"`
}
