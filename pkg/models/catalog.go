package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ExtensionMap holds seller-defined custom attributes as a JSONB column.
// Known commerce attributes live in typed fields; anything open-ended goes here.
type ExtensionMap map[string]string

// Value implements driver.Valuer for JSONB storage
func (m ExtensionMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner
func (m *ExtensionMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for ExtensionMap: %T", value)
	}
	return json.Unmarshal(data, m)
}

// Brand represents a product brand
type Brand struct {
	BaseModel
	Name     string `gorm:"unique;not null" json:"name" validate:"required"`
	Code     string `gorm:"uniqueIndex" json:"code"`
	Website  string `json:"website"`
	AssetURL string `json:"asset_url"` // uploaded brand asset (logo, price sheet)
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

// Marketplace represents a sales channel
type Marketplace struct {
	BaseModel
	Name       string `gorm:"unique;not null" json:"name" validate:"required"`
	Channel    string `gorm:"not null" json:"channel" validate:"required"` // amazon, ebay, walmart, ...
	FeePercent string `gorm:"default:'0'" json:"fee_percent"`
	IsActive   bool   `gorm:"default:true" json:"is_active"`
}

// ShippingCompany represents a carrier used to fulfill listings
type ShippingCompany struct {
	BaseModel
	Name         string `gorm:"unique;not null" json:"name" validate:"required"`
	CarrierCode  string `json:"carrier_code"`
	ServiceLevel string `json:"service_level"` // ground, expedited, freight
	BaseRate     string `gorm:"default:'0'" json:"base_rate"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`
}

// Product represents a product in the catalog. Price fields are decimal
// strings; SubSKU holds comma-separated per-variant identifiers under the
// shared GroupSKU.
type Product struct {
	BaseModel
	BrandID  *uuid.UUID `gorm:"type:uuid;index;constraint:OnDelete:SET NULL" json:"brand_id"`
	Title    string     `gorm:"not null" json:"title" validate:"required"`
	GroupSKU string     `gorm:"uniqueIndex;not null" json:"group_sku" validate:"required"`
	SubSKU   string     `json:"sub_sku"`

	// Commercial price set
	BrandRealPrice         string `gorm:"default:'0'" json:"brand_real_price"`
	BrandMiscellaneous     string `gorm:"default:'0'" json:"brand_miscellaneous"`
	MSRP                   string `gorm:"default:'0'" json:"msrp"`
	ShippingPrice          string `gorm:"default:'0'" json:"shipping_price"`
	CommissionPrice        string `gorm:"default:'0'" json:"commission_price"`
	ProfitMarginPrice      string `gorm:"default:'0'" json:"profit_margin_price"`
	EcommerceMiscellaneous string `gorm:"default:'0'" json:"ecommerce_miscellaneous"`

	// Shipping dimensions
	Length string `gorm:"default:'0'" json:"length"` // cm
	Width  string `gorm:"default:'0'" json:"width"`  // cm
	Height string `gorm:"default:'0'" json:"height"` // cm
	Volume string `gorm:"default:'0'" json:"volume"` // cubic cm
	Weight string `gorm:"default:'0'" json:"weight"` // grams

	Features      string       `json:"features"` // newline-separated feature bullets
	Attributes    ExtensionMap `gorm:"type:jsonb" json:"attributes,omitempty"`
	StockQuantity int          `gorm:"default:0" json:"stock_quantity"`
	IsActive      bool         `gorm:"default:true" json:"is_active"`

	Brand  *Brand         `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Images []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`
}

// SubSKUs returns the product's sub SKUs split on commas with empties removed.
func (p *Product) SubSKUs() []string {
	if p.SubSKU == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(p.SubSKU, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ProductImage represents a gallery image stored in S3
type ProductImage struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index;constraint:OnDelete:RESTRICT" json:"product_id"`
	URL       string    `gorm:"not null" json:"url"`
	S3Key     string    `json:"s3_key"`
	Alt       string    `json:"alt"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
}
