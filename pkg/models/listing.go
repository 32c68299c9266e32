package models

import (
	"strings"

	"github.com/google/uuid"
)

type ListingStatus string

const (
	ListingStatusDraft   ListingStatus = "draft"
	ListingStatusPending ListingStatus = "pending"
	ListingStatusLive    ListingStatus = "live"
	ListingStatusEnded   ListingStatus = "ended"
)

// Listing is a marketplace-facing row built from a product or a confirmed
// product combination. The SKU prefix is fixed at creation (the source group
// SKU); only the suffix is editable afterwards.
type Listing struct {
	BaseModel
	MarketplaceID uuid.UUID     `gorm:"type:uuid;not null;index;constraint:OnDelete:RESTRICT" json:"marketplace_id" validate:"required"`
	ProductID     *uuid.UUID    `gorm:"type:uuid;index;constraint:OnDelete:SET NULL" json:"product_id"`
	Title         string        `gorm:"not null" json:"title" validate:"required"`
	SKUPrefix     string        `gorm:"not null;index" json:"sku_prefix" validate:"required"`
	SKUSuffix     string        `json:"sku_suffix"`
	Price         string        `gorm:"default:'0'" json:"price"`
	Status        ListingStatus `gorm:"not null;default:'draft'" json:"status"`
	IsCombination bool          `gorm:"default:false" json:"is_combination"`
	ImageURL      string        `json:"image_url"`

	Marketplace *Marketplace  `gorm:"foreignKey:MarketplaceID" json:"marketplace,omitempty"`
	Product     *Product      `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Items       []ListingItem `gorm:"foreignKey:ListingID" json:"items,omitempty"`
}

// SKU returns the full listing SKU (prefix plus suffix, "-" separated).
func (l *Listing) SKU() string {
	if l.SKUSuffix == "" {
		return l.SKUPrefix
	}
	return l.SKUPrefix + "-" + l.SKUSuffix
}

// ValidStatusTransition reports whether a listing may move between statuses.
// Lifecycle: draft -> pending -> live -> ended; draft -> ended allowed.
func ValidStatusTransition(from, to ListingStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case ListingStatusDraft:
		return to == ListingStatusPending || to == ListingStatusEnded
	case ListingStatusPending:
		return to == ListingStatusLive || to == ListingStatusEnded
	case ListingStatusLive:
		return to == ListingStatusEnded
	default:
		return false
	}
}

// ListingItem holds the selected quantity for one sub SKU of the listing.
type ListingItem struct {
	BaseModel
	ListingID uuid.UUID `gorm:"type:uuid;not null;index;constraint:OnDelete:RESTRICT" json:"listing_id"`
	SubSKU    string    `gorm:"not null" json:"sub_sku" validate:"required"`
	Quantity  int       `gorm:"default:1" json:"quantity" validate:"min=0"`
}

// ListingStatusCount is a per-status row for the status summary endpoint
type ListingStatusCount struct {
	Status ListingStatus `json:"status"`
	Count  int64         `json:"count"`
}

// NormalizeSuffix trims whitespace and strips a leading separator so stored
// suffixes stay consistent regardless of how the caller typed them.
func NormalizeSuffix(suffix string) string {
	suffix = strings.TrimSpace(suffix)
	return strings.TrimPrefix(suffix, "-")
}
