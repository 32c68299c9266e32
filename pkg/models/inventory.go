package models

import "github.com/google/uuid"

// Inventory tracks stock for a single sub SKU
type Inventory struct {
	BaseModel
	ProductID        *uuid.UUID `gorm:"type:uuid;index;constraint:OnDelete:SET NULL" json:"product_id"`
	SubSKU           string     `gorm:"uniqueIndex;not null" json:"sub_sku" validate:"required"`
	OnHand           int        `gorm:"default:0" json:"on_hand" validate:"min=0"`
	Reserved         int        `gorm:"default:0" json:"reserved" validate:"min=0"`
	ReorderThreshold int        `gorm:"default:0" json:"reorder_threshold"`
	WarehouseCode    string     `json:"warehouse_code"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// Available returns the sellable quantity
func (i *Inventory) Available() int {
	avail := i.OnHand - i.Reserved
	if avail < 0 {
		return 0
	}
	return avail
}

// IsLowStock reports whether available stock is at or below the reorder threshold
func (i *Inventory) IsLowStock() bool {
	return i.Available() <= i.ReorderThreshold
}

// InventoryAdjustRequest adjusts quantities on an inventory record
type InventoryAdjustRequest struct {
	OnHand           *int    `json:"on_hand" validate:"omitempty,min=0"`
	Reserved         *int    `json:"reserved" validate:"omitempty,min=0"`
	ReorderThreshold *int    `json:"reorder_threshold" validate:"omitempty,min=0"`
	WarehouseCode    *string `json:"warehouse_code"`
}
