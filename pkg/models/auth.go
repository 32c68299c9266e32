package models

import "time"

// User roles. Admins manage users and settings, managers manage catalog and
// listings, viewers are read-only.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleViewer  = "viewer"
)

// User represents a back-office user
type User struct {
	BaseModel
	Username    string     `gorm:"unique;not null" json:"username" validate:"required"`
	Email       string     `gorm:"unique;not null" json:"email" validate:"required,email"`
	Password    string     `gorm:"not null" json:"-"`
	Role        string     `gorm:"not null;default:'viewer'" json:"role" validate:"required,oneof=admin manager viewer"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// UpdateProfileRequest represents a request to update the current user's profile
type UpdateProfileRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// ChangePasswordRequest represents a request to change the current user's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}
