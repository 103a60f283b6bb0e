package models

import "gorm.io/gorm"

// User is a merchant account. Merchants sign in to manage the stores they
// own; shoppers on a storefront never need an account (guest checkout).
// Ownership is the authorization boundary for the whole dashboard: a
// merchant can only touch catalogs and orders of stores in Stores.
type User struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string  `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string  `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string  `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Stores     []Store `json:"stores,omitempty" gorm:"foreignKey:OwnerID"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
