package models

import "gorm.io/gorm"

// Store represents one merchant storefront. Carts, catalogs and orders are
// always scoped to a single store, and every store belongs to the merchant
// account that created it.
type Store struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	OwnerID     string `json:"owner_id,omitempty" gorm:"index;type:varchar(36)"`
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Domain      string `json:"domain" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
	Currency    string `json:"currency" gorm:"type:varchar(8);default:'EGP'"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
