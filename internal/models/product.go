package models

import "gorm.io/gorm"

// Product represents one catalog entry of a store.
//
// SalePrice, when set, is the effective selling price as long as it is lower
// than Price; pricing treats a sale price at or above the regular price as
// bad catalog data and ignores it.
type Product struct {
	ID          string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	StoreID     string   `json:"store_id" gorm:"index;type:varchar(36)" validate:"required"`
	CategoryID  string   `json:"category_id,omitempty" gorm:"index;type:varchar(36)"`
	Name        string   `json:"name" validate:"required,min=2,max=200"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	SalePrice   *float64 `json:"sale_price,omitempty" validate:"omitempty,gt=0"`
	Stock       int      `json:"stock" validate:"gte=0"`
	SKU         string   `json:"sku" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	ImageURL    string   `json:"image_url" validate:"omitempty,url"`
	Featured    bool     `json:"featured"`
	NewArrival  bool     `json:"new_arrival"`
	OnSale      bool     `json:"on_sale"`
	Rating      float64  `json:"rating" validate:"gte=0,lte=5"`
	ReviewCount int      `json:"review_count" validate:"gte=0"`
	gorm.Model           // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
