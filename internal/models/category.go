package models

import "gorm.io/gorm"

// Category groups a store's products for browsing. Categories belong to one
// store; products reference at most one category.
type Category struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	StoreID     string `json:"store_id" gorm:"index;type:varchar(36)" validate:"required"`
	Name        string `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
