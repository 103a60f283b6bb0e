package repositories

import (
	"storeup/internal/models"
)

// ProductFilter narrows a store's catalog listing. Nil boolean fields mean
// "don't care"; Query matches against the product name; CategoryID keeps
// only products in that category.
type ProductFilter struct {
	Featured   *bool
	NewArrival *bool
	OnSale     *bool
	CategoryID string
	Query      string
}

// ProductRepository defines the interface for catalog data access. Listings
// are always scoped to one store.
type ProductRepository interface {
	List(storeID string, filter ProductFilter) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
