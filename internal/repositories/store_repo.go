package repositories

import "storeup/internal/models"

// StoreRepository defines the interface for storefront record access.
type StoreRepository interface {
	GetAll() ([]models.Store, error)
	GetByID(id string) (*models.Store, error)
	GetByDomain(domain string) (*models.Store, error)
	GetByOwner(ownerID string) ([]models.Store, error)
	Create(store *models.Store) error
	Update(store *models.Store) error
}
