package repositories

import "storeup/internal/models"

// CategoryRepository defines the interface for category data access.
// Categories are always scoped to one store.
type CategoryRepository interface {
	ListByStore(storeID string) ([]models.Category, error)
	GetByID(id string) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id string) error
}
