package repositories

import (
	"context"

	"storeup/internal/models"
)

// OrderRepository defines the interface for order data access. Create takes a
// context because checkout submission runs under a deadline; the other
// operations serve the merchant dashboard and are not time-bounded.
type OrderRepository interface {
	GetAll(storeID string) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	UpdateStatus(id string, status string) error
	// Delete(id string) error // Deletion of orders might be complex, so we'll omit for now.
}
