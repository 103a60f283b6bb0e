package repositories

import (
	"fmt"

	"storeup/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMStoreRepository is a GORM implementation of StoreRepository.
type GORMStoreRepository struct {
	db *gorm.DB
}

// NewGORMStoreRepository creates a new instance of GORMStoreRepository.
func NewGORMStoreRepository(db *gorm.DB) *GORMStoreRepository {
	return &GORMStoreRepository{
		db: db,
	}
}

// GetAll retrieves all stores.
func (r *GORMStoreRepository) GetAll() ([]models.Store, error) {
	var stores []models.Store
	if err := r.db.Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("failed to get all stores: %w", err)
	}
	return stores, nil
}

// GetByID retrieves a store by its ID.
func (r *GORMStoreRepository) GetByID(id string) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("store with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get store by ID %s: %w", id, err)
	}
	return &store, nil
}

// GetByOwner retrieves every store owned by the given merchant.
func (r *GORMStoreRepository) GetByOwner(ownerID string) ([]models.Store, error) {
	var stores []models.Store
	if err := r.db.Find(&stores, "owner_id = ?", ownerID).Error; err != nil {
		return nil, fmt.Errorf("failed to get stores for owner %s: %w", ownerID, err)
	}
	return stores, nil
}

// GetByDomain retrieves a store by its unique domain.
func (r *GORMStoreRepository) GetByDomain(domain string) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, "domain = ?", domain).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("store with domain %s not found", domain)
		}
		return nil, fmt.Errorf("failed to get store by domain %s: %w", domain, err)
	}
	return &store, nil
}

// Create creates a new store.
func (r *GORMStoreRepository) Create(store *models.Store) error {
	if store.ID == "" {
		store.ID = uuid.New().String()
	}
	if err := r.db.Create(store).Error; err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	return nil
}

// Update updates an existing store.
func (r *GORMStoreRepository) Update(store *models.Store) error {
	res := r.db.Save(store)
	if res.Error != nil {
		return fmt.Errorf("failed to update store: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("store with ID %s not found for update", store.ID)
	}
	return nil
}
