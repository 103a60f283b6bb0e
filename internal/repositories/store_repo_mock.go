package repositories

import (
	"fmt"
	"sync"

	"storeup/internal/models"

	"github.com/google/uuid"
)

// MockStoreRepository is an in-memory implementation of StoreRepository.
type MockStoreRepository struct {
	stores map[string]models.Store
	mu     sync.RWMutex
}

// NewMockStoreRepository creates a new instance of MockStoreRepository.
func NewMockStoreRepository() *MockStoreRepository {
	return &MockStoreRepository{
		stores: make(map[string]models.Store),
	}
}

// GetAll returns all stores.
func (r *MockStoreRepository) GetAll() ([]models.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	storeList := make([]models.Store, 0, len(r.stores))
	for _, s := range r.stores {
		storeList = append(storeList, s)
	}
	return storeList, nil
}

// GetByID returns a store by its ID.
func (r *MockStoreRepository) GetByID(id string) (*models.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	store, ok := r.stores[id]
	if !ok {
		return nil, fmt.Errorf("store with ID %s not found", id)
	}
	return &store, nil
}

// GetByOwner returns every store owned by the given merchant.
func (r *MockStoreRepository) GetByOwner(ownerID string) ([]models.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var owned []models.Store
	for _, s := range r.stores {
		if s.OwnerID == ownerID {
			owned = append(owned, s)
		}
	}
	return owned, nil
}

// GetByDomain returns a store by its domain.
func (r *MockStoreRepository) GetByDomain(domain string) (*models.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.stores {
		if s.Domain == domain {
			store := s
			return &store, nil
		}
	}
	return nil, fmt.Errorf("store with domain %s not found", domain)
}

// Create adds a new store.
func (r *MockStoreRepository) Create(store *models.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if store.ID == "" {
		store.ID = uuid.New().String()
	}
	r.stores[store.ID] = *store
	return nil
}

// Update modifies an existing store.
func (r *MockStoreRepository) Update(store *models.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.stores[store.ID]
	if !ok {
		return fmt.Errorf("store with ID %s not found for update", store.ID)
	}
	r.stores[store.ID] = *store
	return nil
}
