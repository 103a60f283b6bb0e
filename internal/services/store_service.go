package services

import (
	"errors"
	"fmt"

	"storeup/internal/models"
	"storeup/internal/repositories"
)

// ErrNotStoreOwner rejects a dashboard operation on a store the signed-in
// merchant does not own.
var ErrNotStoreOwner = errors.New("store does not belong to this merchant")

// StoreService handles business logic related to storefront records,
// including the ownership checks the dashboard relies on.
type StoreService struct {
	repo repositories.StoreRepository
}

// NewStoreService creates a new StoreService.
func NewStoreService(repo repositories.StoreRepository) *StoreService {
	return &StoreService{
		repo: repo,
	}
}

// GetAllStores retrieves all storefronts.
func (s *StoreService) GetAllStores() ([]models.Store, error) {
	return s.repo.GetAll()
}

// GetStoreByID retrieves a storefront by its ID.
func (s *StoreService) GetStoreByID(id string) (*models.Store, error) {
	return s.repo.GetByID(id)
}

// GetStoreByDomain resolves a storefront by its unique domain.
func (s *StoreService) GetStoreByDomain(domain string) (*models.Store, error) {
	return s.repo.GetByDomain(domain)
}

// GetMerchantStores retrieves the storefronts owned by one merchant.
func (s *StoreService) GetMerchantStores(ownerID string) ([]models.Store, error) {
	return s.repo.GetByOwner(ownerID)
}

// CreateStore creates a new storefront owned by the given merchant.
func (s *StoreService) CreateStore(store *models.Store, ownerID string) error {
	store.OwnerID = ownerID
	return s.repo.Create(store)
}

// UpdateStore updates a storefront after confirming the merchant owns it.
// The owner cannot be reassigned through an update.
func (s *StoreService) UpdateStore(store *models.Store, ownerID string) error {
	if _, err := s.RequireOwner(store.ID, ownerID); err != nil {
		return err
	}
	store.OwnerID = ownerID
	return s.repo.Update(store)
}

// RequireOwner loads a store and confirms the merchant owns it. It returns
// ErrNotStoreOwner on a mismatch, so callers can map it to a 403.
func (s *StoreService) RequireOwner(storeID, ownerID string) (*models.Store, error) {
	store, err := s.repo.GetByID(storeID)
	if err != nil {
		return nil, fmt.Errorf("store %s not found: %w", storeID, err)
	}
	if store.OwnerID != ownerID {
		return nil, ErrNotStoreOwner
	}
	return store, nil
}
