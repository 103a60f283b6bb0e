package services_test

import (
	"testing"

	"storeup/internal/models"
	"storeup/internal/repositories"
	"storeup/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestCreateStoreSetsOwner(t *testing.T) {
	svc := services.NewStoreService(repositories.NewMockStoreRepository())

	store := &models.Store{Name: "Alice's Shop", Domain: "alice.shop", Currency: "EGP"}
	assert.NoError(t, svc.CreateStore(store, "merchant-alice"))
	assert.NotEmpty(t, store.ID)
	assert.Equal(t, "merchant-alice", store.OwnerID)

	stored, err := svc.GetStoreByID(store.ID)
	assert.NoError(t, err)
	assert.Equal(t, "merchant-alice", stored.OwnerID)
}

func TestGetMerchantStoresOnlyListsOwned(t *testing.T) {
	svc := services.NewStoreService(repositories.NewMockStoreRepository())

	alice := &models.Store{Name: "Alice's Shop", Domain: "alice.shop"}
	bob := &models.Store{Name: "Bob's Shop", Domain: "bob.shop"}
	assert.NoError(t, svc.CreateStore(alice, "merchant-alice"))
	assert.NoError(t, svc.CreateStore(bob, "merchant-bob"))

	stores, err := svc.GetMerchantStores("merchant-alice")
	assert.NoError(t, err)
	assert.Len(t, stores, 1)
	assert.Equal(t, alice.ID, stores[0].ID)
}

func TestRequireOwnerRejectsOtherMerchants(t *testing.T) {
	svc := services.NewStoreService(repositories.NewMockStoreRepository())

	store := &models.Store{Name: "Alice's Shop", Domain: "alice.shop"}
	assert.NoError(t, svc.CreateStore(store, "merchant-alice"))

	owned, err := svc.RequireOwner(store.ID, "merchant-alice")
	assert.NoError(t, err)
	assert.Equal(t, store.ID, owned.ID)

	_, err = svc.RequireOwner(store.ID, "merchant-bob")
	assert.ErrorIs(t, err, services.ErrNotStoreOwner)

	_, err = svc.RequireOwner("missing-store", "merchant-alice")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrNotStoreOwner)
}

func TestUpdateStoreEnforcesOwnership(t *testing.T) {
	svc := services.NewStoreService(repositories.NewMockStoreRepository())

	store := &models.Store{Name: "Alice's Shop", Domain: "alice.shop"}
	assert.NoError(t, svc.CreateStore(store, "merchant-alice"))

	hijack := &models.Store{ID: store.ID, Name: "Bob's Now", Domain: "alice.shop"}
	err := svc.UpdateStore(hijack, "merchant-bob")
	assert.ErrorIs(t, err, services.ErrNotStoreOwner)

	stored, err := svc.GetStoreByID(store.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Alice's Shop", stored.Name)

	// A legitimate update cannot hand the store to someone else either.
	update := &models.Store{ID: store.ID, Name: "Alice's Shop v2", Domain: "alice.shop", OwnerID: "merchant-bob"}
	assert.NoError(t, svc.UpdateStore(update, "merchant-alice"))

	stored, err = svc.GetStoreByID(store.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Alice's Shop v2", stored.Name)
	assert.Equal(t, "merchant-alice", stored.OwnerID)
}
