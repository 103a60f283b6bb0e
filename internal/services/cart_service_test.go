package services_test

import (
	"errors"
	"testing"

	"storeup/internal/models"
	"storeup/internal/pricing"
	"storeup/internal/repositories"
	"storeup/internal/services"

	"github.com/stretchr/testify/assert"
)

const (
	testStoreID   = "store-1"
	testSessionID = "session-1"
)

func newCartService(repo repositories.CartRepository) *services.CartService {
	return services.NewCartService(repo, pricing.DefaultRuleset(), pricing.DefaultOptions())
}

func hoodieProduct() *models.Product {
	sale := 80.0
	return &models.Product{
		ID:        "p1",
		StoreID:   testStoreID,
		Name:      "Hoodie",
		Price:     100,
		SalePrice: &sale,
		Stock:     10,
	}
}

func TestAddItemMergesDuplicates(t *testing.T) {
	svc := newCartService(repositories.NewMockCartRepository())

	_, err := svc.AddItem(testStoreID, testSessionID, hoodieProduct(), 1, "")
	assert.NoError(t, err)
	cart, err := svc.AddItem(testStoreID, testSessionID, hoodieProduct(), 2, "")
	assert.NoError(t, err)

	assert.Len(t, cart.Items, 1, "repeated adds of the same product must merge")
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestAddItemVariantsStaySeparate(t *testing.T) {
	svc := newCartService(repositories.NewMockCartRepository())

	_, err := svc.AddItem(testStoreID, testSessionID, hoodieProduct(), 1, "red / M")
	assert.NoError(t, err)
	cart, err := svc.AddItem(testStoreID, testSessionID, hoodieProduct(), 1, "blue / L")
	assert.NoError(t, err)

	assert.Len(t, cart.Items, 2)
}

func TestAddItemSnapshotsPrices(t *testing.T) {
	svc := newCartService(repositories.NewMockCartRepository())

	product := hoodieProduct()
	_, err := svc.AddItem(testStoreID, testSessionID, product, 1, "")
	assert.NoError(t, err)

	// A later catalog price change must not leak into the cart.
	product.Price = 500
	*product.SalePrice = 400

	cart := svc.GetCart(testStoreID, testSessionID)
	assert.Equal(t, 100.0, cart.Items[0].UnitPrice)
	assert.Equal(t, 80.0, *cart.Items[0].UnitSalePrice)
}

func TestSetQuantityZeroRemoves(t *testing.T) {
	svc := newCartService(repositories.NewMockCartRepository())
	_, err := svc.AddItem(testStoreID, testSessionID, hoodieProduct(), 2, "")
	assert.NoError(t, err)

	cart, err := svc.SetQuantity(testStoreID, testSessionID, "p1", "", 0)
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)

	// Repeating on the now-absent item is a no-op producing the same cart.
	cart, err = svc.SetQuantity(testStoreID, testSessionID, "p1", "", 0)
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestQuantityFloor(t *testing.T) {
	svc := newCartService(repositories.NewMockCartRepository())
	_, err := svc.AddItem(testStoreID, testSessionID, hoodieProduct(), 2, "")
	assert.NoError(t, err)

	cart, err := svc.DecrementQuantity(testStoreID, testSessionID, "p1", "")
	assert.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	// Decrementing from 1 removes the item; never a stored zero or negative.
	cart, err = svc.DecrementQuantity(testStoreID, testSessionID, "p1", "")
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)

	cart, err = svc.DecrementQuantity(testStoreID, testSessionID, "p1", "")
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestRemoveItemIdempotent(t *testing.T) {
	svc := newCartService(repositories.NewMockCartRepository())
	_, err := svc.AddItem(testStoreID, testSessionID, hoodieProduct(), 1, "")
	assert.NoError(t, err)

	first, err := svc.RemoveItem(testStoreID, testSessionID, "p1", "")
	assert.NoError(t, err)
	second, err := svc.RemoveItem(testStoreID, testSessionID, "p1", "")
	assert.NoError(t, err)

	assert.Equal(t, first.Items, second.Items)
	assert.Empty(t, second.Items)
}

func TestClearRemovesPersistedRecord(t *testing.T) {
	repo := repositories.NewMockCartRepository()
	svc := newCartService(repo)
	_, err := svc.AddItem(testStoreID, testSessionID, hoodieProduct(), 1, "")
	assert.NoError(t, err)

	assert.NoError(t, svc.Clear(testStoreID, testSessionID))
	cleared := svc.GetCart(testStoreID, testSessionID)
	assert.True(t, cleared.IsEmpty())

	payload, err := repo.Get("storeup_cart:" + testStoreID + ":" + testSessionID)
	assert.NoError(t, err)
	assert.Nil(t, payload)
}

func TestPersistedRoundTrip(t *testing.T) {
	repo := repositories.NewMockCartRepository()
	svc := newCartService(repo)

	other := &models.Product{ID: "p2", StoreID: testStoreID, Name: "Mug", Price: 25}
	_, err := svc.AddItem(testStoreID, testSessionID, hoodieProduct(), 2, "")
	assert.NoError(t, err)
	_, err = svc.AddItem(testStoreID, testSessionID, other, 1, "")
	assert.NoError(t, err)
	before := svc.GetCart(testStoreID, testSessionID)

	// A fresh service over the same storage stands in for a page reload.
	restored := newCartService(repo).GetCart(testStoreID, testSessionID)

	assert.Equal(t, before.Items, restored.Items, "items, order and prices must survive a reload")
}

func TestMalformedPersistedCartStartsEmpty(t *testing.T) {
	repo := repositories.NewMockCartRepository()
	repo.Seed("storeup_cart:"+testStoreID+":"+testSessionID, []byte("{not json"))

	svc := newCartService(repo)
	cart := svc.GetCart(testStoreID, testSessionID)
	assert.True(t, cart.IsEmpty(), "corrupt persisted state is recoverable, never fatal")

	// The cart stays fully usable afterwards.
	cart, err := svc.AddItem(testStoreID, testSessionID, hoodieProduct(), 1, "")
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestPersistFailureKeepsMemoryCartValid(t *testing.T) {
	repo := repositories.NewMockCartRepository()
	repo.FailPuts = true
	repo.FailErr = errors.New("storage quota exceeded")
	svc := newCartService(repo)

	cart, err := svc.AddItem(testStoreID, testSessionID, hoodieProduct(), 1, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "storage quota exceeded")

	// The mutation itself stuck in memory.
	assert.Len(t, cart.Items, 1)
	assert.Len(t, svc.GetCart(testStoreID, testSessionID).Items, 1)
}

func TestCartsScopedPerStoreAndSession(t *testing.T) {
	svc := newCartService(repositories.NewMockCartRepository())

	_, err := svc.AddItem("store-a", "sess", hoodieProduct(), 1, "")
	assert.NoError(t, err)

	otherStore := svc.GetCart("store-b", "sess")
	assert.True(t, otherStore.IsEmpty())
	otherSession := svc.GetCart("store-a", "other-sess")
	assert.True(t, otherSession.IsEmpty())
	assert.Len(t, svc.GetCart("store-a", "sess").Items, 1)
}

func TestApplyCoupon(t *testing.T) {
	svc := newCartService(repositories.NewMockCartRepository())
	_, err := svc.AddItem(testStoreID, testSessionID, hoodieProduct(), 2, "")
	assert.NoError(t, err)

	_, err = svc.ApplyCoupon(testStoreID, testSessionID, "bogus")
	assert.ErrorIs(t, err, services.ErrUnknownCoupon)
	assert.Equal(t, 0.0, svc.Breakdown(testStoreID, testSessionID).Discount)

	coupon, err := svc.ApplyCoupon(testStoreID, testSessionID, "DISCOUNT20")
	assert.NoError(t, err)
	assert.Equal(t, "discount20", coupon.Code)
	assert.InDelta(t, 32.0, svc.Breakdown(testStoreID, testSessionID).Discount, 1e-9)

	// Applying another coupon replaces the first.
	_, err = svc.ApplyCoupon(testStoreID, testSessionID, "free-shipping")
	assert.NoError(t, err)
	breakdown := svc.Breakdown(testStoreID, testSessionID)
	assert.Equal(t, 15.0, breakdown.Discount)
	assert.Equal(t, 0.0, breakdown.Shipping)

	svc.RemoveCoupon(testStoreID, testSessionID)
	assert.Equal(t, 0.0, svc.Breakdown(testStoreID, testSessionID).Discount)
}

func TestBreakdownReferenceCart(t *testing.T) {
	svc := newCartService(repositories.NewMockCartRepository())
	_, err := svc.AddItem(testStoreID, testSessionID, hoodieProduct(), 2, "")
	assert.NoError(t, err)

	got := svc.Breakdown(testStoreID, testSessionID)
	assert.Equal(t, 160.0, got.Subtotal)
	assert.Equal(t, 15.0, got.Shipping)
	assert.InDelta(t, 22.4, got.Tax, 1e-9)
	assert.InDelta(t, 197.4, got.Total, 1e-9)
}

func TestSubscribersNotifiedAfterMutations(t *testing.T) {
	svc := newCartService(repositories.NewMockCartRepository())

	var seen []int
	svc.Subscribe(func(cart models.Cart) {
		seen = append(seen, cart.ItemCount())
	})

	_, err := svc.AddItem(testStoreID, testSessionID, hoodieProduct(), 1, "")
	assert.NoError(t, err)
	_, err = svc.IncrementQuantity(testStoreID, testSessionID, "p1", "")
	assert.NoError(t, err)
	_, err = svc.RemoveItem(testStoreID, testSessionID, "p1", "")
	assert.NoError(t, err)

	assert.Equal(t, []int{1, 2, 0}, seen)
}

func TestSnapshotIsInternallyConsistent(t *testing.T) {
	svc := newCartService(repositories.NewMockCartRepository())
	_, err := svc.AddItem(testStoreID, testSessionID, hoodieProduct(), 1, "")
	assert.NoError(t, err)

	// Mutate the cart from another goroutine while snapshotting. The items
	// and the breakdown must always describe the same moment.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			if _, err := svc.IncrementQuantity(testStoreID, testSessionID, "p1", ""); err != nil {
				return
			}
		}
	}()

	for i := 0; i < 200; i++ {
		cart, breakdown := svc.Snapshot(testStoreID, testSessionID)
		recomputed := pricing.Breakdown(cart.Items, nil, pricing.DefaultOptions())
		assert.Equal(t, recomputed, breakdown)
	}
	<-done
}
