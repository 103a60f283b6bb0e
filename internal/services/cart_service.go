package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"storeup/internal/models"
	"storeup/internal/pricing"
	"storeup/internal/repositories"
)

// ErrUnknownCoupon signals a coupon code with no matching rule. It is a
// user-facing condition, not a pricing failure: the cart keeps pricing
// without a discount.
var ErrUnknownCoupon = errors.New("coupon code not recognized")

// CartSubscriber is notified with a snapshot of the cart after every
// completed mutation.
type CartSubscriber func(cart models.Cart)

// CartService owns the canonical cart of each (store, session) pair. It is
// the only component that mutates carts; pricing and handlers read snapshots.
// Every mutation is written through to the cart repository before the call
// returns, so a reload never loses a completed mutation.
type CartService struct {
	repo    repositories.CartRepository
	coupons pricing.Ruleset
	opts    pricing.Options

	mu          sync.Mutex
	carts       map[string]*models.Cart
	subscribers []CartSubscriber
}

// NewCartService creates a new CartService.
func NewCartService(repo repositories.CartRepository, coupons pricing.Ruleset, opts pricing.Options) *CartService {
	return &CartService{
		repo:    repo,
		coupons: coupons,
		opts:    opts,
		carts:   make(map[string]*models.Cart),
	}
}

// Subscribe registers a change observer. Subscribers run after the mutation
// has been applied and persisted, outside the service lock.
func (s *CartService) Subscribe(fn CartSubscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func cartKey(storeID, sessionID string) string {
	return fmt.Sprintf("storeup_cart:%s:%s", storeID, sessionID)
}

// cartLocked returns the canonical cart, restoring it from the repository on
// first access. An absent or malformed persisted payload is recoverable: the
// session starts with an empty cart instead of failing.
func (s *CartService) cartLocked(storeID, sessionID string) *models.Cart {
	key := cartKey(storeID, sessionID)
	if cart, ok := s.carts[key]; ok {
		return cart
	}

	cart := &models.Cart{StoreID: storeID, SessionID: sessionID}
	payload, err := s.repo.Get(key)
	if err != nil {
		log.Printf("Failed to read persisted cart %s, starting empty: %v", key, err)
	} else if len(payload) > 0 {
		var items []models.LineItem
		if err := json.Unmarshal(payload, &items); err != nil {
			log.Printf("Persisted cart %s is malformed, starting empty: %v", key, err)
		} else {
			cart.Items = items
		}
	}
	s.carts[key] = cart
	return cart
}

// persistLocked writes the cart's items through to durable storage. On
// failure the in-memory cart stays valid; the caller surfaces the error as a
// non-fatal condition.
func (s *CartService) persistLocked(cart *models.Cart) error {
	payload, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}
	if err := s.repo.Put(cartKey(cart.StoreID, cart.SessionID), payload); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

func copyCart(cart *models.Cart) models.Cart {
	copied := *cart
	copied.Items = make([]models.LineItem, len(cart.Items))
	for i, item := range cart.Items {
		copied.Items[i] = item
		if item.UnitSalePrice != nil {
			sale := *item.UnitSalePrice
			copied.Items[i].UnitSalePrice = &sale
		}
	}
	return copied
}

func (s *CartService) notify(snapshot models.Cart) {
	s.mu.Lock()
	subs := make([]CartSubscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snapshot)
	}
}

// GetCart returns a snapshot of the session's cart, restoring it from
// storage if needed.
func (s *CartService) GetCart(storeID, sessionID string) models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCart(s.cartLocked(storeID, sessionID))
}

// AddItem puts a product into the cart, snapshotting its current prices. An
// existing line for the same product and variant has its quantity increased
// instead of a duplicate line being added. A non-positive quantity defaults
// to 1.
func (s *CartService) AddItem(storeID, sessionID string, product *models.Product, quantity int, variant string) (models.Cart, error) {
	if quantity <= 0 {
		quantity = 1
	}

	line := models.LineItem{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  quantity,
		ImageURL:  product.ImageURL,
		Variant:   variant,
	}
	if product.SalePrice != nil {
		sale := *product.SalePrice
		line.UnitSalePrice = &sale
	}

	s.mu.Lock()
	cart := s.cartLocked(storeID, sessionID)
	merged := false
	for i := range cart.Items {
		if cart.Items[i].Key() == line.Key() {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, line)
	}
	err := s.persistLocked(cart)
	snapshot := copyCart(cart)
	s.mu.Unlock()

	s.notify(snapshot)
	return snapshot, err
}

// SetQuantity sets a line item's quantity. A quantity of zero or below
// removes the item; the cart never stores a non-positive quantity. Setting
// the quantity of an absent item is a no-op.
func (s *CartService) SetQuantity(storeID, sessionID, productID, variant string, quantity int) (models.Cart, error) {
	key := models.LineItem{ProductID: productID, Variant: variant}.Key()

	s.mu.Lock()
	cart := s.cartLocked(storeID, sessionID)
	for i := range cart.Items {
		if cart.Items[i].Key() != key {
			continue
		}
		if quantity <= 0 {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		} else {
			cart.Items[i].Quantity = quantity
		}
		break
	}
	err := s.persistLocked(cart)
	snapshot := copyCart(cart)
	s.mu.Unlock()

	s.notify(snapshot)
	return snapshot, err
}

// IncrementQuantity raises a line item's quantity by one.
func (s *CartService) IncrementQuantity(storeID, sessionID, productID, variant string) (models.Cart, error) {
	return s.adjustQuantity(storeID, sessionID, productID, variant, +1)
}

// DecrementQuantity lowers a line item's quantity by one; decrementing from
// 1 removes the item.
func (s *CartService) DecrementQuantity(storeID, sessionID, productID, variant string) (models.Cart, error) {
	return s.adjustQuantity(storeID, sessionID, productID, variant, -1)
}

func (s *CartService) adjustQuantity(storeID, sessionID, productID, variant string, delta int) (models.Cart, error) {
	key := models.LineItem{ProductID: productID, Variant: variant}.Key()

	s.mu.Lock()
	cart := s.cartLocked(storeID, sessionID)
	for i := range cart.Items {
		if cart.Items[i].Key() != key {
			continue
		}
		next := cart.Items[i].Quantity + delta
		if next <= 0 {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		} else {
			cart.Items[i].Quantity = next
		}
		break
	}
	err := s.persistLocked(cart)
	snapshot := copyCart(cart)
	s.mu.Unlock()

	s.notify(snapshot)
	return snapshot, err
}

// RemoveItem removes a line item unconditionally. Removing an absent item is
// not an error; the operation is idempotent.
func (s *CartService) RemoveItem(storeID, sessionID, productID, variant string) (models.Cart, error) {
	key := models.LineItem{ProductID: productID, Variant: variant}.Key()

	s.mu.Lock()
	cart := s.cartLocked(storeID, sessionID)
	for i := range cart.Items {
		if cart.Items[i].Key() == key {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			break
		}
	}
	err := s.persistLocked(cart)
	snapshot := copyCart(cart)
	s.mu.Unlock()

	s.notify(snapshot)
	return snapshot, err
}

// Clear empties the cart, drops the active coupon and removes the persisted
// record.
func (s *CartService) Clear(storeID, sessionID string) error {
	s.mu.Lock()
	cart := s.cartLocked(storeID, sessionID)
	cart.Items = nil
	cart.CouponCode = ""
	err := s.repo.Delete(cartKey(storeID, sessionID))
	snapshot := copyCart(cart)
	s.mu.Unlock()

	s.notify(snapshot)
	if err != nil {
		return fmt.Errorf("failed to remove persisted cart: %w", err)
	}
	return nil
}

// ApplyCoupon activates a coupon on the cart, replacing any previous one. An
// unrecognized code returns ErrUnknownCoupon and leaves the active coupon
// unchanged. The active coupon is session state, not persisted with the
// items.
func (s *CartService) ApplyCoupon(storeID, sessionID, code string) (*pricing.Coupon, error) {
	coupon, ok := s.coupons.Lookup(code)
	if !ok {
		return nil, ErrUnknownCoupon
	}

	s.mu.Lock()
	cart := s.cartLocked(storeID, sessionID)
	cart.CouponCode = coupon.Code
	snapshot := copyCart(cart)
	s.mu.Unlock()

	s.notify(snapshot)
	return coupon, nil
}

// RemoveCoupon clears the active coupon, if any.
func (s *CartService) RemoveCoupon(storeID, sessionID string) {
	s.mu.Lock()
	cart := s.cartLocked(storeID, sessionID)
	cart.CouponCode = ""
	snapshot := copyCart(cart)
	s.mu.Unlock()

	s.notify(snapshot)
}

// Breakdown prices the current cart with its active coupon. The result is
// derived fresh on every call and never stored.
func (s *CartService) Breakdown(storeID, sessionID string) models.PriceBreakdown {
	_, breakdown := s.Snapshot(storeID, sessionID)
	return breakdown
}

// Snapshot returns the cart and its price breakdown as one consistent pair:
// the copy is taken under a single lock acquisition, so a concurrent
// mutation can never make the returned items and breakdown disagree.
// Checkout prices orders from this.
func (s *CartService) Snapshot(storeID, sessionID string) (models.Cart, models.PriceBreakdown) {
	s.mu.Lock()
	cart := copyCart(s.cartLocked(storeID, sessionID))
	s.mu.Unlock()

	var coupon *pricing.Coupon
	if cart.CouponCode != "" {
		coupon, _ = s.coupons.Lookup(cart.CouponCode)
	}
	return cart, pricing.Breakdown(cart.Items, coupon, s.opts)
}
