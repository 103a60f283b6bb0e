package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"storeup/internal/models"
	"storeup/internal/pricing"
	"storeup/internal/repositories"
	"storeup/pkg/rabbitmq"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ErrEmptyCart rejects a checkout attempt on a cart with no items.
var ErrEmptyCart = errors.New("cannot submit an order for an empty cart")

// ValidationError carries every failing checkout field at once so the view
// layer can highlight all of them in a single pass.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout form has %d invalid fields", len(e.Fields))
}

// OrderEventPublisher publishes order lifecycle events. A nil publisher is
// allowed; checkout then skips event publication.
type OrderEventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

var phoneDigits = regexp.MustCompile(`^\d{9,15}$`)

// CheckoutService validates checkout input, assembles immutable order
// snapshots and hands them to the order repository. Submission is atomic
// from the shopper's point of view: the cart is cleared only after the
// repository has accepted the order.
type CheckoutService struct {
	carts     *CartService
	orderRepo repositories.OrderRepository
	publisher OrderEventPublisher
	validate  *validator.Validate
	timeout   time.Duration
}

// NewCheckoutService creates a new CheckoutService. The submit timeout bounds
// the order-creation call so a stalled backend surfaces as a failure instead
// of hanging the checkout.
func NewCheckoutService(carts *CartService, orderRepo repositories.OrderRepository, publisher OrderEventPublisher, timeout time.Duration) *CheckoutService {
	v := validator.New()
	// Phone numbers must be 9 to 15 digits once "+" and spaces are stripped.
	_ = v.RegisterValidation("phonedigits", func(fl validator.FieldLevel) bool {
		cleaned := strings.NewReplacer("+", "", " ", "").Replace(fl.Field().String())
		return phoneDigits.MatchString(cleaned)
	})

	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &CheckoutService{
		carts:     carts,
		orderRepo: orderRepo,
		publisher: publisher,
		validate:  v,
		timeout:   timeout,
	}
}

// fieldKeys maps struct field names to the keys the checkout form uses.
var fieldKeys = map[string]string{
	"FullName":      "fullName",
	"Email":         "email",
	"Phone":         "phone",
	"Address":       "address",
	"City":          "city",
	"PostalCode":    "postalCode",
	"PaymentMethod": "paymentMethod",
	"CardNumber":    "cardNumber",
	"CardExpiry":    "cardExpiry",
	"CardCVC":       "cardCVC",
}

var fieldMessages = map[string]string{
	"fullName":      "Full name is required",
	"email":         "A valid email address is required",
	"phone":         "Phone number must be 9 to 15 digits",
	"address":       "Address is required",
	"city":          "City is required",
	"postalCode":    "Postal code is required",
	"paymentMethod": "A valid payment method is required",
	"cardNumber":    "Card number is required",
	"cardExpiry":    "Card expiry date is required",
	"cardCVC":       "Card security code is required",
}

// ValidateCheckout checks the form and reports every violation at once as a
// field-to-message map. An empty map means the form is valid. It never
// panics on malformed input.
func (s *CheckoutService) ValidateCheckout(form models.CheckoutForm) map[string]string {
	errsByField := make(map[string]string)
	if err := s.validate.Struct(form); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			errsByField["form"] = "Invalid checkout form"
			return errsByField
		}
		for _, e := range validationErrors {
			key, ok := fieldKeys[e.StructField()]
			if !ok {
				key = e.StructField()
			}
			if msg, ok := fieldMessages[key]; ok {
				errsByField[key] = msg
			} else {
				errsByField[key] = fmt.Sprintf("Field '%s' failed on the '%s' rule", key, e.Tag())
			}
		}
	}
	return errsByField
}

// GenerateOrderNumber produces a human-readable order number in the
// storefront's ECO-NNNNNN format.
func GenerateOrderNumber() string {
	return fmt.Sprintf("ECO-%d", 100000+rand.Intn(900000))
}

// Submit runs the full submission step: validate, snapshot, hand off, clear.
// On any failure the cart is left intact so the shopper can retry; retries
// are always user-initiated, never automatic. customerID is empty for guest
// checkout.
func (s *CheckoutService) Submit(ctx context.Context, storeID, sessionID, customerID string, form models.CheckoutForm) (*models.Order, error) {
	if fieldErrs := s.ValidateCheckout(form); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	// One snapshot under one lock: the order's items and breakdown must come
	// from the same cart state even if the shopper mutates it mid-checkout.
	cart, breakdown := s.carts.Snapshot(storeID, sessionID)
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	country := form.Country
	if country == "" {
		country = "Egypt"
	}

	order := &models.Order{
		ID:            uuid.New().String(),
		OrderNumber:   GenerateOrderNumber(),
		StoreID:       storeID,
		CustomerID:    customerID,
		CustomerName:  form.FullName,
		CustomerEmail: form.Email,
		CustomerPhone: form.Phone,
		Shipping: models.ShippingAddress{
			Address:    form.Address,
			City:       form.City,
			PostalCode: form.PostalCode,
			Country:    country,
		},
		PaymentMethod: form.PaymentMethod,
		Items:         snapshotItems(cart.Items),
		Breakdown:     breakdown,
		CouponCode:    cart.CouponCode,
		Status:        models.OrderStatusPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.orderRepo.Create(ctx, order); err != nil {
		// The cart must survive a failed submission.
		return nil, fmt.Errorf("order submission failed: %w", err)
	}

	s.publishOrderCreated(order)

	// Clear exactly once, after the backend accepted the order. A failed
	// clear is logged but does not fail the submission: the order exists.
	if err := s.carts.Clear(storeID, sessionID); err != nil {
		log.Printf("Order %s placed but cart cleanup failed: %v", order.OrderNumber, err)
	}

	return order, nil
}

func snapshotItems(items []models.LineItem) []models.OrderItem {
	snapshot := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		snapshot = append(snapshot, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     pricing.EffectivePrice(item),
			Variant:   item.Variant,
		})
	}
	return snapshot
}

// publishOrderCreated emits an order.created event. Publication is
// best-effort; a broker outage never fails a placed order.
func (s *CheckoutService) publishOrderCreated(order *models.Order) {
	if s.publisher == nil {
		log.Println("Event publisher is not configured. Skipping order event publication.")
		return
	}

	event := map[string]interface{}{
		"orderID":     order.ID,
		"orderNumber": order.OrderNumber,
		"storeID":     order.StoreID,
		"status":      order.Status,
		"total":       order.Breakdown.Total,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order event to JSON: %v", err)
		return
	}
	if err := s.publisher.Publish(rabbitmq.OrdersExchange, "order.created", body); err != nil {
		log.Printf("Warning: Failed to publish order created event for order %s: %v", order.OrderNumber, err)
	} else {
		log.Printf("Successfully published order created event for order %s", order.OrderNumber)
	}
}
