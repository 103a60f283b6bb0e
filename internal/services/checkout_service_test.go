package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"storeup/internal/models"
	"storeup/internal/repositories"
	"storeup/internal/services"
	"storeup/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPublisher is a mock implementation of services.OrderEventPublisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(exchange, routingKey string, body []byte) error {
	args := m.Called(exchange, routingKey, body)
	return args.Error(0)
}

func validForm() models.CheckoutForm {
	return models.CheckoutForm{
		FullName:      "Sara Adel",
		Email:         "sara@example.com",
		Phone:         "+20 100 123 4567",
		Address:       "12 Tahrir St",
		City:          "Cairo",
		PostalCode:    "11511",
		PaymentMethod: "cashOnDelivery",
	}
}

func newCheckout(orderRepo repositories.OrderRepository, pub services.OrderEventPublisher) (*services.CheckoutService, *services.CartService) {
	carts := newCartService(repositories.NewMockCartRepository())
	return services.NewCheckoutService(carts, orderRepo, pub, 5*time.Second), carts
}

func TestValidateCheckoutValidForm(t *testing.T) {
	svc, _ := newCheckout(repositories.NewMockOrderRepository(), nil)
	assert.Empty(t, svc.ValidateCheckout(validForm()))
}

func TestValidateCheckoutReportsAllViolationsAtOnce(t *testing.T) {
	svc, _ := newCheckout(repositories.NewMockOrderRepository(), nil)

	fieldErrs := svc.ValidateCheckout(models.CheckoutForm{PaymentMethod: "cashOnDelivery"})

	for _, field := range []string{"fullName", "email", "phone", "address", "city", "postalCode"} {
		assert.Contains(t, fieldErrs, field)
	}
}

func TestValidateCheckoutEmailAndPhone(t *testing.T) {
	svc, _ := newCheckout(repositories.NewMockOrderRepository(), nil)

	form := validForm()
	form.Email = "not-an-email"
	form.Phone = "12ab34"
	fieldErrs := svc.ValidateCheckout(form)

	assert.Contains(t, fieldErrs, "email")
	assert.Contains(t, fieldErrs, "phone")
	assert.Len(t, fieldErrs, 2)

	// Phone digits count after stripping separators: 8 is too short, 16 too long.
	form = validForm()
	form.Phone = "+1234 5678"
	assert.Contains(t, svc.ValidateCheckout(form), "phone")
	form.Phone = "1234567890123456"
	assert.Contains(t, svc.ValidateCheckout(form), "phone")
}

func TestValidateCheckoutCreditCardFields(t *testing.T) {
	svc, _ := newCheckout(repositories.NewMockOrderRepository(), nil)

	form := validForm()
	form.PaymentMethod = "creditCard"
	fieldErrs := svc.ValidateCheckout(form)
	assert.Contains(t, fieldErrs, "cardNumber")
	assert.Contains(t, fieldErrs, "cardExpiry")
	assert.Contains(t, fieldErrs, "cardCVC")

	form.CardNumber = "4111111111111111"
	form.CardExpiry = "12/28"
	form.CardCVC = "123"
	assert.Empty(t, svc.ValidateCheckout(form))
}

func TestSubmitSuccess(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	pub := new(MockPublisher)
	pub.On("Publish", rabbitmq.OrdersExchange, "order.created", mock.Anything).Return(nil).Once()

	svc, carts := newCheckout(orderRepo, pub)
	_, err := carts.AddItem(testStoreID, testSessionID, hoodieProduct(), 2, "")
	assert.NoError(t, err)
	_, err = carts.ApplyCoupon(testStoreID, testSessionID, "discount20")
	assert.NoError(t, err)

	order, err := svc.Submit(context.Background(), testStoreID, testSessionID, "", validForm())
	assert.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderNumber, "ECO-"))
	assert.Len(t, order.OrderNumber, 10)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, testStoreID, order.StoreID)
	assert.Equal(t, "Sara Adel", order.CustomerName)
	assert.Equal(t, "Egypt", order.Shipping.Country)
	assert.Equal(t, "discount20", order.CouponCode)

	// The order freezes effective prices and the breakdown at submit time.
	assert.Len(t, order.Items, 1)
	assert.Equal(t, 80.0, order.Items[0].Price)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 160.0, order.Breakdown.Subtotal)
	assert.InDelta(t, 165.4, order.Breakdown.Total, 1e-9)

	// Cart cleared exactly once, after the backend accepted the order.
	clearedCart := carts.GetCart(testStoreID, testSessionID)
	assert.True(t, clearedCart.IsEmpty())

	// The order is retrievable from the repository.
	stored, err := orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, order.OrderNumber, stored.OrderNumber)

	pub.AssertExpectations(t)
}

func TestSubmitEmptyCart(t *testing.T) {
	svc, _ := newCheckout(repositories.NewMockOrderRepository(), nil)

	order, err := svc.Submit(context.Background(), testStoreID, testSessionID, "", validForm())
	assert.ErrorIs(t, err, services.ErrEmptyCart)
	assert.Nil(t, order)
}

func TestSubmitInvalidFormDoesNotTouchBackend(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	svc, carts := newCheckout(orderRepo, nil)
	_, err := carts.AddItem(testStoreID, testSessionID, hoodieProduct(), 1, "")
	assert.NoError(t, err)

	order, err := svc.Submit(context.Background(), testStoreID, testSessionID, "", models.CheckoutForm{})
	assert.Nil(t, order)

	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "fullName")

	orders, err := orderRepo.GetAll(testStoreID)
	assert.NoError(t, err)
	assert.Empty(t, orders)
	assert.Len(t, carts.GetCart(testStoreID, testSessionID).Items, 1)
}

func TestFailedSubmissionPreservesCart(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	orderRepo.FailCreates = true
	orderRepo.FailErr = errors.New("backend unreachable")

	svc, carts := newCheckout(orderRepo, nil)
	_, err := carts.AddItem(testStoreID, testSessionID, hoodieProduct(), 2, "")
	assert.NoError(t, err)
	other := &models.Product{ID: "p2", StoreID: testStoreID, Name: "Mug", Price: 25}
	_, err = carts.AddItem(testStoreID, testSessionID, other, 1, "")
	assert.NoError(t, err)

	order, err := svc.Submit(context.Background(), testStoreID, testSessionID, "", validForm())
	assert.Nil(t, order)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "backend unreachable")

	// The shopper must not lose their cart to a failed submission.
	cart := carts.GetCart(testStoreID, testSessionID)
	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 3, cart.ItemCount())
}

func TestSubmitPublishFailureDoesNotFailOrder(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	pub := new(MockPublisher)
	pub.On("Publish", rabbitmq.OrdersExchange, "order.created", mock.Anything).Return(errors.New("broker down")).Once()

	svc, carts := newCheckout(orderRepo, pub)
	_, err := carts.AddItem(testStoreID, testSessionID, hoodieProduct(), 1, "")
	assert.NoError(t, err)

	order, err := svc.Submit(context.Background(), testStoreID, testSessionID, "", validForm())
	assert.NoError(t, err, "event publication is best-effort")
	assert.NotNil(t, order)
	clearedCart := carts.GetCart(testStoreID, testSessionID)
	assert.True(t, clearedCart.IsEmpty())
	pub.AssertExpectations(t)
}
