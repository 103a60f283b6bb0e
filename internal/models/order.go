package models

import "time"

// Order statuses, in the order the merchant dashboard moves them through.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// PriceBreakdown is the derived pricing of a cart: always recomputed from the
// items and active coupon, never persisted on the cart itself. An Order keeps
// a frozen copy taken at submission time.
type PriceBreakdown struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Shipping float64 `json:"shipping_cost"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// OrderItem is a line item frozen into an order. Price is the effective unit
// price at the time of submission.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"` // Price at the time of order
	Variant   string  `json:"variant,omitempty"`
}

// ShippingAddress is where the order is delivered.
type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Order is the immutable record created at checkout. Items and Breakdown are
// snapshots; later cart mutations never change a stored order.
type Order struct {
	ID            string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderNumber   string          `json:"order_number" gorm:"uniqueIndex;type:varchar(20)"`
	StoreID       string          `json:"store_id" gorm:"index;type:varchar(36)"`
	CustomerID    string          `json:"customer_id,omitempty" gorm:"type:varchar(36)"` // empty for guest checkout
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CustomerPhone string          `json:"customer_phone"`
	Shipping      ShippingAddress `json:"shipping_address" gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentMethod string          `json:"payment_method" gorm:"type:varchar(30)"`
	Items         []OrderItem     `json:"items" gorm:"serializer:json"`
	Breakdown     PriceBreakdown  `json:"breakdown" gorm:"embedded"`
	CouponCode    string          `json:"coupon_code,omitempty" gorm:"type:varchar(50)"`
	Status        string          `json:"status" gorm:"type:varchar(20)"` // e.g. "pending", "processing", "shipped", "delivered", "cancelled"
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CheckoutForm carries the buyer input collected by the checkout page.
// Validation reports every failing field at once so the view layer can
// highlight them in one pass.
type CheckoutForm struct {
	FullName      string `json:"full_name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,phonedigits"`
	Address       string `json:"address" validate:"required"`
	City          string `json:"city" validate:"required"`
	PostalCode    string `json:"postal_code" validate:"required"`
	Country       string `json:"country"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=creditCard cashOnDelivery"`
	CardNumber    string `json:"card_number" validate:"required_if=PaymentMethod creditCard"`
	CardExpiry    string `json:"card_expiry" validate:"required_if=PaymentMethod creditCard"`
	CardCVC       string `json:"card_cvc" validate:"required_if=PaymentMethod creditCard"`
}
