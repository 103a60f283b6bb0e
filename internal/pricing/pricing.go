// Package pricing computes price breakdowns for storefront carts. Everything
// in this package is pure: no I/O, no state, safe to call repeatedly and
// concurrently.
package pricing

import "storeup/internal/models"

// Defaults matching the reference storefront: a flat shipping fee and a 14%
// value-added tax, both overridable through Options.
const (
	DefaultShippingFlatRate = 15.0
	DefaultTaxRate          = 0.14
)

// Options configures the rates used by Breakdown. The zero value is NOT
// usable; obtain one from DefaultOptions and override as needed.
type Options struct {
	ShippingFlatRate float64
	TaxRate          float64
}

// DefaultOptions returns the reference rates.
func DefaultOptions() Options {
	return Options{
		ShippingFlatRate: DefaultShippingFlatRate,
		TaxRate:          DefaultTaxRate,
	}
}

// EffectivePrice returns the unit price a line item actually sells at. The
// sale price is preferred only when present and strictly lower than the
// regular price; a sale price at or above the regular price is inconsistent
// catalog data and is ignored. Negative prices collapse to zero rather than
// propagating into totals.
func EffectivePrice(item models.LineItem) float64 {
	price := item.UnitPrice
	if item.UnitSalePrice != nil && *item.UnitSalePrice < price {
		price = *item.UnitSalePrice
	}
	if price < 0 {
		price = 0
	}
	return price
}

// LineTotal returns the effective total for one line item. Negative
// quantities are treated as zero.
func LineTotal(item models.LineItem) float64 {
	qty := item.Quantity
	if qty < 0 {
		qty = 0
	}
	return EffectivePrice(item) * float64(qty)
}

// Subtotal sums the line totals of all items. Zero for an empty cart.
func Subtotal(items []models.LineItem) float64 {
	var sum float64
	for _, item := range items {
		sum += LineTotal(item)
	}
	return sum
}

// Shipping returns the shipping cost for a cart with the given subtotal.
// Empty carts ship nothing; a free-shipping coupon waives the fee.
func Shipping(subtotal float64, coupon *Coupon, opts Options) float64 {
	if subtotal <= 0 {
		return 0
	}
	if coupon != nil && coupon.Effect == EffectFreeShipping {
		return 0
	}
	return opts.ShippingFlatRate
}

// Tax computes tax on the pre-discount subtotal. The reference storefront
// taxes before the coupon discount is applied and that ordering is kept here.
func Tax(subtotal, rate float64) float64 {
	if subtotal <= 0 || rate <= 0 {
		return 0
	}
	return subtotal * rate
}

// Discount returns the amount a coupon subtracts. For a percentage coupon it
// is a share of the subtotal; for a free-shipping coupon it equals the
// shipping fee that would otherwise apply, so the discount line reflects the
// waived amount. No coupon, or a coupon on an empty cart, discounts nothing.
func Discount(subtotal float64, coupon *Coupon, opts Options) float64 {
	if coupon == nil || subtotal <= 0 {
		return 0
	}
	switch coupon.Effect {
	case EffectPercentOff:
		return subtotal * coupon.Percent
	case EffectFreeShipping:
		return opts.ShippingFlatRate
	default:
		return 0
	}
}

// Breakdown assembles the full price breakdown for a cart:
//
//	Total = Subtotal - Discount + Shipping + Tax
//
// The discount is clamped so an oversized coupon can never drive the total
// negative.
func Breakdown(items []models.LineItem, coupon *Coupon, opts Options) models.PriceBreakdown {
	subtotal := Subtotal(items)
	shipping := Shipping(subtotal, coupon, opts)
	tax := Tax(subtotal, opts.TaxRate)
	discount := Discount(subtotal, coupon, opts)

	// Clamp: the discount may consume at most the rest of the total.
	if max := subtotal + shipping + tax; discount > max {
		discount = max
	}
	if discount < 0 {
		discount = 0
	}

	return models.PriceBreakdown{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal - discount + shipping + tax,
	}
}
