package pricing

import "strings"

// Coupon effects.
const (
	EffectPercentOff   = "percent_off"
	EffectFreeShipping = "free_shipping"
)

// Coupon is a named discount rule. Codes match case-insensitively.
type Coupon struct {
	Code    string  `json:"code"`
	Effect  string  `json:"effect"`
	Percent float64 `json:"percent,omitempty"` // fraction of subtotal, only for percent_off
}

// Ruleset is a fixed table of coupon rules keyed by lowercased code. In a
// real deployment this would be a backend lookup per store; the reference
// storefront hardcodes the same two codes DefaultRuleset returns.
type Ruleset map[string]Coupon

// DefaultRuleset returns the reference coupon table.
func DefaultRuleset() Ruleset {
	return Ruleset{
		"discount20":    {Code: "discount20", Effect: EffectPercentOff, Percent: 0.20},
		"free-shipping": {Code: "free-shipping", Effect: EffectFreeShipping},
	}
}

// Lookup resolves a coupon code. An unknown code is not an error, it simply
// means no discount applies; the second return value distinguishes the two.
func (r Ruleset) Lookup(code string) (*Coupon, bool) {
	coupon, ok := r[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return nil, false
	}
	return &coupon, true
}
