package models

// LineItem is one product selection in a cart. Unit prices are snapshotted
// from the catalog at add-to-cart time; later catalog changes never alter a
// cart silently.
type LineItem struct {
	ProductID     string   `json:"product_id"`
	Name          string   `json:"name"`
	UnitPrice     float64  `json:"unit_price"`
	UnitSalePrice *float64 `json:"unit_sale_price,omitempty"`
	Quantity      int      `json:"quantity"`
	ImageURL      string   `json:"image_url,omitempty"`
	Variant       string   `json:"variant,omitempty"` // selected option, e.g. "red / XL"
}

// Key identifies the line item within its cart. Two additions of the same
// product with the same variant merge into one line.
func (li LineItem) Key() string {
	if li.Variant == "" {
		return li.ProductID
	}
	return li.ProductID + "|" + li.Variant
}

// Cart holds the line items of one (store, session) pair. Items keep
// insertion order for display; order carries no pricing significance.
type Cart struct {
	StoreID   string     `json:"store_id"`
	SessionID string     `json:"session_id"`
	Items     []LineItem `json:"items"`

	// CouponCode is the single active coupon, empty if none. It is session
	// state and is not part of the persisted payload.
	CouponCode string `json:"coupon_code,omitempty"`
}

// ItemCount returns the total number of units across all line items.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
