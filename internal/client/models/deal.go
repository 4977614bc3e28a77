package models

// Retailer identifies the partner store offering a deal.
type Retailer struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// ExpiringDeal is a discounted close-to-expiry offer from a partner
// retailer. It is a read-only projection: the client never mutates it beyond
// the optimistic local cart effects.
type ExpiringDeal struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Image           string   `json:"image"`
	ExpiryDate      string   `json:"expiryDate"`
	OriginalPrice   float64  `json:"originalPrice"`
	DiscountedPrice float64  `json:"discountedPrice"`
	Retailer        Retailer `json:"retailer"`
	Category        string   `json:"category"`

	// QuantityLeft is the remaining stock; nil means the retailer did not
	// report a ceiling and the deal is treated as unbounded.
	QuantityLeft *int `json:"quantityLeft,omitempty"`
}

// SoldOut reports whether the deal has no remaining stock. A deal with an
// unknown ceiling is never sold out.
func (d ExpiringDeal) SoldOut() bool {
	return d.QuantityLeft != nil && *d.QuantityLeft <= 0
}
