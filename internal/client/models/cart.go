package models

// CartItem is one cart line. The ID is the deal id and is the unique key
// within a cart. Quantity stays within [1, MaxQuantity] on insertion;
// MaxQuantity nil means the deal reported no stock ceiling.
type CartItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	UnitPrice    float64 `json:"price"`
	RetailerName string  `json:"retailerName"`
	Quantity     int     `json:"quantity"`
	MaxQuantity  *int    `json:"maxQuantity,omitempty"`
}

// LineTotal is the item's contribution to the cart subtotal.
func (i CartItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}
