// Package deals carries the built-in expiring-deals catalog. The deals
// marketplace has no backend endpoint yet; the client ships a fixed set of
// offers whose expiry dates track the current day so the freshness badges
// stay meaningful.
package deals

import (
	"time"

	"github.com/pantrypal/pantrypal/internal/client/models"
)

func intPtr(n int) *int { return &n }

// Catalog returns the built-in deal list. Expiry dates are generated
// relative to now so each offer keeps its intended urgency.
func Catalog(now time.Time) []models.ExpiringDeal {
	day := func(n int) string {
		return now.AddDate(0, 0, n).Format("2006-01-02")
	}

	return []models.ExpiringDeal{
		{
			ID:              "1",
			Name:            "Organic Milk 1L",
			Image:           "/deals/milk.png",
			ExpiryDate:      day(1),
			OriginalPrice:   4.99,
			DiscountedPrice: 2.49,
			Retailer:        models.Retailer{Name: "FreshMart", Location: "123 Main St"},
			Category:        "dairy",
			QuantityLeft:    intPtr(7),
		},
		{
			ID:              "2",
			Name:            "Banana Bundle",
			Image:           "/deals/bananas.png",
			ExpiryDate:      day(2),
			OriginalPrice:   3.99,
			DiscountedPrice: 1.99,
			Retailer:        models.Retailer{Name: "Green Grocer", Location: "456 Oak Ave"},
			Category:        "produce",
			QuantityLeft:    intPtr(12),
		},
		{
			ID:              "3",
			Name:            "Whole Wheat Bread",
			Image:           "/deals/bread.png",
			ExpiryDate:      day(1),
			OriginalPrice:   2.99,
			DiscountedPrice: 1.49,
			Retailer:        models.Retailer{Name: "Corner Bakery", Location: "789 Elm St"},
			Category:        "bakery",
			QuantityLeft:    intPtr(3),
		},
		{
			ID:              "4",
			Name:            "Greek Yogurt 4-pack",
			Image:           "/deals/yogurt.png",
			ExpiryDate:      day(3),
			OriginalPrice:   6.99,
			DiscountedPrice: 3.99,
			Retailer:        models.Retailer{Name: "FreshMart", Location: "123 Main St"},
			Category:        "dairy",
			QuantityLeft:    intPtr(0),
		},
	}
}

// Find returns the catalog deal with the given id.
func Find(catalog []models.ExpiringDeal, id string) (models.ExpiringDeal, bool) {
	for _, d := range catalog {
		if d.ID == id {
			return d, true
		}
	}
	return models.ExpiringDeal{}, false
}
