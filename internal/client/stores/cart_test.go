package stores

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pantrypal/pantrypal/internal/client/models"
)

func intPtr(n int) *int { return &n }

func milkDeal() models.ExpiringDeal {
	return models.ExpiringDeal{
		ID:              "1",
		Name:            "Organic Milk 1L",
		Image:           "/deals/milk.png",
		OriginalPrice:   4.99,
		DiscountedPrice: 2.49,
		Retailer:        models.Retailer{Name: "FreshMart", Location: "123 Main St"},
		Category:        "dairy",
		QuantityLeft:    intPtr(7),
	}
}

func breadDeal() models.ExpiringDeal {
	return models.ExpiringDeal{
		ID:              "3",
		Name:            "Whole Wheat Bread",
		DiscountedPrice: 1.49,
		Retailer:        models.Retailer{Name: "Corner Bakery"},
	}
}

func newCart(t *testing.T) *CartStore {
	t.Helper()
	return NewCartStore(setupDB(t))
}

func TestCartStore_AddNewLine(t *testing.T) {
	c := newCart(t)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, milkDeal(), 2))

	items := c.Items()
	require.Len(t, items, 1)
	require.Equal(t, "1", items[0].ID)
	require.Equal(t, 2, items[0].Quantity)
	require.Equal(t, 2.49, items[0].UnitPrice)
	require.Equal(t, "FreshMart", items[0].RetailerName)
	require.Equal(t, 7, *items[0].MaxQuantity)
}

func TestCartStore_AddSameDealClampsToCeiling(t *testing.T) {
	// Add 5 then 5 of a deal with 7 left: the line ends at 7, not 10.
	c := newCart(t)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, milkDeal(), 5))
	require.NoError(t, c.Add(ctx, milkDeal(), 5))

	items := c.Items()
	require.Len(t, items, 1)
	require.Equal(t, 7, items[0].Quantity)
}

func TestCartStore_AddWithoutCeilingIsUnbounded(t *testing.T) {
	c := newCart(t)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, breadDeal(), 40))
	require.NoError(t, c.Add(ctx, breadDeal(), 60))

	items := c.Items()
	require.Equal(t, 100, items[0].Quantity)
	require.Nil(t, items[0].MaxQuantity)
}

func TestCartStore_AddFirstInsertClampsToCeiling(t *testing.T) {
	c := newCart(t)
	require.NoError(t, c.Add(context.Background(), milkDeal(), 50))
	require.Equal(t, 7, c.Items()[0].Quantity)
}

func TestCartStore_AddZeroQuantityCountsAsOne(t *testing.T) {
	c := newCart(t)
	require.NoError(t, c.Add(context.Background(), milkDeal(), 0))
	require.Equal(t, 1, c.Items()[0].Quantity)
}

func TestCartStore_RemoveDeletesLine(t *testing.T) {
	c := newCart(t)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, milkDeal(), 1))
	require.NoError(t, c.Add(ctx, breadDeal(), 1))
	require.NoError(t, c.Remove(ctx, "1"))

	items := c.Items()
	require.Len(t, items, 1)
	require.Equal(t, "3", items[0].ID)
}

func TestCartStore_RemoveAbsentIsNoOp(t *testing.T) {
	c := newCart(t)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, milkDeal(), 1))
	require.NoError(t, c.Remove(ctx, "nope"))
	require.Len(t, c.Items(), 1)
}

func TestCartStore_SetQuantityFloorsAtOne(t *testing.T) {
	c := newCart(t)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, milkDeal(), 3))
	require.NoError(t, c.SetQuantity(ctx, "1", 0))
	require.Equal(t, 1, c.Items()[0].Quantity)

	require.NoError(t, c.SetQuantity(ctx, "1", -5))
	require.Equal(t, 1, c.Items()[0].Quantity)
}

func TestCartStore_SetQuantityIgnoresCeiling(t *testing.T) {
	// Deliberate asymmetry with Add: manual edits may exceed the stock
	// ceiling; checkout re-validates server-side.
	c := newCart(t)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, milkDeal(), 1))
	require.NoError(t, c.SetQuantity(ctx, "1", 99))
	require.Equal(t, 99, c.Items()[0].Quantity)
}

func TestCartStore_DerivedValuesRecomputed(t *testing.T) {
	c := newCart(t)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, milkDeal(), 2))  // 2 × 2.49
	require.NoError(t, c.Add(ctx, breadDeal(), 3)) // 3 × 1.49

	require.InDelta(t, 2*2.49+3*1.49, c.Subtotal(), 1e-9)
	require.Equal(t, 5, c.TotalItems())

	require.NoError(t, c.Remove(ctx, "1"))
	require.InDelta(t, 3*1.49, c.Subtotal(), 1e-9)
	require.Equal(t, 3, c.TotalItems())

	require.NoError(t, c.Clear(ctx))
	require.Zero(t, c.Subtotal())
	require.Zero(t, c.TotalItems())
}

func TestCartStore_WriteThroughPersistence(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	first := NewCartStore(db)
	require.NoError(t, first.Add(ctx, milkDeal(), 2))
	require.NoError(t, first.Add(ctx, breadDeal(), 1))
	require.NoError(t, first.SetQuantity(ctx, "3", 4))

	second := NewCartStore(db)
	require.NoError(t, second.Restore(ctx))

	require.Equal(t, first.Items(), second.Items())
	require.Equal(t, 6, second.TotalItems())
}

func TestCartStore_Summary(t *testing.T) {
	c := newCart(t)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, milkDeal(), 2)) // subtotal 4.98, under threshold

	s := c.Summary()
	require.InDelta(t, 4.98, s.Subtotal, 1e-9)
	require.InDelta(t, 4.98*0.08, s.Tax, 1e-9)
	require.InDelta(t, 2.99, s.DeliveryFee, 1e-9)
	require.InDelta(t, 4.98+4.98*0.08+2.99, s.Total, 1e-9)
	require.Equal(t, 2, s.TotalItems)
}

func TestCartStore_SummaryWaivesDeliveryOverThreshold(t *testing.T) {
	c := newCart(t)
	require.NoError(t, c.Add(context.Background(), breadDeal(), 20)) // 29.80

	s := c.Summary()
	require.Zero(t, s.DeliveryFee)
	require.InDelta(t, s.Subtotal+s.Tax, s.Total, 1e-9)
}

func TestCartStore_CheckoutClearsCart(t *testing.T) {
	c := newCart(t)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, milkDeal(), 2))
	summary, err := c.Checkout(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, summary.TotalItems)
	require.Empty(t, c.Items())
	require.Zero(t, c.Subtotal())
}
