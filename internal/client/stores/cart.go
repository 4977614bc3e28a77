package stores

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/pantrypal/pantrypal/internal/client/models"
	cartrepo "github.com/pantrypal/pantrypal/internal/client/repositories/cart"
	"github.com/pantrypal/pantrypal/internal/dbx"
	"github.com/pantrypal/pantrypal/internal/logging"
)

// Checkout constants, fixed for the demo checkout flow.
const (
	taxRate               = 0.08
	deliveryFee           = 2.99
	freeDeliveryThreshold = 25.0
)

// CheckoutSummary is the order total breakdown shown at checkout.
type CheckoutSummary struct {
	Subtotal    float64
	Tax         float64
	DeliveryFee float64
	Total       float64
	TotalItems  int
}

// CartStore owns the cart lines. The cart is purely client-owned: adding a
// deal never reserves stock on the backend, it is a display convenience
// until checkout. Every mutation rewrites the persisted cart (write-through)
// after updating the in-memory state. Derived values (subtotal, item count)
// are recomputed on every read, never cached.
type CartStore struct {
	db  *sql.DB
	log logging.Logger

	mu    sync.Mutex
	items []models.CartItem
}

type CartOption func(*CartStore)

func WithCartLogger(l logging.Logger) CartOption {
	return func(c *CartStore) { c.log = l }
}

func NewCartStore(db *sql.DB, opts ...CartOption) *CartStore {
	c := &CartStore{db: db, log: logging.Discard()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Restore rehydrates the cart from local storage.
func (c *CartStore) Restore(ctx context.Context) error {
	items, err := cartrepo.NewSQLiteRepository(c.db).List(ctx)
	if err != nil {
		return fmt.Errorf("restoring cart: %w", err)
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	c.log.Debug(ctx, "cart restored", "lines", len(items))
	return nil
}

// Add puts qty units of the deal in the cart. If a line for the deal already
// exists its quantity grows by qty, clamped to the deal's stock ceiling
// (unbounded when the retailer reported none); otherwise a new line is
// inserted with quantity min(qty, ceiling). qty below 1 counts as 1.
func (c *CartStore) Add(ctx context.Context, deal models.ExpiringDeal, qty int) error {
	if qty < 1 {
		qty = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	max := copyIntPtr(deal.QuantityLeft)
	if existing := c.findLocked(deal.ID); existing != nil {
		newQty := existing.Quantity + qty
		if max != nil && newQty > *max {
			newQty = *max
		}
		existing.Quantity = newQty
		c.log.Debug(ctx, "cart line updated", "deal", deal.ID, "quantity", newQty)
	} else {
		quantity := qty
		if max != nil && quantity > *max {
			quantity = *max
		}
		c.items = append(c.items, models.CartItem{
			ID:           deal.ID,
			Name:         deal.Name,
			Image:        deal.Image,
			UnitPrice:    deal.DiscountedPrice,
			RetailerName: deal.Retailer.Name,
			Quantity:     quantity,
			MaxQuantity:  max,
		})
		c.log.Debug(ctx, "cart line added", "deal", deal.ID, "quantity", quantity)
	}

	return c.persistLocked(ctx)
}

// Remove deletes the line with the given deal id. Removing an absent line is
// a no-op.
func (c *CartStore) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0]
	for _, item := range c.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
	return c.persistLocked(ctx)
}

// SetQuantity sets the line's quantity to max(1, qty). Unlike Add it does
// not clamp to the stock ceiling: manual quantity edits may exceed
// MaxQuantity, and checkout re-validates stock server-side. Do not "fix"
// this asymmetry without changing the checkout contract.
func (c *CartStore) SetQuantity(ctx context.Context, id string, qty int) error {
	if qty < 1 {
		qty = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if item := c.findLocked(id); item != nil {
		item.Quantity = qty
	}
	return c.persistLocked(ctx)
}

// Clear empties the cart.
func (c *CartStore) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	return c.persistLocked(ctx)
}

// Items returns a copy of the cart lines in insertion order.
func (c *CartStore) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	for i := range out {
		out[i].MaxQuantity = copyIntPtr(out[i].MaxQuantity)
	}
	return out
}

// Subtotal is the sum of line totals, recomputed on every call.
func (c *CartStore) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var sum float64
	for _, item := range c.items {
		sum += item.LineTotal()
	}
	return sum
}

// TotalItems is the sum of quantities across lines, recomputed on every call.
func (c *CartStore) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// Summary computes the checkout breakdown for the current cart: 8% tax on
// the subtotal, and a flat delivery fee waived once the subtotal reaches the
// free-delivery threshold.
func (c *CartStore) Summary() CheckoutSummary {
	subtotal := c.Subtotal()

	fee := deliveryFee
	if subtotal >= freeDeliveryThreshold {
		fee = 0
	}
	tax := subtotal * taxRate

	return CheckoutSummary{
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: fee,
		Total:       subtotal + tax + fee,
		TotalItems:  c.TotalItems(),
	}
}

// Checkout returns the final summary and empties the cart. Payment itself
// happens outside this client.
func (c *CartStore) Checkout(ctx context.Context) (CheckoutSummary, error) {
	summary := c.Summary()
	if err := c.Clear(ctx); err != nil {
		return CheckoutSummary{}, err
	}
	c.log.Info(ctx, "checked out", "items", summary.TotalItems, "total", summary.Total)
	return summary, nil
}

// findLocked returns a pointer into c.items for the given id, or nil.
func (c *CartStore) findLocked(id string) *models.CartItem {
	for i := range c.items {
		if c.items[i].ID == id {
			return &c.items[i]
		}
	}
	return nil
}

// persistLocked rewrites the whole persisted cart inside a transaction.
func (c *CartStore) persistLocked(ctx context.Context) error {
	items := make([]models.CartItem, len(c.items))
	copy(items, c.items)

	err := dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return cartrepo.NewSQLiteRepository(tx).ReplaceAll(ctx, items)
	})
	if err != nil {
		return fmt.Errorf("persisting cart: %w", err)
	}
	return nil
}

func copyIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
