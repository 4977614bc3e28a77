// Package cart persists the cart lines. The store writes the whole cart on
// every mutation (write-through, like the web client's serialized
// localStorage array), so the repository exposes a full replace rather than
// per-line updates.
package cart

import (
	"context"

	"github.com/pantrypal/pantrypal/internal/client/models"
)

type Repository interface {
	// List returns the persisted cart lines in insertion order.
	List(ctx context.Context) ([]models.CartItem, error)

	// ReplaceAll rewrites the persisted cart to exactly items. Callers
	// wanting atomicity bind the repository to a transaction via dbx.WithTx.
	ReplaceAll(ctx context.Context, items []models.CartItem) error
}
