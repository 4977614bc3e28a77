package cart

import (
	"context"
	"fmt"

	"github.com/pantrypal/pantrypal/internal/client/models"
	"github.com/pantrypal/pantrypal/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository binds the repository to db, which may be a *sql.DB or
// an open transaction.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.CartItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, image, unit_price, retailer_name, quantity, max_quantity
		FROM cart_items ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	var items []models.CartItem
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Image, &item.UnitPrice,
			&item.RetailerName, &item.Quantity, &item.MaxQuantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart items: %w", err)
	}
	return items, nil
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, items []models.CartItem) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items`); err != nil {
		return fmt.Errorf("failed to clear cart items: %w", err)
	}
	for pos, item := range items {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO cart_items (id, name, image, unit_price, retailer_name, quantity, max_quantity, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, item.ID, item.Name, item.Image, item.UnitPrice, item.RetailerName, item.Quantity, item.MaxQuantity, pos)
		if err != nil {
			return fmt.Errorf("failed to insert cart item %s: %w", item.ID, err)
		}
	}
	return nil
}
