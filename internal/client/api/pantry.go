package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/pantrypal/pantrypal/internal/client/models"
)

// AddPantryItemPayload is the wire shape for creating a pantry item.
type AddPantryItemPayload struct {
	ItemName     string      `json:"item_name"`
	Quantity     float64     `json:"quantity"`
	Unit         models.Unit `json:"unit"`
	Category     string      `json:"category,omitempty"`
	PurchaseDate string      `json:"purchase_date,omitempty"`
	ExpiryDate   string      `json:"expiry_date,omitempty"`
}

// UpdatePantryItemPayload addresses an existing item by id.
type UpdatePantryItemPayload struct {
	ItemID int64 `json:"item_id"`
	AddPantryItemPayload
}

// wirePantryItem is the backend's snake_case representation of an item.
type wirePantryItem struct {
	ID           int64   `json:"id"`
	ItemName     string  `json:"item_name"`
	Category     string  `json:"category"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	PurchaseDate string  `json:"purchase_date"`
	ExpiryDate   string  `json:"expiry_date"`
}

// toModel maps the wire item into the client shape. The freshness status is
// derived from the expiry date and the local clock here, never taken from
// the backend, so a stale device cache can't show a wrong category.
func (w wirePantryItem) toModel(c *Client) models.PantryItem {
	category := strings.ToLower(w.Category)
	if category == "" {
		category = "other"
	}
	return models.PantryItem{
		ID:           itoa(w.ID),
		Name:         w.ItemName,
		Category:     category,
		Quantity:     w.Quantity,
		Unit:         models.Unit(w.Unit),
		PurchaseDate: models.FormatDate(w.PurchaseDate),
		ExpiryDate:   models.FormatDate(w.ExpiryDate),
		Status:       models.StatusAt(w.ExpiryDate, c.now()),
	}
}

func (c *Client) mapPantryItems(items []wirePantryItem) []models.PantryItem {
	out := make([]models.PantryItem, 0, len(items))
	for _, w := range items {
		out = append(out, w.toModel(c))
	}
	return out
}

// ListPantryItems fetches all of the user's pantry items.
func (c *Client) ListPantryItems(ctx context.Context, userID int64) ([]models.PantryItem, error) {
	var wire []wirePantryItem
	err := c.call(ctx, http.MethodGet, "/pantry/list", userQuery(userID), nil, &wire, "failed to fetch pantry items")
	if err != nil {
		return nil, err
	}
	return c.mapPantryItems(wire), nil
}

// AddPantryItems creates the given items and returns them as stored.
func (c *Client) AddPantryItems(ctx context.Context, userID int64, items []AddPantryItemPayload) ([]models.PantryItem, error) {
	var wire []wirePantryItem
	err := c.call(ctx, http.MethodPost, "/pantry/add", userQuery(userID), items, &wire, "failed to add pantry items")
	if err != nil {
		return nil, err
	}
	return c.mapPantryItems(wire), nil
}

// UpdatePantryItem patches one item and returns the stored result.
func (c *Client) UpdatePantryItem(ctx context.Context, userID int64, item UpdatePantryItemPayload) (models.PantryItem, error) {
	var wire wirePantryItem
	err := c.call(ctx, http.MethodPatch, "/pantry/update", userQuery(userID), item, &wire, "failed to update pantry item")
	if err != nil {
		return models.PantryItem{}, err
	}
	return wire.toModel(c), nil
}

// DeletePantryItems removes the given items.
func (c *Client) DeletePantryItems(ctx context.Context, userID int64, itemIDs []int64) error {
	payload := map[string][]int64{"item_ids": itemIDs}
	return c.call(ctx, http.MethodPost, "/pantry/delete", userQuery(userID), payload, nil, "failed to delete pantry items")
}

// wirePantryStats carries every field name the stats endpoint has been seen
// to use. Resolution order is documented on PantryStats below.
type wirePantryStats struct {
	TotalItems         *int `json:"total_items"`
	Total              *int `json:"total"`
	ExpiringSoonSnake  *int `json:"expiring_soon"`
	ExpiringSoonCamel  *int `json:"expiringSoon"`
	ExpiringTodaySnake *int `json:"expiring_today"`
	ExpiringTodayCamel *int `json:"expiringToday"`
	Expired            *int `json:"expired"`
}

// firstInt returns the first non-nil value, or 0 when all are absent.
func firstInt(vals ...*int) int {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return 0
}

// PantryStats fetches the user's pantry summary. The endpoint's field names
// vary across backend versions; each stat resolves through the first present
// alias (total_items before total, expiring_soon before expiringSoon, ...)
// and defaults to 0.
func (c *Client) PantryStats(ctx context.Context, userID int64) (models.PantryStats, error) {
	var wire wirePantryStats
	err := c.call(ctx, http.MethodGet, "/pantry/stats", userQuery(userID), nil, &wire, "failed to fetch pantry stats")
	if err != nil {
		return models.PantryStats{}, err
	}
	return models.PantryStats{
		Total:         firstInt(wire.TotalItems, wire.Total),
		ExpiringSoon:  firstInt(wire.ExpiringSoonSnake, wire.ExpiringSoonCamel),
		ExpiringToday: firstInt(wire.ExpiringTodaySnake, wire.ExpiringTodayCamel),
		Expired:       firstInt(wire.Expired),
	}, nil
}

// ExpiringPantryItems fetches only the items close to their expiry date.
func (c *Client) ExpiringPantryItems(ctx context.Context, userID int64) ([]models.PantryItem, error) {
	var wire []wirePantryItem
	err := c.call(ctx, http.MethodGet, "/pantry/expiring", userQuery(userID), nil, &wire, "failed to fetch expiring pantry items")
	if err != nil {
		return nil, err
	}
	return c.mapPantryItems(wire), nil
}
