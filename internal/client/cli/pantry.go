package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pantrypal/pantrypal/internal/client/api"
	"github.com/pantrypal/pantrypal/internal/client/models"
)

// printPantryItems renders a pantry listing with derived freshness badges.
func printPantryItems(items []models.PantryItem) {
	if len(items) == 0 {
		fmt.Println("(pantry is empty)")
		return
	}
	for _, item := range items {
		expiry := item.ExpiryDate
		if expiry == "" {
			expiry = "-"
		}
		fmt.Printf("%4s  %-24s %6.1f %-7s %-10s expires %-10s [%s]\n",
			item.ID, item.Name, item.Quantity, item.Unit, item.Category, expiry, item.Status)
	}
}

// ListPantry fetches and prints every pantry item.
func (a *App) ListPantry(ctx context.Context) error {
	userID, err := a.requireUser()
	if err != nil {
		return err
	}
	items, err := a.gateway.ListPantryItems(ctx, userID)
	if err != nil {
		return err
	}
	printPantryItems(items)
	return nil
}

// AddItem prompts for a single item and creates it.
func (a *App) AddItem(ctx context.Context) error {
	userID, err := a.requireUser()
	if err != nil {
		return err
	}

	payload, err := a.inputItemPayload()
	if err != nil {
		return err
	}

	items, err := a.gateway.AddPantryItems(ctx, userID, []api.AddPantryItemPayload{payload})
	if err != nil {
		return err
	}
	fmt.Println("Added:")
	printPantryItems(items)
	return nil
}

// EditItem prompts for an item id plus its replacement fields and patches it.
func (a *App) EditItem(ctx context.Context) error {
	userID, err := a.requireUser()
	if err != nil {
		return err
	}

	id, err := GetInt(a.reader, "Item id to edit", os.Stdout)
	if err != nil {
		return err
	}
	payload, err := a.inputItemPayload()
	if err != nil {
		return err
	}

	item, err := a.gateway.UpdatePantryItem(ctx, userID, api.UpdatePantryItemPayload{
		ItemID:               int64(id),
		AddPantryItemPayload: payload,
	})
	if err != nil {
		return err
	}
	fmt.Println("Updated:")
	printPantryItems([]models.PantryItem{item})
	return nil
}

// DeleteItem removes one or more items by id (comma-separated).
func (a *App) DeleteItem(ctx context.Context) error {
	userID, err := a.requireUser()
	if err != nil {
		return err
	}

	raw, err := getSimpleText(a.reader, "Item id(s) to delete (comma-separated)", os.Stdout)
	if err != nil {
		return err
	}

	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return fmt.Errorf("not an item id: %q", part)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		fmt.Println("Nothing to delete")
		return nil
	}

	if err := a.gateway.DeletePantryItems(ctx, userID, ids); err != nil {
		return err
	}
	fmt.Printf("Deleted %d item(s)\n", len(ids))
	return nil
}

// Stats prints the pantry summary counters.
func (a *App) Stats(ctx context.Context) error {
	userID, err := a.requireUser()
	if err != nil {
		return err
	}
	stats, err := a.gateway.PantryStats(ctx, userID)
	if err != nil {
		return err
	}
	fmt.Printf("Items total:    %d\n", stats.Total)
	fmt.Printf("Expiring soon:  %d\n", stats.ExpiringSoon)
	fmt.Printf("Expiring today: %d\n", stats.ExpiringToday)
	fmt.Printf("Expired:        %d\n", stats.Expired)
	return nil
}

// Expiring prints only the items close to their expiry date.
func (a *App) Expiring(ctx context.Context) error {
	userID, err := a.requireUser()
	if err != nil {
		return err
	}
	items, err := a.gateway.ExpiringPantryItems(ctx, userID)
	if err != nil {
		return err
	}
	printPantryItems(items)
	return nil
}

// inputItemPayload collects the fields shared by add and edit.
func (a *App) inputItemPayload() (api.AddPantryItemPayload, error) {
	var zero api.AddPantryItemPayload

	name, err := getSimpleText(a.reader, "Item name", os.Stdout)
	if err != nil {
		return zero, err
	}
	if name == "" {
		return zero, fmt.Errorf("item name is required")
	}
	quantity, err := GetFloat(a.reader, "Quantity", os.Stdout)
	if err != nil {
		return zero, err
	}
	unit, err := getSimpleText(a.reader, "Unit (grams, kg, ml, liters, pieces, loaf, pack)", os.Stdout)
	if err != nil {
		return zero, err
	}
	category, err := getSimpleText(a.reader, "Category (empty for other)", os.Stdout)
	if err != nil {
		return zero, err
	}
	expiry, err := getSimpleText(a.reader, "Expiry date YYYY-MM-DD (empty for none)", os.Stdout)
	if err != nil {
		return zero, err
	}

	return api.AddPantryItemPayload{
		ItemName:   name,
		Quantity:   quantity,
		Unit:       models.Unit(unit),
		Category:   category,
		ExpiryDate: expiry,
	}, nil
}
