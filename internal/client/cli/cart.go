package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/pantrypal/pantrypal/internal/client/deals"
)

// Deals prints the expiring-deals catalog.
func (a *App) Deals(ctx context.Context) error {
	for _, d := range a.catalog {
		stock := "in stock"
		if d.SoldOut() {
			stock = "SOLD OUT"
		} else if d.QuantityLeft != nil {
			stock = fmt.Sprintf("%d left", *d.QuantityLeft)
		}
		fmt.Printf("%3s  %-22s %-14s was $%.2f now $%.2f  expires %s  (%s)\n",
			d.ID, d.Name, d.Retailer.Name, d.OriginalPrice, d.DiscountedPrice, d.ExpiryDate, stock)
	}
	return nil
}

// ShowCart prints the cart lines and the running totals.
func (a *App) ShowCart(ctx context.Context) error {
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Println("(cart is empty)")
		return nil
	}
	for _, item := range items {
		fmt.Printf("%3s  %-22s %-14s %d × $%.2f = $%.2f\n",
			item.ID, item.Name, item.RetailerName, item.Quantity, item.UnitPrice, item.LineTotal())
	}
	fmt.Printf("%d item(s), subtotal $%.2f\n", a.cart.TotalItems(), a.cart.Subtotal())
	return nil
}

// CartAdd puts a deal from the catalog in the cart.
func (a *App) CartAdd(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Deal id", os.Stdout)
	if err != nil {
		return err
	}
	deal, ok := deals.Find(a.catalog, id)
	if !ok {
		return fmt.Errorf("no deal with id %q", id)
	}
	if deal.SoldOut() {
		return fmt.Errorf("%s is sold out", deal.Name)
	}
	qty, err := GetInt(a.reader, "Quantity", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.cart.Add(ctx, deal, qty); err != nil {
		return err
	}
	return a.ShowCart(ctx)
}

// CartRemove deletes a line from the cart.
func (a *App) CartRemove(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Deal id to remove", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.cart.Remove(ctx, id); err != nil {
		return err
	}
	return a.ShowCart(ctx)
}

// CartQuantity sets a line's quantity directly.
func (a *App) CartQuantity(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Deal id", os.Stdout)
	if err != nil {
		return err
	}
	qty, err := GetInt(a.reader, "New quantity", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.cart.SetQuantity(ctx, id, qty); err != nil {
		return err
	}
	return a.ShowCart(ctx)
}

// CartClear empties the cart.
func (a *App) CartClear(ctx context.Context) error {
	if err := a.cart.Clear(ctx); err != nil {
		return err
	}
	fmt.Println("Cart cleared")
	return nil
}

// Checkout prints the order breakdown and empties the cart. Payment happens
// outside this client.
func (a *App) Checkout(ctx context.Context) error {
	if len(a.cart.Items()) == 0 {
		fmt.Println("(cart is empty)")
		return nil
	}

	summary, err := a.cart.Checkout(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Subtotal:     $%.2f\n", summary.Subtotal)
	fmt.Printf("Tax:          $%.2f\n", summary.Tax)
	if summary.DeliveryFee == 0 {
		fmt.Println("Delivery:     free")
	} else {
		fmt.Printf("Delivery:     $%.2f\n", summary.DeliveryFee)
	}
	fmt.Printf("Total:        $%.2f (%d items)\n", summary.Total, summary.TotalItems)
	fmt.Println("Order placed. Thank you!")
	return nil
}
