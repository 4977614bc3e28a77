// Package models defines the client-side shapes the PantryPal app works
// with, plus the freshness-status derivation for pantry items. Backend
// responses use snake_case field names; mapping into these shapes happens in
// the api package.
package models

// Unit is a measurement unit accepted by the pantry endpoints.
type Unit string

const (
	UnitGrams  Unit = "grams"
	UnitKg     Unit = "kg"
	UnitMl     Unit = "ml"
	UnitLiters Unit = "liters"
	UnitPieces Unit = "pieces"
	UnitLoaf   Unit = "loaf"
	UnitPack   Unit = "pack"
)

// PantryItem is a grocery item owned by the backend. Status is always
// derived from ExpiryDate at read time, never trusted from a stored field.
type PantryItem struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	Quantity     float64    `json:"quantity"`
	Unit         Unit       `json:"unit"`
	PurchaseDate string     `json:"purchaseDate"`
	ExpiryDate   string     `json:"expiryDate"`
	Status       ItemStatus `json:"status"`
}

// PantryStats summarizes a user's pantry as reported by the backend.
type PantryStats struct {
	Total         int `json:"total"`
	ExpiringSoon  int `json:"expiringSoon"`
	ExpiringToday int `json:"expiringToday"`
	Expired       int `json:"expired"`
}
