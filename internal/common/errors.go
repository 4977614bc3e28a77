// Package common defines shared sentinel errors and small helpers used across
// the PantryPal client. Callers should match these values with errors.Is.
package common

import "errors"

var (
	// ErrNotAuthenticated is returned when an operation requires a valid
	// session (token, and for addressed endpoints a known user id) and
	// none is available.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotFound is returned by repositories when a row does not exist.
	ErrNotFound = errors.New("not found")
)
