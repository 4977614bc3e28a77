package api

import "fmt"

// Error is the typed failure returned for any non-2xx backend response. The
// message is fixed per call site ("login failed", "failed to fetch pantry
// items", ...) and suitable for direct display.
type Error struct {
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (http %d)", e.Message, e.StatusCode)
	}
	return e.Message
}
