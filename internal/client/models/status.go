package models

import (
	"math"
	"time"
)

// ItemStatus is the freshness category of a pantry item.
type ItemStatus string

const (
	StatusFresh         ItemStatus = "fresh"
	StatusExpiringSoon  ItemStatus = "expiring-soon"
	StatusExpiringToday ItemStatus = "expiring-today"
	StatusExpired       ItemStatus = "expired"
)

// expiryDateLayouts are the formats the backend has been observed to emit.
var expiryDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// StatusAt derives the freshness category of an item from its expiry date
// relative to now. The backend also reports a status field, but it may be
// stale relative to the device clock, so callers must recompute with this
// function whenever a status is displayed.
//
// Rules: an empty or unparseable date is fresh; otherwise with
// d = ceil((expiry-now)/24h): d < 0 expired, d == 0 expiring today,
// 1 <= d <= 3 expiring soon, else fresh.
func StatusAt(expiryDate string, now time.Time) ItemStatus {
	if expiryDate == "" {
		return StatusFresh
	}
	expiry, ok := ParseDate(expiryDate)
	if !ok {
		return StatusFresh
	}

	diffDays := int(math.Ceil(expiry.Sub(now).Hours() / 24))
	switch {
	case diffDays < 0:
		return StatusExpired
	case diffDays == 0:
		return StatusExpiringToday
	case diffDays <= 3:
		return StatusExpiringSoon
	default:
		return StatusFresh
	}
}

// ParseDate parses a backend date string, trying each known layout.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range expiryDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate normalizes a backend date string to YYYY-MM-DD for display.
// Empty or unparseable input yields "".
func FormatDate(s string) string {
	if s == "" {
		return ""
	}
	t, ok := ParseDate(s)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}
