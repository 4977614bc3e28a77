package deals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pantrypal/pantrypal/internal/client/models"
)

func TestCatalog(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	catalog := Catalog(now)

	require.Len(t, catalog, 4)
	require.Equal(t, "2026-03-11", catalog[0].ExpiryDate)
	require.Equal(t, "2026-03-13", catalog[3].ExpiryDate)

	require.False(t, catalog[0].SoldOut())
	require.True(t, catalog[3].SoldOut(), "yogurt has zero stock")
}

func TestFind(t *testing.T) {
	catalog := Catalog(time.Now())

	d, ok := Find(catalog, "3")
	require.True(t, ok)
	require.Equal(t, "Whole Wheat Bread", d.Name)

	missing, ok := Find(catalog, "99")
	require.False(t, ok)
	require.Equal(t, models.ExpiringDeal{}, missing)

	_, ok = Find(nil, "1")
	require.False(t, ok)
}
