package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestStatusAt(t *testing.T) {
	day := 24 * time.Hour

	tests := []struct {
		name   string
		expiry string
		want   ItemStatus
	}{
		{"empty date is fresh", "", StatusFresh},
		{"unparseable date is fresh", "not-a-date", StatusFresh},
		{"well in the past", now.Add(-10 * day).Format("2006-01-02"), StatusExpired},
		{"yesterday", now.Add(-2 * day).Format(time.RFC3339), StatusExpired},
		{"exactly now", now.Format(time.RFC3339), StatusExpiringToday},
		{"later today", now.Add(6 * time.Hour).Format(time.RFC3339), StatusExpiringToday},
		{"tomorrow", now.Add(1 * day).Format(time.RFC3339), StatusExpiringSoon},
		{"plus three days boundary", now.Add(3 * day).Format(time.RFC3339), StatusExpiringSoon},
		{"plus four days is fresh", now.Add(4 * day).Format(time.RFC3339), StatusFresh},
		{"far future", now.Add(60 * day).Format("2006-01-02"), StatusFresh},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, StatusAt(tc.expiry, now))
		})
	}
}

func TestStatusAt_SlightlyPastExpiryIsStillToday(t *testing.T) {
	// ceil(-0.04) == 0: a few hours past expiry still counts as today, same
	// as the reference behavior of date-diffing in whole ceil'd days.
	expiry := now.Add(-1 * time.Hour).Format(time.RFC3339)
	require.Equal(t, StatusExpiringToday, StatusAt(expiry, now))
}

func TestFormatDate(t *testing.T) {
	require.Equal(t, "", FormatDate(""))
	require.Equal(t, "", FormatDate("garbage"))
	require.Equal(t, "2026-03-10", FormatDate("2026-03-10"))
	require.Equal(t, "2026-03-10", FormatDate("2026-03-10T08:30:00Z"))
}

func TestParseDate_Layouts(t *testing.T) {
	for _, s := range []string{"2026-03-10", "2026-03-10T08:30:00Z", "2026-03-10T08:30:00"} {
		_, ok := ParseDate(s)
		require.True(t, ok, s)
	}
	_, ok := ParseDate("10/03/2026")
	require.False(t, ok)
}
