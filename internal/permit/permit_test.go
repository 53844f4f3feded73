package permit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bahay/pkg/dates"
)

func mustDate(t *testing.T, s string) dates.Date {
	t.Helper()
	d, err := dates.Parse(s)
	require.NoError(t, err)
	return d
}

func TestEvaluate(t *testing.T) {
	today := mustDate(t, "2026-06-01")
	issue := mustDate(t, "2025-06-01")

	tests := []struct {
		name   string
		expiry dates.Date
		want   Status
	}{
		{"expired yesterday", today.AddDays(-1), StatusExpired},
		{"expired long ago", today.AddDays(-400), StatusExpired},
		{"expires today counts as zero days remaining", today, StatusNearExpiry},
		{"one day remaining", today.AddDays(1), StatusNearExpiry},
		{"exactly thirty days is near-expiry", today.AddDays(30), StatusNearExpiry},
		{"exactly thirty-one days is valid", today.AddDays(31), StatusValid},
		{"forty-five days is valid", today.AddDays(45), StatusValid},
		{"a year out is valid", today.AddDays(365), StatusValid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(issue, tt.expiry, today))
		})
	}
}

func TestEvaluateIgnoresIssueDate(t *testing.T) {
	today := mustDate(t, "2026-06-01")
	expiry := today.AddDays(90)

	// Classification depends on expiry only; a freshly issued and a years-old
	// permit with the same expiry classify identically.
	recent := Evaluate(today.AddDays(-10), expiry, today)
	ancient := Evaluate(today.AddDays(-3000), expiry, today)
	assert.Equal(t, recent, ancient)
	assert.Equal(t, StatusValid, recent)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	today := mustDate(t, "2026-06-01")
	issue := mustDate(t, "2025-06-01")
	expiry := today.AddDays(15)

	first := Evaluate(issue, expiry, today)
	second := Evaluate(issue, expiry, today)
	assert.Equal(t, first, second)
}

func TestCanActivate(t *testing.T) {
	lat := 8.0296
	lng := 123.3171

	tests := []struct {
		name     string
		status   Status
		lat, lng *float64
		want     bool
	}{
		{"valid and pinned", StatusValid, &lat, &lng, true},
		{"valid without any location", StatusValid, nil, nil, false},
		{"valid with only latitude", StatusValid, &lat, nil, false},
		{"valid with only longitude", StatusValid, nil, &lng, false},
		{"near-expiry even when pinned", StatusNearExpiry, &lat, &lng, false},
		{"expired even when pinned", StatusExpired, &lat, &lng, false},
		{"pending even when pinned", StatusPending, &lat, &lng, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanActivate(tt.status, tt.lat, tt.lng))
		})
	}
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"pending", "valid", "near-expiry", "expired"} {
		status, ok := ParseStatus(valid)
		assert.True(t, ok)
		assert.Equal(t, Status(valid), status)
	}

	_, ok := ParseStatus("suspended")
	assert.False(t, ok)
}
