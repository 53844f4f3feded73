package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("accepts YYYY-MM-DD", func(t *testing.T) {
		d, err := Parse("2026-03-15")
		require.NoError(t, err)
		assert.Equal(t, Date{Year: 2026, Month: time.March, Day: 15}, d)
		assert.Equal(t, "2026-03-15", d.String())
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, input := range []string{"", "15-03-2026", "2026/03/15", "2026-13-01", "not-a-date"} {
			_, err := Parse(input)
			assert.Error(t, err, "input %q", input)
		}
	})
}

func TestDaysUntil(t *testing.T) {
	base, err := Parse("2026-06-01")
	require.NoError(t, err)

	tests := []struct {
		name  string
		other Date
		want  int
	}{
		{"same day is zero", base, 0},
		{"next day is one", base.AddDays(1), 1},
		{"previous day is minus one", base.AddDays(-1), -1},
		{"thirty days out", base.AddDays(30), 30},
		{"across a month boundary", Date{Year: 2026, Month: time.July, Day: 1}, 30},
		{"across a year boundary", Date{Year: 2027, Month: time.June, Day: 1}, 365},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.DaysUntil(tt.other))
		})
	}
}

func TestDaysUntilIgnoresTimeOfDay(t *testing.T) {
	// A late-evening "now" in any timezone must not shave a day off the count.
	loc, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)
	now := time.Date(2026, time.June, 1, 23, 45, 0, 0, loc)

	today := Today(now)
	expiry, err := Parse("2026-06-02")
	require.NoError(t, err)

	assert.Equal(t, 1, today.DaysUntil(expiry))
}

func TestOrdering(t *testing.T) {
	a, _ := Parse("2026-01-01")
	b, _ := Parse("2026-01-02")
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.After(a))
	assert.False(t, a.Before(a))
}
