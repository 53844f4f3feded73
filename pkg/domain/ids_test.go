package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "bahay/pkg/domain-errors"
)

func TestParseUserID(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseUserID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects whitespace only", func(t *testing.T) {
		_, err := ParseUserID("   ")
		require.Error(t, err)
	})

	t.Run("rejects malformed UUID", func(t *testing.T) {
		_, err := ParseUserID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseUserID("00000000-0000-0000-0000-000000000000")
		require.Error(t, err)
	})

	t.Run("accepts valid UUID and trims whitespace", func(t *testing.T) {
		raw := uuid.New().String()
		parsed, err := ParseUserID("  " + raw + "  ")
		require.NoError(t, err)
		assert.Equal(t, raw, parsed.String())
	})
}

func TestParseHouseID_ErrorNamesTheKind(t *testing.T) {
	_, err := ParseHouseID("garbage")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boarding house")
}

func TestNewIDsAreDistinct(t *testing.T) {
	a := NewHouseID()
	b := NewHouseID()
	assert.NotEqual(t, a, b)
	assert.False(t, a.IsZero())
}

func TestUserIDIsZero(t *testing.T) {
	var zero UserID
	assert.True(t, zero.IsZero())
	assert.False(t, NewUserID().IsZero())
}

func TestParseRoundTrip(t *testing.T) {
	for _, raw := range []string{
		uuid.New().String(),
		strings.ToUpper(uuid.New().String()),
	} {
		parsed, err := ParseRoomID(raw)
		require.NoError(t, err)
		assert.Equal(t, strings.ToLower(raw), parsed.String())
	}
}

// FuzzParseUserID checks that parsing never panics and that success implies a
// non-zero identifier.
func FuzzParseUserID(f *testing.F) {
	f.Add("")
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("00000000-0000-0000-0000-000000000000")
	f.Add("not-a-uuid")
	f.Add("  550e8400-e29b-41d4-a716-446655440000  ")

	f.Fuzz(func(t *testing.T, raw string) {
		parsed, err := ParseUserID(raw)
		if err == nil && parsed.IsZero() {
			t.Errorf("ParseUserID(%q) succeeded with a zero ID", raw)
		}
	})
}
