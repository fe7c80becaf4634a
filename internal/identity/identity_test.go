package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillexify/pkg/domainerrors"
)

func TestCanonicalize(t *testing.T) {
	t.Run("trims and lowercases", func(t *testing.T) {
		addr, err := Canonicalize("  Alice01  ")
		require.NoError(t, err)
		assert.Equal(t, Address("alice01"), addr)
	})

	t.Run("rejects short input", func(t *testing.T) {
		_, err := Canonicalize("ab")
		assert.True(t, domainerrors.Is(err, domainerrors.CodeInvalidAddress))
	})

	t.Run("rejects overlong input", func(t *testing.T) {
		_, err := Canonicalize(strings.Repeat("a", 91))
		assert.True(t, domainerrors.Is(err, domainerrors.CodeInvalidAddress))
	})

	t.Run("rejects blank input", func(t *testing.T) {
		_, err := Canonicalize("   ")
		assert.True(t, domainerrors.Is(err, domainerrors.CodeInvalidAddress))
	})

	t.Run("rejects punctuation", func(t *testing.T) {
		for _, raw := range []string{"al ice", "alice!", "a:b:c", "user@host"} {
			_, err := Canonicalize(raw)
			assert.True(t, domainerrors.Is(err, domainerrors.CodeInvalidAddress), raw)
		}
	})

	t.Run("accepts bech32-style addresses", func(t *testing.T) {
		addr, err := Canonicalize("cosmos1x2y3z4w5v6u7t8s9r0q")
		require.NoError(t, err)
		assert.Equal(t, Address("cosmos1x2y3z4w5v6u7t8s9r0q"), addr)
	})
}
