package badge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"skillexify/pkg/domainerrors"
)

func TestValidateLevel(t *testing.T) {
	assert.NoError(t, ValidateLevel(MinSkillLevel))
	assert.NoError(t, ValidateLevel(MaxSkillLevel))

	for _, lvl := range []uint32{0, MaxSkillLevel + 1} {
		err := ValidateLevel(lvl)
		assert.True(t, domainerrors.Is(err, domainerrors.CodeInvalidSkillLevel), "level %d", lvl)
	}
}

func TestNew(t *testing.T) {
	at := time.Unix(1_700_000_000, 0)
	b := New("alice", "GitHub", 3, "ipfs://badge", at)

	assert.Equal(t, "alice:GitHub:3", b.TokenID)
	assert.Equal(t, at.Unix(), b.CreatedAt)
	assert.Equal(t, b.CreatedAt, b.LastUpdated)
	assert.Equal(t, uint32(1), b.ProofCount)
}
