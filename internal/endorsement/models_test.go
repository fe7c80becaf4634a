package endorsement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"skillexify/pkg/domainerrors"
)

func TestValidateWeight(t *testing.T) {
	assert.NoError(t, ValidateWeight(MinWeight))
	assert.NoError(t, ValidateWeight(50))
	assert.NoError(t, ValidateWeight(MaxWeight))

	for _, w := range []uint32{0, MaxWeight + 1} {
		err := ValidateWeight(w)
		assert.True(t, domainerrors.Is(err, domainerrors.CodeInvalidEndorsementWeight), "weight %d", w)
	}
}
