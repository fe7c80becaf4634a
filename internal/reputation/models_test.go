package reputation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Unix(1_700_000_000, 0)

func TestApplyProof(t *testing.T) {
	rep := New("alice", now)

	t.Run("first proof on a new platform earns base plus bonus", func(t *testing.T) {
		delta := rep.ApplyProof("GitHub", now)
		assert.Equal(t, int64(ProofBaseScore+NewPlatformBonus), delta)
		assert.Equal(t, int64(35), rep.Score)
		assert.Equal(t, uint32(1), rep.TotalProofs)
		assert.Equal(t, []string{"GitHub"}, rep.Platforms)
	})

	t.Run("second proof on the same platform earns base only", func(t *testing.T) {
		delta := rep.ApplyProof("GitHub", now)
		assert.Equal(t, int64(ProofBaseScore), delta)
		assert.Equal(t, int64(45), rep.Score)
		assert.Equal(t, uint32(2), rep.TotalProofs)
		assert.Equal(t, []string{"GitHub"}, rep.Platforms)
	})

	t.Run("proof on a second platform earns the bonus again", func(t *testing.T) {
		delta := rep.ApplyProof("Kaggle", now)
		assert.Equal(t, int64(35), delta)
		assert.Equal(t, []string{"GitHub", "Kaggle"}, rep.Platforms)
	})
}

func TestEndorsementScoring(t *testing.T) {
	endorsee := New("bob", now)
	endorsee.ApplyEndorsementReceived(100, now)
	assert.Equal(t, int64(100), endorsee.Score)
	assert.Equal(t, uint32(1), endorsee.EndorsementsReceived)

	endorser := New("alice", now)
	endorser.ApplyEndorsementGiven(now)
	assert.Equal(t, int64(EndorserBonus), endorser.Score)
	assert.Equal(t, uint32(1), endorser.EndorsementsGiven)
}

func TestApplyAdjustment(t *testing.T) {
	rep := New("carol", now)
	rep.ApplyProof("GitHub", now)

	rep.ApplyAdjustment(-100, now)
	assert.Equal(t, int64(-65), rep.Score, "score may go negative")
	assert.Equal(t, uint32(1), rep.TotalProofs, "counters untouched by adjustments")
}

func TestCanEndorse(t *testing.T) {
	rep := New("dave", now)
	assert.False(t, rep.CanEndorse())

	rep.ApplyAdjustment(49, now)
	assert.False(t, rep.CanEndorse())

	rep.ApplyAdjustment(1, now)
	assert.True(t, rep.CanEndorse(), "score exactly at the gate can endorse")
}

func TestPrimaryPlatform(t *testing.T) {
	rep := New("erin", now)
	assert.Equal(t, "Unknown", rep.PrimaryPlatform())

	rep.ApplyProof("HackerRank", now)
	rep.ApplyProof("LeetCode", now)
	assert.Equal(t, "HackerRank", rep.PrimaryPlatform(), "first platform stays primary")
}
