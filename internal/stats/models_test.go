package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"skillexify/internal/identity"
)

func TestRecordProof(t *testing.T) {
	s := New("GitHub")

	s.RecordProof(identity.Address("alice"))
	s.RecordProof(identity.Address("alice"))
	s.RecordProof(identity.Address("bob"))

	assert.Equal(t, uint32(3), s.TotalProofs)
	assert.Equal(t, uint32(2), s.TotalUsers, "repeat submitters count once")
	assert.Equal(t, []identity.Address{"alice", "bob"}, s.TopUsers, "membership keeps first-seen order")
	assert.Equal(t, int(s.TotalUsers), len(s.TopUsers))
	assert.Zero(t, s.AverageScore)
}
