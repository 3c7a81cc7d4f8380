package partition

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySingleRank(t *testing.T) {
	st, err := Classify(Periodic, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, SideTopology{LocalPeriodic, LocalPeriodic}, st)

	st, err = Classify(Bounded, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, SideTopology{LocalWall, LocalWall}, st)
}

func TestClassifyBoundedStrip(t *testing.T) {
	// First region walls outward, connects inward; last mirrors; the
	// interior connects on both sides.
	st, err := Classify(Bounded, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, SideTopology{LocalWall, LocalConnected}, st)

	st, err = Classify(Bounded, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, SideTopology{LocalConnected, LocalWall}, st)

	for _, idx := range []int{1, 2} {
		st, err = Classify(Bounded, 4, idx)
		require.NoError(t, err)
		assert.Equal(t, SideTopology{LocalConnected, LocalConnected}, st)
	}
}

func TestClassifyPeriodicRing(t *testing.T) {
	for idx := 0; idx < 4; idx++ {
		st, err := Classify(Periodic, 4, idx)
		require.NoError(t, err)
		assert.Equal(t, SideTopology{LocalConnected, LocalConnected}, st)
	}
}

func TestClassifyRejectsBadRank(t *testing.T) {
	_, err := Classify(Periodic, 0, 0)
	assert.True(t, errors.Is(err, ErrConfig))
	_, err = Classify(Periodic, 4, 4)
	assert.True(t, errors.Is(err, ErrConfig))
	_, err = Classify(Periodic, 4, -1)
	assert.True(t, errors.Is(err, ErrConfig))
}

// TestReconstructRoundTrip: Classify then ReconstructKind recovers the
// global kind, with the ring confirmation standing in for the
// collective reduction.
func TestReconstructRoundTrip(t *testing.T) {
	for _, global := range []BoundaryKind{Bounded, Periodic} {
		for _, count := range []int{1, 2, 4, 7} {
			locals := make([]SideTopology, count)
			for i := range locals {
				st, err := Classify(global, count, i)
				require.NoError(t, err)
				locals[i] = st
			}
			ringClosed := global == Periodic && count > 1
			got, err := ReconstructKind(locals, ringClosed)
			require.NoError(t, err, "global %s count %d", global, count)
			assert.Equal(t, global, got, "global %s count %d", global, count)
		}
	}
}

func TestReconstructNeedsRingConfirmation(t *testing.T) {
	// All-connected local kinds alone cannot distinguish a ring from a
	// broken strip; without the collective confirmation this is an error.
	locals := []SideTopology{
		{LocalConnected, LocalConnected},
		{LocalConnected, LocalConnected},
	}
	_, err := ReconstructKind(locals, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTopology))
}

func TestReconstructDisagreement(t *testing.T) {
	locals := []SideTopology{
		{LocalWall, LocalConnected},
		{LocalWall, LocalConnected}, // wall in the interior: inconsistent
		{LocalConnected, LocalWall},
	}
	_, err := ReconstructKind(locals, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTopology))

	// A single region can never be Connected.
	_, err = ReconstructKind([]SideTopology{{LocalConnected, LocalConnected}}, false)
	assert.True(t, errors.Is(err, ErrTopology))
}
