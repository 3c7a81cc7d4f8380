package connect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridcore/halogrid/partition"
)

func buildCubed(t *testing.T) *Graph {
	t.Helper()
	g, err := BuildGraph(partition.NewCubedSpherePanels(1), partition.Bounded, partition.Bounded)
	require.NoError(t, err)
	return g
}

func TestCubedSphereAdjacency(t *testing.T) {
	g := buildCubed(t)
	require.Equal(t, 6, g.NumRegions)

	// The canonical rotated edge: panel 0's North matches panel 2's
	// West, read in reverse order.
	e, ok := g.Neighbor(0, North)
	require.True(t, ok)
	assert.Equal(t, 2, e.Neighbor)
	assert.Equal(t, West, e.NeighborSide)
	assert.Equal(t, TransposeAndReverse, e.T)
	assert.True(t, e.FlipSign)

	// An opposite-side edge stays untransformed and keeps vector signs.
	e, ok = g.Neighbor(0, East)
	require.True(t, ok)
	assert.Equal(t, 1, e.Neighbor)
	assert.Equal(t, West, e.NeighborSide)
	assert.Equal(t, Identity, e.T)
	assert.False(t, e.FlipSign)

	// No panel side is ever a wall: the sphere is closed.
	for p := 0; p < 6; p++ {
		for _, s := range HorizontalSides {
			_, ok := g.Neighbor(p, s)
			assert.True(t, ok, "panel %d side %s", p, s)
			assert.False(t, g.IsWall(p, s))
		}
	}
}

func TestCubedSphereEdgeCensus(t *testing.T) {
	g := buildCubed(t)
	rotated, straight := 0, 0
	for p := 0; p < 6; p++ {
		for _, s := range HorizontalSides {
			e, _ := g.Neighbor(p, s)
			if e.T.Transposed() {
				rotated++
				assert.Equal(t, TransposeAndReverse, e.T)
				assert.True(t, e.FlipSign)
			} else {
				straight++
				assert.Equal(t, Identity, e.T)
				assert.False(t, e.FlipSign)
			}
		}
	}
	// Twelve cube edges, each seen from both panels: six rotated and
	// six straight.
	assert.Equal(t, 12, rotated)
	assert.Equal(t, 12, straight)
}

func TestCubedSphereCornerDonors(t *testing.T) {
	g := buildCubed(t)

	// Every panel has four corners, all at three-panel vertices.
	require.Len(t, g.Corners, 24)

	byVertex := make(map[[2]int][]CornerEntry) // donor, donorCorner key
	for _, ce := range g.Corners {
		byVertex[[2]int{ce.Donor, int(ce.DonorCorner)}] = append(
			byVertex[[2]int{ce.Donor, int(ce.DonorCorner)}], ce)
	}
	// Eight cube vertices, three corners each.
	require.Len(t, byVertex, 8)
	for key, members := range byVertex {
		assert.Len(t, members, 3, "vertex %v", key)
		// Donor priority: the donor carries the lowest panel ID of the
		// triple, and donates to itself as well.
		sawSelf := false
		for _, ce := range members {
			assert.GreaterOrEqual(t, ce.Region, ce.Donor, "vertex %v entry %+v", key, ce)
			if ce.Region == ce.Donor {
				sawSelf = true
				assert.Equal(t, ce.C, ce.DonorCorner)
			}
		}
		assert.True(t, sawSelf, "vertex %v has no self entry for its donor", key)
	}

	// Spot-check the vertex shared by panels 0, 1 and 2: donor is
	// panel 0 at its NorthEast corner.
	found := 0
	for _, ce := range g.Corners {
		if ce.Donor == 0 && ce.DonorCorner == NorthEast {
			found++
			switch ce.Region {
			case 0:
				assert.Equal(t, NorthEast, ce.C)
			case 1:
				assert.Equal(t, NorthWest, ce.C)
			case 2:
				assert.Equal(t, SouthWest, ce.C)
			default:
				t.Errorf("unexpected region %d at the 0/1/2 vertex", ce.Region)
			}
		}
	}
	assert.Equal(t, 3, found)
}

func TestCubedSphereRejectsSubdivisions(t *testing.T) {
	_, err := BuildGraph(partition.NewCubedSpherePanels(2), partition.Bounded, partition.Bounded)
	require.Error(t, err)
	assert.True(t, errors.Is(err, partition.ErrConfig))
}
