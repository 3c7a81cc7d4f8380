package connect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridcore/halogrid/partition"
)

func TestAxisGraphPeriodicStrips(t *testing.T) {
	// 4 strips along X on a fully periodic grid: wrap-around closes the
	// ring west-east, each region self-wraps south-north.
	scheme := partition.NewEqualSplit(partition.AxisX, 4)
	g, err := BuildGraph(scheme, partition.Periodic, partition.Periodic)
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	west, ok := g.Neighbor(0, West)
	require.True(t, ok)
	assert.Equal(t, 3, west.Neighbor)
	assert.Equal(t, East, west.NeighborSide)
	assert.Equal(t, Identity, west.T)

	east, ok := g.Neighbor(3, East)
	require.True(t, ok)
	assert.Equal(t, 0, east.Neighbor)
	assert.Equal(t, West, east.NeighborSide)

	self, ok := g.Neighbor(2, North)
	require.True(t, ok)
	assert.Equal(t, 2, self.Neighbor)
	assert.Equal(t, South, self.NeighborSide)

	assert.True(t, g.RingClosed())
}

func TestAxisGraphBoundedStrips(t *testing.T) {
	scheme := partition.NewEqualSplit(partition.AxisX, 3)
	g, err := BuildGraph(scheme, partition.Bounded, partition.Bounded)
	require.NoError(t, err)

	assert.True(t, g.IsWall(0, West))
	assert.True(t, g.IsWall(2, East))
	assert.True(t, g.IsWall(1, South))
	assert.True(t, g.IsWall(1, North))

	e, ok := g.Neighbor(0, East)
	require.True(t, ok)
	assert.Equal(t, 1, e.Neighbor)
	e, ok = g.Neighbor(1, West)
	require.True(t, ok)
	assert.Equal(t, 0, e.Neighbor)

	assert.False(t, g.RingClosed())
}

func TestAxisGraphSingleRegion(t *testing.T) {
	scheme := partition.NewEqualSplit(partition.AxisY, 1)
	g, err := BuildGraph(scheme, partition.Bounded, partition.Periodic)
	require.NoError(t, err)

	// Periodic Y with one region self-wraps; bounded X is walled.
	e, ok := g.Neighbor(0, South)
	require.True(t, ok)
	assert.Equal(t, 0, e.Neighbor)
	assert.Equal(t, North, e.NeighborSide)
	assert.True(t, g.IsWall(0, West))
	assert.True(t, g.IsWall(0, East))
	assert.True(t, g.RingClosed())
}

// TestGraphSymmetry walks every entry of several graphs and checks the
// back-entry carries the inverse transform and the same sign flag.
func TestGraphSymmetry(t *testing.T) {
	graphs := []struct {
		name string
		g    *Graph
	}{}
	for _, cfg := range []struct {
		name   string
		scheme partition.Scheme
		bx, by partition.BoundaryKind
	}{
		{"periodic4", partition.NewEqualSplit(partition.AxisX, 4), partition.Periodic, partition.Periodic},
		{"bounded3", partition.NewEqualSplit(partition.AxisX, 3), partition.Bounded, partition.Bounded},
		{"explicitY", partition.NewExplicitSizes(partition.AxisY, []int{3, 5, 8}), partition.Periodic, partition.Bounded},
		{"cubed", partition.NewCubedSpherePanels(1), partition.Bounded, partition.Bounded},
	} {
		g, err := BuildGraph(cfg.scheme, cfg.bx, cfg.by)
		require.NoError(t, err, cfg.name)
		graphs = append(graphs, struct {
			name string
			g    *Graph
		}{cfg.name, g})
	}

	for _, tg := range graphs {
		for r := 0; r < tg.g.NumRegions; r++ {
			for _, s := range HorizontalSides {
				e, ok := tg.g.Neighbor(r, s)
				if !ok {
					assert.True(t, tg.g.IsWall(r, s),
						"%s: region %d side %s neither wall nor connected", tg.name, r, s)
					continue
				}
				back, ok := tg.g.Neighbor(e.Neighbor, e.NeighborSide)
				require.True(t, ok, "%s: %s missing back-entry", tg.name, e)
				assert.Equal(t, r, back.Neighbor, "%s: %s", tg.name, e)
				assert.Equal(t, s, back.NeighborSide, "%s: %s", tg.name, e)
				assert.Equal(t, e.T.Inverse(), back.T, "%s: %s", tg.name, e)
				assert.Equal(t, e.FlipSign, back.FlipSign, "%s: %s", tg.name, e)
			}
		}
	}
}

func TestValidateCatchesAsymmetry(t *testing.T) {
	scheme := partition.NewEqualSplit(partition.AxisX, 4)
	g, err := BuildGraph(scheme, partition.Periodic, partition.Periodic)
	require.NoError(t, err)

	// Corrupt one entry: region 0's west now points at region 2.
	g.links[0][West].entry.Neighbor = 2
	err = g.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConnectivity))

	// Unassign a side entirely.
	g, err = BuildGraph(scheme, partition.Periodic, partition.Periodic)
	require.NoError(t, err)
	g.links[1][East] = link{}
	err = g.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConnectivity))
}

func TestTransformAlgebra(t *testing.T) {
	for _, tr := range []Transform{Identity, ReverseAxis, TransposeIdentity, TransposeAndReverse} {
		assert.Equal(t, tr, tr.Inverse().Inverse())
		// Mapping an edge index through a transform and its inverse is
		// the identity.
		const n = 7
		for i := 0; i < n; i++ {
			assert.Equal(t, i, tr.Inverse().MapEdgeIndex(tr.MapEdgeIndex(i, n), n))
		}
	}
	assert.True(t, TransposeAndReverse.Transposed())
	assert.True(t, TransposeAndReverse.Reversed())
	assert.True(t, ReverseAxis.Reversed())
	assert.False(t, ReverseAxis.Transposed())
	assert.True(t, TransposeIdentity.Transposed())
	assert.False(t, TransposeIdentity.Reversed())
	assert.Equal(t, 4, ReverseAxis.MapEdgeIndex(2, 7))
	assert.Equal(t, 2, Identity.MapEdgeIndex(2, 7))
}

func TestSideHelpers(t *testing.T) {
	assert.Equal(t, East, West.Opposite())
	assert.Equal(t, South, North.Opposite())
	assert.Equal(t, partition.AxisX, East.Axis())
	assert.Equal(t, partition.AxisY, South.Axis())
	assert.True(t, West.IsLow())
	assert.False(t, North.IsLow())

	for _, c := range []Corner{SouthWest, SouthEast, NorthWest, NorthEast} {
		ew, ns := c.Sides()
		assert.Equal(t, c, cornerOf(ew, ns))
	}
}
