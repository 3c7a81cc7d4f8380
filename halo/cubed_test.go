package halo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridcore/halogrid/grid"
	"github.com/gridcore/halogrid/multiregion"
	"github.com/gridcore/halogrid/partition"
)

func sphereContainer(t *testing.T) *multiregion.RegionContainer {
	t.Helper()
	spec := grid.GlobalSpec{
		Nx: 4, Ny: 4, Nz: 1,
		BoundaryX: partition.Bounded,
		BoundaryY: partition.Bounded,
		Halo:      1,
	}
	c, err := multiregion.NewContainer(spec, partition.NewCubedSpherePanels(1), nil)
	require.NoError(t, err)
	return c
}

// encodePanel makes every cell of every panel distinct so any mapping
// mistake shows up as a wrong value, not a coincidence.
func encodePanel(r, i, j int) float64 {
	return float64(100*r + 10*i + j)
}

func fillPanels(mf multiregion.MultiField) {
	for r, f := range mf {
		rr := r
		f.FillInterior(func(i, j, k int) float64 { return encodePanel(rr, i, j) })
	}
}

func TestSphereStraightEdge(t *testing.T) {
	c := sphereContainer(t)
	mf, err := c.CreateField("theta", grid.CellCenter)
	require.NoError(t, err)
	fillPanels(mf)

	eng := NewEngine(c, nil)
	require.NoError(t, eng.Exchange(mf, nil))

	// Panel 0's east edge meets panel 1's west edge with no rotation:
	// the halo column is panel 1's first interior column, same order.
	for m := 0; m < 4; m++ {
		assert.Equal(t, encodePanel(1, 0, m), mf[0].At(4, m, 0))
	}
	// And the reverse direction.
	for m := 0; m < 4; m++ {
		assert.Equal(t, encodePanel(0, 3, m), mf[1].At(-1, m, 0))
	}
}

func TestSphereRotatedEdge(t *testing.T) {
	c := sphereContainer(t)
	mf, err := c.CreateField("theta", grid.CellCenter)
	require.NoError(t, err)
	fillPanels(mf)

	eng := NewEngine(c, nil)
	require.NoError(t, eng.Exchange(mf, nil))

	// Panel 0's north edge meets panel 2's west edge read in reverse:
	// halo cell m takes panel 2's cell (0, 3-m).
	for m := 0; m < 4; m++ {
		assert.Equal(t, encodePanel(2, 0, 3-m), mf[0].At(m, 4, 0))
	}
	// Walking back across the same edge: panel 2's west halo cell m
	// takes panel 0's cell (3-m, 3).
	for m := 0; m < 4; m++ {
		assert.Equal(t, encodePanel(0, 3-m, 3), mf[2].At(-1, m, 0))
	}
}

func TestSphereCornerDonors(t *testing.T) {
	c := sphereContainer(t)
	mf, err := c.CreateField("theta", grid.CellCenter)
	require.NoError(t, err)
	fillPanels(mf)

	eng := NewEngine(c, nil)
	require.NoError(t, eng.Exchange(mf, nil))

	// The vertex shared by panels 0, 1 and 2 is donated by panel 0's
	// north-east interior corner cell.
	want := encodePanel(0, 3, 3)
	assert.Equal(t, want, mf[0].At(4, 4, 0), "donor's own corner block")
	assert.Equal(t, want, mf[1].At(-1, 4, 0), "panel 1 north-west block")
	assert.Equal(t, want, mf[2].At(-1, -1, 0), "panel 2 south-west block")
}

func TestSphereScalarIdempotent(t *testing.T) {
	c := sphereContainer(t)
	mf, err := c.CreateField("theta", grid.CellCenter)
	require.NoError(t, err)
	fillPanels(mf)

	eng := NewEngine(c, nil)
	require.NoError(t, eng.Exchange(mf, nil))
	first := make([][]float64, len(mf))
	for r, f := range mf {
		first[r] = append([]float64(nil), f.Data()...)
	}
	require.NoError(t, eng.Exchange(mf, nil))
	for r, f := range mf {
		assert.Equal(t, first[r], f.Data())
	}
}

func TestSphereVectorExchange(t *testing.T) {
	c := sphereContainer(t)
	u, err := c.CreateField("u", grid.FaceX)
	require.NoError(t, err)
	v, err := c.CreateField("v", grid.FaceY)
	require.NoError(t, err)

	for r := range u {
		rr := r
		u[r].FillInterior(func(i, j, k int) float64 { return encodePanel(rr, i, j) })
		v[r].FillInterior(func(i, j, k int) float64 { return 5000 + encodePanel(rr, i, j) })
	}

	eng := NewEngine(c, nil)
	require.NoError(t, eng.ExchangeVector(u, v, nil))

	// Straight edge: components pass through unchanged.
	for m := 0; m < 4; m++ {
		assert.Equal(t, encodePanel(1, 0, m), u[0].At(4, m, 0))
		assert.Equal(t, 5000+encodePanel(1, 0, m), v[0].At(4, m, 0))
	}

	// Rotated edge: panel 0's u halo on the north side is sourced from
	// panel 2's v, negated; its v halo from panel 2's u, unchanged.
	for m := 0; m < 4; m++ {
		assert.Equal(t, -(5000 + encodePanel(2, 0, 3-m)), u[0].At(m, 4, 0))
		assert.Equal(t, encodePanel(2, 0, 3-m), v[0].At(m, 4, 0))
	}
}

func TestSphereStaggeredComponentAloneRejected(t *testing.T) {
	c := sphereContainer(t)
	u, err := c.CreateField("u", grid.FaceX)
	require.NoError(t, err)

	eng := NewEngine(c, nil)
	assert.ErrorIs(t, eng.Exchange(u, nil), ErrExchange)
	assert.ErrorIs(t, eng.ExchangeVector(u, u, nil), ErrExchange,
		"a component paired with itself is not a vector")
}
