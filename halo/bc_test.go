package halo

import (
	"testing"

	"github.com/notargets/gocfd/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridcore/halogrid/connect"
	"github.com/gridcore/halogrid/grid"
	"github.com/gridcore/halogrid/multiregion"
	"github.com/gridcore/halogrid/partition"
)

func TestParseBCSet(t *testing.T) {
	set := ParseBCSet(map[string]string{
		"south": "no_slip",
		"North": "outflow",
		"bogus": "wall",
	})
	assert.Equal(t, utils.BCWall, set[connect.South])
	assert.Equal(t, utils.BCOutflow, set[connect.North])
	assert.Len(t, set, 2, "unknown side names are dropped")
}

func TestWallAppliers(t *testing.T) {
	c := stripContainer(t, partition.Periodic, partition.Bounded, false)
	mf, err := c.CreateField("u", grid.CellCenter)
	require.NoError(t, err)
	fillGlobal(c, mf)

	eng := NewEngine(c, nil)
	bcs := BCSet{
		connect.South: utils.BCWall,
		connect.North: utils.BCSlipWall,
	}
	require.NoError(t, eng.Exchange(mf, bcs))

	f := mf[1]
	lg := f.Grid
	for i := 0; i < lg.Nx; i++ {
		// No-slip mirrors with negation, slip mirrors directly.
		assert.Equal(t, -f.At(i, 0, 0), f.At(i, -1, 0))
		assert.Equal(t, -f.At(i, 1, 0), f.At(i, -2, 0))
		assert.Equal(t, f.At(i, lg.Ny-1, 0), f.At(i, lg.Ny, 0))
		assert.Equal(t, f.At(i, lg.Ny-2, 0), f.At(i, lg.Ny+1, 0))
	}
}

func TestDirichletApplier(t *testing.T) {
	c := stripContainer(t, partition.Periodic, partition.Bounded, false)
	mf, err := c.CreateField("theta", grid.CellCenter)
	require.NoError(t, err)
	fillGlobal(c, mf)

	Dirichlet(273.15)(mf[0], connect.South)
	for i := 0; i < mf[0].Grid.Nx; i++ {
		assert.Equal(t, 273.15, mf[0].At(i, -1, 0))
		assert.Equal(t, 273.15, mf[0].At(i, -2, 1))
	}
	// Interior untouched.
	assert.Equal(t, encodeGlobal(0, 0, 0), mf[0].At(0, 0, 0))
}

func TestUnknownConditionFallsBackToZeroGradient(t *testing.T) {
	c := stripContainer(t, partition.Periodic, partition.Bounded, false)
	mf, err := c.CreateField("theta", grid.CellCenter)
	require.NoError(t, err)
	fillGlobal(c, mf)

	eng := NewEngine(c, nil)
	require.NoError(t, eng.Exchange(mf, BCSet{connect.South: utils.BCIsothermal}))
	assert.Equal(t, mf[2].At(1, 0, 0), mf[2].At(1, -1, 0))
}

func TestApplyThenExchangeSeparation(t *testing.T) {
	// Halos written by an exchange must survive untouched through a
	// compute phase that only writes interiors.
	c := stripContainer(t, partition.Periodic, partition.Bounded, false)
	mf, err := c.CreateField("theta", grid.CellCenter)
	require.NoError(t, err)
	fillGlobal(c, mf)

	eng := NewEngine(c, nil)
	require.NoError(t, eng.Exchange(mf, nil))
	west := mf[0].At(-1, 3, 0)

	require.NoError(t, c.Apply(func(r *multiregion.Region) error {
		r.Fields["theta"].FillInterior(func(i, j, k int) float64 { return 7 })
		return nil
	}))
	assert.Equal(t, west, mf[0].At(-1, 3, 0))
}
