package multiregion

import (
	"fmt"

	"github.com/gridcore/halogrid/grid"
	"github.com/gridcore/halogrid/partition"
)

// globalGrid describes the undecomposed grid as a single region so the
// assembled field reuses the ordinary halo-padded storage. Cubed-sphere
// panels concatenate along x.
func (c *RegionContainer) globalGrid() *grid.LocalGrid {
	var (
		spec = c.Spec
		nx   = spec.Nx
		ny   = spec.Ny
	)
	if c.Scheme.Kind == partition.CubedSpherePanels {
		nx = c.Scheme.GlobalExtent(spec.Nx)
	}
	topoX, _ := partition.Classify(spec.BoundaryX, 1, 0)
	topoY, _ := partition.Classify(spec.BoundaryY, 1, 0)
	if c.Scheme.Kind == partition.CubedSpherePanels {
		// The panel strip has no per-axis global kind; halos on the
		// assembled array are filled by extrapolation only.
		topoX, _ = partition.Classify(partition.Bounded, 1, 0)
		topoY = topoX
	}
	return &grid.LocalGrid{
		Region: -1,
		Nx:     nx,
		Ny:     ny,
		Nz:     spec.Nz,
		Halo:   spec.Halo,
		TopoX:  topoX,
		TopoY:  topoY,
		Panel:  -1,
	}
}

// Reconstruct assembles one global field from the regions' interiors,
// placing each at its partition offset, then fills the global halos:
// periodic axes wrap, bounded axes extend the edge value outward.
// Region halo contents never enter the result.
func (c *RegionContainer) Reconstruct(mf MultiField) (*grid.Field, error) {
	if err := c.checkMultiField(mf); err != nil {
		return nil, err
	}
	gg := c.globalGrid()
	if err := c.checkTiling(gg); err != nil {
		return nil, err
	}
	out := grid.NewField(gg, mf[0].Loc)

	for r, f := range mf {
		lg := c.Regions[r].Grid
		for k := 0; k < lg.Nz; k++ {
			for j := 0; j < lg.Ny; j++ {
				for i := 0; i < lg.Nx; i++ {
					out.Set(lg.OffsetX+i, lg.OffsetY+j, k, f.At(i, j, k))
				}
			}
		}
	}

	c.fillGlobalHalos(out)
	return out, nil
}

// Scatter distributes a global field's interior back onto the regions,
// overwriting region interiors only. Halos are left as they were;
// callers exchange afterwards if they need them coherent.
func (c *RegionContainer) Scatter(global *grid.Field, mf MultiField) error {
	if err := c.checkMultiField(mf); err != nil {
		return err
	}
	gg := c.globalGrid()
	if err := c.checkTiling(gg); err != nil {
		return err
	}
	if global.Grid.Nx != gg.Nx || global.Grid.Ny != gg.Ny || global.Grid.Nz != gg.Nz {
		return fmt.Errorf("%w: global field is %dx%dx%d, expected %dx%dx%d",
			partition.ErrConfig,
			global.Grid.Nx, global.Grid.Ny, global.Grid.Nz, gg.Nx, gg.Ny, gg.Nz)
	}

	for r, f := range mf {
		lg := c.Regions[r].Grid
		for k := 0; k < lg.Nz; k++ {
			for j := 0; j < lg.Ny; j++ {
				for i := 0; i < lg.Nx; i++ {
					f.Set(i, j, k, global.At(lg.OffsetX+i, lg.OffsetY+j, k))
				}
			}
		}
	}
	return nil
}

// checkTiling verifies every region's interior lands inside the global
// extent. A fractional split whose ceil-rounded sizes overshoot the
// global size is accepted at construction with a logged warning, but
// its regions overlap past the global array, so offset-based gather
// and scatter are undefined for it.
func (c *RegionContainer) checkTiling(gg *grid.LocalGrid) error {
	for _, reg := range c.Regions {
		lg := reg.Grid
		if lg.OffsetX+lg.Nx > gg.Nx {
			return fmt.Errorf("%w: region %d occupies x range [%d,%d) of a global extent of %d; achieved sizes overshoot the axis",
				partition.ErrConfig, reg.ID, lg.OffsetX, lg.OffsetX+lg.Nx, gg.Nx)
		}
		if lg.OffsetY+lg.Ny > gg.Ny {
			return fmt.Errorf("%w: region %d occupies y range [%d,%d) of a global extent of %d; achieved sizes overshoot the axis",
				partition.ErrConfig, reg.ID, lg.OffsetY, lg.OffsetY+lg.Ny, gg.Ny)
		}
	}
	return nil
}

func (c *RegionContainer) checkMultiField(mf MultiField) error {
	if len(mf) != len(c.Regions) {
		return fmt.Errorf("%w: field has %d pieces for %d regions",
			partition.ErrConfig, len(mf), len(c.Regions))
	}
	for r, f := range mf {
		if f == nil {
			return fmt.Errorf("%w: region %d piece is nil", partition.ErrConfig, r)
		}
		if f.Loc != mf[0].Loc {
			return fmt.Errorf("%w: region %d piece at %s, region 0 at %s",
				partition.ErrConfig, r, f.Loc, mf[0].Loc)
		}
	}
	return nil
}

// fillGlobalHalos extends the assembled interior into the halo band.
// X first over interior rows, then y over the full padded width so the
// corner blocks pick up the already-filled x halos.
func (c *RegionContainer) fillGlobalHalos(f *grid.Field) {
	var (
		lg     = f.Grid
		h      = lg.Halo
		perX   = lg.TopoX.Low == partition.LocalPeriodic
		perY   = lg.TopoY.Low == partition.LocalPeriodic
		nx, ny = lg.Nx, lg.Ny
	)
	for k := 0; k < lg.Nz; k++ {
		for d := 1; d <= h; d++ {
			for j := 0; j < ny; j++ {
				if perX {
					f.Set(-d, j, k, f.At(nx-d, j, k))
					f.Set(nx-1+d, j, k, f.At(d-1, j, k))
				} else {
					f.Set(-d, j, k, f.At(0, j, k))
					f.Set(nx-1+d, j, k, f.At(nx-1, j, k))
				}
			}
		}
		for d := 1; d <= h; d++ {
			for i := -h; i < nx+h; i++ {
				if perY {
					f.Set(i, -d, k, f.At(i, ny-d, k))
					f.Set(i, ny-1+d, k, f.At(i, d-1, k))
				} else {
					f.Set(i, -d, k, f.At(i, 0, k))
					f.Set(i, ny-1+d, k, f.At(i, ny-1, k))
				}
			}
		}
	}
}
