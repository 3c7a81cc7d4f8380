package halo

import (
	"github.com/gridcore/halogrid/connect"
	"github.com/gridcore/halogrid/grid"
)

// edgeLen returns the number of interior cells along one side.
func edgeLen(lg *grid.LocalGrid, s connect.Side) int {
	switch s {
	case connect.West, connect.East:
		return lg.Ny
	default:
		return lg.Nx
	}
}

// span returns the number of cells addressed along side s. The wide
// form extends a south or north side across the full padded width, so
// a pass over those sides after the east-west pass also defines the
// diagonal corner blocks. Wide spans require an Identity transform;
// axis decompositions guarantee that, rotated panel edges never run
// wide.
func span(lg *grid.LocalGrid, s connect.Side, wide bool) int {
	n := edgeLen(lg, s)
	if wide && (s == connect.South || s == connect.North) {
		n += 2 * lg.Halo
	}
	return n
}

// donorCell maps (depth from shared edge, edge index) to donor
// coordinates for the given side. Depth 0 is the layer touching the
// edge. Wide south/north indices start in the donor's west halo.
func donorCell(lg *grid.LocalGrid, s connect.Side, d, m int, wide bool) (i, j int) {
	switch s {
	case connect.West:
		return d, m
	case connect.East:
		return lg.Nx - 1 - d, m
	case connect.South:
		if wide {
			m -= lg.Halo
		}
		return m, d
	default: // North
		if wide {
			m -= lg.Halo
		}
		return m, lg.Ny - 1 - d
	}
}

// haloCell maps (depth, edge index) to receiver halo coordinates behind
// the given side. Depth 0 is the halo layer touching the interior.
func haloCell(lg *grid.LocalGrid, s connect.Side, d, m int, wide bool) (i, j int) {
	switch s {
	case connect.West:
		return -1 - d, m
	case connect.East:
		return lg.Nx + d, m
	case connect.South:
		if wide {
			m -= lg.Halo
		}
		return m, -1 - d
	default: // North
		if wide {
			m -= lg.Halo
		}
		return m, lg.Ny + d
	}
}

// extractSlab copies the H layers adjacent to side s out of f,
// level-major, depth then edge index. Narrow slabs read interior cells
// only; wide south/north slabs also read the donor's east-west halo
// columns, which the east-west pass has already refreshed.
func extractSlab(f *grid.Field, s connect.Side, h int, wide bool) []float64 {
	var (
		lg   = f.Grid
		n    = span(lg, s, wide)
		slab = make([]float64, lg.Nz*h*n)
	)
	for k := 0; k < lg.Nz; k++ {
		for d := 0; d < h; d++ {
			base := (k*h + d) * n
			for m := 0; m < n; m++ {
				i, j := donorCell(lg, s, d, m, wide)
				slab[base+m] = f.At(i, j, k)
			}
		}
	}
	return slab
}

// writeHalo places a donor slab into f's halo behind side s, mapping
// edge indices through the entry's transform and negating when sign is
// -1. Narrow writes stay inside the interior index range and leave the
// corner blocks alone; wide south/north writes cover them.
func writeHalo(f *grid.Field, s connect.Side, t connect.Transform, sign float64, slab []float64, h int, wide bool) {
	var (
		lg = f.Grid
		n  = span(lg, s, wide)
	)
	for k := 0; k < lg.Nz; k++ {
		for d := 0; d < h; d++ {
			base := (k*h + d) * n
			for m := 0; m < n; m++ {
				i, j := haloCell(lg, s, d, m, wide)
				f.Set(i, j, k, sign*slab[base+t.MapEdgeIndex(m, n)])
			}
		}
	}
}
