package halo

import (
	"gonum.org/v1/gonum/floats"

	"github.com/gridcore/halogrid/grid"
)

// averageNorthPole replaces the north halo of every pole-touching
// region with the per-level mean over all their north-row interior
// cells. The row collapsing to a point makes neighbor copies
// meaningless there; the collective mean keeps every region's view of
// the pole identical, which is why this phase runs before any pairwise
// copy. Masked-out cells are excluded from the mean.
func averageNorthPole(fields []*grid.Field, poleRegions []int) {
	if len(poleRegions) == 0 {
		return
	}
	nz := fields[poleRegions[0]].Grid.Nz

	for k := 0; k < nz; k++ {
		var vals []float64
		for _, r := range poleRegions {
			var (
				f  = fields[r]
				lg = f.Grid
				j  = lg.Ny - 1
			)
			for i := 0; i < lg.Nx; i++ {
				if f.Active(i, j) {
					vals = append(vals, f.At(i, j, k))
				}
			}
		}
		if len(vals) == 0 {
			continue
		}
		mean := floats.Sum(vals) / float64(len(vals))

		// Broadcast across the padded width; the point has no east or
		// west, so the corner blocks hold the mean too.
		for _, r := range poleRegions {
			var (
				f  = fields[r]
				lg = f.Grid
			)
			for d := 0; d < lg.Halo; d++ {
				for i := -lg.Halo; i < lg.Nx+lg.Halo; i++ {
					f.Set(i, lg.Ny+d, k, mean)
				}
			}
		}
	}
}
