package halo

import (
	"strings"

	"github.com/notargets/gocfd/utils"

	"github.com/gridcore/halogrid/connect"
	"github.com/gridcore/halogrid/grid"
)

// BoundaryApplier fills the halo band behind one wall side of one
// region. Appliers see only their own region's field and must write
// halo cells only.
type BoundaryApplier func(f *grid.Field, s connect.Side)

// BCSet names the condition on each wall side. Sides absent from the
// set get zero-gradient. The names follow the usual CFD vocabulary so
// configurations can say "wall", "outflow", "dirichlet" and so on.
type BCSet map[connect.Side]utils.BCType

// ParseBCSet converts side-name to condition-name pairs, e.g.
// {"south": "wall", "north": "outflow"}.
func ParseBCSet(names map[string]string) BCSet {
	set := make(BCSet, len(names))
	for sideName, bcName := range names {
		for _, s := range connect.HorizontalSides {
			if strings.EqualFold(sideName, s.String()) {
				set[s] = utils.ParseBCName(bcName)
			}
		}
	}
	return set
}

// ZeroGradient extends the edge value outward, the discrete Neumann
// condition. It is the default for every wall without an explicit
// condition, and the reconstruction fill uses the same rule. Appliers
// span the padded width on south and north sides, so wall corners are
// defined once the east-west pass has run.
func ZeroGradient(f *grid.Field, s connect.Side) {
	var (
		lg = f.Grid
		n  = span(lg, s, true)
	)
	for k := 0; k < lg.Nz; k++ {
		for d := 0; d < lg.Halo; d++ {
			for m := 0; m < n; m++ {
				si, sj := donorCell(lg, s, 0, m, true)
				hi, hj := haloCell(lg, s, d, m, true)
				f.Set(hi, hj, k, f.At(si, sj, k))
			}
		}
	}
}

// Dirichlet returns an applier that pins the halo to a fixed value.
func Dirichlet(value float64) BoundaryApplier {
	return func(f *grid.Field, s connect.Side) {
		var (
			lg = f.Grid
			n  = span(lg, s, true)
		)
		for k := 0; k < lg.Nz; k++ {
			for d := 0; d < lg.Halo; d++ {
				for m := 0; m < n; m++ {
					hi, hj := haloCell(lg, s, d, m, true)
					f.Set(hi, hj, k, value)
				}
			}
		}
	}
}

// Mirror reflects the interior across the edge, optionally negating,
// which gives slip (sign +1) and no-slip (sign -1) walls for velocity
// components normal to the boundary.
func Mirror(sign float64) BoundaryApplier {
	return func(f *grid.Field, s connect.Side) {
		var (
			lg = f.Grid
			n  = span(lg, s, true)
		)
		for k := 0; k < lg.Nz; k++ {
			for d := 0; d < lg.Halo; d++ {
				for m := 0; m < n; m++ {
					si, sj := donorCell(lg, s, d, m, true)
					hi, hj := haloCell(lg, s, d, m, true)
					f.Set(hi, hj, k, sign*f.At(si, sj, k))
				}
			}
		}
	}
}

// applierFor resolves a condition to its halo fill. Conditions with no
// halo-level meaning here (inflow profiles, thermal conditions) fall
// back to zero-gradient; the physics collaborator refines them inside
// its own stencils.
func applierFor(bc utils.BCType) BoundaryApplier {
	switch bc {
	case utils.BCWall:
		return Mirror(-1)
	case utils.BCSlipWall, utils.BCSymmetry:
		return Mirror(1)
	case utils.BCDirichlet:
		return Dirichlet(0)
	default:
		return ZeroGradient
	}
}
