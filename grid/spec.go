package grid

import (
	"fmt"

	"github.com/gridcore/halogrid/partition"
)

// Extents are the physical bounds of the global domain.
type Extents struct {
	X0, X1 float64
	Y0, Y1 float64
	Z0, Z1 float64
}

// GlobalSpec describes the undecomposed grid: sizes, per-axis boundary
// kinds, halo depth and physical extents. It is immutable once created;
// every local grid and connectivity graph derives from it.
type GlobalSpec struct {
	Nx, Ny, Nz int

	BoundaryX partition.BoundaryKind
	BoundaryY partition.BoundaryKind

	// Halo is the ghost-cell depth on each horizontal side.
	Halo int

	Extents Extents

	// NorthPole marks a tripolar-style fold: the designated north row
	// collapses to a single physical point whose halo fill is an
	// average over active cells, not a copy.
	NorthPole bool
}

// Validate checks the spec parameters; violations are ErrConfig.
func (s GlobalSpec) Validate() error {
	if s.Nx <= 0 || s.Ny <= 0 || s.Nz <= 0 {
		return fmt.Errorf("%w: grid sizes (%d,%d,%d) must be positive",
			partition.ErrConfig, s.Nx, s.Ny, s.Nz)
	}
	if s.Halo <= 0 {
		return fmt.Errorf("%w: halo depth %d must be positive", partition.ErrConfig, s.Halo)
	}
	if s.Halo > s.Nx || s.Halo > s.Ny {
		return fmt.Errorf("%w: halo depth %d exceeds interior extent (%d,%d)",
			partition.ErrConfig, s.Halo, s.Nx, s.Ny)
	}
	if s.NorthPole && s.BoundaryY == partition.Periodic {
		return fmt.Errorf("%w: a north pole fold requires a bounded Y axis", partition.ErrConfig)
	}
	return nil
}
