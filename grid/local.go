package grid

import (
	"fmt"

	"github.com/gridcore/halogrid/partition"
)

// LocalGrid is one region's slice of the global grid: interior sizes,
// halo depth, global offsets, and the per-axis local boundary kinds
// derived by the topology classifier. Created once; never mutated.
type LocalGrid struct {
	Region int

	// Interior cell counts; halo cells come on top.
	Nx, Ny, Nz int
	Halo       int

	// Global index of this region's first interior cell per axis.
	OffsetX, OffsetY int

	// Local boundary kinds along each axis.
	TopoX, TopoY partition.SideTopology

	// Panel is the cubed-sphere panel index, or -1 away from panels.
	Panel int
}

// NewLocalGrid sizes region r against the scheme and classifies its
// sides. The partitioned axis gets position-dependent kinds; the other
// axis keeps the global kind in every region.
func NewLocalGrid(spec GlobalSpec, scheme partition.Scheme, r int) (*LocalGrid, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	n := scheme.RegionCount()
	if r < 0 || r >= n {
		return nil, fmt.Errorf("%w: region %d outside [0,%d)", partition.ErrConfig, r, n)
	}

	lg := &LocalGrid{
		Region: r,
		Nz:     spec.Nz,
		Halo:   spec.Halo,
		Panel:  scheme.PanelOf(r),
	}

	if scheme.Kind == partition.CubedSpherePanels {
		// Panels are Nx by Ny patches of the sphere, fully connected to
		// their neighbors; the partitioned axis sub-splits within one
		// panel.
		sz, err := scheme.LocalSize(spec.Nx, r)
		if err != nil {
			return nil, err
		}
		off, err := scheme.Offset(spec.Nx, r)
		if err != nil {
			return nil, err
		}
		lg.Nx, lg.Ny = sz, spec.Ny
		lg.OffsetX = off
		lg.TopoX = partition.SideTopology{Low: partition.LocalConnected, High: partition.LocalConnected}
		lg.TopoY = lg.TopoX
		return lg, nil
	}

	partGlobal, otherGlobal := spec.BoundaryX, spec.BoundaryY
	globalSize := spec.Nx
	if scheme.Axis == partition.AxisY {
		partGlobal, otherGlobal = spec.BoundaryY, spec.BoundaryX
		globalSize = spec.Ny
	}

	sz, err := scheme.LocalSize(globalSize, r)
	if err != nil {
		return nil, err
	}
	off, err := scheme.Offset(globalSize, r)
	if err != nil {
		return nil, err
	}
	partTopo, err := partition.Classify(partGlobal, n, r)
	if err != nil {
		return nil, err
	}
	otherTopo, err := partition.Classify(otherGlobal, 1, 0)
	if err != nil {
		return nil, err
	}

	if scheme.Axis == partition.AxisX {
		lg.Nx, lg.Ny = sz, spec.Ny
		lg.OffsetX = off
		lg.TopoX, lg.TopoY = partTopo, otherTopo
	} else {
		lg.Nx, lg.Ny = spec.Nx, sz
		lg.OffsetY = off
		lg.TopoX, lg.TopoY = otherTopo, partTopo
	}
	if lg.Nx < spec.Halo || lg.Ny < spec.Halo {
		return nil, fmt.Errorf("%w: region %d interior (%d,%d) thinner than halo depth %d",
			partition.ErrConfig, r, lg.Nx, lg.Ny, spec.Halo)
	}
	return lg, nil
}

// Topo returns the side topology along the given axis.
func (lg *LocalGrid) Topo(a partition.Axis) partition.SideTopology {
	if a == partition.AxisX {
		return lg.TopoX
	}
	return lg.TopoY
}
