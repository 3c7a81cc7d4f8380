package multiregion

import (
	"fmt"
	"log"

	"github.com/notargets/gocca"

	"github.com/gridcore/halogrid/connect"
	"github.com/gridcore/halogrid/grid"
	"github.com/gridcore/halogrid/partition"
)

// Region is one partition's working set: its local grid, the device it
// computes on, and its named fields. A nil device means host execution.
type Region struct {
	ID     int
	Grid   *grid.LocalGrid
	Device *gocca.OCCADevice
	Fields map[string]*grid.Field
}

// MultiField is one logical field split across all regions, indexed by
// region ID.
type MultiField []*grid.Field

// RegionContainer holds the decomposed grid: the global description,
// the partition scheme, the connectivity graph, and one Region per
// partition. Construction builds and validates everything up front so
// exchange-time code can assume a consistent graph.
type RegionContainer struct {
	Spec   grid.GlobalSpec
	Scheme partition.Scheme
	Graph  *connect.Graph

	Regions []*Region

	// Devices is the pool regions are assigned to; DeviceOf[r] indexes
	// into it, -1 when region r runs on the host.
	Devices  []*gocca.OCCADevice
	DeviceOf []int
}

// NewContainer partitions spec by scheme and wires every region. The
// devices slice may be empty (all regions run on the host); a non-empty
// slice is distributed round-robin, which callers can rebalance with
// AssignDevicesBalanced before creating fields.
func NewContainer(spec grid.GlobalSpec, scheme partition.Scheme, devices []*gocca.OCCADevice) (*RegionContainer, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	for d, dev := range devices {
		if dev == nil {
			return nil, fmt.Errorf("%w: device %d is nil", ErrDevice, d)
		}
	}
	if scheme.Kind == partition.CubedSpherePanels {
		if spec.Nx != spec.Ny {
			// Rotated panel edges map one axis onto the other; that
			// only lines up for square panels.
			return nil, fmt.Errorf("%w: cubed-sphere panels must be square, got %dx%d",
				partition.ErrConfig, spec.Nx, spec.Ny)
		}
		if spec.NorthPole {
			return nil, fmt.Errorf("%w: a cubed sphere has no polar fold",
				partition.ErrConfig)
		}
	}

	axisSize := spec.Nx
	if scheme.Kind != partition.CubedSpherePanels && scheme.Axis == partition.AxisY {
		axisSize = spec.Ny
	}
	if err := scheme.Validate(axisSize); err != nil {
		return nil, err
	}

	graph, err := connect.BuildGraph(scheme, spec.BoundaryX, spec.BoundaryY)
	if err != nil {
		return nil, err
	}
	if err := graph.Validate(); err != nil {
		return nil, err
	}

	n := scheme.RegionCount()
	c := &RegionContainer{
		Spec:     spec,
		Scheme:   scheme,
		Graph:    graph,
		Regions:  make([]*Region, n),
		Devices:  devices,
		DeviceOf: assignRoundRobin(n, len(devices)),
	}
	for r := 0; r < n; r++ {
		lg, err := grid.NewLocalGrid(spec, scheme, r)
		if err != nil {
			return nil, err
		}
		c.Regions[r] = &Region{
			ID:     r,
			Grid:   lg,
			Device: c.deviceFor(r),
			Fields: make(map[string]*grid.Field),
		}
	}

	log.Printf("Container: %d regions, %d devices, boundaries x=%s y=%s",
		n, len(devices), spec.BoundaryX, spec.BoundaryY)
	return c, nil
}

func (c *RegionContainer) deviceFor(r int) *gocca.OCCADevice {
	if c.DeviceOf[r] < 0 {
		return nil
	}
	return c.Devices[c.DeviceOf[r]]
}

// Local returns region r.
func (c *RegionContainer) Local(r int) (*Region, error) {
	if r < 0 || r >= len(c.Regions) {
		return nil, fmt.Errorf("%w: region %d outside [0,%d)",
			partition.ErrConfig, r, len(c.Regions))
	}
	return c.Regions[r], nil
}

// CreateField allocates one zeroed block per region under the given
// name and returns the pieces as a MultiField. Creating a name twice is
// an error; fields are never silently replaced.
func (c *RegionContainer) CreateField(name string, loc grid.Location) (MultiField, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty field name", partition.ErrConfig)
	}
	if _, ok := c.Regions[0].Fields[name]; ok {
		return nil, fmt.Errorf("%w: field %q already exists", partition.ErrConfig, name)
	}
	mf := make(MultiField, len(c.Regions))
	for r, reg := range c.Regions {
		f := grid.NewField(reg.Grid, loc)
		reg.Fields[name] = f
		mf[r] = f
	}
	return mf, nil
}

// Field looks up a previously created field by name.
func (c *RegionContainer) Field(name string) (MultiField, bool) {
	if _, ok := c.Regions[0].Fields[name]; !ok {
		return nil, false
	}
	mf := make(MultiField, len(c.Regions))
	for r, reg := range c.Regions {
		mf[r] = reg.Fields[name]
	}
	return mf, true
}

// InferBoundaryKind reconstructs the global boundary kind along the
// partitioned axis from the per-region side topologies. The graph's
// ring walk supplies the collective confirmation that distinguishes a
// closed periodic ring from a chain of interior regions.
func (c *RegionContainer) InferBoundaryKind() (partition.BoundaryKind, error) {
	if c.Scheme.Kind == partition.CubedSpherePanels {
		return 0, fmt.Errorf("%w: cubed-sphere panels have no per-axis global kind",
			partition.ErrTopology)
	}
	locals := make([]partition.SideTopology, len(c.Regions))
	for r, reg := range c.Regions {
		locals[r] = reg.Grid.Topo(c.Scheme.Axis)
	}
	return partition.ReconstructKind(locals, c.Graph.RingClosed())
}
