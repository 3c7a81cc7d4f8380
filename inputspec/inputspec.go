// Package inputspec reads and writes the YAML description of a grid
// decomposition: the global grid, the partition scheme, the wall
// boundary conditions, and (on output) the derived per-region layout.
package inputspec

import (
	"fmt"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/gridcore/halogrid/grid"
	"github.com/gridcore/halogrid/multiregion"
	"github.com/gridcore/halogrid/partition"
)

// Parameters obtained from the YAML input file.
type Description struct {
	Title     string `yaml:"Title"`
	Nx        int    `yaml:"Nx"`
	Ny        int    `yaml:"Ny"`
	Nz        int    `yaml:"Nz"`
	BoundaryX string `yaml:"BoundaryX"`
	BoundaryY string `yaml:"BoundaryY"`
	Halo      int    `yaml:"Halo"`
	NorthPole bool   `yaml:"NorthPole"`

	Extents ExtentsDescription `yaml:"Extents"`

	Scheme SchemeDescription `yaml:"Scheme"`

	// BCs maps side names to condition names, e.g. south: no_slip.
	BCs map[string]string `yaml:"BCs"`

	// Regions is filled on output; it is informative and ignored on
	// input, since the layout is fully derived.
	Regions []RegionDescription `yaml:"Regions,omitempty"`
}

// ExtentsDescription carries the physical domain bounds.
type ExtentsDescription struct {
	X0 float64 `yaml:"X0"`
	X1 float64 `yaml:"X1"`
	Y0 float64 `yaml:"Y0"`
	Y1 float64 `yaml:"Y1"`
	Z0 float64 `yaml:"Z0"`
	Z1 float64 `yaml:"Z1"`
}

type SchemeDescription struct {
	Kind         string    `yaml:"Kind"` // equal, fractional, explicit, cubedsphere
	Axis         string    `yaml:"Axis"` // x or y
	Count        int       `yaml:"Count,omitempty"`
	Fractions    []float64 `yaml:"Fractions,omitempty"`
	Sizes        []int     `yaml:"Sizes,omitempty"`
	Subdivisions int       `yaml:"Subdivisions,omitempty"`
}

type RegionDescription struct {
	ID      int    `yaml:"ID"`
	Nx      int    `yaml:"Nx"`
	Ny      int    `yaml:"Ny"`
	OffsetX int    `yaml:"OffsetX"`
	OffsetY int    `yaml:"OffsetY"`
	Panel   int    `yaml:"Panel"`
	TopoX   string `yaml:"TopoX"`
	TopoY   string `yaml:"TopoY"`
}

func (d *Description) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, d); err != nil {
		return fmt.Errorf("%w: %v", partition.ErrConfig, err)
	}
	return nil
}

func (d *Description) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

// Spec converts the global grid portion of the description.
func (d *Description) Spec() (grid.GlobalSpec, error) {
	bx, err := parseBoundary(d.BoundaryX)
	if err != nil {
		return grid.GlobalSpec{}, fmt.Errorf("BoundaryX: %w", err)
	}
	by, err := parseBoundary(d.BoundaryY)
	if err != nil {
		return grid.GlobalSpec{}, fmt.Errorf("BoundaryY: %w", err)
	}
	spec := grid.GlobalSpec{
		Nx: d.Nx, Ny: d.Ny, Nz: d.Nz,
		BoundaryX: bx,
		BoundaryY: by,
		Halo:      d.Halo,
		NorthPole: d.NorthPole,
		Extents: grid.Extents{
			X0: d.Extents.X0, X1: d.Extents.X1,
			Y0: d.Extents.Y0, Y1: d.Extents.Y1,
			Z0: d.Extents.Z0, Z1: d.Extents.Z1,
		},
	}
	return spec, spec.Validate()
}

// PartitionScheme converts the scheme portion of the description.
func (d *Description) PartitionScheme() (partition.Scheme, error) {
	axis := partition.AxisX
	switch strings.ToLower(strings.TrimSpace(d.Scheme.Axis)) {
	case "", "x":
	case "y":
		axis = partition.AxisY
	default:
		return partition.Scheme{}, fmt.Errorf("%w: unknown axis %q",
			partition.ErrConfig, d.Scheme.Axis)
	}

	switch strings.ToLower(strings.TrimSpace(d.Scheme.Kind)) {
	case "equal":
		return partition.NewEqualSplit(axis, d.Scheme.Count), nil
	case "fractional":
		return partition.NewFractionalSplit(axis, d.Scheme.Fractions), nil
	case "explicit":
		return partition.NewExplicitSizes(axis, d.Scheme.Sizes), nil
	case "cubedsphere":
		sub := d.Scheme.Subdivisions
		if sub == 0 {
			sub = 1
		}
		return partition.NewCubedSpherePanels(sub), nil
	}
	return partition.Scheme{}, fmt.Errorf("%w: unknown scheme kind %q",
		partition.ErrConfig, d.Scheme.Kind)
}

// Build constructs the container the description names.
func (d *Description) Build() (*multiregion.RegionContainer, error) {
	spec, err := d.Spec()
	if err != nil {
		return nil, err
	}
	scheme, err := d.PartitionScheme()
	if err != nil {
		return nil, err
	}
	return multiregion.NewContainer(spec, scheme, nil)
}

// Describe captures a built container, including the derived regions,
// so the full layout can be persisted or inspected.
func Describe(c *multiregion.RegionContainer, title string) *Description {
	d := &Description{
		Title: title,
		Nx:    c.Spec.Nx, Ny: c.Spec.Ny, Nz: c.Spec.Nz,
		BoundaryX: strings.ToLower(c.Spec.BoundaryX.String()),
		BoundaryY: strings.ToLower(c.Spec.BoundaryY.String()),
		Halo:      c.Spec.Halo,
		NorthPole: c.Spec.NorthPole,
		Extents: ExtentsDescription{
			X0: c.Spec.Extents.X0, X1: c.Spec.Extents.X1,
			Y0: c.Spec.Extents.Y0, Y1: c.Spec.Extents.Y1,
			Z0: c.Spec.Extents.Z0, Z1: c.Spec.Extents.Z1,
		},
		Scheme: describeScheme(c.Scheme),
	}
	for _, reg := range c.Regions {
		lg := reg.Grid
		d.Regions = append(d.Regions, RegionDescription{
			ID:      reg.ID,
			Nx:      lg.Nx,
			Ny:      lg.Ny,
			OffsetX: lg.OffsetX,
			OffsetY: lg.OffsetY,
			Panel:   lg.Panel,
			TopoX:   topoString(lg.TopoX),
			TopoY:   topoString(lg.TopoY),
		})
	}
	return d
}

func describeScheme(s partition.Scheme) SchemeDescription {
	sd := SchemeDescription{Axis: strings.ToLower(s.Axis.String())}
	switch s.Kind {
	case partition.EqualSplit:
		sd.Kind = "equal"
		sd.Count = s.Count
	case partition.FractionalSplit:
		sd.Kind = "fractional"
		sd.Fractions = s.Fractions
	case partition.ExplicitSizes:
		sd.Kind = "explicit"
		sd.Sizes = s.Sizes
	case partition.CubedSpherePanels:
		sd.Kind = "cubedsphere"
		sd.Axis = ""
		sd.Subdivisions = s.Subdivisions
	}
	return sd
}

func topoString(st partition.SideTopology) string {
	return fmt.Sprintf("%s/%s", st.Low, st.High)
}

func parseBoundary(name string) (partition.BoundaryKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "bounded", "wall":
		return partition.Bounded, nil
	case "periodic":
		return partition.Periodic, nil
	}
	return 0, fmt.Errorf("%w: unknown boundary kind %q", partition.ErrConfig, name)
}

// Print reports the description in the input-parameter echo style.
func (d *Description) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", d.Title)
	fmt.Printf("[%dx%dx%d]\t= Grid size\n", d.Nx, d.Ny, d.Nz)
	fmt.Printf("[%s, %s]\t= Boundaries (x, y)\n", d.BoundaryX, d.BoundaryY)
	fmt.Printf("[%d]\t\t\t= Halo depth\n", d.Halo)
	fmt.Printf("[%s]\t\t= Scheme\n", d.Scheme.Kind)
	for _, r := range d.Regions {
		fmt.Printf("Region[%d] = %dx%d at (%d,%d) topo x=%s y=%s\n",
			r.ID, r.Nx, r.Ny, r.OffsetX, r.OffsetY, r.TopoX, r.TopoY)
	}
}
