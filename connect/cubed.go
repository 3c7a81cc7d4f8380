package connect

import (
	"fmt"
	"sort"

	"github.com/gridcore/halogrid/partition"
)

// panelEdge is one row of the fixed cubed-sphere adjacency table.
type panelEdge struct {
	neighbor int
	side     Side
	t        Transform
}

// panelTable is the six-panel cubed-sphere layout, indexed by
// [panel][side] for the horizontal sides. Twelve cube edges: the six
// joining opposite side kinds (east-west or north-south on both
// panels) are Identity; the six rotated edges, where a north/south
// edge meets a west/east edge and the running index reverses, are
// TransposeAndReverse. Panel 0's North edge matching panel 2's West
// edge read in reverse order is the canonical rotated case.
//
// Rotated edges also flip the sign of the tangential vector component,
// because the coordinate frame turns 90 degrees across them.
var panelTable = [partition.NumPanels][NumHorizontal]panelEdge{
	0: {
		West:  {4, North, TransposeAndReverse},
		East:  {1, West, Identity},
		South: {5, North, Identity},
		North: {2, West, TransposeAndReverse},
	},
	1: {
		West:  {0, East, Identity},
		East:  {3, South, TransposeAndReverse},
		South: {5, East, TransposeAndReverse},
		North: {2, South, Identity},
	},
	2: {
		West:  {0, North, TransposeAndReverse},
		East:  {3, West, Identity},
		South: {1, North, Identity},
		North: {4, West, TransposeAndReverse},
	},
	3: {
		West:  {2, East, Identity},
		East:  {5, South, TransposeAndReverse},
		South: {1, East, TransposeAndReverse},
		North: {4, South, Identity},
	},
	4: {
		West:  {2, North, TransposeAndReverse},
		East:  {5, West, Identity},
		South: {3, North, Identity},
		North: {0, West, TransposeAndReverse},
	},
	5: {
		West:  {4, East, Identity},
		East:  {1, South, TransposeAndReverse},
		South: {3, East, TransposeAndReverse},
		North: {0, South, Identity},
	},
}

func buildCubedSphereGraph(scheme partition.Scheme) (*Graph, error) {
	if scheme.Subdivisions != 1 {
		// A rotated edge of a sub-split panel would need several donor
		// regions on one side, breaking the single-neighbor invariant.
		// Sub-splitting stays available for sizing and reconstruction.
		return nil, fmt.Errorf(
			"%w: cubed-sphere connectivity requires subdivisions == 1, got %d",
			partition.ErrConfig, scheme.Subdivisions)
	}
	g := newGraph(scheme, partition.Bounded, partition.Bounded, partition.NumPanels)
	for p := 0; p < partition.NumPanels; p++ {
		for _, s := range HorizontalSides {
			pe := panelTable[p][s]
			g.setEntry(p, s, pe.neighbor, pe.side, pe.t, pe.t.Transposed())
		}
	}
	corners, err := buildCornerDonors()
	if err != nil {
		return nil, err
	}
	g.Corners = corners
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// sideTo returns the side of panel p facing panel q.
func sideTo(p, q int) (Side, bool) {
	for _, s := range HorizontalSides {
		if panelTable[p][s].neighbor == q {
			return s, true
		}
	}
	return West, false
}

// buildCornerDonors derives the corner donor table from the adjacency
// table. Each cube vertex joins exactly three panels; the donor is the
// lowest panel ID of the triple, and the donor's matching corner is
// where its two sides facing the other two panels meet.
func buildCornerDonors() ([]CornerEntry, error) {
	type vertex struct {
		members []CornerEntry // Donor fields filled after grouping
		panels  [3]int
	}
	vertices := make(map[[3]int]*vertex)

	for p := 0; p < partition.NumPanels; p++ {
		for _, c := range []Corner{SouthWest, SouthEast, NorthWest, NorthEast} {
			ew, ns := c.Sides()
			trio := []int{p, panelTable[p][ew].neighbor, panelTable[p][ns].neighbor}
			sort.Ints(trio)
			key := [3]int{trio[0], trio[1], trio[2]}
			v, ok := vertices[key]
			if !ok {
				v = &vertex{panels: key}
				vertices[key] = v
			}
			v.members = append(v.members, CornerEntry{Region: p, C: c})
		}
	}

	var entries []CornerEntry
	for key, v := range vertices {
		if len(v.members) != 3 {
			return nil, fmt.Errorf("%w: vertex %v joined by %d corners, want 3",
				ErrConnectivity, key, len(v.members))
		}
		donor := key[0] // lowest panel ID by construction of the sorted key
		dc, err := donorCorner(donor, key)
		if err != nil {
			return nil, err
		}
		for _, m := range v.members {
			m.Donor = donor
			m.DonorCorner = dc
			entries = append(entries, m)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Region != entries[j].Region {
			return entries[i].Region < entries[j].Region
		}
		return entries[i].C < entries[j].C
	})
	return entries, nil
}

// donorCorner locates the donor panel's corner at the given vertex.
func donorCorner(donor int, panels [3]int) (Corner, error) {
	var sides []Side
	for _, q := range panels {
		if q == donor {
			continue
		}
		s, ok := sideTo(donor, q)
		if !ok {
			return SouthWest, fmt.Errorf("%w: panel %d does not border panel %d",
				ErrConnectivity, donor, q)
		}
		sides = append(sides, s)
	}
	if len(sides) != 2 {
		return SouthWest, fmt.Errorf("%w: vertex %v yields %d donor sides",
			ErrConnectivity, panels, len(sides))
	}
	var ew, ns Side
	for _, s := range sides {
		if s.Axis() == partition.AxisX {
			ew = s
		} else {
			ns = s
		}
	}
	if sides[0].Axis() == sides[1].Axis() {
		return SouthWest, fmt.Errorf("%w: vertex %v sides %v do not meet at a corner",
			ErrConnectivity, panels, sides)
	}
	return cornerOf(ew, ns), nil
}
