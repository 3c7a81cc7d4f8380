package connect

import (
	"fmt"

	"github.com/gridcore/halogrid/partition"
)

// Entry maps one side of one region onto the neighbor that donates its
// halo data, with the transform aligning the donor slab into this
// region's halo frame. FlipSign marks edges where the tangential
// (east-west-like) vector component changes sign because the coordinate
// frame rotates across the edge.
type Entry struct {
	Region       int
	S            Side
	Neighbor     int
	NeighborSide Side
	T            Transform
	FlipSign     bool
}

func (e *Entry) String() string {
	return fmt.Sprintf("(%d,%s) -> (%d,%s,%s)", e.Region, e.S, e.Neighbor, e.NeighborSide, e.T)
}

// CornerEntry designates the donor for one region corner where three
// panels meet. Ordinary two-neighbor halo fill cannot cover these
// points, and averaging would break conservation, so the value is
// copied from a single donor chosen by a fixed priority: the lowest
// panel ID among the three panels sharing the vertex. A donor may be
// the region itself, in which case its halo corner is filled from its
// own interior corner.
type CornerEntry struct {
	Region      int
	C           Corner
	Donor       int
	DonorCorner Corner
}

// link is the exclusive side binding: exactly one of wall/entry holds.
type link struct {
	wall  bool
	entry *Entry
}

// Graph records the complete side connectivity of a decomposition.
// It is built once per (scheme, global grid) pair, validated, and then
// shared read-only by every region; no locking is ever needed.
type Graph struct {
	NumRegions           int
	Scheme               partition.Scheme
	BoundaryX, BoundaryY partition.BoundaryKind

	links   [][NumHorizontal]link
	Corners []CornerEntry
}

// BuildGraph constructs and validates the connectivity graph for a
// partition scheme and the global boundary kinds. Cubed-sphere schemes
// ignore the boundary kinds: the sphere is closed.
func BuildGraph(scheme partition.Scheme, bx, by partition.BoundaryKind) (*Graph, error) {
	if scheme.Kind == partition.CubedSpherePanels {
		return buildCubedSphereGraph(scheme)
	}
	return buildAxisGraph(scheme, bx, by)
}

func newGraph(scheme partition.Scheme, bx, by partition.BoundaryKind, numRegions int) *Graph {
	return &Graph{
		NumRegions: numRegions,
		Scheme:     scheme,
		BoundaryX:  bx,
		BoundaryY:  by,
		links:      make([][NumHorizontal]link, numRegions),
	}
}

func (g *Graph) setWall(r int, s Side) {
	g.links[r][s].wall = true
}

func (g *Graph) setEntry(r int, s Side, nbr int, nbrSide Side, t Transform, flip bool) {
	g.links[r][s].entry = &Entry{
		Region: r, S: s,
		Neighbor: nbr, NeighborSide: nbrSide,
		T: t, FlipSign: flip,
	}
}

// Neighbor returns the connectivity entry for (region, side), or false
// when the side is a physical boundary.
func (g *Graph) Neighbor(r int, s Side) (*Entry, bool) {
	e := g.links[r][s].entry
	return e, e != nil
}

// IsWall reports whether (region, side) is a physical boundary.
func (g *Graph) IsWall(r int, s Side) bool {
	return g.links[r][s].wall
}

// sidesOf returns the low/high sides bounding an axis.
func sidesOf(axis partition.Axis) (low, high Side) {
	if axis == partition.AxisX {
		return West, East
	}
	return South, North
}

func buildAxisGraph(scheme partition.Scheme, bx, by partition.BoundaryKind) (*Graph, error) {
	n := scheme.RegionCount()
	if n <= 0 {
		return nil, fmt.Errorf("%w: scheme %s yields %d regions",
			partition.ErrConfig, scheme.Kind, n)
	}
	g := newGraph(scheme, bx, by, n)

	partKind, otherKind := bx, by
	if scheme.Axis == partition.AxisY {
		partKind, otherKind = by, bx
	}
	low, high := sidesOf(scheme.Axis)
	oLow, oHigh := sidesOf(otherAxis(scheme.Axis))

	for r := 0; r < n; r++ {
		st, err := partition.Classify(partKind, n, r)
		if err != nil {
			return nil, err
		}
		g.bindAxisSide(r, low, st.Low, (r-1+n)%n, n)
		g.bindAxisSide(r, high, st.High, (r+1)%n, n)

		// The unpartitioned axis spans the full extent in every region:
		// a periodic axis wraps onto the region itself.
		if otherKind == partition.Periodic {
			g.setEntry(r, oLow, r, oHigh, Identity, false)
			g.setEntry(r, oHigh, r, oLow, Identity, false)
		} else {
			g.setWall(r, oLow)
			g.setWall(r, oHigh)
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Graph) bindAxisSide(r int, s Side, kind partition.LocalKind, wrapNbr, n int) {
	switch kind {
	case partition.LocalWall:
		g.setWall(r, s)
	case partition.LocalPeriodic:
		// Single region on a periodic axis wraps onto itself.
		g.setEntry(r, s, r, s.Opposite(), Identity, false)
	case partition.LocalConnected:
		g.setEntry(r, s, wrapNbr, s.Opposite(), Identity, false)
	}
}

func otherAxis(a partition.Axis) partition.Axis {
	if a == partition.AxisX {
		return partition.AxisY
	}
	return partition.AxisX
}

// RingClosed performs the closure check backing global topology
// reconstruction: it confirms, from the graph rather than any single
// region's local view, that the partitioned axis forms a ring. This is
// the collective reduction of partition.ReconstructKind.
func (g *Graph) RingClosed() bool {
	if g.Scheme.Kind == partition.CubedSpherePanels {
		return false
	}
	n := g.NumRegions
	if n < 2 {
		low, _ := sidesOf(g.Scheme.Axis)
		e, ok := g.Neighbor(0, low)
		return ok && e.Neighbor == 0
	}
	low, high := sidesOf(g.Scheme.Axis)
	first, ok := g.Neighbor(0, low)
	if !ok || first.Neighbor != n-1 {
		return false
	}
	last, ok := g.Neighbor(n-1, high)
	return ok && last.Neighbor == 0
}

// Validate asserts the two graph invariants: every side binds exactly
// one of {wall, single neighbor entry}, and every entry has a symmetric
// back-entry carrying the inverse transform. Violations fail fast with
// the offending region and side.
func (g *Graph) Validate() error {
	for r := 0; r < g.NumRegions; r++ {
		for _, s := range HorizontalSides {
			l := g.links[r][s]
			if l.wall && l.entry != nil {
				return fmt.Errorf("%w: region %d side %s is both wall and connected",
					ErrConnectivity, r, s)
			}
			if !l.wall && l.entry == nil {
				return fmt.Errorf("%w: region %d side %s left unassigned",
					ErrConnectivity, r, s)
			}
			if l.entry == nil {
				continue
			}
			e := l.entry
			if e.Neighbor < 0 || e.Neighbor >= g.NumRegions {
				return fmt.Errorf("%w: region %d side %s points at region %d of %d",
					ErrConnectivity, r, s, e.Neighbor, g.NumRegions)
			}
			back := g.links[e.Neighbor][e.NeighborSide].entry
			if back == nil {
				return fmt.Errorf("%w: %s has no back-entry at (%d,%s)",
					ErrConnectivity, e, e.Neighbor, e.NeighborSide)
			}
			if back.Neighbor != r || back.NeighborSide != s {
				return fmt.Errorf("%w: %s asymmetric with %s", ErrConnectivity, e, back)
			}
			if back.T != e.T.Inverse() {
				return fmt.Errorf("%w: %s back-transform %s is not the inverse of %s",
					ErrConnectivity, e, back.T, e.T)
			}
			if back.FlipSign != e.FlipSign {
				return fmt.Errorf("%w: %s sign flag disagrees with back-entry", ErrConnectivity, e)
			}
		}
	}
	for _, ce := range g.Corners {
		if ce.Region < 0 || ce.Region >= g.NumRegions ||
			ce.Donor < 0 || ce.Donor >= g.NumRegions {
			return fmt.Errorf("%w: corner entry (%d,%s) donor %d out of range",
				ErrConnectivity, ce.Region, ce.C, ce.Donor)
		}
	}
	return nil
}
