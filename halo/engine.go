package halo

import (
	"fmt"

	"github.com/gridcore/halogrid/connect"
	"github.com/gridcore/halogrid/grid"
	"github.com/gridcore/halogrid/multiregion"
	"github.com/gridcore/halogrid/partition"
)

// Engine updates halos for fields living on one RegionContainer. An
// exchange runs in a fixed phase order:
//
//  1. pole average, collective, before any copy
//  2. west and east sides, walls then neighbor copies
//  3. south and north sides, spanning the padded width on axis
//     decompositions so the diagonal corner blocks are defined
//  4. corner donor fill where three panels meet
//
// Phases read interiors (plus, in phase 3, the halos phase 2 wrote)
// and write halos only, so repeating an exchange with unchanged
// interiors reproduces the same halos.
type Engine struct {
	c *multiregion.RegionContainer
	t Transport
}

// NewEngine wires an engine to a container. A nil transport gets the
// in-memory one.
func NewEngine(c *multiregion.RegionContainer, t Transport) *Engine {
	if t == nil {
		t = MemoryTransport{}
	}
	return &Engine{c: c, t: t}
}

// Exchange refreshes every halo of one scalar field. On cubed-sphere
// decompositions a staggered component must not be exchanged alone,
// because rotated edges source it from the other component; use
// ExchangeVector for those pairs.
func (e *Engine) Exchange(mf multiregion.MultiField, bcs BCSet) error {
	if err := e.checkField(mf); err != nil {
		return err
	}
	if e.rotatedEdges() && mf[0].Loc != grid.CellCenter {
		return fmt.Errorf("%w: %s component exchanged alone across rotated edges",
			ErrExchange, mf[0].Loc)
	}

	self := func(en *connect.Entry) (multiregion.MultiField, float64) {
		return mf, 1
	}
	e.polePhase(mf)
	e.wallPhase(mf, bcs, sidesX)
	if err := e.copyPhase(mf, self, sidesX, false); err != nil {
		return err
	}
	e.wallPhase(mf, bcs, sidesY)
	if err := e.copyPhase(mf, self, sidesY, !e.rotatedEdges()); err != nil {
		return err
	}
	e.cornerPhase(mf)
	return nil
}

// ExchangeVector refreshes a staggered component pair together. On
// rotated edges the components swap: the u halo is sourced from the
// neighbor's v and vice versa, and the east-west-like component takes
// the sign flip recorded on the edge.
func (e *Engine) ExchangeVector(u, v multiregion.MultiField, bcs BCSet) error {
	if err := e.checkField(u); err != nil {
		return err
	}
	if err := e.checkField(v); err != nil {
		return err
	}
	if u[0] == v[0] {
		return fmt.Errorf("%w: vector exchange needs two distinct components", ErrExchange)
	}

	donorU := func(en *connect.Entry) (multiregion.MultiField, float64) {
		if !en.T.Transposed() {
			return u, 1
		}
		if en.FlipSign {
			return v, -1
		}
		return v, 1
	}
	donorV := func(en *connect.Entry) (multiregion.MultiField, float64) {
		if !en.T.Transposed() {
			return v, 1
		}
		return u, 1
	}

	wide := !e.rotatedEdges()
	for _, mf := range [2]multiregion.MultiField{u, v} {
		e.polePhase(mf)
		e.wallPhase(mf, bcs, sidesX)
	}
	if err := e.copyPhase(u, donorU, sidesX, false); err != nil {
		return err
	}
	if err := e.copyPhase(v, donorV, sidesX, false); err != nil {
		return err
	}
	for _, mf := range [2]multiregion.MultiField{u, v} {
		e.wallPhase(mf, bcs, sidesY)
	}
	if err := e.copyPhase(u, donorU, sidesY, wide); err != nil {
		return err
	}
	if err := e.copyPhase(v, donorV, sidesY, wide); err != nil {
		return err
	}
	e.cornerPhase(u)
	e.cornerPhase(v)
	return nil
}

// Step runs one bulk-synchronous step: fn on every region in parallel,
// a full barrier, then a fresh exchange of each listed field. fn never
// observes mid-step halos from this step.
func (e *Engine) Step(fields []multiregion.MultiField, bcs BCSet, fn func(*multiregion.Region) error) error {
	if err := e.c.Apply(fn); err != nil {
		return err
	}
	for _, mf := range fields {
		if err := e.Exchange(mf, bcs); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) rotatedEdges() bool {
	return e.c.Scheme.Kind == partition.CubedSpherePanels
}

func (e *Engine) checkField(mf multiregion.MultiField) error {
	if len(mf) != len(e.c.Regions) {
		return fmt.Errorf("%w: field has %d pieces for %d regions",
			ErrExchange, len(mf), len(e.c.Regions))
	}
	for r, f := range mf {
		if f == nil {
			return fmt.Errorf("%w: region %d piece is nil", ErrExchange, r)
		}
		if f.Grid.Region != r {
			return fmt.Errorf("%w: piece %d belongs to region %d", ErrExchange, r, f.Grid.Region)
		}
	}
	return nil
}

// poleRegions lists the regions whose north side sits on the global
// north boundary.
func (e *Engine) poleRegions() []int {
	var rs []int
	for r, reg := range e.c.Regions {
		if reg.Grid.TopoY.High == partition.LocalWall {
			rs = append(rs, r)
		}
	}
	return rs
}

func (e *Engine) polePhase(mf multiregion.MultiField) {
	if !e.c.Spec.NorthPole {
		return
	}
	averageNorthPole(mf, e.poleRegions())
}

// sidesX and sidesY order the exchange passes: east-west first, then
// south-north over the padded width so axis corners pick up the halos
// the first pass wrote.
var (
	sidesX = []connect.Side{connect.West, connect.East}
	sidesY = []connect.Side{connect.South, connect.North}
)

// wallPhase applies the configured condition to every wall side,
// zero-gradient where none is named. North walls of pole regions are
// owned by the pole phase and skipped here.
func (e *Engine) wallPhase(mf multiregion.MultiField, bcs BCSet, sides []connect.Side) {
	for r, f := range mf {
		for _, s := range sides {
			if !e.c.Graph.IsWall(r, s) {
				continue
			}
			if e.c.Spec.NorthPole && s == connect.North {
				continue
			}
			applier := ZeroGradient
			if bc, ok := bcs[s]; ok {
				applier = applierFor(bc)
			}
			applier(f, s)
		}
	}
}

// copyPhase walks the connected sides in the list and fills each halo
// from the donor picked by donorOf. Narrow slabs read donor interiors
// only; a wide pass also reads the donor's east-west halos, so it must
// run after the full east-west pass has completed for every region.
func (e *Engine) copyPhase(mf multiregion.MultiField, donorOf func(*connect.Entry) (multiregion.MultiField, float64), sides []connect.Side, wide bool) error {
	h := e.c.Spec.Halo
	for r, f := range mf {
		for _, s := range sides {
			en, ok := e.c.Graph.Neighbor(r, s)
			if !ok {
				continue
			}
			src, sign := donorOf(en)
			donor := src[en.Neighbor]

			if got, want := span(donor.Grid, en.NeighborSide, wide), span(f.Grid, s, wide); got != want {
				return fmt.Errorf("%w: edge %s has %d donor cells for %d halo cells",
					ErrExchange, en, got, want)
			}
			slab, err := fetchSlab(e.t, SlabRequest{Donor: donor, Side: en.NeighborSide, Halo: h, Wide: wide})
			if err != nil {
				return fmt.Errorf("edge %s: %w", en, err)
			}
			writeHalo(f, s, en.T, sign, slab, h, wide)
		}
	}
	return nil
}

// cornerPhase fills the halo corner blocks listed in the donor table.
// The vertex is a single degenerate point, so the whole block takes the
// donor's corner interior value for its level.
func (e *Engine) cornerPhase(mf multiregion.MultiField) {
	for _, ce := range e.c.Graph.Corners {
		fillCorner(mf[ce.Region], mf[ce.Donor], ce.C, ce.DonorCorner)
	}
}

func fillCorner(recv, donor *grid.Field, c, dc connect.Corner) {
	dew, dns := dc.Sides()
	di, dj := 0, 0
	if dew == connect.East {
		di = donor.Grid.Nx - 1
	}
	if dns == connect.North {
		dj = donor.Grid.Ny - 1
	}

	var (
		ew, ns = c.Sides()
		lg     = recv.Grid
		h      = lg.Halo
	)
	for k := 0; k < lg.Nz; k++ {
		v := donor.At(di, dj, k)
		for a := 1; a <= h; a++ {
			for b := 1; b <= h; b++ {
				i, j := -a, -b
				if ew == connect.East {
					i = lg.Nx - 1 + a
				}
				if ns == connect.North {
					j = lg.Ny - 1 + b
				}
				recv.Set(i, j, k, v)
			}
		}
	}
}
