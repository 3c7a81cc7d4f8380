package partition

import "fmt"

// BoundaryKind is the global boundary classification of one axis.
type BoundaryKind uint8

const (
	Bounded  BoundaryKind = iota // hard-walled
	Periodic                     // wrap-around
)

func (b BoundaryKind) String() string {
	switch b {
	case Bounded:
		return "Bounded"
	case Periodic:
		return "Periodic"
	}
	return "Unknown"
}

// LocalKind is what one side of one region sees after decomposition.
type LocalKind uint8

const (
	// LocalWall is a physical hard wall, handled by a boundary condition.
	LocalWall LocalKind = iota

	// LocalPeriodic wraps onto the region itself (single region on a
	// periodic axis, or the unpartitioned periodic axis).
	LocalPeriodic

	// LocalConnected faces another region; halo data comes from a
	// neighbor, never from a boundary condition.
	LocalConnected
)

func (k LocalKind) String() string {
	switch k {
	case LocalWall:
		return "Wall"
	case LocalPeriodic:
		return "Periodic"
	case LocalConnected:
		return "Connected"
	}
	return "Unknown"
}

// SideTopology pairs the local kinds of the two sides of one region
// along the partitioned axis. Low is the side toward lower indices
// (west/south), High toward higher indices.
type SideTopology struct {
	Low, High LocalKind
}

// Classify derives one region's local boundary kinds along the
// partitioned axis from the global kind and the region's position.
func Classify(global BoundaryKind, rankCount, rankIndex int) (SideTopology, error) {
	if rankCount <= 0 {
		return SideTopology{}, fmt.Errorf("%w: rank count %d must be positive", ErrConfig, rankCount)
	}
	if rankIndex < 0 || rankIndex >= rankCount {
		return SideTopology{}, fmt.Errorf("%w: rank index %d outside [0,%d)",
			ErrConfig, rankIndex, rankCount)
	}
	if rankCount == 1 {
		// Undecomposed axis keeps the global kind unchanged.
		if global == Periodic {
			return SideTopology{Low: LocalPeriodic, High: LocalPeriodic}, nil
		}
		return SideTopology{Low: LocalWall, High: LocalWall}, nil
	}
	if global == Periodic {
		// No physical wall anywhere; first and last wrap onto each other.
		return SideTopology{Low: LocalConnected, High: LocalConnected}, nil
	}
	switch rankIndex {
	case 0:
		return SideTopology{Low: LocalWall, High: LocalConnected}, nil
	case rankCount - 1:
		return SideTopology{Low: LocalConnected, High: LocalWall}, nil
	default:
		return SideTopology{Low: LocalConnected, High: LocalConnected}, nil
	}
}

// ReconstructKind is the inverse of Classify: given every region's
// local kinds along an axis, infer the global kind. A region cannot
// tell a ring from a mirrored strip locally, so the caller must supply
// ringClosed, the result of an explicit reduction across all regions
// (see multiregion.InferBoundaryKind). Disagreement is ErrTopology.
func ReconstructKind(locals []SideTopology, ringClosed bool) (BoundaryKind, error) {
	if len(locals) == 0 {
		return Bounded, fmt.Errorf("%w: no regions to reconstruct from", ErrTopology)
	}
	if len(locals) == 1 {
		switch locals[0].Low {
		case LocalPeriodic:
			if locals[0].High != LocalPeriodic {
				return Bounded, fmt.Errorf("%w: single region mixes %s/%s",
					ErrTopology, locals[0].Low, locals[0].High)
			}
			return Periodic, nil
		case LocalWall:
			if locals[0].High != LocalWall {
				return Bounded, fmt.Errorf("%w: single region mixes %s/%s",
					ErrTopology, locals[0].Low, locals[0].High)
			}
			return Bounded, nil
		default:
			return Bounded, fmt.Errorf("%w: single region reports Connected sides", ErrTopology)
		}
	}

	allConnected := true
	for _, st := range locals {
		if st.Low != LocalConnected || st.High != LocalConnected {
			allConnected = false
		}
	}
	if allConnected {
		if !ringClosed {
			return Bounded, fmt.Errorf("%w: all regions fully connected but the ring does not close",
				ErrTopology)
		}
		return Periodic, nil
	}

	// Bounded strip: walls exactly at the two ends, interiors connected.
	first, last := locals[0], locals[len(locals)-1]
	ok := first.Low == LocalWall && first.High == LocalConnected &&
		last.Low == LocalConnected && last.High == LocalWall
	for _, st := range locals[1 : len(locals)-1] {
		if st.Low != LocalConnected || st.High != LocalConnected {
			ok = false
		}
	}
	if !ok {
		return Bounded, fmt.Errorf("%w: local kinds %v match neither a ring nor a bounded strip",
			ErrTopology, locals)
	}
	if ringClosed {
		return Bounded, fmt.Errorf("%w: walled strip reports a closed ring", ErrTopology)
	}
	return Bounded, nil
}
