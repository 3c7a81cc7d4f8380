package connect

import "github.com/gridcore/halogrid/partition"

// Side identifies one face of a region's local index box. Halo exchange
// concerns the four horizontal sides; Bottom/Top never cross a rotation
// and are handled by boundary conditions alone.
type Side uint8

const (
	West Side = iota
	East
	South
	North
	Bottom
	Top
)

// NumHorizontal is the count of sides participating in halo exchange.
const NumHorizontal = 4

// HorizontalSides lists the exchangeable sides in storage order.
var HorizontalSides = [NumHorizontal]Side{West, East, South, North}

func (s Side) String() string {
	switch s {
	case West:
		return "West"
	case East:
		return "East"
	case South:
		return "South"
	case North:
		return "North"
	case Bottom:
		return "Bottom"
	case Top:
		return "Top"
	}
	return "Unknown"
}

// Opposite returns the side facing s across the region.
func (s Side) Opposite() Side {
	switch s {
	case West:
		return East
	case East:
		return West
	case South:
		return North
	case North:
		return South
	case Bottom:
		return Top
	case Top:
		return Bottom
	}
	return s
}

// Axis returns the axis a horizontal side bounds: West/East bound X,
// South/North bound Y.
func (s Side) Axis() partition.Axis {
	if s == West || s == East {
		return partition.AxisX
	}
	return partition.AxisY
}

// IsLow reports whether the side faces lower global indices.
func (s Side) IsLow() bool {
	return s == West || s == South || s == Bottom
}

// Corner identifies one horizontal corner of a region, named by the two
// sides that meet there.
type Corner uint8

const (
	SouthWest Corner = iota
	SouthEast
	NorthWest
	NorthEast
)

func (c Corner) String() string {
	switch c {
	case SouthWest:
		return "SouthWest"
	case SouthEast:
		return "SouthEast"
	case NorthWest:
		return "NorthWest"
	case NorthEast:
		return "NorthEast"
	}
	return "Unknown"
}

// Sides returns the east-west and north-south sides meeting at c.
func (c Corner) Sides() (ew, ns Side) {
	switch c {
	case SouthWest:
		return West, South
	case SouthEast:
		return East, South
	case NorthWest:
		return West, North
	default:
		return East, North
	}
}

// cornerOf is the inverse of Sides.
func cornerOf(ew, ns Side) Corner {
	if ew == West {
		if ns == South {
			return SouthWest
		}
		return NorthWest
	}
	if ns == South {
		return SouthEast
	}
	return NorthEast
}
