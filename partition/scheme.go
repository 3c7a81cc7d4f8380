package partition

import (
	"fmt"
	"log"
	"math"
)

// Axis selects the horizontal axis a scheme partitions. Only one axis is
// partitioned at a time; multi-axis decomposition is out of scope.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	}
	return "Unknown"
}

// Kind identifies the partitioning rule of a Scheme.
type Kind uint8

const (
	// EqualSplit divides the global extent into Count regions of equal
	// size; the last region absorbs the integer-division remainder.
	EqualSplit Kind = iota

	// FractionalSplit sizes each region as ceil(globalSize * fraction).
	// Rounding mismatches warn and report, they never fail.
	FractionalSplit

	// ExplicitSizes uses caller-provided sizes that must sum exactly to
	// the global size.
	ExplicitSizes

	// CubedSpherePanels decomposes a six-panel cubed sphere. Panels are
	// always equal; Subdivisions sub-splits each panel along the axis
	// with the EqualSplit rule applied recursively.
	CubedSpherePanels
)

func (k Kind) String() string {
	switch k {
	case EqualSplit:
		return "EqualSplit"
	case FractionalSplit:
		return "FractionalSplit"
	case ExplicitSizes:
		return "ExplicitSizes"
	case CubedSpherePanels:
		return "CubedSpherePanels"
	}
	return "Unknown"
}

// NumPanels is the panel count of a cubed sphere.
const NumPanels = 6

// Scheme describes how the global extent along one axis is split among
// regions. It is pure data, created once at setup and never mutated.
type Scheme struct {
	Kind         Kind
	Axis         Axis
	Count        int       // EqualSplit region count
	Fractions    []float64 // FractionalSplit per-region fractions
	Sizes        []int     // ExplicitSizes per-region sizes
	Subdivisions int       // CubedSpherePanels strips per panel
}

func NewEqualSplit(axis Axis, count int) Scheme {
	return Scheme{Kind: EqualSplit, Axis: axis, Count: count}
}

func NewFractionalSplit(axis Axis, fractions []float64) Scheme {
	return Scheme{Kind: FractionalSplit, Axis: axis, Fractions: fractions}
}

func NewExplicitSizes(axis Axis, sizes []int) Scheme {
	return Scheme{Kind: ExplicitSizes, Axis: axis, Sizes: sizes}
}

// NewCubedSpherePanels always partitions along X; the panel edge length
// is the global size handed to LocalSize.
func NewCubedSpherePanels(subdivisions int) Scheme {
	return Scheme{Kind: CubedSpherePanels, Axis: AxisX, Subdivisions: subdivisions}
}

// RegionCount returns the number of regions the scheme produces.
func (s Scheme) RegionCount() int {
	switch s.Kind {
	case EqualSplit:
		return s.Count
	case FractionalSplit:
		return len(s.Fractions)
	case ExplicitSizes:
		return len(s.Sizes)
	case CubedSpherePanels:
		return NumPanels * s.Subdivisions
	}
	return 0
}

// Validate checks the scheme parameters against the global size along
// the partitioned axis. Violations are ErrConfig; a FractionalSplit
// rounding mismatch only warns (see LocalSizes).
func (s Scheme) Validate(globalSize int) error {
	if globalSize <= 0 {
		return fmt.Errorf("%w: global size %d along %s must be positive",
			ErrConfig, globalSize, s.Axis)
	}
	switch s.Kind {
	case EqualSplit:
		if s.Count <= 0 {
			return fmt.Errorf("%w: EqualSplit count %d must be positive", ErrConfig, s.Count)
		}
	case FractionalSplit:
		if len(s.Fractions) == 0 {
			return fmt.Errorf("%w: FractionalSplit requires at least one fraction", ErrConfig)
		}
		for i, f := range s.Fractions {
			if f <= 0 || f > 1 {
				return fmt.Errorf("%w: fraction[%d] = %g outside (0,1]", ErrConfig, i, f)
			}
		}
	case ExplicitSizes:
		if len(s.Sizes) == 0 {
			return fmt.Errorf("%w: ExplicitSizes requires at least one size", ErrConfig)
		}
		sum := 0
		for i, sz := range s.Sizes {
			if sz <= 0 {
				return fmt.Errorf("%w: size[%d] = %d must be positive", ErrConfig, i, sz)
			}
			sum += sz
		}
		if sum != globalSize {
			return fmt.Errorf("%w: explicit sizes sum to %d, global size is %d",
				ErrConfig, sum, globalSize)
		}
	case CubedSpherePanels:
		if s.Subdivisions <= 0 {
			return fmt.Errorf("%w: CubedSpherePanels subdivisions %d must be positive",
				ErrConfig, s.Subdivisions)
		}
	default:
		return fmt.Errorf("%w: unknown scheme kind %d", ErrConfig, s.Kind)
	}
	return nil
}

// equalSize implements the EqualSplit rule for one sub-range: every
// region gets globalSize/count except the last, which absorbs the
// remainder.
func equalSize(globalSize, count, index int) int {
	base := globalSize / count
	if index == count-1 {
		return globalSize - (count-1)*base
	}
	return base
}

func equalOffset(globalSize, count, index int) int {
	return index * (globalSize / count)
}

// LocalSize computes region i's cell count along the partitioned axis.
// For CubedSpherePanels, globalSize is the panel edge length and i
// indexes panel*Subdivisions + strip.
func (s Scheme) LocalSize(globalSize, i int) (int, error) {
	if err := s.Validate(globalSize); err != nil {
		return 0, err
	}
	n := s.RegionCount()
	if i < 0 || i >= n {
		return 0, fmt.Errorf("%w: region index %d outside [0,%d)", ErrConfig, i, n)
	}
	switch s.Kind {
	case EqualSplit:
		return equalSize(globalSize, s.Count, i), nil
	case FractionalSplit:
		return int(math.Ceil(float64(globalSize) * s.Fractions[i])), nil
	case ExplicitSizes:
		return s.Sizes[i], nil
	case CubedSpherePanels:
		return equalSize(globalSize, s.Subdivisions, i%s.Subdivisions), nil
	}
	return 0, fmt.Errorf("%w: unknown scheme kind %d", ErrConfig, s.Kind)
}

// LocalSizes returns the achieved sizes of every region. This is the
// place a FractionalSplit rounding mismatch is detected: it logs the
// achieved sizes and proceeds, per contract.
func (s Scheme) LocalSizes(globalSize int) ([]int, error) {
	if err := s.Validate(globalSize); err != nil {
		return nil, err
	}
	n := s.RegionCount()
	sizes := make([]int, n)
	sum := 0
	for i := 0; i < n; i++ {
		sz, err := s.LocalSize(globalSize, i)
		if err != nil {
			return nil, err
		}
		sizes[i] = sz
		sum += sz
	}
	if s.Kind == FractionalSplit && sum != globalSize {
		log.Printf("partition: fractional split of %d achieves sizes %v (sum %d)",
			globalSize, sizes, sum)
	}
	return sizes, nil
}

// Offset returns the start of region i's interior in the global index
// range: offset(i) = sum of local sizes of regions before i. For
// CubedSpherePanels the panels concatenate along the axis, so region
// (p, strip) starts at p*globalSize + strip offset within the panel.
func (s Scheme) Offset(globalSize, i int) (int, error) {
	if err := s.Validate(globalSize); err != nil {
		return 0, err
	}
	n := s.RegionCount()
	if i < 0 || i >= n {
		return 0, fmt.Errorf("%w: region index %d outside [0,%d)", ErrConfig, i, n)
	}
	if s.Kind == CubedSpherePanels {
		panel := i / s.Subdivisions
		strip := i % s.Subdivisions
		return panel*globalSize + equalOffset(globalSize, s.Subdivisions, strip), nil
	}
	off := 0
	for j := 0; j < i; j++ {
		sz, err := s.LocalSize(globalSize, j)
		if err != nil {
			return 0, err
		}
		off += sz
	}
	return off, nil
}

// GlobalExtent is the total index extent along the partitioned axis of
// the assembled global array: six concatenated panels for a cubed
// sphere, the global size otherwise.
func (s Scheme) GlobalExtent(globalSize int) int {
	if s.Kind == CubedSpherePanels {
		return NumPanels * globalSize
	}
	return globalSize
}

// PanelOf returns the panel a region belongs to, or -1 for non-panel
// schemes.
func (s Scheme) PanelOf(i int) int {
	if s.Kind != CubedSpherePanels {
		return -1
	}
	return i / s.Subdivisions
}
