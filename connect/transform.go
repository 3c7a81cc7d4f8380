package connect

// Transform aligns a neighbor's boundary slab into this region's halo
// frame. Along the one-dimensional edge a transform either keeps or
// reverses the running index; the transpose flag records that the
// neighbor's x-like axis becomes this region's y-like axis (a rotated
// panel edge), which is what forces vector components to mix.
//
// The table of transforms per side is built once at graph construction
// and looked up per exchange; it is never re-derived per access.
type Transform uint8

const (
	// Identity copies the neighbor slab in edge order.
	Identity Transform = iota

	// ReverseAxis copies the neighbor slab with the edge index reversed.
	ReverseAxis

	// TransposeIdentity swaps the edge axes without reversing.
	TransposeIdentity

	// TransposeAndReverse swaps the edge axes and reverses the running
	// index; this is the transform of every rotated cubed-sphere edge.
	TransposeAndReverse
)

func (t Transform) String() string {
	switch t {
	case Identity:
		return "Identity"
	case ReverseAxis:
		return "ReverseAxis"
	case TransposeIdentity:
		return "TransposeIdentity"
	case TransposeAndReverse:
		return "TransposeAndReverse"
	}
	return "Unknown"
}

// Transposed reports whether the neighbor's edge runs along the other
// axis kind than ours.
func (t Transform) Transposed() bool {
	return t == TransposeIdentity || t == TransposeAndReverse
}

// Reversed reports whether the edge index runs backwards.
func (t Transform) Reversed() bool {
	return t == ReverseAxis || t == TransposeAndReverse
}

// Inverse returns the transform that maps our frame back into the
// neighbor's. Both the transpose and the reversal are self-inverse in
// the edge-index representation, so every transform is its own inverse;
// the method exists so call sites state intent rather than rely on that
// algebraic accident.
func (t Transform) Inverse() Transform {
	return t
}

// MapEdgeIndex maps position i of an edge of length n through the
// transform's reversal.
func (t Transform) MapEdgeIndex(i, n int) int {
	if t.Reversed() {
		return n - 1 - i
	}
	return i
}
