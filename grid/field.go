package grid

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Location marks where a field's values sit within a cell. Staggered
// locations share the cell-centered storage shape; the stagger only
// matters to the discretization consuming the data.
type Location uint8

const (
	CellCenter Location = iota
	FaceX               // staggered on x-normal faces (u-like)
	FaceY               // staggered on y-normal faces (v-like)
)

func (l Location) String() string {
	switch l {
	case CellCenter:
		return "CellCenter"
	case FaceX:
		return "FaceX"
	case FaceY:
		return "FaceY"
	}
	return "Unknown"
}

// Field is one region's halo-padded data block. Storage is a single
// contiguous slice in x-fastest order, (Nx+2H) by (Ny+2H) per vertical
// level, Nz levels. Interior cells are owned exclusively by the physics
// collaborator; halo cells are written only by the halo engine.
type Field struct {
	Grid *LocalGrid
	Loc  Location

	data []float64

	// mask flags inactive columns (land points on ocean grids), one
	// plane of (Nx+2H)*(Ny+2H); nil means every column is active.
	// Inactive cells are excluded from pole averaging.
	mask []bool
}

// NewField allocates a zeroed field on lg.
func NewField(lg *LocalGrid, loc Location) *Field {
	px, py := lg.Nx+2*lg.Halo, lg.Ny+2*lg.Halo
	return &Field{
		Grid: lg,
		Loc:  loc,
		data: make([]float64, px*py*lg.Nz),
	}
}

// paddedDims returns the per-level storage dimensions.
func (f *Field) paddedDims() (px, py int) {
	return f.Grid.Nx + 2*f.Grid.Halo, f.Grid.Ny + 2*f.Grid.Halo
}

// index maps interior-relative coordinates to the flat offset. Valid
// i is [-H, Nx+H), j is [-H, Ny+H), k is [0, Nz).
func (f *Field) index(i, j, k int) int {
	h := f.Grid.Halo
	px, py := f.paddedDims()
	ii, jj := i+h, j+h
	if ii < 0 || ii >= px || jj < 0 || jj >= py || k < 0 || k >= f.Grid.Nz {
		panic(fmt.Sprintf("grid: index (%d,%d,%d) outside field %dx%dx%d halo %d",
			i, j, k, f.Grid.Nx, f.Grid.Ny, f.Grid.Nz, h))
	}
	return (k*py+jj)*px + ii
}

// At reads the value at interior-relative (i,j,k); negative indices and
// indices past the interior address halo cells.
func (f *Field) At(i, j, k int) float64 {
	return f.data[f.index(i, j, k)]
}

// Set writes the value at interior-relative (i,j,k).
func (f *Field) Set(i, j, k int, v float64) {
	f.data[f.index(i, j, k)] = v
}

// Level returns a dense matrix view of one vertical level, rows indexed
// by padded y and columns by padded x. The view shares the field's
// backing storage; writes through it are writes to the field.
func (f *Field) Level(k int) *mat.Dense {
	px, py := f.paddedDims()
	plane := px * py
	return mat.NewDense(py, px, f.data[k*plane:(k+1)*plane])
}

// Data exposes the raw backing slice, x-fastest then y then z.
func (f *Field) Data() []float64 {
	return f.data
}

// SetMask marks interior-relative column (i,j) active or inactive.
func (f *Field) SetMask(i, j int, active bool) {
	px, py := f.paddedDims()
	if f.mask == nil {
		f.mask = make([]bool, px*py)
		for n := range f.mask {
			f.mask[n] = true
		}
	}
	h := f.Grid.Halo
	f.mask[(j+h)*px+(i+h)] = active
}

// Active reports whether interior-relative column (i,j) participates in
// pole averaging. Fields without a mask are fully active.
func (f *Field) Active(i, j int) bool {
	if f.mask == nil {
		return true
	}
	h := f.Grid.Halo
	px, _ := f.paddedDims()
	return f.mask[(j+h)*px+(i+h)]
}

// FillInterior sets every interior cell to fn(i,j,k) with local
// interior coordinates; halo cells are untouched.
func (f *Field) FillInterior(fn func(i, j, k int) float64) {
	for k := 0; k < f.Grid.Nz; k++ {
		for j := 0; j < f.Grid.Ny; j++ {
			for i := 0; i < f.Grid.Nx; i++ {
				f.Set(i, j, k, fn(i, j, k))
			}
		}
	}
}

// Zero clears the entire block, halos included.
func (f *Field) Zero() {
	for n := range f.data {
		f.data[n] = 0
	}
}
