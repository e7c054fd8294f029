package field

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Field is allocated storage for one named quantity on a grid. A field is
// created once, through Grid.Allocate or by wrapping caller-owned data, and
// is only mutated in place afterwards.
type Field struct {
	Data  []float64
	Shape Shape

	// Surface and Bottom hold per-column ghost values for column fields,
	// filled by the boundary condition. Nil for lateral fields.
	Surface []float64
	Bottom  []float64

	grid *Grid
	bc   BoundaryCondition
}

// Wrap adopts caller-owned storage as a field on the given grid. The data
// length must match the shape; ownership stays with the caller.
func Wrap(g *Grid, s Shape, data []float64) (*Field, error) {
	if len(data) != g.Len(s) {
		return nil, fmt.Errorf("field: wrapped data has %d cells, %s shape needs %d",
			len(data), s, g.Len(s))
	}
	f := &Field{Data: data, Shape: s, grid: g}
	if s == Column {
		f.Surface = make([]float64, g.Columns)
		f.Bottom = make([]float64, g.Columns)
	}
	return f, nil
}

// Grid returns the grid the field was allocated on.
func (f *Field) Grid() *Grid { return f.grid }

// At reads the value at (column, level). For lateral fields lev is ignored.
func (f *Field) At(col, lev int) float64 {
	if f.Shape == Lateral {
		return f.Data[col]
	}
	return f.Data[f.grid.Index(col, lev)]
}

// Set writes the value at (column, level). For lateral fields lev is ignored.
func (f *Field) Set(col, lev int, v float64) {
	if f.Shape == Lateral {
		f.Data[col] = v
		return
	}
	f.Data[f.grid.Index(col, lev)] = v
}

// Zero resets every cell to zero without touching ghost values.
func (f *Field) Zero() {
	for i := range f.Data {
		f.Data[i] = 0
	}
}

// Fill sets every cell to v.
func (f *Field) Fill(v float64) {
	for i := range f.Data {
		f.Data[i] = v
	}
}

// CopyFrom copies the cell contents of src into f. Both fields must have
// been allocated with the same shape on an identical grid.
func (f *Field) CopyFrom(src *Field) error {
	if len(f.Data) != len(src.Data) {
		return fmt.Errorf("field: copy between mismatched sizes %d and %d",
			len(src.Data), len(f.Data))
	}
	copy(f.Data, src.Data)
	if f.Surface != nil && src.Surface != nil {
		copy(f.Surface, src.Surface)
		copy(f.Bottom, src.Bottom)
	}
	return nil
}

// AddScaled computes f += alpha * src cellwise, the primitive the explicit
// integrators are built from.
func (f *Field) AddScaled(alpha float64, src *Field) {
	floats.AddScaled(f.Data, alpha, src.Data)
}

// Scale multiplies every cell by alpha.
func (f *Field) Scale(alpha float64) {
	floats.Scale(alpha, f.Data)
}

// Mean returns the arithmetic mean over all cells.
func (f *Field) Mean() float64 {
	if len(f.Data) == 0 {
		return 0
	}
	return floats.Sum(f.Data) / float64(len(f.Data))
}

// IsValid reports whether every cell is finite.
func (f *Field) IsValid() bool {
	for _, v := range f.Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// FillBoundary applies the field's boundary condition for the current clock
// time. Fields without a boundary condition are left untouched.
func (f *Field) FillBoundary(c *Clock) {
	if f.bc != nil {
		f.bc.FillBoundary(f, c)
	}
}

// SetBoundary replaces the field's boundary condition. Used when a
// container is constructed with caller-supplied boundary overrides.
func (f *Field) SetBoundary(bc BoundaryCondition) { f.bc = bc }
