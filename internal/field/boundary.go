package field

// BoundaryCondition fills the surface and bottom ghost values of a column
// field for the current clock time. Lateral fields have no ghost values and
// ignore their boundary condition.
type BoundaryCondition interface {
	FillBoundary(f *Field, c *Clock)
}

// ConstantBoundary prescribes fixed surface and bottom values (Dirichlet).
type ConstantBoundary struct {
	Surface float64
	Bottom  float64
}

func (b ConstantBoundary) FillBoundary(f *Field, c *Clock) {
	for i := range f.Surface {
		f.Surface[i] = b.Surface
		f.Bottom[i] = b.Bottom
	}
}

// InsulatedBoundary copies the adjacent interior value into the ghost slot,
// giving a zero-gradient (no-flux) boundary.
type InsulatedBoundary struct{}

func (InsulatedBoundary) FillBoundary(f *Field, c *Clock) {
	g := f.grid
	for col := 0; col < g.Columns; col++ {
		f.Surface[col] = f.Data[g.Index(col, 0)]
		f.Bottom[col] = f.Data[g.Index(col, g.Levels-1)]
	}
}

// BoundaryFunc adapts a function to the BoundaryCondition interface, for
// time-varying boundaries driven by forcing data.
type BoundaryFunc func(f *Field, c *Clock)

func (fn BoundaryFunc) FillBoundary(f *Field, c *Clock) { fn(f, c) }
