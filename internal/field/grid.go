package field

import "fmt"

// Shape selects how much storage a quantity needs on a grid.
type Shape int

const (
	// Lateral quantities carry one value per column (fluxes at the
	// surface, snow depth, leaf area).
	Lateral Shape = iota
	// Column quantities carry one value per column per vertical level
	// (soil temperature, saturation).
	Column
)

func (s Shape) String() string {
	switch s {
	case Lateral:
		return "lateral"
	case Column:
		return "column"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// Grid is a collection of independent soil columns sharing one vertical
// discretization. Columns do not exchange information within a kernel, so
// per-cell work parallelizes trivially.
type Grid struct {
	Columns   int
	Levels    int
	Thickness []float64 // layer thickness top-down [m], len == Levels
}

// NewGrid builds a grid of columns with the given layer thicknesses.
func NewGrid(columns int, thickness []float64) (*Grid, error) {
	if columns <= 0 {
		return nil, fmt.Errorf("grid: columns must be positive, got %d", columns)
	}
	if len(thickness) == 0 {
		return nil, fmt.Errorf("grid: at least one vertical layer required")
	}
	for i, dz := range thickness {
		if dz <= 0 {
			return nil, fmt.Errorf("grid: layer %d thickness must be positive, got %f", i, dz)
		}
	}
	th := make([]float64, len(thickness))
	copy(th, thickness)
	return &Grid{Columns: columns, Levels: len(th), Thickness: th}, nil
}

// UniformGrid builds a grid whose layers all have thickness dz.
func UniformGrid(columns, levels int, dz float64) (*Grid, error) {
	th := make([]float64, levels)
	for i := range th {
		th[i] = dz
	}
	return NewGrid(columns, th)
}

// Len returns the number of cells a field of the given shape occupies.
func (g *Grid) Len(s Shape) int {
	if s == Lateral {
		return g.Columns
	}
	return g.Columns * g.Levels
}

// Index maps (column, level) to the flat cell index of a column field.
func (g *Grid) Index(col, lev int) int {
	return col*g.Levels + lev
}

// Depth returns the depth of the midpoint of level lev below the surface.
func (g *Grid) Depth(lev int) float64 {
	d := 0.0
	for i := 0; i < lev; i++ {
		d += g.Thickness[i]
	}
	return d + 0.5*g.Thickness[lev]
}

// Allocate creates a zeroed field of the given shape on this grid. Column
// fields additionally get per-column surface and bottom ghost slots which
// the boundary condition fills each step.
func (g *Grid) Allocate(s Shape, bc BoundaryCondition) *Field {
	f := &Field{
		Data:  make([]float64, g.Len(s)),
		Shape: s,
		grid:  g,
		bc:    bc,
	}
	if s == Column {
		f.Surface = make([]float64, g.Columns)
		f.Bottom = make([]float64, g.Columns)
	}
	return f
}
