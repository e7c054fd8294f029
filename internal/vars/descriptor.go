package vars

import (
	"fmt"
	"math"

	"github.com/esmtools/terrago/internal/field"
)

// Role partitions variables by how the framework treats their storage.
type Role int

const (
	// Prognostic variables are advanced in time by the integrator.
	Prognostic Role = iota
	// Auxiliary variables are recomputed from prognostic state each step.
	Auxiliary
	// Input variables are refreshed from external forcing each step.
	Input
)

func (r Role) String() string {
	switch r {
	case Prognostic:
		return "prognostic"
	case Auxiliary:
		return "auxiliary"
	case Input:
		return "input"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Domain is the closed interval of physically valid values for a variable.
type Domain struct {
	Min, Max float64
}

// RealLine is the unbounded domain.
var RealLine = Domain{Min: math.Inf(-1), Max: math.Inf(1)}

// UnitInterval is the [0,1] domain of saturations and fractions.
var UnitInterval = Domain{Min: 0, Max: 1}

// Nonnegative is the [0,inf) domain of depths, masses and concentrations.
var Nonnegative = Domain{Min: 0, Max: math.Inf(1)}

// Contains reports whether v lies in the domain.
func (d Domain) Contains(v float64) bool {
	return v >= d.Min && v <= d.Max
}

// FieldSource resolves flat variable names to allocated fields. Implemented
// by the state container; consumed by closures and custom constructors.
type FieldSource interface {
	Field(name string) (*field.Field, error)
}

// Constructor builds a derived auxiliary field from the grid, clock, and
// already-allocated fields. Construction order follows declaration order,
// so a constructor may read any field declared before its own.
type Constructor func(g *field.Grid, c *field.Clock, src FieldSource) (*field.Field, error)

// Descriptor is immutable metadata for one named state quantity. Names are
// unique within one composition level; nested namespaces have independent
// keyspaces.
type Descriptor struct {
	Name        string
	Shape       field.Shape
	Unit        string
	Domain      Domain
	Role        Role
	Description string

	// Closure, if set, marks a prognostic variable as integrated in the
	// driven representation produced by the relation.
	Closure *Closure

	// Boundary is the default boundary condition for prognostic column
	// fields. Caller-supplied overrides at container construction win.
	Boundary field.BoundaryCondition

	// Construct, if set, builds an auxiliary field from earlier fields
	// instead of zero-allocating it.
	Construct Constructor

	// Default is the initial value of an input field when no forcing has
	// refreshed it yet. Only meaningful with HasDefault set.
	Default    float64
	HasDefault bool
}

// TendencyName returns the name of the synthesized tendency variable of a
// prognostic descriptor.
func (d Descriptor) TendencyName() string {
	return d.Name + "_tendency"
}

// Tendency synthesizes the tendency descriptor of a prognostic variable:
// same shape, unit divided by time, unconstrained domain.
func (d Descriptor) Tendency() Descriptor {
	return Descriptor{
		Name:        d.TendencyName(),
		Shape:       d.Shape,
		Unit:        d.Unit + "/s",
		Domain:      RealLine,
		Role:        Auxiliary,
		Description: "tendency of " + d.Name,
	}
}

// equivalent reports whether two same-named declarations collapse into one
// registry entry.
func (d Descriptor) equivalent(other Descriptor) bool {
	return d.Shape == other.Shape && d.Unit == other.Unit && d.Role == other.Role
}
