package state

import (
	"fmt"
	"strings"

	"github.com/esmtools/terrago/internal/field"
	"github.com/esmtools/terrago/internal/vars"
)

// Options supplies pre-existing fields and boundary conditions to reuse at
// construction instead of allocating, plus per-namespace child options.
// Every key must match the registry: unknown field names fail with
// NoSuchVariableError, unknown namespaces with CompositionMismatchError.
type Options struct {
	Fields     map[string]*field.Field
	Boundaries map[string]field.BoundaryCondition
	Children   map[string]Options
}

// Container is the realized storage of one composition level.
type Container struct {
	reg   *vars.Registry
	grid  *field.Grid
	clock *field.Clock

	fields    map[string]*field.Field
	owned     map[string]bool
	fieldList []*field.Field // allocation order, backs Handle lookups
	handles   map[string]int

	prognostic []string
	tendencies []string
	auxiliary  []string
	inputs     []string

	childOrder []string
	children   map[string]*Container
}

// New allocates a container for reg on the given grid. Allocation order is
// dependency-respecting: inputs, then tendencies, then prognostics, then
// auxiliaries in registry order, then namespaces recursively. Fields
// supplied in opts are reused verbatim and remain caller-owned.
func New(reg *vars.Registry, g *field.Grid, clock *field.Clock, opts Options) (*Container, error) {
	c := &Container{
		reg:      reg,
		grid:     g,
		clock:    clock,
		fields:   make(map[string]*field.Field),
		owned:    make(map[string]bool),
		handles:  make(map[string]int),
		children: make(map[string]*Container),
	}

	if err := checkOverrides(reg, opts); err != nil {
		return nil, err
	}

	for _, d := range reg.Inputs {
		f := c.adopt(d, opts)
		if f == nil {
			f = g.Allocate(d.Shape, nil)
			if d.HasDefault {
				f.Fill(d.Default)
			}
			c.own(d.Name, f)
		}
		c.inputs = append(c.inputs, d.Name)
	}

	for _, d := range reg.Tendencies {
		if f := c.adopt(d, opts); f == nil {
			c.own(d.Name, g.Allocate(d.Shape, nil))
		}
		c.tendencies = append(c.tendencies, d.Name)
	}

	for _, d := range reg.Prognostic {
		bc := d.Boundary
		if override, ok := opts.Boundaries[d.Name]; ok {
			bc = override
		}
		if f := c.adopt(d, opts); f == nil {
			c.own(d.Name, g.Allocate(d.Shape, bc))
		} else if bc != nil {
			f.SetBoundary(bc)
		}
		c.prognostic = append(c.prognostic, d.Name)
	}

	for _, d := range reg.Auxiliary {
		f := c.adopt(d, opts)
		if f == nil {
			if d.Construct != nil {
				built, err := d.Construct(g, clock, c)
				if err != nil {
					return nil, fmt.Errorf("state: constructing %q: %w", d.Name, err)
				}
				if built == nil || len(built.Data) != g.Len(d.Shape) {
					return nil, fmt.Errorf("state: constructor of %q returned a field of the wrong shape", d.Name)
				}
				f = built
			} else {
				f = g.Allocate(d.Shape, nil)
			}
			c.own(d.Name, f)
		}
		if bc, ok := opts.Boundaries[d.Name]; ok {
			c.fields[d.Name].SetBoundary(bc)
		}
		c.auxiliary = append(c.auxiliary, d.Name)
	}

	for _, ns := range reg.Children {
		child, err := New(ns.Registry, g, clock, opts.Children[ns.Name])
		if err != nil {
			return nil, fmt.Errorf("namespace %s: %w", ns.Name, err)
		}
		c.children[ns.Name] = child
		c.childOrder = append(c.childOrder, ns.Name)
	}

	return c, nil
}

// adopt takes a caller-supplied field for d if one was given.
func (c *Container) adopt(d vars.Descriptor, opts Options) *field.Field {
	f, ok := opts.Fields[d.Name]
	if !ok {
		return nil
	}
	c.fields[d.Name] = f
	c.owned[d.Name] = false
	c.index(d.Name, f)
	return f
}

func (c *Container) own(name string, f *field.Field) {
	c.fields[name] = f
	c.owned[name] = true
	c.index(name, f)
}

func (c *Container) index(name string, f *field.Field) {
	c.handles[name] = len(c.fieldList)
	c.fieldList = append(c.fieldList, f)
}

func checkOverrides(reg *vars.Registry, opts Options) error {
	known := make(map[string]bool, reg.NumVars())
	collect := func(ds []vars.Descriptor) {
		for _, d := range ds {
			known[d.Name] = true
		}
	}
	collect(reg.Inputs)
	collect(reg.Tendencies)
	collect(reg.Prognostic)
	collect(reg.Auxiliary)

	for name := range opts.Fields {
		if !known[name] {
			return &vars.NoSuchVariableError{Name: name}
		}
	}
	for name := range opts.Boundaries {
		if !known[name] {
			return &vars.NoSuchVariableError{Name: name}
		}
	}
	for name := range opts.Children {
		if _, ok := reg.Namespace(name); !ok {
			return &vars.CompositionMismatchError{
				Namespace: name,
				Detail:    "options supplied for a namespace the registry does not declare",
			}
		}
	}
	return nil
}

// Field resolves a flat variable name at this composition level. Implements
// vars.FieldSource.
func (c *Container) Field(name string) (*field.Field, error) {
	f, ok := c.fields[name]
	if !ok {
		return nil, &vars.NoSuchVariableError{Name: name}
	}
	return f, nil
}

// Resolve looks up a possibly namespace-qualified name, e.g.
// "soil.temperature".
func (c *Container) Resolve(path string) (*field.Field, error) {
	head, rest, found := strings.Cut(path, ".")
	if !found {
		return c.Field(path)
	}
	child, ok := c.children[head]
	if !ok {
		return nil, &vars.NoSuchVariableError{Name: path}
	}
	return child.Resolve(rest)
}

// Handle is a validated key for repeated lookups of one field, resolved
// once at the call to Container.Handle. Handles are interchangeable
// between containers built from the same registry with the same options,
// since allocation order is deterministic.
type Handle struct {
	idx int
}

// Handle validates name once and returns a key for allocation-free access.
func (c *Container) Handle(name string) (Handle, error) {
	idx, ok := c.handles[name]
	if !ok {
		return Handle{}, &vars.NoSuchVariableError{Name: name}
	}
	return Handle{idx: idx}, nil
}

// At returns the field a handle refers to.
func (c *Container) At(h Handle) *field.Field {
	return c.fieldList[h.idx]
}

// Child returns the nested container of a namespace.
func (c *Container) Child(name string) (*Container, error) {
	child, ok := c.children[name]
	if !ok {
		return nil, &vars.CompositionMismatchError{
			Namespace: name,
			Detail:    "no such namespace",
		}
	}
	return child, nil
}

// Children returns namespace names in declaration order.
func (c *Container) Children() []string { return c.childOrder }

// Registry returns the registry this container realizes.
func (c *Container) Registry() *vars.Registry { return c.reg }

// Grid returns the spatial grid.
func (c *Container) Grid() *field.Grid { return c.grid }

// Clock returns the shared simulation clock.
func (c *Container) Clock() *field.Clock { return c.clock }

// InputNames returns this level's input variable names in order.
func (c *Container) InputNames() []string { return c.inputs }

// Owns reports whether the container allocated (and so exclusively owns)
// the named field, as opposed to having adopted it from the caller.
func (c *Container) Owns(name string) bool { return c.owned[name] }
