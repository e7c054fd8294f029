package state

import "fmt"

// ResetTendencies zeroes every tendency field of this level and all
// namespaces. Prognostic fields are untouched. Never reallocates.
func (c *Container) ResetTendencies() {
	for _, name := range c.tendencies {
		c.fields[name].Zero()
	}
	for _, name := range c.childOrder {
		c.children[name].ResetTendencies()
	}
}

// FillBoundaries applies boundary conditions to all prognostic and
// closure-driven fields, recursively.
func (c *Container) FillBoundaries() {
	for _, name := range c.prognostic {
		c.fields[name].FillBoundary(c.clock)
	}
	for _, bc := range c.reg.Closures() {
		c.fields[bc.Driven].FillBoundary(c.clock)
	}
	for _, name := range c.childOrder {
		c.children[name].FillBoundaries()
	}
}

// CopyInto copies every field of c bitwise into dst. Both containers must
// have been built from the same registry; field identity in dst is
// preserved.
func (c *Container) CopyInto(dst *Container) error {
	if dst.reg != c.reg {
		return fmt.Errorf("state: copy between containers of different registries")
	}
	for name, src := range c.fields {
		if err := dst.fields[name].CopyFrom(src); err != nil {
			return fmt.Errorf("state: copying %q: %w", name, err)
		}
	}
	for _, name := range c.childOrder {
		if err := c.children[name].CopyInto(dst.children[name]); err != nil {
			return err
		}
	}
	return nil
}

// Valid reports whether every field of the container holds only finite
// values. Diagnostic helper for tests and the run loop, not part of the
// stepping contract.
func (c *Container) Valid() bool {
	for _, f := range c.fields {
		if !f.IsValid() {
			return false
		}
	}
	for _, child := range c.children {
		if !child.Valid() {
			return false
		}
	}
	return true
}
