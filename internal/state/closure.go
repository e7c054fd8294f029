package state

import "fmt"

// ApplyClosures runs the forward transform (primary view to driven view)
// of every closure in the container tree. Invoked at initialization, and
// whenever a primary view has been mutated from outside the step loop and
// the driven view must be resynchronized.
func ApplyClosures(c *Container) error {
	for _, bc := range c.reg.Closures() {
		if err := bc.Relation.Forward(c); err != nil {
			return fmt.Errorf("state: forward closure of %q: %w", bc.Owner, err)
		}
	}
	for _, name := range c.childOrder {
		if err := ApplyClosures(c.children[name]); err != nil {
			return err
		}
	}
	return nil
}

// ApplyInverseClosures runs the inverse transform (driven view to primary
// view) of every closure in the container tree. Invoked at the end of each
// step, after the integrator has advanced the driven fields.
func ApplyInverseClosures(c *Container) error {
	for _, bc := range c.reg.Closures() {
		if err := bc.Relation.Inverse(c); err != nil {
			return fmt.Errorf("state: inverse closure of %q: %w", bc.Owner, err)
		}
	}
	for _, name := range c.childOrder {
		if err := ApplyInverseClosures(c.children[name]); err != nil {
			return err
		}
	}
	return nil
}
