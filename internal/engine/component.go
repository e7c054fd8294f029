package engine

import (
	"github.com/esmtools/terrago/internal/field"
	"github.com/esmtools/terrago/internal/state"
	"github.com/esmtools/terrago/internal/vars"
)

// Component is one physical process contributing variables and update
// rules. DeclareVariables must be pure: the same component asked twice
// returns the same declarations. The three lifecycle methods receive the
// container of the composition level the component lives at; all of them
// default to no-ops via UnimplementedComponent, so a component implements
// only what it needs.
type Component interface {
	DeclareVariables() []vars.Descriptor

	// Initialize sets initial values of the component's primary-view and
	// auxiliary fields. Runs once, before the first step.
	Initialize(s *state.Container) error

	// ComputeAuxiliary recomputes diagnostic quantities from the current
	// prognostic state.
	ComputeAuxiliary(s *state.Container) error

	// ComputeTendencies accumulates into tendency fields. Accumulation is
	// additive: multiple components may contribute to the same tendency.
	ComputeTendencies(s *state.Container) error
}

// UnimplementedComponent provides no-op defaults for all Component
// methods. Embed it and override what the component actually does.
type UnimplementedComponent struct{}

func (UnimplementedComponent) DeclareVariables() []vars.Descriptor     { return nil }
func (UnimplementedComponent) Initialize(*state.Container) error       { return nil }
func (UnimplementedComponent) ComputeAuxiliary(*state.Container) error { return nil }
func (UnimplementedComponent) ComputeTendencies(*state.Container) error {
	return nil
}

// Named attaches a component's composition name, used for conflict
// attribution and, for composites, as the namespace name.
type Named struct {
	Name      string
	Component Component
}

// Composite marks a component that owns a nested namespace. Its own
// declarations and those of its sub-components live in the child keyspace
// named after the component, with an independent registry.
type Composite interface {
	SubComponents() []Named
}

// InputSource refreshes input fields from external forcing for the current
// clock time. Sources receive the root container and resolve the inputs
// they serve, qualified names included.
type InputSource interface {
	Refresh(s *state.Container, clock *field.Clock) error
}

// BuildRegistry merges the declarations of a component list (recursing
// into composites) into one registry. The registry is immutable and may
// back any number of containers, so ensemble members share one.
func BuildRegistry(components []Named) (*vars.Registry, error) {
	return vars.Build(declarationTree(components))
}

func declarationTree(components []Named) vars.Tree {
	var tree vars.Tree
	for _, nc := range components {
		if comp, ok := nc.Component.(Composite); ok {
			child := declarationTree(comp.SubComponents())
			child.Contributions = append([]vars.Contribution{{
				Component: nc.Name,
				Vars:      nc.Component.DeclareVariables(),
			}}, child.Contributions...)
			tree.Children = append(tree.Children, vars.ChildTree{Name: nc.Name, Tree: child})
			continue
		}
		tree.Contributions = append(tree.Contributions, vars.Contribution{
			Component: nc.Name,
			Vars:      nc.Component.DeclareVariables(),
		})
	}
	return tree
}

// boundComponent is a component joined with the container of its
// composition level, in declaration order.
type boundComponent struct {
	name string
	comp Component
	s    *state.Container
}

func bindComponents(components []Named, s *state.Container) ([]boundComponent, error) {
	var bound []boundComponent
	for _, nc := range components {
		if comp, ok := nc.Component.(Composite); ok {
			child, err := s.Child(nc.Name)
			if err != nil {
				return nil, err
			}
			bound = append(bound, boundComponent{name: nc.Name, comp: nc.Component, s: child})
			sub, err := bindComponents(comp.SubComponents(), child)
			if err != nil {
				return nil, err
			}
			bound = append(bound, sub...)
			continue
		}
		bound = append(bound, boundComponent{name: nc.Name, comp: nc.Component, s: s})
	}
	return bound, nil
}
