package vars

import "fmt"

// Contribution is the ordered declaration list of one named component.
type Contribution struct {
	Component string
	Vars      []Descriptor
}

// Tree is the declaration input for one composition level: contributions
// from the level's own components plus one child tree per namespace.
type Tree struct {
	Contributions []Contribution
	Children      []ChildTree
}

// ChildTree names a nested namespace and carries its declarations.
type ChildTree struct {
	Name string
	Tree Tree
}

// Namespace is a built child registry.
type Namespace struct {
	Name     string
	Registry *Registry
}

// Registry is the merged, conflict-checked declaration set for one
// composition level. Slices preserve declaration order; closure-produced
// auxiliaries sit immediately after the position of their owning
// prognostic declaration. A Registry is immutable after Build and may back
// any number of state containers.
type Registry struct {
	Prognostic []Descriptor
	Tendencies []Descriptor
	Auxiliary  []Descriptor
	Inputs     []Descriptor
	Children   []Namespace

	closures []BoundClosure
}

type declEntry struct {
	desc Descriptor
	comp string
}

// Build merges a declaration tree into a Registry. Identical duplicate
// declarations (same name, shape, unit, role) from independent components
// collapse to one entry; same-named declarations with differing metadata
// fail with a VariableConflictError naming both components. Inputs shadowed
// by a same-named prognostic or auxiliary declaration are dropped: an input
// is a default source of a quantity, superseded once something computes it.
func Build(tree Tree) (*Registry, error) {
	r := &Registry{}
	seen := make(map[string]declEntry)   // prognostic, auxiliary, tendency, closure-produced
	inputs := make(map[string]declEntry) // inputs, checked separately for shadowing

	claim := func(d Descriptor, comp string) (bool, error) {
		if prev, ok := seen[d.Name]; ok {
			if prev.desc.equivalent(d) {
				return false, nil
			}
			return false, &VariableConflictError{
				Name:   d.Name,
				First:  prev.comp,
				Second: comp,
				Detail: fmt.Sprintf("%s %s [%s] vs %s %s [%s]",
					prev.desc.Role, prev.desc.Shape, prev.desc.Unit,
					d.Role, d.Shape, d.Unit),
			}
		}
		seen[d.Name] = declEntry{desc: d, comp: comp}
		return true, nil
	}

	for _, c := range tree.Contributions {
		for _, d := range c.Vars {
			if err := checkMisuse(d, c.Component); err != nil {
				return nil, err
			}

			switch d.Role {
			case Prognostic:
				added, err := claim(d, c.Component)
				if err != nil {
					return nil, err
				}
				if !added {
					continue
				}
				r.Prognostic = append(r.Prognostic, d)

				tend := d.Tendency()
				if _, err := claim(tend, c.Component); err != nil {
					return nil, err
				}
				r.Tendencies = append(r.Tendencies, tend)

				if d.Closure != nil {
					driven := d.Closure.Produces
					if _, err := claim(driven, c.Component); err != nil {
						return nil, err
					}
					// Spliced here so later auxiliary constructors
					// can read the driven field.
					r.Auxiliary = append(r.Auxiliary, driven)
					r.closures = append(r.closures, BoundClosure{
						Owner:    d.Name,
						Driven:   driven.Name,
						Tendency: tend.Name,
						Relation: d.Closure,
					})
				}

			case Auxiliary:
				added, err := claim(d, c.Component)
				if err != nil {
					return nil, err
				}
				if added {
					r.Auxiliary = append(r.Auxiliary, d)
				}

			case Input:
				if prev, ok := inputs[d.Name]; ok {
					if prev.desc.equivalent(d) {
						continue
					}
					return nil, &VariableConflictError{
						Name:   d.Name,
						First:  prev.comp,
						Second: c.Component,
						Detail: fmt.Sprintf("input %s [%s] vs input %s [%s]",
							prev.desc.Shape, prev.desc.Unit, d.Shape, d.Unit),
					}
				}
				inputs[d.Name] = declEntry{desc: d, comp: c.Component}
				r.Inputs = append(r.Inputs, d)

			default:
				return nil, fmt.Errorf("vars: component %s declares %q with unknown role %d",
					c.Component, d.Name, int(d.Role))
			}
		}
	}

	// Shadowing can point either way in declaration order, so filter after
	// the whole level has been walked.
	kept := r.Inputs[:0:0]
	for _, d := range r.Inputs {
		if _, shadowed := seen[d.Name]; !shadowed {
			kept = append(kept, d)
		}
	}
	r.Inputs = kept

	childNames := make(map[string]bool)
	for _, ct := range tree.Children {
		if childNames[ct.Name] {
			return nil, &CompositionMismatchError{
				Namespace: ct.Name,
				Detail:    "namespace declared twice at one level",
			}
		}
		childNames[ct.Name] = true
		if prev, ok := seen[ct.Name]; ok {
			return nil, &VariableConflictError{
				Name:   ct.Name,
				First:  prev.comp,
				Second: "namespace",
				Detail: "namespace name collides with a variable name",
			}
		}
		if prev, ok := inputs[ct.Name]; ok {
			return nil, &VariableConflictError{
				Name:   ct.Name,
				First:  prev.comp,
				Second: "namespace",
				Detail: "namespace name collides with an input name",
			}
		}

		sub, err := Build(ct.Tree)
		if err != nil {
			return nil, fmt.Errorf("namespace %s: %w", ct.Name, err)
		}
		r.Children = append(r.Children, Namespace{Name: ct.Name, Registry: sub})
	}

	return r, nil
}

func checkMisuse(d Descriptor, comp string) error {
	if d.Name == "" {
		return fmt.Errorf("vars: component %s declares a variable with an empty name", comp)
	}
	if d.Closure != nil {
		if d.Role != Prognostic {
			return fmt.Errorf("vars: component %s attaches a closure to %s variable %q",
				comp, d.Role, d.Name)
		}
		p := d.Closure.Produces
		if p.Role != Auxiliary {
			return fmt.Errorf("vars: closure of %q must produce an auxiliary variable, got %s",
				d.Name, p.Role)
		}
		if p.Name == d.Name || p.Name == d.TendencyName() {
			return fmt.Errorf("vars: closure of %q produces a colliding name %q", d.Name, p.Name)
		}
		if d.Closure.Forward == nil || d.Closure.Inverse == nil {
			return fmt.Errorf("vars: closure of %q is missing a transform", d.Name)
		}
	}
	if d.Construct != nil && d.Role != Auxiliary {
		return fmt.Errorf("vars: component %s attaches a constructor to %s variable %q",
			comp, d.Role, d.Name)
	}
	if d.HasDefault && d.Role != Input {
		return fmt.Errorf("vars: component %s attaches a default value to %s variable %q",
			comp, d.Role, d.Name)
	}
	return nil
}

// Closures returns the bound closure relations of this level, in
// declaration order of their owners.
func (r *Registry) Closures() []BoundClosure { return r.closures }

// Namespace looks up a child registry by name.
func (r *Registry) Namespace(name string) (*Registry, bool) {
	for _, ns := range r.Children {
		if ns.Name == name {
			return ns.Registry, true
		}
	}
	return nil, false
}

// NumVars counts all variables of this level and its namespaces.
func (r *Registry) NumVars() int {
	n := len(r.Prognostic) + len(r.Tendencies) + len(r.Auxiliary) + len(r.Inputs)
	for _, ns := range r.Children {
		n += ns.Registry.NumVars()
	}
	return n
}
