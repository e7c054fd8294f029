package state

import "github.com/esmtools/terrago/internal/field"

// Pair is one degree of freedom as the integrator sees it: the field it
// advances and the tendency accumulated for it. For a prognostic variable
// with a closure the advanced field is the closure-driven view, not the
// primary one.
type Pair struct {
	Name     string // namespace-qualified primary name
	X        *field.Field
	Tendency *field.Field
}

// Pairs flattens the (driven field, tendency field) pairs of the whole
// container tree, in declaration order, namespaces after their parent.
func (c *Container) Pairs() []Pair {
	return c.appendPairs(nil, "")
}

func (c *Container) appendPairs(out []Pair, prefix string) []Pair {
	driven := make(map[string]string, len(c.reg.Closures()))
	for _, bc := range c.reg.Closures() {
		driven[bc.Owner] = bc.Driven
	}

	for _, d := range c.reg.Prognostic {
		x := c.fields[d.Name]
		if dn, ok := driven[d.Name]; ok {
			x = c.fields[dn]
		}
		out = append(out, Pair{
			Name:     prefix + d.Name,
			X:        x,
			Tendency: c.fields[d.TendencyName()],
		})
	}
	for _, name := range c.childOrder {
		out = c.children[name].appendPairs(out, prefix+name+".")
	}
	return out
}

// PrognosticFields returns the primary-view prognostic fields of the whole
// tree in declaration order.
func (c *Container) PrognosticFields() []*field.Field {
	var out []*field.Field
	c.walk(func(lvl *Container) {
		for _, name := range lvl.prognostic {
			out = append(out, lvl.fields[name])
		}
	})
	return out
}

// TendencyFields returns the tendency fields of the whole tree in
// declaration order.
func (c *Container) TendencyFields() []*field.Field {
	var out []*field.Field
	c.walk(func(lvl *Container) {
		for _, name := range lvl.tendencies {
			out = append(out, lvl.fields[name])
		}
	})
	return out
}

// ClosureFields returns the closure-driven fields of the whole tree in
// declaration order.
func (c *Container) ClosureFields() []*field.Field {
	var out []*field.Field
	c.walk(func(lvl *Container) {
		for _, bc := range lvl.reg.Closures() {
			out = append(out, lvl.fields[bc.Driven])
		}
	})
	return out
}

func (c *Container) walk(visit func(*Container)) {
	visit(c)
	for _, name := range c.childOrder {
		c.children[name].walk(visit)
	}
}
