// Package integrators provides the explicit time integrators consumed by
// the engine. Integrators see the state only as (driven field, tendency
// field) pairs and mutate the driven fields in place; they never allocate
// new state storage.
package integrators

import (
	"github.com/esmtools/terrago/internal/engine"
	"github.com/esmtools/terrago/internal/state"
)

// Euler is the first-order forward Euler scheme: x += dt * dx/dt.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Advance(pairs []state.Pair, dt float64, _ engine.StageFunc) error {
	for _, p := range pairs {
		p.X.AddScaled(dt, p.Tendency)
	}
	return nil
}
