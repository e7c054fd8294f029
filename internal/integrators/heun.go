package integrators

import (
	"github.com/esmtools/terrago/internal/engine"
	"github.com/esmtools/terrago/internal/state"
)

// Heun is the two-stage predictor-corrector scheme. The predictor takes a
// full Euler step, the restage callback re-evaluates tendencies at the
// predicted state, and the corrector averages both slopes:
//
//	x = x0 + dt/2 * (k1 + k2)
type Heun struct {
	x0 [][]float64
	k1 [][]float64
}

func NewHeun() *Heun {
	return &Heun{}
}

func (h *Heun) Name() string { return "heun" }

func (h *Heun) ensureScratch(pairs []state.Pair) {
	if len(h.x0) == len(pairs) {
		return
	}
	h.x0 = make([][]float64, len(pairs))
	h.k1 = make([][]float64, len(pairs))
	for i, p := range pairs {
		h.x0[i] = make([]float64, len(p.X.Data))
		h.k1[i] = make([]float64, len(p.Tendency.Data))
	}
}

func (h *Heun) Advance(pairs []state.Pair, dt float64, restage engine.StageFunc) error {
	h.ensureScratch(pairs)

	for i, p := range pairs {
		copy(h.x0[i], p.X.Data)
		copy(h.k1[i], p.Tendency.Data)
	}

	// Predictor: full Euler step, then tendencies at the predicted state.
	for _, p := range pairs {
		p.X.AddScaled(dt, p.Tendency)
	}
	if err := restage(); err != nil {
		return err
	}

	// Corrector: average of initial and predicted slopes.
	half := 0.5 * dt
	for i, p := range pairs {
		for j := range p.X.Data {
			p.X.Data[j] = h.x0[i][j] + half*(h.k1[i][j]+p.Tendency.Data[j])
		}
	}
	return nil
}
