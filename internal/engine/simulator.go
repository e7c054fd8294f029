package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/esmtools/terrago/internal/field"
	"github.com/esmtools/terrago/internal/state"
	"github.com/esmtools/terrago/internal/vars"
)

// StageFunc recomputes tendencies for the container's current contents.
// Multi-stage integrators call it after a predictor move to evaluate
// tendencies at the predicted state; it runs inverse closures, boundary
// fill and auxiliary updates first so the tendencies are consistent.
type StageFunc func() error

// Integrator advances every (driven field, tendency field) pair by one
// step. Implementations mutate the fields in place and never reallocate.
type Integrator interface {
	Name() string
	Advance(pairs []state.Pair, dt float64, restage StageFunc) error
}

// Config controls one simulation run.
type Config struct {
	Dt            float64 // step length [s]
	Duration      float64 // run length [s], ignored if Steps > 0
	Steps         int
	Start         time.Time
	ValidateState bool
	RecordEvery   int      // record series every n steps, 0 disables
	Record        []string // qualified variable names, recorded as cell means
}

// DefaultConfig is a half-hourly step over ten model days.
func DefaultConfig() Config {
	return Config{
		Dt:            1800,
		Duration:      10 * 86400,
		Start:         time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
		ValidateState: true,
		RecordEvery:   1,
	}
}

func (c Config) numSteps() int {
	if c.Steps > 0 {
		return c.Steps
	}
	return int(c.Duration / c.Dt)
}

func (c Config) validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("engine: dt must be positive, got %f", c.Dt)
	}
	if c.numSteps() <= 0 {
		return fmt.Errorf("engine: run length must cover at least one step")
	}
	return nil
}

// Result holds the per-run record of a simulation.
type Result struct {
	Steps   int
	Times   []float64            // elapsed seconds at each record point
	Series  map[string][]float64 // cell means of recorded variables
	Elapsed time.Duration        // wall time
}

// Simulator owns one state container and advances it with the fixed
// eight-stage step sequence. Not safe for concurrent use; ensembles run
// one Simulator per member.
type Simulator struct {
	components  []Named
	bound       []boundComponent
	s           *state.Container
	pairs       []state.Pair
	integrator  Integrator
	inputs      []InputSource
	clock       *field.Clock
	initialized bool
}

// New builds a simulator on a fresh registry merged from the components.
func New(g *field.Grid, clock *field.Clock, components []Named, integ Integrator) (*Simulator, error) {
	reg, err := BuildRegistry(components)
	if err != nil {
		return nil, err
	}
	return NewFromRegistry(reg, g, clock, components, integ, state.Options{})
}

// NewFromRegistry builds a simulator on an existing registry, allowing
// ensemble members to share one and callers to supply pre-existing fields
// or boundary overrides. The registry must have been built from the same
// component list.
func NewFromRegistry(reg *vars.Registry, g *field.Grid, clock *field.Clock,
	components []Named, integ Integrator, opts state.Options) (*Simulator, error) {

	s, err := state.New(reg, g, clock, opts)
	if err != nil {
		return nil, err
	}
	bound, err := bindComponents(components, s)
	if err != nil {
		return nil, err
	}
	return &Simulator{
		components: components,
		bound:      bound,
		s:          s,
		pairs:      s.Pairs(),
		integrator: integ,
		clock:      clock,
	}, nil
}

// AddInput registers a forcing source, refreshed once per step.
func (sim *Simulator) AddInput(src InputSource) {
	sim.inputs = append(sim.inputs, src)
}

// State returns the simulator's container.
func (sim *Simulator) State() *state.Container { return sim.s }

// Clock returns the shared simulation clock.
func (sim *Simulator) Clock() *field.Clock { return sim.clock }

// Initialize runs the setup half of the step sequence once: reset, input
// refresh, component Initialize hooks, boundary fill, forward closures,
// and a first auxiliary pass. After Initialize the driven views are
// consistent with the primary values the components set.
func (sim *Simulator) Initialize() error {
	if sim.initialized {
		return nil
	}

	sim.s.ResetTendencies()
	if err := sim.refreshInputs(); err != nil {
		return err
	}
	for _, bc := range sim.bound {
		if err := bc.comp.Initialize(bc.s); err != nil {
			return fmt.Errorf("engine: initializing %s: %w", bc.name, err)
		}
	}
	sim.s.FillBoundaries()
	if err := state.ApplyClosures(sim.s); err != nil {
		return err
	}
	if err := sim.computeAuxiliary(); err != nil {
		return err
	}

	sim.initialized = true
	logrus.Debugf("engine: initialized %d components, %d prognostic pairs",
		len(sim.bound), len(sim.pairs))
	return nil
}

// Step advances the simulation by one clock step. Forward closures do not
// run here: they belong to initialization only, the inverse transform at
// stage eight keeps both views consistent through the run.
func (sim *Simulator) Step() error {
	if !sim.initialized {
		return fmt.Errorf("engine: Step before Initialize")
	}

	sim.s.ResetTendencies()
	if err := sim.refreshInputs(); err != nil {
		return err
	}
	sim.s.FillBoundaries()
	if err := sim.computeAuxiliary(); err != nil {
		return err
	}
	if err := sim.computeTendencies(); err != nil {
		return err
	}
	if err := sim.integrator.Advance(sim.pairs, sim.clock.Dt(), sim.restage); err != nil {
		return fmt.Errorf("engine: %s advance: %w", sim.integrator.Name(), err)
	}
	if err := state.ApplyInverseClosures(sim.s); err != nil {
		return err
	}

	sim.clock.Advance()
	return nil
}

// Run initializes if needed and steps until the configured run length,
// recording the requested series.
func (sim *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := sim.Initialize(); err != nil {
		return nil, err
	}

	recorded := make([]*field.Field, len(cfg.Record))
	for i, name := range cfg.Record {
		f, err := sim.s.Resolve(name)
		if err != nil {
			return nil, err
		}
		recorded[i] = f
	}

	steps := cfg.numSteps()
	result := &Result{Series: make(map[string][]float64, len(cfg.Record))}
	start := time.Now()

	record := func() {
		result.Times = append(result.Times, sim.clock.Elapsed())
		for i, name := range cfg.Record {
			result.Series[name] = append(result.Series[name], recorded[i].Mean())
		}
	}
	if cfg.RecordEvery > 0 {
		record()
	}

	logrus.Infof("engine: running %d steps of %.0fs with %s", steps, sim.clock.Dt(), sim.integrator.Name())

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := sim.Step(); err != nil {
			return result, err
		}
		result.Steps++

		if cfg.ValidateState && !sim.s.Valid() {
			return result, fmt.Errorf("engine: non-finite state after step %d (t=%.0fs)",
				i+1, sim.clock.Elapsed())
		}
		if cfg.RecordEvery > 0 && (i+1)%cfg.RecordEvery == 0 {
			record()
		}
	}

	result.Elapsed = time.Since(start)
	logrus.Infof("engine: completed %d steps in %s", result.Steps, result.Elapsed)
	return result, nil
}

func (sim *Simulator) refreshInputs() error {
	for _, src := range sim.inputs {
		if err := src.Refresh(sim.s, sim.clock); err != nil {
			return fmt.Errorf("engine: refreshing inputs: %w", err)
		}
	}
	return nil
}

func (sim *Simulator) computeAuxiliary() error {
	for _, bc := range sim.bound {
		if err := bc.comp.ComputeAuxiliary(bc.s); err != nil {
			return fmt.Errorf("engine: auxiliary of %s: %w", bc.name, err)
		}
	}
	return nil
}

func (sim *Simulator) computeTendencies() error {
	for _, bc := range sim.bound {
		if err := bc.comp.ComputeTendencies(bc.s); err != nil {
			return fmt.Errorf("engine: tendencies of %s: %w", bc.name, err)
		}
	}
	return nil
}

// restage re-evaluates tendencies at the container's current (possibly
// predicted) state, for multi-stage integrators.
func (sim *Simulator) restage() error {
	if err := state.ApplyInverseClosures(sim.s); err != nil {
		return err
	}
	sim.s.FillBoundaries()
	if err := sim.computeAuxiliary(); err != nil {
		return err
	}
	sim.s.ResetTendencies()
	return sim.computeTendencies()
}
