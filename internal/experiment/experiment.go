// Package experiment assembles runnable simulations from configuration:
// it resolves stack, integrator and forcing names through a registry and
// wires the engine together.
package experiment

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/esmtools/terrago/internal/config"
	"github.com/esmtools/terrago/internal/engine"
	"github.com/esmtools/terrago/internal/field"
)

type Experiment struct {
	cfg       *config.Config
	registry  *Registry
	simulator *engine.Simulator
	runCfg    engine.Config
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{
		cfg:      cfg,
		registry: NewRegistry(),
	}
}

// Setup builds the grid, clock, component stack, integrator and forcings
// named by the configuration. It must run before Run.
func (e *Experiment) Setup() error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	start, err := e.cfg.StartTime()
	if err != nil {
		return err
	}

	g, err := field.UniformGrid(e.cfg.Grid.Columns, e.cfg.Grid.Levels, e.cfg.Grid.Thickness)
	if err != nil {
		return err
	}
	clock := field.NewClock(start, e.cfg.Run.Dt)

	components, err := e.registry.GetStack(e.cfg)
	if err != nil {
		return err
	}
	integ, err := e.registry.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return err
	}

	sim, err := engine.New(g, clock, components, integ)
	if err != nil {
		return err
	}
	for _, fc := range e.cfg.Forcing {
		src, err := e.registry.GetForcing(fc)
		if err != nil {
			return err
		}
		sim.AddInput(src)
	}

	e.simulator = sim
	e.runCfg = engine.Config{
		Dt:            e.cfg.Run.Dt,
		Duration:      e.cfg.Run.Duration,
		Start:         start,
		ValidateState: e.cfg.Run.Validate,
		RecordEvery:   e.cfg.Run.RecordEvery,
		Record:        e.cfg.Run.Record,
	}

	logrus.Infof("experiment: %s stack on %dx%d grid, %s integrator",
		e.cfg.Stack, e.cfg.Grid.Columns, e.cfg.Grid.Levels, integ.Name())
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*engine.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.runCfg)
}

// Simulator returns the underlying simulator for stepping it manually.
func (e *Experiment) Simulator() *engine.Simulator {
	return e.simulator
}

// RunConfig returns the engine run settings derived from the
// configuration.
func (e *Experiment) RunConfig() engine.Config {
	return e.runCfg
}
