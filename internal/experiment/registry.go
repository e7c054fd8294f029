package experiment

import (
	"fmt"

	"github.com/esmtools/terrago/internal/config"
	"github.com/esmtools/terrago/internal/engine"
	"github.com/esmtools/terrago/internal/forcing"
	"github.com/esmtools/terrago/internal/integrators"
	"github.com/esmtools/terrago/internal/physics"
)

// Registry maps config names to the pieces a simulation is assembled
// from: component stacks, integrators and forcing kinds.
type Registry struct {
	stacks      map[string]func(*config.Config) []engine.Named
	integrators map[string]func() engine.Integrator
	forcings    map[string]func(config.ForcingConfig) (engine.InputSource, error)
}

func NewRegistry() *Registry {
	r := &Registry{
		stacks:      make(map[string]func(*config.Config) []engine.Named),
		integrators: make(map[string]func() engine.Integrator),
		forcings:    make(map[string]func(config.ForcingConfig) (engine.InputSource, error)),
	}

	r.stacks["land"] = func(cfg *config.Config) []engine.Named {
		return []engine.Named{
			{Name: "soil", Component: soilFromConfig(cfg)},
			{Name: "surface", Component: surfaceFromConfig(cfg)},
			{Name: "vegetation", Component: vegetationFromConfig(cfg)},
		}
	}
	r.stacks["soil"] = func(cfg *config.Config) []engine.Named {
		return []engine.Named{
			{Name: "soil", Component: soilFromConfig(cfg)},
			{Name: "surface", Component: surfaceFromConfig(cfg)},
		}
	}

	r.integrators["euler"] = func() engine.Integrator { return integrators.NewEuler() }
	r.integrators["heun"] = func() engine.Integrator { return integrators.NewHeun() }

	r.forcings["constant"] = func(fc config.ForcingConfig) (engine.InputSource, error) {
		return forcing.Constant{Name: fc.Variable, Value: fc.Value}, nil
	}
	r.forcings["diurnal"] = func(fc config.ForcingConfig) (engine.InputSource, error) {
		return forcing.Diurnal{Name: fc.Variable, Mean: fc.Mean, Amplitude: fc.Amplitude, Peak: fc.Peak}, nil
	}
	r.forcings["series"] = func(fc config.ForcingConfig) (engine.InputSource, error) {
		return forcing.LoadSeries(fc.File, fc.Variable)
	}

	return r
}

func (r *Registry) GetStack(cfg *config.Config) ([]engine.Named, error) {
	build, ok := r.stacks[cfg.Stack]
	if !ok {
		return nil, fmt.Errorf("unknown stack: %s", cfg.Stack)
	}
	return build(cfg), nil
}

func (r *Registry) GetIntegrator(name string) (engine.Integrator, error) {
	build, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return build(), nil
}

func (r *Registry) GetForcing(fc config.ForcingConfig) (engine.InputSource, error) {
	build, ok := r.forcings[fc.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown forcing kind: %s", fc.Kind)
	}
	return build(fc)
}

func (r *Registry) ListStacks() []string {
	names := make([]string, 0, len(r.stacks))
	for name := range r.stacks {
		names = append(names, name)
	}
	return names
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	return names
}

func soilFromConfig(cfg *config.Config) *physics.Soil {
	soil := physics.NewSoil()
	soil.Water.Porosity = cfg.Soil.Porosity
	soil.Water.SatConductivity = cfg.Soil.SatConductivity
	soil.Water.InitialSaturation = cfg.Soil.InitialSaturation
	soil.Heat.HeatCapThawed = cfg.Soil.HeatCapThawed
	soil.Heat.HeatCapFrozen = cfg.Soil.HeatCapFrozen
	soil.Heat.LatentHeat = cfg.Soil.LatentHeat
	soil.Heat.CondThawed = cfg.Soil.CondThawed
	soil.Heat.CondFrozen = cfg.Soil.CondFrozen
	soil.Heat.InitialTemperature = cfg.Soil.InitialTemperature
	return soil
}

func surfaceFromConfig(cfg *config.Config) *physics.SurfaceFluxes {
	surf := physics.NewSurfaceFluxes()
	surf.ExchangeCoeff = cfg.Surface.ExchangeCoeff
	return surf
}

func vegetationFromConfig(cfg *config.Config) *physics.Vegetation {
	veg := physics.NewVegetation()
	veg.LightUseEff = cfg.Vegetation.LightUseEff
	veg.RespRate = cfg.Vegetation.RespRate
	veg.LitterRate = cfg.Vegetation.LitterRate
	veg.DecompRate = cfg.Vegetation.DecompRate
	veg.InitialBiomass = cfg.Vegetation.InitialBiomass
	veg.InitialSoilCarbon = cfg.Vegetation.InitialSoilCarbon
	return veg
}
