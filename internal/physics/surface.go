package physics

import (
	"github.com/esmtools/terrago/internal/engine"
	"github.com/esmtools/terrago/internal/field"
	"github.com/esmtools/terrago/internal/state"
	"github.com/esmtools/terrago/internal/vars"
)

// SurfaceFluxes computes the turbulent sensible heat exchange between the
// atmosphere and the topmost soil layer and deposits it into the soil
// energy budget. Declared at the level above the soil namespace, after the
// soil composite.
type SurfaceFluxes struct {
	engine.UnimplementedComponent

	// ExchangeCoeff folds air density, heat capacity and the bulk
	// transfer coefficient into one factor [J/m^3/K].
	ExchangeCoeff float64

	// SoilNamespace is the name the soil composite was registered under.
	SoilNamespace string
}

func NewSurfaceFluxes() *SurfaceFluxes {
	return &SurfaceFluxes{
		ExchangeCoeff: 1.8,
		SoilNamespace: "soil",
	}
}

func (sf *SurfaceFluxes) DeclareVariables() []vars.Descriptor {
	return []vars.Descriptor{
		{
			Name:        "air_temperature",
			Shape:       field.Lateral,
			Unit:        "degC",
			Domain:      vars.RealLine,
			Role:        vars.Input,
			Default:     10,
			HasDefault:  true,
			Description: "near-surface air temperature",
		},
		{
			Name:        "wind_speed",
			Shape:       field.Lateral,
			Unit:        "m/s",
			Domain:      vars.Nonnegative,
			Role:        vars.Input,
			Default:     2,
			HasDefault:  true,
			Description: "near-surface wind speed",
		},
		{
			Name:        "sensible_heat_flux",
			Shape:       field.Lateral,
			Unit:        "W/m^2",
			Domain:      vars.RealLine,
			Role:        vars.Auxiliary,
			Description: "turbulent heat flux into the soil surface",
		},
	}
}

func (sf *SurfaceFluxes) ComputeAuxiliary(s *state.Container) error {
	air, err := s.Field("air_temperature")
	if err != nil {
		return err
	}
	wind, err := s.Field("wind_speed")
	if err != nil {
		return err
	}
	flux, err := s.Field("sensible_heat_flux")
	if err != nil {
		return err
	}
	soilTemp, err := s.Resolve(sf.SoilNamespace + ".temperature")
	if err != nil {
		return err
	}

	g := s.Grid()
	coeff := sf.ExchangeCoeff
	field.ForEachColumn(g, func(col int) {
		surf := soilTemp.Data[g.Index(col, 0)]
		flux.Data[col] = coeff * wind.Data[col] * (air.Data[col] - surf)
	})
	return nil
}

// ComputeTendencies accumulates the sensible heat flux into the topmost
// layer of the soil energy tendency, alongside the conduction terms the
// soil heat component contributes.
func (sf *SurfaceFluxes) ComputeTendencies(s *state.Container) error {
	flux, err := s.Field("sensible_heat_flux")
	if err != nil {
		return err
	}
	tend, err := s.Resolve(sf.SoilNamespace + ".temperature_tendency")
	if err != nil {
		return err
	}

	g := s.Grid()
	dz := g.Thickness[0]
	field.ForEachColumn(g, func(col int) {
		tend.Data[g.Index(col, 0)] += flux.Data[col] / dz
	})
	return nil
}
