package physics

import (
	"github.com/esmtools/terrago/internal/engine"
	"github.com/esmtools/terrago/internal/field"
	"github.com/esmtools/terrago/internal/state"
	"github.com/esmtools/terrago/internal/vars"
)

// SoilHeat is the soil energy balance with freeze/thaw. Temperature (degC,
// 0 = freezing point) is the primary view; the integrated quantity is
// volumetric internal energy, linked by an enthalpy closure with three
// branches: fully frozen, phase-change plateau, fully thawed.
//
// Must be declared after SoilWater at the same composition level: the
// enthalpy closure reads the water content field for the latent heat
// content of each cell.
type SoilHeat struct {
	engine.UnimplementedComponent

	HeatCapThawed      float64 // volumetric heat capacity above freezing [J/m^3/K]
	HeatCapFrozen      float64 // volumetric heat capacity below freezing [J/m^3/K]
	LatentHeat         float64 // volumetric latent heat of fusion of water [J/m^3]
	CondThawed         float64 // thermal conductivity of thawed soil [W/m/K]
	CondFrozen         float64 // thermal conductivity of frozen soil [W/m/K]
	InitialTemperature float64 // [degC]
}

func NewSoilHeat() *SoilHeat {
	return &SoilHeat{
		HeatCapThawed:      3.0e6,
		HeatCapFrozen:      2.1e6,
		LatentHeat:         3.34e8,
		CondThawed:         1.2,
		CondFrozen:         2.0,
		InitialTemperature: 5.0,
	}
}

func (h *SoilHeat) DeclareVariables() []vars.Descriptor {
	return []vars.Descriptor{
		{
			Name:        "temperature",
			Shape:       field.Column,
			Unit:        "degC",
			Domain:      vars.RealLine,
			Role:        vars.Prognostic,
			Description: "soil temperature relative to the freezing point",
			Closure:     h.enthalpyClosure(),
			Boundary:    field.InsulatedBoundary{},
		},
		{
			Name:        "liquid_fraction",
			Shape:       field.Column,
			Unit:        "1",
			Domain:      vars.UnitInterval,
			Role:        vars.Auxiliary,
			Description: "liquid fraction of soil water, 1 above freezing",
		},
		{
			Name:        "thermal_conductivity",
			Shape:       field.Column,
			Unit:        "W/m/K",
			Domain:      vars.Nonnegative,
			Role:        vars.Auxiliary,
			Description: "bulk thermal conductivity blended by liquid fraction",
		},
	}
}

// enthalpyClosure links temperature to volumetric internal energy e, with
// e = 0 at fully thawed freezing point. Branches of the inverse:
//
//	e >  0:              thawed, T = e / C_thawed
//	-L*theta <= e <= 0:  phase change, T = 0, liquid fraction 1 + e/(L*theta)
//	e < -L*theta:        frozen, T = (e + L*theta) / C_frozen
//
// A cell with zero latent heat content (zero porosity or dry) has no
// plateau; the inverse divides protectively and reports a fully frozen
// cell of liquid fraction zero at the branch threshold.
func (h *SoilHeat) enthalpyClosure() *vars.Closure {
	ct, cf, lh := h.HeatCapThawed, h.HeatCapFrozen, h.LatentHeat
	return &vars.Closure{
		Produces: vars.Descriptor{
			Name:        "internal_energy",
			Shape:       field.Column,
			Unit:        "J/m^3",
			Domain:      vars.RealLine,
			Role:        vars.Auxiliary,
			Description: "volumetric internal energy, the integrated quantity",
		},
		Forward: func(src vars.FieldSource) error {
			temp, err := src.Field("temperature")
			if err != nil {
				return err
			}
			theta, err := src.Field("water_content")
			if err != nil {
				return err
			}
			e, err := src.Field("internal_energy")
			if err != nil {
				return err
			}
			field.ParallelFor(len(e.Data), 1024, func(start, end int) {
				for i := start; i < end; i++ {
					t := temp.Data[i]
					if t >= 0 {
						e.Data[i] = ct * t
					} else {
						e.Data[i] = cf*t - lh*theta.Data[i]
					}
				}
			})
			return nil
		},
		Inverse: func(src vars.FieldSource) error {
			temp, err := src.Field("temperature")
			if err != nil {
				return err
			}
			theta, err := src.Field("water_content")
			if err != nil {
				return err
			}
			liq, err := src.Field("liquid_fraction")
			if err != nil {
				return err
			}
			e, err := src.Field("internal_energy")
			if err != nil {
				return err
			}
			field.ParallelFor(len(e.Data), 1024, func(start, end int) {
				for i := start; i < end; i++ {
					latent := lh * theta.Data[i]
					switch {
					case e.Data[i] > 0:
						temp.Data[i] = e.Data[i] / ct
						liq.Data[i] = 1
					case e.Data[i] >= -latent:
						temp.Data[i] = 0
						if latent <= 0 {
							liq.Data[i] = 0
							continue
						}
						liq.Data[i] = 1 + e.Data[i]/latent
					default:
						temp.Data[i] = (e.Data[i] + latent) / cf
						liq.Data[i] = 0
					}
				}
			})
			return nil
		},
	}
}

func (h *SoilHeat) Initialize(s *state.Container) error {
	temp, err := s.Field("temperature")
	if err != nil {
		return err
	}
	liq, err := s.Field("liquid_fraction")
	if err != nil {
		return err
	}
	temp.Fill(h.InitialTemperature)
	if h.InitialTemperature >= 0 {
		liq.Fill(1)
	}
	return nil
}

func (h *SoilHeat) ComputeAuxiliary(s *state.Container) error {
	liq, err := s.Field("liquid_fraction")
	if err != nil {
		return err
	}
	cond, err := s.Field("thermal_conductivity")
	if err != nil {
		return err
	}
	kt, kf := h.CondThawed, h.CondFrozen
	field.ParallelFor(len(cond.Data), 1024, func(start, end int) {
		for i := start; i < end; i++ {
			w := liq.Data[i]
			cond.Data[i] = kf + (kt-kf)*w
		}
	})
	return nil
}

// ComputeTendencies accumulates vertical heat conduction into the energy
// tendency, reading the boundary ghosts filled at stage three.
func (h *SoilHeat) ComputeTendencies(s *state.Container) error {
	temp, err := s.Field("temperature")
	if err != nil {
		return err
	}
	cond, err := s.Field("thermal_conductivity")
	if err != nil {
		return err
	}
	tend, err := s.Field("temperature_tendency")
	if err != nil {
		return err
	}

	g := s.Grid()
	field.ForEachColumn(g, func(col int) {
		for lev := 0; lev < g.Levels; lev++ {
			i := g.Index(col, lev)
			dz := g.Thickness[lev]

			above := temp.Surface[col]
			if lev > 0 {
				above = temp.Data[g.Index(col, lev-1)]
			}
			below := temp.Bottom[col]
			if lev < g.Levels-1 {
				below = temp.Data[g.Index(col, lev+1)]
			}

			tend.Data[i] += cond.Data[i] * (above - 2*temp.Data[i] + below) / (dz * dz)
		}
	})
	return nil
}
