package physics

import (
	"math"

	"github.com/esmtools/terrago/internal/engine"
	"github.com/esmtools/terrago/internal/field"
	"github.com/esmtools/terrago/internal/state"
	"github.com/esmtools/terrago/internal/vars"
)

// SoilWater is a gravity-drainage bucket cascade. Saturation is the
// primary view; the integrated quantity is volumetric water content
// theta = saturation * porosity, linked by a closure relation.
type SoilWater struct {
	engine.UnimplementedComponent

	Porosity          float64 // pore volume fraction [1]
	SatConductivity   float64 // saturated hydraulic conductivity [m/s]
	InitialSaturation float64
}

func NewSoilWater() *SoilWater {
	return &SoilWater{
		Porosity:          0.4,
		SatConductivity:   1e-5,
		InitialSaturation: 0.5,
	}
}

func (w *SoilWater) DeclareVariables() []vars.Descriptor {
	return []vars.Descriptor{
		{
			Name:        "porosity",
			Shape:       field.Column,
			Unit:        "1",
			Domain:      vars.UnitInterval,
			Role:        vars.Auxiliary,
			Description: "soil pore volume fraction",
		},
		{
			Name:        "saturation",
			Shape:       field.Column,
			Unit:        "1",
			Domain:      vars.UnitInterval,
			Role:        vars.Prognostic,
			Description: "pore space fraction filled with water",
			Closure:     waterClosure(),
		},
		{
			Name:        "hydraulic_conductivity",
			Shape:       field.Column,
			Unit:        "m/s",
			Domain:      vars.Nonnegative,
			Role:        vars.Auxiliary,
			Description: "unsaturated hydraulic conductivity",
		},
		{
			Name:        "precipitation",
			Shape:       field.Lateral,
			Unit:        "m/s",
			Domain:      vars.Nonnegative,
			Role:        vars.Input,
			Description: "liquid water flux at the surface",
		},
	}
}

// waterClosure links saturation to the conserved water content
// theta = saturation * porosity. The inverse divides protectively: a
// zero-porosity cell holds no water and reads as dry instead of NaN.
func waterClosure() *vars.Closure {
	return &vars.Closure{
		Produces: vars.Descriptor{
			Name:        "water_content",
			Shape:       field.Column,
			Unit:        "1",
			Domain:      vars.UnitInterval,
			Role:        vars.Auxiliary,
			Description: "volumetric water content, the integrated quantity",
		},
		Forward: func(src vars.FieldSource) error {
			sat, err := src.Field("saturation")
			if err != nil {
				return err
			}
			por, err := src.Field("porosity")
			if err != nil {
				return err
			}
			theta, err := src.Field("water_content")
			if err != nil {
				return err
			}
			field.ParallelFor(len(theta.Data), 1024, func(start, end int) {
				for i := start; i < end; i++ {
					theta.Data[i] = sat.Data[i] * por.Data[i]
				}
			})
			return nil
		},
		Inverse: func(src vars.FieldSource) error {
			sat, err := src.Field("saturation")
			if err != nil {
				return err
			}
			por, err := src.Field("porosity")
			if err != nil {
				return err
			}
			theta, err := src.Field("water_content")
			if err != nil {
				return err
			}
			field.ParallelFor(len(sat.Data), 1024, func(start, end int) {
				for i := start; i < end; i++ {
					if por.Data[i] <= 0 {
						sat.Data[i] = 0
						continue
					}
					sat.Data[i] = theta.Data[i] / por.Data[i]
				}
			})
			return nil
		},
	}
}

func (w *SoilWater) Initialize(s *state.Container) error {
	por, err := s.Field("porosity")
	if err != nil {
		return err
	}
	sat, err := s.Field("saturation")
	if err != nil {
		return err
	}
	por.Fill(w.Porosity)
	sat.Fill(w.InitialSaturation)
	return nil
}

func (w *SoilWater) ComputeAuxiliary(s *state.Container) error {
	sat, err := s.Field("saturation")
	if err != nil {
		return err
	}
	k, err := s.Field("hydraulic_conductivity")
	if err != nil {
		return err
	}
	ks := w.SatConductivity
	field.ParallelFor(len(k.Data), 1024, func(start, end int) {
		for i := start; i < end; i++ {
			k.Data[i] = ks * cube(sat.Data[i])
		}
	})
	return nil
}

// ComputeTendencies accumulates the vertical water budget: infiltration
// from precipitation at the top, gravity drainage between layers, free
// drainage at the bottom.
func (w *SoilWater) ComputeTendencies(s *state.Container) error {
	k, err := s.Field("hydraulic_conductivity")
	if err != nil {
		return err
	}
	precip, err := s.Field("precipitation")
	if err != nil {
		return err
	}
	tend, err := s.Field("saturation_tendency")
	if err != nil {
		return err
	}

	g := s.Grid()
	field.ForEachColumn(g, func(col int) {
		inflow := precip.Data[col]
		for lev := 0; lev < g.Levels; lev++ {
			i := g.Index(col, lev)
			outflow := k.Data[i]
			tend.Data[i] += (inflow - outflow) / g.Thickness[lev]
			inflow = outflow
		}
	})
	return nil
}

func cube(x float64) float64 {
	return math.Abs(x) * x * x
}
