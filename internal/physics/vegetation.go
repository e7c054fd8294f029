package physics

import (
	"github.com/esmtools/terrago/internal/engine"
	"github.com/esmtools/terrago/internal/field"
	"github.com/esmtools/terrago/internal/state"
	"github.com/esmtools/terrago/internal/vars"
)

// Vegetation is a two-pool carbon balance: gross primary production
// driven by absorbed shortwave radiation builds standing biomass,
// litterfall moves carbon into the soil organic pool, and both pools
// lose carbon by first-order respiration.
type Vegetation struct {
	engine.UnimplementedComponent

	LightUseEff       float64 // carbon fixed per absorbed radiation [kgC/J]
	RespRate          float64 // autotrophic respiration rate constant [1/s]
	LitterRate        float64 // biomass-to-soil transfer rate constant [1/s]
	DecompRate        float64 // soil carbon decomposition rate constant [1/s]
	InitialBiomass    float64 // [kgC/m^2]
	InitialSoilCarbon float64 // [kgC/m^2]
}

func NewVegetation() *Vegetation {
	return &Vegetation{
		LightUseEff:       1.0e-9,
		RespRate:          3.0e-8,
		LitterRate:        1.0e-8,
		DecompRate:        2.0e-9,
		InitialBiomass:    2.0,
		InitialSoilCarbon: 8.0,
	}
}

func (v *Vegetation) DeclareVariables() []vars.Descriptor {
	return []vars.Descriptor{
		{
			Name:        "shortwave_radiation",
			Shape:       field.Lateral,
			Unit:        "W/m^2",
			Domain:      vars.Nonnegative,
			Role:        vars.Input,
			Default:     200,
			HasDefault:  true,
			Description: "downwelling shortwave radiation",
		},
		{
			Name:        "biomass_carbon",
			Shape:       field.Lateral,
			Unit:        "kgC/m^2",
			Domain:      vars.Nonnegative,
			Role:        vars.Prognostic,
			Description: "standing vegetation carbon pool",
		},
		{
			Name:        "soil_organic_carbon",
			Shape:       field.Lateral,
			Unit:        "kgC/m^2",
			Domain:      vars.Nonnegative,
			Role:        vars.Prognostic,
			Description: "soil organic carbon pool fed by litterfall",
		},
		{
			Name:        "gpp",
			Shape:       field.Lateral,
			Unit:        "kgC/m^2/s",
			Domain:      vars.Nonnegative,
			Role:        vars.Auxiliary,
			Description: "gross primary production",
		},
	}
}

func (v *Vegetation) Initialize(s *state.Container) error {
	biomass, err := s.Field("biomass_carbon")
	if err != nil {
		return err
	}
	soc, err := s.Field("soil_organic_carbon")
	if err != nil {
		return err
	}
	biomass.Fill(v.InitialBiomass)
	soc.Fill(v.InitialSoilCarbon)
	return nil
}

func (v *Vegetation) ComputeAuxiliary(s *state.Container) error {
	sw, err := s.Field("shortwave_radiation")
	if err != nil {
		return err
	}
	gpp, err := s.Field("gpp")
	if err != nil {
		return err
	}
	eff := v.LightUseEff
	for i := range gpp.Data {
		gpp.Data[i] = eff * sw.Data[i]
	}
	return nil
}

func (v *Vegetation) ComputeTendencies(s *state.Container) error {
	biomass, err := s.Field("biomass_carbon")
	if err != nil {
		return err
	}
	soc, err := s.Field("soil_organic_carbon")
	if err != nil {
		return err
	}
	gpp, err := s.Field("gpp")
	if err != nil {
		return err
	}
	btend, err := s.Field("biomass_carbon_tendency")
	if err != nil {
		return err
	}
	stend, err := s.Field("soil_organic_carbon_tendency")
	if err != nil {
		return err
	}
	for i := range btend.Data {
		litter := v.LitterRate * biomass.Data[i]
		btend.Data[i] += gpp.Data[i] - v.RespRate*biomass.Data[i] - litter
		stend.Data[i] += litter - v.DecompRate*soc.Data[i]
	}
	return nil
}
