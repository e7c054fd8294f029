package physics

import "github.com/esmtools/terrago/internal/engine"

// Soil nests the water and heat balances into one namespace. The two
// sub-components share a keyspace: the heat closure reads the water
// content field the water closure produces, so water is declared first.
type Soil struct {
	engine.UnimplementedComponent

	Water *SoilWater
	Heat  *SoilHeat
}

func NewSoil() *Soil {
	return &Soil{
		Water: NewSoilWater(),
		Heat:  NewSoilHeat(),
	}
}

func (s *Soil) SubComponents() []engine.Named {
	return []engine.Named{
		{Name: "water", Component: s.Water},
		{Name: "heat", Component: s.Heat},
	}
}

// Default assembles the standard component stack: soil water and heat in
// the "soil" namespace, surface exchange and vegetation above it.
func Default() []engine.Named {
	return []engine.Named{
		{Name: "soil", Component: NewSoil()},
		{Name: "surface", Component: NewSurfaceFluxes()},
		{Name: "vegetation", Component: NewVegetation()},
	}
}
