package physics_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/esmtools/terrago/internal/engine"
	"github.com/esmtools/terrago/internal/field"
	"github.com/esmtools/terrago/internal/physics"
	"github.com/esmtools/terrago/internal/state"
)

// soilContainer builds a one-cell container holding the water and heat
// declarations at one level, the way they live inside the soil namespace.
func soilContainer(water *physics.SoilWater, heat *physics.SoilHeat) *state.Container {
	reg, err := engine.BuildRegistry([]engine.Named{
		{Name: "water", Component: water},
		{Name: "heat", Component: heat},
	})
	Expect(err).NotTo(HaveOccurred())

	g, err := field.UniformGrid(1, 1, 0.1)
	Expect(err).NotTo(HaveOccurred())

	clock := field.NewClock(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), 1800)
	c, err := state.New(reg, g, clock, state.Options{})
	Expect(err).NotTo(HaveOccurred())
	return c
}

func cell(c *state.Container, name string) *float64 {
	f, err := c.Field(name)
	Expect(err).NotTo(HaveOccurred())
	return &f.Data[0]
}

var _ = Describe("water closure", func() {
	var (
		water *physics.SoilWater
		heat  *physics.SoilHeat
		c     *state.Container
	)

	BeforeEach(func() {
		water = physics.NewSoilWater()
		heat = physics.NewSoilHeat()
		c = soilContainer(water, heat)
		Expect(water.Initialize(c)).To(Succeed())
		Expect(heat.Initialize(c)).To(Succeed())
	})

	It("maps saturation to water content through porosity", func() {
		*cell(c, "saturation") = 0.5
		Expect(state.ApplyClosures(c)).To(Succeed())
		Expect(*cell(c, "water_content")).To(BeNumerically("~", 0.5*water.Porosity, 1e-12))
	})

	It("round-trips every saturation in the unit interval", func() {
		for sat := 0.0; sat <= 1.0; sat += 0.05 {
			*cell(c, "saturation") = sat
			Expect(state.ApplyClosures(c)).To(Succeed())
			Expect(state.ApplyInverseClosures(c)).To(Succeed())
			Expect(*cell(c, "saturation")).To(BeNumerically("~", sat, 1e-12))
		}
	})

	It("reads a zero-porosity cell as dry instead of dividing by zero", func() {
		*cell(c, "porosity") = 0
		*cell(c, "water_content") = 0
		Expect(state.ApplyInverseClosures(c)).To(Succeed())
		Expect(*cell(c, "saturation")).To(BeZero())
	})
})

var _ = Describe("enthalpy closure", func() {
	var (
		water *physics.SoilWater
		heat  *physics.SoilHeat
		c     *state.Container
	)

	BeforeEach(func() {
		water = physics.NewSoilWater()
		heat = physics.NewSoilHeat()
		c = soilContainer(water, heat)
		Expect(water.Initialize(c)).To(Succeed())
		Expect(heat.Initialize(c)).To(Succeed())
	})

	latentContent := func() float64 {
		return heat.LatentHeat * (*cell(c, "water_content"))
	}

	It("round-trips temperatures on both sides of freezing", func() {
		for temp := -20.0; temp <= 20.0; temp += 0.5 {
			*cell(c, "temperature") = temp
			Expect(state.ApplyClosures(c)).To(Succeed())
			Expect(state.ApplyInverseClosures(c)).To(Succeed())
			Expect(*cell(c, "temperature")).To(BeNumerically("~", temp, 1e-9))
		}
	})

	It("places the frozen branch below the plateau", func() {
		*cell(c, "temperature") = -10
		Expect(state.ApplyClosures(c)).To(Succeed())
		Expect(*cell(c, "internal_energy")).To(BeNumerically("<", -latentContent()))
		Expect(state.ApplyInverseClosures(c)).To(Succeed())
		Expect(*cell(c, "liquid_fraction")).To(BeZero())
	})

	It("holds the plateau at the freezing point with a partial liquid fraction", func() {
		Expect(state.ApplyClosures(c)).To(Succeed()) // consistent water content
		lc := latentContent()
		Expect(lc).To(BeNumerically(">", 0))

		*cell(c, "internal_energy") = -0.25 * lc
		Expect(state.ApplyInverseClosures(c)).To(Succeed())
		Expect(*cell(c, "temperature")).To(BeZero())
		Expect(*cell(c, "liquid_fraction")).To(BeNumerically("~", 0.75, 1e-12))

		// The driven value stays inside the documented plateau bounds.
		e := *cell(c, "internal_energy")
		Expect(e).To(BeNumerically(">=", -lc))
		Expect(e).To(BeNumerically("<=", 0))
	})

	It("treats a cell without latent heat content as frozen at the threshold", func() {
		*cell(c, "water_content") = 0
		*cell(c, "internal_energy") = 0
		Expect(state.ApplyInverseClosures(c)).To(Succeed())
		Expect(*cell(c, "temperature")).To(BeZero())
		Expect(*cell(c, "liquid_fraction")).To(BeZero())
	})

	It("recovers thawed temperatures from positive energies", func() {
		*cell(c, "internal_energy") = 2 * heat.HeatCapThawed
		Expect(state.ApplyInverseClosures(c)).To(Succeed())
		Expect(*cell(c, "temperature")).To(BeNumerically("~", 2.0, 1e-12))
		Expect(*cell(c, "liquid_fraction")).To(Equal(1.0))
	})
})
