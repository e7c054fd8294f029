package physics_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/esmtools/terrago/internal/engine"
	"github.com/esmtools/terrago/internal/field"
	"github.com/esmtools/terrago/internal/integrators"
	"github.com/esmtools/terrago/internal/physics"
)

var _ = Describe("assembled land stack", func() {
	var sim *engine.Simulator

	BeforeEach(func() {
		g, err := field.UniformGrid(4, 5, 0.1)
		Expect(err).NotTo(HaveOccurred())
		clock := field.NewClock(time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC), 600)

		sim, err = engine.New(g, clock, physics.Default(), integrators.NewHeun())
		Expect(err).NotTo(HaveOccurred())
		Expect(sim.Initialize()).To(Succeed())
	})

	It("initializes both closure views consistently", func() {
		sat, err := sim.State().Resolve("soil.saturation")
		Expect(err).NotTo(HaveOccurred())
		theta, err := sim.State().Resolve("soil.water_content")
		Expect(err).NotTo(HaveOccurred())
		Expect(theta.Data[0]).To(BeNumerically("~", sat.Data[0]*0.4, 1e-12))

		temp, err := sim.State().Resolve("soil.temperature")
		Expect(err).NotTo(HaveOccurred())
		e, err := sim.State().Resolve("soil.internal_energy")
		Expect(err).NotTo(HaveOccurred())
		Expect(e.Data[0]).To(BeNumerically("~", temp.Data[0]*3.0e6, 1e-3))
	})

	It("stays finite and physically plausible over a day", func() {
		cfg := engine.Config{
			Dt:            600,
			Steps:         144,
			ValidateState: true,
			RecordEvery:   12,
			Record:        []string{"soil.temperature", "soil.saturation", "biomass_carbon"},
		}

		res, err := sim.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Steps).To(Equal(144))
		Expect(sim.State().Valid()).To(BeTrue())

		tempSeries := res.Series["soil.temperature"]
		// Warmer air above a 5 degC soil: the mean soil temperature rises.
		Expect(tempSeries[len(tempSeries)-1]).To(BeNumerically(">", tempSeries[0]))

		satSeries := res.Series["soil.saturation"]
		// No precipitation configured: the column can only drain.
		Expect(satSeries[len(satSeries)-1]).To(BeNumerically("<", satSeries[0]))
	})

	It("grows vegetation under constant radiation", func() {
		biomass, err := sim.State().Field("biomass_carbon")
		Expect(err).NotTo(HaveOccurred())
		soc, err := sim.State().Field("soil_organic_carbon")
		Expect(err).NotTo(HaveOccurred())
		initialBiomass := biomass.Data[0]
		initialSoc := soc.Data[0]

		for i := 0; i < 50; i++ {
			Expect(sim.Step()).To(Succeed())
		}
		Expect(biomass.Data[0]).To(BeNumerically(">", initialBiomass))
		// Litterfall outpaces decomposition at the initial pool sizes.
		Expect(soc.Data[0]).To(BeNumerically(">", initialSoc))
	})

	It("accumulates surface flux and conduction into one energy tendency", func() {
		Expect(sim.Step()).To(Succeed())

		flux, err := sim.State().Field("sensible_heat_flux")
		Expect(err).NotTo(HaveOccurred())
		// Default air at 10 degC over 5 degC soil with 2 m/s wind.
		Expect(flux.Data[0]).To(BeNumerically(">", 0))

		temp, err := sim.State().Resolve("soil.temperature")
		Expect(err).NotTo(HaveOccurred())
		// Warming enters through the top layer first.
		Expect(temp.At(0, 0)).To(BeNumerically(">", temp.At(0, 4)))
	})
})
