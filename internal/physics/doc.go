// Package physics implements the land-surface process components: soil
// water balance, soil energy balance with freeze/thaw, surface exchange
// fluxes, and vegetation carbon.
//
// Soil water and soil heat both integrate their prognostic quantity in a
// conserved driven representation (volumetric water content, volumetric
// internal energy) while exposing the intuitive primary view (saturation,
// temperature) to the other components, linked by closure relations.
//
// Composition contract: SoilWater must be declared before SoilHeat inside
// the soil namespace (the heat closure reads the water content field), and
// SurfaceFluxes after the soil composite (it reads soil temperature).
package physics
