// Package config holds the YAML run configuration: grid geometry, run
// control, process parameters and forcing sources.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 1800.0
	DefaultDuration    = 10 * 86400.0
	DefaultColumns     = 4
	DefaultLevels      = 10
	DefaultThickness   = 0.1
	DefaultIntegrator  = "heun"
	DefaultStack       = "land"
	DefaultRecordEvery = 1
)

type Config struct {
	Stack      string           `yaml:"stack"`
	Integrator string           `yaml:"integrator"`
	Grid       GridConfig       `yaml:"grid"`
	Run        RunConfig        `yaml:"run"`
	Soil       SoilConfig       `yaml:"soil"`
	Surface    SurfaceConfig    `yaml:"surface"`
	Vegetation VegetationConfig `yaml:"vegetation"`
	Forcing    []ForcingConfig  `yaml:"forcing"`
}

type GridConfig struct {
	Columns   int     `yaml:"columns"`
	Levels    int     `yaml:"levels"`
	Thickness float64 `yaml:"thickness"` // uniform layer thickness [m]
}

type RunConfig struct {
	Dt          float64  `yaml:"dt"`       // step length [s]
	Duration    float64  `yaml:"duration"` // run length [s]
	Start       string   `yaml:"start"`    // RFC3339 or YYYY-MM-DD
	Validate    bool     `yaml:"validate"`
	RecordEvery int      `yaml:"record_every"`
	Record      []string `yaml:"record"`
}

type SoilConfig struct {
	Porosity           float64 `yaml:"porosity"`
	SatConductivity    float64 `yaml:"sat_conductivity"`
	InitialSaturation  float64 `yaml:"initial_saturation"`
	HeatCapThawed      float64 `yaml:"heat_cap_thawed"`
	HeatCapFrozen      float64 `yaml:"heat_cap_frozen"`
	LatentHeat         float64 `yaml:"latent_heat"`
	CondThawed         float64 `yaml:"cond_thawed"`
	CondFrozen         float64 `yaml:"cond_frozen"`
	InitialTemperature float64 `yaml:"initial_temperature"`
}

type SurfaceConfig struct {
	ExchangeCoeff float64 `yaml:"exchange_coeff"`
}

type VegetationConfig struct {
	LightUseEff       float64 `yaml:"light_use_eff"`
	RespRate          float64 `yaml:"resp_rate"`
	LitterRate        float64 `yaml:"litter_rate"`
	DecompRate        float64 `yaml:"decomp_rate"`
	InitialBiomass    float64 `yaml:"initial_biomass"`
	InitialSoilCarbon float64 `yaml:"initial_soil_carbon"`
}

// ForcingConfig selects one input source. Kind is one of "constant",
// "diurnal" or "series"; the other fields apply per kind.
type ForcingConfig struct {
	Variable  string  `yaml:"variable"` // qualified name, e.g. air_temperature
	Kind      string  `yaml:"kind"`
	Value     float64 `yaml:"value"`
	Mean      float64 `yaml:"mean"`
	Amplitude float64 `yaml:"amplitude"`
	Peak      float64 `yaml:"peak"`
	File      string  `yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Stack:      DefaultStack,
		Integrator: DefaultIntegrator,
		Grid: GridConfig{
			Columns:   DefaultColumns,
			Levels:    DefaultLevels,
			Thickness: DefaultThickness,
		},
		Run: RunConfig{
			Dt:          DefaultDt,
			Duration:    DefaultDuration,
			Start:       "2020-06-01",
			Validate:    true,
			RecordEvery: DefaultRecordEvery,
			Record: []string{
				"soil.temperature",
				"soil.saturation",
				"biomass_carbon",
			},
		},
		Soil: SoilConfig{
			Porosity:           0.4,
			SatConductivity:    1e-5,
			InitialSaturation:  0.5,
			HeatCapThawed:      3.0e6,
			HeatCapFrozen:      2.1e6,
			LatentHeat:         3.34e8,
			CondThawed:         1.2,
			CondFrozen:         2.0,
			InitialTemperature: 5.0,
		},
		Surface: SurfaceConfig{
			ExchangeCoeff: 1.8,
		},
		Vegetation: VegetationConfig{
			LightUseEff:       1e-9,
			RespRate:          3e-8,
			LitterRate:        1e-8,
			DecompRate:        2e-9,
			InitialBiomass:    2.0,
			InitialSoilCarbon: 8.0,
		},
		Forcing: []ForcingConfig{
			{Variable: "air_temperature", Kind: "diurnal", Mean: 10, Amplitude: 6, Peak: 14},
			{Variable: "shortwave_radiation", Kind: "diurnal", Mean: 200, Amplitude: 200, Peak: 12},
			{Variable: "wind_speed", Kind: "constant", Value: 2},
			{Variable: "soil.precipitation", Kind: "constant", Value: 1e-8},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// StartTime parses Run.Start, accepting a bare date or full RFC3339.
func (c *Config) StartTime() (time.Time, error) {
	if c.Run.Start == "" {
		return time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), nil
	}
	if t, err := time.Parse("2006-01-02", c.Run.Start); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, c.Run.Start)
}

func (c *Config) Validate() error {
	if c.Grid.Columns < 1 || c.Grid.Levels < 1 {
		return fmt.Errorf("config: grid needs at least one column and one level")
	}
	if c.Grid.Thickness <= 0 {
		return fmt.Errorf("config: layer thickness must be positive")
	}
	if c.Run.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive")
	}
	if c.Run.Duration < c.Run.Dt {
		return fmt.Errorf("config: duration shorter than one step")
	}
	if _, err := c.StartTime(); err != nil {
		return fmt.Errorf("config: bad start time %q: %w", c.Run.Start, err)
	}
	for _, f := range c.Forcing {
		switch f.Kind {
		case "constant", "diurnal":
		case "series":
			if f.File == "" {
				return fmt.Errorf("config: series forcing for %s needs a file", f.Variable)
			}
		default:
			return fmt.Errorf("config: unknown forcing kind %q for %s", f.Kind, f.Variable)
		}
		if f.Variable == "" {
			return fmt.Errorf("config: forcing entry missing variable name")
		}
	}
	return nil
}
