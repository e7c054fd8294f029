package config

// Presets are named scenario configurations. Each starts from the
// defaults and overrides what the scenario changes.
var Presets = map[string]func() *Config{
	"temperate": func() *Config {
		return DefaultConfig()
	},
	"permafrost": func() *Config {
		cfg := DefaultConfig()
		cfg.Soil.InitialTemperature = -8.0
		cfg.Soil.InitialSaturation = 0.8
		cfg.Run.Duration = 30 * 86400
		cfg.Forcing = []ForcingConfig{
			{Variable: "air_temperature", Kind: "diurnal", Mean: -5, Amplitude: 8, Peak: 14},
			{Variable: "shortwave_radiation", Kind: "diurnal", Mean: 120, Amplitude: 120, Peak: 12},
			{Variable: "wind_speed", Kind: "constant", Value: 4},
			{Variable: "soil.precipitation", Kind: "constant", Value: 0},
		}
		return cfg
	},
	"drought": func() *Config {
		cfg := DefaultConfig()
		cfg.Soil.InitialSaturation = 0.15
		cfg.Run.Duration = 60 * 86400
		cfg.Forcing = []ForcingConfig{
			{Variable: "air_temperature", Kind: "diurnal", Mean: 24, Amplitude: 10, Peak: 14},
			{Variable: "shortwave_radiation", Kind: "diurnal", Mean: 300, Amplitude: 280, Peak: 12},
			{Variable: "wind_speed", Kind: "constant", Value: 3},
			{Variable: "soil.precipitation", Kind: "constant", Value: 0},
		}
		return cfg
	},
	"monsoon": func() *Config {
		cfg := DefaultConfig()
		cfg.Soil.InitialSaturation = 0.6
		cfg.Forcing = []ForcingConfig{
			{Variable: "air_temperature", Kind: "diurnal", Mean: 26, Amplitude: 4, Peak: 14},
			{Variable: "shortwave_radiation", Kind: "diurnal", Mean: 180, Amplitude: 160, Peak: 12},
			{Variable: "wind_speed", Kind: "constant", Value: 5},
			{Variable: "soil.precipitation", Kind: "constant", Value: 5e-7},
		}
		return cfg
	},
	"spinup": func() *Config {
		cfg := DefaultConfig()
		cfg.Run.Duration = 365 * 86400
		cfg.Run.RecordEvery = 48
		return cfg
	},
}

func GetPreset(name string) *Config {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
