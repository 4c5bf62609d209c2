package config

import (
	"sort"

	"github.com/san-kum/tempsynth/internal/curve"
)

var Presets = map[string]*Config{
	"workday": {
		Variant: curve.Dual, IntervalMinutes: 5,
		Segments: DefaultSegments(),
	},
	"flat": {
		Variant: curve.Dual, IntervalMinutes: 10,
		Segments: []SegmentConfig{
			{Start: "00:00", End: "24:00", Equation: "21", Noise: "0.5"},
		},
	},
	"overnight": {
		Variant: curve.Dual, IntervalMinutes: 15,
		Segments: []SegmentConfig{
			{Start: "18:00", End: "24:00", Equation: "30-(t-18)", Noise: "1"},
			{Start: "24:00", End: "30:00", Equation: "24-0.5*(t-24)", Noise: "1"},
		},
	},
	"sine": {
		Variant: curve.Single, Divisions: 100,
		Segments: []SegmentConfig{
			{Start: "00:00", End: "24:00", Equation: "20+6*sin(pi*(t-9)/12)", Noise: "0.3"},
		},
	},
}

// GetPreset returns a copy of the named preset merged over the defaults,
// or nil if there is none.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Variant = p.Variant
	cfg.IntervalMinutes = p.IntervalMinutes
	cfg.Divisions = p.Divisions
	cfg.Segments = append([]SegmentConfig(nil), p.Segments...)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
