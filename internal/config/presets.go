package config

import "sort"

// Presets are named renderer tunings. Unset fields keep their defaults.
var Presets = map[string]RendererConfig{
	"default": DefaultRenderer(),
	"dense": {
		Seed: 123, Field: "perlin", TargetFPS: 30, CellSize: 2.5, Levels: 16,
		Scale: 0.004, Octaves: 6, TimeStep: 0.008, TimeScale: 0.08,
	},
	"calm": {
		Seed: 123, Field: "perlin", TargetFPS: 20, CellSize: 4, Levels: 6,
		Scale: 0.0015, Octaves: 4, TimeStep: 0.004, TimeScale: 0.05,
	},
	"coarse": {
		Seed: 123, Field: "simplex", TargetFPS: 15, CellSize: 8, Levels: 8,
		Scale: 0.002, Octaves: 3, TimeStep: 0.008, TimeScale: 0.08, LinearInterp: true,
	},
}

func GetPreset(name string) *RendererConfig {
	preset, ok := Presets[name]
	if !ok {
		return nil
	}
	return &preset
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
