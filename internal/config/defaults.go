package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/whereim.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
// It matches defaults/whereim.yaml.
func DefaultConfig() Config {
	return Config{
		Game: GameConfig{
			InitialLevel: 5,
			TickInterval: time.Second,
			Jitter:       0.02,
			StopDistance: 0.003,
			Speed:        0.0002,
			CarGlyphs:    []string{"🚗", "🚙"},
			TargetGlyph:  "🌟",
			MarkerGlyph:  "⭐",
		},
		Viewport: ViewportConfig{
			MinDelta: 0.01,
			MaxDelta: 0.02,
		},
		Location: LocationConfig{
			Provider:     ProviderStatic,
			Lat:          55.7558,
			Lon:          37.6173,
			LatDelta:     0.02,
			LonDelta:     0.02,
			WalkStep:     0.0005,
			WalkInterval: 2 * time.Second,
		},
		Server: ServerConfig{
			SSHAddress:  ":23235",
			IdleTimeout: 30 * time.Minute,
			HTTPAddress: ":8090",
		},
		Storage: StorageConfig{
			DBPath: "~/.whereim/state.db",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
