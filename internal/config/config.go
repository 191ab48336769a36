// Package config provides YAML-based configuration loading and difficulty
// presets for whereim.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config is the complete application configuration.
type Config struct {
	Game     GameConfig     `yaml:"game"`
	Viewport ViewportConfig `yaml:"viewport"`
	Location LocationConfig `yaml:"location"`
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
}

// GameConfig holds the simulation constants.
type GameConfig struct {
	InitialLevel int           `yaml:"initial_level"` // Incremented before the first spawn
	TickInterval time.Duration `yaml:"tick_interval"`
	Jitter       float64       `yaml:"jitter"`        // Max spawn offset per axis, degrees
	StopDistance float64       `yaml:"stop_distance"` // Degrees
	Speed        float64       `yaml:"speed"`         // Degrees per tick
	CarGlyphs    []string      `yaml:"car_glyphs"`
	TargetGlyph  string        `yaml:"target_glyph"`
	MarkerGlyph  string        `yaml:"marker_glyph"` // Star shown before a game starts
}

// ViewportConfig bounds the span of the viewer-following region.
type ViewportConfig struct {
	MinDelta float64 `yaml:"min_delta"`
	MaxDelta float64 `yaml:"max_delta"`
}

// LocationConfig selects and parameterizes the location provider.
type LocationConfig struct {
	Provider     string        `yaml:"provider"` // "static" or "walk"
	Lat          float64       `yaml:"lat"`
	Lon          float64       `yaml:"lon"`
	LatDelta     float64       `yaml:"lat_delta"`
	LonDelta     float64       `yaml:"lon_delta"`
	WalkStep     float64       `yaml:"walk_step"` // Max drift per update, degrees
	WalkInterval time.Duration `yaml:"walk_interval"`
}

// ServerConfig configures the SSH and HTTP surfaces.
type ServerConfig struct {
	SSHAddress  string        `yaml:"ssh_address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	HTTPAddress string        `yaml:"http_address"`
}

// StorageConfig configures the app-state database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// Location provider names.
const (
	ProviderStatic = "static"
	ProviderWalk   = "walk"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the configuration for values the simulation cannot run with.
func (c Config) Validate() error {
	g := c.Game
	switch {
	case g.InitialLevel < 0:
		return fmt.Errorf("%w: game.initial_level must be >= 0, got %d", ErrInvalidConfig, g.InitialLevel)
	case g.TickInterval <= 0:
		return fmt.Errorf("%w: game.tick_interval must be positive", ErrInvalidConfig)
	case g.Jitter < 0:
		return fmt.Errorf("%w: game.jitter must be >= 0", ErrInvalidConfig)
	case g.StopDistance <= 0:
		return fmt.Errorf("%w: game.stop_distance must be positive", ErrInvalidConfig)
	case g.Speed <= 0:
		return fmt.Errorf("%w: game.speed must be positive", ErrInvalidConfig)
	case len(g.CarGlyphs) == 0:
		return fmt.Errorf("%w: game.car_glyphs must not be empty", ErrInvalidConfig)
	}

	v := c.Viewport
	if v.MinDelta <= 0 || v.MaxDelta < v.MinDelta {
		return fmt.Errorf("%w: viewport requires 0 < min_delta <= max_delta, got [%v, %v]",
			ErrInvalidConfig, v.MinDelta, v.MaxDelta)
	}

	// Provider names are resolved by the viewer's provider registry.
	switch c.Location.Provider {
	case "":
		return fmt.Errorf("%w: location.provider must be set", ErrInvalidConfig)
	case ProviderWalk:
		if c.Location.WalkInterval <= 0 {
			return fmt.Errorf("%w: location.walk_interval must be positive", ErrInvalidConfig)
		}
	}

	return nil
}
