package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(DefaultYAML()) failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("embedded defaults differ from DefaultConfig():\n got  %+v\n want %+v", cfg, DefaultConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte(`
game:
  initial_level: 2
  speed: 0.0005
  car_glyphs: ["C"]
location:
  provider: walk
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Game.InitialLevel != 2 {
		t.Errorf("InitialLevel = %d, expected 2", cfg.Game.InitialLevel)
	}
	if cfg.Game.Speed != 0.0005 {
		t.Errorf("Speed = %v, expected 0.0005", cfg.Game.Speed)
	}
	if !reflect.DeepEqual(cfg.Game.CarGlyphs, []string{"C"}) {
		t.Errorf("CarGlyphs = %v, expected [C]", cfg.Game.CarGlyphs)
	}
	// Untouched values keep their defaults
	if cfg.Game.TickInterval != time.Second {
		t.Errorf("TickInterval = %v, expected 1s", cfg.Game.TickInterval)
	}
	if cfg.Game.StopDistance != 0.003 {
		t.Errorf("StopDistance = %v, expected 0.003", cfg.Game.StopDistance)
	}
	if cfg.Location.Provider != ProviderWalk {
		t.Errorf("Provider = %q, expected walk", cfg.Location.Provider)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() with missing file should fail")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("game: [not, a, map"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() with malformed YAML should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative level", func(c *Config) { c.Game.InitialLevel = -1 }},
		{"zero tick", func(c *Config) { c.Game.TickInterval = 0 }},
		{"negative jitter", func(c *Config) { c.Game.Jitter = -0.1 }},
		{"zero stop distance", func(c *Config) { c.Game.StopDistance = 0 }},
		{"zero speed", func(c *Config) { c.Game.Speed = 0 }},
		{"no glyphs", func(c *Config) { c.Game.CarGlyphs = nil }},
		{"inverted viewport", func(c *Config) { c.Viewport.MinDelta, c.Viewport.MaxDelta = 0.03, 0.01 }},
		{"no provider", func(c *Config) { c.Location.Provider = "" }},
		{"walk without interval", func(c *Config) {
			c.Location.Provider = ProviderWalk
			c.Location.WalkInterval = 0
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		name     string
		expected int
	}{
		{"easy", 3},
		{"normal", 5},
		{"hard", 8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			preset, err := ParsePreset(tc.name)
			if err != nil {
				t.Fatalf("ParsePreset(%q) failed: %v", tc.name, err)
			}
			cfg := DefaultConfig()
			cfg.Game.InitialLevel = 42
			ApplyPreset(&cfg, preset)
			if cfg.Game.InitialLevel != tc.expected {
				t.Errorf("InitialLevel = %d, expected %d", cfg.Game.InitialLevel, tc.expected)
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Game.InitialLevel = 42
	ApplyPreset(&cfg, "")
	if cfg.Game.InitialLevel != 42 {
		t.Errorf("empty preset changed level to %d", cfg.Game.InitialLevel)
	}

	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset(nightmare) should fail")
	}
}

func TestMarshalRoundTripKeepsDurations(t *testing.T) {
	data, err := Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.Game.TickInterval != time.Second || cfg.Server.IdleTimeout != 30*time.Minute {
		t.Errorf("durations not preserved: tick=%v idle=%v", cfg.Game.TickInterval, cfg.Server.IdleTimeout)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandHome("~/.whereim/state.db")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if want := filepath.Join(home, ".whereim", "state.db"); got != want {
		t.Errorf("ExpandHome() = %q, expected %q", got, want)
	}
	if got, _ := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("ExpandHome() changed absolute path to %q", got)
	}
}
