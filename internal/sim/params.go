package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/whereim/internal/config"
)

var (
	// ErrAlreadyRunning is returned by Start while a run is in progress.
	ErrAlreadyRunning = errors.New("sim: session already running")
	// ErrInvalidLevel is returned for a negative initial level.
	ErrInvalidLevel = errors.New("sim: initial level must be >= 0")
	// ErrInvalidParams is returned when tick, speed or stop distance are not positive.
	ErrInvalidParams = errors.New("sim: invalid parameters")
)

// Default simulation constants.
const (
	DefaultInitialLevel = 5
	DefaultTickInterval = time.Second
	DefaultJitter       = 0.02
	DefaultStopDistance = 0.003
	DefaultSpeed        = 0.0002
)

// Params holds the simulation constants.
type Params struct {
	InitialLevel int
	TickInterval time.Duration
	Jitter       float64 // Max spawn offset per axis, degrees
	StopDistance float64 // Degrees
	Speed        float64 // Degrees per tick
	CarGlyphs    []string
	TargetGlyph  string
}

// DefaultParams returns the stock game constants.
func DefaultParams() Params {
	return Params{
		InitialLevel: DefaultInitialLevel,
		TickInterval: DefaultTickInterval,
		Jitter:       DefaultJitter,
		StopDistance: DefaultStopDistance,
		Speed:        DefaultSpeed,
		CarGlyphs:    []string{GlyphCar, GlyphSUV},
		TargetGlyph:  GlyphTarget,
	}
}

// ParamsFromConfig converts the game section of the configuration.
func ParamsFromConfig(cfg config.GameConfig) Params {
	p := Params{
		InitialLevel: cfg.InitialLevel,
		TickInterval: cfg.TickInterval,
		Jitter:       cfg.Jitter,
		StopDistance: cfg.StopDistance,
		Speed:        cfg.Speed,
		CarGlyphs:    append([]string(nil), cfg.CarGlyphs...),
		TargetGlyph:  cfg.TargetGlyph,
	}
	if len(p.CarGlyphs) == 0 {
		p.CarGlyphs = []string{GlyphCar, GlyphSUV}
	}
	if p.TargetGlyph == "" {
		p.TargetGlyph = GlyphTarget
	}
	return p
}

// Validate reports whether the session can run with these parameters.
func (p Params) Validate() error {
	if p.InitialLevel < 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidLevel, p.InitialLevel)
	}
	if p.TickInterval <= 0 || p.Speed <= 0 || p.StopDistance <= 0 || p.Jitter < 0 {
		return fmt.Errorf("%w: tick=%v speed=%v stop=%v jitter=%v",
			ErrInvalidParams, p.TickInterval, p.Speed, p.StopDistance, p.Jitter)
	}
	return nil
}

// Motion returns the motion rule derived from the parameters.
func (p Params) Motion() Motion {
	return Motion{Speed: p.Speed, StopDistance: p.StopDistance}
}
