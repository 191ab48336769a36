package viewer

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/whereim/internal/config"
	"github.com/vovakirdan/whereim/internal/geo"
)

// ProviderFactory builds a location provider from configuration.
// seed is never zero.
type ProviderFactory func(cfg config.LocationConfig, seed int64) (Provider, error)

var (
	factories = make(map[string]ProviderFactory)
	mu        sync.RWMutex
)

func init() {
	RegisterProvider(config.ProviderStatic, func(cfg config.LocationConfig, _ int64) (Provider, error) {
		return StaticProvider{Region: startRegion(cfg)}, nil
	})
	RegisterProvider(config.ProviderWalk, func(cfg config.LocationConfig, seed int64) (Provider, error) {
		if cfg.WalkInterval <= 0 {
			return nil, fmt.Errorf("viewer: walk provider needs a positive interval")
		}
		return WalkProvider{
			Start:    startRegion(cfg),
			Step:     cfg.WalkStep,
			Interval: cfg.WalkInterval,
			Rand:     rand.New(rand.NewSource(seed)),
		}, nil
	})
}

// RegisterProvider adds a location provider factory under name.
// Panics if the name is already registered.
func RegisterProvider(name string, f ProviderFactory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("viewer: provider %q already registered", name))
	}
	factories[name] = f
}

// Providers returns the registered provider names, sorted.
func Providers() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewProvider builds the provider selected in the configuration.
// An empty name selects the static provider; seed 0 seeds from the clock.
func NewProvider(cfg config.LocationConfig, seed int64) (Provider, error) {
	name := cfg.Provider
	if name == "" {
		name = config.ProviderStatic
	}

	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("viewer: unknown location provider %q (have %v)", name, Providers())
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return f(cfg, seed)
}

func startRegion(cfg config.LocationConfig) geo.Region {
	return geo.NewRegion(cfg.Lat, cfg.Lon, cfg.LatDelta, cfg.LonDelta)
}
