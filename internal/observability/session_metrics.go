// Package observability exposes Prometheus metrics for simulation sessions.
package observability

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vovakirdan/whereim/internal/sim"
)

// SessionCollector turns session events into Prometheus metrics.
type SessionCollector struct {
	gatherer prometheus.Gatherer

	TickDuration  prometheus.Histogram
	TicksTotal    prometheus.Counter
	CarsMoved     prometheus.Counter
	RunsStarted   prometheus.Counter
	RunsStopped   prometheus.Counter
	Level         prometheus.Gauge
	Cars          prometheus.Gauge
	CarsArrived   prometheus.Gauge
	SessionActive prometheus.Gauge
}

// NewSessionCollector registers session metrics against the provided registerer.
// Registering twice against the same registerer reuses the existing metrics.
func NewSessionCollector(reg prometheus.Registerer) (*SessionCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	tickHist, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "whereim_tick_duration_seconds",
		Help:    "Time spent advancing cars in a single simulation tick.",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	}), "whereim_tick_duration_seconds")
	if err != nil {
		return nil, err
	}

	ticks, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "whereim_ticks_total",
		Help: "Number of simulation ticks processed.",
	}), "whereim_ticks_total")
	if err != nil {
		return nil, err
	}

	moved, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "whereim_cars_moved_total",
		Help: "Number of car steps taken toward the target.",
	}), "whereim_cars_moved_total")
	if err != nil {
		return nil, err
	}

	started, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "whereim_runs_started_total",
		Help: "Number of games started.",
	}), "whereim_runs_started_total")
	if err != nil {
		return nil, err
	}

	stopped, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "whereim_runs_stopped_total",
		Help: "Number of games ended.",
	}), "whereim_runs_stopped_total")
	if err != nil {
		return nil, err
	}

	level, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "whereim_level",
		Help: "Level of the most recently started game.",
	}), "whereim_level")
	if err != nil {
		return nil, err
	}

	cars, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "whereim_cars",
		Help: "Cars in the running game.",
	}), "whereim_cars")
	if err != nil {
		return nil, err
	}

	arrived, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "whereim_cars_arrived",
		Help: "Cars within stop distance of the target.",
	}), "whereim_cars_arrived")
	if err != nil {
		return nil, err
	}

	active, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "whereim_session_running",
		Help: "1 while a game is running, 0 otherwise.",
	}), "whereim_session_running")
	if err != nil {
		return nil, err
	}

	return &SessionCollector{
		gatherer:      gatherer,
		TickDuration:  tickHist,
		TicksTotal:    ticks,
		CarsMoved:     moved,
		RunsStarted:   started,
		RunsStopped:   stopped,
		Level:         level,
		Cars:          cars,
		CarsArrived:   arrived,
		SessionActive: active,
	}, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *SessionCollector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// Observe records a single session event.
func (c *SessionCollector) Observe(evt sim.Event) {
	if c == nil {
		return
	}
	snap := evt.Snapshot
	switch evt.Type {
	case sim.EventStarted:
		c.RunsStarted.Inc()
		c.Level.Set(float64(snap.Level))
	case sim.EventTicked:
		c.TicksTotal.Inc()
		c.CarsMoved.Add(float64(evt.Moved))
		c.TickDuration.Observe(evt.Elapsed.Seconds())
	case sim.EventStopped:
		c.RunsStopped.Inc()
	}
	c.Cars.Set(float64(len(snap.Cars)))
	c.CarsArrived.Set(float64(snap.Arrived))
	if snap.Running {
		c.SessionActive.Set(1)
	} else {
		c.SessionActive.Set(0)
	}
}

// Watch observes events until the channel closes or ctx is done.
func (c *SessionCollector) Watch(ctx context.Context, events <-chan sim.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			c.Observe(evt)
		}
	}
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
