package viewer

import (
	"context"
	"math/rand"
	"time"

	"github.com/vovakirdan/whereim/internal/geo"
)

// Provider is a source of viewer region updates, standing in for a device
// location service. The channel is closed when ctx is done.
type Provider interface {
	Updates(ctx context.Context) <-chan geo.Region
}

// StaticProvider reports a single fixed region.
type StaticProvider struct {
	Region geo.Region
}

// Updates emits Region once and closes when ctx is done.
func (p StaticProvider) Updates(ctx context.Context) <-chan geo.Region {
	ch := make(chan geo.Region, 1)
	ch <- p.Region
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch
}

// WalkProvider simulates a player strolling around: each interval the center
// drifts by up to Step degrees per axis.
type WalkProvider struct {
	Start    geo.Region
	Step     float64
	Interval time.Duration
	Rand     *rand.Rand
}

// Updates emits Start, then a drifted region every Interval.
func (p WalkProvider) Updates(ctx context.Context) <-chan geo.Region {
	ch := make(chan geo.Region, 1)
	rng := p.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	go func() {
		defer close(ch)

		current := p.Start
		select {
		case ch <- current:
		case <-ctx.Done():
			return
		}

		ticker := time.NewTicker(p.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				current.Center = current.Center.Offset(
					(rng.Float64()*2-1)*p.Step,
					(rng.Float64()*2-1)*p.Step,
				)
				select {
				case ch <- current:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// Follow feeds provider updates into the tracker until ctx is done or the
// provider closes. onChange, if set, is called after each accepted update.
func Follow(ctx context.Context, p Provider, t *Tracker, onChange func(geo.Region)) {
	for r := range p.Updates(ctx) {
		if t.Update(r) && onChange != nil {
			onChange(t.Free())
		}
	}
}
