package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/whereim/internal/geo"
)

const tolerance = 1e-9

func defaultMotion() Motion {
	return DefaultParams().Motion()
}

func TestStepJustOutsideStopDistance(t *testing.T) {
	target := geo.Pt(10, 20)
	pos := geo.Pt(10.0031, 20)

	next, moved := defaultMotion().Step(pos, target)
	if !moved {
		t.Fatal("Step() should move a car at distance 0.0031")
	}
	if math.Abs(next.Lat-10.0029) > tolerance || math.Abs(next.Lon-20) > tolerance {
		t.Errorf("Step() = %v, expected (10.0029, 20)", next)
	}
}

func TestStepInsideStopDistance(t *testing.T) {
	target := geo.Pt(10, 20)
	pos := geo.Pt(10.002, 20)

	next, moved := defaultMotion().Step(pos, target)
	if moved {
		t.Error("Step() should not move a car at distance 0.002")
	}
	if next != pos {
		t.Errorf("Step() = %v, expected unchanged %v", next, pos)
	}
}

func TestStepZeroDistance(t *testing.T) {
	// A zero stop distance must still not divide by zero
	m := Motion{Speed: DefaultSpeed, StopDistance: 0}
	p := geo.Pt(1, 2)

	next, moved := m.Step(p, p)
	if moved {
		t.Error("Step() at the target should not move")
	}
	if math.IsNaN(next.Lat) || math.IsNaN(next.Lon) || next != p {
		t.Errorf("Step() at the target = %v, expected %v", next, p)
	}
}

func TestStepReducesDistanceBySpeed(t *testing.T) {
	m := defaultMotion()
	rng := rand.New(rand.NewSource(7))
	target := geo.Pt(48.85, 2.35)

	for i := 0; i < 500; i++ {
		pos := target.Offset((rng.Float64()*2-1)*0.05, (rng.Float64()*2-1)*0.05)
		before := pos.DistanceTo(target)
		if before < m.StopDistance {
			continue
		}

		next, moved := m.Step(pos, target)
		if !moved {
			t.Fatalf("Step() did not move %v at distance %v", pos, before)
		}
		after := next.DistanceTo(target)
		if math.Abs((before-after)-m.Speed) > tolerance {
			t.Fatalf("distance went %v -> %v, expected a decrease of %v", before, after, m.Speed)
		}
	}
}

func TestAdvanceIdempotentOnArrived(t *testing.T) {
	m := defaultMotion()
	target := geo.Pt(10, 20)
	cars := []Entity{
		{ID: 0, Pos: geo.Pt(10.001, 20.001)},
		{ID: 1, Pos: geo.Pt(10, 20)},
		{ID: 2, Pos: geo.Pt(9.998, 20)},
	}
	before := append([]Entity(nil), cars...)

	for i := 0; i < 3; i++ {
		if moved := m.Advance(cars, target); moved != 0 {
			t.Fatalf("Advance() moved %d arrived cars", moved)
		}
	}
	for i := range cars {
		if cars[i] != before[i] {
			t.Errorf("car %d changed: %v -> %v", i, before[i].Pos, cars[i].Pos)
		}
	}
}

func TestAdvanceConverges(t *testing.T) {
	m := defaultMotion()
	target := geo.Pt(10, 20)
	rng := rand.New(rand.NewSource(99))
	spawner := NewSpawner(rng, DefaultJitter, nil)
	cars := spawner.Spawn(20, target)

	maxTicks := 0
	for _, c := range cars {
		if n := int(math.Ceil(c.Pos.DistanceTo(target) / m.Speed)); n > maxTicks {
			maxTicks = n
		}
	}

	for i := 0; i < maxTicks; i++ {
		m.Advance(cars, target)
	}

	for _, c := range cars {
		if d := c.Pos.DistanceTo(target); d >= m.StopDistance {
			t.Errorf("car %d still %v away after %d ticks", c.ID, d, maxTicks)
		}
	}

	// One more tick changes nothing
	if moved := m.Advance(cars, target); moved != 0 {
		t.Errorf("Advance() after convergence moved %d cars", moved)
	}
}

func TestAdvanceCountsMoved(t *testing.T) {
	m := defaultMotion()
	target := geo.Pt(0, 0)
	cars := []Entity{
		{ID: 0, Pos: geo.Pt(0.01, 0)},
		{ID: 1, Pos: geo.Pt(0.001, 0)},
		{ID: 2, Pos: geo.Pt(0, -0.02)},
	}

	if moved := m.Advance(cars, target); moved != 2 {
		t.Errorf("Advance() moved %d, expected 2", moved)
	}
	if math.Abs(cars[2].Pos.Lon+0.0198) > tolerance {
		t.Errorf("car 2 lon = %v, expected -0.0198", cars[2].Pos.Lon)
	}
}
