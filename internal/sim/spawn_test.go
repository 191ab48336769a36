package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/whereim/internal/geo"
)

func TestSpawnCountAndIDs(t *testing.T) {
	spawner := NewSpawner(rand.New(rand.NewSource(1)), DefaultJitter, nil)
	center := geo.Pt(10, 20)

	for count := 0; count <= 25; count++ {
		cars := spawner.Spawn(count, center)
		if len(cars) != count {
			t.Fatalf("Spawn(%d) returned %d cars", count, len(cars))
		}
		for i, c := range cars {
			if c.ID != i {
				t.Errorf("Spawn(%d)[%d].ID = %d", count, i, c.ID)
			}
			if c.Kind != KindCar {
				t.Errorf("Spawn(%d)[%d].Kind = %v", count, i, c.Kind)
			}
		}
	}
}

func TestSpawnNegativeCount(t *testing.T) {
	spawner := NewSpawner(rand.New(rand.NewSource(1)), DefaultJitter, nil)
	cars := spawner.Spawn(-3, geo.Pt(0, 0))
	if cars == nil || len(cars) != 0 {
		t.Errorf("Spawn(-3) = %v, expected empty non-nil slice", cars)
	}
}

func TestSpawnWithinJitter(t *testing.T) {
	spawner := NewSpawner(rand.New(rand.NewSource(42)), DefaultJitter, nil)
	center := geo.Pt(-33.86, 151.21)

	cars := spawner.Spawn(1000, center)
	for _, c := range cars {
		if math.Abs(c.Pos.Lat-center.Lat) > DefaultJitter+tolerance {
			t.Fatalf("car %d lat offset %v exceeds jitter", c.ID, c.Pos.Lat-center.Lat)
		}
		if math.Abs(c.Pos.Lon-center.Lon) > DefaultJitter+tolerance {
			t.Fatalf("car %d lon offset %v exceeds jitter", c.ID, c.Pos.Lon-center.Lon)
		}
	}
}

func TestSpawnGlyphs(t *testing.T) {
	glyphs := []string{GlyphCar, GlyphSUV}
	spawner := NewSpawner(rand.New(rand.NewSource(5)), DefaultJitter, glyphs)

	seen := make(map[string]int)
	for _, c := range spawner.Spawn(200, geo.Pt(0, 0)) {
		seen[c.Glyph]++
	}

	if len(seen) != 2 {
		t.Fatalf("expected both glyphs, got %v", seen)
	}
	for g, n := range seen {
		if g != GlyphCar && g != GlyphSUV {
			t.Errorf("unexpected glyph %q", g)
		}
		// Uniform draw: each glyph well away from 0 or 200
		if n < 50 {
			t.Errorf("glyph %q drawn only %d/200 times", g, n)
		}
	}
}

func TestSpawnAxesIndependent(t *testing.T) {
	spawner := NewSpawner(rand.New(rand.NewSource(3)), DefaultJitter, nil)
	center := geo.Pt(0, 0)

	same := 0
	for _, c := range spawner.Spawn(100, center) {
		if c.Pos.Lat == c.Pos.Lon {
			same++
		}
	}
	if same > 0 {
		t.Errorf("%d cars have identical lat and lon offsets", same)
	}
}

func TestSpawnDeterministic(t *testing.T) {
	a := NewSpawner(rand.New(rand.NewSource(12345)), DefaultJitter, nil)
	b := NewSpawner(rand.New(rand.NewSource(12345)), DefaultJitter, nil)

	carsA := a.Spawn(10, geo.Pt(1, 1))
	carsB := b.Spawn(10, geo.Pt(1, 1))
	for i := range carsA {
		if carsA[i] != carsB[i] {
			t.Errorf("car %d mismatch: %+v vs %+v", i, carsA[i], carsB[i])
		}
	}
}
