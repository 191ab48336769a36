package sim

import (
	"math/rand"

	"github.com/vovakirdan/whereim/internal/geo"
)

// Spawner places cars at random offsets around a center.
// It is not safe for concurrent use; a Session serializes access.
type Spawner struct {
	rng    *rand.Rand
	jitter float64
	glyphs []string
}

// NewSpawner creates a spawner. Offsets are drawn uniformly from
// [-jitter, +jitter] on each axis independently.
func NewSpawner(rng *rand.Rand, jitter float64, glyphs []string) *Spawner {
	if len(glyphs) == 0 {
		glyphs = []string{GlyphCar, GlyphSUV}
	}
	return &Spawner{
		rng:    rng,
		jitter: jitter,
		glyphs: glyphs,
	}
}

// Spawn returns count cars with ids 0..count-1. count <= 0 yields an empty slice.
func (s *Spawner) Spawn(count int, center geo.GeoPoint) []Entity {
	if count < 0 {
		count = 0
	}
	cars := make([]Entity, 0, count)
	for i := range count {
		pos := center.Offset(s.offset(), s.offset())
		cars = append(cars, Entity{
			ID:    i,
			Kind:  KindCar,
			Pos:   pos,
			Glyph: s.glyphs[s.rng.Intn(len(s.glyphs))],
		})
	}
	return cars
}

// offset draws a value in [-jitter, +jitter].
func (s *Spawner) offset() float64 {
	return (s.rng.Float64()*2 - 1) * s.jitter
}
