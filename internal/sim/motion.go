package sim

import "github.com/vovakirdan/whereim/internal/geo"

// Motion is the per-tick movement rule: a fixed step of Speed degrees
// straight toward the target, skipped once within StopDistance.
type Motion struct {
	Speed        float64
	StopDistance float64
}

// Step returns the next position for pos and whether it moved.
// A zero distance counts as arrived.
func (m Motion) Step(pos, target geo.GeoPoint) (geo.GeoPoint, bool) {
	distance := pos.DistanceTo(target)
	if distance == 0 || distance < m.StopDistance {
		return pos, false
	}

	dLat := (target.Lat - pos.Lat) / distance
	dLon := (target.Lon - pos.Lon) / distance
	return geo.GeoPoint{
		Lat: pos.Lat + dLat*m.Speed,
		Lon: pos.Lon + dLon*m.Speed,
	}, true
}

// Arrived reports whether pos is within the stop distance of target.
func (m Motion) Arrived(pos, target geo.GeoPoint) bool {
	d := pos.DistanceTo(target)
	return d == 0 || d < m.StopDistance
}

// Advance moves every entity in place and returns how many moved.
// Entities are independent, so order does not matter.
func (m Motion) Advance(entities []Entity, target geo.GeoPoint) int {
	moved := 0
	for i := range entities {
		next, ok := m.Step(entities[i].Pos, target)
		if !ok {
			continue
		}
		entities[i].Pos = next
		moved++
	}
	return moved
}
