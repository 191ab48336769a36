package sim

import (
	"fmt"

	"github.com/vovakirdan/whereim/internal/geo"
)

// Display glyphs.
const (
	GlyphCar    = "🚗"
	GlyphSUV    = "🚙"
	GlyphTarget = "🌟"
)

// TargetID is the reserved identity of the target entity. Car ids are >= 0.
const TargetID = -1

// Kind distinguishes cars from the target.
type Kind int

const (
	KindCar Kind = iota
	KindTarget
)

func (k Kind) String() string {
	switch k {
	case KindCar:
		return "car"
	case KindTarget:
		return "target"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "car":
		*k = KindCar
	case "target":
		*k = KindTarget
	default:
		return fmt.Errorf("sim: unknown entity kind %q", text)
	}
	return nil
}

// Entity is a simulated point on the map.
type Entity struct {
	ID    int          `json:"id"`
	Kind  Kind         `json:"kind"`
	Pos   geo.GeoPoint `json:"pos"`
	Glyph string       `json:"glyph"`
}

// IsTarget reports whether e is the target star.
func (e Entity) IsTarget() bool {
	return e.Kind == KindTarget
}

func newTarget(center geo.GeoPoint, glyph string) Entity {
	return Entity{ID: TargetID, Kind: KindTarget, Pos: center, Glyph: glyph}
}
