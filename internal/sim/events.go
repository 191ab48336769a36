package sim

import (
	"time"

	"github.com/vovakirdan/whereim/internal/geo"
)

// EventType identifies a session transition.
type EventType int

const (
	EventStarted EventType = iota
	EventTicked
	EventStopped
)

func (t EventType) String() string {
	switch t {
	case EventStarted:
		return "started"
	case EventTicked:
		return "ticked"
	case EventStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// MarshalText encodes the event type by name.
func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Event is delivered to subscribers after every start, tick and stop.
type Event struct {
	Type     EventType     `json:"type"`
	Moved    int           `json:"moved"`   // Cars moved this tick
	Elapsed  time.Duration `json:"elapsed"` // Time spent inside the tick
	Snapshot Snapshot      `json:"snapshot"`
}

// Snapshot is a deep copy of the session state.
type Snapshot struct {
	Running bool          `json:"running"`
	Level   int           `json:"level"`
	Tick    uint64        `json:"tick"`
	Target  *geo.GeoPoint `json:"target,omitempty"`
	Region  *geo.Region   `json:"region,omitempty"`
	Cars    []Entity      `json:"cars"`
	Star    *Entity       `json:"star,omitempty"`
	Arrived int           `json:"arrived"`
	// AnimateMillis is how long a renderer may take to tween to these positions.
	AnimateMillis int64 `json:"animate_ms"`
}

// Entities returns the cars followed by the star, if any.
func (s Snapshot) Entities() []Entity {
	out := make([]Entity, 0, len(s.Cars)+1)
	out = append(out, s.Cars...)
	if s.Star != nil {
		out = append(out, *s.Star)
	}
	return out
}

// subscriber is a buffered event channel with drop-oldest delivery.
type subscriber struct {
	ch chan Event
}

// send never blocks. If the buffer is full the oldest event is dropped.
func (s *subscriber) send(evt Event) {
	select {
	case s.ch <- evt:
		return
	default:
	}

	// Buffer full, drop oldest and retry
	select {
	case <-s.ch:
	default:
	}
	select {
	case s.ch <- evt:
	default:
	}
}
