package sim

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/whereim/internal/geo"
)

// Session is one player's game: it survives across runs and keeps
// incrementing its level on every Start.
//
// All state is guarded by mu. Ticks, Start and Stop are mutually exclusive,
// and events are published in the order the transitions happened.
type Session struct {
	params  Params
	motion  Motion
	sched   Scheduler
	spawner *Spawner

	mu      sync.Mutex
	level   int
	running bool
	gen     uint64 // Bumped per run so a late tick from an old run is discarded
	tick    uint64
	region  *geo.Region
	cars    []Entity
	star    *Entity
	cancel  CancelFunc

	subMu   sync.Mutex
	subs    map[int]*subscriber
	nextSub int
}

// NewSession creates an idle session. A nil scheduler selects the wall-clock
// TickerScheduler; a nil rng is seeded from the current time.
func NewSession(p Params, sched Scheduler, rng *rand.Rand) (*Session, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if sched == nil {
		sched = NewTickerScheduler()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if p.TargetGlyph == "" {
		p.TargetGlyph = GlyphTarget
	}

	return &Session{
		params:  p,
		motion:  p.Motion(),
		sched:   sched,
		spawner: NewSpawner(rng, p.Jitter, p.CarGlyphs),
		level:   p.InitialLevel,
		subs:    make(map[int]*subscriber),
	}, nil
}

// Params returns the session's constants.
func (s *Session) Params() Params {
	return s.params
}

// Start pins region, increments the level, spawns level cars around the
// region center and begins ticking. It returns ErrAlreadyRunning, leaving the
// current run untouched, if a run is in progress.
func (s *Session) Start(region geo.Region) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}

	s.level++
	s.gen++
	gen := s.gen

	r := region
	s.region = &r
	s.cars = s.spawner.Spawn(s.level, region.Center)
	star := newTarget(region.Center, s.params.TargetGlyph)
	s.star = &star
	s.tick = 0
	s.running = true
	s.cancel = s.sched.Schedule(s.params.TickInterval, func() { s.onTick(gen) })

	s.unlockAndPublish(Event{Type: EventStarted, Snapshot: s.snapshotLocked()})
	return nil
}

// Stop halts ticking and discards the region and all entities. The level is
// kept. Stop on an idle session is a no-op. When Stop returns no tick
// callback is running or will run for the stopped run.
func (s *Session) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}

	s.running = false
	s.region = nil
	s.cars = nil
	s.star = nil
	cancel := s.cancel
	s.cancel = nil

	s.unlockAndPublish(Event{Type: EventStopped, Snapshot: s.snapshotLocked()})

	// Outside the lock: an in-flight tick may be waiting on mu
	if cancel != nil {
		cancel()
	}
}

// onTick advances all cars toward the pinned center once.
func (s *Session) onTick(gen uint64) {
	began := time.Now()

	s.mu.Lock()
	if !s.running || s.gen != gen || s.region == nil {
		s.mu.Unlock()
		return
	}

	moved := s.motion.Advance(s.cars, s.region.Center)
	s.tick++

	s.unlockAndPublish(Event{
		Type:     EventTicked,
		Moved:    moved,
		Elapsed:  time.Since(began),
		Snapshot: s.snapshotLocked(),
	})
}

// unlockAndPublish releases mu and delivers evt, holding subMu across the
// hand-off so events keep transition order.
func (s *Session) unlockAndPublish(evt Event) {
	s.subMu.Lock()
	s.mu.Unlock()
	defer s.subMu.Unlock()

	for _, sub := range s.subs {
		sub.send(evt)
	}
}

// Subscribe returns a channel of session events and a function that
// unsubscribes and closes it. Delivery never blocks the simulation; when the
// buffer is full the oldest event is dropped.
func (s *Session) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 16
	}
	sub := &subscriber{ch: make(chan Event, buffer)}

	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = sub
	s.subMu.Unlock()

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			close(sub.ch)
			s.subMu.Unlock()
		})
	}
}

// Running reports whether a run is in progress.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Level returns the current level. It equals the car count of the latest run.
func (s *Session) Level() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// Target returns the pinned target center, if running.
func (s *Session) Target() (geo.GeoPoint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.region == nil {
		return geo.GeoPoint{}, false
	}
	return s.region.Center, true
}

// Entities returns a copy of the cars in spawn order.
func (s *Session) Entities() []Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entity{}, s.cars...)
}

// Snapshot returns a deep copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		Running:       s.running,
		Level:         s.level,
		Tick:          s.tick,
		Cars:          append([]Entity{}, s.cars...),
		AnimateMillis: s.params.TickInterval.Milliseconds(),
	}
	if s.region != nil {
		r := *s.region
		center := r.Center
		snap.Region = &r
		snap.Target = &center
		for _, c := range s.cars {
			if s.motion.Arrived(c.Pos, center) {
				snap.Arrived++
			}
		}
	}
	if s.star != nil {
		star := *s.star
		snap.Star = &star
	}
	return snap
}
