package sim

import (
	"sync"
	"time"
)

// CancelFunc stops a scheduled task. It blocks until any in-flight callback
// has returned, so no callback runs after it returns. Calling it more than
// once is safe; calling it from inside the callback deadlocks.
type CancelFunc func()

// Scheduler runs a callback periodically.
type Scheduler interface {
	Schedule(interval time.Duration, fn func()) CancelFunc
}

// TickerScheduler runs each task on its own goroutine driven by a time.Ticker.
type TickerScheduler struct{}

// NewTickerScheduler returns a wall-clock scheduler.
func NewTickerScheduler() TickerScheduler {
	return TickerScheduler{}
}

// Schedule starts calling fn every interval until cancelled.
func (TickerScheduler) Schedule(interval time.Duration, fn func()) CancelFunc {
	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				// Prefer stop when both are ready
				select {
				case <-stop:
					return
				default:
				}
				fn()
			case <-stop:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(stop) })
		<-done
	}
}

// ManualScheduler fires tasks only when Fire is called. It makes tick-driven
// code deterministic in tests and replays.
type ManualScheduler struct {
	mu    sync.Mutex
	tasks map[int]manualTask
	next  int
}

type manualTask struct {
	interval time.Duration
	fn       func()
}

// NewManualScheduler creates an empty manual scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{tasks: make(map[int]manualTask)}
}

// Schedule registers fn. The interval is recorded but not used for timing.
func (m *ManualScheduler) Schedule(interval time.Duration, fn func()) CancelFunc {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.next
	m.next++
	m.tasks[id] = manualTask{interval: interval, fn: fn}

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.tasks, id)
	}
}

// Fire runs every active task once and returns how many ran.
func (m *ManualScheduler) Fire() int {
	m.mu.Lock()
	fns := make([]func(), 0, len(m.tasks))
	for _, t := range m.tasks {
		fns = append(fns, t.fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// FireN calls Fire n times.
func (m *ManualScheduler) FireN(n int) {
	for range n {
		m.Fire()
	}
}

// Active returns the number of scheduled tasks.
func (m *ManualScheduler) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Intervals returns the intervals of the active tasks.
func (m *ManualScheduler) Intervals() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Duration, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, t.interval)
	}
	return out
}
