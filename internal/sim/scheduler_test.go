package sim

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTickerSchedulerCancelWaitsForCallback(t *testing.T) {
	started := make(chan struct{}, 1)
	var finished atomic.Bool

	cancel := NewTickerScheduler().Schedule(time.Millisecond, func() {
		select {
		case started <- struct{}{}:
		default:
		}
		time.Sleep(10 * time.Millisecond)
		finished.Store(true)
	})

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("callback never ran")
	}

	cancel()
	if !finished.Load() {
		t.Error("cancel returned while a callback was in flight")
	}
}

func TestTickerSchedulerNoCallsAfterCancel(t *testing.T) {
	var calls atomic.Int64
	cancel := NewTickerScheduler().Schedule(time.Millisecond, func() {
		calls.Add(1)
	})

	time.Sleep(10 * time.Millisecond)
	cancel()
	cancel() // Idempotent

	n := calls.Load()
	time.Sleep(10 * time.Millisecond)
	if got := calls.Load(); got != n {
		t.Errorf("callback ran %d times after cancel", got-n)
	}
}

func TestManualScheduler(t *testing.T) {
	m := NewManualScheduler()
	var a, b int

	cancelA := m.Schedule(time.Second, func() { a++ })
	m.Schedule(time.Second, func() { b++ })

	if n := m.Fire(); n != 2 {
		t.Errorf("Fire() ran %d tasks, expected 2", n)
	}
	cancelA()
	m.FireN(3)

	if a != 1 || b != 4 {
		t.Errorf("a=%d b=%d, expected a=1 b=4", a, b)
	}
	if m.Active() != 1 {
		t.Errorf("Active() = %d, expected 1", m.Active())
	}
}
