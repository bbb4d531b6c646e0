package actor

import (
	"testing"
	"time"

	"go.uber.org/goleak"
)

// newTimerTestRecipient returns a BasicRef that records every Tell into a
// buffered channel, backed by just enough of *System (a path registry
// with the recipient pre-registered) to satisfy cell.isDead without a
// full running kernel. The draining goroutine stops when t completes.
func newTimerTestRecipient(t *testing.T, name string) (*BasicRef, chan interface{}) {
	sys := &System{paths: newPathRegistry()}
	c := newTestCell(name, nil)
	c.system = sys
	sys.paths.tryInsert(c.path())

	received := make(chan interface{}, 64)
	stop := make(chan struct{})
	t.Cleanup(func() { close(stop) })
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
			}
			env, ok := c.mbox.user.pop()
			if ok {
				received <- env.Msg
				continue
			}
			time.Sleep(time.Millisecond)
		}
	}()
	return c.basicRef(), received
}

func TestSchedulerFiresOnceAfterInitialDelay(t *testing.T) {
	// Registered before newTimerTestRecipient's own t.Cleanup so that, on
	// LIFO unwind, the draining goroutine is stopped before the leak
	// check runs (t.Cleanup funcs all run after this function's defers,
	// so goleak can't be a plain defer here).
	t.Cleanup(func() { goleak.VerifyNone(t, goleak.IgnoreCurrent()) })

	s := newScheduler(5 * time.Millisecond)
	defer s.shutdown()

	recipient, received := newTimerTestRecipient(t, "once")
	s.schedule(20*time.Millisecond, 0, recipient, nil, "tick")

	select {
	case msg := <-received:
		if msg != "tick" {
			t.Fatalf("want tick, got %v", msg)
		}
	case <-time.After(time.Second):
		t.Fatalf("job never fired")
	}

	select {
	case msg := <-received:
		t.Fatalf("one-shot job fired again: %v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSchedulerRepeatsUntilCancelled(t *testing.T) {
	t.Cleanup(func() { goleak.VerifyNone(t, goleak.IgnoreCurrent()) })

	s := newScheduler(5 * time.Millisecond)
	defer s.shutdown()

	recipient, received := newTimerTestRecipient(t, "repeat")
	id := s.schedule(5*time.Millisecond, 10*time.Millisecond, recipient, nil, "beat")

	for i := 0; i < 3; i++ {
		select {
		case msg := <-received:
			if msg != "beat" {
				t.Fatalf("want beat, got %v", msg)
			}
		case <-time.After(time.Second):
			t.Fatalf("repeat job never fired (iteration %d)", i)
		}
	}

	s.cancel(id)

	// Drain anything already in flight, then confirm nothing more arrives.
	drain := time.After(100 * time.Millisecond)
	for {
		select {
		case <-received:
			continue
		case <-drain:
			goto settled
		}
	}
settled:
	select {
	case msg := <-received:
		t.Fatalf("job fired after cancel: %v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSchedulerShutdownStopsWorker(t *testing.T) {
	t.Cleanup(func() { goleak.VerifyNone(t, goleak.IgnoreCurrent()) })

	s := newScheduler(5 * time.Millisecond)
	recipient, received := newTimerTestRecipient(t, "shutdown")
	s.schedule(time.Hour, 0, recipient, nil, "never")

	s.shutdown()

	select {
	case msg := <-received:
		t.Fatalf("no job should fire after shutdown: %v", msg)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestSchedulerNextWaitFloorsAtTickFloor(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s := &scheduler{jobs: make(map[ScheduleID]*pendingJob), tickFloor: 50 * time.Millisecond}
	s.jobs[newScheduleID()] = &pendingJob{fireAt: time.Now()}

	if got := s.nextWait(); got < s.tickFloor {
		t.Fatalf("want at least tickFloor (%v), got %v", s.tickFloor, got)
	}
}

func TestSchedulerNextWaitDefaultsWhenEmpty(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s := &scheduler{jobs: make(map[ScheduleID]*pendingJob), tickFloor: 5 * time.Millisecond}
	if got := s.nextWait(); got != time.Second {
		t.Fatalf("want default 1s wait with no jobs, got %v", got)
	}
}
