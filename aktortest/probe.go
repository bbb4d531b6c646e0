// Package aktortest provides a rendezvous probe actor for scenario
// tests, grounded on riker-testkit's channel probe: an actor whose
// Receive does nothing but forward every message onto a buffered Go
// channel a test can assert against.
package aktortest

import (
	"fmt"
	"testing"
	"time"

	"go.fergus.london/aktor"
)

// Probe is a testActor[any] whose Receive forwards every message (and
// its sender) onto an internal channel. Spawn it like any other actor
// and assert against its Events.
type Probe struct {
	aktor.BaseActor[interface{}]
	out chan Event
}

// Event pairs a message with whoever sent it, mirroring what a test
// usually wants to assert on: both the payload and the provenance.
type Event struct {
	Msg    interface{}
	Sender *aktor.BasicRef
}

// NewProbe returns a Producer for a Probe actor, and the listener handle
// used to read its events.
func NewProbe() (aktor.Producer[interface{}], *Probe) {
	p := &Probe{out: make(chan Event, 100)}
	return func() aktor.Actor[interface{}] { return p }, p
}

func (p *Probe) Receive(ctx *aktor.Context[interface{}], msg interface{}, sender *aktor.BasicRef) {
	p.out <- Event{Msg: msg, Sender: sender}
}

// Expect blocks until an event arrives or timeout elapses, failing t if
// the event's message does not equal want.
func (p *Probe) Expect(t *testing.T, timeout time.Duration, want interface{}) {
	t.Helper()
	select {
	case evt := <-p.out:
		if evt.Msg != want {
			t.Fatalf("probe: expected %v, got %v", want, evt.Msg)
		}
	case <-time.After(timeout):
		t.Fatalf("probe: timed out after %s waiting for %v", timeout, want)
	}
}

// ExpectNone asserts that no event arrives within d.
func (p *Probe) ExpectNone(t *testing.T, d time.Duration) {
	t.Helper()
	select {
	case evt := <-p.out:
		t.Fatalf("probe: expected no message, got %v", evt.Msg)
	case <-time.After(d):
	}
}

// Recv blocks until an event arrives or timeout elapses, returning an
// error instead of failing the test, for call sites that want to make
// their own assertion.
func (p *Probe) Recv(timeout time.Duration) (Event, error) {
	select {
	case evt := <-p.out:
		return evt, nil
	case <-time.After(timeout):
		return Event{}, fmt.Errorf("aktortest: timed out after %s", timeout)
	}
}
