package actor_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/goleak"

	actor "go.fergus.london/aktor"
	"go.fergus.london/aktor/aktortest"
)

type echoActor struct {
	actor.BaseActor[string]
}

func (echoActor) Receive(ctx *actor.Context[string], msg string, sender *actor.BasicRef) {
	if sender != nil {
		sender.Tell(msg, nil)
	}
}

// newTestSystem returns a live System and a shutdown func. Callers must
// defer shutdown() *after* deferring goleak.VerifyNone, so it is the
// shutdown, not the leak check, that runs first on the way out:
//
//	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
//	sys, shutdown := newTestSystem(t)
//	defer shutdown()
func newTestSystem(t *testing.T) (*actor.System, func()) {
	t.Helper()
	sys, err := actor.New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return sys, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := sys.Shutdown(ctx); err != nil {
			t.Errorf("Shutdown: %v", err)
		}
	}
}

func TestSystemSpawnAndTell(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	sys, shutdown := newTestSystem(t)
	defer shutdown()
	producer, probe := aktortest.NewProbe()
	probeRef, err := actor.Spawn[interface{}](sys, "probe", producer)
	if err != nil {
		t.Fatalf("Spawn probe: %v", err)
	}

	echoRef, err := actor.Spawn[string](sys, "echo", func() actor.Actor[string] { return &echoActor{} })
	if err != nil {
		t.Fatalf("Spawn echo: %v", err)
	}

	echoRef.Tell("hello", probeRef.Basic())
	probe.Expect(t, time.Second, "hello")
}

// TestSystemDeadLettersCatchUndeliverable checks that sending to an
// actor after it has terminated is routed to dead letters.
func TestSystemDeadLettersCatchUndeliverable(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	sys, shutdown := newTestSystem(t)
	defer shutdown()
	producer, probe := aktortest.NewProbe()
	probeRef, err := actor.Spawn[interface{}](sys, "dlprobe", producer)
	if err != nil {
		t.Fatalf("Spawn probe: %v", err)
	}
	sys.SubscribeDeadLetters(probeRef.Basic())

	victimProducer := func() actor.Actor[string] { return &echoActor{} }
	victim, err := actor.Spawn[string](sys, "victim", victimProducer)
	if err != nil {
		t.Fatalf("Spawn victim: %v", err)
	}

	sys.Stop(victim.Basic())

	// Poll until the path is actually unregistered; termination is
	// asynchronous.
	deadline := time.Now().Add(time.Second)
	for {
		err := victim.Basic().TryTell("too late", nil)
		if err != nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("victim never finished terminating")
		}
		time.Sleep(5 * time.Millisecond)
	}

	evt, err := probe.Recv(time.Second)
	if err != nil {
		t.Fatalf("expected a dead letter: %v", err)
	}
	if _, ok := evt.Msg.(actor.DeadLetter); !ok {
		t.Fatalf("want actor.DeadLetter, got %#v", evt.Msg)
	}
}

func TestSystemSelectResolvesChildByName(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	sys, shutdown := newTestSystem(t)
	defer shutdown()
	producer, probe := aktortest.NewProbe()
	if _, err := actor.Spawn[interface{}](sys, "named", producer); err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	sel, err := sys.Select("named")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	sel.Tell("ping", nil)
	probe.Expect(t, time.Second, "ping")
}

func TestSystemDuplicateNameRejected(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	sys, shutdown := newTestSystem(t)
	defer shutdown()
	producer, _ := aktortest.NewProbe()
	if _, err := actor.Spawn[interface{}](sys, "dup", producer); err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	_, err := actor.Spawn[interface{}](sys, "dup", producer)
	if err == nil {
		t.Fatalf("expected AlreadyExistsError on duplicate name")
	}
}
