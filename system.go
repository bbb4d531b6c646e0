// Package actor implements an in-process actor runtime: a supervised
// actor kernel with mailboxes, a path-addressed tree of typed and
// type-erased references, topic-based pub/sub channels, and a demand
// driven scheduler, all coordinated through one System.
package actor

import (
	"context"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/sync/errgroup"

	"go.fergus.london/aktor/config"
)

// guardian is the no-op actor type backing the four bootstrap roots
// (/, /user, /system, /temp). It never receives application messages;
// its only job is to own a kernel loop and a children map so the normal
// create/stop/restart machinery applies uniformly down to the roots.
type guardian struct {
	BaseActor[interface{}]
}

func newGuardianProducer() Producer[interface{}] {
	return func() Actor[interface{}] { return &guardian{} }
}

// System is the runtime's single entry point: it owns the path registry,
// the executor backing every kernel loop, the background scheduler, and
// the four bootstrap roots (/, /user, /system, /temp).
type System struct {
	cfg      *config.Config
	logger   Logger
	executor Executor
	paths    *pathRegistry
	timer    *scheduler

	root           *cell
	userGuardian   *cell
	systemGuardian *cell
	tempGuardian   *cell

	eventsRef      *BasicRef
	deadLettersRef *BasicRef
}

// Options configures New. A zero-value Options, or a nil *Options, boots
// a System with every built-in default (config.Default, the
// goroutine-per-actor Executor, and a discarding Logger).
type Options struct {
	Config   *config.Config
	Logger   Logger
	Executor Executor
}

// New boots a System: it builds the four root guardians (/, /user,
// /system, /temp), then spawns the built-in events and dead-letters
// channels under /system. It never blocks waiting for the bootstrap
// actors to finish starting: a freshly spawned mailbox begins suspended
// and simply queues whatever is sent to it until ActorInit completes, so
// no readiness rendezvous is needed for correctness (see DESIGN.md).
func New(opts *Options) (*System, error) {
	if opts == nil {
		opts = &Options{}
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	exec := opts.Executor
	if exec == nil {
		if cfg.Dispatcher.PoolSize > 0 {
			exec = NewPooledExecutor(cfg.Dispatcher.PoolSize)
		} else {
			exec = goroutineExecutor{}
		}
	}

	sys := &System{
		cfg:      cfg,
		logger:   opts.Logger,
		executor: exec,
		paths:    newPathRegistry(),
		timer:    newScheduler(time.Duration(cfg.Scheduler.FrequencyMillis) * time.Millisecond),
	}

	sys.root = sys.bootRoot(nil, "root", rootPath)
	sys.userGuardian = sys.bootRoot(sys.root, "user", userPath)
	sys.systemGuardian = sys.bootRoot(sys.root, "system", systemPath)
	sys.tempGuardian = sys.bootRoot(sys.root, "temp", tempPath)

	eventsRef, err := createActor[ChannelMsg](sys.systemGuardian, "eventStream", newEventsChannel(), 0)
	if err != nil {
		return nil, &SystemError{Reason: err.Error()}
	}
	sys.eventsRef = eventsRef.Basic()

	deadLettersRef, err := createActor[ChannelMsg](sys.systemGuardian, "deadLetters", newAutoPruningChannel(), 0)
	if err != nil {
		return nil, &SystemError{Reason: err.Error()}
	}
	sys.deadLettersRef = deadLettersRef.Basic()

	return sys, nil
}

// bootRoot builds and launches one of the four reserved root cells.
func (s *System) bootRoot(parent *cell, name, path string) *cell {
	c, sh := createRootCell[interface{}](s, parent, name, path, newGuardianProducer())
	s.executor.Spawn(func() { runKernel(c, sh) })
	c.tellSys(sysActorInit{})
	return c
}

// cellRef implements Parenter: actors Spawned directly against a System
// land under /user.
func (s *System) cellRef() *cell { return s.userGuardian }

func (s *System) rootRef() *BasicRef { return s.root.basicRef() }

// Select resolves a path expression anchored at /user.
func (s *System) Select(path string) (*Selection, error) {
	return newSelection(s.userGuardian.basicRef(), path)
}

// Stop requests termination of any live actor.
func (s *System) Stop(ref *BasicRef) {
	if ref == nil || ref.c == nil {
		return
	}
	ref.c.tellSys(sysCommand{cmd: cmdStop})
}

// SysEvents returns the reference to the built-in events channel; Tell
// it Subscribe/Unsubscribe/Publish (channel.go) or use SubscribeEvents.
func (s *System) SysEvents() *BasicRef { return s.eventsRef }

// DeadLetters returns the reference to the built-in dead-letters channel.
func (s *System) DeadLetters() *BasicRef { return s.deadLettersRef }

// ScheduleOnce delivers msg to recipient once, after d elapses.
func (s *System) ScheduleOnce(d time.Duration, recipient, sender *BasicRef, msg interface{}) (ScheduleID, error) {
	if recipient == nil {
		return ScheduleID{}, &TryMsgError{Msg: msg}
	}
	return s.timer.schedule(d, 0, recipient, sender, msg), nil
}

// ScheduleRepeat delivers msg to recipient every interval, first firing
// after initial elapses, until CancelSchedule is called.
func (s *System) ScheduleRepeat(initial, interval time.Duration, recipient, sender *BasicRef, msg interface{}) (ScheduleID, error) {
	if recipient == nil {
		return ScheduleID{}, &TryMsgError{Msg: msg}
	}
	return s.timer.schedule(initial, interval, recipient, sender, msg), nil
}

// CancelSchedule cancels a pending once/repeat job. Cancelling an
// already-fired one-shot or an unknown id is a silent no-op.
func (s *System) CancelSchedule(id ScheduleID) {
	s.timer.cancel(id)
}

// Shutdown stops /user, /system and /temp concurrently, waits for every
// actor beneath them to finish post_stop, then tears down the scheduler
// and the root itself. It returns ctx's error if ctx is cancelled before
// teardown completes.
func (s *System) Shutdown(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, c := range []*cell{s.userGuardian, s.systemGuardian, s.tempGuardian} {
		c := c
		c.tellSys(sysCommand{cmd: cmdStop})
		g.Go(func() error {
			select {
			case <-c.terminated:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	s.timer.shutdown()

	s.root.tellSys(sysCommand{cmd: cmdStop})
	select {
	case <-s.root.terminated:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// DebugTree renders the live actor tree to w, one row per actor,
// ordered depth-first from the root.
func (s *System) DebugTree(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Path", "Instance"})

	var walk func(c *cell)
	walk = func(c *cell) {
		table.Append([]string{c.path(), c.instanceID.String()})
		for _, child := range c.children.snapshot() {
			walk(child.c)
		}
	}
	walk(s.root)

	table.Render()
}
