package actor

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// childrenMap is the concurrent name -> BasicRef map each cell keeps
// for its direct children. It is mutated by actor creation and by
// termination bookkeeping.
type childrenMap struct {
	mu sync.RWMutex
	m  map[string]*BasicRef
}

func newChildrenMap() *childrenMap {
	return &childrenMap{m: make(map[string]*BasicRef)}
}

func (c *childrenMap) add(name string, ref *BasicRef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[name] = ref
}

func (c *childrenMap) remove(ref *BasicRef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for name, v := range c.m {
		if v.Path() == ref.Path() {
			delete(c.m, name)
			return
		}
	}
}

func (c *childrenMap) get(name string) (*BasicRef, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.m[name]
	return r, ok
}

func (c *childrenMap) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

func (c *childrenMap) snapshot() []*BasicRef {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*BasicRef, 0, len(c.m))
	for _, v := range c.m {
		out = append(out, v)
	}
	return out
}

// cell is the unexported runtime metadata envelope around one live
// actor. It outlives any single actor instance across restarts; only
// the shell (actor value + its producer closure) is replaced.
type cell struct {
	uri    URI
	parent *BasicRef // nil only for the root
	system *System

	children *childrenMap
	mbox     *mailbox
	kernelCtl chan kernelCtrl

	isTerminating atomic.Bool
	isRestarting  atomic.Bool

	msgType reflect.Type

	// newShell constructs (or reconstructs, on restart) the type-erased
	// actor shell by invoking the original Producer. Panics during the
	// call are recovered and surfaced as *PanickedError.
	newShell func() (shell, error)

	// instanceID changes on every (re)produce, letting logs distinguish
	// a restarted incarnation from its predecessor.
	instanceID uuid.UUID

	// terminated is closed once post_stop has completed and the kernel
	// loop is about to exit, letting System.Shutdown and tests await a
	// specific actor's full teardown.
	terminated chan struct{}
}

func (c *cell) basicRef() *BasicRef {
	return &BasicRef{c: c}
}

func (c *cell) path() string { return c.uri.Path }

// tellSys enqueues a system message and, per the enqueue rule, sends Run
// to the kernel control channel if this push is the one that flips
// scheduled from false to true.
func (c *cell) tellSys(msg SystemMessage) {
	if c.mbox.pushSys(msg) {
		c.sendCtrl(kernelCtrl{kind: ctrlRun})
	}
}

// tellUser enqueues a user message. It never blocks and reports no
// failure; BasicRef.TryTell checks for a dead cell and routes the
// message to dead letters before calling it.
func (c *cell) tellUser(env Envelope) {
	if c.mbox.pushUser(env) {
		c.sendCtrl(kernelCtrl{kind: ctrlRun})
	}
}

// sendCtrl is a best-effort, non-blocking send to the kernel control
// channel. A closed/full channel means the kernel loop is gone or
// already saturated with a pending Run; in the former case the mailbox
// push above already happened and will be picked up by nobody, which is
// acceptable because a gone actor's queued messages are flushed to dead
// letters on the way out (see kernel.go's terminate path).
func (c *cell) sendCtrl(msg kernelCtrl) {
	defer func() { recover() }() // nolint: errcheck -- send on closed channel
	select {
	case c.kernelCtl <- msg:
	default:
		// Control channel is a small bounded buffer; a full
		// buffer means a Run/Terminate/Restart is already in flight, so
		// dropping a duplicate Run request here is safe: the mailbox's
		// scheduled flag guarantees at most one Run is ever "owed".
	}
}

const controlChanBufferSize = 4

type kernelCtrlKind int

const (
	ctrlRun kernelCtrlKind = iota
	ctrlTerminateLoop
	ctrlReproduce
)

type kernelCtrl struct {
	kind kernelCtrlKind
}

// --- parent/child lifecycle, grounded on original_source/src/actor/actor_cell.rs ---

// terminate begins Running -> Terminating. If there are no children the
// kernel loop can finish immediately; otherwise every child is sent
// Stop and termination completes when the last one reports back via
// handleChildTerminated.
func (c *cell) terminate() (canFinishNow bool) {
	c.isTerminating.Store(true)
	if c.children.len() == 0 {
		return true
	}
	for _, child := range c.children.snapshot() {
		child.c.tellSys(sysCommand{cmd: cmdStop})
	}
	return false
}

// restart begins the Restarting branch: every child is stopped first;
// the actor itself is re-produced only once the last child reports
// termination (handleChildTerminated).
func (c *cell) restart() (canReproduceNow bool) {
	if c.children.len() == 0 {
		return true
	}
	c.isRestarting.Store(true)
	for _, child := range c.children.snapshot() {
		child.c.tellSys(sysCommand{cmd: cmdStop})
	}
	return false
}

// handleChildTerminated removes the child and reports whether this cell
// should now finish terminating or reproduce, per the is_terminating /
// is_restarting flags set by terminate/restart above.
func (c *cell) handleChildTerminated(child *BasicRef) (finish, reproduce bool) {
	c.children.remove(child)
	if c.children.len() > 0 {
		return false, false
	}
	if c.isTerminating.Load() {
		return true, false
	}
	if c.isRestarting.Load() {
		c.isRestarting.Store(false)
		return false, true
	}
	return false, false
}

// handleFailure applies a supervisor strategy decision to a failed child.
func (c *cell) handleFailure(child *BasicRef, strategy Strategy) {
	switch strategy {
	case StrategyStop:
		child.c.tellSys(sysCommand{cmd: cmdStop})
	case StrategyRestart:
		child.c.tellSys(sysCommand{cmd: cmdRestart})
	case StrategyEscalate:
		if c.parent != nil {
			c.parent.c.tellSys(sysFailed{Child: *c.basicRef()})
		}
	}
}
