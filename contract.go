package actor

import "time"

// Actor is the application contract every actor implements. For a
// single actor, PreStart/PostStart/PostStop/Receive/SysReceive calls are
// totally ordered and never overlap; different actors may run in
// parallel on the shared executor.
type Actor[M any] interface {
	// PreStart runs once, before the first message. A panic here is NOT
	// supervised: the actor is aborted outright.
	PreStart(ctx *Context[M])
	// PostStart runs once, immediately after PreStart. A panic here IS
	// supervised, following the normal Failed(child) escalation path.
	PostStart(ctx *Context[M])
	// PostStop runs once, after every child has terminated and the
	// mailbox has been flushed to dead letters.
	PostStop()
	// Receive handles one user message.
	Receive(ctx *Context[M], msg M, sender *BasicRef)
	// SysReceive observes one system message after the kernel has acted
	// on it: every message taken from the system queue (init, stop and
	// restart commands, child failure and termination notices, identify
	// requests and replies) is forwarded here. Lifecycle events from the
	// events channel arrive through Receive, not here.
	SysReceive(ctx *Context[M], msg SystemMessage, sender *BasicRef)
	// SupervisorStrategy is pure and is called fresh on every child
	// failure; it must not block or mutate actor state.
	SupervisorStrategy() Strategy
}

// BaseActor supplies no-op defaults for every hook, Receive included
// (its default drops the message). Embed it and override only what you
// need.
type BaseActor[M any] struct{}

func (BaseActor[M]) Receive(*Context[M], M, *BasicRef)           {}
func (BaseActor[M]) PreStart(*Context[M])                        {}
func (BaseActor[M]) PostStart(*Context[M])                       {}
func (BaseActor[M]) PostStop()                                   {}
func (BaseActor[M]) SysReceive(*Context[M], SystemMessage, *BasicRef) {}
func (BaseActor[M]) SupervisorStrategy() Strategy                { return StrategyRestart }

// Producer constructs a fresh Actor instance. It is invoked once when
// the actor is first created and again, synchronously inside the kernel
// loop, every time the actor is restarted.
type Producer[M any] func() Actor[M]

// Context is the per-actor handle passed to every hook. It exposes the
// actor's own reference, its parent, the owning System, and the
// scheduling/selection/spawn surface.
//
// Context is a concrete generic struct rather than an interface because
// Go methods cannot introduce their own type parameters: Spawn is a
// free function taking a Context as its Parenter, not a generic method
// on Context itself.
type Context[M any] struct {
	cell *cell
	self ActorRef[M]
}

// cellRef implements Parenter.
func (c *Context[M]) cellRef() *cell { return c.cell }

// Myself returns this actor's own typed reference.
func (c *Context[M]) Myself() ActorRef[M] { return c.self }

// Parent returns the parent actor's reference. Only the root guardian
// "/" has no parent (nil); /user, /system and /temp have "/" as parent,
// and ordinary actors always have one.
func (c *Context[M]) Parent() *BasicRef { return c.cell.parent }

// System returns the owning ActorSystem.
func (c *Context[M]) System() *System { return c.cell.system }

// Stop requests the termination of any actor, typically a child.
func (c *Context[M]) Stop(ref *BasicRef) {
	c.cell.system.Stop(ref)
}

// Select resolves a path expression anchored at this actor; see selection.go.
func (c *Context[M]) Select(path string) (*Selection, error) {
	return newSelection(c.cell.basicRef(), path)
}

// ScheduleOnce delivers msg to recipient once, after d elapses.
func (c *Context[M]) ScheduleOnce(d time.Duration, recipient *BasicRef, sender *BasicRef, msg interface{}) (ScheduleID, error) {
	return c.cell.system.ScheduleOnce(d, recipient, sender, msg)
}

// ScheduleRepeat delivers msg to recipient every interval, starting
// after initial elapses.
func (c *Context[M]) ScheduleRepeat(initial, interval time.Duration, recipient *BasicRef, sender *BasicRef, msg interface{}) (ScheduleID, error) {
	return c.cell.system.ScheduleRepeat(initial, interval, recipient, sender, msg)
}

// CancelSchedule cancels a pending once/repeat job.
func (c *Context[M]) CancelSchedule(id ScheduleID) {
	c.cell.system.CancelSchedule(id)
}

// Parenter is implemented by anything Spawn/SpawnTmp can create a child
// actor under: *System (children land under /user) and *Context[M] for
// any M (children land under the current actor).
type Parenter interface {
	cellRef() *cell
}
