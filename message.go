package actor

import "github.com/google/uuid"

// ScheduleID is the opaque handle returned by the timer's schedule calls
// and accepted by CancelSchedule. Backed by a random v4 UUID rather than
// a hand-rolled counter or random source.
type ScheduleID uuid.UUID

func newScheduleID() ScheduleID {
	return ScheduleID(uuid.New())
}

func (s ScheduleID) String() string {
	return uuid.UUID(s).String()
}

// Envelope wraps a single user message together with the (optional)
// reference of whoever sent it. It is the payload of every mailbox user
// queue entry.
type Envelope struct {
	Sender *BasicRef
	Msg    interface{}
}

// DeadLetter wraps a message that could not be delivered, published to
// the system's dead-letters channel.
type DeadLetter struct {
	Msg       string
	Sender    *BasicRef
	Recipient BasicRef
}

// EventType tags the kind of lifecycle SystemEvent being published.
type EventType int

const (
	EventActorCreated EventType = iota
	EventActorRestarted
	EventActorTerminated
)

func (t EventType) Topic() string {
	switch t {
	case EventActorCreated:
		return "actor.created"
	case EventActorRestarted:
		return "actor.restarted"
	case EventActorTerminated:
		return "actor.terminated"
	default:
		return "actor.unknown"
	}
}

// SystemEvent is published on the system's events channel whenever an
// actor is created, restarted, or terminated.
type SystemEvent struct {
	Type EventType
	Ref  BasicRef
}

// isChannelMsg lets a SystemEvent pass straight through a Channel's
// declared message type, so a Channel can subscribe to another
// Channel's topic (see Channel.PostStart's auto-prune subscription)
// without the subscriber's own Tell failing its downcast check.
func (SystemEvent) isChannelMsg() {}

// SystemMessage is the sum type carried on the system queue: a small
// closed interface where every concrete system message type below is
// the only implementor, and kernel.go exhaustively switches on them.
type SystemMessage interface {
	isSystemMessage()
}

// sysActorInit drives Constructed -> Starting. Sent to an actor's own
// system queue immediately after creation, and again after a restart's
// last child has terminated.
type sysActorInit struct{}

func (sysActorInit) isSystemMessage() {}

// sysCommand carries an externally- or parent-issued lifecycle command.
type sysCommand struct {
	cmd sysCmdKind
}

func (sysCommand) isSystemMessage() {}

type sysCmdKind int

const (
	cmdStop sysCmdKind = iota
	cmdRestart
)

// sysFailed reports a child's handler panic to its parent.
type sysFailed struct {
	Child BasicRef
}

func (sysFailed) isSystemMessage() {}

// sysChildTerminated notifies a parent that one of its children has
// finished post_stop, driving the ordered-termination and
// restart-after-children-gone bookkeeping in cell.handleChildTerminated.
type sysChildTerminated struct {
	Child BasicRef
}

func (sysChildTerminated) isSystemMessage() {}

// sysIdentify/sysIdentity implement the supplemental identify protocol:
// a sender that only holds a Selection can resolve the concrete BasicRef
// of whichever actor receives the Identify at the far end.
type sysIdentify struct {
	Sender *BasicRef
}

func (sysIdentify) isSystemMessage() {}

type sysIdentity struct {
	Ref BasicRef
}

func (sysIdentity) isSystemMessage() {}

// SysStop and SysRestart are the exported spellings of the lifecycle
// commands, visible to actors that want to inspect sys_recv traffic
// (e.g. for logging) without depending on unexported fields.
var (
	SysStop    SystemMessage = sysCommand{cmd: cmdStop}
	SysRestart SystemMessage = sysCommand{cmd: cmdRestart}
)
