package actor

import "reflect"

// BasicRef is the type-erased actor handle: cheap to clone (a BasicRef
// is just a pointer to the shared cell) and compares equal by URI path.
type BasicRef struct {
	c *cell
}

// URI returns the referenced actor's identity.
func (r *BasicRef) URI() URI { return r.c.uri }

// Path returns the referenced actor's path, the basis of BasicRef equality.
func (r *BasicRef) Path() string { return r.c.uri.Path }

// Equal reports whether two references name the same actor path.
func (r *BasicRef) Equal(other *BasicRef) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Path() == other.Path()
}

// Tell is the non-failing convenience send: a failed enqueue is routed
// to dead letters automatically and the error is swallowed.
func (r *BasicRef) Tell(msg interface{}, sender *BasicRef) {
	_ = r.TryTell(msg, sender)
}

// TryTell is the failing send variant. It returns a *DowncastError
// synchronously if msg's concrete type does not match the actor's
// declared message type, a *TryMsgError if r is a nil/empty reference, or
// a *MsgError if the push could not be completed because the actor is
// already gone (push still succeeds technically since queues are
// unbounded; MsgError in this implementation is reserved for the terminal
// case where the cell itself has been torn down — see cell.isDead).
func (r *BasicRef) TryTell(msg interface{}, sender *BasicRef) error {
	if r == nil || r.c == nil {
		return &TryMsgError{Msg: msg}
	}
	if r.c.msgType != nil {
		mt := reflect.TypeOf(msg)
		if mt == nil || !mt.AssignableTo(r.c.msgType) {
			return &DowncastError{Want: r.c.msgType.String(), Got: typeName(msg)}
		}
	}
	if r.c.isDead() {
		r.c.system.publishDeadLetter(msg, sender, *r)
		return &MsgError{Msg: msg}
	}
	r.c.tellUser(Envelope{Sender: sender, Msg: msg})
	return nil
}

func typeName(v interface{}) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}

// ActorRef is the typed, statically message-safe handle. It shares the
// same underlying cell as its Basic() counterpart.
type ActorRef[M any] struct {
	c *cell
}

// IsZero reports whether this ref was never assigned a cell (the zero
// value returned alongside an error from Spawn).
func (r ActorRef[M]) IsZero() bool { return r.c == nil }

func (r ActorRef[M]) URI() URI { return r.c.uri }

func (r ActorRef[M]) Path() string { return r.c.uri.Path }

// Basic converts a typed ref to its type-erased counterpart.
func (r ActorRef[M]) Basic() *BasicRef { return &BasicRef{c: r.c} }

// Tell sends a statically-typed message. Enqueue failure is routed to
// dead letters exactly like BasicRef.Tell.
func (r ActorRef[M]) Tell(msg M, sender *BasicRef) {
	r.Basic().Tell(msg, sender)
}

// Equal reports whether two typed refs name the same actor path.
func (r ActorRef[M]) Equal(other ActorRef[M]) bool {
	if r.c == nil || other.c == nil {
		return r.c == other.c
	}
	return r.Path() == other.Path()
}

// isDead reports whether this cell has completed termination and been
// unregistered from the path registry; used to route further sends
// straight to dead letters.
func (c *cell) isDead() bool {
	return !c.system.paths.contains(c.uri.Path)
}
