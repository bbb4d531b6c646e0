package actor

import "fmt"

// InvalidNameError is returned by actor_of when a requested name violates
// the reserved alphabet ([a-zA-Z0-9_-]+).
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("actor: invalid name %q", e.Name)
}

// InvalidPathError is returned by Select when a path expression violates
// the selection alphabet.
type InvalidPathError struct {
	Path string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("actor: invalid path %q", e.Path)
}

// AlreadyExistsError is returned by actor_of when the composed path is
// already registered in the system's path registry.
type AlreadyExistsError struct {
	Path string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("actor: path already exists: %q", e.Path)
}

// PanickedError is returned synchronously by actor_of when the producer
// itself panics while constructing the initial actor instance.
type PanickedError struct {
	Name      string
	Recovered interface{}
}

func (e *PanickedError) Error() string {
	return fmt.Sprintf("actor: producer for %q panicked: %v", e.Name, e.Recovered)
}

// SystemError wraps an internal bootstrap failure, e.g. a root guardian
// failing to start.
type SystemError struct {
	Reason string
}

func (e *SystemError) Error() string {
	return fmt.Sprintf("actor: system error: %s", e.Reason)
}

// MsgError carries a message back to the caller when a send could not be
// enqueued because the target actor is gone. The message is also routed
// to dead letters by the caller.
type MsgError struct {
	Msg interface{}
}

func (e *MsgError) Error() string {
	return "actor: message could not be enqueued, recipient is gone"
}

// TryMsgError is returned by TryTell variants when the target reference
// itself was nil/empty, as opposed to a live-but-gone cell.
type TryMsgError struct {
	Msg interface{}
}

func (e *TryMsgError) Error() string {
	return "actor: message could not be sent, reference is empty"
}

// DowncastError is returned when a type-erased send's concrete payload
// does not match the receiving actor's declared message type.
type DowncastError struct {
	Want string
	Got  string
}

func (e *DowncastError) Error() string {
	return fmt.Sprintf("actor: cannot downcast message: want %s, got %s", e.Want, e.Got)
}
