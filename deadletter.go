package actor

// The dead-letters channel is an ordinary Channel (channel.go) that the
// system publishes every undeliverable message onto under the reserved
// "dead.letter" topic. Like the events channel, it auto-subscribes to
// actor.terminated so stale subscriber references get pruned.
const deadLetterTopic = "dead.letter"

// SubscribeDeadLetters registers subscriber to receive every DeadLetter
// published on sys.DeadLetters().
func (s *System) SubscribeDeadLetters(subscriber *BasicRef) {
	s.DeadLetters().Tell(Subscribe{Topic: deadLetterTopic, Subscriber: subscriber}, nil)
}

// publishDeadLetter is the single chokepoint every undeliverable-message
// path in this module routes through: ref.go's TryTell against a dead
// cell, kernel.go's flushToDeadLetters on teardown, and selection.go's
// unresolved-path fallback.
func (s *System) publishDeadLetter(msg interface{}, sender *BasicRef, recipient BasicRef) {
	dl := DeadLetter{Msg: typeName(msg), Sender: sender, Recipient: recipient}
	s.deadLettersRef.Tell(Publish{Topic: deadLetterTopic, Msg: dl}, nil)
}
