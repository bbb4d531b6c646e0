package actor

// The events channel is an ordinary Channel (see channel.go) that the
// System publishes SystemEvent values onto under three reserved topics:
// actor.created, actor.restarted, actor.terminated (EventType.Topic()).
// This file only adds the small convenience surface actors use to
// listen in.

// SubscribeEvents registers subscriber for one lifecycle event type on
// sys.SysEvents(). Use EventType's Topic() directly with Subscribe if a
// raw Channel reference is preferred.
func (s *System) SubscribeEvents(eventType EventType, subscriber *BasicRef) {
	s.SysEvents().Tell(Subscribe{Topic: eventType.Topic(), Subscriber: subscriber}, nil)
}

// UnsubscribeEvents is the inverse of SubscribeEvents.
func (s *System) UnsubscribeEvents(eventType EventType, subscriber *BasicRef) {
	s.SysEvents().Tell(Unsubscribe{Topic: eventType.Topic(), Subscriber: subscriber}, nil)
}

// publishEvent is called by spawn.go and kernel.go at every lifecycle
// transition. It is a plain Tell onto the events channel actor, not a
// system-queue message: subscribers are regular actors with a Receive
// handler for SystemEvent.
func (s *System) publishEvent(evt SystemEvent) {
	s.eventsRef.Tell(Publish{Topic: evt.Type.Topic(), Msg: evt}, nil)
}
