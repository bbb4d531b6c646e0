package actor

// ChannelMsg is the closed protocol understood by Channel. Messages are
// delivered to topic subscribers via ordinary typed Tell, so subscribers
// can be actors of any message type as long as they accept whatever is
// Published.
type ChannelMsg interface {
	isChannelMsg()
}

// Subscribe adds subscriber to topic's delivery list. Duplicates are
// allowed; delivery semantics are not strengthened by deduplicating.
type Subscribe struct {
	Topic      string
	Subscriber *BasicRef
}

func (Subscribe) isChannelMsg() {}

// Unsubscribe removes one occurrence of subscriber from topic.
type Unsubscribe struct {
	Topic      string
	Subscriber *BasicRef
}

func (Unsubscribe) isChannelMsg() {}

// UnsubscribeAll removes subscriber from every topic it is registered
// on, equivalent to calling Unsubscribe once per topic.
type UnsubscribeAll struct {
	Subscriber *BasicRef
}

func (UnsubscribeAll) isChannelMsg() {}

// Publish delivers Msg to every subscriber on Topic and on the wildcard
// topic "*".
type Publish struct {
	Topic string
	Msg   interface{}
}

func (Publish) isChannelMsg() {}

// WildcardTopic matches any Publish regardless of its topic.
const WildcardTopic = "*"

// Channel is a distinguished actor kind implementing topic-based
// pub/sub. Its state, topic -> subscriber list, is owned exclusively by
// its own Receive handler (single-writer by construction), so no
// locking is needed here.
type Channel struct {
	BaseActor[ChannelMsg]

	topics map[string][]*BasicRef

	// autoPrune marks the events and dead-letters channels, which
	// subscribe themselves to actor.terminated so they can drop
	// references to subscribers that have since died.
	// isEventsChannel is set only on the events channel's own instance,
	// which must never subscribe to itself: sys.eventsRef is not yet
	// assigned while its own PostStart is running (see system.go's New).
	autoPrune       bool
	isEventsChannel bool
}

// NewChannel returns a Producer for an ordinary user-facing pub/sub
// channel, created via Spawn like any other actor.
func NewChannel() Producer[ChannelMsg] {
	return func() Actor[ChannelMsg] {
		return &Channel{topics: make(map[string][]*BasicRef)}
	}
}

func newEventsChannel() Producer[ChannelMsg] {
	return func() Actor[ChannelMsg] {
		return &Channel{topics: make(map[string][]*BasicRef), autoPrune: true, isEventsChannel: true}
	}
}

func newAutoPruningChannel() Producer[ChannelMsg] {
	return func() Actor[ChannelMsg] {
		return &Channel{topics: make(map[string][]*BasicRef), autoPrune: true}
	}
}

func (c *Channel) PostStart(ctx *Context[ChannelMsg]) {
	if !c.autoPrune || c.isEventsChannel {
		return
	}
	ctx.System().SysEvents().Tell(Subscribe{
		Topic:      EventActorTerminated.Topic(),
		Subscriber: ctx.Myself().Basic(),
	}, nil)
}

func (c *Channel) Receive(ctx *Context[ChannelMsg], msg ChannelMsg, sender *BasicRef) {
	switch m := msg.(type) {
	case Subscribe:
		c.topics[m.Topic] = append(c.topics[m.Topic], m.Subscriber)

	case Unsubscribe:
		c.removeOccurrence(m.Topic, m.Subscriber)

	case UnsubscribeAll:
		for topic := range c.topics {
			c.removeOccurrence(topic, m.Subscriber)
		}

	case Publish:
		if c.autoPrune {
			if evt, ok := m.Msg.(SystemEvent); ok && evt.Type == EventActorTerminated {
				c.pruneDead(evt.Ref)
			}
		}
		c.deliver(m)

	case SystemEvent:
		// Reaches here, rather than wrapped in a Publish, when this
		// Channel is itself subscribed on another Channel's topic (its
		// own auto-prune subscription from PostStart): the sender's
		// deliver forwards the raw SystemEvent, not a Publish envelope.
		if c.autoPrune && m.Type == EventActorTerminated {
			c.pruneDead(m.Ref)
		}
	}
}

// pruneDead removes every occurrence of dead from every topic's
// subscriber list.
func (c *Channel) pruneDead(dead BasicRef) {
	for topic := range c.topics {
		c.removeOccurrence(topic, &dead)
	}
}

func (c *Channel) deliver(m Publish) {
	for _, sub := range c.topics[m.Topic] {
		sub.Tell(m.Msg, nil)
	}
	if m.Topic != WildcardTopic {
		for _, sub := range c.topics[WildcardTopic] {
			sub.Tell(m.Msg, nil)
		}
	}
}

func (c *Channel) removeOccurrence(topic string, ref *BasicRef) {
	subs := c.topics[topic]
	for i, s := range subs {
		if s.Equal(ref) {
			c.topics[topic] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}
