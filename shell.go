package actor

// shell is the type-erasure boundary between the generic Actor[M]
// contract and the non-generic kernel loop. Exactly one concrete
// implementation exists: *typedShell[M], instantiated once per message
// type at Spawn time.
type shell interface {
	preStart()
	postStart()
	postStop()
	receiveUser(msg interface{}, sender *BasicRef)
	receiveSys(msg SystemMessage, sender *BasicRef)
	strategy() Strategy
}

type typedShell[M any] struct {
	actor Actor[M]
	ctx   *Context[M]
}

func (s *typedShell[M]) preStart()  { s.actor.PreStart(s.ctx) }
func (s *typedShell[M]) postStart() { s.actor.PostStart(s.ctx) }
func (s *typedShell[M]) postStop()  { s.actor.PostStop() }

func (s *typedShell[M]) receiveUser(msg interface{}, sender *BasicRef) {
	m, ok := msg.(M)
	if !ok {
		s.ctx.cell.system.publishDeadLetter(msg, sender, *s.ctx.cell.basicRef())
		return
	}
	s.actor.Receive(s.ctx, m, sender)
}

func (s *typedShell[M]) receiveSys(msg SystemMessage, sender *BasicRef) {
	s.actor.SysReceive(s.ctx, msg, sender)
}

func (s *typedShell[M]) strategy() Strategy { return s.actor.SupervisorStrategy() }
