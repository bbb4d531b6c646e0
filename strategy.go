package actor

// Strategy is the decision a parent makes when it observes a child
// actor's handler panic. It is returned by Actor.SupervisorStrategy,
// which is pure and consulted fresh on every failure.
type Strategy int

const (
	// StrategyRestart stops the failed child's children, then re-produces
	// the child's actor instance and resumes delivery.
	StrategyRestart Strategy = iota
	// StrategyStop tears the failed child's subtree down permanently.
	StrategyStop
	// StrategyEscalate forwards the failure to the grandparent, as if
	// this parent had panicked itself.
	StrategyEscalate
)

func (s Strategy) String() string {
	switch s {
	case StrategyRestart:
		return "restart"
	case StrategyStop:
		return "stop"
	case StrategyEscalate:
		return "escalate"
	default:
		return "unknown"
	}
}
