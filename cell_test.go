package actor

import "testing"

func newTestCell(name string, parent *BasicRef) *cell {
	c := &cell{
		uri:        URI{Name: name, Path: "/" + name},
		parent:     parent,
		children:   newChildrenMap(),
		mbox:       newMailbox(0),
		kernelCtl:  make(chan kernelCtrl, controlChanBufferSize),
		terminated: make(chan struct{}),
	}
	return c
}

func popSysCmd(t *testing.T, c *cell) sysCmdKind {
	t.Helper()
	msg, ok := c.mbox.sys.pop()
	if !ok {
		t.Fatalf("%s: expected a queued system message", c.uri.Name)
	}
	cmd, ok := msg.(sysCommand)
	if !ok {
		t.Fatalf("%s: expected sysCommand, got %#v", c.uri.Name, msg)
	}
	return cmd.cmd
}

// TestCellHandleFailureStrategies checks that restart/stop act on the
// failed child while escalate reports the handling parent itself to the
// grandparent.
func TestCellHandleFailureStrategies(t *testing.T) {
	grandparent := newTestCell("root", nil)
	parent := newTestCell("parent", grandparent.basicRef())
	child := newTestCell("child", parent.basicRef())

	parent.handleFailure(child.basicRef(), StrategyStop)
	if got := popSysCmd(t, child); got != cmdStop {
		t.Fatalf("want cmdStop, got %v", got)
	}

	parent.handleFailure(child.basicRef(), StrategyRestart)
	if got := popSysCmd(t, child); got != cmdRestart {
		t.Fatalf("want cmdRestart, got %v", got)
	}

	parent.handleFailure(child.basicRef(), StrategyEscalate)
	msg, ok := grandparent.mbox.sys.pop()
	if !ok {
		t.Fatalf("expected escalation to reach grandparent")
	}
	failed, ok := msg.(sysFailed)
	if !ok {
		t.Fatalf("want sysFailed, got %#v", msg)
	}
	if failed.Child.Path() != parent.path() {
		t.Fatalf("escalate should report the parent itself failed, got %s", failed.Child.Path())
	}
}

// TestCellTerminateWaitsForChildren covers the ordered subtree
// termination property: terminate() does not finish until every child
// has reported back via handleChildTerminated.
func TestCellTerminateWaitsForChildren(t *testing.T) {
	parent := newTestCell("parent", nil)
	child1 := newTestCell("child1", parent.basicRef())
	child2 := newTestCell("child2", parent.basicRef())
	parent.children.add("child1", child1.basicRef())
	parent.children.add("child2", child2.basicRef())

	if parent.terminate() {
		t.Fatalf("terminate with live children must not finish immediately")
	}

	for _, c := range []*cell{child1, child2} {
		if got := popSysCmd(t, c); got != cmdStop {
			t.Fatalf("%s: want cmdStop, got %v", c.uri.Name, got)
		}
	}

	finish, reproduce := parent.handleChildTerminated(child1.basicRef())
	if finish || reproduce {
		t.Fatalf("should not finish/reproduce with one child remaining")
	}

	finish, reproduce = parent.handleChildTerminated(child2.basicRef())
	if !finish {
		t.Fatalf("expected finish once the last child terminates")
	}
	if reproduce {
		t.Fatalf("terminate path must not reproduce")
	}
}

func TestCellRestartWaitsForChildrenThenReproduces(t *testing.T) {
	parent := newTestCell("parent", nil)
	child := newTestCell("child", parent.basicRef())
	parent.children.add("child", child.basicRef())

	if parent.restart() {
		t.Fatalf("restart with live children must not reproduce immediately")
	}
	if got := popSysCmd(t, child); got != cmdStop {
		t.Fatalf("want cmdStop, got %v", got)
	}

	finish, reproduce := parent.handleChildTerminated(child.basicRef())
	if finish {
		t.Fatalf("restart path must not finish")
	}
	if !reproduce {
		t.Fatalf("expected reproduce once the last child terminates")
	}
}

func TestCellRestartWithNoChildrenReproducesImmediately(t *testing.T) {
	parent := newTestCell("parent", nil)
	if !parent.restart() {
		t.Fatalf("restart with no children should report canReproduceNow=true")
	}
}

func TestChildrenMapAddRemoveSnapshot(t *testing.T) {
	m := newChildrenMap()
	a := &BasicRef{c: newTestCell("a", nil)}
	b := &BasicRef{c: newTestCell("b", nil)}
	m.add("a", a)
	m.add("b", b)

	if m.len() != 2 {
		t.Fatalf("want len 2, got %d", m.len())
	}
	if _, ok := m.get("a"); !ok {
		t.Fatalf("expected to find child a")
	}

	m.remove(a)
	if m.len() != 1 {
		t.Fatalf("want len 1 after remove, got %d", m.len())
	}
	if _, ok := m.get("a"); ok {
		t.Fatalf("child a should be gone")
	}
}
