package actor

import "testing"

// TestMailboxFIFOWithinSender checks that messages from one sender are
// delivered in send order.
func TestMailboxFIFOWithinSender(t *testing.T) {
	m := newMailbox(0)
	m.setSuspended(false)

	sender := &BasicRef{}
	for i := 0; i < 3; i++ {
		m.pushUser(Envelope{Sender: sender, Msg: i})
	}

	for i := 0; i < 3; i++ {
		env, ok := m.user.pop()
		if !ok {
			t.Fatalf("pop %d: expected ok", i)
		}
		if env.Msg != i {
			t.Fatalf("pop %d: want %d, got %v", i, i, env.Msg)
		}
	}
}

// TestMailboxEnqueueRuleSingleSchedule checks that a burst of pushes
// reports needsRun=true exactly once (only the first push flips
// scheduled), and that once the mailbox is drained and scheduled is
// cleared, rescheduleIfNeeded does not request another Run.
func TestMailboxEnqueueRuleSingleSchedule(t *testing.T) {
	m := newMailbox(0)

	scheduledCount := 0
	for i := 0; i < 10; i++ {
		if m.pushUser(Envelope{Msg: i}) {
			scheduledCount++
		}
	}
	if scheduledCount != 1 {
		t.Fatalf("want exactly 1 push to own scheduling, got %d", scheduledCount)
	}

	// Draining fully and clearing scheduled without remaining work must
	// not request a reschedule.
	for !m.user.empty() {
		m.user.pop()
	}
	m.clearScheduled()
	if m.rescheduleIfNeeded() {
		t.Fatalf("empty mailbox should not need a reschedule")
	}
}

func TestMailboxNeedsRequeueRespectsSuspension(t *testing.T) {
	m := newMailbox(0)
	m.pushUser(Envelope{Msg: "queued"})
	m.clearScheduled()

	// Fresh mailboxes start suspended; a suspended mailbox with only user
	// work pending must not request a reschedule.
	if m.rescheduleIfNeeded() {
		t.Fatalf("suspended mailbox should not reschedule for user-only work")
	}

	m.setSuspended(false)
	if !m.rescheduleIfNeeded() {
		t.Fatalf("unsuspended mailbox with pending user work should reschedule")
	}
}

func TestMailboxSysWorkAlwaysReschedules(t *testing.T) {
	m := newMailbox(0)
	m.pushSys(sysActorInit{})
	m.clearScheduled()

	if !m.rescheduleIfNeeded() {
		t.Fatalf("pending system work should reschedule even while suspended")
	}
}
