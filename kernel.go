package actor

// runKernel is the per-actor consumer task: the single goroutine that
// drains one cell's mailbox. It owns the `shell` slot (nil while the
// actor is dead awaiting a successful restart) and is the only goroutine
// ever allowed to touch it,
// which is what makes an actor's own handler calls totally ordered.
func runKernel(c *cell, initial shell) {
	st := initial
	defer close(c.terminated)

	for ctrl := range c.kernelCtl {
		switch ctrl.kind {
		case ctrlTerminateLoop:
			return
		case ctrlReproduce:
			st = reproduce(c)
		case ctrlRun:
			var finished bool
			st, finished = runOnce(c, st)
			if finished {
				return
			}
		}
	}
}

// runOnce implements the Run algorithm: drain the system
// queue fully first, then (if the actor is alive and not suspended) drain
// up to msgProcessLimit user messages, interleaving a full system drain
// between each one. It returns the (possibly updated, possibly now nil)
// shell and whether the kernel loop should now exit.
func runOnce(c *cell, st shell) (shell, bool) {
	st, finished := drainSys(c, st)
	if finished {
		return st, true
	}

	if st != nil && !c.mbox.isSuspended() {
		st = processUserBatch(c, st)
	}

	c.mbox.clearScheduled()
	if c.mbox.rescheduleIfNeeded() {
		c.sendCtrl(kernelCtrl{kind: ctrlRun})
	}
	return st, false
}

// drainSys stages every currently-queued system message into a local
// slice before processing, so a restart or terminate triggered mid-drain
// can't see messages enqueued by its own side effects and loop forever.
func drainSys(c *cell, st shell) (shell, bool) {
	var staged []SystemMessage
	for {
		msg, ok := c.mbox.sys.pop()
		if !ok {
			break
		}
		staged = append(staged, msg)
	}

	for _, msg := range staged {
		var sender *BasicRef
		switch m := msg.(type) {
		case sysActorInit:
			st = handleActorInit(c, st)

		case sysCommand:
			switch m.cmd {
			case cmdStop:
				if c.terminate() {
					finishTermination(c, st)
					return nil, true
				}
			case cmdRestart:
				if c.restart() {
					st = reproduce(c)
				}
			}

		case sysFailed:
			sender = &m.Child
			strategy := StrategyRestart
			if st != nil {
				strategy = st.strategy()
			}
			c.handleFailure(&m.Child, strategy)

		case sysChildTerminated:
			sender = &m.Child
			finish, shouldReproduce := c.handleChildTerminated(&m.Child)
			if finish {
				finishTermination(c, st)
				return nil, true
			}
			if shouldReproduce {
				st = reproduce(c)
			}

		case sysIdentify:
			sender = m.Sender
			if m.Sender != nil {
				m.Sender.c.tellSys(sysIdentity{Ref: *c.basicRef()})
			}
		}

		if st != nil {
			withSentinel(c, &st, func() { st.receiveSys(msg, sender) })
		}
	}

	return st, false
}

// processUserBatch drains up to msg_process_limit user messages,
// interleaving a full system-queue drain after each one so a failure or
// stop request raised mid-batch is observed promptly.
func processUserBatch(c *cell, st shell) shell {
	limit := c.mbox.msgProcessLimit
	for i := uint32(0); i < limit; i++ {
		if c.mbox.isSuspended() || st == nil {
			return st
		}
		env, ok := c.mbox.user.pop()
		if !ok {
			break
		}

		withSentinel(c, &st, func() { st.receiveUser(env.Msg, env.Sender) })
		if st == nil {
			return nil
		}

		var finished bool
		st, finished = drainSys(c, st)
		if finished {
			return nil
		}
	}
	return st
}

// handleActorInit runs PreStart (unsupervised) and, if it returns
// normally, PostStart (supervised), then clears suspension so user
// messages start flowing.
func handleActorInit(c *cell, st shell) shell {
	if st == nil {
		return nil
	}

	// PreStart panics are explicitly not supervised: the actor is
	// aborted, not restarted, and no Failed is raised.
	aborted := func() (aborted bool) {
		defer func() {
			if r := recover(); r != nil {
				c.system.log().Errorw("actor aborted: panic in pre_start",
					"path", c.path(), "panic", r)
				aborted = true
			}
		}()
		st.preStart()
		return false
	}()
	if aborted {
		return nil
	}

	withSentinel(c, &st, func() { st.postStart() })
	if st != nil {
		c.mbox.setSuspended(false)
	}
	return st
}

// reproduce constructs a fresh actor instance via the cell's producer.
// A panic surfaces as a logged warning and leaves the actor dead (nil
// shell, mailbox suspended) rather than propagating.
func reproduce(c *cell) shell {
	sh, err := c.newShell()
	if err != nil {
		c.system.log().Warnw("actor restart failed: producer panicked",
			"path", c.path(), "err", err)
		c.mbox.setSuspended(true)
		return nil
	}
	c.system.publishEvent(SystemEvent{Type: EventActorRestarted, Ref: *c.basicRef()})
	c.tellSys(sysActorInit{})
	return sh
}

// finishTermination flushes any remaining user messages to dead letters,
// runs PostStop, unregisters the path, publishes ActorTerminated, and
// notifies the parent so ordered subtree termination can proceed.
func finishTermination(c *cell, st shell) {
	flushToDeadLetters(c)
	if st != nil {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.system.log().Errorw("panic in post_stop",
						"path", c.path(), "panic", r)
				}
			}()
			st.postStop()
		}()
	}

	c.system.paths.remove(c.path())
	c.system.publishEvent(SystemEvent{Type: EventActorTerminated, Ref: *c.basicRef()})

	if c.parent != nil {
		c.parent.c.tellSys(sysChildTerminated{Child: *c.basicRef()})
	}
}

func flushToDeadLetters(c *cell) {
	for {
		env, ok := c.mbox.user.pop()
		if !ok {
			return
		}
		c.system.publishDeadLetter(env.Msg, env.Sender, *c.basicRef())
	}
}

// withSentinel wraps a single handler invocation with the panic-recovery
// sentinel: a handler panic suspends the mailbox, sets *st to nil
// (holding the dead actor as absent until a successful restart) and
// reports Failed(self) to the parent. The scheduled flag is left to
// runOnce, which clears it when the run ends.
func withSentinel(c *cell, st *shell, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.system.log().Warnw("actor handler panicked",
				"path", c.path(), "panic", r)
			c.mbox.setSuspended(true)
			*st = nil
			if c.parent != nil {
				c.parent.c.tellSys(sysFailed{Child: *c.basicRef()})
			}
		}
	}()
	fn()
}
