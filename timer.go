package actor

import "time"

type timerJobKind int

const (
	jobSchedule timerJobKind = iota
	jobCancel
	jobShutdown
)

// timerJob is the single message type accepted on the scheduler's
// control channel, covering the Once, Repeat, Cancel and Shutdown job
// kinds.
type timerJob struct {
	kind timerJobKind

	id        ScheduleID
	recipient *BasicRef
	sender    *BasicRef
	msg       interface{}
	initial   time.Duration
	interval  time.Duration // zero means a one-shot job

	done chan struct{} // closed once Shutdown has drained the worker
}

type pendingJob struct {
	recipient *BasicRef
	sender    *BasicRef
	msg       interface{}
	fireAt    time.Time
	interval  time.Duration
}

// scheduler is the single background timer worker: every Once/Repeat/
// Cancel call is funneled through one goroutine so the jobs map never
// needs its own lock.
type scheduler struct {
	ctl  chan timerJob
	jobs map[ScheduleID]*pendingJob

	// tickFloor is the minimum parking interval, backing
	// scheduler.frequency_millis: a busy system with many near-simultaneous
	// timers coalesces wakeups instead of parking anew for each one.
	tickFloor time.Duration
}

func newScheduler(tickFloor time.Duration) *scheduler {
	if tickFloor <= 0 {
		tickFloor = time.Millisecond
	}
	s := &scheduler{
		ctl:       make(chan timerJob, 64),
		jobs:      make(map[ScheduleID]*pendingJob),
		tickFloor: tickFloor,
	}
	go s.run()
	return s
}

func (s *scheduler) run() {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		resetTimer(timer, s.nextWait())

		select {
		case job := <-s.ctl:
			switch job.kind {
			case jobSchedule:
				s.jobs[job.id] = &pendingJob{
					recipient: job.recipient,
					sender:    job.sender,
					msg:       job.msg,
					fireAt:    time.Now().Add(job.initial),
					interval:  job.interval,
				}
			case jobCancel:
				delete(s.jobs, job.id)
			case jobShutdown:
				close(job.done)
				return
			}

		case <-timer.C:
			s.fireDue()
		}
	}
}

// nextWait returns how long the worker should park: the time until the
// earliest pending job fires, floored at tickFloor so many jobs due in
// quick succession coalesce into one wakeup, or one second when no job is
// pending. The wait has no upper cap otherwise; new jobs wake the worker
// through its control channel.
func (s *scheduler) nextWait() time.Duration {
	if len(s.jobs) == 0 {
		return time.Second
	}
	now := time.Now()
	var earliest time.Duration = -1
	for _, j := range s.jobs {
		d := j.fireAt.Sub(now)
		if earliest == -1 || d < earliest {
			earliest = d
		}
	}
	if earliest < s.tickFloor {
		earliest = s.tickFloor
	}
	return earliest
}

func (s *scheduler) fireDue() {
	now := time.Now()
	for id, j := range s.jobs {
		if j.fireAt.After(now) {
			continue
		}
		j.recipient.Tell(j.msg, j.sender)
		if j.interval > 0 {
			j.fireAt = now.Add(j.interval)
		} else {
			delete(s.jobs, id)
		}
	}
}

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

func (s *scheduler) schedule(initial, interval time.Duration, recipient, sender *BasicRef, msg interface{}) ScheduleID {
	id := newScheduleID()
	s.ctl <- timerJob{
		kind:      jobSchedule,
		id:        id,
		recipient: recipient,
		sender:    sender,
		msg:       msg,
		initial:   initial,
		interval:  interval,
	}
	return id
}

func (s *scheduler) cancel(id ScheduleID) {
	s.ctl <- timerJob{kind: jobCancel, id: id}
}

func (s *scheduler) shutdown() {
	done := make(chan struct{})
	s.ctl <- timerJob{kind: jobShutdown, done: done}
	<-done
}
