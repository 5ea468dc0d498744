// Package schedule delivers timestamped callbacks in time order against an
// externally driven audio clock.
//
// Firing is coarsened to periodic ticks: every tick advances "now" by at
// least the configured resolution and drains all due callbacks in one pass.
// That bounds timing error by the resolution (chosen far below audible
// note-timing tolerances) and avoids fine-grained timer cancellation.
package schedule

import "container/heap"

// Callback is invoked with the scheduler's current time.
type Callback func(now float64)

type event struct {
	at  float64
	seq uint64 // insertion order, breaks time ties first-in-first-out
	cb  Callback
}

type eventQueue []*event

func (q eventQueue) Len() int { return len(q) }
func (q eventQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}
func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x any) { *q = append(*q, x.(*event)) }
func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return ev
}

// Scheduler executes timestamped callbacks in ascending time order. It is
// single-threaded: Schedule, Tick and Stop must all be called from the host
// loop that owns it.
type Scheduler struct {
	res float64
	now float64
	seq uint64
	q   eventQueue

	stopping bool
	stopped  bool
	cleanup  Callback
}

// New creates a scheduler with the given tick resolution in seconds.
func New(resolution float64) *Scheduler {
	if resolution <= 0 {
		panic("schedule: resolution must be positive")
	}
	return &Scheduler{res: resolution}
}

// Now returns the scheduler's current notion of time.
func (s *Scheduler) Now() float64 { return s.now }

// Pending returns the number of queued events.
func (s *Scheduler) Pending() int { return len(s.q) }

// Schedule runs cb at time t. Times at or before the scheduler's current
// notion of now fire synchronously before Schedule returns; future times are
// queued for a later tick.
func (s *Scheduler) Schedule(t float64, cb Callback) {
	if s.stopped {
		return
	}
	if t <= s.now {
		cb(s.now)
		return
	}
	heap.Push(&s.q, &event{at: t, seq: s.seq, cb: cb})
	s.seq++
}

// Tick advances the clock to max(now+resolution, trueNow) and fires, in
// ascending time order, every pending callback strictly earlier than the new
// now. A callback that schedules a past time fires synchronously within the
// same tick, via Schedule's synchronous rule.
//
// If a stop was armed, the tick drains its due events first, then runs the
// cleanup with the tick's computed time and halts for good.
func (s *Scheduler) Tick(trueNow float64) {
	if s.stopped {
		return
	}
	next := s.now + s.res
	if trueNow > next {
		next = trueNow
	}
	s.now = next

	for len(s.q) > 0 && s.q[0].at < s.now {
		ev := heap.Pop(&s.q).(*event)
		ev.cb(s.now)
	}

	if s.stopping {
		s.stopped = true
		cl := s.cleanup
		s.cleanup = nil
		s.q = nil
		if cl != nil {
			cl(s.now)
		}
	}
}

// Stop arms cleanup to run on the next tick, at that tick's computed time,
// after which the scheduler is halted and no further callback fires. Stopping
// an already stopping or stopped scheduler is a no-op; cleanup runs at most
// once.
func (s *Scheduler) Stop(cleanup Callback) {
	if s.stopped || s.stopping {
		return
	}
	s.stopping = true
	s.cleanup = cleanup
}
