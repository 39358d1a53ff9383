// Package sequence runs multi-stage timed sequences against a virtual clock.
//
// A sequence is an ordered list of steps, each waiting a relative delay before
// running its action. Nothing happens in the background: the owner advances
// the clock explicitly with Advance, and due steps run synchronously on the
// caller's goroutine in due-time order. Steps that share a due time run in
// the order they were scheduled.
package sequence

import (
	"time"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/heap"
	"go.uber.org/zap"
)

// Step is one stage of a sequence.
type Step struct {
	// Delay is measured from the previous stage (or from Start for the first).
	Delay time.Duration
	// Do runs when the stage comes due. It may start or cancel sequences.
	Do func()
}

// After is shorthand for a Step.
func After(d time.Duration, do func()) Step {
	return Step{Delay: d, Do: do}
}

type sequence struct {
	id        uuid.UUID
	tag       string
	steps     []Step
	stage     int
	due       time.Duration
	order     uint64
	cancelled bool
}

// Runner owns the virtual clock and all pending sequences.
//
// Runner is not safe for concurrent use.
type Runner struct {
	now    time.Duration
	queue  *heap.Heap[*sequence]
	active map[uuid.UUID]*sequence
	order  uint64
	logger *zap.Logger
}

// NewRunner creates a Runner with its clock at zero.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a Runner with no pending sequences.
func NewRunner(logger *zap.Logger) *Runner {
	return &Runner{
		queue: heap.New[*sequence](func(a, b *sequence) bool {
			if a.due != b.due {
				return a.due < b.due
			}
			return a.order < b.order
		}),
		active: make(map[uuid.UUID]*sequence),
		logger: logger,
	}
}

// Now returns the virtual time elapsed since the Runner was created.
func (r *Runner) Now() time.Duration { return r.now }

// Start schedules steps under tag. The first step comes due after its own
// delay from the current virtual time.
//
// Precondition: steps must be non-empty; negative delays are treated as zero.
// Postcondition: Returns the sequence id.
func (r *Runner) Start(tag string, steps ...Step) uuid.UUID {
	s := &sequence{
		id:    uuid.New(),
		tag:   tag,
		steps: steps,
	}
	if len(steps) == 0 {
		return s.id
	}
	r.active[s.id] = s
	r.schedule(s)
	r.logger.Debug("sequence started",
		zap.String("tag", tag),
		zap.String("sequence_id", s.id.String()),
		zap.Int("stages", len(steps)),
		zap.Duration("at", r.now),
	)
	return s.id
}

func (r *Runner) schedule(s *sequence) {
	d := s.steps[s.stage].Delay
	if d < 0 {
		d = 0
	}
	s.due = r.now + d
	s.order = r.order
	r.order++
	r.queue.Push(s)
}

// Advance moves the clock forward by dt and runs every stage that comes due,
// including stages scheduled by steps that run during this call.
//
// Postcondition: Now() has increased by dt; returns the number of steps run.
func (r *Runner) Advance(dt time.Duration) int {
	if dt < 0 {
		dt = 0
	}
	target := r.now + dt
	fired := 0
	for {
		next, ok := r.queue.Peek()
		if !ok || next.due > target {
			break
		}
		r.queue.Pop()
		if next.cancelled {
			continue
		}
		r.now = next.due
		step := next.steps[next.stage]
		next.stage++
		if next.stage < len(next.steps) {
			r.schedule(next)
		} else {
			delete(r.active, next.id)
		}
		if step.Do != nil {
			step.Do()
		}
		fired++
	}
	r.now = target
	return fired
}

// Cancel stops every pending sequence carrying tag.
//
// Postcondition: Returns the number of sequences cancelled.
func (r *Runner) Cancel(tag string) int {
	n := 0
	for id, s := range r.active {
		if s.tag != tag {
			continue
		}
		s.cancelled = true
		delete(r.active, id)
		n++
	}
	if n > 0 {
		r.logger.Debug("sequence cancelled", zap.String("tag", tag), zap.Int("count", n))
	}
	return n
}

// CancelAll stops every pending sequence.
func (r *Runner) CancelAll() {
	for id, s := range r.active {
		s.cancelled = true
		delete(r.active, id)
	}
	for r.queue.Size() > 0 {
		r.queue.Pop()
	}
}

// Pending returns the number of sequences that still have stages to run.
func (r *Runner) Pending() int { return len(r.active) }

// Active reports whether a sequence carrying tag is pending.
func (r *Runner) Active(tag string) bool {
	for _, s := range r.active {
		if s.tag == tag {
			return true
		}
	}
	return false
}
