package harness

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hostsched/hostsched/sched"
)

// Harness runs a sched.Policy to completion: repeated barrier-synchronized
// rounds, one goroutine per thread per round, until every thread reports no
// further pending work.
type Harness struct {
	Policy  *sched.Policy
	Threads []sched.ThreadID

	// OnRound, if set, is called after each round completes with the
	// barrier just drained and the round's wall-clock duration. Used by
	// cmd/run.go to report per-round timing stats.
	OnRound func(barrier sched.VirtualTime, dur time.Duration)
}

// Run drives rounds until every thread's NextTime is sched.VirtualTimeMax.
// It never returns an error: a misconfigured Policy (unregistered host,
// time overflow) surfaces as a sched.InvariantViolation panic from the
// worker goroutine that triggered it, propagated out of Run via panic —
// there is no partial-progress state worth returning instead.
func (h *Harness) Run() {
	round := 0
	for barrier := h.nextBarrier(); barrier != sched.VirtualTimeMax; barrier = h.nextBarrier() {
		start := time.Now()
		h.runRound(barrier)
		dur := time.Since(start)

		logrus.Debugf("harness: round %d drained at barrier %d in %s", round, barrier, dur)
		if h.OnRound != nil {
			h.OnRound(barrier, dur)
		}
		round++
	}
	logrus.Debugf("harness: all %d threads idle, stopping after round %d", len(h.Threads), round)
}

func (h *Harness) runRound(barrier sched.VirtualTime) {
	var wg sync.WaitGroup
	var once sync.Once
	var panicked any
	wg.Add(len(h.Threads))
	for _, th := range h.Threads {
		go func(th sched.ThreadID) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					once.Do(func() { panicked = r })
				}
			}()
			w := &worker{policy: h.Policy, thread: th}
			w.DrainRound(barrier)
		}(th)
	}
	wg.Wait()
	if panicked != nil {
		panic(panicked)
	}
}

// nextBarrier is one past the minimum NextTime across every thread, or
// sched.VirtualTimeMax if none has pending work. Policy.Pop only returns
// events strictly before its barrier argument, so the barrier for a round
// that must include the earliest pending event has to sit one tick beyond
// it, not on it.
func (h *Harness) nextBarrier() sched.VirtualTime {
	min := sched.VirtualTimeMax
	for _, th := range h.Threads {
		if t := h.Policy.NextTime(th); t < min {
			min = t
		}
	}
	if min == sched.VirtualTimeMax {
		return sched.VirtualTimeMax
	}
	return min + 1
}
