package harness

import (
	"github.com/sirupsen/logrus"

	"github.com/hostsched/hostsched/sched"
)

// worker drains one thread's assigned hosts for a single round and
// implements sched.Executor so events it runs can push further events
// under the correct source host and barrier.
type worker struct {
	policy  *sched.Policy
	thread  sched.ThreadID
	barrier sched.VirtualTime
	host    sched.HostID // host of the event currently executing
}

// Push implements sched.Executor. It is only valid while w is executing an
// event on behalf of its host — see DrainRound.
func (w *worker) Push(ev sched.Event, dst sched.HostID) sched.VirtualTime {
	return w.policy.Push(ev, w.host, dst, w.barrier)
}

// DrainRound pops and executes every event available to w.thread below
// barrier. It recognizes *sched.HostedEvent (executed with w as the
// Executor, under the event's own host) and *sched.FuncEvent (run
// directly); any other concrete sched.Event is a programmer error.
func (w *worker) DrainRound(barrier sched.VirtualTime) {
	w.barrier = barrier
	for {
		ev, ok := w.policy.Pop(w.thread, barrier)
		if !ok {
			return
		}
		switch e := ev.(type) {
		case *sched.HostedEvent:
			w.host = e.Host()
			e.Execute(w)
		case *sched.FuncEvent:
			if e.Run != nil {
				e.Run()
			}
		default:
			logrus.Warnf("harness: thread %s popped an event of unrecognized type %T, skipping", w.thread, ev)
		}
	}
}
