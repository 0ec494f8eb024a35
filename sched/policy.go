package sched

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Policy is the top-level registry owning every host's EventQueue and
// every thread's ThreadState. It exposes the full add/push/pop/lookup
// surface the simulation loop drives a worker thread with. The zero value
// is not usable — construct with New.
//
// hosts and threads are mutated only during setup (AddHost) and teardown
// (Close); Policy holds no internal lock over either map — callers must
// fence AddHost-based setup before any worker goroutine starts calling
// Push/Pop.
type Policy struct {
	hosts   map[HostID]*EventQueue
	threads map[ThreadID]*ThreadState
}

// New creates an empty Policy.
func New() *Policy {
	return &Policy{
		hosts:   make(map[HostID]*EventQueue),
		threads: make(map[ThreadID]*ThreadState),
	}
}

// AddHost assigns host to thread, creating the host's EventQueue and the
// thread's ThreadState on first reference. Must be called during
// simulation setup, serialized with respect to all other Policy
// operations. Calling AddHost twice with the same host is undefined
// behavior — the policy is write-once per host.
func (p *Policy) AddHost(host HostID, thread ThreadID) {
	if _, ok := p.hosts[host]; !ok {
		p.hosts[host] = NewEventQueue()
	}
	ts, ok := p.threads[thread]
	if !ok {
		ts = newThreadState()
		p.threads[thread] = ts
	}
	ts.unprocessed.PushBack(host)
}

// Push delivers event into dst's queue, applying the causality adjustment:
// if src and dst differ and event's time precedes barrier, the event's
// time is raised to barrier before delivery. This guards against a worker
// draining src fully (to below barrier) and then delivering into dst,
// whose owning thread may already have advanced past event's original
// time — see the package doc (doc.go) and DESIGN.md for why this check
// applies whenever src != dst, not only across threads.
//
// Push panics with InvariantViolation if dst was never registered via
// AddHost — there is no recoverable caller action for a misconfigured
// destination.
func (p *Policy) Push(event Event, src, dst HostID, barrier VirtualTime) VirtualTime {
	if src != dst && event.Timestamp() < barrier {
		logrus.Debugf("causality adjustment: %s->%s event time %d raised to barrier %d",
			src, dst, event.Timestamp(), barrier)
		event.SetTime(barrier)
	}
	q, ok := p.hosts[dst]
	if !ok {
		panic(InvariantViolation{Reason: fmt.Sprintf("push to unregistered host %q", dst)})
	}
	q.Push(event)
	return event.Timestamp()
}

// Pop is the worker's drain operation for thread. It returns the next
// event belonging to one of thread's assigned hosts whose time is
// strictly before barrier, or (nil, false) once every assigned host has
// been drained below barrier. A thread with no assigned hosts also
// returns (nil, false) — that is a normal idle state, not an error.
//
// When barrier exceeds the thread's previously observed barrier, Pop
// first runs the round transition (see ThreadState.transition): hosts
// parked in processed from the prior round become eligible again. Within
// a round, Pop drains one host to exhaustion before moving to the next —
// the host stays at the front of unprocessed across repeated Pop calls
// until its queue has no more events below barrier.
func (p *Policy) Pop(thread ThreadID, barrier VirtualTime) (Event, bool) {
	ts, ok := p.threads[thread]
	if !ok {
		return nil, false
	}
	ts.transition(barrier)

	barrierEmu := EmuAddSim(SimulationStart, barrier)
	for !ts.unprocessed.IsEmpty() {
		host, _ := ts.unprocessed.Front()
		q := p.hosts[host]
		t := q.PeekTime()
		if t != EmuTimeInvalid && t < barrierEmu {
			event, _ := q.Pop()
			return event, true
		}
		h, _ := ts.unprocessed.PopFront()
		ts.processed.PushBack(h)
	}
	return nil, false
}

// AssignedHosts returns every host ever added to thread, as a freshly
// allocated slice (processed hosts first, then still-unprocessed ones)
// safe for the caller to retain or mutate. Returns nil if thread has no
// assigned hosts.
func (p *Policy) AssignedHosts(thread ThreadID) []HostID {
	ts, ok := p.threads[thread]
	if !ok {
		return nil
	}
	out := make([]HostID, 0, ts.processed.Len()+ts.unprocessed.Len())
	out = append(out, ts.processed.Snapshot()...)
	out = append(out, ts.unprocessed.Snapshot()...)
	return out
}

// NextHostEventTime peeks host's earliest pending event time without
// removing it. Panics with InvariantViolation if host was never
// registered via AddHost.
func (p *Policy) NextHostEventTime(host HostID) EmulatedTime {
	q, ok := p.hosts[host]
	if !ok {
		panic(InvariantViolation{Reason: fmt.Sprintf("unregistered host %q", host)})
	}
	return q.PeekTime()
}

// NextTime returns the minimum VirtualTime across every pending event in
// every host owned by thread, or VirtualTimeMax if thread owns no pending
// events (including threads with no assigned hosts at all).
func (p *Policy) NextTime(thread ThreadID) VirtualTime {
	ts, ok := p.threads[thread]
	if !ok {
		return VirtualTimeMax
	}

	min := VirtualTimeMax
	scan := func(host HostID) {
		t := p.hosts[host].PeekTime()
		if t == EmuTimeInvalid {
			return
		}
		if v := EmuSubEmu(t, SimulationStart); v < min {
			min = v
		}
	}
	for _, h := range ts.unprocessed.Snapshot() {
		scan(h)
	}
	for _, h := range ts.processed.Snapshot() {
		scan(h)
	}
	return min
}

// Close releases every host queue and thread state. No further operations
// on p are valid after Close.
func (p *Policy) Close() {
	p.hosts = nil
	p.threads = nil
}
