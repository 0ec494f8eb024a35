package sched

// Event is a schedulable unit of work. Policy orders and delivers events
// but never executes one — event execution is the caller's responsibility,
// same separation sim.Simulator draws between its EventQueue and
// Event.Execute in the teacher repository this policy is adapted from.
type Event interface {
	Timestamp() VirtualTime
	SetTime(VirtualTime)
}

// Executor is the surface a running event needs in order to deliver
// further events. The harness package implements it; Policy does not,
// since Policy never executes events itself.
type Executor interface {
	Push(ev Event, dst HostID) VirtualTime
}

// FuncEvent is a minimal concrete Event for callers that just need a
// timestamp and a callback with no host affiliation — useful in tests and
// for events that don't deliver further events.
type FuncEvent struct {
	time VirtualTime
	Run  func()
}

// NewFuncEvent creates a FuncEvent scheduled at t.
func NewFuncEvent(t VirtualTime, run func()) *FuncEvent {
	return &FuncEvent{time: t, Run: run}
}

func (e *FuncEvent) Timestamp() VirtualTime { return e.time }
func (e *FuncEvent) SetTime(t VirtualTime)  { e.time = t }

// HostedEvent is a concrete Event that additionally knows which host it
// executes against, matching how sim.ArrivalEvent/sim.ProcessBatchEvent
// carry a time plus an Execute callback — generalized here with an
// Executor so a HostedEvent can push further events to other hosts
// without importing the harness package.
type HostedEvent struct {
	time VirtualTime
	host HostID
	run  func(Executor)
}

// NewHostedEvent creates a HostedEvent scheduled at t against host, which
// invokes run when the harness executes it.
func NewHostedEvent(t VirtualTime, host HostID, run func(Executor)) *HostedEvent {
	return &HostedEvent{time: t, host: host, run: run}
}

func (e *HostedEvent) Timestamp() VirtualTime { return e.time }
func (e *HostedEvent) SetTime(t VirtualTime)  { e.time = t }

// Host returns the host this event executes against.
func (e *HostedEvent) Host() HostID { return e.host }

// Execute runs the event's callback, if any, against ex.
func (e *HostedEvent) Execute(ex Executor) {
	if e.run != nil {
		e.run(ex)
	}
}
