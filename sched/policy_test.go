package sched

import "testing"

const (
	hostA  HostID   = "A"
	hostB  HostID   = "B"
	thread ThreadID = "T"
)

// Scenario 1: basic ordering across two hosts owned by one thread.
func TestPolicy_BasicOrdering(t *testing.T) {
	p := New()
	p.AddHost(hostA, thread)
	p.AddHost(hostB, thread)

	p.Push(NewFuncEvent(5, nil), hostA, hostA, 0)
	p.Push(NewFuncEvent(3, nil), hostA, hostA, 0)
	p.Push(NewFuncEvent(7, nil), hostB, hostB, 0)

	var got []VirtualTime
	for {
		e, ok := p.Pop(thread, 10)
		if !ok {
			break
		}
		got = append(got, e.Timestamp())
	}

	want := []VirtualTime{3, 5, 7}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("order[%d]: got %d, want %d", i, got[i], want[i])
		}
	}

	if _, ok := p.Pop(thread, 10); ok {
		t.Errorf("expected no more events after draining")
	}
}

// Scenario 2: cross-host causality lift.
func TestPolicy_CrossHostCausalityLift(t *testing.T) {
	p := New()
	p.AddHost(hostA, thread)
	p.AddHost(hostB, thread)

	p.Push(NewFuncEvent(2, nil), hostA, hostB, 10)

	if got := p.NextHostEventTime(hostB); got != EmuAddSim(SimulationStart, 10) {
		t.Errorf("NextHostEventTime(B): got %d, want emulated 10", got)
	}

	e, ok := p.Pop(thread, 20)
	if !ok {
		t.Fatal("expected an event")
	}
	if e.Timestamp() != 10 {
		t.Errorf("delivered event time: got %d, want 10 (lifted to barrier)", e.Timestamp())
	}
}

// Scenario 3: same-host delivery never adjusts time.
func TestPolicy_SameHostNoLift(t *testing.T) {
	p := New()
	p.AddHost(hostA, thread)

	p.Push(NewFuncEvent(2, nil), hostA, hostA, 10)

	e, ok := p.Pop(thread, 20)
	if !ok {
		t.Fatal("expected an event")
	}
	if e.Timestamp() != 2 {
		t.Errorf("same-host event time: got %d, want unchanged 2", e.Timestamp())
	}
}

// Scenario 4: barrier exclusion — time == barrier is not "before" barrier.
func TestPolicy_BarrierExclusion(t *testing.T) {
	p := New()
	p.AddHost(hostA, thread)

	p.Push(NewFuncEvent(10, nil), hostA, hostA, 0)

	if _, ok := p.Pop(thread, 10); ok {
		t.Errorf("Pop(10) must not return an event at time==10")
	}
	e, ok := p.Pop(thread, 11)
	if !ok {
		t.Fatal("Pop(11) should return the event")
	}
	if e.Timestamp() != 10 {
		t.Errorf("got event at %d, want 10", e.Timestamp())
	}
}

// Scenario 5: round partition — each host visited once per round.
func TestPolicy_RoundPartition(t *testing.T) {
	p := New()
	p.AddHost(hostA, thread)
	p.AddHost(hostB, thread)

	p.Push(NewFuncEvent(1, nil), hostA, hostA, 0)
	p.Push(NewFuncEvent(1, nil), hostB, hostB, 0)

	e1, ok := p.Pop(thread, 5)
	if !ok || e1.Timestamp() != 1 {
		t.Fatalf("expected first event at t=1, got %v ok=%v", e1, ok)
	}
	e2, ok := p.Pop(thread, 5)
	if !ok || e2.Timestamp() != 1 {
		t.Fatalf("expected second event at t=1, got %v ok=%v", e2, ok)
	}
	if _, ok := p.Pop(thread, 5); ok {
		t.Fatalf("round 1 should be exhausted")
	}

	p.Push(NewFuncEvent(7, nil), hostA, hostA, 5)
	e3, ok := p.Pop(thread, 10)
	if !ok || e3.Timestamp() != 7 {
		t.Fatalf("expected round-2 event at t=7, got %v ok=%v", e3, ok)
	}
	if _, ok := p.Pop(thread, 10); ok {
		t.Fatalf("round 2 should be exhausted after A's single event")
	}
}

// Scenario 6: idle thread.
func TestPolicy_IdleThreadReturnsNone(t *testing.T) {
	p := New()
	if _, ok := p.Pop("never-assigned", 100); ok {
		t.Errorf("idle thread must return (nil, false)")
	}
}

func TestPolicy_PushToUnregisteredHostPanics(t *testing.T) {
	p := New()
	p.AddHost(hostA, thread)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic pushing to unregistered host")
		}
	}()
	p.Push(NewFuncEvent(1, nil), hostA, "ghost", 0)
}

func TestPolicy_NextHostEventTime_UnregisteredHostPanics(t *testing.T) {
	p := New()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	p.NextHostEventTime("ghost")
}

func TestPolicy_AssignedHosts_ReturnsUnionInStableOrder(t *testing.T) {
	p := New()
	p.AddHost(hostA, thread)
	p.AddHost(hostB, thread)
	p.Push(NewFuncEvent(1, nil), hostA, hostA, 0)
	p.Pop(thread, 5) // pops A's only event; A stays at the front of unprocessed

	got := p.AssignedHosts(thread)
	want := []HostID{hostA, hostB}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AssignedHosts[%d]: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestPolicy_AssignedHosts_ReturnsFreshSliceEachCall(t *testing.T) {
	p := New()
	p.AddHost(hostA, thread)

	got := p.AssignedHosts(thread)
	got[0] = "mutated"

	again := p.AssignedHosts(thread)
	if again[0] != hostA {
		t.Errorf("mutating one AssignedHosts result affected another: got %s, want %s", again[0], hostA)
	}
}

func TestPolicy_AssignedHosts_UnknownThreadReturnsNil(t *testing.T) {
	p := New()
	if got := p.AssignedHosts("nope"); got != nil {
		t.Errorf("expected nil for unknown thread, got %v", got)
	}
}

func TestPolicy_NextTime_ReturnsMinAcrossHosts(t *testing.T) {
	p := New()
	p.AddHost(hostA, thread)
	p.AddHost(hostB, thread)
	p.Push(NewFuncEvent(50, nil), hostA, hostA, 0)
	p.Push(NewFuncEvent(20, nil), hostB, hostB, 0)

	if got := p.NextTime(thread); got != 20 {
		t.Errorf("NextTime: got %d, want 20", got)
	}
}

func TestPolicy_NextTime_MaxWhenEmpty(t *testing.T) {
	p := New()
	p.AddHost(hostA, thread)
	if got := p.NextTime(thread); got != VirtualTimeMax {
		t.Errorf("NextTime on empty thread: got %d, want VirtualTimeMax", got)
	}
	if got := p.NextTime("never-assigned"); got != VirtualTimeMax {
		t.Errorf("NextTime on unassigned thread: got %d, want VirtualTimeMax", got)
	}
}

func TestPolicy_RoundTripNEvents(t *testing.T) {
	p := New()
	p.AddHost(hostA, thread)

	times := []VirtualTime{9, 1, 5, 3, 7}
	for _, tm := range times {
		p.Push(NewFuncEvent(tm, nil), hostA, hostA, 0)
	}

	var got []VirtualTime
	for {
		e, ok := p.Pop(thread, 100)
		if !ok {
			break
		}
		got = append(got, e.Timestamp())
	}
	want := []VirtualTime{1, 3, 5, 7, 9}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("order[%d]: got %d, want %d", i, got[i], want[i])
		}
	}
}
