package sched

import (
	"container/heap"
	"sync"
)

// eventItem pairs an Event with its insertion sequence number so the heap
// can break same-timestamp ties in FIFO order.
type eventItem struct {
	event Event
	seq   uint64
}

// eventHeap implements heap.Interface over eventItem, the same pattern
// sim.EventQueue and cluster.EventHeap use in the teacher repository.
type eventHeap []eventItem

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	ti, tj := h[i].event.Timestamp(), h[j].event.Timestamp()
	if ti != tj {
		return ti < tj
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(eventItem))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// EventQueue is a thread-safe, per-host min-heap of events ordered by
// ascending virtual time, ties broken by insertion order. Any goroutine
// may Push; Pop is intended to be called only by the host's owning
// worker, but the mutex makes it safe against concurrent PeekTime
// calls from other threads regardless.
type EventQueue struct {
	mu      sync.Mutex
	heap    eventHeap
	nextSeq uint64
}

// NewEventQueue creates an empty EventQueue.
func NewEventQueue() *EventQueue {
	return &EventQueue{heap: make(eventHeap, 0)}
}

// Push inserts e. Never fails.
func (q *EventQueue) Push(e Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	heap.Push(&q.heap, eventItem{event: e, seq: q.nextSeq})
	q.nextSeq++
}

// Pop removes and returns the earliest event, or (nil, false) if empty.
func (q *EventQueue) Pop() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.heap) == 0 {
		return nil, false
	}
	item := heap.Pop(&q.heap).(eventItem)
	return item.event, true
}

// PeekTime returns the earliest event's time, as an EmulatedTime, without
// removing it, or EmuTimeInvalid if the queue is empty.
func (q *EventQueue) PeekTime() EmulatedTime {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.heap) == 0 {
		return EmuTimeInvalid
	}
	return EmuAddSim(SimulationStart, q.heap[0].event.Timestamp())
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.heap)
}

// IsEmpty reports whether the queue currently holds no events.
func (q *EventQueue) IsEmpty() bool {
	return q.Len() == 0
}
