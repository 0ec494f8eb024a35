package sched

// hostFIFO is a simple FIFO of HostID backed by a slice, amortizing pops by
// slicing off the head — the same pattern sim.WaitQueue uses for requests
// in the teacher repository.
type hostFIFO struct {
	items []HostID
}

func (f *hostFIFO) PushBack(h HostID) {
	f.items = append(f.items, h)
}

func (f *hostFIFO) Front() (HostID, bool) {
	if len(f.items) == 0 {
		return "", false
	}
	return f.items[0], true
}

func (f *hostFIFO) PopFront() (HostID, bool) {
	if len(f.items) == 0 {
		return "", false
	}
	h := f.items[0]
	f.items = f.items[1:]
	return h, true
}

func (f *hostFIFO) Len() int { return len(f.items) }

func (f *hostFIFO) IsEmpty() bool { return len(f.items) == 0 }

// Snapshot returns a freshly allocated copy of the FIFO's contents in
// front-to-back order. Always a copy — never the internal slice — so
// callers can never observe or corrupt a FIFO still in use by its thread.
func (f *hostFIFO) Snapshot() []HostID {
	out := make([]HostID, len(f.items))
	copy(out, f.items)
	return out
}

// ThreadState holds one worker's assigned hosts, partitioned into
// unprocessed (may still yield an event this round) and processed (already
// drained below the barrier this round), plus the thread's current
// barrier watermark.
type ThreadState struct {
	unprocessed    hostFIFO
	processed      hostFIFO
	currentBarrier VirtualTime
}

func newThreadState() *ThreadState {
	return &ThreadState{}
}

// transition advances the round when barrier moves past currentBarrier:
// every host parked in processed becomes eligible again for this round,
// preserving the order in which they were processed. When unprocessed is
// already empty this is an O(1) swap; otherwise hosts are spliced onto the
// tail of unprocessed one at a time. Idempotent: a barrier that does not
// exceed currentBarrier is a no-op, so repeated Pop calls with the same
// barrier never re-transition.
func (ts *ThreadState) transition(barrier VirtualTime) {
	if barrier <= ts.currentBarrier {
		return
	}
	ts.currentBarrier = barrier
	if ts.unprocessed.IsEmpty() && !ts.processed.IsEmpty() {
		ts.unprocessed, ts.processed = ts.processed, ts.unprocessed
		return
	}
	for !ts.processed.IsEmpty() {
		h, _ := ts.processed.PopFront()
		ts.unprocessed.PushBack(h)
	}
}
