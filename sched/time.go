package sched

import "fmt"

// VirtualTime is simulated nanoseconds elapsed since the simulation began.
// It is monotonically increasing across the lifetime of a single host.
type VirtualTime uint64

// VirtualTimeMax is returned by NextTime when a thread owns no pending
// events anywhere; callers take the minimum of this value across threads
// to decide whether the simulation has run out of work.
const VirtualTimeMax VirtualTime = ^VirtualTime(0)

// EmulatedTime is SimulationStart plus some VirtualTime offset. EventQueue
// reports peek times in this representation (matching the upstream
// eventqueue_nextEventTime contract); Policy and ThreadState otherwise deal
// exclusively in VirtualTime.
type EmulatedTime uint64

const (
	// SimulationStart is the fixed emulated-time origin every VirtualTime
	// is offset from. No real event can have an EmulatedTime below this,
	// which is what makes EmuTimeInvalid (zero) an unambiguous sentinel.
	SimulationStart EmulatedTime = 946684800000000000 // 2000-01-01T00:00:00Z, in ns

	// EmuTimeInvalid marks "no such event" — returned by EventQueue.PeekTime
	// on an empty queue.
	EmuTimeInvalid EmulatedTime = 0
)

// EmuAddSim returns e advanced by t, panicking with InvariantViolation on
// overflow — this can only happen from a corrupt VirtualTime, never from
// ordinary simulation progress.
func EmuAddSim(e EmulatedTime, t VirtualTime) EmulatedTime {
	if t == VirtualTimeMax || uint64(e) > ^uint64(0)-uint64(t) {
		panic(InvariantViolation{Reason: fmt.Sprintf("emulated time overflow: %d + %d", e, t)})
	}
	return e + EmulatedTime(t)
}

// EmuSubEmu returns a - b as a VirtualTime, panicking with
// InvariantViolation if b > a — an emulated time can never precede the
// time it was derived from.
func EmuSubEmu(a, b EmulatedTime) VirtualTime {
	if b > a {
		panic(InvariantViolation{Reason: fmt.Sprintf("negative time delta: %d - %d", a, b)})
	}
	return VirtualTime(a - b)
}
