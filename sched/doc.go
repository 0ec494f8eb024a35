// Package sched implements the scheduler policy core of a discrete-event
// host simulator: per-host event queues, barrier-synchronized worker
// rounds, and the causality adjustment that keeps cross-host delivery from
// landing in another host's past.
//
// # Reading Guide
//
// Start with these three files to understand the policy kernel:
//   - queue.go: EventQueue, the mutex-protected per-host min-heap
//   - threadstate.go: ThreadState, the per-worker unprocessed/processed partition
//   - policy.go: Policy, the AddHost/Push/Pop/AssignedHosts/NextTime surface
//
// # Architecture
//
// Hosts are pinned to exactly one thread for the simulation's lifetime
// (see Policy.AddHost); there is no mid-round rebalancing. A worker drains
// one host to exhaustion below the current barrier before moving to the
// next host it owns — see Policy.Push's doc comment for why that forces
// the causality adjustment there.
//
// Policy itself never executes an event and spawns no goroutines; the
// harness package (github.com/hostsched/hostsched/harness) drives it with
// real worker goroutines and a per-round barrier.
package sched
