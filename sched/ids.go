package sched

// HostID identifies a simulated host. It is a value type (not a pointer)
// so it can be used directly as a map key without relying on pointer
// identity — see DESIGN.md for why this replaces the source's
// pointer-keyed GHashTable.
type HostID string

// ThreadID identifies a worker thread. In this repository's harness a
// thread is a goroutine, but Policy never assumes that — it only needs
// ThreadID to be a comparable value passed explicitly by the caller,
// rather than discovered via a thread-local lookup.
type ThreadID string
