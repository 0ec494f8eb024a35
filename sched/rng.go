package sched

import (
	"hash/fnv"
	"math/rand"
)

// PartitionedRNG hands out a deterministically-seeded *rand.Rand per named
// subsystem, so a scenario's global seed reproduces identical event streams
// run after run while keeping each host's arrival generator independent of
// every other host's. Not safe for concurrent use — build the full set of
// subsystem RNGs during scenario setup, before any worker goroutine starts.
type PartitionedRNG struct {
	seed       int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG derived from seed.
func NewPartitionedRNG(seed int64) *PartitionedRNG {
	return &PartitionedRNG{seed: seed, subsystems: make(map[string]*rand.Rand)}
}

// ForHost returns the cached *rand.Rand for host, creating it on first use.
// The derived seed is seed XOR fnv1a64(host), so two hosts never draw from
// correlated streams.
func (p *PartitionedRNG) ForHost(host HostID) *rand.Rand {
	name := string(host)
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	derived := p.seed ^ fnv1a64(name)
	rng := rand.New(rand.NewSource(derived))
	p.subsystems[name] = rng
	return rng
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
