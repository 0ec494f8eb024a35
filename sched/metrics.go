package sched

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// RoundStats summarizes a batch of observed samples — per-round host
// backlog depth, or round wall-duration — as quantiles, for a harness to
// log or export after each barrier advance. This replaces the hand-rolled
// percentile interpolation sim.CalculatePercentile used in the teacher
// repository with gonum/stat, already present in the dependency graph.
type RoundStats struct {
	Mean          float64
	P50, P90, P99 float64
	N             int
}

// Summarize computes RoundStats over samples. Returns the zero value if
// samples is empty.
func Summarize(samples []float64) RoundStats {
	n := len(samples)
	if n == 0 {
		return RoundStats{}
	}
	sorted := make([]float64, n)
	copy(sorted, samples)
	sort.Float64s(sorted)

	return RoundStats{
		Mean: stat.Mean(sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
		P99:  stat.Quantile(0.99, stat.Empirical, sorted, nil),
		N:    n,
	}
}
