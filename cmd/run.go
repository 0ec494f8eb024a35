package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hostsched/hostsched/harness"
	"github.com/hostsched/hostsched/sched"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a host-scheduling scenario to completion",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScenario(scenarioPath)
	},
}

func init() {
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to a scenario YAML file (required)")
	_ = runCmd.MarkFlagRequired("scenario")
}

func runScenario(path string) error {
	bundle, err := LoadScenarioBundle(path)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}

	policy, threads := bundle.BuildPolicy()
	defer policy.Close()

	injected := bundle.GenerateArrivals(policy)
	logrus.Infof("scenario %s: %d threads, %d hosts, %d events injected",
		path, len(threads), countHosts(bundle), injected)

	var roundDurations []float64
	h := &harness.Harness{
		Policy:  policy,
		Threads: threads,
		OnRound: func(barrier sched.VirtualTime, dur time.Duration) {
			roundDurations = append(roundDurations, float64(dur.Nanoseconds()))
		},
	}

	start := time.Now()
	h.Run()
	elapsed := time.Since(start)

	stats := sched.Summarize(roundDurations)
	fmt.Printf("rounds=%d wall_time=%s round_duration_ns{mean=%.0f p50=%.0f p99=%.0f}\n",
		stats.N, elapsed, stats.Mean, stats.P50, stats.P99)
	return nil
}

func countHosts(b *ScenarioBundle) int {
	n := 0
	for _, t := range b.Threads {
		n += len(t.Hosts)
	}
	return n
}
