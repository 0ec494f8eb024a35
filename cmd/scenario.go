package cmd

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/hostsched/hostsched/sched"
)

// ThreadSpec lists the hosts one worker thread owns for the lifetime of a
// run. Hosts are never reassigned mid-run — see sched.Policy.AddHost.
type ThreadSpec struct {
	ID    string   `yaml:"id"`
	Hosts []string `yaml:"hosts"`
}

// WorkloadSpec configures the synthetic Poisson arrival process injected
// onto every host before the run starts.
type WorkloadSpec struct {
	// RatePerHost is the Poisson arrival rate in events per simulated second
	// for each host, independently.
	RatePerHost float64 `yaml:"rate_per_host"`

	// ReplyLatencyNs is the fixed delay added before an arrival's generated
	// reply lands on its destination host, exercising the cross-host
	// causality adjustment in sched.Policy.Push.
	ReplyLatencyNs int64 `yaml:"reply_latency_ns"`
}

// ScenarioBundle is the full strictly-parsed description of a run: the
// thread/host topology and the workload to generate against it. All
// top-level sections must be listed here to satisfy KnownFields(true)
// strict parsing.
type ScenarioBundle struct {
	Version  string       `yaml:"version"`
	Seed     int64        `yaml:"seed"`
	HorizonNs int64       `yaml:"horizon_ns"`
	Threads  []ThreadSpec `yaml:"threads"`
	Workload WorkloadSpec `yaml:"workload"`
}

// LoadScenarioBundle parses path into a ScenarioBundle with strict field
// checking, so a typo'd key fails the run instead of silently vanishing.
func LoadScenarioBundle(path string) (*ScenarioBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}

	var bundle ScenarioBundle
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if len(bundle.Threads) == 0 {
		return nil, fmt.Errorf("scenario %s declares no threads", path)
	}
	return &bundle, nil
}

// BuildPolicy registers every host/thread pair the bundle declares and
// returns the populated Policy alongside the thread ID list a Harness
// should drive.
func (b *ScenarioBundle) BuildPolicy() (*sched.Policy, []sched.ThreadID) {
	policy := sched.New()
	threads := make([]sched.ThreadID, 0, len(b.Threads))
	for _, ts := range b.Threads {
		thread := sched.ThreadID(ts.ID)
		threads = append(threads, thread)
		for _, h := range ts.Hosts {
			policy.AddHost(sched.HostID(h), thread)
		}
	}
	return policy, threads
}

// GenerateArrivals injects a Poisson arrival stream onto every host in the
// bundle, seeded deterministically from b.Seed so the same bundle always
// produces the same event stream. Each arrival, when executed, immediately
// pushes a reply to the next host in its own thread's list (wrapping
// around), delayed by Workload.ReplyLatencyNs — whenever the thread owns
// more than one host, that reply is a cross-host push, which is what goes
// through the causality adjustment in sched.Policy.Push.
func (b *ScenarioBundle) GenerateArrivals(policy *sched.Policy) int {
	rng := sched.NewPartitionedRNG(b.Seed)
	count := 0
	for _, ts := range b.Threads {
		for i, hostName := range ts.Hosts {
			host := sched.HostID(hostName)
			next := ts.Hosts[(i+1)%len(ts.Hosts)]
			count += b.generateHostArrivals(policy, rng, host, sched.HostID(next))
		}
	}
	return count
}

func (b *ScenarioBundle) generateHostArrivals(policy *sched.Policy, rng *sched.PartitionedRNG, host, replyTo sched.HostID) int {
	r := rng.ForHost(host)
	rate := b.Workload.RatePerHost
	if rate <= 0 {
		return 0
	}

	count := 0
	var t sched.VirtualTime
	for {
		// exponential inter-arrival time for a Poisson process at rate
		// events/sec, drawn in seconds and then converted to ns.
		u := r.Float64()
		if u <= 0 {
			u = math.SmallestNonzeroFloat64
		}
		interArrivalSec := -math.Log(u) / rate
		t += sched.VirtualTime(interArrivalSec * 1e9)
		if int64(t) >= b.HorizonNs {
			return count
		}

		arrivalTime := t
		ev := sched.NewHostedEvent(arrivalTime, host, func(ex sched.Executor) {
			logrus.Debugf("arrival at host %s, time %d", host, arrivalTime)
			reply := sched.NewHostedEvent(arrivalTime+sched.VirtualTime(b.Workload.ReplyLatencyNs), replyTo, nil)
			ex.Push(reply, replyTo)
		})
		policy.Push(ev, host, host, 0)
		count++
	}
}
