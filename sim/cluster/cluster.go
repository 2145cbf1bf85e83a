//go:build linux

// Package cluster runs a set of simulated hosts behind one scheduler.
package cluster

import (
	"context"
	"fmt"
	"runtime"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hostsim/hostsim/sim"
	"github.com/hostsim/hostsim/sim/host"
	"github.com/hostsim/hostsim/sim/scheduler"
	"github.com/hostsim/hostsim/sim/simtime"
	"github.com/hostsim/hostsim/sim/trace"
)

// ClusterSimulator orchestrates every host of a Config behind a shared
// clock. Hosts are numbered in config order; that number is the tie-breaker
// for events at the same instant.
type ClusterSimulator struct {
	config *sim.Config
	runID  uuid.UUID
	sched  *scheduler.Scheduler
	hosts  []*host.Host
	rng    *sim.PartitionedRNG
	hasRun bool
	trace  *trace.SimulationTrace
}

// NewClusterSimulator builds the hosts for a validated config.
func NewClusterSimulator(config *sim.Config, runID uuid.UUID) (*ClusterSimulator, error) {
	stop, err := config.StopDuration()
	if err != nil {
		return nil, err
	}
	parallelism := config.Parallelism
	if parallelism == 0 {
		parallelism = runtime.NumCPU()
	}

	c := &ClusterSimulator{
		config: config,
		runID:  runID,
		sched: scheduler.New(scheduler.Config{
			StopTime:    simtime.EmulatedFromAbsSimtime(stop),
			Parallelism: parallelism,
		}),
		rng: sim.NewPartitionedRNG(sim.NewSimulationKey(config.Seed)),
	}

	traced := trace.TraceConfig{Level: trace.TraceLevel(config.TraceLevel)}.Enabled()
	for _, group := range config.Hosts {
		interval, err := group.IntervalTime()
		if err != nil {
			return nil, err
		}
		for i := 0; i < group.Count; i++ {
			id := len(c.hosts)
			name := group.Name
			if group.Count > 1 {
				name = fmt.Sprintf("%s-%d", group.Name, i)
			}
			c.hosts = append(c.hosts, host.New(host.Config{
				ID:       id,
				Name:     name,
				Interval: interval,
				Syscalls: group.Syscalls,
				Trace:    traced,
			}, c.sched, c.rng.ForSubsystem(sim.SubsystemHost(id))))
		}
	}
	return c, nil
}

// Run executes the simulation and collects the trace. Returns an error if
// called more than once.
func (c *ClusterSimulator) Run(ctx context.Context) error {
	if c.hasRun {
		return fmt.Errorf("cluster: Run called more than once")
	}
	c.hasRun = true

	for _, h := range c.hosts {
		if err := h.Start(c.sched); err != nil {
			return err
		}
	}
	logrus.Infof("Running %d hosts until %s (run %s)", len(c.hosts), c.config.StopTime, c.runID)
	if err := c.sched.Run(ctx); err != nil {
		return fmt.Errorf("cluster: %w", err)
	}

	c.trace = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevel(c.config.TraceLevel)}, c.runID.String())
	for _, h := range c.hosts {
		c.trace.Record(h.Records()...)
	}
	c.trace.Sort()

	stats := c.sched.Stats()
	logrus.Infof("Simulation complete: %d rounds, %d syscalls, %d events still pending",
		stats.Rounds, stats.Executed, stats.Pending)
	return nil
}

// Hosts returns the simulated hosts in ID order.
func (c *ClusterSimulator) Hosts() []*host.Host {
	return c.hosts
}

// RunID identifies this run in the trace.
func (c *ClusterSimulator) RunID() uuid.UUID {
	return c.runID
}

// Stats reports scheduler progress.
func (c *ClusterSimulator) Stats() scheduler.Stats {
	return c.sched.Stats()
}

// Trace returns the merged, sorted syscall trace.
// Panics if called before Run() has completed.
func (c *ClusterSimulator) Trace() *trace.SimulationTrace {
	if !c.hasRun || c.trace == nil {
		panic("ClusterSimulator.Trace() called before Run()")
	}
	return c.trace
}
