//go:build linux

// Package host models a simulated machine: a descriptor table, a syscall
// handler bound to the scheduler's clock, and a workload that issues
// syscalls at simulated intervals.
package host

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/hostsim/hostsim/sim/descriptor"
	"github.com/hostsim/hostsim/sim/scheduler"
	"github.com/hostsim/hostsim/sim/simtime"
	"github.com/hostsim/hostsim/sim/syscalls"
	"github.com/hostsim/hostsim/sim/trace"
)

// Standard streams are owned by the legacy handler; the first file the
// simulator manages itself is fd 3.
const (
	legacyStdin  descriptor.LegacyHandle = 0
	legacyStdout descriptor.LegacyHandle = 1
	legacyStderr descriptor.LegacyHandle = 2
	managedFD    int32                   = 3
)

// Config describes one host.
type Config struct {
	ID       int
	Name     string
	Interval simtime.SimulationTime
	Syscalls []string
	Trace    bool
}

// Host issues syscalls from its mix each time it wakes. All host state is
// touched only from the host's own events, which the scheduler never runs
// concurrently.
type Host struct {
	config  Config
	rng     *rand.Rand
	table   *descriptor.Table
	handler *syscalls.Handler
	legacy  *legacyStub

	seq     uint64
	records []trace.SyscallRecord
}

// New creates a host. clock is normally the scheduler that will run it.
// Panics if the syscall mix is empty or the interval is zero.
func New(config Config, clock syscalls.Clock, rng *rand.Rand) *Host {
	if len(config.Syscalls) == 0 {
		panic(fmt.Sprintf("host %q: empty syscall mix", config.Name))
	}
	if config.Interval.IsZero() {
		panic(fmt.Sprintf("host %q: zero wake interval", config.Name))
	}

	table := descriptor.NewTable()
	for fd, h := range []descriptor.LegacyHandle{legacyStdin, legacyStdout, legacyStderr} {
		if err := table.Register(int32(fd), descriptor.NewLegacyDescriptor(h)); err != nil {
			panic(err)
		}
	}
	file := descriptor.NewFile(fmt.Sprintf("%s.sock", config.Name), descriptor.FlagNonblock)
	if err := table.Register(managedFD, descriptor.NewDescriptor(file)); err != nil {
		panic(err)
	}

	legacy := &legacyStub{}
	return &Host{
		config:  config,
		rng:     rng,
		table:   table,
		handler: syscalls.NewHandler(clock, table, legacy),
		legacy:  legacy,
	}
}

func (h *Host) ID() int { return h.config.ID }

func (h *Host) Name() string { return h.config.Name }

// Records returns the syscalls served so far, in issue order.
func (h *Host) Records() []trace.SyscallRecord { return h.records }

// Served is the number of syscalls issued, traced or not.
func (h *Host) Served() uint64 { return h.seq }

// Forwarded is the number of syscalls handed to the legacy handler.
func (h *Host) Forwarded() uint64 { return h.legacy.calls }

// Start schedules the first wake-up, staggered within one interval so hosts
// sharing a config do not all wake together.
func (h *Host) Start(s *scheduler.Scheduler) error {
	offset := simtime.FromNanos(uint64(h.rng.Int63n(int64(h.config.Interval.Nanos()))))
	at, ok := simtime.SimulationStart.CheckedAdd(offset)
	if !ok {
		return fmt.Errorf("host %q: first wake-up is not representable", h.config.Name)
	}
	return s.Schedule(&WakeEvent{host: h, at: at})
}

// wake serves one syscall and schedules the next wake-up.
func (h *Host) wake(s *scheduler.Scheduler, at simtime.EmulatedTime) error {
	name := h.config.Syscalls[h.rng.Intn(len(h.config.Syscalls))]
	rec := h.issue(name)
	rec.Host = h.config.Name
	rec.HostID = h.config.ID
	rec.Seq = h.seq
	rec.Time = at.Raw()
	h.seq++
	if h.config.Trace {
		h.records = append(h.records, rec)
	}
	logrus.Tracef("host %s: %s -> %d %s", h.config.Name, name, rec.Return, rec.Errno)

	next, ok := at.CheckedAdd(h.nextDelay())
	if !ok {
		logrus.Debugf("host %s: next wake-up past the end of emulated time, going idle", h.config.Name)
		return nil
	}
	return s.Schedule(&WakeEvent{host: h, at: next})
}

// nextDelay is the interval plus up to 10% jitter.
func (h *Host) nextDelay() simtime.SimulationTime {
	jitter := int64(h.config.Interval.Nanos() / 10)
	return h.config.Interval.Add(simtime.FromNanos(uint64(h.rng.Int63n(jitter + 1))))
}

// WakeEvent wakes a host at a fixed instant.
type WakeEvent struct {
	host *Host
	at   simtime.EmulatedTime
}

func (e *WakeEvent) Time() simtime.EmulatedTime { return e.at }

func (e *WakeEvent) Host() int { return e.host.config.ID }

func (e *WakeEvent) Execute(s *scheduler.Scheduler) error {
	return e.host.wake(s, e.at)
}

// legacyStub stands in for the C handler. It accepts every forwarded call.
type legacyStub struct {
	calls uint64
}

func (l *legacyStub) Dispatch(args syscalls.Args) (syscalls.Reg, error) {
	l.calls++
	return 0, nil
}
