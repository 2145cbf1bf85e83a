//go:build linux

// Package syscalls fabricates syscall results from simulated state. Every
// time a simulated application can observe is derived from the scheduler's
// clock, never from the host machine, so repeated runs are bit-identical.
package syscalls

import (
	"github.com/hostsim/hostsim/sim/descriptor"
	"github.com/hostsim/hostsim/sim/simtime"
)

// Reg is a syscall argument or return register.
type Reg uint64

// Args are the raw arguments of one syscall.
type Args struct {
	Number int64
	Regs   [6]Reg
}

// Clock reports the current emulated time. It reports false when no
// simulation is running.
type Clock interface {
	CurrentTime() (simtime.EmulatedTime, bool)
}

// LegacyDispatcher forwards a syscall to the legacy C handler and returns its
// result unchanged.
type LegacyDispatcher interface {
	Dispatch(args Args) (Reg, error)
}

// Handler serves syscalls for one simulated process.
type Handler struct {
	clock  Clock
	table  *descriptor.Table
	legacy LegacyDispatcher
}

func NewHandler(clock Clock, table *descriptor.Table, legacy LegacyDispatcher) *Handler {
	return &Handler{clock: clock, table: table, legacy: legacy}
}

// now returns the current emulated time. Syscalls only run while the
// scheduler is executing events, so an absent clock is a bug.
func (h *Handler) now() simtime.EmulatedTime {
	now, ok := h.clock.CurrentTime()
	if !ok {
		panic("syscalls: no current simulation time")
	}
	return now
}
