//go:build linux

package syscalls

import (
	"golang.org/x/sys/unix"

	"github.com/hostsim/hostsim/sim/simtime"
)

// Fixed sysinfo figures. The exact numbers do not matter much; they only
// have to be the same on every run. Some applications size caches and
// connection limits from available memory.
const (
	sysinfoLoad      = 1
	sysinfoTotalRAM  = 32
	sysinfoFreeRAM   = 24
	sysinfoSharedRAM = 4
	sysinfoBufferRAM = 4
	sysinfoTotalSwap = 0
	sysinfoFreeSwap  = 0
	sysinfoProcs     = 100
	sysinfoTotalHigh = 4
	sysinfoFreeHigh  = 3
	sysinfoMemUnit   = 1024 * 1024 * 1024 // GiB
)

// Sysinfo fills a sysinfo struct. Only the uptime depends on the clock: it is
// the whole seconds elapsed since simtime.SimulationStart.
func (h *Handler) Sysinfo() unix.Sysinfo_t {
	uptime := h.now().SaturatingDurationSince(simtime.SimulationStart).Secs()

	// Start from a zeroed struct so padding and unset fields are stable.
	var info unix.Sysinfo_t
	fillSysinfo(&info, uptime)
	return info
}
