//go:build linux && (386 || arm || mips || mipsle)

package syscalls

import (
	"math"

	"golang.org/x/sys/unix"
)

func fillSysinfo(info *unix.Sysinfo_t, uptime uint64) {
	if uptime > math.MaxInt32 {
		uptime = math.MaxInt32
	}
	info.Uptime = int32(uptime)
	info.Loads = [3]uint32{sysinfoLoad, sysinfoLoad, sysinfoLoad}
	info.Totalram = sysinfoTotalRAM
	info.Freeram = sysinfoFreeRAM
	info.Sharedram = sysinfoSharedRAM
	info.Bufferram = sysinfoBufferRAM
	info.Totalswap = sysinfoTotalSwap
	info.Freeswap = sysinfoFreeSwap
	info.Procs = sysinfoProcs
	info.Totalhigh = sysinfoTotalHigh
	info.Freehigh = sysinfoFreeHigh
	info.Unit = sysinfoMemUnit
}
