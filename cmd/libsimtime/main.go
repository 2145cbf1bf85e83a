//go:build linux && cgo && !(386 || arm || mips || mipsle)

// Command libsimtime builds the simulation-time conversions as a C shared
// library for the legacy syscall handlers:
//
//	go build -buildmode=c-shared -o libsimtime.so ./cmd/libsimtime
//
// Failure is signaled only through SIMTIME_INVALID or a false return.
package main

/*
#include <stdbool.h>
#include <stdint.h>
#include <sys/time.h>
#include <time.h>

typedef uint64_t SimulationTime;

#define SIMTIME_INVALID UINT64_MAX
*/
import "C"

import (
	"golang.org/x/sys/unix"

	"github.com/hostsim/hostsim/sim/bridge"
)

//export simtime_from_timeval
func simtime_from_timeval(val C.struct_timeval) C.SimulationTime {
	tv := unix.Timeval{Sec: int64(val.tv_sec), Usec: int64(val.tv_usec)}
	return C.SimulationTime(bridge.FromTimeval(tv))
}

//export simtime_from_timespec
func simtime_from_timespec(val C.struct_timespec) C.SimulationTime {
	ts := unix.Timespec{Sec: int64(val.tv_sec), Nsec: int64(val.tv_nsec)}
	return C.SimulationTime(bridge.FromTimespec(ts))
}

//export simtime_to_timeval
func simtime_to_timeval(val C.SimulationTime, out *C.struct_timeval) C.bool {
	if out == nil {
		return C.bool(false)
	}
	var tv unix.Timeval
	if !bridge.ToTimeval(uint64(val), &tv) {
		return C.bool(false)
	}
	out.tv_sec = C.time_t(tv.Sec)
	out.tv_usec = C.suseconds_t(tv.Usec)
	return C.bool(true)
}

//export simtime_to_timespec
func simtime_to_timespec(val C.SimulationTime, out *C.struct_timespec) C.bool {
	if out == nil {
		return C.bool(false)
	}
	var ts unix.Timespec
	if !bridge.ToTimespec(uint64(val), &ts) {
		return C.bool(false)
	}
	out.tv_sec = C.time_t(ts.Sec)
	out.tv_nsec = C.long(ts.Nsec)
	return C.bool(true)
}

func main() {}
