//go:build linux && cgo && !(386 || arm || mips || mipsle)

package main

/*
#include <stdbool.h>
#include <stdint.h>
#include <sys/time.h>
#include <time.h>

typedef uint64_t SimulationTime;
*/
import "C"

// Go-typed wrappers that drive the exported functions with real C structs.
// Test files cannot import "C", so they go through these.

func fromTimevalFields(sec, usec int64) uint64 {
	var tv C.struct_timeval
	tv.tv_sec = C.time_t(sec)
	tv.tv_usec = C.suseconds_t(usec)
	return uint64(simtime_from_timeval(tv))
}

func fromTimespecFields(sec, nsec int64) uint64 {
	var ts C.struct_timespec
	ts.tv_sec = C.time_t(sec)
	ts.tv_nsec = C.long(nsec)
	return uint64(simtime_from_timespec(ts))
}

// toTimevalFields starts from a struct holding initSec and initUsec so
// callers can see whether it was written.
func toTimevalFields(raw uint64, initSec, initUsec int64) (sec, usec int64, ok bool) {
	tv := C.struct_timeval{tv_sec: C.time_t(initSec), tv_usec: C.suseconds_t(initUsec)}
	ok = bool(simtime_to_timeval(C.SimulationTime(raw), &tv))
	return int64(tv.tv_sec), int64(tv.tv_usec), ok
}

func toTimespecFields(raw uint64, initSec, initNsec int64) (sec, nsec int64, ok bool) {
	ts := C.struct_timespec{tv_sec: C.time_t(initSec), tv_nsec: C.long(initNsec)}
	ok = bool(simtime_to_timespec(C.SimulationTime(raw), &ts))
	return int64(ts.tv_sec), int64(ts.tv_nsec), ok
}

func toTimevalNil(raw uint64) bool {
	return bool(simtime_to_timeval(C.SimulationTime(raw), nil))
}

func toTimespecNil(raw uint64) bool {
	return bool(simtime_to_timespec(C.SimulationTime(raw), nil))
}
