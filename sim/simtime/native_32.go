//go:build linux && (386 || arm || mips || mipsle)

package simtime

import (
	"math"

	"golang.org/x/sys/unix"
)

const maxTimeT uint64 = math.MaxInt32

// Callers check sec against maxTimeT first.
func makeTimespec(sec, nsec int64) unix.Timespec {
	return unix.Timespec{Sec: int32(sec), Nsec: int32(nsec)}
}

func makeTimeval(sec, usec int64) unix.Timeval {
	return unix.Timeval{Sec: int32(sec), Usec: int32(usec)}
}
