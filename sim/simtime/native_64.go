//go:build linux && !(386 || arm || mips || mipsle)

package simtime

import (
	"math"

	"golang.org/x/sys/unix"
)

const maxTimeT uint64 = math.MaxInt64

func makeTimespec(sec, nsec int64) unix.Timespec {
	return unix.Timespec{Sec: sec, Nsec: nsec}
}

func makeTimeval(sec, usec int64) unix.Timeval {
	return unix.Timeval{Sec: sec, Usec: usec}
}
