//go:build linux && (386 || arm || mips || mipsle)

package cmd

import (
	"fmt"
	"math"

	"golang.org/x/sys/unix"
)

func timevalOf(sec, usec int64) (unix.Timeval, error) {
	if !fitsInt32(sec) || !fitsInt32(usec) {
		return unix.Timeval{}, fmt.Errorf("timeval {%d, %d} does not fit a 32-bit time_t", sec, usec)
	}
	return unix.Timeval{Sec: int32(sec), Usec: int32(usec)}, nil
}

func timespecOf(sec, nsec int64) (unix.Timespec, error) {
	if !fitsInt32(sec) || !fitsInt32(nsec) {
		return unix.Timespec{}, fmt.Errorf("timespec {%d, %d} does not fit a 32-bit time_t", sec, nsec)
	}
	return unix.Timespec{Sec: int32(sec), Nsec: int32(nsec)}, nil
}

func fitsInt32(v int64) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}
