//go:build linux && !(386 || arm || mips || mipsle)

package cmd

import "golang.org/x/sys/unix"

func timevalOf(sec, usec int64) (unix.Timeval, error) {
	return unix.Timeval{Sec: sec, Usec: usec}, nil
}

func timespecOf(sec, nsec int64) (unix.Timespec, error) {
	return unix.Timespec{Sec: sec, Nsec: nsec}, nil
}
