//go:build linux

package host

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/hostsim/hostsim/sim/descriptor"
	"github.com/hostsim/hostsim/sim/syscalls"
	"github.com/hostsim/hostsim/sim/trace"
)

// Clock IDs a host asks for. The last one is unsupported, so some
// clock_gettime calls fail with EINVAL the way a real kernel would answer.
var clockIDs = []int32{
	unix.CLOCK_REALTIME,
	unix.CLOCK_MONOTONIC,
	unix.CLOCK_BOOTTIME,
	unix.CLOCK_PROCESS_CPUTIME_ID,
}

// Flag sets written with F_SETFL. The last one carries O_CREAT, which is not
// a status flag.
var setflValues = []int{
	0,
	unix.O_NONBLOCK,
	unix.O_APPEND | unix.O_NONBLOCK,
	unix.O_NOATIME,
	unix.O_CREAT,
}

// closedFD is never registered, so fcntl on it fails with EBADF.
const closedFD int32 = 64

// issue serves one syscall and describes the result.
func (h *Host) issue(name string) trace.SyscallRecord {
	switch name {
	case syscalls.NameClockGettime:
		id := clockIDs[h.rng.Intn(len(clockIDs))]
		ts, err := h.handler.ClockGettime(id)
		if err != nil {
			return failed(name, err, fmt.Sprintf("clock=%d", id))
		}
		return trace.SyscallRecord{Syscall: name, Detail: fmt.Sprintf("clock=%d ts=%d.%09d", id, ts.Sec, ts.Nsec)}

	case syscalls.NameGettimeofday:
		tv, err := h.handler.Gettimeofday()
		if err != nil {
			return failed(name, err, "")
		}
		return trace.SyscallRecord{Syscall: name, Detail: fmt.Sprintf("tv=%d.%06d", tv.Sec, tv.Usec)}

	case syscalls.NameTime:
		return trace.SyscallRecord{Syscall: name, Return: h.handler.Time()}

	case syscalls.NameSysinfo:
		info := h.handler.Sysinfo()
		return trace.SyscallRecord{Syscall: name, Detail: fmt.Sprintf("uptime=%d procs=%d", info.Uptime, info.Procs)}

	case syscalls.NameFcntl:
		return h.issueFcntl()

	default:
		return failed(name, unix.ENOSYS, "")
	}
}

// issueFcntl picks a descriptor (sometimes a closed one) and reads or writes
// its status flags.
func (h *Host) issueFcntl() trace.SyscallRecord {
	fds := h.table.FDs()
	fd := closedFD
	if n := h.rng.Intn(len(fds) + 1); n < len(fds) {
		fd = fds[n]
	}

	cmd, arg := unix.F_GETFL, 0
	if h.rng.Intn(2) == 1 {
		cmd, arg = unix.F_SETFL, setflValues[h.rng.Intn(len(setflValues))]
	}

	before := h.legacy.calls
	ret, err := h.handler.Dispatch(syscalls.Args{
		Number: unix.SYS_FCNTL,
		Regs:   [6]syscalls.Reg{syscalls.Reg(fd), syscalls.Reg(cmd), syscalls.Reg(arg)},
	})
	detail := fmt.Sprintf("fd=%d cmd=%d arg=%#x", fd, cmd, arg)
	if err != nil {
		return failed(syscalls.NameFcntl, err, detail)
	}
	rec := trace.SyscallRecord{
		Syscall:   syscalls.NameFcntl,
		Return:    int64(ret),
		Detail:    detail,
		Forwarded: h.legacy.calls != before,
	}
	if cmd == unix.F_GETFL && !rec.Forwarded {
		rec.Detail += " flags=" + descriptor.FileFlags(ret).String()
	}
	return rec
}

// failed records a syscall that returned -errno.
func failed(name string, err error, detail string) trace.SyscallRecord {
	rec := trace.SyscallRecord{Syscall: name, Return: -1, Detail: detail}
	var errno unix.Errno
	if errors.As(err, &errno) {
		rec.Return = -int64(errno)
		rec.Errno = unix.ErrnoName(errno)
	} else {
		rec.Errno = err.Error()
	}
	return rec
}
