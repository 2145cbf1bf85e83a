//go:build linux

package syscalls

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Dispatch routes a syscall whose arguments and result fit in registers.
// Syscalls that write through a user pointer (sysinfo, clock_gettime,
// gettimeofday) are served by their typed methods, since the caller owns
// the memory. Anything not handled here goes to the legacy handler.
func (h *Handler) Dispatch(args Args) (Reg, error) {
	switch args.Number {
	case unix.SYS_FCNTL:
		return h.Fcntl(args)
	case fcntl64Number:
		return h.Fcntl64(args)
	default:
		logrus.Debugf("syscall %d not handled natively, forwarding", args.Number)
		return h.legacy.Dispatch(args)
	}
}
