//go:build linux

package syscalls

import (
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/hostsim/hostsim/sim/descriptor"
)

// Fcntl implements F_GETFL and F_SETFL for descriptors backed by a
// descriptor.File. Legacy descriptors are forwarded as-is.
func (h *Handler) Fcntl(args Args) (Reg, error) {
	fd := int32(args.Regs[0])
	cmd := int32(args.Regs[1])

	desc, err := h.table.Get(fd)
	if err != nil {
		if errors.Is(err, descriptor.ErrNotFound) {
			return 0, unix.EBADF
		}
		return 0, err
	}

	file, ok := desc.File()
	if !ok {
		logrus.Debugf("fcntl: fd %d is a legacy descriptor, forwarding", fd)
		return h.legacy.Dispatch(args)
	}

	switch cmd {
	case unix.F_GETFL:
		return Reg(file.Flags().Bits()), nil
	case unix.F_SETFL:
		flags, ok := descriptor.FileFlagsFromBits(int32(args.Regs[2]))
		if !ok {
			return 0, unix.EINVAL
		}
		file.SetFlags(flags)
		return 0, nil
	default:
		return 0, unix.EINVAL
	}
}

// Fcntl64 takes the same commands as Fcntl.
func (h *Handler) Fcntl64(args Args) (Reg, error) {
	logrus.Tracef("fcntl64 called, forwarding to fcntl handler")
	return h.Fcntl(args)
}
