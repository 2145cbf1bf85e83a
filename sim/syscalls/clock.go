//go:build linux

package syscalls

import (
	"golang.org/x/sys/unix"

	"github.com/hostsim/hostsim/sim/simtime"
)

// ClockGettime reports the emulated time for every supported clock. The
// simulation has no notion of boot time or clock slew, so all of them read
// the same value.
func (h *Handler) ClockGettime(clockID int32) (unix.Timespec, error) {
	switch clockID {
	case unix.CLOCK_REALTIME, unix.CLOCK_REALTIME_COARSE,
		unix.CLOCK_MONOTONIC, unix.CLOCK_MONOTONIC_COARSE, unix.CLOCK_MONOTONIC_RAW,
		unix.CLOCK_BOOTTIME:
	default:
		return unix.Timespec{}, unix.EINVAL
	}
	ts, err := simtime.TimespecFromDuration(h.now().SinceUnixEpoch())
	if err != nil {
		return unix.Timespec{}, unix.EOVERFLOW
	}
	return ts, nil
}

// Gettimeofday reports the emulated time truncated to microseconds.
func (h *Handler) Gettimeofday() (unix.Timeval, error) {
	tv, err := simtime.TimevalFromDuration(h.now().SinceUnixEpoch())
	if err != nil {
		return unix.Timeval{}, unix.EOVERFLOW
	}
	return tv, nil
}

// Time reports the emulated time in whole seconds since the Unix epoch.
func (h *Handler) Time() int64 {
	return int64(h.now().SinceUnixEpoch().Secs())
}
