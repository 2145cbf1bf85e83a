//go:build linux

package simtime

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// DurationFromTimespec validates ts and converts it. Negative fields and
// tv_nsec of one second or more fail with ErrInvalidField.
func DurationFromTimespec(ts unix.Timespec) (Duration, error) {
	sec, nsec := int64(ts.Sec), int64(ts.Nsec)
	if sec < 0 || nsec < 0 || nsec >= nanosPerSec {
		return Duration{}, fmt.Errorf("%w: timespec{sec: %d, nsec: %d}", ErrInvalidField, sec, nsec)
	}
	return Duration{secs: uint64(sec), nanos: uint32(nsec)}, nil
}

// DurationFromTimeval validates tv and converts it. Negative fields and
// tv_usec of one second or more fail with ErrInvalidField.
func DurationFromTimeval(tv unix.Timeval) (Duration, error) {
	sec, usec := int64(tv.Sec), int64(tv.Usec)
	if sec < 0 || usec < 0 || usec >= microsPerSec {
		return Duration{}, fmt.Errorf("%w: timeval{sec: %d, usec: %d}", ErrInvalidField, sec, usec)
	}
	return Duration{secs: uint64(sec), nanos: uint32(usec) * nanosPerMicro}, nil
}

// TimespecFromDuration fails with ErrOutOfRange if the seconds do not fit
// tv_sec on this platform.
func TimespecFromDuration(d Duration) (unix.Timespec, error) {
	if d.secs > maxTimeT {
		return unix.Timespec{}, fmt.Errorf("%w: %d seconds do not fit tv_sec", ErrOutOfRange, d.secs)
	}
	return makeTimespec(int64(d.secs), int64(d.nanos)), nil
}

// TimevalFromDuration is TimespecFromDuration for timeval. Nanoseconds are
// truncated to microseconds.
func TimevalFromDuration(d Duration) (unix.Timeval, error) {
	if d.secs > maxTimeT {
		return unix.Timeval{}, fmt.Errorf("%w: %d seconds do not fit tv_sec", ErrOutOfRange, d.secs)
	}
	return makeTimeval(int64(d.secs), int64(d.SubsecMicros())), nil
}

// FromTimespec converts a native timespec.
func FromTimespec(ts unix.Timespec) (SimulationTime, error) {
	d, err := DurationFromTimespec(ts)
	if err != nil {
		return SimulationTime{}, err
	}
	return FromDuration(d)
}

// FromTimeval converts a native timeval.
func FromTimeval(tv unix.Timeval) (SimulationTime, error) {
	d, err := DurationFromTimeval(tv)
	if err != nil {
		return SimulationTime{}, err
	}
	return FromDuration(d)
}

// Timespec returns t as a native timespec.
func (t SimulationTime) Timespec() (unix.Timespec, error) {
	return TimespecFromDuration(t.Duration())
}

// Timeval returns t as a native timeval, truncated to microseconds.
func (t SimulationTime) Timeval() (unix.Timeval, error) {
	return TimevalFromDuration(t.Duration())
}
