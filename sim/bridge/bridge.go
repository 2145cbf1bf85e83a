//go:build linux

// Package bridge performs simulation-time conversions on behalf of the
// legacy C syscall handlers. Everything here works on the raw uint64
// encoding, where simtime.Invalid means "no time", and reports failure as a
// sentinel or a false return. Nothing panics across this boundary.
//
// cmd/libsimtime exports these functions with a C calling convention.
package bridge

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/hostsim/hostsim/sim/simtime"
)

// FromTimeval converts tv to a raw simulation time, or simtime.Invalid.
func FromTimeval(tv unix.Timeval) (raw uint64) {
	raw = simtime.Invalid
	defer guard("FromTimeval", func() { raw = simtime.Invalid })

	st, err := simtime.FromTimeval(tv)
	if err != nil {
		logrus.Debugf("bridge: timeval %+v: %v", tv, err)
		return simtime.Invalid
	}
	return simtime.ToRaw(st, true)
}

// FromTimespec converts ts to a raw simulation time, or simtime.Invalid.
func FromTimespec(ts unix.Timespec) (raw uint64) {
	raw = simtime.Invalid
	defer guard("FromTimespec", func() { raw = simtime.Invalid })

	st, err := simtime.FromTimespec(ts)
	if err != nil {
		logrus.Debugf("bridge: timespec %+v: %v", ts, err)
		return simtime.Invalid
	}
	return simtime.ToRaw(st, true)
}

// ToTimeval writes raw into *out and reports true. On failure, including a
// nil out or the Invalid sentinel, *out is left untouched.
func ToTimeval(raw uint64, out *unix.Timeval) (ok bool) {
	defer guard("ToTimeval", func() { ok = false })

	if out == nil {
		return false
	}
	st, valid := simtime.FromRaw(raw)
	if !valid {
		return false
	}
	tv, err := st.Timeval()
	if err != nil {
		logrus.Debugf("bridge: raw %d to timeval: %v", raw, err)
		return false
	}
	*out = tv
	return true
}

// ToTimespec writes raw into *out and reports true. On failure, including a
// nil out or the Invalid sentinel, *out is left untouched.
func ToTimespec(raw uint64, out *unix.Timespec) (ok bool) {
	defer guard("ToTimespec", func() { ok = false })

	if out == nil {
		return false
	}
	st, valid := simtime.FromRaw(raw)
	if !valid {
		return false
	}
	ts, err := st.Timespec()
	if err != nil {
		logrus.Debugf("bridge: raw %d to timespec: %v", raw, err)
		return false
	}
	*out = ts
	return true
}

// guard turns a panic into the caller's failure value. The conversions
// above do not panic on any input; this keeps a future bug from unwinding
// into C.
func guard(op string, fail func()) {
	if r := recover(); r != nil {
		logrus.Warnf("bridge: %s recovered from panic: %v", op, r)
		fail()
	}
}
