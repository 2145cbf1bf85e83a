package simtime

import (
	"fmt"
	"math"
	"math/bits"
	"time"
)

const (
	nanosPerSec   = 1_000_000_000
	microsPerSec  = 1_000_000
	millisPerSec  = 1_000
	nanosPerMicro = 1_000
	nanosPerMilli = 1_000_000
)

// Duration is a non-negative wall-clock interval with a whole-seconds part and
// a nanosecond remainder (always below one second).
//
// time.Duration is an int64 nanosecond count and tops out near 292 years,
// short of Max, so conversions that must be lossless go through Duration.
type Duration struct {
	secs  uint64
	nanos uint32
}

// NewDuration builds a Duration, carrying whole seconds out of nanos. It
// reports false if the seconds field overflows.
func NewDuration(secs uint64, nanos uint32) (Duration, bool) {
	s, carry := bits.Add64(secs, uint64(nanos/nanosPerSec), 0)
	if carry != 0 {
		return Duration{}, false
	}
	return Duration{secs: s, nanos: nanos % nanosPerSec}, true
}

func DurationFromSecs(secs uint64) Duration {
	return Duration{secs: secs}
}

func DurationFromMillis(ms uint64) Duration {
	return Duration{secs: ms / millisPerSec, nanos: uint32(ms%millisPerSec) * nanosPerMilli}
}

func DurationFromMicros(us uint64) Duration {
	return Duration{secs: us / microsPerSec, nanos: uint32(us%microsPerSec) * nanosPerMicro}
}

func DurationFromNanos(ns uint64) Duration {
	return Duration{secs: ns / nanosPerSec, nanos: uint32(ns % nanosPerSec)}
}

// DurationFromStd converts a time.Duration. Negative durations report false.
func DurationFromStd(d time.Duration) (Duration, bool) {
	if d < 0 {
		return Duration{}, false
	}
	return DurationFromNanos(uint64(d)), true
}

// Std converts d to a time.Duration, reporting false if it does not fit.
func (d Duration) Std() (time.Duration, bool) {
	hi, lo := d.Nanos128()
	if hi != 0 || lo > math.MaxInt64 {
		return 0, false
	}
	return time.Duration(lo), true
}

func (d Duration) Secs() uint64 { return d.secs }

func (d Duration) SubsecNanos() uint32 { return d.nanos }

func (d Duration) SubsecMicros() uint32 { return d.nanos / nanosPerMicro }

func (d Duration) SubsecMillis() uint32 { return d.nanos / nanosPerMilli }

// Millis returns d in whole milliseconds, saturating at math.MaxUint64.
func (d Duration) Millis() uint64 {
	return saturatingScale(d.secs, millisPerSec, uint64(d.nanos/nanosPerMilli))
}

// Micros returns d in whole microseconds, saturating at math.MaxUint64.
func (d Duration) Micros() uint64 {
	return saturatingScale(d.secs, microsPerSec, uint64(d.nanos/nanosPerMicro))
}

// Nanos128 returns the total nanosecond count of d as a 128-bit value.
func (d Duration) Nanos128() (hi, lo uint64) {
	hi, lo = bits.Mul64(d.secs, nanosPerSec)
	lo, carry := bits.Add64(lo, uint64(d.nanos), 0)
	return hi + carry, lo
}

// CheckedAdd returns d+o, or false if the seconds field overflows.
func (d Duration) CheckedAdd(o Duration) (Duration, bool) {
	secs, carry := bits.Add64(d.secs, o.secs, 0)
	if carry != 0 {
		return Duration{}, false
	}
	// Both remainders are below 1e9, so the sum fits a uint32.
	return NewDuration(secs, d.nanos+o.nanos)
}

func (d Duration) IsZero() bool { return d.secs == 0 && d.nanos == 0 }

func (d Duration) String() string {
	return fmt.Sprintf("%d.%09ds", d.secs, d.nanos)
}

func saturatingScale(secs, perSec, frac uint64) uint64 {
	hi, lo := bits.Mul64(secs, perSec)
	if hi != 0 {
		return math.MaxUint64
	}
	sum, carry := bits.Add64(lo, frac, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}
