package simtime

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrOutOfRange reports a value that does not fit the target
	// representation.
	ErrOutOfRange = errors.New("time value out of range")
	// ErrInvalidField reports a native time structure with a negative field
	// or a sub-second field of one second or more.
	ErrInvalidField = errors.New("invalid time structure field")
)

// Duration returns t as a wall-clock Duration. The conversion is exact.
func (t SimulationTime) Duration() Duration {
	return DurationFromNanos(t.v)
}

// FromDuration converts d, failing with ErrOutOfRange if it exceeds Max.
func FromDuration(d Duration) (SimulationTime, error) {
	hi, lo := d.Nanos128()
	if hi != 0 || lo > MaxRaw {
		return SimulationTime{}, fmt.Errorf("%w: duration %v exceeds %v", ErrOutOfRange, d, Max)
	}
	return SimulationTime{v: lo}, nil
}

// FromStd converts a time.Duration. Negative durations fail with
// ErrOutOfRange.
func FromStd(d time.Duration) (SimulationTime, error) {
	wall, ok := DurationFromStd(d)
	if !ok {
		return SimulationTime{}, fmt.Errorf("%w: negative duration %v", ErrOutOfRange, d)
	}
	return FromDuration(wall)
}

// Std returns t as a time.Duration, or false beyond roughly 292 years.
func (t SimulationTime) Std() (time.Duration, bool) {
	return t.Duration().Std()
}
