package simtime

import (
	"fmt"
	"math"
	"math/bits"
	"time"
)

const (
	// SimulationStartSec is the emulated Unix time, in seconds, at which every
	// simulation begins: 2000-01-01T00:00:00Z.
	SimulationStartSec uint64 = 946_684_800

	// EmulatedInvalid is the raw encoding of "no emulated time".
	EmulatedInvalid uint64 = math.MaxUint64
	// EmulatedMaxRaw is the last representable emulated instant.
	EmulatedMaxRaw uint64 = math.MaxUint64 - 1
)

// EmulatedTime is an instant on the emulated wall clock, in nanoseconds since
// the Unix epoch. This is what a simulated application sees as "now".
type EmulatedTime struct {
	v uint64
}

var (
	UnixEpoch       = EmulatedTime{}
	SimulationStart = EmulatedTime{v: SimulationStartSec * OneSecond}
	EmulatedMax     = EmulatedTime{v: EmulatedMaxRaw}
)

// EmulatedFromRaw decodes a raw emulated instant; EmulatedInvalid reports
// false.
func EmulatedFromRaw(raw uint64) (EmulatedTime, bool) {
	if raw == EmulatedInvalid || raw > EmulatedMaxRaw {
		return EmulatedTime{}, false
	}
	return EmulatedTime{v: raw}, true
}

// EmulatedToRaw is the inverse of EmulatedFromRaw.
func EmulatedToRaw(e EmulatedTime, ok bool) uint64 {
	if !ok {
		return EmulatedInvalid
	}
	return e.v
}

// EmulatedFromAbsSimtime maps a simulation time onto the emulated clock.
// Max maps onto EmulatedMax, so this never overflows.
func EmulatedFromAbsSimtime(t SimulationTime) EmulatedTime {
	return EmulatedTime{v: SimulationStart.v + t.v}
}

// ToAbsSimtime is the inverse of EmulatedFromAbsSimtime. Instants before
// SimulationStart report false.
func (e EmulatedTime) ToAbsSimtime() (SimulationTime, bool) {
	if e.v < SimulationStart.v {
		return SimulationTime{}, false
	}
	return FromRaw(e.v - SimulationStart.v)
}

func (e EmulatedTime) Raw() uint64 { return e.v }

// CheckedAdd returns e+d, or false past EmulatedMax.
func (e EmulatedTime) CheckedAdd(d SimulationTime) (EmulatedTime, bool) {
	sum, carry := bits.Add64(e.v, d.v, 0)
	if carry != 0 {
		return EmulatedTime{}, false
	}
	return EmulatedFromRaw(sum)
}

// CheckedSub returns e-d, or false before the Unix epoch.
func (e EmulatedTime) CheckedSub(d SimulationTime) (EmulatedTime, bool) {
	if d.v > e.v {
		return EmulatedTime{}, false
	}
	return EmulatedTime{v: e.v - d.v}, true
}

// CheckedDurationSince returns the time elapsed from earlier to e. It reports
// false if earlier is after e or the gap exceeds Max.
func (e EmulatedTime) CheckedDurationSince(earlier EmulatedTime) (SimulationTime, bool) {
	if earlier.v > e.v {
		return SimulationTime{}, false
	}
	return FromRaw(e.v - earlier.v)
}

// DurationSince is CheckedDurationSince for callers that know earlier is not
// after e.
func (e EmulatedTime) DurationSince(earlier EmulatedTime) SimulationTime {
	d, ok := e.CheckedDurationSince(earlier)
	if !ok {
		panic(fmt.Sprintf("simtime: duration from %v to %v is not representable", earlier, e))
	}
	return d
}

// SaturatingDurationSince clamps DurationSince into [Zero, Max].
func (e EmulatedTime) SaturatingDurationSince(earlier EmulatedTime) SimulationTime {
	if earlier.v > e.v {
		return Zero
	}
	if d, ok := FromRaw(e.v - earlier.v); ok {
		return d
	}
	return Max
}

// SinceUnixEpoch returns e as a Duration since the Unix epoch.
func (e EmulatedTime) SinceUnixEpoch() Duration {
	return DurationFromNanos(e.v)
}

// UnixTime returns e as a UTC time.Time.
func (e EmulatedTime) UnixTime() time.Time {
	return time.Unix(int64(e.v/OneSecond), int64(e.v%OneSecond)).UTC()
}

func (e EmulatedTime) Compare(o EmulatedTime) int {
	switch {
	case e.v < o.v:
		return -1
	case e.v > o.v:
		return 1
	}
	return 0
}

func (e EmulatedTime) Before(o EmulatedTime) bool { return e.v < o.v }

func (e EmulatedTime) After(o EmulatedTime) bool { return e.v > o.v }

func (e EmulatedTime) String() string {
	return e.UnixTime().Format(time.RFC3339Nano)
}
