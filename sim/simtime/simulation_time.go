// Package simtime defines the simulator's notion of time.
//
// SimulationTime is a nanosecond count since the start of the simulation. It
// is the canonical value every time-related syscall result is fabricated
// from. EmulatedTime is the absolute instant a simulated application observes
// (nanoseconds since the Unix epoch); SimulationTime covers a bounded
// sub-range of it starting at SimulationStart.
//
// Values are plain data: they can be copied, compared with ==, and used from
// any goroutine without synchronization.
package simtime

import (
	"fmt"
	"math"
	"math/bits"
)

// Raw tick units. A raw encoding is a uint64 tick count; Invalid is reserved
// and never denotes a valid instant.
const (
	OneNanosecond  uint64 = 1
	OneMicrosecond uint64 = 1_000
	OneMillisecond uint64 = 1_000_000
	OneSecond      uint64 = 1_000_000_000
	OneMinute      uint64 = 60 * OneSecond
	OneHour        uint64 = 60 * OneMinute

	// Invalid is the raw encoding of "no time".
	Invalid uint64 = math.MaxUint64

	MinRaw uint64 = 0
	// MaxRaw is the largest simulation time that still maps onto the
	// emulated clock once SimulationStart is added.
	MaxRaw uint64 = EmulatedMaxRaw - SimulationStartSec*OneSecond
)

func init() {
	// Conversions to and from Duration treat one tick as one nanosecond.
	if OneNanosecond != 1 {
		panic("simtime: tick unit must be one nanosecond")
	}
	if MaxRaw >= EmulatedMaxRaw || MaxRaw == Invalid {
		panic("simtime: MaxRaw must lie strictly inside the emulated clock range")
	}
}

// SimulationTime is a span of simulated time, or an instant measured from
// the start of the simulation. The zero value is Zero.
type SimulationTime struct {
	v uint64
}

var (
	Zero        = SimulationTime{}
	Nanosecond  = SimulationTime{v: OneNanosecond}
	Microsecond = SimulationTime{v: OneMicrosecond}
	Millisecond = SimulationTime{v: OneMillisecond}
	Second      = SimulationTime{v: OneSecond}
	Minute      = SimulationTime{v: OneMinute}
	Hour        = SimulationTime{v: OneHour}
	Max         = SimulationTime{v: MaxRaw}
)

// FromRaw decodes a raw tick count. It reports false for Invalid and for any
// count beyond MaxRaw.
func FromRaw(raw uint64) (SimulationTime, bool) {
	if raw == Invalid {
		return SimulationTime{}, false
	}
	if raw > MaxRaw {
		return SimulationTime{}, false
	}
	return SimulationTime{v: raw / OneNanosecond}, true
}

// ToRaw is the inverse of FromRaw: ok == false encodes as Invalid.
//
//	raw := simtime.ToRaw(simtime.FromRaw(x))
func ToRaw(t SimulationTime, ok bool) uint64 {
	if !ok {
		return Invalid
	}
	return t.v
}

// Raw returns the raw tick count of t.
func (t SimulationTime) Raw() uint64 {
	return t.v
}

// Secs returns t truncated to whole seconds.
func (t SimulationTime) Secs() uint64 {
	return t.v / OneSecond
}

// Millis returns t truncated to whole milliseconds.
func (t SimulationTime) Millis() uint64 {
	return t.v / OneMillisecond
}

// Micros returns t truncated to whole microseconds.
func (t SimulationTime) Micros() uint64 {
	return t.v / OneMicrosecond
}

// Nanos returns t in nanoseconds.
func (t SimulationTime) Nanos() uint64 {
	return t.v / OneNanosecond
}

// SubsecMillis returns the fractional part of t in whole milliseconds.
func (t SimulationTime) SubsecMillis() uint32 {
	return uint32(t.Millis() % 1_000)
}

// SubsecMicros returns the fractional part of t in whole microseconds.
func (t SimulationTime) SubsecMicros() uint32 {
	return uint32(t.Micros() % 1_000_000)
}

// SubsecNanos returns the fractional part of t in nanoseconds.
func (t SimulationTime) SubsecNanos() uint32 {
	return uint32(t.Nanos() % 1_000_000_000)
}

// Compare returns -1, 0 or +1 depending on whether t is less than, equal to,
// or greater than u.
func (t SimulationTime) Compare(u SimulationTime) int {
	switch {
	case t.v < u.v:
		return -1
	case t.v > u.v:
		return 1
	}
	return 0
}

func (t SimulationTime) Before(u SimulationTime) bool { return t.v < u.v }

func (t SimulationTime) After(u SimulationTime) bool { return t.v > u.v }

func (t SimulationTime) IsZero() bool { return t.v == 0 }

// String formats t as seconds with nanosecond precision, e.g. "300.007000000s".
func (t SimulationTime) String() string {
	return fmt.Sprintf("%d.%09ds", t.Secs(), t.SubsecNanos())
}

// === Checked arithmetic ===

// CheckedAdd returns t+u, or false if the sum overflows or exceeds Max.
func (t SimulationTime) CheckedAdd(u SimulationTime) (SimulationTime, bool) {
	sum, carry := bits.Add64(t.v, u.v, 0)
	if carry != 0 {
		return SimulationTime{}, false
	}
	return FromRaw(sum)
}

// CheckedMul returns t*n, or false if the product overflows or exceeds Max.
func (t SimulationTime) CheckedMul(n uint64) (SimulationTime, bool) {
	hi, lo := bits.Mul64(t.v, n)
	if hi != 0 {
		return SimulationTime{}, false
	}
	return FromRaw(lo)
}

// CheckedSub returns t-u, or false if u is after t.
func (t SimulationTime) CheckedSub(u SimulationTime) (SimulationTime, bool) {
	if u.v > t.v {
		return SimulationTime{}, false
	}
	return SimulationTime{v: t.v - u.v}, true
}

// SaturatingSub returns t-u, or Zero if u is after t.
func (t SimulationTime) SaturatingSub(u SimulationTime) SimulationTime {
	if d, ok := t.CheckedSub(u); ok {
		return d
	}
	return Zero
}

// Add returns t+u. The caller guarantees the sum is in range; overflow panics.
func (t SimulationTime) Add(u SimulationTime) SimulationTime {
	sum, ok := t.CheckedAdd(u)
	if !ok {
		panic(fmt.Sprintf("simtime: %v + %v overflows", t, u))
	}
	return sum
}

// Mul returns t*n. The caller guarantees the product is in range; overflow
// panics.
func (t SimulationTime) Mul(n uint64) SimulationTime {
	product, ok := t.CheckedMul(n)
	if !ok {
		panic(fmt.Sprintf("simtime: %v * %d overflows", t, n))
	}
	return product
}

func TryFromSecs(n uint64) (SimulationTime, bool) { return Second.CheckedMul(n) }

func TryFromMillis(n uint64) (SimulationTime, bool) { return Millisecond.CheckedMul(n) }

func TryFromMicros(n uint64) (SimulationTime, bool) { return Microsecond.CheckedMul(n) }

func TryFromNanos(n uint64) (SimulationTime, bool) { return Nanosecond.CheckedMul(n) }

// FromSecs is TryFromSecs for callers that know n is in range.
func FromSecs(n uint64) SimulationTime {
	t, ok := TryFromSecs(n)
	if !ok {
		panic(outOfRange(n, "seconds"))
	}
	return t
}

// FromMillis is TryFromMillis for callers that know n is in range.
func FromMillis(n uint64) SimulationTime {
	t, ok := TryFromMillis(n)
	if !ok {
		panic(outOfRange(n, "milliseconds"))
	}
	return t
}

// FromMicros is TryFromMicros for callers that know n is in range.
func FromMicros(n uint64) SimulationTime {
	t, ok := TryFromMicros(n)
	if !ok {
		panic(outOfRange(n, "microseconds"))
	}
	return t
}

// FromNanos is TryFromNanos for callers that know n is in range.
func FromNanos(n uint64) SimulationTime {
	t, ok := TryFromNanos(n)
	if !ok {
		panic(outOfRange(n, "nanoseconds"))
	}
	return t
}

func outOfRange(n uint64, unit string) string {
	return fmt.Sprintf("simtime: %d %s is out of range", n, unit)
}
