package simtime

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestFromRaw_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		raw  uint64
	}{
		{"zero", 0},
		{"one nanosecond", OneNanosecond},
		{"one second", OneSecond},
		{"one hour plus one nanosecond", OneHour + 1},
		{"max", MaxRaw},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ToRaw(FromRaw(tc.raw))
			if got != tc.raw {
				t.Errorf("ToRaw(FromRaw(%d)) = %d, want %d", tc.raw, got, tc.raw)
			}
		})
	}
}

func TestFromRaw_Sentinel(t *testing.T) {
	if got := ToRaw(Zero, false); got != Invalid {
		t.Errorf("ToRaw(absent) = %d, want Invalid", got)
	}
	if _, ok := FromRaw(Invalid); ok {
		t.Error("FromRaw(Invalid) reported a value")
	}
	if _, ok := FromRaw(MaxRaw + 1); ok {
		t.Error("FromRaw(MaxRaw+1) reported a value")
	}
	got, ok := FromRaw(MaxRaw)
	if !ok || got != Max {
		t.Errorf("FromRaw(MaxRaw) = %v, %v; want %v, true", got, ok, Max)
	}
	if ToRaw(Max, true) == Invalid {
		t.Error("Max aliases the sentinel")
	}
}

func TestMaxRaw_DerivedFromEmulatedClock(t *testing.T) {
	// GIVEN the emulated clock bound and the simulation start offset
	want := EmulatedMaxRaw - SimulationStartSec*OneSecond

	// THEN MaxRaw is derived from them and stays strictly below the bound
	if MaxRaw != want {
		t.Errorf("MaxRaw = %d, want %d", MaxRaw, want)
	}
	if MaxRaw >= EmulatedMaxRaw {
		t.Errorf("MaxRaw %d not below EmulatedMaxRaw %d", MaxRaw, EmulatedMaxRaw)
	}
}

func TestFromRaw_FiveMinutesSevenMillis(t *testing.T) {
	raw := 5*OneMinute + 7*OneMillisecond

	st, ok := FromRaw(raw)
	if !ok {
		t.Fatalf("FromRaw(%d) reported no value", raw)
	}
	d := st.Duration()
	if d.Secs() != 300 {
		t.Errorf("Secs() = %d, want 300", d.Secs())
	}
	if d.Millis() != 300_007 {
		t.Errorf("Millis() = %d, want 300007", d.Millis())
	}

	back, err := FromDuration(d)
	if err != nil {
		t.Fatalf("FromDuration(%v): %v", d, err)
	}
	if back != st {
		t.Errorf("FromDuration round trip = %v, want %v", back, st)
	}

	built := FromSecs(5 * 60).Add(FromMillis(7))
	if ToRaw(built, true) != raw {
		t.Errorf("FromSecs(300)+FromMillis(7) = %d, want %d", built.Raw(), raw)
	}
}

func TestAccessors(t *testing.T) {
	st := FromSecs(3).Add(FromMillis(45)).Add(FromMicros(6)).Add(FromNanos(7))

	checks := []struct {
		name string
		got  uint64
		want uint64
	}{
		{"Secs", st.Secs(), 3},
		{"Millis", st.Millis(), 3_045},
		{"Micros", st.Micros(), 3_045_006},
		{"Nanos", st.Nanos(), 3_045_006_007},
		{"SubsecMillis", uint64(st.SubsecMillis()), 45},
		{"SubsecMicros", uint64(st.SubsecMicros()), 45_006},
		{"SubsecNanos", uint64(st.SubsecNanos()), 45_006_007},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s() = %d, want %d", c.name, c.got, c.want)
		}
	}
	if got := st.String(); got != "3.045006007s" {
		t.Errorf("String() = %q, want %q", got, "3.045006007s")
	}
}

func TestCheckedAdd(t *testing.T) {
	if _, ok := Max.CheckedAdd(Nanosecond); ok {
		t.Error("Max + 1ns should not be representable")
	}
	// Max + Max overflows the uint64 itself.
	if _, ok := Max.CheckedAdd(Max); ok {
		t.Error("Max + Max should not be representable")
	}
	got, ok := Max.CheckedAdd(Zero)
	if !ok || got != Max {
		t.Errorf("Max + 0 = %v, %v; want Max, true", got, ok)
	}
	got, ok = Second.CheckedAdd(Millisecond)
	if !ok || got.Raw() != OneSecond+OneMillisecond {
		t.Errorf("1s + 1ms = %v, %v", got, ok)
	}
}

func TestCheckedMul_Overflow(t *testing.T) {
	// GIVEN n such that n seconds exceeds Max
	huge := MaxRaw/OneSecond + 1

	// THEN the checked form reports absence
	if _, ok := Second.CheckedMul(huge); ok {
		t.Errorf("Second * %d should not be representable", huge)
	}
	if _, ok := TryFromSecs(huge); ok {
		t.Errorf("TryFromSecs(%d) should not be representable", huge)
	}
	// AND the panicking forms treat it as a contract violation
	assertPanics(t, "FromSecs", func() { FromSecs(huge) })
	assertPanics(t, "Mul", func() { Second.Mul(huge) })
	assertPanics(t, "Add", func() { Max.Add(Nanosecond) })

	// AND a product overflowing the uint64 itself is also rejected
	if _, ok := Second.CheckedMul(math.MaxUint64); ok {
		t.Error("Second * MaxUint64 should not be representable")
	}

	largest, ok := TryFromSecs(huge - 1)
	if !ok || largest.Secs() != huge-1 {
		t.Errorf("TryFromSecs(%d) = %v, %v", huge-1, largest, ok)
	}
}

func TestTryFromUnits(t *testing.T) {
	tests := []struct {
		name string
		fn   func(uint64) (SimulationTime, bool)
		n    uint64
		want uint64
	}{
		{"millis", TryFromMillis, 7, 7 * OneMillisecond},
		{"micros", TryFromMicros, 2, 2 * OneMicrosecond},
		{"nanos", TryFromNanos, MaxRaw, MaxRaw},
	}
	for _, tc := range tests {
		got, ok := tc.fn(tc.n)
		if !ok || got.Raw() != tc.want {
			t.Errorf("%s(%d) = %v, %v; want %d", tc.name, tc.n, got, ok, tc.want)
		}
	}
	if _, ok := TryFromNanos(MaxRaw + 1); ok {
		t.Error("TryFromNanos(MaxRaw+1) should not be representable")
	}
}

func TestCheckedSub(t *testing.T) {
	if _, ok := Millisecond.CheckedSub(Second); ok {
		t.Error("1ms - 1s should not be representable")
	}
	if got := Millisecond.SaturatingSub(Second); got != Zero {
		t.Errorf("SaturatingSub = %v, want Zero", got)
	}
	got, ok := Second.CheckedSub(Millisecond)
	if !ok || got.Millis() != 999 {
		t.Errorf("1s - 1ms = %v, %v", got, ok)
	}
}

func TestOrdering(t *testing.T) {
	if !Millisecond.Before(Second) || !Second.After(Millisecond) {
		t.Error("Millisecond should order before Second")
	}
	if Second.Compare(Second) != 0 || Zero.Compare(Max) != -1 || Max.Compare(Zero) != 1 {
		t.Error("Compare disagrees with the underlying integer order")
	}
}

func TestFromDuration_Range(t *testing.T) {
	// Max is exactly representable both ways
	got, err := FromDuration(Max.Duration())
	if err != nil || got != Max {
		t.Errorf("FromDuration(Max.Duration()) = %v, %v", got, err)
	}

	tooBig, ok := Max.Duration().CheckedAdd(DurationFromNanos(1))
	if !ok {
		t.Fatal("Max.Duration() + 1ns overflowed Duration")
	}
	if _, err := FromDuration(tooBig); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("FromDuration(Max+1ns) err = %v, want ErrOutOfRange", err)
	}
	if _, err := FromDuration(DurationFromSecs(math.MaxUint64)); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("FromDuration(MaxUint64 s) err = %v, want ErrOutOfRange", err)
	}
}

func TestStdDurationInterop(t *testing.T) {
	st, err := FromStd(1500 * time.Millisecond)
	if err != nil || st.Millis() != 1500 {
		t.Errorf("FromStd(1.5s) = %v, %v", st, err)
	}
	if _, err := FromStd(-time.Nanosecond); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("FromStd(-1ns) err = %v, want ErrOutOfRange", err)
	}
	if d, ok := Second.Std(); !ok || d != time.Second {
		t.Errorf("Second.Std() = %v, %v", d, ok)
	}
	if _, ok := Max.Std(); ok {
		t.Error("Max does not fit a time.Duration")
	}
}

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s did not panic", name)
		}
	}()
	fn()
}
