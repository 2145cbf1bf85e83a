//go:build linux && !(386 || arm || mips || mipsle)

package simtime

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/sys/unix"
)

func TestFromTimeval(t *testing.T) {
	tests := []struct {
		name    string
		tv      unix.Timeval
		want    SimulationTime
		wantErr error
	}{
		{"zero", unix.Timeval{Sec: 0, Usec: 0}, Zero, nil},
		{"one second two micros", unix.Timeval{Sec: 1, Usec: 2}, Second.Add(FromMicros(2)), nil},
		{"just below modulus", unix.Timeval{Sec: 0, Usec: 999_999}, FromMicros(999_999), nil},
		{"max", unix.Timeval{Sec: int64(Max.Secs()), Usec: int64(Max.SubsecMicros())}, FromMicros(Max.Micros()), nil},
		{"at modulus", unix.Timeval{Sec: 0, Usec: 1_000_000}, Zero, ErrInvalidField},
		{"negative usec", unix.Timeval{Sec: 0, Usec: -1}, Zero, ErrInvalidField},
		{"negative sec", unix.Timeval{Sec: -1, Usec: 0}, Zero, ErrInvalidField},
		{"both negative", unix.Timeval{Sec: -1, Usec: -1}, Zero, ErrInvalidField},
		{"out of range", unix.Timeval{Sec: math.MaxInt64, Usec: 999_999}, Zero, ErrOutOfRange},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FromTimeval(tc.tv)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("FromTimeval(%+v) err = %v, want %v", tc.tv, err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromTimeval(%+v): %v", tc.tv, err)
			}
			if got != tc.want {
				t.Errorf("FromTimeval(%+v) = %v, want %v", tc.tv, got, tc.want)
			}
		})
	}
}

func TestToTimeval(t *testing.T) {
	tests := []struct {
		name string
		in   SimulationTime
		want unix.Timeval
	}{
		{"zero", Zero, unix.Timeval{Sec: 0, Usec: 0}},
		{"one second two micros", Second.Add(FromMicros(2)), unix.Timeval{Sec: 1, Usec: 2}},
		{"truncates nanos", Second.Add(FromNanos(2_999)), unix.Timeval{Sec: 1, Usec: 2}},
		{"max", Max, unix.Timeval{Sec: int64(Max.Secs()), Usec: int64(Max.SubsecMicros())}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.in.Timeval()
			if err != nil {
				t.Fatalf("Timeval(%v): %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("Timeval(%v) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestTimevalRoundTrip(t *testing.T) {
	// GIVEN the time-interval {sec: 1, usec: 2}
	tv := unix.Timeval{Sec: 1, Usec: 2}

	// WHEN converting to simulation time and back
	st, err := FromTimeval(tv)
	if err != nil {
		t.Fatal(err)
	}
	back, err := st.Timeval()
	if err != nil {
		t.Fatal(err)
	}

	// THEN the value is one second plus two microseconds and the struct survives
	if st != Second.Add(Microsecond.Mul(2)) {
		t.Errorf("FromTimeval = %v, want 1.000002s", st)
	}
	if back != tv {
		t.Errorf("round trip = %+v, want %+v", back, tv)
	}
}

func TestFromTimespec(t *testing.T) {
	tests := []struct {
		name    string
		ts      unix.Timespec
		want    SimulationTime
		wantErr error
	}{
		{"zero", unix.Timespec{Sec: 0, Nsec: 0}, Zero, nil},
		{"one second two nanos", unix.Timespec{Sec: 1, Nsec: 2}, Second.Add(FromNanos(2)), nil},
		{"just below modulus", unix.Timespec{Sec: 0, Nsec: 999_999_999}, FromNanos(999_999_999), nil},
		{"whole seconds of max", unix.Timespec{Sec: int64(MaxRaw / OneSecond), Nsec: 0}, FromSecs(MaxRaw / OneSecond), nil},
		{"at modulus", unix.Timespec{Sec: 0, Nsec: 1_000_000_000}, Zero, ErrInvalidField},
		{"negative nsec", unix.Timespec{Sec: 0, Nsec: -1}, Zero, ErrInvalidField},
		{"negative sec", unix.Timespec{Sec: -1, Nsec: 0}, Zero, ErrInvalidField},
		{"both negative", unix.Timespec{Sec: -1, Nsec: -1}, Zero, ErrInvalidField},
		{"out of range", unix.Timespec{Sec: math.MaxInt64, Nsec: 999_999_999}, Zero, ErrOutOfRange},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FromTimespec(tc.ts)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("FromTimespec(%+v) err = %v, want %v", tc.ts, err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromTimespec(%+v): %v", tc.ts, err)
			}
			if got != tc.want {
				t.Errorf("FromTimespec(%+v) = %v, want %v", tc.ts, got, tc.want)
			}
		})
	}
}

func TestToTimespec(t *testing.T) {
	tests := []struct {
		name string
		in   SimulationTime
		want unix.Timespec
	}{
		{"zero", Zero, unix.Timespec{Sec: 0, Nsec: 0}},
		{"one second two nanos", FromSecs(1).Add(FromNanos(2)), unix.Timespec{Sec: 1, Nsec: 2}},
		{"max", Max, unix.Timespec{Sec: int64(Max.Secs()), Nsec: int64(Max.SubsecNanos())}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.in.Timespec()
			if err != nil {
				t.Fatalf("Timespec(%v): %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("Timespec(%v) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestTimespecFromDuration_SecondsOverflow(t *testing.T) {
	d := DurationFromSecs(uint64(math.MaxInt64) + 1)
	if _, err := TimespecFromDuration(d); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("TimespecFromDuration err = %v, want ErrOutOfRange", err)
	}
	if _, err := TimevalFromDuration(d); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("TimevalFromDuration err = %v, want ErrOutOfRange", err)
	}
}
