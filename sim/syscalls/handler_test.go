//go:build linux && !(386 || arm || mips || mipsle)

package syscalls

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/hostsim/hostsim/sim/descriptor"
	"github.com/hostsim/hostsim/sim/simtime"
)

type fixedClock struct {
	now simtime.EmulatedTime
	ok  bool
}

func (c *fixedClock) CurrentTime() (simtime.EmulatedTime, bool) { return c.now, c.ok }

type recordingLegacy struct {
	calls []Args
	ret   Reg
}

func (l *recordingLegacy) Dispatch(args Args) (Reg, error) {
	l.calls = append(l.calls, args)
	return l.ret, nil
}

func newTestHandler(t *testing.T, at simtime.SimulationTime) (*Handler, *descriptor.File, *recordingLegacy) {
	t.Helper()
	table := descriptor.NewTable()
	require.NoError(t, table.Register(0, descriptor.NewLegacyDescriptor(100)))
	file := descriptor.NewFile("pipe", descriptor.FlagNonblock)
	require.NoError(t, table.Register(3, descriptor.NewDescriptor(file)))
	legacy := &recordingLegacy{ret: 0o2}
	clock := &fixedClock{now: simtime.EmulatedFromAbsSimtime(at), ok: true}
	return NewHandler(clock, table, legacy), file, legacy
}

func fcntlArgs(fd int32, cmd int, arg int) Args {
	return Args{Number: unix.SYS_FCNTL, Regs: [6]Reg{Reg(fd), Reg(cmd), Reg(arg)}}
}

func TestFcntl_GetAndSetFlags(t *testing.T) {
	h, file, _ := newTestHandler(t, simtime.Zero)

	ret, err := h.Fcntl(fcntlArgs(3, unix.F_GETFL, 0))
	require.NoError(t, err)
	assert.Equal(t, Reg(unix.O_NONBLOCK), ret)

	ret, err = h.Fcntl(fcntlArgs(3, unix.F_SETFL, unix.O_APPEND))
	require.NoError(t, err)
	assert.Equal(t, Reg(0), ret)
	assert.Equal(t, descriptor.FlagAppend, file.Flags(), "F_SETFL replaces the flags")

	ret, err = h.Fcntl64(fcntlArgs(3, unix.F_GETFL, 0))
	require.NoError(t, err)
	assert.Equal(t, Reg(unix.O_APPEND), ret)
}

func TestFcntl_Errors(t *testing.T) {
	h, file, _ := newTestHandler(t, simtime.Zero)

	_, err := h.Fcntl(fcntlArgs(9, unix.F_GETFL, 0))
	assert.Equal(t, unix.EBADF, err)

	_, err = h.Fcntl(fcntlArgs(3, unix.F_SETFL, unix.O_CREAT))
	assert.Equal(t, unix.EINVAL, err)
	assert.Equal(t, descriptor.FlagNonblock, file.Flags(), "rejected F_SETFL must not modify the file")

	_, err = h.Fcntl(fcntlArgs(3, unix.F_DUPFD, 0))
	assert.Equal(t, unix.EINVAL, err)
}

func TestFcntl_LegacyDescriptorForwarded(t *testing.T) {
	h, _, legacy := newTestHandler(t, simtime.Zero)
	args := fcntlArgs(0, unix.F_GETFL, 0)

	ret, err := h.Fcntl(args)
	require.NoError(t, err)
	assert.Equal(t, Reg(0o2), ret, "legacy result is returned unchanged")
	require.Len(t, legacy.calls, 1)
	assert.Equal(t, args, legacy.calls[0])
}

func TestSysinfo_Values(t *testing.T) {
	h, _, _ := newTestHandler(t, simtime.FromSecs(90).Add(simtime.FromMillis(999)))

	info := h.Sysinfo()
	assert.Equal(t, int64(90), info.Uptime)
	assert.Equal(t, [3]uint64{1, 1, 1}, info.Loads)
	assert.Equal(t, uint64(32), info.Totalram)
	assert.Equal(t, uint64(24), info.Freeram)
	assert.Equal(t, uint64(4), info.Sharedram)
	assert.Equal(t, uint64(4), info.Bufferram)
	assert.Equal(t, uint64(0), info.Totalswap)
	assert.Equal(t, uint64(0), info.Freeswap)
	assert.Equal(t, uint16(100), info.Procs)
	assert.Equal(t, uint64(4), info.Totalhigh)
	assert.Equal(t, uint64(3), info.Freehigh)
	assert.Equal(t, uint32(1<<30), info.Unit)
}

func TestSysinfo_ByteIdenticalAtSameInstant(t *testing.T) {
	// GIVEN two handlers at the same simulated instant
	at := simtime.FromSecs(3600)
	h1, _, _ := newTestHandler(t, at)
	h2, _, _ := newTestHandler(t, at)

	// WHEN sysinfo is fabricated twice
	a, b := h1.Sysinfo(), h2.Sysinfo()

	// THEN the raw structs are byte-identical
	assert.Equal(t, structBytes(&a), structBytes(&b))
}

func TestSysinfo_NoClockPanics(t *testing.T) {
	h := NewHandler(&fixedClock{}, descriptor.NewTable(), &recordingLegacy{})
	assert.Panics(t, func() { h.Sysinfo() })
}

func TestClockGettime(t *testing.T) {
	h, _, _ := newTestHandler(t, simtime.FromSecs(5).Add(simtime.FromNanos(7)))

	ts, err := h.ClockGettime(unix.CLOCK_MONOTONIC)
	require.NoError(t, err)
	assert.Equal(t, unix.Timespec{Sec: int64(simtime.SimulationStartSec) + 5, Nsec: 7}, ts)

	rt, err := h.ClockGettime(unix.CLOCK_REALTIME)
	require.NoError(t, err)
	assert.Equal(t, ts, rt)

	_, err = h.ClockGettime(unix.CLOCK_PROCESS_CPUTIME_ID)
	assert.Equal(t, unix.EINVAL, err)
}

func TestGettimeofdayAndTime(t *testing.T) {
	h, _, _ := newTestHandler(t, simtime.FromSecs(5).Add(simtime.FromNanos(2_999)))

	tv, err := h.Gettimeofday()
	require.NoError(t, err)
	assert.Equal(t, unix.Timeval{Sec: int64(simtime.SimulationStartSec) + 5, Usec: 2}, tv)

	assert.Equal(t, int64(simtime.SimulationStartSec)+5, h.Time())
}

func structBytes(info *unix.Sysinfo_t) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(info)), unsafe.Sizeof(*info))
}

func TestDispatch_RoutesFcntlAndForwardsTheRest(t *testing.T) {
	h, _, legacy := newTestHandler(t, simtime.Zero)

	// GIVEN fcntl on a modern descriptor
	ret, err := h.Dispatch(fcntlArgs(3, unix.F_GETFL, 0))

	// THEN it is served natively
	require.NoError(t, err)
	assert.Equal(t, Reg(unix.O_NONBLOCK), ret)
	assert.Empty(t, legacy.calls)

	// GIVEN a syscall with no native handler
	other := Args{Number: unix.SYS_GETPID}
	ret, err = h.Dispatch(other)

	// THEN it reaches the legacy handler unchanged
	require.NoError(t, err)
	assert.Equal(t, legacy.ret, ret)
	require.Len(t, legacy.calls, 1)
	assert.Equal(t, other, legacy.calls[0])
}
