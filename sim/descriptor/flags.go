//go:build linux

package descriptor

import (
	"strings"

	"golang.org/x/sys/unix"
)

// FileFlags are the open-file status flags visible through F_GETFL and
// F_SETFL. Access mode bits are not part of the set.
type FileFlags int32

const (
	FlagNonblock FileFlags = unix.O_NONBLOCK
	FlagAppend   FileFlags = unix.O_APPEND
	FlagAsync    FileFlags = unix.O_ASYNC
	FlagDirect   FileFlags = unix.O_DIRECT
	FlagNoatime  FileFlags = unix.O_NOATIME

	allFileFlags = FlagNonblock | FlagAppend | FlagAsync | FlagDirect | FlagNoatime
)

var flagNames = []struct {
	flag FileFlags
	name string
}{
	{FlagNonblock, "O_NONBLOCK"},
	{FlagAppend, "O_APPEND"},
	{FlagAsync, "O_ASYNC"},
	{FlagDirect, "O_DIRECT"},
	{FlagNoatime, "O_NOATIME"},
}

// FileFlagsFromBits reports false if bits contains anything other than known
// status flags.
func FileFlagsFromBits(bits int32) (FileFlags, bool) {
	f := FileFlags(bits)
	if f&^allFileFlags != 0 {
		return 0, false
	}
	return f, true
}

func (f FileFlags) Bits() int32 { return int32(f) }

func (f FileFlags) Has(flag FileFlags) bool { return f&flag == flag }

func (f FileFlags) String() string {
	if f == 0 {
		return "0"
	}
	var parts []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}
