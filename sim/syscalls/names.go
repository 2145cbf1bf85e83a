//go:build linux

package syscalls

import "sort"

// Syscall names accepted in host configurations and written to traces.
const (
	NameClockGettime = "clock_gettime"
	NameGettimeofday = "gettimeofday"
	NameTime         = "time"
	NameSysinfo      = "sysinfo"
	NameFcntl        = "fcntl"
)

var knownNames = map[string]bool{
	NameClockGettime: true,
	NameGettimeofday: true,
	NameTime:         true,
	NameSysinfo:      true,
	NameFcntl:        true,
}

// IsKnown reports whether name is a syscall this package can serve.
func IsKnown(name string) bool {
	return knownNames[name]
}

// Names returns the known syscall names, sorted.
func Names() []string {
	names := make([]string, 0, len(knownNames))
	for n := range knownNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
