package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalSyscalls int            `json:"total_syscalls" yaml:"total_syscalls"`
	Forwarded     int            `json:"forwarded" yaml:"forwarded"`
	Failed        int            `json:"failed" yaml:"failed"`
	BySyscall     map[string]int `json:"by_syscall" yaml:"by_syscall"` // syscall name → count
	ByErrno       map[string]int `json:"by_errno" yaml:"by_errno"`     // errno name → count
	UniqueHosts   int            `json:"unique_hosts" yaml:"unique_hosts"`
	FirstTime     uint64         `json:"first_time_ns" yaml:"first_time_ns"`
	LastTime      uint64         `json:"last_time_ns" yaml:"last_time_ns"`
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		BySyscall: make(map[string]int),
		ByErrno:   make(map[string]int),
	}
	if st == nil || len(st.Records) == 0 {
		return summary
	}

	hosts := make(map[int]bool)
	summary.FirstTime = st.Records[0].Time
	for _, r := range st.Records {
		summary.TotalSyscalls++
		summary.BySyscall[r.Syscall]++
		hosts[r.HostID] = true
		if r.Forwarded {
			summary.Forwarded++
		}
		if r.Errno != "" {
			summary.Failed++
			summary.ByErrno[r.Errno]++
		}
		if r.Time < summary.FirstTime {
			summary.FirstTime = r.Time
		}
		if r.Time > summary.LastTime {
			summary.LastTime = r.Time
		}
	}
	summary.UniqueHosts = len(hosts)

	return summary
}
