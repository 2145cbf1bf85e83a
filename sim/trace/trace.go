package trace

import "sort"

// TraceLevel controls the verbosity of syscall tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelSyscalls captures every syscall a host issues.
	TraceLevelSyscalls TraceLevel = "syscalls"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:     true,
	TraceLevelSyscalls: true,
	"":                 true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether records should be collected at all.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelSyscalls
}

// SimulationTrace collects syscall records during a simulation.
type SimulationTrace struct {
	Config  TraceConfig     `json:"-" yaml:"-" cbor:"-"`
	RunID   string          `json:"run_id" yaml:"run_id" cbor:"1,keyasint"`
	Records []SyscallRecord `json:"records" yaml:"records" cbor:"2,keyasint"`
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig, runID string) *SimulationTrace {
	return &SimulationTrace{
		Config:  config,
		RunID:   runID,
		Records: make([]SyscallRecord, 0),
	}
}

// Record appends syscall records.
func (st *SimulationTrace) Record(records ...SyscallRecord) {
	st.Records = append(st.Records, records...)
}

// Sort orders records by time, then host, then per-host sequence. Hosts
// record concurrently, so merged records must be sorted before export.
func (st *SimulationTrace) Sort() {
	sort.SliceStable(st.Records, func(i, j int) bool {
		ri, rj := st.Records[i], st.Records[j]
		if ri.Time != rj.Time {
			return ri.Time < rj.Time
		}
		if ri.HostID != rj.HostID {
			return ri.HostID < rj.HostID
		}
		return ri.Seq < rj.Seq
	})
}
