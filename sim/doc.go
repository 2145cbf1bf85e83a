// Package sim holds the run-level pieces of the host simulator: the YAML
// configuration, the partitioned RNG that gives every host its own random
// stream, and the run ID stamped on traces.
//
// # Reading Guide
//
// Time flows bottom-up through the sub-packages:
//   - sim/simtime/: SimulationTime and EmulatedTime, plus conversions to and
//     from timeval and timespec
//   - sim/bridge/: raw-encoding entry points for the legacy C code
//   - sim/descriptor/: per-host descriptor table and file status flags
//   - sim/syscalls/: fabricated fcntl, sysinfo and clock syscalls
//   - sim/scheduler/: the event loop and the authoritative clock
//   - sim/host/: a simulated machine issuing syscalls on wake-ups
//   - sim/cluster/: builds hosts from a Config and runs them together
//   - sim/trace/: syscall records and their JSON, YAML and CBOR encodings
//
// # Determinism
//
// Two runs with the same seed and config produce byte-identical traces,
// whatever the scheduler's parallelism. Each host draws only from its own
// RNG (SubsystemHost), host state is touched only by that host's events, and
// the trace is sorted by (time, host, sequence) before it is written.
package sim
