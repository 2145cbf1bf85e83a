// Package testutil provides shared test infrastructure for the simulator.
// It consolidates config fixtures and trace helpers used across sim/,
// sim/cluster/ and cmd/ test packages. It must not import sim so that
// in-package sim tests can use it.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/hostsim/hostsim/sim/trace"
)

// SmallConfigYAML is a two-group cluster that exercises every syscall.
const SmallConfigYAML = `seed: 42
stop_time: 3s
parallelism: 4
trace_level: syscalls
trace_format: json
hosts:
  - name: web
    count: 3
    interval: 100ms
    syscalls: [clock_gettime, gettimeofday, time, fcntl]
  - name: db
    interval: 250ms
    syscalls: [sysinfo, fcntl]
`

// WriteTempFile writes content to a file under t.TempDir and returns its path.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// EncodeTrace encodes st and fails the test on error.
func EncodeTrace(t *testing.T, st *trace.SimulationTrace, format trace.Format) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := trace.Write(&buf, st, format); err != nil {
		t.Fatalf("encode trace as %s: %v", format, err)
	}
	return buf.Bytes()
}
