package trace

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrace() *SimulationTrace {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelSyscalls}, "7d1c0c3e-0000-5000-8000-000000000000")
	st.Record(
		SyscallRecord{Host: "server0", HostID: 1, Seq: 0, Time: 946684800000000000, Syscall: "sysinfo", Detail: "uptime=0"},
		SyscallRecord{Host: "client0", HostID: 0, Seq: 0, Time: 946684800000000000, Syscall: "fcntl", Return: -1, Errno: "EBADF"},
	)
	return st
}

func TestWriteRead_AllFormats(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML, FormatCBOR} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, sampleTrace(), format))

			got, err := Read(&buf, format)
			require.NoError(t, err)

			want := sampleTrace()
			want.Sort()
			assert.Equal(t, want.RunID, got.RunID)
			assert.Equal(t, want.Records, got.Records)
		})
	}
}

func TestWrite_CBORIsDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, Write(&a, sampleTrace(), FormatCBOR))
	require.NoError(t, Write(&b, sampleTrace(), FormatCBOR))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, sampleTrace(), Format("xml")))
	assert.False(t, IsValidFormat("xml"))
	assert.True(t, IsValidFormat("cbor"))
}
