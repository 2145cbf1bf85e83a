// Package trace provides syscall-trace recording for simulation runs.
// This package has no dependencies on the rest of sim/; it stores pure data types.
package trace

// SyscallRecord captures one syscall served by a simulated host.
type SyscallRecord struct {
	Host      string `json:"host" yaml:"host" cbor:"1,keyasint"`
	HostID    int    `json:"host_id" yaml:"host_id" cbor:"2,keyasint"`
	Seq       uint64 `json:"seq" yaml:"seq" cbor:"3,keyasint"`
	Time      uint64 `json:"time_ns" yaml:"time_ns" cbor:"4,keyasint"` // raw emulated time
	Syscall   string `json:"syscall" yaml:"syscall" cbor:"5,keyasint"`
	Return    int64  `json:"return" yaml:"return" cbor:"6,keyasint"`
	Errno     string `json:"errno,omitempty" yaml:"errno,omitempty" cbor:"7,keyasint,omitempty"`
	Detail    string `json:"detail,omitempty" yaml:"detail,omitempty" cbor:"8,keyasint,omitempty"`
	Forwarded bool   `json:"forwarded,omitempty" yaml:"forwarded,omitempty" cbor:"9,keyasint,omitempty"`
}
