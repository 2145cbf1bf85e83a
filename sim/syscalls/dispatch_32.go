//go:build linux && (386 || arm || mips || mipsle)

package syscalls

import "golang.org/x/sys/unix"

// 32-bit ABIs have a separate fcntl64 taking the same commands.
const fcntl64Number = unix.SYS_FCNTL64
