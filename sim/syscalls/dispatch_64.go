//go:build linux && !(386 || arm || mips || mipsle)

package syscalls

// 64-bit ABIs have no fcntl64; -1 never matches a syscall number.
const fcntl64Number = -1
