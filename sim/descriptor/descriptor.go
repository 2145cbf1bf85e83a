//go:build linux

// Package descriptor holds a process's descriptor table. A descriptor refers
// either to a File implemented here or to an object still owned by the legacy
// C handlers, in which case syscalls on it are forwarded unchanged.
//
// A Table is owned by a single host and is not safe for concurrent use.
// File flags may be read and replaced from any goroutine.
package descriptor

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrNotFound reports a descriptor number with no open descriptor.
	ErrNotFound = errors.New("descriptor not found")
	// ErrInUse reports a Register call on an occupied descriptor number.
	ErrInUse = errors.New("descriptor number in use")
)

// File is an open file description. Several descriptors, possibly in
// different hosts' tables, may share one File.
type File struct {
	name string

	mu    sync.Mutex
	flags FileFlags
}

// NewFile returns a File with the given status flags.
func NewFile(name string, flags FileFlags) *File {
	return &File{name: name, flags: flags}
}

func (f *File) Name() string { return f.name }

// Flags returns the cached status flags.
func (f *File) Flags() FileFlags {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flags
}

// SetFlags replaces the status flags.
func (f *File) SetFlags(flags FileFlags) {
	f.mu.Lock()
	f.flags = flags
	f.mu.Unlock()
}

// LegacyHandle identifies a descriptor owned by the legacy handlers.
type LegacyHandle uint64

// Descriptor is one table entry: a File or a LegacyHandle.
type Descriptor struct {
	file   *File
	legacy LegacyHandle
}

func NewDescriptor(f *File) Descriptor { return Descriptor{file: f} }

func NewLegacyDescriptor(h LegacyHandle) Descriptor { return Descriptor{legacy: h} }

// IsLegacy reports whether syscalls on d must be forwarded.
func (d Descriptor) IsLegacy() bool { return d.file == nil }

// File returns the underlying file, or false for a legacy descriptor.
func (d Descriptor) File() (*File, bool) { return d.file, d.file != nil }

// Legacy returns the legacy handle, or false for a File descriptor.
func (d Descriptor) Legacy() (LegacyHandle, bool) { return d.legacy, d.file == nil }

// Table maps descriptor numbers to descriptors.
type Table struct {
	descs map[int32]Descriptor
}

func NewTable() *Table {
	return &Table{descs: make(map[int32]Descriptor)}
}

// Register installs d at fd.
func (t *Table) Register(fd int32, d Descriptor) error {
	if fd < 0 {
		return fmt.Errorf("register fd %d: negative descriptor number", fd)
	}
	if _, ok := t.descs[fd]; ok {
		return fmt.Errorf("register fd %d: %w", fd, ErrInUse)
	}
	t.descs[fd] = d
	return nil
}

// RegisterNext installs d at the lowest free descriptor number.
func (t *Table) RegisterNext(d Descriptor) int32 {
	var fd int32
	for {
		if _, ok := t.descs[fd]; !ok {
			t.descs[fd] = d
			return fd
		}
		fd++
	}
}

// Get returns the descriptor at fd, or an error wrapping ErrNotFound.
func (t *Table) Get(fd int32) (Descriptor, error) {
	d, ok := t.descs[fd]
	if !ok {
		return Descriptor{}, fmt.Errorf("fd %d: %w", fd, ErrNotFound)
	}
	return d, nil
}

// Remove closes fd and returns what was there.
func (t *Table) Remove(fd int32) (Descriptor, bool) {
	d, ok := t.descs[fd]
	delete(t.descs, fd)
	return d, ok
}

func (t *Table) Len() int { return len(t.descs) }

// FDs returns the open descriptor numbers in ascending order.
func (t *Table) FDs() []int32 {
	fds := make([]int32, 0, len(t.descs))
	for fd := range t.descs {
		fds = append(fds, fd)
	}
	sort.Slice(fds, func(i, j int) bool { return fds[i] < fds[j] })
	return fds
}
