// File: native/alloc_unix.go
//go:build unix

// Package native: unix allocator backed by anonymous private mmap.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package native

import (
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-mem/api"
)

// Alloc maps a region of exactly size bytes. Exhaustion is propagated as
// api.ErrAllocFailed; the pool performs no retry.
func Alloc(size int) (*Chunk, error) {
	if size < 0 {
		return nil, api.NewError(api.ErrCodeInvalidConfig, "native: negative chunk size").
			WithContext("size", size)
	}
	if size == 0 {
		return &Chunk{data: []byte{}}, nil
	}
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, api.NewError(api.ErrCodeAllocFailed, "native: mmap failed").
			WithContext("size", size).
			WithContext("errno", err.Error())
	}
	return &Chunk{data: data, mapped: true}, nil
}

// free returns the region to the OS. Called once, under the chunk lock.
// The slice header is kept so Size() stays truthful; every data access is
// rejected beforehand by the closed flag.
func (c *Chunk) free() error {
	if !c.mapped {
		return nil
	}
	return unix.Munmap(c.data)
}
