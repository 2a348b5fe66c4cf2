// File: native/alloc_other.go
//go:build !unix

// Package native: heap fallback for platforms without mmap support.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package native

import "github.com/momentics/hioload-mem/api"

// Alloc allocates a heap-backed chunk. The bounds and lifecycle contracts
// are identical to the mmap path; only the backing store differs.
func Alloc(size int) (*Chunk, error) {
	if size < 0 {
		return nil, api.NewError(api.ErrCodeInvalidConfig, "native: negative chunk size").
			WithContext("size", size)
	}
	return &Chunk{data: make([]byte, size)}, nil
}

// free is a no-op on the heap path; the GC reclaims the slice.
func (c *Chunk) free() error {
	return nil
}
