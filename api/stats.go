// File: api/stats.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// StatsTracker receives pool lifecycle events. Purely observational:
// implementations must never affect control flow, and must tolerate calls
// from any goroutine holding the pool lock (keep them non-blocking).
type StatsTracker interface {
	// OnAlloc fires when a fresh value is allocated.
	OnAlloc(sizeInBytes int)

	// OnFree fires when a value is disposed.
	OnFree(sizeInBytes int)

	// OnValueReuse fires when Alloc is satisfied from a free list.
	OnValueReuse(bucketedSize int)

	// OnValueRelease fires when Release parks a value on a free list.
	OnValueRelease(bucketedSize int)

	// OnHardCapMiss fires when a request exceeds the hard cap and
	// bypasses pooling entirely.
	OnHardCapMiss(requestSize int)
}
