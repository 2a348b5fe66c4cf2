// File: refcount/ref.go
// Package refcount implements the shared-ownership handle guarding pooled
// native resources against use-after-release and double-release.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A Ref wraps exactly one resource together with a shared live count.
// Clones share the count; each handle closes at most once; the designated
// release function fires exactly once, on the transition where the count
// reaches zero, regardless of how many goroutines close clones concurrently.

package refcount

import (
	"sync/atomic"

	"github.com/momentics/hioload-mem/api"
)

// shared is the state common to a handle and all of its clones.
type shared[T any] struct {
	count    atomic.Int32
	resource T
	release  func(T)
}

// Ref is a single ownership handle over a shared resource.
//
// The zero value is not usable; obtain handles through Acquire and Clone.
// A Ref must not be copied, only its pointer passed around.
type Ref[T any] struct {
	st     *shared[T]
	closed atomic.Bool
}

// Acquire wraps a freshly allocated resource with a share count of one.
// release runs exactly once, when the last live handle is closed.
func Acquire[T any](resource T, release func(T)) *Ref[T] {
	st := &shared[T]{resource: resource, release: release}
	st.count.Store(1)
	return &Ref[T]{st: st}
}

// Clone returns a new handle over the same resource, incrementing the
// shared count. Cloning a closed handle fails with api.ErrClosed.
func (r *Ref[T]) Clone() (*Ref[T], error) {
	if r.closed.Load() {
		return nil, api.NewError(api.ErrCodeClosed, "refcount: clone of closed handle")
	}
	// Increment-if-live loop: a racing final close of a sibling handle
	// must not be resurrected after the release fn has fired.
	for {
		n := r.st.count.Load()
		if n <= 0 {
			return nil, api.NewError(api.ErrCodeClosed, "refcount: resource already released")
		}
		if r.st.count.CompareAndSwap(n, n+1) {
			return &Ref[T]{st: r.st}, nil
		}
	}
}

// CloneOrNil is Clone for call sites that treat a dead handle as absence.
func CloneOrNil[T any](r *Ref[T]) *Ref[T] {
	if r == nil {
		return nil
	}
	c, err := r.Clone()
	if err != nil {
		return nil
	}
	return c
}

// Close drops this handle's share. Idempotent: closing an already closed
// handle has no effect. Exactly one closer across all clones observes the
// zero transition and runs the release function.
func (r *Ref[T]) Close() {
	if !r.closed.CompareAndSwap(false, true) {
		return
	}
	if r.st.count.Add(-1) == 0 {
		if r.st.release != nil {
			r.st.release(r.st.resource)
		}
	}
}

// CloseSafe closes a possibly nil handle.
func CloseSafe[T any](r *Ref[T]) {
	if r != nil {
		r.Close()
	}
}

// IsValid reports whether this handle may still access the resource.
func (r *Ref[T]) IsValid() bool {
	return !r.closed.Load() && r.st.count.Load() > 0
}

// Get returns the wrapped resource, or api.ErrClosed through an invalid
// handle. Callers must not retain the resource beyond the handle's life.
func (r *Ref[T]) Get() (T, error) {
	var zero T
	if !r.IsValid() {
		return zero, api.NewError(api.ErrCodeClosed, "refcount: access through closed handle")
	}
	return r.st.resource, nil
}

// LiveCount returns the current shared count. Intended for tests and
// debug probes; the value may be stale the moment it is read.
func (r *Ref[T]) LiveCount() int32 {
	return r.st.count.Load()
}
