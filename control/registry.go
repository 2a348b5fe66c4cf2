// File: control/registry.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package control

import (
	"sync"

	"github.com/momentics/hioload-mem/api"
)

// Registry fans memory/disk pressure signals out to registered pools.
// It is an explicit object handed to pools at construction; pools must
// unregister on teardown so a dead pool is never signalled.
type Registry struct {
	mu      sync.Mutex
	members map[api.Trimmable]struct{}
}

var _ api.TrimRegistry = (*Registry)(nil)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{members: make(map[api.Trimmable]struct{})}
}

// Register adds a trimmable. Re-registering is a no-op.
func (r *Registry) Register(t api.Trimmable) {
	if t == nil {
		return
	}
	r.mu.Lock()
	r.members[t] = struct{}{}
	r.mu.Unlock()
}

// Unregister removes a trimmable. Unknown members are ignored.
func (r *Registry) Unregister(t api.Trimmable) {
	r.mu.Lock()
	delete(r.members, t)
	r.mu.Unlock()
}

// Len returns the number of registered trimmables.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// TrimAll delivers a pressure signal to every registered trimmable, on
// the caller's goroutine. The member set is snapshotted first so a pool
// unregistering from inside Trim cannot deadlock against the registry.
func (r *Registry) TrimAll(level api.TrimLevel) {
	r.mu.Lock()
	snapshot := make([]api.Trimmable, 0, len(r.members))
	for t := range r.members {
		snapshot = append(snapshot, t)
	}
	r.mu.Unlock()

	for _, t := range snapshot {
		t.Trim(level)
	}
}
