// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import (
	"sync"

	"github.com/momentics/hioload-mem/api"
)

// Registry is a trivial trim registry stub recording register/unregister
// pairs so tests can verify pool teardown behavior.
type Registry struct {
	mu           sync.Mutex
	Registered   []api.Trimmable
	Unregistered []api.Trimmable
}

var _ api.TrimRegistry = (*Registry)(nil)

func (r *Registry) Register(t api.Trimmable) {
	r.mu.Lock()
	r.Registered = append(r.Registered, t)
	r.mu.Unlock()
}

func (r *Registry) Unregister(t api.Trimmable) {
	r.mu.Lock()
	r.Unregistered = append(r.Unregistered, t)
	r.mu.Unlock()
}
