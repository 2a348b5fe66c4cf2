// File: pool/options.go
// Package pool defines functional options for pool construction.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"log"

	"github.com/momentics/hioload-mem/api"
)

// Option customizes pool initialization.
type Option func(*options)

type options struct {
	stats        api.StatsTracker
	registry     api.TrimRegistry
	onDisposeErr func(error)
}

func defaultOptions() options {
	return options{
		stats: nopStats{},
		onDisposeErr: func(err error) {
			log.Printf("pool: disposal failure: %v", err)
		},
	}
}

// WithStatsTracker attaches an observability hook for allocation, free,
// and bucket events.
func WithStatsTracker(st api.StatsTracker) Option {
	return func(o *options) {
		if st != nil {
			o.stats = st
		}
	}
}

// WithTrimRegistry registers the pool with a memory-pressure registry at
// construction. The pool unregisters itself on Close.
func WithTrimRegistry(r api.TrimRegistry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithDisposalHook overrides the sink for disposal failures. Release paths
// never propagate such errors past the caller handing back ownership.
func WithDisposalHook(fn func(error)) Option {
	return func(o *options) {
		if fn != nil {
			o.onDisposeErr = fn
		}
	}
}

// nopStats discards every event.
type nopStats struct{}

func (nopStats) OnAlloc(int)        {}
func (nopStats) OnFree(int)         {}
func (nopStats) OnValueReuse(int)   {}
func (nopStats) OnValueRelease(int) {}
func (nopStats) OnHardCapMiss(int)  {}
