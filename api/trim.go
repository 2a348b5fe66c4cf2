// File: api/trim.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Memory-pressure trim signals and the registry boundary through which the
// surrounding pipeline delivers them.

package api

// TrimLevel grades a memory-pressure signal. Higher levels evict more.
type TrimLevel int

const (
	// TrimLight sheds idle entries down to the soft cap.
	TrimLight TrimLevel = iota

	// TrimModerate sheds idle entries down to half the soft cap.
	TrimModerate

	// TrimSevere drops every idle entry.
	TrimSevere

	// TrimCritical drops every idle entry. Reserved for signals that
	// precede process termination; pools treat it like TrimSevere.
	TrimCritical
)

// String returns a stable label for logging and metrics keys.
func (l TrimLevel) String() string {
	switch l {
	case TrimLight:
		return "light"
	case TrimModerate:
		return "moderate"
	case TrimSevere:
		return "severe"
	case TrimCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Trimmable is anything that can shed cached entries on pressure signals.
type Trimmable interface {
	Trim(level TrimLevel)
}

// TrimRegistry fans pressure signals out to registered pools.
//
// Pools register at construction and must unregister at Close, otherwise
// the registry ends up invoking a dangling callback on a dead pool.
type TrimRegistry interface {
	Register(t Trimmable)
	Unregister(t Trimmable)
}
