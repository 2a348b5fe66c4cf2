// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import (
	"sync"

	"github.com/momentics/hioload-mem/api"
)

// StatsTracker records every pool event for test assertions.
type StatsTracker struct {
	mu          sync.Mutex
	Allocs      []int
	Frees       []int
	Reuses      []int
	Releases    []int
	HardCapMiss []int
}

var _ api.StatsTracker = (*StatsTracker)(nil)

func (s *StatsTracker) OnAlloc(sizeInBytes int) {
	s.mu.Lock()
	s.Allocs = append(s.Allocs, sizeInBytes)
	s.mu.Unlock()
}

func (s *StatsTracker) OnFree(sizeInBytes int) {
	s.mu.Lock()
	s.Frees = append(s.Frees, sizeInBytes)
	s.mu.Unlock()
}

func (s *StatsTracker) OnValueReuse(bucketedSize int) {
	s.mu.Lock()
	s.Reuses = append(s.Reuses, bucketedSize)
	s.mu.Unlock()
}

func (s *StatsTracker) OnValueRelease(bucketedSize int) {
	s.mu.Lock()
	s.Releases = append(s.Releases, bucketedSize)
	s.mu.Unlock()
}

func (s *StatsTracker) OnHardCapMiss(requestSize int) {
	s.mu.Lock()
	s.HardCapMiss = append(s.HardCapMiss, requestSize)
	s.mu.Unlock()
}

// Counts returns (allocs, frees, reuses, releases) for quick assertions.
func (s *StatsTracker) Counts() (int, int, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Allocs), len(s.Frees), len(s.Reuses), len(s.Releases)
}
