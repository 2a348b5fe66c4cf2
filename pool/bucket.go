// File: pool/bucket.go
// Package pool: one size class of the bucketed engine.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import "github.com/eapache/queue"

// bucket groups pooled values of a single canonical size. The free queue
// and the in-use counter are only touched under the owning pool's lock.
//
// Invariant for bounded buckets: inUse + free.Length() <= maxCount.
type bucket[T any] struct {
	itemSize int
	maxCount int // 0 = unbounded
	free     *queue.Queue
	inUse    int
}

func newBucket[T any](itemSize, maxCount int) *bucket[T] {
	return &bucket[T]{
		itemSize: itemSize,
		maxCount: maxCount,
		free:     queue.New(),
	}
}

// pop removes the oldest idle value. Callers must check Length first.
func (b *bucket[T]) pop() T {
	return b.free.Remove().(T)
}

func (b *bucket[T]) push(v T) {
	b.free.Add(v)
}

// hasSpare reports whether the bucket may park one more idle value.
func (b *bucket[T]) hasSpare() bool {
	return b.maxCount <= 0 || b.inUse+b.free.Length() < b.maxCount
}
