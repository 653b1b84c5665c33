package filestore

import (
	"sync/atomic"
)

// IDAllocator issues unique, strictly increasing identifiers for one record
// collection. The counter lives only in memory: at store construction it is
// seeded from the highest identifier found on disk, so identifiers freed by
// deletion may be recycled across a restart but never within one process run.
type IDAllocator struct {
	seed int64
	next atomic.Int64
}

// NewIDAllocator creates an allocator whose first identifier is seed
func NewIDAllocator(seed int64) *IDAllocator {
	a := &IDAllocator{seed: seed}
	a.next.Store(seed)
	return a
}

// Observe raises the allocator floor above an identifier seen on disk
func (a *IDAllocator) Observe(id int64) {
	for {
		cur := a.next.Load()
		if id < cur {
			return
		}
		if a.next.CompareAndSwap(cur, id+1) {
			return
		}
	}
}

// Next returns the next identifier. Safe for concurrent use.
func (a *IDAllocator) Next() int64 {
	return a.next.Add(1) - 1
}

// Reset returns the allocator to its seed. Only meaningful right after the
// whole collection has been purged.
func (a *IDAllocator) Reset() {
	a.next.Store(a.seed)
}
