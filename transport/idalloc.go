package transport

import "sync/atomic"

// IdAllocator is a monotonic, non-negative request-id counter. Next is safe
// for concurrent use: the increment is linearized by atomic.AddUint64, which
// gives the same mutual-exclusion guarantee a dedicated mutex would for a
// single counter word. Ids are never reused within the allocator's lifetime;
// rollover of the 63 usable bits is not a practical concern.
type IdAllocator struct {
	counter uint64
}

// Next returns the next id in the sequence, starting at 1.
func (a *IdAllocator) Next() int64 {
	return int64(atomic.AddUint64(&a.counter, 1))
}
