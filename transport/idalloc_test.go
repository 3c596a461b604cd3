package transport

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdAllocator_Monotonic(t *testing.T) {
	var alloc IdAllocator
	assert.Equal(t, int64(1), alloc.Next())
	assert.Equal(t, int64(2), alloc.Next())
	assert.Equal(t, int64(3), alloc.Next())
}

func TestIdAllocator_ConcurrentUnique(t *testing.T) {
	var alloc IdAllocator
	const n = 200
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- alloc.Next()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "id %d allocated twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}
