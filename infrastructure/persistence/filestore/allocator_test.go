package filestore

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDAllocatorStartsAtSeed(t *testing.T) {
	a := NewIDAllocator(1000)
	assert.Equal(t, int64(1000), a.Next())
	assert.Equal(t, int64(1001), a.Next())
}

func TestIDAllocatorObserveRaisesFloor(t *testing.T) {
	a := NewIDAllocator(1)
	a.Observe(41)
	assert.Equal(t, int64(42), a.Next())

	// Observing something below the floor changes nothing.
	a.Observe(7)
	assert.Equal(t, int64(43), a.Next())
}

func TestIDAllocatorReset(t *testing.T) {
	a := NewIDAllocator(1000)
	a.Observe(5000)
	_ = a.Next()

	a.Reset()
	assert.Equal(t, int64(1000), a.Next())
}

func TestIDAllocatorConcurrentNextIsUnique(t *testing.T) {
	const (
		workers   = 16
		perWorker = 200
	)

	a := NewIDAllocator(1)
	ids := make(chan int64, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				ids <- a.Next()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, workers*perWorker)
	for id := range ids {
		require.False(t, seen[id], "identifier %d issued twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers*perWorker)
}
