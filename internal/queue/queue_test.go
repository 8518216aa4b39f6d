package queue_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/smartfolder/smartfolder/internal/queue"
	"github.com/stretchr/testify/assert"
)

func TestJobsRunInOrderWithinAFolder(t *testing.T) {
	m := queue.NewManager()
	defer m.Shutdown()

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	wg.Add(5)

	for i := 0; i < 5; i++ {
		i := i
		m.Enqueue("/folder", func(ctx context.Context) {
			defer wg.Done()
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			time.Sleep(time.Millisecond)
		})
	}

	wg.Wait()
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestDifferentFoldersRunIndependently(t *testing.T) {
	m := queue.NewManager()
	defer m.Shutdown()

	var running int32
	var sawOverlap int32
	var wg sync.WaitGroup
	wg.Add(2)

	block := make(chan struct{})
	m.Enqueue("/a", func(ctx context.Context) {
		defer wg.Done()
		atomic.AddInt32(&running, 1)
		<-block
		atomic.AddInt32(&running, -1)
	})
	m.Enqueue("/b", func(ctx context.Context) {
		defer wg.Done()
		if atomic.LoadInt32(&running) > 0 {
			atomic.StoreInt32(&sawOverlap, 1)
		}
	})

	time.Sleep(20 * time.Millisecond)
	close(block)
	wg.Wait()

	assert.Equal(t, int32(1), sawOverlap, "folder b's job should have been able to run while folder a's job was still blocked")
}

func TestJobPanicDoesNotBreakTheChain(t *testing.T) {
	m := queue.NewManager()
	defer m.Shutdown()

	var wg sync.WaitGroup
	wg.Add(2)
	var secondRan bool

	m.Enqueue("/f", func(ctx context.Context) {
		defer wg.Done()
		panic("boom")
	})
	m.Enqueue("/f", func(ctx context.Context) {
		defer wg.Done()
		secondRan = true
	})

	wg.Wait()
	assert.True(t, secondRan)
}
