// FILE: lixenwraith/filelog/processor_test.go
package filelog

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := newQueue(0)

	for i := 0; i < 5; i++ {
		assert.True(t, q.push(queueEntry{item: LogItem{TimeMillis: int64(i)}}))
	}
	assert.Equal(t, 5, q.len())

	for i := 0; i < 5; i++ {
		e, ok := q.pop()
		require.True(t, ok)
		assert.Equal(t, int64(i), e.item.TimeMillis)
	}

	_, ok := q.pop()
	assert.False(t, ok)
	assert.Equal(t, 0, q.len())
}

func TestQueueBounded(t *testing.T) {
	q := newQueue(2)

	assert.True(t, q.push(queueEntry{}))
	assert.True(t, q.push(queueEntry{}))
	assert.False(t, q.push(queueEntry{}), "third record exceeds capacity")
	assert.True(t, q.push(queueEntry{barrier: make(chan struct{})}), "barriers bypass the limit")
	assert.Equal(t, 3, q.len())
}

func TestQueueNotify(t *testing.T) {
	q := newQueue(0)

	// Multiple pushes collapse into one pending wakeup
	q.push(queueEntry{})
	q.push(queueEntry{})

	select {
	case <-q.notify:
	default:
		t.Fatal("expected a wakeup")
	}
	select {
	case <-q.notify:
		t.Fatal("wakeups should not accumulate")
	default:
	}
}

func TestQueueConcurrentPush(t *testing.T) {
	q := newQueue(0)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				q.push(queueEntry{})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 8000, q.len())
}

func TestWorkerShutdown(t *testing.T) {
	printer, tmpDir := createTestPrinter(t, nil)

	for i := 0; i < 100; i++ {
		printer.Print(LevelInfo, "t", "pending")
	}

	require.NoError(t, printer.Shutdown(2*time.Second))
	assert.Len(t, readLines(t, tmpDir+"/log.log"), 100, "shutdown drains the queue")

	printer.worker.mu.Lock()
	assert.True(t, printer.worker.stopped)
	assert.False(t, printer.worker.running)
	printer.worker.mu.Unlock()

	t.Run("terminal after shutdown", func(t *testing.T) {
		printer.Print(LevelInfo, "t", "late")
		assert.Equal(t, uint64(1), printer.Stats().Dropped)
		assert.ErrorIs(t, printer.Flush(time.Second), ErrPrinterClosed)
		assert.NoError(t, printer.Shutdown(), "second shutdown is a no-op")
		assert.Len(t, readLines(t, tmpDir+"/log.log"), 100)
	})
}

func TestWorkerShutdownNeverStarted(t *testing.T) {
	printer, _ := createTestPrinter(t, nil)
	assert.NoError(t, printer.Shutdown(time.Second))
}

func TestFlushTimeout(t *testing.T) {
	release := make(chan struct{})
	printer, _ := createTestPrinter(t, func(c *Config) {
		c.Flattener = hookFlattener(func() { <-release })
	})

	printer.Print(LevelInfo, "t", "blocked")
	err := printer.Flush(50 * time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout waiting for flush confirmation")

	close(release)
	assert.NoError(t, printer.Flush(time.Second))
}
