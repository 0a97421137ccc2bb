// FILE: lixenwraith/filelog/processor.go
package filelog

import (
	"sync"
	"time"
)

// queueEntry is either a record or a flush barrier
type queueEntry struct {
	item    LogItem
	barrier chan struct{}
}

// queue is a mutex-guarded FIFO with a one-slot wakeup channel.
// capacity 0 means unbounded.
type queue struct {
	mu       sync.Mutex
	entries  []queueEntry
	capacity int
	notify   chan struct{}
}

// newQueue creates an empty queue
func newQueue(capacity int) *queue {
	return &queue{
		capacity: capacity,
		notify:   make(chan struct{}, 1),
	}
}

// push appends e, returning false if a bounded queue is full.
// Barriers are always accepted.
func (q *queue) push(e queueEntry) bool {
	q.mu.Lock()
	if q.capacity > 0 && e.barrier == nil && len(q.entries) >= q.capacity {
		q.mu.Unlock()
		return false
	}
	q.entries = append(q.entries, e)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
	return true
}

// pop removes the oldest entry
func (q *queue) pop() (queueEntry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 {
		return queueEntry{}, false
	}
	e := q.entries[0]
	q.entries[0] = queueEntry{}
	q.entries = q.entries[1:]
	if len(q.entries) == 0 {
		// Release the backing array once drained
		q.entries = nil
	}
	return e, true
}

// len returns the number of pending entries
func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// worker is the single consumer draining the queue into the pipeline
type worker struct {
	queue    *queue
	pipeline *pipeline
	state    *State
	report   func(error)

	mu      sync.Mutex
	running bool
	started bool          // A goroutine was started at least once
	stopped bool          // Terminal, set by shutdown
	done    chan struct{} // Closed when the current goroutine exits
	stop    chan struct{}
}

// newWorker creates a stopped worker
func newWorker(q *queue, p *pipeline, state *State, report func(error)) *worker {
	return &worker{
		queue:    q,
		pipeline: p,
		state:    state,
		report:   report,
		stop:     make(chan struct{}),
	}
}

// ensureStarted starts the consumer goroutine unless one is running.
// Concurrent callers start exactly one.
func (w *worker) ensureStarted() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.startLocked()
}

// startLocked starts the goroutine if needed; w.mu must be held
func (w *worker) startLocked() {
	if w.running || w.stopped {
		return
	}
	if w.started {
		w.state.TotalRestarts.Add(1)
	}
	w.started = true
	w.running = true
	w.done = make(chan struct{})
	go w.run(w.done)
}

// enqueue hands a record to the consumer
func (w *worker) enqueue(item LogItem) {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		w.state.TotalDropped.Add(1)
		return
	}
	pushed := w.queue.push(queueEntry{item: item})
	if pushed {
		w.startLocked()
	}
	w.mu.Unlock()

	if !pushed {
		w.state.TotalDropped.Add(1)
		if !w.state.DropReported.Swap(true) {
			w.report(ErrQueueFull)
		}
		return
	}
	w.state.DropReported.Store(false)
}

// run is the consume loop
func (w *worker) run(done chan struct{}) {
	defer close(done)
	defer func() {
		// A panicking strategy kills this goroutine; the next enqueue starts a new one
		if r := recover(); r != nil {
			w.state.TotalFailed.Add(1)
			w.report(fmtErrorf("worker stopped after panic: %v", r))
		}
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	for {
		entry, ok := w.queue.pop()
		if !ok {
			select {
			case <-w.queue.notify:
				continue
			case <-w.stop:
				return
			}
		}

		if entry.barrier != nil {
			close(entry.barrier)
			continue
		}

		if err := w.pipeline.writeItem(entry.item); err != nil {
			w.pipeline.notify(err)
		}
	}
}

// flush waits until every entry enqueued before the call is processed
func (w *worker) flush(timeout time.Duration) error {
	barrier := make(chan struct{})
	w.queue.push(queueEntry{barrier: barrier})
	w.ensureStarted()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-barrier:
		return nil
	case <-timer.C:
		return fmtErrorf("timeout waiting for flush confirmation (%v)", timeout)
	}
}

// shutdown drains the queue, then stops the consumer for good.
// Returns false if the goroutine did not exit in time and may still own the sink.
func (w *worker) shutdown(timeout time.Duration) (bool, error) {
	deadline := time.Now().Add(timeout)
	flushErr := w.flush(timeout)

	w.mu.Lock()
	w.stopped = true
	running := w.running
	done := w.done
	w.mu.Unlock()
	close(w.stop)

	if !running {
		return true, flushErr
	}

	remaining := time.Until(deadline)
	if remaining < minWaitTime {
		remaining = minWaitTime
	}
	timer := time.NewTimer(remaining)
	defer timer.Stop()

	select {
	case <-done:
		return true, flushErr
	case <-timer.C:
		return false, combineErrors(flushErr, fmtErrorf("worker did not exit within timeout (%v)", timeout))
	}
}
