package search

import (
	"context"
	"sync"
)

// Queue is the shared frontier of directories waiting to be scanned.
// It is an unbounded FIFO: Push never blocks and no push is lost under
// concurrent access.
//
// The queue also does the in-flight accounting that decides when a
// traversal is finished. Workers both consume and produce entries, so
// emptiness alone means nothing: a worker can be mid-listing with the
// queue transiently empty and about to repopulate it. Every Push
// increments a pending counter and every Done (called after a popped
// directory has been fully processed) decrements it; when the counter
// reaches zero no work exists and none can appear, so the queue closes
// itself and every blocked Pop returns ok=false.
type Queue struct {
	mu        sync.Mutex
	cond      *sync.Cond
	items     []string
	sentinels int
	pending   int
	closed    bool
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends a directory to the frontier and accounts for it as
// in-flight work. It never blocks.
func (q *Queue) Push(path string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.items = append(q.items, path)
	q.pending++
	q.cond.Signal()
}

// PushSentinel unblocks exactly one waiting consumer without
// representing real work. Used to nudge workers out of Pop during
// cancellation.
func (q *Queue) PushSentinel() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.sentinels++
	q.cond.Signal()
}

// Done marks one previously popped directory as fully processed. When
// the last in-flight directory is done the queue closes and all
// consumers are released.
func (q *Queue) Done() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.pending--
	if q.pending <= 0 && !q.closed {
		q.closed = true
		q.cond.Broadcast()
	}
}

// Close releases every blocked consumer. Subsequent pushes are dropped
// and subsequent pops return ok=false. Idempotent.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		q.cond.Broadcast()
	}
}

// Len reports the number of directories currently queued.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Pop removes and returns the oldest queued directory. It blocks until
// an entry arrives, a sentinel is consumed, the queue closes, or ctx is
// cancelled; ok=false means the consumer should stop. The wait is
// cancellation-aware rather than a fixed-timeout poll: ctx cancellation
// wakes all waiters immediately.
func (q *Queue) Pop(ctx context.Context) (string, bool) {
	// Wake blocked waiters when the context is cancelled.
	stop := context.AfterFunc(ctx, func() {
		q.mu.Lock()
		q.cond.Broadcast()
		q.mu.Unlock()
	})
	defer stop()

	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 && q.sentinels == 0 && !q.closed && ctx.Err() == nil {
		q.cond.Wait()
	}

	if ctx.Err() != nil || q.closed {
		return "", false
	}

	// Real work takes priority over stop sentinels.
	if len(q.items) > 0 {
		path := q.items[0]
		q.items = q.items[1:]
		return path, true
	}

	q.sentinels--
	return "", false
}
