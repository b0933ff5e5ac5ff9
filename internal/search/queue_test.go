package search

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFOOrder(t *testing.T) {
	q := NewQueue()
	q.Push("a")
	q.Push("b")
	q.Push("c")

	ctx := context.Background()
	for _, want := range []string{"a", "b", "c"} {
		got, ok := q.Pop(ctx)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestQueueNoPushLostUnderConcurrency(t *testing.T) {
	q := NewQueue()

	const producers = 8
	const perProducer = 250

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(fmt.Sprintf("dir-%d-%d", p, i))
			}
		}(p)
	}
	wg.Wait()

	seen := make(map[string]bool)
	ctx := context.Background()
	for i := 0; i < producers*perProducer; i++ {
		path, ok := q.Pop(ctx)
		require.True(t, ok)
		require.False(t, seen[path], "duplicate pop: %s", path)
		seen[path] = true
	}
	assert.Len(t, seen, producers*perProducer)
}

func TestQueueSentinelUnblocksExactlyOne(t *testing.T) {
	q := NewQueue()

	const consumers = 3
	released := make(chan struct{}, consumers)
	for i := 0; i < consumers; i++ {
		go func() {
			_, ok := q.Pop(context.Background())
			assert.False(t, ok)
			released <- struct{}{}
		}()
	}

	// Give all consumers time to block
	time.Sleep(50 * time.Millisecond)

	q.PushSentinel()

	select {
	case <-released:
	case <-time.After(2 * time.Second):
		t.Fatal("sentinel did not unblock a consumer")
	}

	// The others must still be blocked
	select {
	case <-released:
		t.Fatal("sentinel unblocked more than one consumer")
	case <-time.After(100 * time.Millisecond):
	}

	q.Close()
	for i := 0; i < consumers-1; i++ {
		select {
		case <-released:
		case <-time.After(2 * time.Second):
			t.Fatal("close did not release remaining consumers")
		}
	}
}

func TestQueueRealWorkBeforeSentinel(t *testing.T) {
	q := NewQueue()
	q.PushSentinel()
	q.Push("work")

	path, ok := q.Pop(context.Background())
	require.True(t, ok)
	assert.Equal(t, "work", path)

	_, ok = q.Pop(context.Background())
	assert.False(t, ok, "second pop should consume the sentinel")
}

func TestQueueCountedCompletion(t *testing.T) {
	q := NewQueue()
	ctx := context.Background()

	q.Push("root")

	root, ok := q.Pop(ctx)
	require.True(t, ok)
	require.Equal(t, "root", root)

	// Mid-listing the root produces two children, then completes.
	q.Push("root/a")
	q.Push("root/b")
	q.Done()

	for i := 0; i < 2; i++ {
		_, ok := q.Pop(ctx)
		require.True(t, ok)
	}

	// Both children are being "processed" now; the queue is empty but
	// not finished. A consumer blocked here must only be released once
	// the last child is done.
	blockedDone := make(chan bool, 1)
	go func() {
		_, ok := q.Pop(ctx)
		blockedDone <- ok
	}()
	time.Sleep(20 * time.Millisecond)

	select {
	case <-blockedDone:
		t.Fatal("consumer released while work was still in flight")
	default:
	}

	q.Done()
	q.Done()

	select {
	case ok := <-blockedDone:
		assert.False(t, ok, "queue should close when in-flight count reaches zero")
	case <-time.After(2 * time.Second):
		t.Fatal("counted completion did not release blocked consumer")
	}

	// And further pops return immediately
	_, ok = q.Pop(ctx)
	assert.False(t, ok)
}

func TestQueuePopContextCancellation(t *testing.T) {
	q := NewQueue()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan bool, 1)
	go func() {
		_, ok := q.Pop(ctx)
		done <- ok
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled context did not unblock Pop")
	}
}

func TestQueuePushAfterCloseIsDropped(t *testing.T) {
	q := NewQueue()
	q.Close()
	q.Push("late")
	assert.Equal(t, 0, q.Len())

	_, ok := q.Pop(context.Background())
	assert.False(t, ok)
}
