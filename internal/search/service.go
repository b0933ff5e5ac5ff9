package search

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"fileseek/internal/domain"
	"fileseek/internal/eventbus"
)

// SearchService traverses filesystem trees looking for files whose name
// contains a query substring
type SearchService interface {
	// StartSearch validates the request and launches the worker pool.
	// It returns immediately; matches and the terminal completion
	// event are delivered through the event bus.
	StartSearch(ctx context.Context, req domain.SearchRequest) error
	// CancelSearch signals the running search to stop at its next
	// checkpoint. Idempotent and safe after completion.
	CancelSearch()
}

// searchService is the concrete implementation
type searchService struct {
	bus         eventbus.EventBus
	workers     int // pool size override, 0 = auto
	mu          sync.Mutex
	isSearching bool
	cancelFunc  context.CancelFunc
	run         *searchRun
	poolSize    int
	wg          sync.WaitGroup
}

// searchRun is the shared state of one search. Workers only read the
// request fields; the queue and the match counter are the sole mutable
// state they share.
type searchRun struct {
	queue         *Queue
	target        string // query, pre-lowered when case-insensitive
	caseSensitive bool
	exts          extensionSet
	matches       atomic.Int64
}

// NewSearchService creates a new search service. workers overrides the
// pool size; 0 picks a bounded multiple of the logical core count.
func NewSearchService(bus eventbus.EventBus, workers int) SearchService {
	s := &searchService{
		bus:     bus,
		workers: workers,
	}

	// Subscribe to search requests
	bus.Subscribe(eventbus.EventSearchRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchRequestedEvent); ok {
			go func() {
				if err := s.StartSearch(context.Background(), event.Request); err != nil {
					log.Warn("search not started", "err", err)
				}
			}()
		}
	})
	bus.Subscribe(eventbus.EventSearchCancelRequested, func(e eventbus.DomainEvent) {
		s.CancelSearch()
	})

	return s
}

// StartSearch starts searching for files matching the request
func (s *searchService) StartSearch(ctx context.Context, req domain.SearchRequest) error {
	if strings.TrimSpace(req.Query) == "" {
		return ErrEmptyQuery
	}

	exts, err := newExtensionSet(req.Extensions)
	if err != nil {
		return err
	}

	roots := usableRoots(req.Roots)
	if len(roots) == 0 {
		// Fatal: surfaced as a terminal error event, never a
		// completion event.
		s.bus.Publish(eventbus.SearchFailedEvent{Err: ErrNoRoots})
		return ErrNoRoots
	}

	target := req.Query
	if !req.CaseSensitive {
		target = strings.ToLower(target)
	}

	s.mu.Lock()
	if s.isSearching {
		s.mu.Unlock()
		return ErrSearchInProgress
	}
	s.isSearching = true

	// Each worker receives this context at spawn time; it is the only
	// cancellation signal and is written once, by CancelSearch.
	searchCtx, cancel := context.WithCancel(ctx)
	s.cancelFunc = cancel

	run := &searchRun{
		queue:         NewQueue(),
		target:        target,
		caseSensitive: req.CaseSensitive,
		exts:          exts,
	}
	s.run = run
	s.poolSize = s.sizePool()
	workers := s.poolSize
	s.mu.Unlock()

	for _, root := range roots {
		run.queue.Push(root)
	}

	s.bus.Publish(eventbus.SearchStartedEvent{Roots: roots, Query: req.Query})
	log.Info("search started", "query", req.Query, "roots", len(roots), "workers", workers)

	start := time.Now()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		g := new(errgroup.Group)
		for i := 0; i < workers; i++ {
			g.Go(func() error {
				s.runWorker(searchCtx, run)
				return nil
			})
		}
		_ = g.Wait()

		cancelled := searchCtx.Err() != nil

		s.mu.Lock()
		s.isSearching = false
		s.cancelFunc = nil
		s.run = nil
		s.mu.Unlock()
		cancel()

		matches := int(run.matches.Load())
		elapsed := time.Since(start)
		log.Info("search finished", "matches", matches, "elapsed", elapsed, "cancelled", cancelled)

		// Exactly one terminal event, natural completion and
		// cancellation alike. The bus delivers in publication order,
		// so every match already published arrives first.
		s.bus.Publish(eventbus.SearchCompletedEvent{
			Matches:   matches,
			Elapsed:   elapsed,
			Cancelled: cancelled,
		})
	}()

	return nil
}

// CancelSearch stops any ongoing search
func (s *searchService) CancelSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelFunc == nil {
		return
	}
	s.cancelFunc()

	// One stop sentinel per worker so each unblocks promptly even if
	// it is already inside Pop.
	if s.run != nil {
		for i := 0; i < s.poolSize; i++ {
			s.run.queue.PushSentinel()
		}
	}
}

// sizePool returns the worker pool size: a bounded multiple of the
// logical core count to overlap I/O wait without excessive goroutine
// overhead. A static heuristic, overridable through configuration.
func (s *searchService) sizePool() int {
	if s.workers > 0 {
		return s.workers
	}
	n := runtime.NumCPU() * 2
	if n > 32 {
		n = 32
	}
	if n < 1 {
		n = 1
	}
	return n
}

// usableRoots drops blank entries, preserving order. Roots that exist
// but cannot be read are left in: the workers skip them without
// aborting the rest of the traversal.
func usableRoots(roots []string) []string {
	out := make([]string, 0, len(roots))
	for _, r := range roots {
		if strings.TrimSpace(r) != "" {
			out = append(out, r)
		}
	}
	return out
}
