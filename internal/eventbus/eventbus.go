package eventbus

import (
	"runtime/debug"
	"sync"

	"github.com/charmbracelet/log"

	"fileseek/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSearchRequested       = domain.EventSearchRequested
	EventSearchStarted         = domain.EventSearchStarted
	EventFileMatched           = domain.EventFileMatched
	EventSearchCompleted       = domain.EventSearchCompleted
	EventSearchFailed          = domain.EventSearchFailed
	EventSearchCancelRequested = domain.EventSearchCancelRequested
	EventError                 = domain.EventError
	EventConfigLoaded          = domain.EventConfigLoaded
	EventConfigSaved           = domain.EventConfigSaved
)

// Re-export domain event types
type SearchRequestedEvent = domain.SearchRequestedEvent
type SearchStartedEvent = domain.SearchStartedEvent
type FileMatchedEvent = domain.FileMatchedEvent
type SearchCompletedEvent = domain.SearchCompletedEvent
type SearchFailedEvent = domain.SearchFailedEvent
type SearchCancelRequestedEvent = domain.SearchCancelRequestedEvent
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	nextID    uint64
	handlers  map[EventType][]subscription
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers. Match events are the
// hot path during a search, so publishing must never block a worker:
// the channel is buffered and drained by a single dispatcher.
func (b *bus) Publish(event DomainEvent) {
	switch event.Type() {
	case EventFileMatched:
		// Too frequent to log
	default:
		log.Debug("publishing event", "type", event.Type())
	}

	b.eventChan <- event
}

// Subscribe subscribes to events of a specific type.
// Returns an unsubscribe function.
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher after the queued events have been delivered.
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

// dispatch handles event distribution to subscribers. Handlers run on
// the dispatcher goroutine so that subscribers observe events in
// publication order; every match published before the terminal
// completion event is therefore delivered before it.
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.deliver(event)

		case <-b.quit:
			// Deliver anything still queued, then stop
			for {
				select {
				case event := <-b.eventChan:
					b.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (b *bus) deliver(event DomainEvent) {
	b.mu.RLock()
	subs := b.handlers[event.Type()]
	// Copy so handlers can unsubscribe while we iterate
	subsCopy := make([]subscription, len(subs))
	copy(subsCopy, subs)
	b.mu.RUnlock()

	for _, s := range subsCopy {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Error("event handler panic", "type", event.Type(), "panic", r, "stack", string(debug.Stack()))
				}
			}()
			s.handler(event)
		}()
	}
}
