package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchRequested       EventType = "SearchRequested"
	EventSearchStarted         EventType = "SearchStarted"
	EventFileMatched           EventType = "FileMatched"
	EventSearchCompleted       EventType = "SearchCompleted"
	EventSearchFailed          EventType = "SearchFailed"
	EventSearchCancelRequested EventType = "SearchCancelRequested"
	EventError                 EventType = "Error"
	EventConfigLoaded          EventType = "ConfigLoaded"
	EventConfigSaved           EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchRequestedEvent is emitted to request a new search
type SearchRequestedEvent struct {
	Request SearchRequest
}

func (e SearchRequestedEvent) Type() EventType { return EventSearchRequested }

// SearchStartedEvent is emitted when traversal begins
type SearchStartedEvent struct {
	Roots []string
	Query string
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// FileMatchedEvent is emitted once per matched file
type FileMatchedEvent struct {
	Path string
}

func (e FileMatchedEvent) Type() EventType { return EventFileMatched }

// SearchCompletedEvent is the terminal event of a search. It is emitted
// exactly once, for natural completion and cancellation alike.
type SearchCompletedEvent struct {
	Matches   int
	Elapsed   time.Duration
	Cancelled bool
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent replaces the completion event when the search could
// not start at all (no usable roots, pool failure).
type SearchFailedEvent struct {
	Err error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// SearchCancelRequestedEvent is emitted to request cancellation of the
// running search
type SearchCancelRequestedEvent struct{}

func (e SearchCancelRequestedEvent) Type() EventType { return EventSearchCancelRequested }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	DefaultRoots []string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
