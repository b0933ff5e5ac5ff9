package ui

// EventMsg wraps a domain event forwarded from the event bus into the
// Bubble Tea update loop.
type EventMsg struct {
	Event interface{}
}

// pagerClosedMsg is returned after the external pager exits
type pagerClosedMsg struct {
	err error
}
