package search

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyQuery is returned when a search is started with an empty query.
var ErrEmptyQuery = errors.New("search query is empty")

// ErrNoRoots is returned when no usable root remains after validation.
// It is fatal: the search never starts and a SearchFailed event is
// published instead of a completion event.
var ErrNoRoots = errors.New("no valid search roots")

// ErrSearchInProgress is returned when a search is started while
// another one is still running.
var ErrSearchInProgress = errors.New("search already in progress")

// ConfigurationError reports invalid extension filter tokens. The
// search never begins; every offending token is listed.
type ConfigurationError struct {
	InvalidTokens []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid extension(s): %s (use comma-separated alphanumeric extensions, e.g. \"py,txt\")",
		strings.Join(e.InvalidTokens, ", "))
}
