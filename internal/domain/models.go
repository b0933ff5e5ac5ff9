package domain

// SearchRequest describes one search. It is immutable once the search
// has been started.
type SearchRequest struct {
	Roots         []string // traversal starting points, in order
	Query         string   // filename substring to look for
	CaseSensitive bool
	Extensions    []string // normalized lowercase extensions without dot, nil = unconstrained
}

// Match represents a single matched file
type Match struct {
	Path string
}

// SearchProgress represents the current search state as seen by the UI
type SearchProgress struct {
	IsSearching  bool
	MatchesFound int
	CurrentQuery string
}
