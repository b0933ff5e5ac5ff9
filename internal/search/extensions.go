package search

import (
	"path/filepath"
	"regexp"
	"strings"
)

var extensionToken = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// ParseExtensions parses a comma-separated extension filter string such
// as "py, .TXT,md" into normalized tokens (lowercase, no leading dot).
// A blank string means unconstrained and yields nil. Malformed tokens
// are all collected into a single ConfigurationError so the user sees
// every offending token at once.
func ParseExtensions(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var exts []string
	var invalid []string
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		token := strings.TrimPrefix(part, ".")
		if !extensionToken.MatchString(token) {
			invalid = append(invalid, part)
			continue
		}
		exts = append(exts, strings.ToLower(token))
	}

	if len(invalid) > 0 {
		return nil, &ConfigurationError{InvalidTokens: invalid}
	}
	return exts, nil
}

// extensionSet is the normalized filter a search runs with. A nil set
// accepts everything.
type extensionSet map[string]struct{}

// newExtensionSet validates and normalizes pre-split tokens, e.g. the
// Extensions field of a SearchRequest. Returns nil for an empty list.
func newExtensionSet(exts []string) (extensionSet, error) {
	if len(exts) == 0 {
		return nil, nil
	}

	set := make(extensionSet, len(exts))
	var invalid []string
	for _, ext := range exts {
		token := strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if !extensionToken.MatchString(token) {
			invalid = append(invalid, ext)
			continue
		}
		set[strings.ToLower(token)] = struct{}{}
	}

	if len(invalid) > 0 {
		return nil, &ConfigurationError{InvalidTokens: invalid}
	}
	return set, nil
}

// allows reports whether the file name passes the filter.
func (s extensionSet) allows(name string) bool {
	if s == nil {
		return true
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	_, ok := s[ext]
	return ok
}
