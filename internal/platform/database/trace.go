package database

import (
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

var whitespace = regexp.MustCompile(`\s+`)

// FormatQueryForTrace collapses whitespace and truncates long statements so
// span attributes stay readable.
func FormatQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := whitespace.ReplaceAllString(query, " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}
