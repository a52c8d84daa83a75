package runner

import (
	"path/filepath"
	"strings"
)

// Filter filters suites by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters suite entries by name pattern using wildcard
// matching. Supports patterns like "Calc*" or "*Text*"; a pattern without
// wildcards matches as a substring.
func (f *Filter) FilterByName(entries []Entry, pattern string) []Entry {
	if pattern == "" {
		return entries
	}

	var filtered []Entry

	for _, entry := range entries {
		matched, err := filepath.Match(pattern, entry.Name)
		if err == nil && matched {
			filtered = append(filtered, entry)
			continue
		}

		if strings.ContainsAny(pattern, "*?") {
			if wildcardParts(pattern, entry.Name) {
				filtered = append(filtered, entry)
			}
			continue
		}

		if strings.Contains(entry.Name, pattern) {
			filtered = append(filtered, entry)
		}
	}

	return filtered
}

// wildcardParts reports whether every literal segment of a wildcard pattern
// occurs in the name, so "*Text*" matches anything containing "Text" even
// when filepath.Match is stricter.
func wildcardParts(pattern, name string) bool {
	parts := strings.FieldsFunc(pattern, func(r rune) bool { return r == '*' || r == '?' })
	if len(parts) == 0 {
		return false
	}
	for _, part := range parts {
		if !strings.Contains(name, part) {
			return false
		}
	}
	return true
}
