package testuri

import "strings"

// TargetSeparator delimits targets in a target list string.
const TargetSeparator = ","

// ParseTargets splits a comma-separated target list.
//
// Segments are kept verbatim and in order: surrounding whitespace is not
// trimmed and empty segments are kept, so "a,,b" yields three targets, the
// middle one empty. Commas cannot be escaped.
//
// An empty raw string yields no targets at all rather than a single empty
// target.
func ParseTargets(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, TargetSeparator)
}
