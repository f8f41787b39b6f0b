package exclusion

import (
	"strings"
)

// RecursivePrefix makes a glob match at any directory depth.
const RecursivePrefix = "**/"

// FromIgnoreLine converts one gitignore line into an exclusion glob.
// Blank lines and `#` comments yield ok == false. Everything else is
// trimmed and prefixed with `**/` unless it already starts with it.
func FromIgnoreLine(line string) (pattern string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", false
	}
	if !strings.HasPrefix(line, RecursivePrefix) {
		line = RecursivePrefix + line
	}
	return line, true
}

// FromIgnoreLines converts gitignore lines in order, dropping the ones
// that produce no pattern.
func FromIgnoreLines(lines []string) []string {
	patterns := make([]string, 0, len(lines))
	for _, line := range lines {
		if p, ok := FromIgnoreLine(line); ok {
			patterns = append(patterns, p)
		}
	}
	return patterns
}
