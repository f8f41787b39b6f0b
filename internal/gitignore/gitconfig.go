package gitignore

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// scanConfigFile looks up section.key in a git config file with a plain
// line scanner. It understands what a global config realistically holds:
// [section] headers, key = value lines, # and ; comments, and double
// quoted values with backslash escapes. Section and key names are
// case-insensitive. A missing file yields ok == false and no error.
func scanConfigFile(path, section, key string) (value string, ok bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("opening git config %s: %w", path, err)
	}
	defer f.Close()

	section = strings.ToLower(section)
	key = strings.ToLower(key)

	var current string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}

		if line[0] == '[' {
			current = sectionName(line)
			continue
		}
		if current != section {
			continue
		}

		name, raw, hasValue := strings.Cut(line, "=")
		if !hasValue || strings.ToLower(strings.TrimSpace(name)) != key {
			continue
		}
		// Later assignments override earlier ones.
		value, ok = parseConfigValue(raw), true
	}
	if err := scanner.Err(); err != nil {
		return "", false, fmt.Errorf("reading git config %s: %w", path, err)
	}
	return value, ok, nil
}

// sectionName extracts the lower-cased section from a header such as
// `[core]` or `[remote "origin"]`.
func sectionName(header string) string {
	body := strings.TrimPrefix(header, "[")
	if end := strings.IndexByte(body, ']'); end >= 0 {
		body = body[:end]
	}
	body = strings.TrimSpace(body)
	if i := strings.IndexAny(body, " \t\""); i >= 0 {
		body = body[:i]
	}
	return strings.ToLower(body)
}

// parseConfigValue strips an inline comment and resolves quoting and
// escapes in the right-hand side of a key = value line. Whitespace is
// trimmed only where it is unquoted; `" x "` keeps both spaces.
func parseConfigValue(raw string) string {
	var b strings.Builder
	inQuote := false
	// keep is the prefix of b that trimming must not cut into: everything
	// up to the last quoted or escaped byte.
	keep := 0
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '\\' && i+1 < len(raw):
			i++
			switch raw[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(raw[i])
			}
			keep = b.Len()
		case c == '"':
			inQuote = !inQuote
			keep = b.Len()
		case inQuote:
			b.WriteByte(c)
			keep = b.Len()
		case c == '#' || c == ';':
			return trimUnquoted(b.String(), keep)
		case (c == ' ' || c == '\t') && b.Len() == 0:
			// Leading blanks before the value.
		default:
			b.WriteByte(c)
		}
	}
	return trimUnquoted(b.String(), keep)
}

func trimUnquoted(s string, keep int) string {
	return s[:keep] + strings.TrimRight(s[keep:], " \t")
}
