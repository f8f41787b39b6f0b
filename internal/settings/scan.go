package settings

import (
	"bytes"
)

// scanState is the position of a byte relative to JSON string literals.
type scanState int

const (
	outsideString scanState = iota
	insideString
	escapePending
)

// stringScanner tracks whether the bytes fed to it are inside a string
// literal. Comment stripping and trailing-comma removal both drive the same
// scanner so they always agree on what is code and what is string content.
type stringScanner struct {
	state scanState
}

// step consumes c and reports whether c is structural, meaning it lies
// outside any string literal. Opening and closing quotes belong to the
// string and are never structural.
func (s *stringScanner) step(c byte) bool {
	switch s.state {
	case outsideString:
		if c == '"' {
			s.state = insideString
			return false
		}
		return true
	case insideString:
		switch c {
		case '\\':
			s.state = escapePending
		case '"':
			s.state = outsideString
		}
		return false
	default:
		// The escaped byte is consumed whatever it is, so `\\` leaves the
		// scanner inside the string with no escape pending.
		s.state = insideString
		return false
	}
}

// Preprocess turns the supported JSONC subset into strict JSON: `//` line
// comments are cut (along with whitespace before them) and commas directly
// followed by `]` or `}` are dropped. Newlines are preserved, so line
// numbers in the output match the input.
func Preprocess(data []byte) []byte {
	return removeTrailingCommas(stripLineComments(data))
}

func stripLineComments(data []byte) []byte {
	lines := bytes.Split(data, []byte("\n"))
	for i, line := range lines {
		line = bytes.TrimSuffix(line, []byte("\r"))

		var sc stringScanner
		for j := 0; j < len(line); j++ {
			if sc.step(line[j]) && line[j] == '/' && j+1 < len(line) && line[j+1] == '/' {
				line = bytes.TrimRight(line[:j], " \t")
				break
			}
		}
		lines[i] = line
	}
	return bytes.Join(lines, []byte("\n"))
}

func removeTrailingCommas(data []byte) []byte {
	out := make([]byte, 0, len(data))

	var sc stringScanner
	for i := 0; i < len(data); i++ {
		c := data[i]
		if sc.step(c) && c == ',' && closesNext(data[i+1:]) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// closesNext reports whether the first non-whitespace byte of rest closes
// an array or object.
func closesNext(rest []byte) bool {
	for _, c := range rest {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case ']', '}':
			return true
		default:
			return false
		}
	}
	return false
}
