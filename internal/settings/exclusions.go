package settings

import (
	"fmt"
)

// ExclusionsKey is the top-level Zed setting listing glob patterns the
// editor skips when scanning a project.
const ExclusionsKey = "file_scan_exclusions"

// Exclusions returns the file_scan_exclusions list of doc. An absent key
// yields an empty list. Any other shape is a *FieldError: the caller must
// not overwrite a list it could not read.
func Exclusions(doc *Object) ([]string, error) {
	v, ok := doc.Get(ExclusionsKey)
	if !ok || v == nil {
		return []string{}, nil
	}

	var items []any
	switch vv := v.(type) {
	case []any:
		items = vv
	case []string:
		return append([]string{}, vv...), nil
	default:
		return nil, &FieldError{
			Field:   ExclusionsKey,
			Message: fmt.Sprintf("expected an array of strings, got %s", kindName(v)),
		}
	}

	patterns := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, &FieldError{
				Field:   ExclusionsKey,
				Message: fmt.Sprintf("element %d: expected a string, got %s", i, kindName(item)),
			}
		}
		patterns = append(patterns, s)
	}
	return patterns, nil
}

// SetExclusions stores patterns as the file_scan_exclusions list. The key
// keeps its position when it already exists.
func SetExclusions(doc *Object, patterns []string) {
	items := make([]any, len(patterns))
	for i, p := range patterns {
		items[i] = p
	}
	doc.Set(ExclusionsKey, items)
}
