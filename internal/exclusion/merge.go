package exclusion

// Merge returns the candidates that are not already in existing, in
// candidate order. The result is meant to be appended to existing.
//
// Only existing is used for membership: a pattern repeated within
// candidates is returned once per occurrence. Appending the result and
// merging the same candidates again returns nothing.
func Merge(existing, candidates []string) []string {
	present := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		present[p] = struct{}{}
	}

	additions := []string{}
	for _, p := range candidates {
		if _, ok := present[p]; ok {
			continue
		}
		additions = append(additions, p)
	}
	return additions
}

// Append returns existing followed by additions in a new slice.
func Append(existing, additions []string) []string {
	out := make([]string, 0, len(existing)+len(additions))
	out = append(out, existing...)
	return append(out, additions...)
}
