package suggest

import "strings"

// Filter returns the rows whose original, corrected, reason, sentence, or
// context contains the query, case-insensitively. An empty query returns the
// input unchanged. Order is preserved, so filtering an already-filtered slice
// with the same query is a no-op.
func Filter(rows []Row, query string) []Row {
	if query == "" {
		return rows
	}

	q := strings.ToLower(query)
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if matches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

// FilterDocument narrows rows to a single source document. An empty document
// selects all rows. Composes (AND) with Filter in multi-document mode.
func FilterDocument(rows []Row, document string) []Row {
	if document == "" {
		return rows
	}

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.Document == document {
			out = append(out, r)
		}
	}
	return out
}

// Documents returns the distinct document tags present in rows, in first-seen
// order. Rows without a tag are ignored.
func Documents(rows []Row) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range rows {
		if r.Document == "" {
			continue
		}
		if _, ok := seen[r.Document]; ok {
			continue
		}
		seen[r.Document] = struct{}{}
		out = append(out, r.Document)
	}
	return out
}

func matches(r Row, q string) bool {
	for _, field := range []string{r.Original, r.Corrected, r.Reason, r.Sentence, r.Context} {
		if field != "" && strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
