// Package listing is the list-management pipeline shared by every admin
// screen: raw list -> search filter -> sort -> page.
package listing

import "strings"

// Extractor returns the searchable string form of one field of a record.
// Absent values must come back as "".
type Extractor[T any] func(T) string

// Filter keeps the records whose extracted field contains query,
// case-insensitively. An empty query returns items unchanged.
func Filter[T any](items []T, extract Extractor[T], query string) []T {
	if query == "" || extract == nil {
		return items
	}
	needle := strings.ToLower(query)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(extract(item)), needle) {
			out = append(out, item)
		}
	}
	return out
}
