// Package screens configures the generic list and export machinery for each
// entity the console manages.
package screens

import (
	"rental_admin/internal/export"
	"rental_admin/internal/listing"
)

const (
	Users         = "users"
	Staff         = "staff"
	Vehicles      = "vehicles"
	Bookings      = "bookings"
	Notifications = "notifications"
	Banners       = "banners"
)

// Screen ties an entity type to its list view, export sheet and row shape.
type Screen[T any] struct {
	Name  string
	List  listing.Config[T]
	Sheet *export.Sheet[T]
	// Key is the record id used by row actions.
	Key func(T) string
	// Present decorates a record for display, e.g. with badge variants.
	Present func(T) any
}

// Rows applies Present to a page of records.
func (s Screen[T]) Rows(items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		if s.Present != nil {
			out[i] = s.Present(item)
		} else {
			out[i] = item
		}
	}
	return out
}

// Matches returns a predicate selecting records with the given id.
func (s Screen[T]) Matches(id string) func(T) bool {
	return func(item T) bool { return s.Key(item) == id }
}
