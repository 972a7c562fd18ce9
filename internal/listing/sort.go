package listing

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

type Direction string

const (
	Unsorted   Direction = ""
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortState is the column-header sort selection of a screen.
type SortState struct {
	Key string    `json:"key,omitempty"`
	Dir Direction `json:"dir,omitempty"`
}

// Toggle applies one click on the header of key. Reselecting the current
// key flips the direction; any other key starts ascending.
func (s SortState) Toggle(key string) SortState {
	if s.Key == key && s.Dir == Ascending {
		return SortState{Key: key, Dir: Descending}
	}
	return SortState{Key: key, Dir: Ascending}
}

// Compare orders two records by one field.
type Compare[T any] func(a, b T) int

func ByString[T any](f func(T) string) Compare[T] {
	return func(a, b T) int {
		return strings.Compare(strings.ToLower(f(a)), strings.ToLower(f(b)))
	}
}

func ByNumber[T any](f func(T) float64) Compare[T] {
	return func(a, b T) int { return cmp.Compare(f(a), f(b)) }
}

// ByTime orders by timestamp; the zero time sorts first.
func ByTime[T any](f func(T) time.Time) Compare[T] {
	return func(a, b T) int { return f(a).Compare(f(b)) }
}

// Sort returns a sorted copy of items. Ties may come back in any order.
func Sort[T any](items []T, compare Compare[T], dir Direction) []T {
	out := slices.Clone(items)
	if compare == nil || dir == Unsorted {
		return out
	}
	if dir == Descending {
		slices.SortFunc(out, func(a, b T) int { return compare(b, a) })
	} else {
		slices.SortFunc(out, compare)
	}
	return out
}
