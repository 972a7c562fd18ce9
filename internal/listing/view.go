package listing

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	ErrUnknownField   = errors.New("unknown search field")
	ErrUnknownSortKey = errors.New("unknown sort key")
)

// Config is the per-screen configuration of a View.
type Config[T any] struct {
	PageSize     int
	Filters      map[string]Extractor[T]
	DefaultField string
	Sorts        map[string]Compare[T]
}

// Snapshot is what a screen renders: the current page plus pager state.
type Snapshot[T any] struct {
	Items      []T       `json:"items"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalPages int       `json:"totalPages"`
	Total      int       `json:"total"`
	RawTotal   int       `json:"rawTotal"`
	Field      string    `json:"field,omitempty"`
	Query      string    `json:"query"`
	Sort       SortState `json:"sort"`
	Controls   Controls  `json:"controls"`
}

// View holds one screen's list state. Any change to the visible list
// re-clamps the current page. Safe for concurrent use.
type View[T any] struct {
	mu      sync.Mutex
	cfg     Config[T]
	loaded  bool
	raw     []T
	visible []T
	field   string
	query   string
	sort    SortState
	page    int
}

func NewView[T any](cfg Config[T]) *View[T] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	return &View[T]{cfg: cfg, field: cfg.DefaultField, page: 1, raw: []T{}, visible: []T{}}
}

// Loaded reports whether SetItems has been called since creation.
func (v *View[T]) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

// SetItems replaces the raw list, e.g. after a fetch.
func (v *View[T]) SetItems(items []T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if items == nil {
		items = []T{}
	}
	v.raw = slices.Clone(items)
	v.loaded = true
	v.recompute()
}

// Items returns a copy of the raw, unfiltered list.
func (v *View[T]) Items() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.raw)
}

// Search sets the search field and query. An empty field keeps the
// current one. Changing either resets to page 1.
func (v *View[T]) Search(field, query string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if field == "" {
		field = v.field
	}
	if field != "" {
		if _, ok := v.cfg.Filters[field]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}
	changed := field != v.field || query != v.query
	v.field, v.query = field, query
	if changed {
		v.page = 1
	}
	v.recompute()
	return nil
}

// ToggleSort applies one header click on key.
func (v *View[T]) ToggleSort(key string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.cfg.Sorts[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSortKey, key)
	}
	v.sort = v.sort.Toggle(key)
	v.recompute()
	return nil
}

// SetPage moves to page p, clamped into range.
func (v *View[T]) SetPage(p int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page = Clamp(p, TotalPages(len(v.visible), v.cfg.PageSize))
}

// Find returns the first raw record matching.
func (v *View[T]) Find(match func(T) bool) (T, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, item := range v.raw {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Remove drops every raw record matching and returns how many went.
func (v *View[T]) Remove(match func(T) bool) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	before := len(v.raw)
	v.raw = slices.DeleteFunc(v.raw, match)
	removed := before - len(v.raw)
	if removed > 0 {
		v.recompute()
	}
	return removed
}

// Patch rewrites every raw record matching with fn.
func (v *View[T]) Patch(match func(T) bool, fn func(T) T) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	n := 0
	for i, item := range v.raw {
		if match(item) {
			v.raw[i] = fn(item)
			n++
		}
	}
	if n > 0 {
		v.recompute()
	}
	return n
}

func (v *View[T]) Snapshot() Snapshot[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	total := TotalPages(len(v.visible), v.cfg.PageSize)
	return Snapshot[T]{
		Items:      slices.Clone(Page(v.visible, v.page, v.cfg.PageSize)),
		Page:       v.page,
		PageSize:   v.cfg.PageSize,
		TotalPages: total,
		Total:      len(v.visible),
		RawTotal:   len(v.raw),
		Field:      v.field,
		Query:      v.query,
		Sort:       v.sort,
		Controls:   BuildControls(v.page, total),
	}
}

// recompute rebuilds the visible list from scratch. Caller holds mu.
func (v *View[T]) recompute() {
	visible := Filter(v.raw, v.cfg.Filters[v.field], v.query)
	visible = Sort(visible, v.cfg.Sorts[v.sort.Key], v.sort.Dir)
	v.visible = visible
	v.page = Clamp(v.page, TotalPages(len(v.visible), v.cfg.PageSize))
}
