package listing

// TotalPages is ceil(n/size). It is 0 for an empty list.
func TotalPages(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Clamp moves page into [1, max(1, totalPages)].
func Clamp(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Page returns items[(page-1)*size : page*size], bounded by len(items).
func Page[T any](items []T, page, size int) []T {
	if size <= 0 || page < 1 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// PageLink is one entry of the page-number strip: a page or an ellipsis.
type PageLink struct {
	Page     int  `json:"page,omitempty"`
	Active   bool `json:"active,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// Controls describes the Prev / numbers / Next pagination bar.
type Controls struct {
	PrevDisabled bool       `json:"prevDisabled"`
	NextDisabled bool       `json:"nextDisabled"`
	Links        []PageLink `json:"links"`
}

// BuildControls always shows the first and last page plus the current page
// and its neighbours. Each gap collapses into one ellipsis.
func BuildControls(current, total int) Controls {
	if total < 1 {
		return Controls{PrevDisabled: true, NextDisabled: true, Links: []PageLink{}}
	}
	current = Clamp(current, total)

	pages := []int{1}
	for _, p := range []int{current - 1, current, current + 1, total} {
		if p > 1 && p <= total && p > pages[len(pages)-1] {
			pages = append(pages, p)
		}
	}

	links := make([]PageLink, 0, len(pages)*2)
	last := 0
	for _, p := range pages {
		if p-last > 1 {
			links = append(links, PageLink{Ellipsis: true})
		}
		links = append(links, PageLink{Page: p, Active: p == current})
		last = p
	}

	return Controls{
		PrevDisabled: current == 1,
		NextDisabled: current == total,
		Links:        links,
	}
}
