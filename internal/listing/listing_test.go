package listing

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID    string
	Name  string
	City  string
	Price float64
}

func rows(n int) []row {
	out := make([]row, n)
	for i := range out {
		out[i] = row{ID: fmt.Sprintf("r%02d", i+1), Name: fmt.Sprintf("Name %02d", i+1), Price: float64(n - i)}
	}
	return out
}

func byName(r row) string { return r.Name }

func testConfig(size int) Config[row] {
	return Config[row]{
		PageSize:     size,
		DefaultField: "name",
		Filters: map[string]Extractor[row]{
			"name": byName,
			"city": func(r row) string { return r.City },
		},
		Sorts: map[string]Compare[row]{
			"name":  ByString(byName),
			"price": ByNumber(func(r row) float64 { return r.Price }),
		},
	}
}

func TestFilter_CaseInsensitiveSubstring(t *testing.T) {
	items := []row{
		{ID: "1", Name: "Asha Verma"},
		{ID: "2", Name: "RAVI kumar"},
		{ID: "3", Name: "Kumari Devi"},
		{ID: "4"},
	}

	got := Filter(items, byName, "KUMAR")
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, "3", got[1].ID)

	for _, q := range []string{"a", "verma", "zzz", " "} {
		got := Filter(items, byName, q)
		for _, item := range items {
			want := strings.Contains(strings.ToLower(item.Name), strings.ToLower(q))
			assert.Equal(t, want, containsID(got, item.ID), "query %q item %s", q, item.ID)
		}
	}
}

func TestFilter_EmptyQueryReturnsInput(t *testing.T) {
	items := rows(7)
	assert.Equal(t, items, Filter(items, byName, ""))
}

func containsID(items []row, id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}

func TestTotalPagesAndPageLengths(t *testing.T) {
	for n := 0; n <= 37; n++ {
		for _, s := range []int{1, 5, 10} {
			items := rows(n)
			total := TotalPages(n, s)
			assert.Equal(t, (n+s-1)/s, total, "n=%d s=%d", n, s)
			assert.Len(t, Page(items, 1, s), min(n, s))
			if total > 0 {
				assert.Len(t, Page(items, total, s), n-s*(total-1))
			}
		}
	}
}

func TestPagesConcatenateToInput(t *testing.T) {
	for n := 0; n <= 23; n++ {
		items := rows(n)
		var joined []row
		for p := 1; p <= TotalPages(n, 5); p++ {
			joined = append(joined, Page(items, p, 5)...)
		}
		if n == 0 {
			assert.Empty(t, joined)
			continue
		}
		assert.Equal(t, items, joined)
	}
}

func TestPage_OutOfRange(t *testing.T) {
	items := rows(3)
	assert.Empty(t, Page(items, 2, 5))
	assert.Empty(t, Page(items, 0, 5))
}

func TestBuildControls(t *testing.T) {
	render := func(c Controls) string {
		var parts []string
		for _, l := range c.Links {
			switch {
			case l.Ellipsis:
				parts = append(parts, "…")
			case l.Active:
				parts = append(parts, fmt.Sprintf("[%d]", l.Page))
			default:
				parts = append(parts, fmt.Sprint(l.Page))
			}
		}
		return strings.Join(parts, " ")
	}

	assert.Equal(t, "[1]", render(BuildControls(1, 1)))
	assert.Equal(t, "[1] 2 … 10", render(BuildControls(1, 10)))
	assert.Equal(t, "1 … 4 [5] 6 … 10", render(BuildControls(5, 10)))
	assert.Equal(t, "1 2 [3] 4 … 10", render(BuildControls(3, 10)))
	assert.Equal(t, "1 … 9 [10]", render(BuildControls(10, 10)))
	assert.Equal(t, "1 [2] 3", render(BuildControls(2, 3)))

	c := BuildControls(1, 4)
	assert.True(t, c.PrevDisabled)
	assert.False(t, c.NextDisabled)
	c = BuildControls(4, 4)
	assert.False(t, c.PrevDisabled)
	assert.True(t, c.NextDisabled)

	empty := BuildControls(1, 0)
	assert.Empty(t, empty.Links)
	assert.True(t, empty.PrevDisabled)
	assert.True(t, empty.NextDisabled)
}

func TestSortToggle(t *testing.T) {
	var s SortState
	s = s.Toggle("name")
	assert.Equal(t, SortState{Key: "name", Dir: Ascending}, s)
	s = s.Toggle("name")
	assert.Equal(t, SortState{Key: "name", Dir: Descending}, s)
	s = s.Toggle("name")
	assert.Equal(t, SortState{Key: "name", Dir: Ascending}, s)
	s = s.Toggle("name").Toggle("price")
	assert.Equal(t, SortState{Key: "price", Dir: Ascending}, s)
}

func TestView_SortToggleOrdersRows(t *testing.T) {
	v := NewView(testConfig(10))
	v.SetItems([]row{{ID: "b", Name: "beta"}, {ID: "a", Name: "Alpha"}, {ID: "c", Name: "gamma"}})

	require.NoError(t, v.ToggleSort("name"))
	assert.Equal(t, []string{"a", "b", "c"}, ids(v.Snapshot().Items))

	require.NoError(t, v.ToggleSort("name"))
	assert.Equal(t, []string{"c", "b", "a"}, ids(v.Snapshot().Items))

	assert.ErrorIs(t, v.ToggleSort("nope"), ErrUnknownSortKey)
}

func ids(items []row) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestView_SearchResetsPage(t *testing.T) {
	v := NewView(testConfig(5))
	v.SetItems(rows(30))

	v.SetPage(3)
	require.Equal(t, 3, v.Snapshot().Page)

	// Query matching every row keeps enough pages, but the page still resets.
	require.NoError(t, v.Search("name", "name"))
	snap := v.Snapshot()
	assert.Equal(t, 1, snap.Page)
	assert.Equal(t, 6, snap.TotalPages)

	// Re-applying the same search does not move the page.
	v.SetPage(4)
	require.NoError(t, v.Search("name", "name"))
	assert.Equal(t, 4, v.Snapshot().Page)

	// Changing only the field also resets.
	require.NoError(t, v.Search("city", "name"))
	assert.Equal(t, 1, v.Snapshot().Page)

	assert.ErrorIs(t, v.Search("password", "x"), ErrUnknownField)
}

func TestView_ClampsPageWhenListShrinks(t *testing.T) {
	v := NewView(testConfig(5))
	v.SetItems(rows(11))
	v.SetPage(3)
	require.Equal(t, 3, v.Snapshot().Page)

	removed := v.Remove(func(r row) bool { return r.ID == "r11" })
	assert.Equal(t, 1, removed)
	snap := v.Snapshot()
	assert.Equal(t, 2, snap.Page)
	assert.Equal(t, 2, snap.TotalPages)
	assert.Len(t, snap.Items, 5)

	v.SetItems(nil)
	snap = v.Snapshot()
	assert.Equal(t, 1, snap.Page)
	assert.Equal(t, 0, snap.TotalPages)
	assert.Empty(t, snap.Items)
}

func TestView_SetPageClamps(t *testing.T) {
	v := NewView(testConfig(10))
	v.SetItems(rows(25))
	v.SetPage(99)
	assert.Equal(t, 3, v.Snapshot().Page)
	v.SetPage(-2)
	assert.Equal(t, 1, v.Snapshot().Page)
}

func TestView_PatchAndFind(t *testing.T) {
	v := NewView(testConfig(10))
	v.SetItems(rows(3))

	n := v.Patch(func(r row) bool { return r.ID == "r02" }, func(r row) row {
		r.Name = "Renamed"
		return r
	})
	assert.Equal(t, 1, n)

	got, ok := v.Find(func(r row) bool { return r.ID == "r02" })
	require.True(t, ok)
	assert.Equal(t, "Renamed", got.Name)

	require.NoError(t, v.Search("", "renamed"))
	assert.Equal(t, []string{"r02"}, ids(v.Snapshot().Items))
	assert.Len(t, v.Items(), 3)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	a := ViewFor(r, "s1", "staff", testConfig(10))
	b := ViewFor(r, "s1", "staff", testConfig(10))
	c := ViewFor(r, "s2", "staff", testConfig(10))
	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, r.Sessions())
	assert.ElementsMatch(t, []string{"s1", "s2"}, r.SessionIDs())

	r.DropSession("s1")
	assert.Equal(t, 1, r.Sessions())
	assert.NotSame(t, a, ViewFor(r, "s1", "staff", testConfig(10)))
}
