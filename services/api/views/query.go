package views

import (
	"strings"

	"github.com/qcdash/qc-dashboard/services/api/table"
)

// Query is the client-side state of a table view sent with each request.
type Query struct {
	Search   string
	Status   string
	Filters  map[string]string
	Sort     []table.Sort
	Page     int
	PageSize int
	Hidden   []string
	Selected []string
}

// ParseSort reads "col,-col": a leading '-' sorts descending.
func ParseSort(s string) []table.Sort {
	var out []table.Sort
	for _, part := range SplitList(s) {
		sort := table.Sort{Column: part}
		if rest, ok := strings.CutPrefix(part, "-"); ok {
			sort = table.Sort{Column: rest, Desc: true}
		}
		if sort.Column != "" {
			out = append(out, sort)
		}
	}
	return out
}

// SplitList splits a comma separated list, dropping empty items.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Apply pushes the query into t. The page index is applied last since
// filter and page size changes reset it.
func Apply[Row any](t *table.Table[Row], q Query) error {
	for id, value := range q.Filters {
		if err := t.SetFilter(id, value); err != nil {
			return err
		}
	}
	t.SetSearch(q.Search)
	t.SetSelectFilter(q.Status)
	if len(q.Sort) > 0 {
		if err := t.SetSorting(q.Sort); err != nil {
			return err
		}
	}
	for _, id := range q.Hidden {
		if err := t.SetVisible(id, false); err != nil {
			return err
		}
	}
	for _, id := range q.Selected {
		t.SetSelected(id, true)
	}
	if q.PageSize > 0 {
		if err := t.SetPageSize(q.PageSize); err != nil {
			return err
		}
	}
	t.SetPageIndex(q.Page)
	return nil
}
