package table

import (
	"slices"
	"strings"
)

// HeaderView describes a rendered column.
type HeaderView struct {
	ID        string `json:"id"`
	Header    string `json:"header"`
	Sortable  bool   `json:"sortable"`
	Hideable  bool   `json:"hideable"`
	Sort      string `json:"sort,omitempty"`
	SortIndex int    `json:"sortIndex,omitempty"`
}

// RowView is one row of the current page.
type RowView[Row any] struct {
	ID       string            `json:"id"`
	Data     Row               `json:"data"`
	Cells    map[string]string `json:"cells"`
	Selected bool              `json:"selected"`
}

// View is the rendered state of a table.
type View[Row any] struct {
	Columns       []HeaderView   `json:"columns"`
	Rows          []RowView[Row] `json:"rows"`
	Total         int            `json:"total"`
	Filtered      int            `json:"filtered"`
	PageIndex     int            `json:"pageIndex"`
	PageSize      int            `json:"pageSize"`
	PageCount     int            `json:"pageCount"`
	CanPrevious   bool           `json:"canPrevious"`
	CanNext       bool           `json:"canNext"`
	SelectedCount int            `json:"selectedCount"`
	Sorting       []Sort         `json:"sorting"`
	Empty         bool           `json:"empty"`
	EmptyMessage  string         `json:"emptyMessage,omitempty"`
}

type indexed[Row any] struct {
	index int
	row   Row
}

// View runs filtering, sorting and pagination over the current rows.
func (t *Table[Row]) View() View[Row] {
	rows := t.filtered()
	t.sort(rows)
	t.clampPage(len(rows))

	start := t.pageIndex * t.pageSize
	end := min(start+t.pageSize, len(rows))
	page := rows[start:end]

	v := View[Row]{
		Columns:       t.headers(),
		Rows:          make([]RowView[Row], 0, len(page)),
		Total:         len(t.rows),
		Filtered:      len(rows),
		PageIndex:     t.pageIndex,
		PageSize:      t.pageSize,
		PageCount:     pageCount(len(rows), t.pageSize),
		CanPrevious:   t.pageIndex > 0,
		CanNext:       t.pageIndex < lastPage(len(rows), t.pageSize),
		SelectedCount: t.selectedCount(),
		Sorting:       t.Sorting(),
	}
	if v.Sorting == nil {
		v.Sorting = []Sort{}
	}

	for _, r := range page {
		id := t.idOf(r.index, r.row)
		rv := RowView[Row]{
			ID:       id,
			Data:     r.row,
			Cells:    make(map[string]string, len(v.Columns)),
			Selected: t.selected[id],
		}
		for _, h := range v.Columns {
			rv.Cells[h.ID] = t.cell(t.columns[t.byID[h.ID]], r.row)
		}
		v.Rows = append(v.Rows, rv)
	}

	if len(rows) == 0 {
		v.Empty = true
		v.EmptyMessage = EmptyMessage
	}
	return v
}

func (t *Table[Row]) headers() []HeaderView {
	out := make([]HeaderView, 0, len(t.columns))
	for _, col := range t.columns {
		if t.hidden[col.ID] {
			continue
		}
		h := HeaderView{ID: col.ID, Header: col.Header, Sortable: col.Sortable, Hideable: col.Hideable}
		if i := slices.IndexFunc(t.sorting, func(s Sort) bool { return s.Column == col.ID }); i >= 0 {
			h.Sort = "asc"
			if t.sorting[i].Desc {
				h.Sort = "desc"
			}
			h.SortIndex = i + 1
		}
		out = append(out, h)
	}
	return out
}

func (t *Table[Row]) cell(col Column[Row], row Row) string {
	if col.Cell != nil {
		return col.Cell(row)
	}
	if col.Value == nil {
		return ""
	}
	return FormatValue(col.Value(row))
}

func (t *Table[Row]) filtered() []indexed[Row] {
	preds := t.predicates()
	out := make([]indexed[Row], 0, len(t.rows))
rows:
	for i, r := range t.rows {
		for _, keep := range preds {
			if !keep(r) {
				continue rows
			}
		}
		out = append(out, indexed[Row]{index: i, row: r})
	}
	return out
}

func (t *Table[Row]) predicates() []func(Row) bool {
	var preds []func(Row) bool

	for id, value := range t.filters {
		col := t.columns[t.byID[id]]
		if col.Filter != nil {
			preds = append(preds, func(r Row) bool { return col.Filter(r, value) })
			continue
		}
		needle := lower(strings.TrimSpace(value))
		if needle == "" {
			continue
		}
		preds = append(preds, func(r Row) bool {
			return strings.Contains(lower(t.cellValue(col, r)), needle)
		})
	}

	if t.selectCfg != nil && t.selectValue != "" {
		col := t.columns[t.byID[t.selectCfg.Column]]
		want := t.selectValue
		preds = append(preds, func(r Row) bool { return FormatValue(col.Value(r)) == want })
	}

	if t.search != nil && strings.TrimSpace(t.searchValue) != "" {
		terms := strings.Fields(lower(t.searchValue))
		cols := make([]Column[Row], 0, len(t.search.Columns))
		for _, id := range t.search.Columns {
			cols = append(cols, t.columns[t.byID[id]])
		}
		preds = append(preds, func(r Row) bool {
			parts := make([]string, len(cols))
			for i, col := range cols {
				parts[i] = lower(FormatValue(col.Value(r)))
			}
			blob := strings.Join(parts, " ")
			for _, term := range terms {
				if !strings.Contains(blob, term) {
					return false
				}
			}
			return true
		})
	}

	return preds
}

func (t *Table[Row]) cellValue(col Column[Row], r Row) string {
	if col.Value != nil {
		return FormatValue(col.Value(r))
	}
	return t.cell(col, r)
}

func (t *Table[Row]) sort(rows []indexed[Row]) {
	if len(t.sorting) == 0 {
		return
	}
	cols := make([]Column[Row], len(t.sorting))
	for i, s := range t.sorting {
		cols[i] = t.columns[t.byID[s.Column]]
	}
	slices.SortStableFunc(rows, func(a, b indexed[Row]) int {
		for i, s := range t.sorting {
			c := compareRows(cols[i], a.row, b.row)
			if s.Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
}

func compareRows[Row any](col Column[Row], a, b Row) int {
	if col.Compare != nil {
		return col.Compare(a, b)
	}
	if col.Value != nil {
		return CompareValues(col.Value(a), col.Value(b))
	}
	if col.Cell != nil {
		return strings.Compare(lower(col.Cell(a)), lower(col.Cell(b)))
	}
	return 0
}
