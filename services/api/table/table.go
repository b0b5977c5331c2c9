// Package table is a generic sort/filter/paginate controller over an
// in-memory row slice. A Table owns its state exclusively and is not safe
// for concurrent use; every mutation is synchronous and View recomputes the
// page from scratch.
package table

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	// ActionsColumn is reserved for per-row actions and can never be hidden.
	ActionsColumn = "actions"
	// AllOption clears the select filter.
	AllOption = "all"
	// EmptyMessage is rendered when no row survives filtering.
	EmptyMessage = "No results."
	// DefaultPageSize is used when Options.PageSize is zero.
	DefaultPageSize = 10
)

// DefaultPageSizes is the preset list of page sizes.
var DefaultPageSizes = []int{5, 10, 20, 40, 70, 100}

var (
	ErrUnknownColumn   = errors.New("table: unknown column")
	ErrDuplicateColumn = errors.New("table: duplicate column")
	ErrNoAccessor      = errors.New("table: column has no value accessor")
	ErrNotSortable     = errors.New("table: column is not sortable")
	ErrNotHideable     = errors.New("table: column cannot be hidden")
	ErrPageSize        = errors.New("table: page size not in preset list")
)

// Column describes one column of Row.
type Column[Row any] struct {
	ID     string
	Header string
	// Value returns the raw value used for filtering, sorting and, when Cell
	// is nil, rendering.
	Value func(Row) any
	// Cell optionally renders a computed cell.
	Cell func(Row) string
	// Filter overrides the default case-insensitive substring filter.
	Filter func(row Row, value string) bool
	// Compare overrides the default value ordering.
	Compare  func(a, b Row) int
	Sortable bool
	Hideable bool
}

// Search configures the synthetic whole-row free-text column.
type Search struct {
	ID      string
	Columns []string
}

// Option is one choice of a select filter.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SelectFilter configures the exact-match filter on one column.
type SelectFilter struct {
	Column  string
	Options []Option
}

// Options configures a Table.
type Options[Row any] struct {
	// RowID identifies rows for selection; defaults to the input index.
	RowID     func(Row) string
	Search    *Search
	Select    *SelectFilter
	PageSizes []int
	PageSize  int
}

// Sort is one entry of the sort state.
type Sort struct {
	Column string `json:"column"`
	Desc   bool   `json:"desc"`
}

// Table holds the rows, the columns and the per-instance UI state.
type Table[Row any] struct {
	columns []Column[Row]
	byID    map[string]int
	rows    []Row
	rowID   func(Row) string

	search      *Search
	searchValue string
	selectCfg   *SelectFilter
	selectValue string

	filters   map[string]string
	sorting   []Sort
	hidden    map[string]bool
	selected  map[string]bool
	pageSizes []int
	pageIndex int
	pageSize  int
}

// New validates the column set and returns a table with empty state.
func New[Row any](columns []Column[Row], rows []Row, opts Options[Row]) (*Table[Row], error) {
	t := &Table[Row]{
		columns:  slices.Clone(columns),
		byID:     make(map[string]int, len(columns)),
		rows:     rows,
		rowID:    opts.RowID,
		filters:  make(map[string]string),
		hidden:   make(map[string]bool),
		selected: make(map[string]bool),
	}

	for i, col := range t.columns {
		if col.ID == "" {
			return nil, fmt.Errorf("%w: column %d has no id", ErrUnknownColumn, i)
		}
		if _, dup := t.byID[col.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, col.ID)
		}
		if col.Value == nil && col.Cell == nil && col.ID != ActionsColumn {
			return nil, fmt.Errorf("%w: %s", ErrNoAccessor, col.ID)
		}
		if col.ID == ActionsColumn {
			t.columns[i].Hideable = false
		}
		t.byID[col.ID] = i
	}

	if opts.Search != nil {
		if opts.Search.ID == "" {
			return nil, fmt.Errorf("%w: search column has no id", ErrUnknownColumn)
		}
		if _, dup := t.byID[opts.Search.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, opts.Search.ID)
		}
		for _, id := range opts.Search.Columns {
			if err := t.requireValue(id); err != nil {
				return nil, err
			}
		}
		s := *opts.Search
		s.Columns = slices.Clone(s.Columns)
		t.search = &s
	}

	if opts.Select != nil {
		if err := t.requireValue(opts.Select.Column); err != nil {
			return nil, err
		}
		s := *opts.Select
		s.Options = slices.Clone(s.Options)
		t.selectCfg = &s
	}

	t.pageSizes = slices.Clone(opts.PageSizes)
	if len(t.pageSizes) == 0 {
		t.pageSizes = DefaultPageSizes
	}
	for _, size := range t.pageSizes {
		if size <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrPageSize, size)
		}
	}
	t.pageSize = opts.PageSize
	if t.pageSize == 0 {
		t.pageSize = DefaultPageSize
	}
	if !slices.Contains(t.pageSizes, t.pageSize) {
		return nil, fmt.Errorf("%w: %d", ErrPageSize, t.pageSize)
	}

	return t, nil
}

func (t *Table[Row]) requireValue(id string) error {
	i, ok := t.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, id)
	}
	if t.columns[i].Value == nil {
		return fmt.Errorf("%w: %s", ErrNoAccessor, id)
	}
	return nil
}

func (t *Table[Row]) column(id string) (Column[Row], error) {
	i, ok := t.byID[id]
	if !ok {
		return Column[Row]{}, fmt.Errorf("%w: %s", ErrUnknownColumn, id)
	}
	return t.columns[i], nil
}

// SetRows replaces the row set. Filter, sort, visibility and selection state
// are kept; the page index is clamped on the next View.
func (t *Table[Row]) SetRows(rows []Row) {
	t.rows = rows
}

// SetFilter sets the filter value of a column. An empty value clears it.
func (t *Table[Row]) SetFilter(id, value string) error {
	if _, err := t.column(id); err != nil {
		return err
	}
	if value == "" {
		delete(t.filters, id)
	} else {
		t.filters[id] = value
	}
	t.pageIndex = 0
	return nil
}

// SetSearch sets the free-text filter. It is a no-op when the table has no
// search column.
func (t *Table[Row]) SetSearch(value string) {
	if t.search == nil {
		return
	}
	t.searchValue = value
	t.pageIndex = 0
}

// SetSelectFilter sets the exact-match filter; AllOption or "" clear it.
func (t *Table[Row]) SetSelectFilter(value string) {
	if t.selectCfg == nil {
		return
	}
	if value == AllOption {
		value = ""
	}
	t.selectValue = value
	t.pageIndex = 0
}

// SelectFilterValue returns the active select value, or AllOption.
func (t *Table[Row]) SelectFilterValue() string {
	if t.selectValue == "" {
		return AllOption
	}
	return t.selectValue
}

// SelectOptions returns the configured select choices.
func (t *Table[Row]) SelectOptions() []Option {
	if t.selectCfg == nil {
		return nil
	}
	return slices.Clone(t.selectCfg.Options)
}

// ToggleSort cycles a column through unsorted, ascending and descending.
// Without multi the column replaces the whole sort state; with multi the
// other sorted columns are kept.
func (t *Table[Row]) ToggleSort(id string, multi bool) error {
	col, err := t.column(id)
	if err != nil {
		return err
	}
	if !col.Sortable {
		return fmt.Errorf("%w: %s", ErrNotSortable, id)
	}

	idx := slices.IndexFunc(t.sorting, func(s Sort) bool { return s.Column == id })

	var next *Sort
	switch {
	case idx < 0:
		next = &Sort{Column: id}
	case !t.sorting[idx].Desc:
		next = &Sort{Column: id, Desc: true}
	}

	if !multi {
		t.sorting = t.sorting[:0]
		if next != nil {
			t.sorting = append(t.sorting, *next)
		}
		return nil
	}

	switch {
	case idx < 0:
		t.sorting = append(t.sorting, *next)
	case next == nil:
		t.sorting = slices.Delete(t.sorting, idx, idx+1)
	default:
		t.sorting[idx] = *next
	}
	return nil
}

// SetSorting replaces the sort state.
func (t *Table[Row]) SetSorting(sorts []Sort) error {
	seen := make(map[string]bool, len(sorts))
	for _, s := range sorts {
		col, err := t.column(s.Column)
		if err != nil {
			return err
		}
		if !col.Sortable {
			return fmt.Errorf("%w: %s", ErrNotSortable, s.Column)
		}
		if seen[s.Column] {
			return fmt.Errorf("%w: %s sorted twice", ErrDuplicateColumn, s.Column)
		}
		seen[s.Column] = true
	}
	t.sorting = slices.Clone(sorts)
	return nil
}

// ClearSorting restores input order.
func (t *Table[Row]) ClearSorting() {
	t.sorting = nil
}

// Sorting returns a copy of the sort state.
func (t *Table[Row]) Sorting() []Sort {
	return slices.Clone(t.sorting)
}

// SetVisible shows or hides a column.
func (t *Table[Row]) SetVisible(id string, visible bool) error {
	col, err := t.column(id)
	if err != nil {
		return err
	}
	if !col.Hideable {
		if visible {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrNotHideable, id)
	}
	if visible {
		delete(t.hidden, id)
	} else {
		t.hidden[id] = true
	}
	return nil
}

// IsVisible reports whether a column is rendered.
func (t *Table[Row]) IsVisible(id string) bool {
	_, ok := t.byID[id]
	return ok && !t.hidden[id]
}

// ToggleableColumns lists the columns offered in a visibility menu.
func (t *Table[Row]) ToggleableColumns() []string {
	ids := make([]string, 0, len(t.columns))
	for _, col := range t.columns {
		if col.Hideable && col.ID != ActionsColumn {
			ids = append(ids, col.ID)
		}
	}
	return ids
}

// SetSelected marks a row as selected or not.
func (t *Table[Row]) SetSelected(rowID string, selected bool) {
	if selected {
		t.selected[rowID] = true
	} else {
		delete(t.selected, rowID)
	}
}

// ToggleSelected flips the selection of a row.
func (t *Table[Row]) ToggleSelected(rowID string) {
	t.SetSelected(rowID, !t.selected[rowID])
}

// SelectAll selects every row that passes the current filters.
func (t *Table[Row]) SelectAll() {
	for _, r := range t.filtered() {
		t.selected[t.idOf(r.index, r.row)] = true
	}
}

// ClearSelection deselects every row.
func (t *Table[Row]) ClearSelection() {
	clear(t.selected)
}

// Selected returns the selected rows in input order. Selected ids that no
// longer match a row are ignored.
func (t *Table[Row]) Selected() []Row {
	out := make([]Row, 0, len(t.selected))
	for i, r := range t.rows {
		if t.selected[t.idOf(i, r)] {
			out = append(out, r)
		}
	}
	return out
}

func (t *Table[Row]) selectedCount() int {
	if len(t.selected) == 0 {
		return 0
	}
	n := 0
	for i, r := range t.rows {
		if t.selected[t.idOf(i, r)] {
			n++
		}
	}
	return n
}

// SetPageSize changes the page size and returns to the first page.
func (t *Table[Row]) SetPageSize(size int) error {
	if !slices.Contains(t.pageSizes, size) {
		return fmt.Errorf("%w: %d", ErrPageSize, size)
	}
	t.pageSize = size
	t.pageIndex = 0
	return nil
}

// PageSizes returns the preset list.
func (t *Table[Row]) PageSizes() []int {
	return slices.Clone(t.pageSizes)
}

// PageIndex returns the current page, clamped to the filtered row set.
func (t *Table[Row]) PageIndex() int {
	t.clampPage(len(t.filtered()))
	return t.pageIndex
}

// SetPageIndex moves to a page, clamped to the valid range.
func (t *Table[Row]) SetPageIndex(i int) {
	t.pageIndex = i
	t.clampPage(len(t.filtered()))
}

// NextPage advances one page; it does nothing on the last page.
func (t *Table[Row]) NextPage() {
	n := len(t.filtered())
	t.clampPage(n)
	if t.pageIndex < lastPage(n, t.pageSize) {
		t.pageIndex++
	}
}

// PreviousPage goes back one page; it does nothing on the first page.
func (t *Table[Row]) PreviousPage() {
	t.clampPage(len(t.filtered()))
	if t.pageIndex > 0 {
		t.pageIndex--
	}
}

func (t *Table[Row]) clampPage(filtered int) {
	last := lastPage(filtered, t.pageSize)
	if t.pageIndex > last {
		t.pageIndex = last
	}
	if t.pageIndex < 0 {
		t.pageIndex = 0
	}
}

func pageCount(rows, size int) int {
	if rows == 0 {
		return 0
	}
	return (rows + size - 1) / size
}

func lastPage(rows, size int) int {
	if n := pageCount(rows, size); n > 0 {
		return n - 1
	}
	return 0
}

func (t *Table[Row]) idOf(index int, row Row) string {
	if t.rowID != nil {
		return t.rowID(row)
	}
	return fmt.Sprint(index)
}

func lower(s string) string { return strings.ToLower(s) }
