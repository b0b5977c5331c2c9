// Package render prints table views as aligned plain text.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/qcdash/qc-dashboard/services/api/table"
)

// View writes the visible columns of v followed by a page footer. The
// actions column is skipped.
func View[Row any](w io.Writer, v table.View[Row]) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	ids := make([]string, 0, len(v.Columns))
	headers := make([]string, 0, len(v.Columns))
	for _, col := range v.Columns {
		if col.ID == table.ActionsColumn {
			continue
		}
		ids = append(ids, col.ID)
		h := col.Header
		switch col.Sort {
		case "asc":
			h += " ^"
		case "desc":
			h += " v"
		}
		headers = append(headers, h)
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	if v.Empty {
		fmt.Fprintln(tw, v.EmptyMessage)
	}
	for _, row := range v.Rows {
		cells := make([]string, len(ids))
		for i, id := range ids {
			cells[i] = row.Cells[id]
		}
		line := strings.Join(cells, "\t")
		if row.Selected {
			line = "* " + line
		}
		fmt.Fprintln(tw, line)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, Footer(v.PageIndex, v.PageCount, v.Filtered, v.Total))
	return err
}

// Footer describes the current page.
func Footer(pageIndex, pageCount, filtered, total int) string {
	page := 0
	if pageCount > 0 {
		page = pageIndex + 1
	}
	s := fmt.Sprintf("Página %d de %d, %d fila(s)", page, pageCount, filtered)
	if filtered != total {
		s += fmt.Sprintf(" de %d", total)
	}
	return s
}

// KeyValues prints label/value pairs aligned.
func KeyValues(w io.Writer, pairs [][2]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, p := range pairs {
		fmt.Fprintf(tw, "%s:\t%s\n", p[0], p[1])
	}
	return tw.Flush()
}
