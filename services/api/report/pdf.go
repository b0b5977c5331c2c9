package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/qcdash/qc-dashboard/services/api/model"
)

// Page geometry in points for A4 portrait with the origin at the lower left.
const (
	pageTop      = 800
	pageBottom   = 50
	marginLeft   = 40
	lineHeight   = 13
	fontSize     = 9
	titleSize    = 14
	fontName     = "Courier"
	dateLayout   = "02/01/2006 15:04"
	linesPerPage = (pageTop - pageBottom) / lineHeight
)

type pdfFont struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type pdfText struct {
	Value string     `json:"value"`
	Pos   [2]float64 `json:"pos"`
	Font  pdfFont    `json:"font"`
}

type pdfContent struct {
	Text []pdfText `json:"text"`
}

type pdfPage struct {
	Content pdfContent `json:"content"`
}

type pdfDescription struct {
	Paper  string              `json:"paper"`
	Origin string              `json:"origin"`
	Pages  map[string]*pdfPage `json:"pages"`
}

// line is one row of text; title lines use the larger font.
type line struct {
	text  string
	title bool
}

// describe lays lines out top to bottom, opening a new page when the
// current one is full.
func describe(lines []line) pdfDescription {
	desc := pdfDescription{Paper: "A4P", Origin: "LowerLeft", Pages: map[string]*pdfPage{}}
	for i, l := range lines {
		pageNr := i/linesPerPage + 1
		key := strconv.Itoa(pageNr)
		page, ok := desc.Pages[key]
		if !ok {
			page = &pdfPage{}
			desc.Pages[key] = page
		}
		size := fontSize
		if l.title {
			size = titleSize
		}
		y := float64(pageTop - (i%linesPerPage)*lineHeight)
		page.Content.Text = append(page.Content.Text, pdfText{
			Value: l.text,
			Pos:   [2]float64{marginLeft, y},
			Font:  pdfFont{Name: fontName, Size: size},
		})
	}
	if len(desc.Pages) == 0 {
		desc.Pages["1"] = &pdfPage{}
	}
	return desc
}

var configOnce sync.Once

// pdfConfig returns a configuration that never touches the user's config
// directory.
func pdfConfig() *pdfmodel.Configuration {
	configOnce.Do(func() { pdfmodel.ConfigPath = "disable" })
	return pdfmodel.NewDefaultConfiguration()
}

func render(w io.Writer, lines []line) error {
	buf, err := json.Marshal(describe(lines))
	if err != nil {
		return fmt.Errorf("encode pdf description: %w", err)
	}
	if err := api.Create(nil, bytes.NewReader(buf), w, pdfConfig()); err != nil {
		return fmt.Errorf("create pdf: %w", err)
	}
	return nil
}

// customerLines builds the text of the customer report.
func customerLines(customers []model.Customer, now time.Time) []line {
	stats := CustomerSummary(customers)
	lines := []line{
		{text: "REPORTE DE CLIENTES", title: true},
		{text: "Generado el: " + now.Format(dateLayout)},
		{},
		{text: fmt.Sprintf("Total clientes: %d", stats.Total)},
		{text: fmt.Sprintf("Clientes activos: %d (%.1f%%)", stats.Active, stats.ActivePercent)},
		{text: fmt.Sprintf("Clientes inactivos: %d (%.1f%%)", stats.Inactive, stats.InactivePercent)},
		{},
		{text: columns([]int{16, 16, 28, 14, 8}, "Nombre", "Apellido", "Email", "Teléfono", "Estado")},
	}
	for _, c := range customers {
		lines = append(lines, line{text: columns([]int{16, 16, 28, 14, 8},
			dash(c.FirstName), dash(c.LastName), dash(c.Email), dash(c.Phone), c.Estado())})
	}
	return lines
}

// RenderCustomersPDF writes the customer report.
func RenderCustomersPDF(w io.Writer, customers []model.Customer, now time.Time) error {
	if len(customers) == 0 {
		return ErrNoData
	}
	return render(w, customerLines(customers, now))
}

// productLines builds the text of the product control report.
func productLines(rows []ProductRow, now time.Time) []line {
	stats := ProductSummary(rows)
	widths := []int{16, 16, 10, 17, 13, 8, 8, 8}
	lines := []line{
		{text: "REPORTE DE CONTROL DE PRODUCTOS", title: true},
		{text: "Generado el: " + now.Format(dateLayout)},
		{},
		{text: fmt.Sprintf("Total registros: %d", stats.TotalRegistros)},
		{text: fmt.Sprintf("Productos: %d   Clientes: %d", stats.ProductosUnicos, stats.ClientesUnicos)},
		{text: fmt.Sprintf("Total fill: %.2fg   Total neto: %.2fg", stats.TotalFill, stats.TotalNeto)},
		{},
		{text: columns(widths, "Producto", "Cliente", "Marca", "Fecha", "Tipo", "Fill", "Neto", "Estado")},
	}
	for _, r := range rows {
		lines = append(lines, line{text: columns(widths,
			r.Producto, r.Cliente, r.Marca, r.Fecha.Format(dateLayout), r.TipoControl,
			grams(r.PesoFill), grams(r.PesoNeto), r.Estado)})
	}
	return lines
}

// RenderProductsPDF writes the product control report. An empty row set
// still renders the header and statistics.
func RenderProductsPDF(w io.Writer, rows []ProductRow, now time.Time) error {
	return render(w, productLines(rows, now))
}

// columns pads or truncates each value to its width.
func columns(widths []int, values ...string) string {
	var b strings.Builder
	for i, v := range values {
		r := []rune(v)
		w := widths[i]
		if len(r) > w-1 {
			r = r[:w-1]
		}
		b.WriteString(string(r))
		if i < len(values)-1 {
			b.WriteString(strings.Repeat(" ", w-len(r)))
		}
	}
	return b.String()
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func grams(v float64) string {
	if v <= 0 {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "g"
}
