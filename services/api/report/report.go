// Package report computes the customer and product control reports and
// renders them as PDF.
package report

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/qcdash/qc-dashboard/services/api/control"
	"github.com/qcdash/qc-dashboard/services/api/model"
)

// ErrNoData is returned when a report has nothing to show.
var ErrNoData = errors.New("No hay datos de clientes para generar el reporte")

// CustomerStats summarizes the customer list.
type CustomerStats struct {
	Total           int     `json:"total"`
	Active          int     `json:"activos"`
	Inactive        int     `json:"inactivos"`
	ActivePercent   float64 `json:"porcentajeActivos"`
	InactivePercent float64 `json:"porcentajeInactivos"`
}

// CustomerSummary counts active and inactive customers. Percentages have
// one decimal and are zero for an empty list.
func CustomerSummary(customers []model.Customer) CustomerStats {
	s := CustomerStats{Total: len(customers)}
	for _, c := range customers {
		if c.Active {
			s.Active++
		}
	}
	s.Inactive = s.Total - s.Active
	if s.Total > 0 {
		s.ActivePercent = round(float64(s.Active)*100/float64(s.Total), 1)
		s.InactivePercent = round(float64(s.Inactive)*100/float64(s.Total), 1)
	}
	return s
}

// ProductRow is one reading joined with its product.
type ProductRow struct {
	ProductID   string    `json:"productId"`
	Producto    string    `json:"producto"`
	Cliente     string    `json:"cliente"`
	Marca       string    `json:"marca"`
	Fecha       time.Time `json:"fecha"`
	TipoControl string    `json:"tipoControl"`
	PesoFill    float64   `json:"pesoFill"`
	PesoNeto    float64   `json:"pesoNeto"`
	Estado      string    `json:"estado"`
}

// ProductRows joins details with their products. Details whose product or
// timestamp is unknown are skipped. The weight lands in PesoFill or
// PesoNeto depending on the tag; unrecognized tags keep both at zero.
func ProductRows(products []model.Product, details []model.ProductDetail) []ProductRow {
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	rows := make([]ProductRow, 0, len(details))
	for _, d := range details {
		p, ok := byID[d.ProductControlID]
		if !ok {
			continue
		}
		ts, err := control.ParseTimestamp(d.Fecha)
		if err != nil {
			continue
		}
		row := ProductRow{
			ProductID:   p.ID,
			Producto:    p.Producto,
			Cliente:     p.NombreCliente,
			Marca:       p.Marca,
			Fecha:       ts,
			TipoControl: d.TipoControl,
			Estado:      p.Estado(),
		}
		if tag, ok := control.ParseTag(d.TipoControl); ok {
			switch tag.Kind {
			case control.Fill:
				row.PesoFill = d.Peso
			case control.Net:
				row.PesoNeto = d.Peso
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// ProductFilter narrows the product report. Zero values match everything.
type ProductFilter struct {
	From    *time.Time
	To      *time.Time
	Product string
	Client  string
}

// Match applies the filter. To covers its whole day; the text filters are
// case-insensitive substrings.
func (f ProductFilter) Match(r ProductRow) bool {
	if f.From != nil && r.Fecha.Before(*f.From) {
		return false
	}
	if f.To != nil {
		next := time.Date(f.To.Year(), f.To.Month(), f.To.Day()+1, 0, 0, 0, 0, f.To.Location())
		if !r.Fecha.Before(next) {
			return false
		}
	}
	if f.Product != "" && !containsFold(r.Producto, f.Product) {
		return false
	}
	if f.Client != "" && !containsFold(r.Cliente, f.Client) {
		return false
	}
	return true
}

// Apply returns the rows that match.
func (f ProductFilter) Apply(rows []ProductRow) []ProductRow {
	out := make([]ProductRow, 0, len(rows))
	for _, r := range rows {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// ProductStats summarizes product report rows.
type ProductStats struct {
	TotalRegistros  int     `json:"totalRegistros"`
	ProductosUnicos int     `json:"productosUnicos"`
	ClientesUnicos  int     `json:"clientesUnicos"`
	TotalFill       float64 `json:"totalFill"`
	TotalNeto       float64 `json:"totalNeto"`
}

func ProductSummary(rows []ProductRow) ProductStats {
	products := make(map[string]struct{})
	clients := make(map[string]struct{})
	var fill, net float64
	for _, r := range rows {
		products[r.Producto] = struct{}{}
		clients[r.Cliente] = struct{}{}
		fill += r.PesoFill
		net += r.PesoNeto
	}
	return ProductStats{
		TotalRegistros:  len(rows),
		ProductosUnicos: len(products),
		ClientesUnicos:  len(clients),
		TotalFill:       round(fill, 2),
		TotalNeto:       round(net, 2),
	}
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
