package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qcdash/qc-dashboard/services/api/model"
)

func TestCustomerSummary(t *testing.T) {
	customers := []model.Customer{
		{ID: "1", Active: true},
		{ID: "2", Active: false},
		{ID: "3", Active: true},
	}
	got := CustomerSummary(customers)
	want := CustomerStats{Total: 3, Active: 2, Inactive: 1, ActivePercent: 66.7, InactivePercent: 33.3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, CustomerStats{}, CustomerSummary(nil))
}

func sampleRows() []ProductRow {
	products := []model.Product{
		{ID: "p1", Producto: "Atún en aceite", NombreCliente: "Ana Lopez", Marca: "Mar", Active: true},
		{ID: "p2", Producto: "Sardinas", NombreCliente: "Luis Perez", Marca: "Costa"},
	}
	details := []model.ProductDetail{
		{ID: "d1", ProductControlID: "p1", Fecha: "2024-03-01T10:00:00Z", Peso: 100.25, TipoControl: "PESO FILL 1"},
		{ID: "d2", ProductControlID: "p1", Fecha: "2024-03-01T10:00:00Z", Peso: 80.5, TipoControl: "PESO NETO 1"},
		{ID: "d3", ProductControlID: "p2", Fecha: "2024-03-05T23:30:00Z", Peso: 50.004, TipoControl: "PESO FILL"},
		{ID: "d4", ProductControlID: "missing", Fecha: "2024-03-01T10:00:00Z", Peso: 1, TipoControl: "PESO FILL 1"},
		{ID: "d5", ProductControlID: "p2", Fecha: "garbage", Peso: 1, TipoControl: "PESO FILL 1"},
		{ID: "d6", ProductControlID: "p2", Fecha: "2024-03-06T00:00:00Z", Peso: 7, TipoControl: "PESO BRUTO"},
	}
	return ProductRows(products, details)
}

func TestProductRows(t *testing.T) {
	rows := sampleRows()
	require.Len(t, rows, 4)

	assert.Equal(t, 100.25, rows[0].PesoFill)
	assert.Zero(t, rows[0].PesoNeto)
	assert.Equal(t, 80.5, rows[1].PesoNeto)
	assert.Equal(t, "Inactivo", rows[2].Estado)
	assert.Zero(t, rows[3].PesoFill+rows[3].PesoNeto)
}

func TestProductFilter(t *testing.T) {
	rows := sampleRows()
	day := func(d int) *time.Time {
		v := time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
		return &v
	}

	assert.Len(t, ProductFilter{}.Apply(rows), 4)
	assert.Len(t, ProductFilter{To: day(5)}.Apply(rows), 3, "To covers the whole day")
	assert.Len(t, ProductFilter{From: day(2)}.Apply(rows), 2)
	assert.Len(t, ProductFilter{Product: "ATÚN"}.Apply(rows), 2)
	assert.Len(t, ProductFilter{Client: "perez", From: day(6)}.Apply(rows), 1)
}

func TestProductFilterToIncludesLastSubsecond(t *testing.T) {
	to := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	filter := ProductFilter{To: &to}

	assert.True(t, filter.Match(ProductRow{Fecha: time.Date(2024, 3, 5, 23, 59, 59, 500_000_000, time.UTC)}))
	assert.False(t, filter.Match(ProductRow{Fecha: time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)}))
}

func TestProductSummary(t *testing.T) {
	got := ProductSummary(sampleRows())
	assert.Equal(t, ProductStats{
		TotalRegistros:  4,
		ProductosUnicos: 2,
		ClientesUnicos:  2,
		TotalFill:       150.25,
		TotalNeto:       80.5,
	}, got)
}

func TestDescribePaginates(t *testing.T) {
	lines := make([]line, linesPerPage+3)
	for i := range lines {
		lines[i] = line{text: "x"}
	}
	desc := describe(lines)
	require.Len(t, desc.Pages, 2)
	assert.Len(t, desc.Pages["1"].Content.Text, linesPerPage)
	assert.Len(t, desc.Pages["2"].Content.Text, 3)
	assert.Equal(t, [2]float64{marginLeft, pageTop}, desc.Pages["2"].Content.Text[0].Pos)

	assert.Len(t, describe(nil).Pages, 1)
}

func TestCustomerReportLines(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 5, 0, 0, time.UTC)
	lines := customerLines([]model.Customer{{FirstName: "Ana", Email: "a@x.com", Active: true}}, now)
	assert.Equal(t, "Generado el: 01/03/2024 09:05", lines[1].text)
	assert.Contains(t, lines[4].text, "1 (100.0%)")
	last := lines[len(lines)-1].text
	assert.Contains(t, last, "Ana")
	assert.Contains(t, last, "Activo")
	assert.Contains(t, last, "-")
}

func TestColumnsTruncates(t *testing.T) {
	assert.Equal(t, "abc ab", columns([]int{4, 3}, "abcdef", "ab"))
	assert.Equal(t, "-", grams(0))
	assert.Equal(t, "12.5g", grams(12.5))
}

func TestRenderCustomersPDF(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, RenderCustomersPDF(&buf, nil, time.Now()), ErrNoData)

	err := RenderCustomersPDF(&buf, []model.Customer{{FirstName: "Ana", LastName: "Lopez", Active: true}}, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestRenderProductsPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderProductsPDF(&buf, sampleRows(), time.Now()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
