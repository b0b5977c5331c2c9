package http

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qcdash/qc-dashboard/services/api/report"
)

const pdfContentType = "application/pdf"

func wantsPDF(c *gin.Context) bool {
	return c.Query("format") == "pdf"
}

func (s *Server) sendPDF(c *gin.Context, name string, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		s.respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, pdfContentType, buf.Bytes())
}

// handleCustomerReport returns customer statistics, or the PDF report
// GET /api/reports/customers[?format=pdf]
func (s *Server) handleCustomerReport(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	customers, err := s.backend.ListCustomers(ctx)
	if err != nil {
		s.respondError(c, err)
		return
	}

	now := s.now()
	if wantsPDF(c) {
		s.sendPDF(c, "reporte-clientes-"+now.Format("2006-01-02")+".pdf", func(buf *bytes.Buffer) error {
			return report.RenderCustomersPDF(buf, customers, now)
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"summary":   report.CustomerSummary(customers),
			"customers": customers,
		},
		"meta": gin.H{"generatedAt": now.UTC()},
	})
}

// handleProductReport returns product control rows and statistics, or the
// PDF report
// GET /api/reports/products[?from=YYYY-MM-DD&to=YYYY-MM-DD&product=&client=&format=pdf]
func (s *Server) handleProductReport(c *gin.Context) {
	filter := report.ProductFilter{
		Product: c.Query("product"),
		Client:  c.Query("client"),
	}
	for _, p := range []struct {
		key string
		dst **time.Time
	}{{"from", &filter.From}, {"to", &filter.To}} {
		v := c.Query(p.key)
		if v == "" {
			continue
		}
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + p.key + " date"})
			return
		}
		*p.dst = &t
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	products, err := s.backend.ListProducts(ctx)
	if err != nil {
		s.respondError(c, err)
		return
	}
	details, err := s.backend.ListAllProductDetails(ctx)
	if err != nil {
		s.respondError(c, err)
		return
	}

	rows := filter.Apply(report.ProductRows(products, details))
	now := s.now()
	if wantsPDF(c) {
		s.sendPDF(c, "reporte-productos-"+now.Format("2006-01-02")+".pdf", func(buf *bytes.Buffer) error {
			return report.RenderProductsPDF(buf, rows, now)
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"summary": report.ProductSummary(rows),
			"rows":    rows,
		},
		"meta": gin.H{"generatedAt": now.UTC(), "count": len(rows)},
	})
}
