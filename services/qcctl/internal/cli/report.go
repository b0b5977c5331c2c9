package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/qcdash/qc-dashboard/services/api/report"
	"github.com/qcdash/qc-dashboard/services/qcctl/internal/render"
)

const dateLayout = "2006-01-02"

func newReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summaries and PDF reports",
	}
	cmd.AddCommand(newCustomerReportCmd(a), newProductReportCmd(a))
	return cmd
}

func newCustomerReportCmd(a *app) *cobra.Command {
	var pdfPath string
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Customer status report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			customers, err := a.client.ListCustomers(ctx)
			if err != nil {
				return err
			}
			if len(customers) == 0 {
				return report.ErrNoData
			}

			stats := report.CustomerSummary(customers)
			if err := render.KeyValues(out(cmd), [][2]string{
				{"Total de clientes", strconv.Itoa(stats.Total)},
				{"Clientes activos", fmt.Sprintf("%d (%.1f%%)", stats.Active, stats.ActivePercent)},
				{"Clientes inactivos", fmt.Sprintf("%d (%.1f%%)", stats.Inactive, stats.InactivePercent)},
			}); err != nil {
				return err
			}

			if pdfPath == "" {
				return nil
			}
			return writePDF(cmd, pdfPath, func(f *os.File) error {
				return report.RenderCustomersPDF(f, customers, a.now())
			})
		},
	}
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "Also write the report as a PDF file")
	return cmd
}

func newProductReportCmd(a *app) *cobra.Command {
	var (
		from, to        string
		product, client string
		pdfPath         string
	)
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Product control report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := report.ProductFilter{Product: product, Client: client}
			var err error
			if filter.From, err = parseDate("from", from); err != nil {
				return err
			}
			if filter.To, err = parseDate("to", to); err != nil {
				return err
			}

			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			products, err := a.client.ListProducts(ctx)
			if err != nil {
				return err
			}
			details, err := a.client.ListAllProductDetails(ctx)
			if err != nil {
				return err
			}

			rows := filter.Apply(report.ProductRows(products, details))
			stats := report.ProductSummary(rows)
			if err := render.KeyValues(out(cmd), [][2]string{
				{"Total de registros", strconv.Itoa(stats.TotalRegistros)},
				{"Productos únicos", strconv.Itoa(stats.ProductosUnicos)},
				{"Clientes únicos", strconv.Itoa(stats.ClientesUnicos)},
				{"Total Peso Fill", fmt.Sprintf("%.2fg", stats.TotalFill)},
				{"Total Peso Neto", fmt.Sprintf("%.2fg", stats.TotalNeto)},
			}); err != nil {
				return err
			}

			if pdfPath == "" {
				return nil
			}
			return writePDF(cmd, pdfPath, func(f *os.File) error {
				return report.RenderProductsPDF(f, rows, a.now())
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&product, "product", "", "Product name contains")
	cmd.Flags().StringVar(&client, "client", "", "Client name contains")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "Also write the report as a PDF file")
	return cmd
}

func parseDate(flag, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %s", flag, value)
	}
	return &t, nil
}

func writePDF(cmd *cobra.Command, path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	printf(cmd, "Reporte guardado en %s\n", path)
	return nil
}
