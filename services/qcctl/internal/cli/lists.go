package cli

import (
	"github.com/spf13/cobra"

	"github.com/qcdash/qc-dashboard/services/api/views"
	"github.com/qcdash/qc-dashboard/services/qcctl/internal/render"
)

// tableFlags are the view options shared by the list commands.
type tableFlags struct {
	search   string
	status   string
	sort     string
	page     int
	pageSize int
	hidden   []string
}

func (f *tableFlags) register(cmd *cobra.Command, withStatus bool) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "Free-text search")
	if withStatus {
		cmd.Flags().StringVar(&f.status, "status", "all", "Filter by state: all, true or false")
	}
	cmd.Flags().StringVar(&f.sort, "sort", "", "Sort columns, e.g. lastName,-firstName")
	cmd.Flags().IntVar(&f.page, "page", 1, "Page number, starting at 1")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 10, "Rows per page (5, 10, 20, 40, 70 or 100)")
	cmd.Flags().StringSliceVar(&f.hidden, "hide", nil, "Columns to hide")
}

func (f *tableFlags) query() views.Query {
	return views.Query{
		Search:   f.search,
		Status:   f.status,
		Sort:     views.ParseSort(f.sort),
		Page:     f.page - 1,
		PageSize: f.pageSize,
		Hidden:   f.hidden,
	}
}

func newCustomersCmd(a *app) *cobra.Command {
	var flags tableFlags
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "List customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			customers, err := a.client.ListCustomers(ctx)
			if err != nil {
				return err
			}
			tbl, err := views.Customers(customers)
			if err != nil {
				return err
			}
			if err := views.Apply(tbl, flags.query()); err != nil {
				return err
			}
			return render.View(out(cmd), tbl.View())
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newProductsCmd(a *app) *cobra.Command {
	var flags tableFlags
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List product controls",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			products, err := a.client.ListProducts(ctx)
			if err != nil {
				return err
			}
			tbl, err := views.Products(products)
			if err != nil {
				return err
			}
			if err := views.Apply(tbl, flags.query()); err != nil {
				return err
			}
			return render.View(out(cmd), tbl.View())
		},
	}
	flags.register(cmd, true)
	return cmd
}
