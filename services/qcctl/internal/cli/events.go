package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qcdash/qc-dashboard/services/api/control"
	"github.com/qcdash/qc-dashboard/services/api/model"
	"github.com/qcdash/qc-dashboard/services/api/views"
	"github.com/qcdash/qc-dashboard/services/qcctl/internal/render"
)

func newEventsCmd(a *app) *cobra.Command {
	var (
		slots    int
		sort     string
		page     int
		pageSize int
	)
	cmd := &cobra.Command{
		Use:   "events <productID>",
		Short: "Show the control events recorded for a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			details, err := a.client.ListProductDetails(ctx, args[0])
			if err != nil {
				return err
			}

			grouper := control.Grouper{
				SlotCount: slots,
				OnDrop: func(rec control.Record, reason control.DropReason) {
					a.logger.Debug("dropped reading",
						zap.String("fecha", rec.Timestamp),
						zap.String("tipo_control", rec.Tag),
						zap.Stringer("reason", reason),
					)
				},
			}
			events := grouper.Group(model.Records(details))
			a.logger.Debug("grouped readings", zap.Int("records", len(details)), zap.Int("events", len(events)))

			tbl, err := views.Events(events, slots)
			if err != nil {
				return err
			}
			q := views.Query{Sort: views.ParseSort(sort), Page: page - 1, PageSize: pageSize}
			if err := views.Apply(tbl, q); err != nil {
				return err
			}
			return render.View(out(cmd), tbl.View())
		},
	}
	cmd.Flags().IntVar(&slots, "slots", control.DefaultSlotCount, "Readings per channel")
	cmd.Flags().StringVar(&sort, "sort", "", "Sort columns, e.g. -fechaHora")
	cmd.Flags().IntVar(&page, "page", 1, "Page number, starting at 1")
	cmd.Flags().IntVar(&pageSize, "page-size", 10, "Rows per page")
	return cmd
}

func newCaptureCmd(a *app) *cobra.Command {
	var (
		fill  string
		net   string
		fecha string
		slots int
	)
	cmd := &cobra.Command{
		Use:   "capture <productID>",
		Short: "Record a control event for a product",
		Long: `Record a control event for a product.

Readings are comma separated and positional: "101.5,,99" fills slots 1 and 3.
At least one fill and one net reading are required.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fillValues, err := parseReadings(fill)
			if err != nil {
				return fmt.Errorf("invalid --fill: %w", err)
			}
			netValues, err := parseReadings(net)
			if err != nil {
				return fmt.Errorf("invalid --net: %w", err)
			}

			at := a.now()
			if fecha != "" {
				if at, err = control.ParseTimestamp(fecha); err != nil {
					return fmt.Errorf("invalid --fecha: %s", fecha)
				}
			}

			records, err := control.Capture(args[0], at, fillValues, netValues, slots)
			if err != nil {
				return err
			}

			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			product, err := a.client.GetProduct(ctx, args[0])
			if err != nil {
				return err
			}
			if !product.Active {
				return fmt.Errorf("%w: producto %s", model.ErrInactive, product.Producto)
			}

			res, err := a.client.CreateProductDetails(ctx, model.DetailInputs(records))
			if err != nil {
				return err
			}
			a.logger.Debug("saved control event", zap.Int("saved", res.Saved), zap.Int("errors", res.Errors))

			printf(cmd, "%d detalle(s) guardado(s) exitosamente", res.Saved)
			if res.Errors > 0 {
				printf(cmd, " (%d errores: %s)", res.Errors, res.LastError)
			}
			printf(cmd, "\n")
			return nil
		},
	}
	cmd.Flags().StringVar(&fill, "fill", "", "Fill weights in grams, comma separated")
	cmd.Flags().StringVar(&net, "net", "", "Net weights in grams, comma separated")
	cmd.Flags().StringVar(&fecha, "fecha", "", "Event timestamp (ISO 8601), defaults to now")
	cmd.Flags().IntVar(&slots, "slots", control.DefaultSlotCount, "Readings per channel")
	return cmd
}

var errBadReading = errors.New("readings must be numbers")

// parseReadings reads a positional list where empty entries are unset slots.
func parseReadings(s string) ([]*float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]*float64, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", errBadReading, part)
		}
		out[i] = &v
	}
	return out, nil
}
