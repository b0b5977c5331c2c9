// Package cli implements the qcctl commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qcdash/qc-dashboard/services/api/logging"
	"github.com/qcdash/qc-dashboard/services/api/upstream"
	"github.com/qcdash/qc-dashboard/services/qcctl/internal/config"
)

// app carries the state shared by every command.
type app struct {
	apiURL  string
	token   string
	timeout time.Duration
	verbose bool

	logger *zap.Logger
	client *upstream.Client
	now    func() time.Time
}

// NewRootCmd builds the qcctl command tree with defaults taken from cfg.
func NewRootCmd(cfg config.Config) *cobra.Command {
	a := &app{now: time.Now}

	root := &cobra.Command{
		Use:   "qcctl",
		Short: "Command-line client for the quality control dashboard API",
		Long: `qcctl talks to the dashboard REST API.

It lists customers and products through the same table views the dashboard
uses, groups the raw weight readings of a product into control events and
records new control events.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.timeout <= 0 {
				return fmt.Errorf("invalid --timeout: %s", a.timeout)
			}
			level := "info"
			if a.verbose {
				level = "debug"
			}
			logger, err := logging.New(level, true)
			if err != nil {
				return err
			}
			a.logger = logger

			client, err := upstream.New(a.apiURL, a.timeout, upstream.WithToken(a.token))
			if err != nil {
				return err
			}
			a.client = client
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.apiURL, "api", cfg.APIURL, "Dashboard API base URL (or set QCCTL_API_URL)")
	root.PersistentFlags().StringVar(&a.token, "token", cfg.Token, "Bearer token (or set QCCTL_TOKEN)")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", cfg.RequestTimeout, "Request timeout")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newCustomersCmd(a),
		newProductsCmd(a),
		newEventsCmd(a),
		newCaptureCmd(a),
		newReportCmd(a),
	)
	return root
}

// requestContext returns a context bounded by the request timeout.
func (a *app) requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.timeout)
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(out(cmd), format, args...)
}
