package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/shiftpay/internal/api"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and /metrics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := []api.Option{
				api.WithLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))),
				api.WithClock(app.now),
			}
			if app.Metrics != nil {
				opts = append(opts, api.WithMetrics(app.Metrics.Handler()))
			}
			srv := api.NewServer(app.Ledger, app.Profiles, app.Reports, opts...)

			fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", addr)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	defaultAddr := app.Config.HTTPAddr
	if defaultAddr == "" {
		defaultAddr = ":8080"
	}
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "Listen address")
	return cmd
}
