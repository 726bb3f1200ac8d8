package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/shiftpay/internal/cli/formatter"
	"github.com/alexanderramin/shiftpay/internal/domain"
)

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Monthly payroll reports",
	}

	cmd.AddCommand(
		newReportShowCmd(app),
		newReportMonthsCmd(app),
		newReportDispatchCmd(app),
	)

	return cmd
}

func newReportShowCmd(app *App) *cobra.Command {
	var month monthValue
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the payroll report for a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ym := month.or(domain.MonthOf(app.now()))

			report, err := app.Reports.BuildMonthlyReport(ctx, app.UserID, ym)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "table":
				fmt.Fprintln(out, formatter.FormatReport(report, app.language(ctx)))
			case "text":
				fmt.Fprint(out, formatter.FormatReportText(report, app.language(ctx)))
			case "json":
				data, err := marshalReport(report)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			default:
				return fmt.Errorf("unknown format %q (want table, text or json)", format)
			}
			return nil
		},
	}

	cmd.Flags().Var(&month, "month", "Month to report (default current month)")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, text or json")
	return cmd
}

func newReportMonthsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "months",
		Short: "List months with recorded work, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var months []domain.YearMonth
			for ym, err := range app.Ledger.ActiveMonths(cmd.Context(), app.UserID) {
				if err != nil {
					return err
				}
				months = append(months, ym)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMonths(months))
			return nil
		},
	}
}

func newReportDispatchCmd(app *App) *cobra.Command {
	var month monthValue
	var outDir string

	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Build and export the monthly report for every user",
		Long: `Builds the report of every registered user for one month and writes
<user>-<YYYY-MM>.json and .txt into the output directory. A failing user is
reported and skipped; the others are still written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Dispatch == nil {
				return fmt.Errorf("report dispatch is not configured")
			}
			ym := month.or(domain.MonthOf(app.now()).Prev())

			sink, err := newFileSink(outDir)
			if err != nil {
				return err
			}
			summary, err := app.Dispatch.DispatchMonth(cmd.Context(), ym, sink)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDispatchSummary(summary))
			if n := len(summary.Failed); n > 0 {
				return fmt.Errorf("%d report(s) failed", n)
			}
			return nil
		},
	}

	cmd.Flags().Var(&month, "month", "Month to dispatch (default previous month)")
	cmd.Flags().StringVar(&outDir, "out", "reports", "Output directory")
	return cmd
}
