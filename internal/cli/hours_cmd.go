package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/shiftpay/internal/cli/formatter"
	"github.com/alexanderramin/shiftpay/internal/domain"
)

func newHoursCmd(app *App) *cobra.Command {
	var day dayValue
	var month monthValue

	cmd := &cobra.Command{
		Use:   "hours",
		Short: "Show hours worked on a day or in a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if day.set && month.set {
				return errors.New("use either --day or --month, not both")
			}
			if month.set {
				hours, err := app.Ledger.HoursForMonth(ctx, app.UserID, month.ym)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %s (%.2f)\n", month.ym, formatter.FormatHours(hours), hours)
				return nil
			}

			d := day.or(app.now())
			hours, err := app.Ledger.HoursForDay(ctx, app.UserID, d)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: %s (%.2f)\n", d.Format(domain.DayLayout), formatter.FormatHours(hours), hours)
			return nil
		},
	}

	cmd.Flags().Var(&day, "day", "Day to total (default today)")
	cmd.Flags().Var(&month, "month", "Month to total")
	return cmd
}
