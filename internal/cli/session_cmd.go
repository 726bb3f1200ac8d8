package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/shiftpay/internal/cli/formatter"
	"github.com/alexanderramin/shiftpay/internal/dialog"
	"github.com/alexanderramin/shiftpay/internal/domain"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Record and list work sessions",
	}

	cmd.AddCommand(
		newSessionAddCmd(app),
		newSessionListCmd(app),
	)

	return cmd
}

func newSessionAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "add YYYY-MM-DD HH:MM - HH:MM",
		Short:   "Record a finished session after the fact",
		Example: "  shiftpay session add 2025-05-24 09:00 - 17:00",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lang := app.language(ctx)

			start, end, err := dialog.ParseManualSession(strings.Join(args, " "))
			if err != nil {
				var perr *dialog.ParseError
				if errors.As(err, &perr) {
					return fmt.Errorf("%s", formatter.ParseErrorText(lang, perr.Kind))
				}
				return err
			}
			if _, err := app.Ledger.RecordManualSession(ctx, app.UserID, start, end); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.T(lang, formatter.MsgSessionSaved))
			return nil
		},
	}
}

func newSessionListCmd(app *App) *cobra.Command {
	var day dayValue

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the sessions of a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := day.or(app.now())
			sessions, err := app.Ledger.SessionsForDay(cmd.Context(), app.UserID, d)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessions(d.Format(domain.DayLayout), sessions))
			return nil
		},
	}

	cmd.Flags().Var(&day, "day", "Day to list (default today)")
	return cmd
}
