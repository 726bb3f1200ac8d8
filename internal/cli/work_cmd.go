package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/shiftpay/internal/cli/formatter"
	"github.com/alexanderramin/shiftpay/internal/domain"
)

func newWorkCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "work",
		Short: "Start and stop live work sessions",
	}

	cmd.AddCommand(
		newWorkStartCmd(app),
		newWorkStopCmd(app),
		newWorkStatusCmd(app),
	)

	return cmd
}

func newWorkStartCmd(app *App) *cobra.Command {
	var at timestampValue

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a work session now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lang := app.language(ctx)

			ws, err := app.Ledger.StartWork(ctx, app.UserID, at.or(app.now()))
			if errors.Is(err, domain.ErrSessionAlreadyOpen) {
				if open, openErr := app.Ledger.OpenSession(ctx, app.UserID); openErr == nil {
					return errors.New(formatter.T(lang, formatter.MsgAlreadyWorking, open.StartedAt.Format(domain.TimestampLayout)))
				}
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.T(lang, formatter.MsgWorkStarted, formatter.FormatClock(ws.StartedAt)))
			return nil
		},
	}

	cmd.Flags().Var(&at, "at", "Start time instead of now")
	return cmd
}

func newWorkStopCmd(app *App) *cobra.Command {
	var at timestampValue

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running work session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lang := app.language(ctx)

			ws, err := app.Ledger.StopWork(ctx, app.UserID, at.or(app.now()))
			if errors.Is(err, domain.ErrNoOpenSession) {
				return errors.New(formatter.T(lang, formatter.MsgNotWorking))
			}
			if err != nil {
				return err
			}

			today, err := app.Ledger.HoursForDay(ctx, app.UserID, ws.StartedAt)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.T(lang, formatter.MsgWorkStopped, formatter.FormatClock(*ws.EndedAt)))
			fmt.Fprintln(out, formatter.T(lang, formatter.MsgTodayWorked, today))
			return nil
		},
	}

	cmd.Flags().Var(&at, "at", "Stop time instead of now")
	return cmd
}

func newWorkStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a session is running and today's hours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			now := app.now()

			open, err := app.Ledger.OpenSession(ctx, app.UserID)
			if err != nil && !errors.Is(err, domain.ErrNoOpenSession) {
				return err
			}
			today, err := app.Ledger.HoursForDay(ctx, app.UserID, now)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWorkStatus(open, today, now))
			return nil
		},
	}
}
