package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/shiftpay/internal/cli/formatter"
	"github.com/alexanderramin/shiftpay/internal/dialog"
	"github.com/alexanderramin/shiftpay/internal/domain"
	"github.com/alexanderramin/shiftpay/internal/service"
)

// errNotInteractive is returned by commands that need a terminal.
var errNotInteractive = errors.New("this command needs an interactive terminal; use 'profile set' instead")

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show and edit compensation settings",
	}

	cmd.AddCommand(
		newProfileShowCmd(app),
		newProfileSetCmd(app),
		newProfileLangCmd(app),
		newProfileEditCmd(app),
	)

	return cmd
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the compensation profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Profiles.Resolve(cmd.Context(), app.UserID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProfile(p))
			return nil
		},
	}
}

func newProfileSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "set rate|bonus|credits VALUE",
		Short:     "Set one compensation field",
		Example:   "  shiftpay profile set rate 45\n  shiftpay profile set credits 2,25",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"rate", "bonus", "credits"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lang := app.language(ctx)

			field, err := domain.ParseProfileField(args[0])
			if err != nil {
				return err
			}
			value, err := dialog.ParseAmount(args[1])
			if err != nil {
				return errors.New(formatter.T(lang, formatter.MsgInvalidNumber))
			}
			if _, err := app.Profiles.SetField(ctx, app.UserID, field, value); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FieldSetText(lang, field, value))
			return nil
		},
	}
}

func newProfileLangCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "lang en|ru",
		Short:     "Set the reply language",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"en", "ru"},
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := domain.ParseLanguage(args[0])
			if err != nil {
				return err
			}
			if err := app.Profiles.SetLanguage(cmd.Context(), app.UserID, lang); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.T(lang, formatter.MsgLanguageSet))
			return nil
		},
	}
}

func newProfileEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the profile in an interactive form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errNotInteractive
			}
			ctx := cmd.Context()

			p, err := app.Profiles.Resolve(ctx, app.UserID)
			if err != nil {
				return err
			}
			values := newProfileFormValues(p)
			if err := profileForm(values).Run(); err != nil {
				return err
			}

			updated, err := applyProfileValues(ctx, app, values)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProfile(updated))
			return nil
		},
	}
}

// applyProfileValues writes every edited field in one transaction and returns
// the stored profile.
func applyProfileValues(ctx context.Context, app *App, values *profileFormValues) (*domain.CompensationProfile, error) {
	fields, lang, err := values.parse()
	if err != nil {
		return nil, err
	}
	return app.Profiles.Update(ctx, app.UserID, service.ProfileUpdate{Fields: fields, Language: &lang})
}
