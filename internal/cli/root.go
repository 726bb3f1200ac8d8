package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/shiftpay/internal/config"
	"github.com/alexanderramin/shiftpay/internal/domain"
	"github.com/alexanderramin/shiftpay/internal/metrics"
	"github.com/alexanderramin/shiftpay/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Ledger   service.LedgerService
	Profiles service.ProfileService
	Reports  service.ReportService
	Dispatch service.DispatchService
	Metrics  *metrics.UseCaseMetrics
	Config   config.Config

	// UserID is the acting user, bound to the --user flag.
	UserID string

	// IsInteractive reports whether stdin is a terminal. Nil means false.
	IsInteractive func() bool

	// Now is the clock. Nil means time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// language returns the acting user's preferred language, English when unknown.
func (a *App) language(ctx context.Context) domain.Language {
	p, err := a.Profiles.Resolve(ctx, a.UserID)
	if err != nil || p.Language == "" {
		return domain.LanguageEnglish
	}
	return p.Language
}

// NewRootCmd creates the top-level "shiftpay" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "shiftpay",
		Short:         "Shift hours tracker and payroll calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&app.UserID, "user", "u", app.Config.UserID, "User to act as")

	root.AddCommand(
		newWorkCmd(app),
		newSessionCmd(app),
		newHoursCmd(app),
		newProfileCmd(app),
		newReportCmd(app),
		newChatCmd(app),
		newServeCmd(app),
	)

	return root
}
