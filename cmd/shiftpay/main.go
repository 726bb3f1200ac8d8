package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/alexanderramin/shiftpay/internal/cli"
	"github.com/alexanderramin/shiftpay/internal/config"
	"github.com/alexanderramin/shiftpay/internal/db"
	"github.com/alexanderramin/shiftpay/internal/metrics"
	"github.com/alexanderramin/shiftpay/internal/payroll"
	"github.com/alexanderramin/shiftpay/internal/repository"
	"github.com/alexanderramin/shiftpay/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Rules are fixed for the life of the process.
	rules := payroll.DefaultRules()
	if cfg.RulesPath != "" {
		if rules, err = payroll.LoadRules(cfg.RulesPath); err != nil {
			return err
		}
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	profileRepo := repository.NewSQLiteUserProfileRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Observers: prometheus always, slog when asked for
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	useCaseMetrics := metrics.NewUseCaseMetrics(reg)
	observers := []service.UseCaseObserver{useCaseMetrics}
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Wire services
	ledger := service.NewLedgerService(sessionRepo, uow, observers...)
	profiles := service.NewProfileService(profileRepo, uow, observers...)
	reports := service.NewReportService(ledger, profiles, rules, observers...)

	app := &cli.App{
		Ledger:   ledger,
		Profiles: profiles,
		Reports:  reports,
		Dispatch: service.NewDispatchService(profiles, reports, cfg.DispatchWorkers, logger, observers...),
		Metrics:  useCaseMetrics,
		Config:   cfg,
	}

	// Detect interactive terminal for the profile form.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
