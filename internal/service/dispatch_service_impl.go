package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/alexanderramin/shiftpay/internal/domain"
	"golang.org/x/sync/errgroup"
)

const defaultDispatchWorkers = 4

type dispatchService struct {
	profiles ProfileService
	reports  ReportService
	workers  int
	logger   *slog.Logger
	observer UseCaseObserver
}

// NewDispatchService builds reports for every registered user with at most
// workers running at once. A nil logger discards per-user failure logs.
func NewDispatchService(profiles ProfileService, reports ReportService, workers int, logger *slog.Logger, observers ...UseCaseObserver) DispatchService {
	if workers <= 0 {
		workers = defaultDispatchWorkers
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &dispatchService{
		profiles: profiles,
		reports:  reports,
		workers:  workers,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

// DispatchMonth delivers ym's report to every user. A failure for one user is
// logged and recorded in the summary; the others still get theirs. The
// returned error is reserved for failures that stop the whole batch.
func (s *dispatchService) DispatchMonth(ctx context.Context, ym domain.YearMonth, sink ReportSink) (summary *DispatchSummary, err error) {
	fields := map[string]any{"month": ym.String()}
	defer observe(ctx, s.observer, "dispatch-month", time.Now(), fields, &err)

	userIDs, err := s.profiles.ListUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	summary = &DispatchSummary{Period: ym, Failed: make(map[string]error)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, userID := range userIDs {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			deliverErr := s.deliver(gctx, userID, ym, sink)

			mu.Lock()
			defer mu.Unlock()
			if deliverErr != nil {
				s.logger.ErrorContext(gctx, "report_dispatch_failed",
					"user_id", userID, "month", ym.String(), "error", deliverErr.Error())
				summary.Failed[userID] = deliverErr
				return nil
			}
			summary.Delivered = append(summary.Delivered, userID)
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	slices.Sort(summary.Delivered)
	fields["delivered"] = len(summary.Delivered)
	fields["failed"] = len(summary.Failed)
	return summary, nil
}

func (s *dispatchService) deliver(ctx context.Context, userID string, ym domain.YearMonth, sink ReportSink) error {
	report, err := s.reports.BuildMonthlyReport(ctx, userID, ym)
	if err != nil {
		return fmt.Errorf("building report: %w", err)
	}
	if err := sink.Deliver(ctx, report); err != nil {
		return fmt.Errorf("delivering report: %w", err)
	}
	return nil
}
