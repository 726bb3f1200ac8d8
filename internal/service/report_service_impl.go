package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/shiftpay/internal/domain"
	"github.com/alexanderramin/shiftpay/internal/payroll"
)

type reportService struct {
	ledger   LedgerService
	profiles ProfileService
	rules    payroll.Rules
	observer UseCaseObserver
}

func NewReportService(ledger LedgerService, profiles ProfileService, rules payroll.Rules, observers ...UseCaseObserver) ReportService {
	return &reportService{
		ledger:   ledger,
		profiles: profiles,
		rules:    rules,
		observer: useCaseObserverOrNoop(observers),
	}
}

// BuildMonthlyReport is read-only; unknown users get a zero-valued report.
func (s *reportService) BuildMonthlyReport(ctx context.Context, userID string, ym domain.YearMonth) (report *MonthlyReport, err error) {
	fields := map[string]any{"user_id": userID, "month": ym.String()}
	defer observe(ctx, s.observer, "build-monthly-report", time.Now(), fields, &err)

	hours, err := s.ledger.HoursForMonth(ctx, userID, ym)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.Resolve(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolving profile: %w", err)
	}
	fields["hours"] = hours

	return &MonthlyReport{
		UserID:    userID,
		Period:    ym,
		Month:     ym.String(),
		Profile:   *profile,
		Breakdown: payroll.Compute(hours, profile, s.rules),
	}, nil
}
