package service

import (
	"context"
	"iter"
	"time"

	"github.com/alexanderramin/shiftpay/internal/domain"
	"github.com/alexanderramin/shiftpay/internal/payroll"
)

// LedgerService records work sessions and aggregates them into hours.
type LedgerService interface {
	StartWork(ctx context.Context, userID string, at time.Time) (*domain.WorkSession, error)
	StopWork(ctx context.Context, userID string, at time.Time) (*domain.WorkSession, error)
	RecordManualSession(ctx context.Context, userID string, start, end time.Time) (*domain.WorkSession, error)
	OpenSession(ctx context.Context, userID string) (*domain.WorkSession, error)
	SessionsForDay(ctx context.Context, userID string, day time.Time) ([]*domain.WorkSession, error)
	HoursForDay(ctx context.Context, userID string, day time.Time) (float64, error)
	HoursForMonth(ctx context.Context, userID string, ym domain.YearMonth) (float64, error)
	ActiveMonths(ctx context.Context, userID string) iter.Seq2[domain.YearMonth, error]
}

type ProfileService interface {
	Register(ctx context.Context, userID string) error
	// Get fails with domain.ErrProfileNotFound for unknown users.
	Get(ctx context.Context, userID string) (*domain.CompensationProfile, error)
	// Resolve returns the stored profile, or defaults for unknown users.
	Resolve(ctx context.Context, userID string) (*domain.CompensationProfile, error)
	SetField(ctx context.Context, userID string, field domain.ProfileField, value float64) (*domain.CompensationProfile, error)
	SetLanguage(ctx context.Context, userID string, lang domain.Language) error
	// Update applies every change in upd in one transaction, or none of them.
	Update(ctx context.Context, userID string, upd ProfileUpdate) (*domain.CompensationProfile, error)
	ListUserIDs(ctx context.Context) ([]string, error)
}

// ProfileUpdate is a partial profile change. Absent fields and a nil
// Language are left unchanged.
type ProfileUpdate struct {
	Fields   map[domain.ProfileField]float64
	Language *domain.Language
}

// MonthlyReport is the summary record for one user and month. Renderers
// format it; it carries no presentation of its own.
type MonthlyReport struct {
	UserID    string                     `json:"user_id"`
	Period    domain.YearMonth           `json:"-"`
	Month     string                     `json:"month"`
	Profile   domain.CompensationProfile `json:"-"`
	Breakdown payroll.Breakdown          `json:"breakdown"`
}

type ReportService interface {
	BuildMonthlyReport(ctx context.Context, userID string, ym domain.YearMonth) (*MonthlyReport, error)
}

// ReportSink delivers a built report somewhere: a file, a chat, a queue.
type ReportSink interface {
	Deliver(ctx context.Context, report *MonthlyReport) error
}

// ReportSinkFunc adapts a function to ReportSink.
type ReportSinkFunc func(ctx context.Context, report *MonthlyReport) error

func (f ReportSinkFunc) Deliver(ctx context.Context, report *MonthlyReport) error {
	return f(ctx, report)
}

// DispatchSummary lists which users received their report and which failed.
type DispatchSummary struct {
	Period    domain.YearMonth
	Delivered []string
	Failed    map[string]error
}

type DispatchService interface {
	DispatchMonth(ctx context.Context, ym domain.YearMonth, sink ReportSink) (*DispatchSummary, error)
}
