package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/shiftpay/internal/payroll"
	"github.com/alexanderramin/shiftpay/internal/repository"
	"github.com/alexanderramin/shiftpay/internal/testutil"
)

type testServices struct {
	db       *sql.DB
	sessions *repository.SQLiteSessionRepo
	profiles *repository.SQLiteUserProfileRepo
	ledger   LedgerService
	profile  ProfileService
	reports  ReportService
	observer *recordingObserver
}

func setupServices(t *testing.T, database *sql.DB) *testServices {
	t.Helper()
	sessions := repository.NewSQLiteSessionRepo(database)
	profiles := repository.NewSQLiteUserProfileRepo(database)
	uow := testutil.NewTestUoW(database)
	obs := &recordingObserver{}

	ledger := NewLedgerService(sessions, uow, obs)
	profile := NewProfileService(profiles, uow, obs)
	return &testServices{
		db:       database,
		sessions: sessions,
		profiles: profiles,
		ledger:   ledger,
		profile:  profile,
		reports:  NewReportService(ledger, profile, payroll.DefaultRules(), obs),
		observer: obs,
	}
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.events) == 0 {
		return UseCaseEvent{}
	}
	return o.events[len(o.events)-1]
}
