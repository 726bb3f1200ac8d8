package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/shiftpay/internal/domain"
	"github.com/alexanderramin/shiftpay/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_StartStop(t *testing.T) {
	svc := setupServices(t, testutil.NewTestDB(t))
	ctx := context.Background()

	started, err := svc.ledger.StartWork(ctx, "u1", testutil.At(t, "2025-05-24T09:00:00"))
	require.NoError(t, err)
	assert.True(t, started.Open())

	open, err := svc.ledger.OpenSession(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, started.ID, open.ID)

	stopped, err := svc.ledger.StopWork(ctx, "u1", testutil.At(t, "2025-05-24T17:30:00"))
	require.NoError(t, err)
	assert.Equal(t, started.ID, stopped.ID)
	assert.InDelta(t, 8.5, stopped.Hours(), 1e-9)

	_, err = svc.ledger.OpenSession(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrNoOpenSession)
}

func TestLedger_StartRegistersUser(t *testing.T) {
	svc := setupServices(t, testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := svc.ledger.StartWork(ctx, "new-user", testutil.At(t, "2025-05-24T09:00:00"))
	require.NoError(t, err)

	p, err := svc.profile.Get(ctx, "new-user")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultProfile("new-user"), p)
}

func TestLedger_SecondStartFails(t *testing.T) {
	svc := setupServices(t, testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := svc.ledger.StartWork(ctx, "u1", testutil.At(t, "2025-05-24T09:00:00"))
	require.NoError(t, err)

	_, err = svc.ledger.StartWork(ctx, "u1", testutil.At(t, "2025-05-24T09:05:00"))
	assert.ErrorIs(t, err, domain.ErrSessionAlreadyOpen)

	event := svc.observer.last()
	assert.Equal(t, "start-work", event.Name)
	assert.False(t, event.Success)
}

func TestLedger_StopWithoutStart(t *testing.T) {
	svc := setupServices(t, testutil.NewTestDB(t))

	_, err := svc.ledger.StopWork(context.Background(), "u1", testutil.At(t, "2025-05-24T17:00:00"))
	assert.ErrorIs(t, err, domain.ErrNoOpenSession)
}

func TestLedger_StopBeforeStartIsInvalid(t *testing.T) {
	svc := setupServices(t, testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := svc.ledger.StartWork(ctx, "u1", testutil.At(t, "2025-05-24T09:00:00"))
	require.NoError(t, err)

	_, err = svc.ledger.StopWork(ctx, "u1", testutil.At(t, "2025-05-24T09:00:00"))
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)

	// Session stays open after the rejected stop.
	_, err = svc.ledger.OpenSession(ctx, "u1")
	assert.NoError(t, err)
}

func TestLedger_TimestampsTruncatedToSecond(t *testing.T) {
	svc := setupServices(t, testutil.NewTestDB(t))
	ctx := context.Background()

	at := testutil.At(t, "2025-05-24T09:00:00").Add(750 * time.Millisecond)
	started, err := svc.ledger.StartWork(ctx, "u1", at)
	require.NoError(t, err)
	assert.Equal(t, testutil.At(t, "2025-05-24T09:00:00"), started.StartedAt)
}

func TestLedger_RecordManualSession(t *testing.T) {
	svc := setupServices(t, testutil.NewTestDB(t))
	ctx := context.Background()

	s, err := svc.ledger.RecordManualSession(ctx, "u1",
		testutil.At(t, "2025-05-24T09:00:00"), testutil.At(t, "2025-05-24T17:00:00"))
	require.NoError(t, err)
	assert.False(t, s.Open())

	hours, err := svc.ledger.HoursForDay(ctx, "u1", testutil.At(t, "2025-05-24T00:00:00"))
	require.NoError(t, err)
	assert.InDelta(t, 8.0, hours, 1e-9)
}

func TestLedger_RecordManualSessionInvalidInterval(t *testing.T) {
	svc := setupServices(t, testutil.NewTestDB(t))
	ctx := context.Background()

	for _, end := range []string{"2025-05-24T09:00:00", "2025-05-24T08:00:00"} {
		_, err := svc.ledger.RecordManualSession(ctx, "u1", testutil.At(t, "2025-05-24T09:00:00"), testutil.At(t, end))
		assert.ErrorIs(t, err, domain.ErrInvalidInterval, end)
	}

	_, err := svc.profile.Get(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound, "rejected input must not register the user")
}

func TestLedger_ManualSessionIgnoresOpenSession(t *testing.T) {
	svc := setupServices(t, testutil.NewTestDB(t))
	ctx := context.Background()

	open, err := svc.ledger.StartWork(ctx, "u1", testutil.At(t, "2025-05-24T09:00:00"))
	require.NoError(t, err)

	_, err = svc.ledger.RecordManualSession(ctx, "u1",
		testutil.At(t, "2025-05-23T09:00:00"), testutil.At(t, "2025-05-23T12:00:00"))
	require.NoError(t, err)

	still, err := svc.ledger.OpenSession(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, open.ID, still.ID)
}

func TestLedger_OverlappingManualSessionsBothCount(t *testing.T) {
	svc := setupServices(t, testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := svc.ledger.RecordManualSession(ctx, "u1",
		testutil.At(t, "2025-05-24T09:00:00"), testutil.At(t, "2025-05-24T13:00:00"))
	require.NoError(t, err)
	_, err = svc.ledger.RecordManualSession(ctx, "u1",
		testutil.At(t, "2025-05-24T11:00:00"), testutil.At(t, "2025-05-24T15:00:00"))
	require.NoError(t, err)

	hours, err := svc.ledger.HoursForDay(ctx, "u1", testutil.At(t, "2025-05-24T10:00:00"))
	require.NoError(t, err)
	assert.InDelta(t, 8.0, hours, 1e-9)
}

func TestLedger_HoursForDay_SessionCountsOnStartDay(t *testing.T) {
	svc := setupServices(t, testutil.NewTestDB(t))
	ctx := context.Background()

	// Crosses midnight; not split.
	_, err := svc.ledger.RecordManualSession(ctx, "u1",
		testutil.At(t, "2025-05-24T22:00:00"), testutil.At(t, "2025-05-25T02:00:00"))
	require.NoError(t, err)

	day1, err := svc.ledger.HoursForDay(ctx, "u1", testutil.At(t, "2025-05-24T00:00:00"))
	require.NoError(t, err)
	day2, err := svc.ledger.HoursForDay(ctx, "u1", testutil.At(t, "2025-05-25T00:00:00"))
	require.NoError(t, err)

	assert.InDelta(t, 4.0, day1, 1e-9)
	assert.Equal(t, 0.0, day2)
}

func TestLedger_HoursForDay_Empty(t *testing.T) {
	svc := setupServices(t, testutil.NewTestDB(t))

	hours, err := svc.ledger.HoursForDay(context.Background(), "nobody", testutil.At(t, "2025-05-24T00:00:00"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, hours)
}

func TestLedger_HoursForMonth(t *testing.T) {
	svc := setupServices(t, testutil.NewTestDB(t))
	ctx := context.Background()

	ranges := [][2]string{
		{"2025-04-30T22:00:00", "2025-05-01T01:00:00"}, // April
		{"2025-05-01T00:00:00", "2025-05-01T02:30:00"},
		{"2025-05-15T09:00:00", "2025-05-15T17:00:00"},
		{"2025-05-31T23:00:00", "2025-06-01T01:00:00"},
		{"2025-06-01T00:00:00", "2025-06-01T05:00:00"}, // June
	}
	for _, r := range ranges {
		_, err := svc.ledger.RecordManualSession(ctx, "u1", testutil.At(t, r[0]), testutil.At(t, r[1]))
		require.NoError(t, err)
	}
	// Open sessions never count.
	_, err := svc.ledger.StartWork(ctx, "u1", testutil.At(t, "2025-05-20T09:00:00"))
	require.NoError(t, err)

	hours, err := svc.ledger.HoursForMonth(ctx, "u1", domain.YearMonth{Year: 2025, Month: time.May})
	require.NoError(t, err)
	assert.InDelta(t, 2.5+8+2, hours, 1e-9)
}

func TestLedger_SessionsForDayOrdered(t *testing.T) {
	svc := setupServices(t, testutil.NewTestDB(t))
	ctx := context.Background()

	for _, r := range [][2]string{
		{"2025-05-24T14:00:00", "2025-05-24T15:00:00"},
		{"2025-05-24T08:00:00", "2025-05-24T09:00:00"},
	} {
		_, err := svc.ledger.RecordManualSession(ctx, "u1", testutil.At(t, r[0]), testutil.At(t, r[1]))
		require.NoError(t, err)
	}

	list, err := svc.ledger.SessionsForDay(ctx, "u1", testutil.At(t, "2025-05-24T12:00:00"))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 8, list[0].StartedAt.Hour())
	assert.Equal(t, 14, list[1].StartedAt.Hour())
}

func TestLedger_ActiveMonths(t *testing.T) {
	svc := setupServices(t, testutil.NewTestDB(t))
	ctx := context.Background()

	for _, start := range []string{"2025-02-03T09:00:00", "2025-05-01T09:00:00", "2025-02-20T09:00:00"} {
		s := testutil.At(t, start)
		_, err := svc.ledger.RecordManualSession(ctx, "u1", s, s.Add(time.Hour))
		require.NoError(t, err)
	}

	var months []domain.YearMonth
	for ym, err := range svc.ledger.ActiveMonths(ctx, "u1") {
		require.NoError(t, err)
		months = append(months, ym)
	}
	assert.Equal(t, []domain.YearMonth{
		{Year: 2025, Month: time.May},
		{Year: 2025, Month: time.February},
	}, months)
}

// TestLedger_Property_MonthHoursEqualSessionSum records random
// non-overlapping sessions and checks the month total against their durations.
func TestLedger_Property_MonthHoursEqualSessionSum(t *testing.T) {
	svc := setupServices(t, testutil.NewTestDB(t))
	ctx := context.Background()

	cursor := testutil.At(t, "2025-03-01T00:00:00")
	var want time.Duration
	for i := 0; i < 40; i++ {
		cursor = cursor.Add(time.Duration(30+i*7%90) * time.Minute)
		d := time.Duration(15+i*13%240) * time.Minute
		_, err := svc.ledger.RecordManualSession(ctx, "u1", cursor, cursor.Add(d))
		require.NoError(t, err)
		if cursor.Month() == time.March {
			want += d
		}
		cursor = cursor.Add(d)
	}

	got, err := svc.ledger.HoursForMonth(ctx, "u1", domain.YearMonth{Year: 2025, Month: time.March})
	require.NoError(t, err)
	assert.InDelta(t, want.Hours(), got, 1e-9)
}

func TestLedger_StartRollbackLeavesNoUser(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := setupServices(t, database)
	ctx := context.Background()

	// ExecContext #1 = register, #2 = session insert.
	failUoW := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: fmt.Errorf("injected insert failure")}
	ledger := NewLedgerService(svc.sessions, failUoW)

	_, err := ledger.StartWork(ctx, "u1", testutil.At(t, "2025-05-24T09:00:00"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected insert failure")

	_, err = svc.profile.Get(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound, "registration should roll back with the failed insert")
	_, err = svc.ledger.OpenSession(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrNoOpenSession)
}

func TestLedger_StopRollbackKeepsSessionOpen(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := setupServices(t, database)
	ctx := context.Background()

	started, err := svc.ledger.StartWork(ctx, "u1", testutil.At(t, "2025-05-24T09:00:00"))
	require.NoError(t, err)

	failUoW := &testutil.FailOnNthExecUoW{DB: database, FailOn: 1, Err: fmt.Errorf("injected close failure")}
	ledger := NewLedgerService(svc.sessions, failUoW)

	_, err = ledger.StopWork(ctx, "u1", testutil.At(t, "2025-05-24T17:00:00"))
	require.Error(t, err)

	open, err := svc.ledger.OpenSession(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, started.ID, open.ID)
}

// TestLedger_ConcurrentStartsOnlyOneWins races StartWork for one user on a
// file-backed DB; exactly one call may open a session.
func TestLedger_ConcurrentStartsOnlyOneWins(t *testing.T) {
	svc := setupServices(t, testutil.NewFileTestDB(t))
	ctx := context.Background()

	const workers = 12
	base := testutil.At(t, "2025-05-24T09:00:00")

	var wg sync.WaitGroup
	var wins, conflicts atomic.Int32
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.ledger.StartWork(ctx, "u1", base.Add(time.Duration(i)*time.Second))
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, domain.ErrSessionAlreadyOpen):
				conflicts.Add(1)
			default:
				t.Errorf("worker %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, int32(workers-1), conflicts.Load())
}

func TestLedger_ConcurrentUsersIndependent(t *testing.T) {
	svc := setupServices(t, testutil.NewFileTestDB(t))
	ctx := context.Background()

	const users = 8
	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", i)
			start := testutil.At(t, "2025-05-24T09:00:00")
			if _, err := svc.ledger.StartWork(ctx, userID, start); err != nil {
				t.Errorf("%s start: %v", userID, err)
				return
			}
			if _, err := svc.ledger.StopWork(ctx, userID, start.Add(time.Duration(i+1)*time.Hour)); err != nil {
				t.Errorf("%s stop: %v", userID, err)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < users; i++ {
		hours, err := svc.ledger.HoursForDay(ctx, fmt.Sprintf("user-%d", i), testutil.At(t, "2025-05-24T00:00:00"))
		require.NoError(t, err)
		assert.InDelta(t, float64(i+1), hours, 1e-9)
	}
}
