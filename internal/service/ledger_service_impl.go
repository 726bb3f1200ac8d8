package service

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/alexanderramin/shiftpay/internal/db"
	"github.com/alexanderramin/shiftpay/internal/domain"
	"github.com/alexanderramin/shiftpay/internal/repository"
	"github.com/google/uuid"
)

type ledgerService struct {
	sessions repository.SessionRepo
	uow      db.UnitOfWork
	locks    *keyedMutex
	observer UseCaseObserver
}

func NewLedgerService(sessions repository.SessionRepo, uow db.UnitOfWork, observers ...UseCaseObserver) LedgerService {
	return &ledgerService{
		sessions: sessions,
		uow:      uow,
		locks:    newKeyedMutex(),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *ledgerService) StartWork(ctx context.Context, userID string, at time.Time) (session *domain.WorkSession, err error) {
	at = domain.Normalize(at)
	defer observe(ctx, s.observer, "start-work", time.Now(), map[string]any{"user_id": userID}, &err)

	unlock := s.locks.Lock(userID)
	defer unlock()

	session = &domain.WorkSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		StartedAt: at,
		CreatedAt: domain.Normalize(time.Now()),
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteUserProfileRepo(tx).Register(ctx, userID); err != nil {
			return err
		}
		txSessions := repository.NewSQLiteSessionRepo(tx)

		open, err := txSessions.GetOpen(ctx, userID)
		switch {
		case err == nil:
			return fmt.Errorf("session started at %s: %w",
				open.StartedAt.Format(domain.TimestampLayout), domain.ErrSessionAlreadyOpen)
		case !errors.Is(err, repository.ErrNotFound):
			return err
		}
		return txSessions.Create(ctx, session)
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *ledgerService) StopWork(ctx context.Context, userID string, at time.Time) (session *domain.WorkSession, err error) {
	at = domain.Normalize(at)
	defer observe(ctx, s.observer, "stop-work", time.Now(), map[string]any{"user_id": userID}, &err)

	unlock := s.locks.Lock(userID)
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)

		open, err := txSessions.GetOpen(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("user %s: %w", userID, domain.ErrNoOpenSession)
			}
			return err
		}
		if err := open.Close(at); err != nil {
			return err
		}
		found, err := txSessions.Close(ctx, open.ID, at)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("user %s: %w", userID, domain.ErrNoOpenSession)
		}
		session = open
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// RecordManualSession inserts an already closed session. It does not look at
// the open session and does not reject overlaps with existing sessions.
func (s *ledgerService) RecordManualSession(ctx context.Context, userID string, start, end time.Time) (session *domain.WorkSession, err error) {
	start, end = domain.Normalize(start), domain.Normalize(end)
	defer observe(ctx, s.observer, "record-manual-session", time.Now(), map[string]any{"user_id": userID}, &err)

	if err = domain.ValidateInterval(start, end); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	session = &domain.WorkSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		StartedAt: start,
		EndedAt:   &end,
		CreatedAt: domain.Normalize(time.Now()),
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteUserProfileRepo(tx).Register(ctx, userID); err != nil {
			return err
		}
		return repository.NewSQLiteSessionRepo(tx).Create(ctx, session)
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *ledgerService) OpenSession(ctx context.Context, userID string) (*domain.WorkSession, error) {
	open, err := s.sessions.GetOpen(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNoOpenSession)
		}
		return nil, err
	}
	return open, nil
}

func (s *ledgerService) SessionsForDay(ctx context.Context, userID string, day time.Time) ([]*domain.WorkSession, error) {
	from, to := domain.DayBounds(domain.Normalize(day))
	return s.sessions.ListClosedBetween(ctx, userID, from, to)
}

func (s *ledgerService) HoursForDay(ctx context.Context, userID string, day time.Time) (float64, error) {
	sessions, err := s.SessionsForDay(ctx, userID, day)
	if err != nil {
		return 0, fmt.Errorf("hours for day: %w", err)
	}
	return domain.SumHours(sessions), nil
}

func (s *ledgerService) HoursForMonth(ctx context.Context, userID string, ym domain.YearMonth) (float64, error) {
	sessions, err := s.sessions.ListClosedBetween(ctx, userID, ym.Start(), ym.End())
	if err != nil {
		return 0, fmt.Errorf("hours for month %s: %w", ym, err)
	}
	return domain.SumHours(sessions), nil
}

func (s *ledgerService) ActiveMonths(ctx context.Context, userID string) iter.Seq2[domain.YearMonth, error] {
	return s.sessions.ActiveMonths(ctx, userID)
}
