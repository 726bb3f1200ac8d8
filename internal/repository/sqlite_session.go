package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/alexanderramin/shiftpay/internal/db"
	"github.com/alexanderramin/shiftpay/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

const sessionColumns = `id, user_id, started_at, ended_at, created_at`

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.WorkSession) error {
	query := `INSERT INTO work_sessions (` + sessionColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		formatTimestamp(s.StartedAt),
		nullableTimestamp(s.EndedAt),
		formatTimestamp(s.CreatedAt),
	)
	if err != nil {
		if s.Open() && isUniqueViolation(err) {
			return fmt.Errorf("inserting work session for %s: %w", s.UserID, domain.ErrSessionAlreadyOpen)
		}
		return fmt.Errorf("inserting work session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.WorkSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions WHERE id = ?`
	return r.scanSession(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteSessionRepo) GetOpen(ctx context.Context, userID string) (*domain.WorkSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions
		WHERE user_id = ? AND ended_at IS NULL
		ORDER BY started_at DESC LIMIT 1`
	return r.scanSession(r.db.QueryRowContext(ctx, query, userID))
}

func (r *SQLiteSessionRepo) Close(ctx context.Context, id string, endedAt time.Time) (bool, error) {
	query := `UPDATE work_sessions SET ended_at = ? WHERE id = ? AND ended_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, formatTimestamp(endedAt), id)
	if err != nil {
		return false, fmt.Errorf("closing work session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("closing work session: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteSessionRepo) ListClosedBetween(ctx context.Context, userID string, from, to time.Time) ([]*domain.WorkSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions
		WHERE user_id = ?
		  AND started_at >= ? AND started_at < ?
		  AND ended_at IS NOT NULL
		ORDER BY started_at`
	rows, err := r.db.QueryContext(ctx, query, userID, formatTimestamp(from), formatTimestamp(to))
	if err != nil {
		return nil, fmt.Errorf("listing closed sessions: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) ActiveMonths(ctx context.Context, userID string) iter.Seq2[domain.YearMonth, error] {
	return func(yield func(domain.YearMonth, error) bool) {
		query := `SELECT DISTINCT strftime('%Y-%m', started_at) AS month
			FROM work_sessions
			WHERE user_id = ? AND ended_at IS NOT NULL
			ORDER BY month DESC`
		rows, err := r.db.QueryContext(ctx, query, userID)
		if err != nil {
			yield(domain.YearMonth{}, fmt.Errorf("listing active months: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var month string
			if err := rows.Scan(&month); err != nil {
				yield(domain.YearMonth{}, fmt.Errorf("scanning active month: %w", err))
				return
			}
			ym, err := domain.ParseYearMonth(month)
			if err != nil {
				yield(domain.YearMonth{}, err)
				return
			}
			if !yield(ym, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(domain.YearMonth{}, fmt.Errorf("iterating active months: %w", err))
		}
	}
}

// scanSession scans a single session from a *sql.Row.
func (r *SQLiteSessionRepo) scanSession(row *sql.Row) (*domain.WorkSession, error) {
	var s domain.WorkSession
	var startedAtStr, createdAtStr string
	var endedAtStr sql.NullString

	err := row.Scan(&s.ID, &s.UserID, &startedAtStr, &endedAtStr, &createdAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("work session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work session: %w", err)
	}

	return r.populateSession(&s, startedAtStr, endedAtStr, createdAtStr)
}

// scanSessions scans multiple sessions from *sql.Rows.
func (r *SQLiteSessionRepo) scanSessions(rows *sql.Rows) ([]*domain.WorkSession, error) {
	var sessions []*domain.WorkSession
	for rows.Next() {
		var s domain.WorkSession
		var startedAtStr, createdAtStr string
		var endedAtStr sql.NullString

		if err := rows.Scan(&s.ID, &s.UserID, &startedAtStr, &endedAtStr, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}

		session, err := r.populateSession(&s, startedAtStr, endedAtStr, createdAtStr)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

// populateSession fills in parsed fields on a WorkSession after scanning raw strings.
func (r *SQLiteSessionRepo) populateSession(s *domain.WorkSession, startedAtStr string, endedAtStr sql.NullString, createdAtStr string) (*domain.WorkSession, error) {
	var err error
	if s.StartedAt, err = parseTimestamp(startedAtStr); err != nil {
		return nil, fmt.Errorf("parsing started_at: %w", err)
	}
	if s.EndedAt, err = parseNullableTimestamp(endedAtStr); err != nil {
		return nil, fmt.Errorf("parsing ended_at: %w", err)
	}
	if s.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return s, nil
}
