package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/shiftpay/internal/db"
	"github.com/alexanderramin/shiftpay/internal/domain"
)

// SQLiteUserProfileRepo implements UserProfileRepo using a SQLite database.
type SQLiteUserProfileRepo struct {
	db db.DBTX
}

// NewSQLiteUserProfileRepo creates a new SQLiteUserProfileRepo.
func NewSQLiteUserProfileRepo(conn db.DBTX) *SQLiteUserProfileRepo {
	return &SQLiteUserProfileRepo{db: conn}
}

func (r *SQLiteUserProfileRepo) Register(ctx context.Context, userID string) error {
	query := `INSERT OR IGNORE INTO users (id, created_at) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, query, userID, nowUTC()); err != nil {
		return fmt.Errorf("registering user: %w", err)
	}
	return nil
}

func (r *SQLiteUserProfileRepo) Get(ctx context.Context, userID string) (*domain.CompensationProfile, error) {
	query := `SELECT id, hourly_rate, fixed_bonus, credit_points, language
		FROM users WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, userID)

	var p domain.CompensationProfile
	var lang string
	err := row.Scan(
		&p.UserID,
		&p.HourlyRate,
		&p.FixedBonus,
		&p.CreditPoints,
		&lang,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user profile %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user profile: %w", err)
	}
	p.Language = domain.Language(lang)
	return &p, nil
}

func (r *SQLiteUserProfileRepo) SetField(ctx context.Context, userID string, field domain.ProfileField, value float64) error {
	column, err := profileColumn(field)
	if err != nil {
		return err
	}
	query := `UPDATE users SET ` + column + ` = ? WHERE id = ?`
	return r.updateOne(ctx, query, value, userID)
}

func (r *SQLiteUserProfileRepo) SetLanguage(ctx context.Context, userID string, lang domain.Language) error {
	return r.updateOne(ctx, `UPDATE users SET language = ? WHERE id = ?`, string(lang), userID)
}

func (r *SQLiteUserProfileRepo) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return ids, nil
}

func (r *SQLiteUserProfileRepo) updateOne(ctx context.Context, query string, value any, userID string) error {
	res, err := r.db.ExecContext(ctx, query, value, userID)
	if err != nil {
		return fmt.Errorf("updating user profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating user profile: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user profile %s: %w", userID, ErrNotFound)
	}
	return nil
}
