package repository

import (
	"context"
	"iter"
	"time"

	"github.com/alexanderramin/shiftpay/internal/domain"
)

// SessionRepo is the interval store: durable work sessions per user.
type SessionRepo interface {
	Create(ctx context.Context, s *domain.WorkSession) error
	GetByID(ctx context.Context, id string) (*domain.WorkSession, error)
	// GetOpen returns the user's most recently started open session, or ErrNotFound.
	GetOpen(ctx context.Context, userID string) (*domain.WorkSession, error)
	// Close sets ended_at on an open session and reports whether one was updated.
	Close(ctx context.Context, id string, endedAt time.Time) (bool, error)
	// ListClosedBetween returns closed sessions whose start lies in [from, to),
	// ordered by start time.
	ListClosedBetween(ctx context.Context, userID string, from, to time.Time) ([]*domain.WorkSession, error)
	// ActiveMonths streams the distinct months holding at least one closed
	// session, most recent first. Rows are read as the sequence is consumed.
	ActiveMonths(ctx context.Context, userID string) iter.Seq2[domain.YearMonth, error]
}

// UserProfileRepo is the profile store: one compensation profile per user.
type UserProfileRepo interface {
	// Register creates the user with default values; existing users are left untouched.
	Register(ctx context.Context, userID string) error
	Get(ctx context.Context, userID string) (*domain.CompensationProfile, error)
	SetField(ctx context.Context, userID string, field domain.ProfileField, value float64) error
	SetLanguage(ctx context.Context, userID string, lang domain.Language) error
	ListUserIDs(ctx context.Context) ([]string, error)
}
