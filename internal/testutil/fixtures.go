package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/shiftpay/internal/domain"
	"github.com/google/uuid"
)

// At parses a "2006-01-02T15:04:05" wall-clock timestamp, failing the test on error.
func At(t testing.TB, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(domain.TimestampLayout, s)
	if err != nil {
		t.Fatalf("parsing timestamp %q: %v", s, err)
	}
	return ts
}

// Session options
type SessionOption func(*domain.WorkSession)

// WithEnd closes the session at end.
func WithEnd(end time.Time) SessionOption {
	return func(s *domain.WorkSession) {
		s.EndedAt = &end
	}
}

// WithDuration closes the session d after its start.
func WithDuration(d time.Duration) SessionOption {
	return func(s *domain.WorkSession) {
		end := s.StartedAt.Add(d)
		s.EndedAt = &end
	}
}

// NewTestSession builds an open session starting at start unless an option closes it.
func NewTestSession(userID string, start time.Time, opts ...SessionOption) *domain.WorkSession {
	s := &domain.WorkSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		StartedAt: start,
		CreatedAt: start,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Profile options
type ProfileOption func(*domain.CompensationProfile)

func WithHourlyRate(v float64) ProfileOption {
	return func(p *domain.CompensationProfile) {
		p.HourlyRate = v
	}
}

func WithFixedBonus(v float64) ProfileOption {
	return func(p *domain.CompensationProfile) {
		p.FixedBonus = v
	}
}

func WithCreditPoints(v float64) ProfileOption {
	return func(p *domain.CompensationProfile) {
		p.CreditPoints = v
	}
}

func WithLanguage(l domain.Language) ProfileOption {
	return func(p *domain.CompensationProfile) {
		p.Language = l
	}
}

// NewTestProfile returns a default profile with the options applied.
func NewTestProfile(userID string, opts ...ProfileOption) *domain.CompensationProfile {
	p := domain.DefaultProfile(userID)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SeedUser inserts a users row carrying the given profile values directly,
// bypassing the repositories.
func SeedUser(t testing.TB, database *sql.DB, p *domain.CompensationProfile) {
	t.Helper()
	_, err := database.ExecContext(context.Background(),
		`INSERT INTO users (id, hourly_rate, fixed_bonus, credit_points, language, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.UserID, p.HourlyRate, p.FixedBonus, p.CreditPoints, string(p.Language), "2025-01-01T00:00:00")
	if err != nil {
		t.Fatalf("seeding user %s: %v", p.UserID, err)
	}
}
