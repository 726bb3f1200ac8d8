package domain

import (
	"fmt"
	"time"
)

// WorkSession is a single worked interval for a user. EndedAt is nil while
// the session is still open.
type WorkSession struct {
	ID        string
	UserID    string
	StartedAt time.Time
	EndedAt   *time.Time
	CreatedAt time.Time
}

// Open reports whether the session has not been stopped yet.
func (s *WorkSession) Open() bool {
	return s.EndedAt == nil
}

// Duration returns the closed interval length, or zero for an open session.
func (s *WorkSession) Duration() time.Duration {
	if s.EndedAt == nil {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}

// Hours returns Duration expressed in fractional hours.
func (s *WorkSession) Hours() float64 {
	return s.Duration().Hours()
}

// Close sets the end of an open session. The end must be strictly after the start.
func (s *WorkSession) Close(at time.Time) error {
	if !s.Open() {
		return fmt.Errorf("session %s already closed: %w", s.ID, ErrNoOpenSession)
	}
	if err := ValidateInterval(s.StartedAt, at); err != nil {
		return err
	}
	end := at
	s.EndedAt = &end
	return nil
}

// ValidateInterval returns ErrInvalidInterval unless end is strictly after start.
func ValidateInterval(start, end time.Time) error {
	if !end.After(start) {
		return fmt.Errorf("end %s not after start %s: %w",
			end.Format(time.DateTime), start.Format(time.DateTime), ErrInvalidInterval)
	}
	return nil
}

// Normalize keeps t's wall clock, relabels it as UTC and drops sub-second
// precision. Sessions carry no zone information and are tracked to the second.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// SumHours totals the hours of all closed sessions, skipping open ones.
func SumHours(sessions []*WorkSession) float64 {
	var total time.Duration
	for _, s := range sessions {
		total += s.Duration()
	}
	return total.Hours()
}
