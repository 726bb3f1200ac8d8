package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/shiftpay/internal/domain"
)

// formatTimestamp renders a wall-clock time in the storage layout.
func formatTimestamp(t time.Time) string {
	return t.Format(domain.TimestampLayout)
}

// parseTimestamp parses a stored timestamp back into a UTC-labelled wall clock.
func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(domain.TimestampLayout, s)
}

// parseNullableTimestamp parses a sql.NullString into a *time.Time.
// Returns nil if the value is NULL or empty.
func parseNullableTimestamp(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := parseTimestamp(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// nullableTimestamp converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the formatted string.
func nullableTimestamp(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return formatTimestamp(*t)
}

// isUniqueViolation reports whether err came from a UNIQUE constraint.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// profileColumn maps a profile field onto its column name. The mapping is
// closed so the result is safe to splice into SQL.
func profileColumn(field domain.ProfileField) (string, error) {
	switch field {
	case domain.FieldHourlyRate:
		return "hourly_rate", nil
	case domain.FieldFixedBonus:
		return "fixed_bonus", nil
	case domain.FieldCreditPoints:
		return "credit_points", nil
	}
	return "", fmt.Errorf("unknown profile field %q", field)
}

// nowUTC returns the current wall-clock time formatted for storage.
func nowUTC() string {
	return formatTimestamp(domain.Normalize(time.Now()))
}
