package dialog

import (
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/shiftpay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kindOf(t *testing.T, err error) ErrorKind {
	t.Helper()
	var pe *ParseError
	require.True(t, errors.As(err, &pe), "want *ParseError, got %v", err)
	return pe.Kind
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"45", 45},
		{" 2.25 ", 2.25},
		{"300,5", 300.5},
		{"1,5", 1.5},
		{"2,25", 2.25},
		{"0", 0},
		{"45.", 45},
		{".5", 0.5},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, in := range []string{
		"", "abc", "-5", "NaN", "Inf", "1e999", "1e3",
		"1,000", "12,345,678", "1,234.56", "1.234,56", "1,2,3", "1,",
		"0x1p4", "0X10", "+5", "1_000", "4 5",
	} {
		_, err := ParseAmount(in)
		assert.Equal(t, KindInvalidNumber, kindOf(t, err), in)
	}
}

func TestParseDay(t *testing.T) {
	day, err := ParseDay("2025-05-24")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 24, 0, 0, 0, 0, time.UTC), day)

	for _, in := range []string{"24.05.2025", "2025-02-30", "tomorrow"} {
		_, err := ParseDay(in)
		assert.Equal(t, KindInvalidDate, kindOf(t, err), in)
	}
}

func TestParseTimeRange(t *testing.T) {
	day := time.Date(2025, 5, 24, 0, 0, 0, 0, time.UTC)

	start, end, err := ParseTimeRange(day, "09:00 - 17:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 24, 9, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 5, 24, 17, 30, 0, 0, time.UTC), end)

	_, _, err = ParseTimeRange(day, "09:00-10:00")
	assert.NoError(t, err, "spaces around the dash are optional")

	tests := []struct {
		in   string
		kind ErrorKind
	}{
		{"9 - 17", KindInvalidFormat},
		{"09:00 to 17:00", KindInvalidFormat},
		{"25:00 - 26:00", KindInvalidFormat},
		{"17:00 - 09:00", KindInvalidInterval},
		{"09:00 - 09:00", KindInvalidInterval},
	}
	for _, tt := range tests {
		_, _, err := ParseTimeRange(day, tt.in)
		assert.Equal(t, tt.kind, kindOf(t, err), tt.in)
	}

	_, _, err = ParseTimeRange(day, "17:00 - 09:00")
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)
}

func TestParseManualSession(t *testing.T) {
	start, end, err := ParseManualSession("2025-05-24 09:00 - 17:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 24, 9, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 8*time.Hour, end.Sub(start))

	tests := []struct {
		in   string
		kind ErrorKind
	}{
		{"2025-05-24", KindInvalidFormat},
		{"09:00 - 17:00", KindInvalidFormat},
		{"2025-13-40 09:00 - 17:00", KindInvalidDate},
		{"2025-05-24 17:00 - 09:00", KindInvalidInterval},
	}
	for _, tt := range tests {
		_, _, err := ParseManualSession(tt.in)
		assert.Equal(t, tt.kind, kindOf(t, err), tt.in)
	}
}

func TestParseError_Message(t *testing.T) {
	_, err := ParseAmount("abc")
	assert.Contains(t, err.Error(), "invalid_number")
	assert.Contains(t, err.Error(), `"abc"`)
}
