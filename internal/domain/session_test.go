package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(s string) time.Time {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWorkSession_OpenHasNoDuration(t *testing.T) {
	s := &WorkSession{ID: "s1", StartedAt: at("2025-05-24T09:00:00")}
	assert.True(t, s.Open())
	assert.Zero(t, s.Duration())
	assert.Zero(t, s.Hours())
}

func TestWorkSession_Close(t *testing.T) {
	s := &WorkSession{ID: "s1", StartedAt: at("2025-05-24T09:00:00")}
	require.NoError(t, s.Close(at("2025-05-24T17:30:00")))
	assert.False(t, s.Open())
	assert.InDelta(t, 8.5, s.Hours(), 1e-9)
}

func TestWorkSession_CloseRejectsEndNotAfterStart(t *testing.T) {
	s := &WorkSession{ID: "s1", StartedAt: at("2025-05-24T09:00:00")}

	err := s.Close(at("2025-05-24T09:00:00"))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	err = s.Close(at("2025-05-24T08:00:00"))
	assert.ErrorIs(t, err, ErrInvalidInterval)
	assert.True(t, s.Open(), "failed close must leave the session open")
}

func TestWorkSession_CloseTwice(t *testing.T) {
	s := &WorkSession{ID: "s1", StartedAt: at("2025-05-24T09:00:00")}
	require.NoError(t, s.Close(at("2025-05-24T10:00:00")))
	assert.ErrorIs(t, s.Close(at("2025-05-24T11:00:00")), ErrNoOpenSession)
}

func TestNormalize_KeepsWallClockDropsNanos(t *testing.T) {
	loc := time.FixedZone("X", 3*3600)
	in := time.Date(2025, 5, 24, 23, 30, 15, 999_000_000, loc)
	got := Normalize(in)
	assert.Equal(t, time.Date(2025, 5, 24, 23, 30, 15, 0, time.UTC), got)
}

func TestSumHours_SkipsOpenSessions(t *testing.T) {
	end := at("2025-05-24T12:00:00")
	sessions := []*WorkSession{
		{StartedAt: at("2025-05-24T09:00:00"), EndedAt: &end},
		{StartedAt: at("2025-05-24T13:00:00")},
	}
	assert.InDelta(t, 3.0, SumHours(sessions), 1e-9)
}
