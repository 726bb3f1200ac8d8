package domain

import "errors"

var (
	// ErrSessionAlreadyOpen indicates the user already has a running session.
	ErrSessionAlreadyOpen = errors.New("session already open")

	// ErrNoOpenSession indicates a stop was requested with nothing running.
	ErrNoOpenSession = errors.New("no open session")

	// ErrInvalidInterval indicates an end time that is not after the start time.
	ErrInvalidInterval = errors.New("invalid interval: end must be after start")

	// ErrProfileNotFound is returned by strict profile lookups for unknown users.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrInvalidProfileValue indicates a negative or non-finite compensation value.
	ErrInvalidProfileValue = errors.New("invalid profile value")
)
