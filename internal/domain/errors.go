package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateRSVP means the identity already has an attendance record for the event.
	ErrDuplicateRSVP = errors.New("already RSVP'd for this event with this email")
	// ErrStorageUnavailable wraps any ledger failure that is not a domain outcome.
	ErrStorageUnavailable = errors.New("storage unavailable")

	ErrMissingCredential = errors.New("missing credential")
	ErrInvalidCredential = errors.New("invalid or expired credential")
	ErrInsufficientRole  = errors.New("admin access required")
)
