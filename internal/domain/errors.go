package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	ErrNotFound       = errors.New("not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrInvalidToken covers both expired and never-issued login tokens.
	// Callers must not be able to tell the two apart.
	ErrInvalidToken = errors.New("not valid token")

	// ErrDuplicateProposal signals that the user already has a proposal.
	// Handlers answer it with a redirect, never with a conflict error.
	ErrDuplicateProposal = errors.New("proposal already exists")

	// ErrPaymentGateway signals an I/O failure talking to the external
	// payment provider. Handlers answer it with 406.
	ErrPaymentGateway = errors.New("payment gateway unavailable")
)
