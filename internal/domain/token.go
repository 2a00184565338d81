package domain

import (
	"context"
	"time"
)

// EmailToken is a single-use, time-limited credential proving control of an
// email address. Lifecycle: created on login request (invalidating all prior
// tokens for that email), consumed exactly once inside the validity window,
// then deleted.
type EmailToken struct {
	ID      string    `json:"id"`
	Email   string    `json:"email"`
	Token   string    `json:"token"`
	Created time.Time `json:"created"`
}

// EmailTokenRepository defines the interface for login token storage.
type EmailTokenRepository interface {
	Create(ctx context.Context, t *EmailToken) error
	// DeleteByEmail removes every token issued for the email and returns
	// the number removed. Last request wins: stale links die here.
	DeleteByEmail(ctx context.Context, email string) (int64, error)
	// GetValid returns the token record matching the token value with
	// Created >= issuedAfter. An expired token and a token that never
	// existed both return ErrInvalidToken.
	GetValid(ctx context.Context, token string, issuedAfter time.Time) (*EmailToken, error)
	Delete(ctx context.Context, id string) error
}

// AuthService defines the passwordless email-token login flow.
type AuthService interface {
	// RequestLoginToken invalidates prior tokens for the email, issues a
	// fresh one, and mails the login link.
	RequestLoginToken(ctx context.Context, email string) error
	// RedeemLoginToken consumes the token: provisions the account and
	// profile when absent, deletes the token, and returns a session token.
	// Expired and unknown tokens fail identically with ErrInvalidToken.
	RedeemLoginToken(ctx context.Context, token string) (sessionToken string, user *User, err error)
}
