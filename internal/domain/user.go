package domain

import (
	"context"
	"time"
)

// User represents an account. The email address is the unique account key:
// accounts are provisioned automatically on first login-token redemption,
// with the email as identity and a throwaway password placeholder. This is
// deliberate policy, not an artifact (see token auth flow).
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the one-to-one public extension of a user account, created
// together with the account.
// swagger:model Profile
type Profile struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Organization string    `json:"organization"`
	Image        string    `json:"image"`
	Bio          string    `json:"bio"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TokenIssuer issues session tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a session token and returns the user ID and email.
type TokenVerifier interface {
	Verify(token string) (userID, email string, err error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// ProfileRepository defines the interface for profile storage.
type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) error
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	// Update writes the profile row belonging to profile.UserID only.
	// Returns ErrNotFound when the user has no profile.
	Update(ctx context.Context, profile *Profile) error
}

// ProfileView is a profile together with the flags the profile page shows.
// swagger:model ProfileView
type ProfileView struct {
	Profile      *Profile `json:"profile"`
	IsRegistered bool     `json:"is_registered"`
	HasProposal  bool     `json:"has_proposal"`
}

// ProfileService defines the business logic for the user's own profile.
type ProfileService interface {
	GetOwn(ctx context.Context, userID string) (*ProfileView, error)
	UpdateOwn(ctx context.Context, profile *Profile) error
	// SetOwnImage records the stored photo path on the profile.
	SetOwnImage(ctx context.Context, userID, image string) error
}
