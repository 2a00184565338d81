package domain

import (
	"context"
	"time"
)

// Speaker is the public-facing presenter record. Edit permission is granted
// by matching the viewer's account email against Email, not by foreign key.
// swagger:model Speaker
type Speaker struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Image     string    `json:"image"`
	Desc      string    `json:"desc"`
	Info      string    `json:"info"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SpeakerRepository defines the interface for speaker storage.
type SpeakerRepository interface {
	List(ctx context.Context) ([]*Speaker, error)
	GetByID(ctx context.Context, id string) (*Speaker, error)
	// UpdateByEmail updates the speaker only when its stored email matches.
	// Returns ErrNotFound otherwise.
	UpdateByEmail(ctx context.Context, s *Speaker, email string) error
}

// SpeakerService defines speaker listing and email-scoped editing.
type SpeakerService interface {
	List(ctx context.Context) ([]*Speaker, error)
	// Get returns the speaker and whether viewerEmail grants editing.
	Get(ctx context.Context, id, viewerEmail string) (speaker *Speaker, editable bool, err error)
	// UpdateOwn updates the speaker matched by the requester's email.
	UpdateOwn(ctx context.Context, s *Speaker, email string) error
}
