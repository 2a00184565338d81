package domain

import (
	"context"
	"time"
)

// Proposal difficulty, duration, and language choices.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"

	DurationShort = "25min"
	DurationLong  = "40min"
)

// Proposal is a talk submission, at most one per user.
// swagger:model Proposal
type Proposal struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	Brief      string    `json:"brief"`
	Desc       string    `json:"desc"`
	Comment    string    `json:"comment"`
	Difficulty string    `json:"difficulty"`
	Duration   string    `json:"duration"`
	Language   string    `json:"language"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ProposalRepository defines the interface for proposal storage.
type ProposalRepository interface {
	Create(ctx context.Context, p *Proposal) error
	GetByUserID(ctx context.Context, userID string) (*Proposal, error)
	// Update writes the proposal row belonging to p.UserID only.
	Update(ctx context.Context, p *Proposal) error
	ExistsByUserID(ctx context.Context, userID string) (bool, error)
}

// ProposalService defines proposal submission scoped to the requesting user.
type ProposalService interface {
	// Create returns ErrDuplicateProposal when the user already has one.
	Create(ctx context.Context, p *Proposal) error
	GetOwn(ctx context.Context, userID string) (*Proposal, error)
	UpdateOwn(ctx context.Context, p *Proposal) error
}
