package domain

import "context"

// SponsorLevel orders sponsors on the listing page (lower Order first).
type SponsorLevel struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
}

// Sponsor is a conference sponsor.
// swagger:model Sponsor
type Sponsor struct {
	ID      string `json:"id"`
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Image   string `json:"image"`
	Desc    string `json:"desc"`
	URL     string `json:"url"`
	LevelID string `json:"level_id"`
}

// SponsorRepository defines the interface for sponsor storage.
type SponsorRepository interface {
	// List returns sponsors ordered by level order, then name.
	List(ctx context.Context) ([]*Sponsor, error)
	GetBySlug(ctx context.Context, slug string) (*Sponsor, error)
	ListLevels(ctx context.Context) ([]*SponsorLevel, error)
}
