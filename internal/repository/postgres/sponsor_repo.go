package postgres

import (
	"context"
	"database/sql"

	"confsite/internal/domain"
)

type sponsorRepository struct {
	DB *sql.DB
}

// NewSponsorRepository returns a domain.SponsorRepository implemented with Postgres.
func NewSponsorRepository(db *sql.DB) domain.SponsorRepository {
	return &sponsorRepository{DB: db}
}

func (r *sponsorRepository) List(ctx context.Context) ([]*domain.Sponsor, error) {
	query := `
		SELECT s.id, s.slug, s.name, s.image, s.description, s.url, s.level_id
		FROM sponsors s
		INNER JOIN sponsor_levels l ON l.id = s.level_id
		ORDER BY l.level_order, s.name
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sponsors []*domain.Sponsor
	for rows.Next() {
		s := &domain.Sponsor{}
		if err := rows.Scan(&s.ID, &s.Slug, &s.Name, &s.Image, &s.Desc, &s.URL, &s.LevelID); err != nil {
			return nil, err
		}
		sponsors = append(sponsors, s)
	}
	return sponsors, rows.Err()
}

func (r *sponsorRepository) GetBySlug(ctx context.Context, slug string) (*domain.Sponsor, error) {
	query := `
		SELECT id, slug, name, image, description, url, level_id
		FROM sponsors
		WHERE slug = $1
	`
	s := &domain.Sponsor{}
	err := r.DB.QueryRowContext(ctx, query, slug).Scan(&s.ID, &s.Slug, &s.Name, &s.Image, &s.Desc, &s.URL, &s.LevelID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *sponsorRepository) ListLevels(ctx context.Context) ([]*domain.SponsorLevel, error) {
	query := `
		SELECT id, level_order, name, slug
		FROM sponsor_levels
		ORDER BY level_order
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var levels []*domain.SponsorLevel
	for rows.Next() {
		l := &domain.SponsorLevel{}
		if err := rows.Scan(&l.ID, &l.Order, &l.Name, &l.Slug); err != nil {
			return nil, err
		}
		levels = append(levels, l)
	}
	return levels, rows.Err()
}
