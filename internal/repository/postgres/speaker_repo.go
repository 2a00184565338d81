package postgres

import (
	"context"
	"database/sql"

	"confsite/internal/domain"
)

type speakerRepository struct {
	DB *sql.DB
}

// NewSpeakerRepository returns a domain.SpeakerRepository implemented with Postgres.
func NewSpeakerRepository(db *sql.DB) domain.SpeakerRepository {
	return &speakerRepository{DB: db}
}

func (r *speakerRepository) List(ctx context.Context) ([]*domain.Speaker, error) {
	query := `
		SELECT id, slug, name, email, image, description, info, created_at, updated_at
		FROM speakers
		ORDER BY name
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var speakers []*domain.Speaker
	for rows.Next() {
		s := &domain.Speaker{}
		if err := rows.Scan(&s.ID, &s.Slug, &s.Name, &s.Email, &s.Image, &s.Desc, &s.Info, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		speakers = append(speakers, s)
	}
	return speakers, rows.Err()
}

func (r *speakerRepository) GetByID(ctx context.Context, id string) (*domain.Speaker, error) {
	query := `
		SELECT id, slug, name, email, image, description, info, created_at, updated_at
		FROM speakers
		WHERE id = $1
	`
	s := &domain.Speaker{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Slug, &s.Name, &s.Email, &s.Image, &s.Desc, &s.Info, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// UpdateByEmail writes the row only when the stored email matches the
// requester's, mirroring the edit-permission rule.
func (r *speakerRepository) UpdateByEmail(ctx context.Context, s *domain.Speaker, email string) error {
	query := `
		UPDATE speakers
		SET image = $1, description = $2, info = $3, updated_at = $4
		WHERE id = $5 AND LOWER(email) = LOWER($6)
	`
	res, err := r.DB.ExecContext(ctx, query, s.Image, s.Desc, s.Info, s.UpdatedAt, s.ID, email)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
