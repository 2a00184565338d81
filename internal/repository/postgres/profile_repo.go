package postgres

import (
	"context"
	"database/sql"

	"confsite/internal/domain"
)

type profileRepository struct {
	DB *sql.DB
}

// NewProfileRepository returns a domain.ProfileRepository implemented with Postgres.
func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{DB: db}
}

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	query := `
		INSERT INTO profiles (user_id, name, phone, organization, image, bio, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, p.UserID, p.Name, p.Phone, p.Organization, p.Image, p.Bio, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `
		SELECT id, user_id, name, phone, organization, image, bio, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	p := &domain.Profile{}
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&p.ID, &p.UserID, &p.Name, &p.Phone, &p.Organization, &p.Image, &p.Bio, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Update is scoped by user_id so a request can only ever touch its own row.
func (r *profileRepository) Update(ctx context.Context, p *domain.Profile) error {
	query := `
		UPDATE profiles
		SET name = $1, phone = $2, organization = $3, image = $4, bio = $5, updated_at = $6
		WHERE user_id = $7
	`
	res, err := r.DB.ExecContext(ctx, query, p.Name, p.Phone, p.Organization, p.Image, p.Bio, p.UpdatedAt, p.UserID)
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
