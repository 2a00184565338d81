package postgres

import (
	"context"
	"database/sql"
	"time"

	"confsite/internal/domain"
)

type emailTokenRepository struct {
	DB *sql.DB
}

// NewEmailTokenRepository returns a domain.EmailTokenRepository implemented with Postgres.
func NewEmailTokenRepository(db *sql.DB) domain.EmailTokenRepository {
	return &emailTokenRepository{DB: db}
}

func (r *emailTokenRepository) Create(ctx context.Context, t *domain.EmailToken) error {
	query := `
		INSERT INTO email_tokens (email, token, created)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, t.Email, t.Token, t.Created).Scan(&t.ID)
}

func (r *emailTokenRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	query := `DELETE FROM email_tokens WHERE email = $1`
	res, err := r.DB.ExecContext(ctx, query, email)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// GetValid looks the token up with the age filter folded into the query, so
// an expired token and an unknown token are the same miss.
func (r *emailTokenRepository) GetValid(ctx context.Context, token string, issuedAfter time.Time) (*domain.EmailToken, error) {
	query := `
		SELECT id, email, token, created
		FROM email_tokens
		WHERE token = $1 AND created >= $2
		LIMIT 1
	`
	t := &domain.EmailToken{}
	err := r.DB.QueryRowContext(ctx, query, token, issuedAfter).Scan(&t.ID, &t.Email, &t.Token, &t.Created)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	return t, nil
}

func (r *emailTokenRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM email_tokens WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, id)
	return err
}
