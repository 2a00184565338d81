package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"confsite/internal/domain"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

type proposalRepository struct {
	DB *sql.DB
}

// NewProposalRepository returns a domain.ProposalRepository implemented with Postgres.
func NewProposalRepository(db *sql.DB) domain.ProposalRepository {
	return &proposalRepository{DB: db}
}

func (r *proposalRepository) Create(ctx context.Context, p *domain.Proposal) error {
	query := `
		INSERT INTO proposals (user_id, title, brief, description, comment, difficulty, duration, language, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, p.UserID, p.Title, p.Brief, p.Desc, p.Comment, p.Difficulty, p.Duration, p.Language, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			// The service preempts this with an existence check; the
			// constraint is the backstop under concurrent submissions.
			return domain.ErrDuplicateProposal
		}
		return err
	}
	return nil
}

func (r *proposalRepository) GetByUserID(ctx context.Context, userID string) (*domain.Proposal, error) {
	query := `
		SELECT id, user_id, title, brief, description, comment, difficulty, duration, language, created_at, updated_at
		FROM proposals
		WHERE user_id = $1
	`
	p := &domain.Proposal{}
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&p.ID, &p.UserID, &p.Title, &p.Brief, &p.Desc, &p.Comment, &p.Difficulty, &p.Duration, &p.Language, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Update is scoped by user_id so a request can only ever touch its own row.
func (r *proposalRepository) Update(ctx context.Context, p *domain.Proposal) error {
	query := `
		UPDATE proposals
		SET title = $1, brief = $2, description = $3, comment = $4, difficulty = $5, duration = $6, language = $7, updated_at = $8
		WHERE user_id = $9
	`
	res, err := r.DB.ExecContext(ctx, query, p.Title, p.Brief, p.Desc, p.Comment, p.Difficulty, p.Duration, p.Language, p.UpdatedAt, p.UserID)
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

func (r *proposalRepository) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM proposals WHERE user_id = $1)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
