package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"confsite/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

// NewRegistrationRepository returns a domain.RegistrationRepository implemented with Postgres.
func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{DB: db}
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (user_id, email, name, merchant_uid, transaction_id, amount, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, reg.UserID, reg.Email, reg.Name, reg.MerchantUID, reg.TransactionID, reg.Amount, reg.PaymentStatus, reg.CreatedAt, reg.UpdatedAt).Scan(&reg.ID)
}

func (r *registrationRepository) GetByUserID(ctx context.Context, userID string) (*domain.Registration, error) {
	query := `
		SELECT id, user_id, email, name, merchant_uid, transaction_id, amount, payment_status, created_at, updated_at
		FROM registrations
		WHERE user_id = $1
	`
	reg := &domain.Registration{}
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&reg.ID, &reg.UserID, &reg.Email, &reg.Name, &reg.MerchantUID, &reg.TransactionID, &reg.Amount, &reg.PaymentStatus, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) IsRegistered(ctx context.Context, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM registrations
			WHERE user_id = $1 AND payment_status = ANY($2)
		)
	`
	statuses := []string{domain.PaymentStatusPaid, domain.PaymentStatusReady}
	var registered bool
	if err := r.DB.QueryRowContext(ctx, query, userID, pq.Array(statuses)).Scan(&registered); err != nil {
		return false, err
	}
	return registered, nil
}

func (r *registrationRepository) UpdateStatus(ctx context.Context, id, status, transactionID string) error {
	query := `
		UPDATE registrations
		SET payment_status = $1, transaction_id = $2, updated_at = NOW()
		WHERE id = $3
	`
	res, err := r.DB.ExecContext(ctx, query, status, transactionID, id)
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
