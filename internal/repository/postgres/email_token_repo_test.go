package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"confsite/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestEmailTokenRepository_GetValid(t *testing.T) {
	ctx := context.Background()
	issuedAfter := time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC)
	created := time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		token   string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name:  "success",
			token: "tok-abc",
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "email", "token", "created"}).
					AddRow("token-1", "alice@example.org", "tok-abc", created)
				mock.ExpectQuery(`SELECT id, email, token, created`).
					WithArgs("tok-abc", issuedAfter).
					WillReturnRows(rows)
			},
		},
		{
			name:  "no matching row returns ErrInvalidToken",
			token: "tok-gone",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, email, token, created`).
					WithArgs("tok-gone", issuedAfter).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: true,
			errIs:   domain.ErrInvalidToken,
		},
		{
			name:  "db error",
			token: "tok-abc",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, email, token, created`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEmailTokenRepository(db)
			record, err := repo.GetValid(ctx, tt.token, issuedAfter)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
				require.Nil(t, record)
			} else {
				require.NoError(t, err)
				require.Equal(t, "token-1", record.ID)
				require.Equal(t, "alice@example.org", record.Email)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEmailTokenRepository_Create(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO email_tokens`).
		WithArgs("alice@example.org", "tok-abc", created).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("token-1"))

	repo := NewEmailTokenRepository(db)
	token := &domain.EmailToken{Email: "alice@example.org", Token: "tok-abc", Created: created}
	require.NoError(t, repo.Create(ctx, token))
	require.Equal(t, "token-1", token.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailTokenRepository_DeleteByEmail(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM email_tokens WHERE email`).
		WithArgs("alice@example.org").
		WillReturnResult(sqlmock.NewResult(0, 2))

	repo := NewEmailTokenRepository(db)
	n, err := repo.DeleteByEmail(ctx, "alice@example.org")
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailTokenRepository_Delete(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM email_tokens WHERE id`).
		WithArgs("token-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewEmailTokenRepository(db)
	require.NoError(t, repo.Delete(ctx, "token-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
