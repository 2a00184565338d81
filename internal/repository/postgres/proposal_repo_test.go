package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"confsite/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestProposalRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	proposal := &domain.Proposal{
		UserID:     "user-1",
		Title:      "Profiling Go services",
		Brief:      "Where the time actually goes",
		Desc:       "A walk through pprof.",
		Difficulty: domain.DifficultyIntermediate,
		Duration:   domain.DurationLong,
		Language:   "en",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO proposals`).
					WithArgs("user-1", "Profiling Go services", "Where the time actually goes", "A walk through pprof.", "", domain.DifficultyIntermediate, domain.DurationLong, "en", now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("proposal-1"))
			},
		},
		{
			name: "unique violation returns ErrDuplicateProposal",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO proposals`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrDuplicateProposal,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO proposals`).
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
			repo := NewProposalRepository(db)
			p := *proposal
			err = repo.Create(ctx, &p)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
				require.Equal(t, "proposal-1", p.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProposalRepository_Update(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE proposals`).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "no row for user returns ErrNotFound",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE proposals`).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewProposalRepository(db)
			err = repo.Update(ctx, &domain.Proposal{UserID: "user-1", Title: "T"})
			if tt.wantErr {
				require.ErrorIs(t, err, tt.errIs)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProposalRepository_ExistsByUserID(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	repo := NewProposalRepository(db)
	exists, err := repo.ExistsByUserID(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProposalRepository_GetByUserID_NotFound(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, user_id, title`).
		WithArgs("user-9").
		WillReturnError(sql.ErrNoRows)

	repo := NewProposalRepository(db)
	p, err := repo.GetByUserID(ctx, "user-9")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Nil(t, p)
	require.NoError(t, mock.ExpectationsWereMet())
}
