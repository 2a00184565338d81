package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"confsite/internal/domain"
)

type announcementRepository struct {
	DB *sql.DB
}

// NewAnnouncementRepository returns a domain.AnnouncementRepository implemented with Postgres.
func NewAnnouncementRepository(db *sql.DB) domain.AnnouncementRepository {
	return &announcementRepository{DB: db}
}

func (r *announcementRepository) ListVisible(ctx context.Context, now time.Time, limit int) ([]*domain.Announcement, error) {
	query := `
		SELECT id, title, content, announce_after, created_at, updated_at
		FROM announcements
		WHERE announce_after IS NULL OR announce_after < $1
		ORDER BY created_at DESC
	`
	args := []any{now}
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, limit)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var announcements []*domain.Announcement
	for rows.Next() {
		a := &domain.Announcement{}
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.AnnounceAfter, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}

func (r *announcementRepository) GetByID(ctx context.Context, id string) (*domain.Announcement, error) {
	query := `
		SELECT id, title, content, announce_after, created_at, updated_at
		FROM announcements
		WHERE id = $1
	`
	a := &domain.Announcement{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Title, &a.Content, &a.AnnounceAfter, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

type bannerRepository struct {
	DB *sql.DB
}

// NewBannerRepository returns a domain.BannerRepository implemented with Postgres.
func NewBannerRepository(db *sql.DB) domain.BannerRepository {
	return &bannerRepository{DB: db}
}

func (r *bannerRepository) ListActive(ctx context.Context, now time.Time) ([]*domain.Banner, error) {
	query := `
		SELECT id, name, url, image, begin_at, end_at
		FROM banners
		WHERE begin_at <= $1 AND end_at > $1
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var banners []*domain.Banner
	for rows.Next() {
		b := &domain.Banner{}
		if err := rows.Scan(&b.ID, &b.Name, &b.URL, &b.Image, &b.Begin, &b.End); err != nil {
			return nil, err
		}
		banners = append(banners, b)
	}
	return banners, rows.Err()
}
