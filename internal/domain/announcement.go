package domain

import (
	"context"
	"time"
)

// Announcement is a news item shown on the index and announcement pages.
// An announcement with AnnounceAfter in the future is hidden from listings.
// swagger:model Announcement
type Announcement struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	AnnounceAfter *time.Time `json:"announce_after,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Banner is a promotional banner active between Begin and End.
type Banner struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	URL   string    `json:"url"`
	Image string    `json:"image"`
	Begin time.Time `json:"begin"`
	End   time.Time `json:"end"`
}

// AnnouncementRepository defines the interface for announcement storage.
type AnnouncementRepository interface {
	// ListVisible returns announcements whose AnnounceAfter is unset or in
	// the past, newest first. limit <= 0 means no limit.
	ListVisible(ctx context.Context, now time.Time, limit int) ([]*Announcement, error)
	GetByID(ctx context.Context, id string) (*Announcement, error)
}

// BannerRepository defines the interface for banner storage.
type BannerRepository interface {
	// ListActive returns banners with Begin <= now < End.
	ListActive(ctx context.Context, now time.Time) ([]*Banner, error)
}

// IndexPage is the content of the landing page.
type IndexPage struct {
	RecentAnnouncements []*Announcement `json:"recent_announcements"`
	Banners             []*Banner       `json:"banners"`
}

// ContentService serves the read-only public pages: index, announcements,
// sponsors, and rooms.
type ContentService interface {
	Index(ctx context.Context) (*IndexPage, error)
	ListAnnouncements(ctx context.Context) ([]*Announcement, error)
	GetAnnouncement(ctx context.Context, id string) (*Announcement, error)
	ListSponsors(ctx context.Context) ([]*Sponsor, error)
	GetSponsor(ctx context.Context, slug string) (*Sponsor, error)
	GetRoom(ctx context.Context, id string) (*Room, error)
}
