package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"confsite/internal/domain"
)

// indexAnnouncementCount is how many recent announcements the index shows.
const indexAnnouncementCount = 3

type contentService struct {
	announcementRepo domain.AnnouncementRepository
	bannerRepo       domain.BannerRepository
	sponsorRepo      domain.SponsorRepository
	scheduleRepo     domain.ScheduleRepository
}

// NewContentService creates a ContentService over the public-page repositories.
func NewContentService(announcementRepo domain.AnnouncementRepository, bannerRepo domain.BannerRepository, sponsorRepo domain.SponsorRepository, scheduleRepo domain.ScheduleRepository) domain.ContentService {
	return &contentService{
		announcementRepo: announcementRepo,
		bannerRepo:       bannerRepo,
		sponsorRepo:      sponsorRepo,
		scheduleRepo:     scheduleRepo,
	}
}

func (s *contentService) Index(ctx context.Context) (*domain.IndexPage, error) {
	now := time.Now()
	announcements, err := s.announcementRepo.ListVisible(ctx, now, indexAnnouncementCount)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	if announcements == nil {
		announcements = []*domain.Announcement{}
	}
	banners, err := s.bannerRepo.ListActive(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	if banners == nil {
		banners = []*domain.Banner{}
	}
	return &domain.IndexPage{RecentAnnouncements: announcements, Banners: banners}, nil
}

func (s *contentService) ListAnnouncements(ctx context.Context) ([]*domain.Announcement, error) {
	announcements, err := s.announcementRepo.ListVisible(ctx, time.Now(), 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	if announcements == nil {
		announcements = []*domain.Announcement{}
	}
	return announcements, nil
}

func (s *contentService) GetAnnouncement(ctx context.Context, id string) (*domain.Announcement, error) {
	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get announcement: %w", err)
	}
	return a, nil
}

func (s *contentService) ListSponsors(ctx context.Context) ([]*domain.Sponsor, error) {
	sponsors, err := s.sponsorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sponsors: %w", err)
	}
	if sponsors == nil {
		sponsors = []*domain.Sponsor{}
	}
	return sponsors, nil
}

func (s *contentService) GetSponsor(ctx context.Context, slug string) (*domain.Sponsor, error) {
	sp, err := s.sponsorRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get sponsor: %w", err)
	}
	return sp, nil
}

func (s *contentService) GetRoom(ctx context.Context, id string) (*domain.Room, error) {
	room, err := s.scheduleRepo.GetRoomByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}
