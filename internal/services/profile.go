package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"confsite/internal/domain"
)

type profileService struct {
	profileRepo  domain.ProfileRepository
	registration domain.RegistrationRepository
	proposalRepo domain.ProposalRepository
}

// NewProfileService creates a ProfileService over the given repositories.
func NewProfileService(profileRepo domain.ProfileRepository, registration domain.RegistrationRepository, proposalRepo domain.ProposalRepository) domain.ProfileService {
	return &profileService{
		profileRepo:  profileRepo,
		registration: registration,
		proposalRepo: proposalRepo,
	}
}

func (s *profileService) GetOwn(ctx context.Context, userID string) (*domain.ProfileView, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	isRegistered, err := s.registration.IsRegistered(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check registration: %w", err)
	}
	hasProposal, err := s.proposalRepo.ExistsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check proposal: %w", err)
	}
	return &domain.ProfileView{
		Profile:      profile,
		IsRegistered: isRegistered,
		HasProposal:  hasProposal,
	}, nil
}

func (s *profileService) UpdateOwn(ctx context.Context, profile *domain.Profile) error {
	existing, err := s.profileRepo.GetByUserID(ctx, profile.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to get profile: %w", err)
	}
	profile.Name = strings.TrimSpace(profile.Name)
	profile.Organization = strings.TrimSpace(profile.Organization)
	profile.Phone = strings.TrimSpace(profile.Phone)
	// The photo has its own upload endpoint and survives profile edits.
	profile.Image = existing.Image
	profile.UpdatedAt = time.Now()
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

func (s *profileService) SetOwnImage(ctx context.Context, userID, image string) error {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to get profile: %w", err)
	}
	profile.Image = image
	profile.UpdatedAt = time.Now()
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return fmt.Errorf("failed to update profile image: %w", err)
	}
	return nil
}
