package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"confsite/internal/domain"
)

type speakerService struct {
	speakerRepo domain.SpeakerRepository
}

// NewSpeakerService creates a SpeakerService over the given repository.
func NewSpeakerService(speakerRepo domain.SpeakerRepository) domain.SpeakerService {
	return &speakerService{speakerRepo: speakerRepo}
}

func (s *speakerService) List(ctx context.Context) ([]*domain.Speaker, error) {
	speakers, err := s.speakerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list speakers: %w", err)
	}
	if speakers == nil {
		speakers = []*domain.Speaker{}
	}
	return speakers, nil
}

func (s *speakerService) Get(ctx context.Context, id, viewerEmail string) (*domain.Speaker, bool, error) {
	speaker, err := s.speakerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, fmt.Errorf("failed to get speaker: %w", err)
	}
	// Edit permission is an email match, not a foreign key.
	editable := viewerEmail != "" && strings.EqualFold(viewerEmail, speaker.Email)
	return speaker, editable, nil
}

func (s *speakerService) UpdateOwn(ctx context.Context, speaker *domain.Speaker, email string) error {
	speaker.UpdatedAt = time.Now()
	if err := s.speakerRepo.UpdateByEmail(ctx, speaker, email); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update speaker: %w", err)
	}
	return nil
}
