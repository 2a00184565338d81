package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"confsite/internal/domain"
)

type programService struct {
	programRepo domain.ProgramRepository
	cache       domain.ScheduleCache
}

// NewProgramService creates a ProgramService. cache may be nil; when set,
// program updates invalidate the cached schedule grid.
func NewProgramService(programRepo domain.ProgramRepository, cache domain.ScheduleCache) domain.ProgramService {
	return &programService{programRepo: programRepo, cache: cache}
}

func (s *programService) ListByCategory(ctx context.Context) ([]*domain.CategoryPrograms, error) {
	categories, err := s.programRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	programs, err := s.programRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	byCategory := make(map[string][]*domain.Program, len(categories))
	for _, p := range programs {
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], p)
	}
	out := make([]*domain.CategoryPrograms, 0, len(categories))
	for _, c := range categories {
		group := byCategory[c.ID]
		if group == nil {
			group = []*domain.Program{}
		}
		out = append(out, &domain.CategoryPrograms{Category: c, Programs: group})
	}
	return out, nil
}

func (s *programService) Get(ctx context.Context, id, viewerEmail string) (*domain.Program, bool, error) {
	program, err := s.programRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, fmt.Errorf("failed to get program: %w", err)
	}
	editable := false
	if viewerEmail != "" {
		emails, err := s.programRepo.ListSpeakerEmails(ctx, id)
		if err != nil {
			return nil, false, fmt.Errorf("failed to list speaker emails: %w", err)
		}
		for _, e := range emails {
			if strings.EqualFold(e, viewerEmail) {
				editable = true
				break
			}
		}
	}
	return program, editable, nil
}

func (s *programService) UpdateAsSpeaker(ctx context.Context, p *domain.Program, email string) error {
	p.UpdatedAt = time.Now()
	if err := s.programRepo.UpdateBySpeakerEmail(ctx, p, email); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update program: %w", err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	return nil
}
