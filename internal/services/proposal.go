package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"confsite/internal/domain"
)

type proposalService struct {
	proposalRepo domain.ProposalRepository
}

// NewProposalService creates a ProposalService over the given repository.
func NewProposalService(proposalRepo domain.ProposalRepository) domain.ProposalService {
	return &proposalService{proposalRepo: proposalRepo}
}

func (s *proposalService) Create(ctx context.Context, p *domain.Proposal) error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("title is required")
	}
	// Preempt the duplicate before touching the table so the caller can
	// redirect instead of surfacing a unique-violation.
	exists, err := s.proposalRepo.ExistsByUserID(ctx, p.UserID)
	if err != nil {
		return fmt.Errorf("failed to check existing proposal: %w", err)
	}
	if exists {
		return domain.ErrDuplicateProposal
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.proposalRepo.Create(ctx, p); err != nil {
		return fmt.Errorf("failed to create proposal: %w", err)
	}
	return nil
}

func (s *proposalService) GetOwn(ctx context.Context, userID string) (*domain.Proposal, error) {
	p, err := s.proposalRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}
	return p, nil
}

func (s *proposalService) UpdateOwn(ctx context.Context, p *domain.Proposal) error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("title is required")
	}
	p.UpdatedAt = time.Now()
	if err := s.proposalRepo.Update(ctx, p); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update proposal: %w", err)
	}
	return nil
}
