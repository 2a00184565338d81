package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"confsite/internal/domain"
)

type registrationService struct {
	registrationRepo domain.RegistrationRepository
	userRepo         domain.UserRepository
	provider         domain.PaymentProvider
	contextTimeout   time.Duration
}

// NewRegistrationService creates a RegistrationService charging through the
// given payment provider.
func NewRegistrationService(registrationRepo domain.RegistrationRepository, userRepo domain.UserRepository, provider domain.PaymentProvider, timeout time.Duration) domain.RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		userRepo:         userRepo,
		provider:         provider,
		contextTimeout:   timeout,
	}
}

func (s *registrationService) ProcessPayment(ctx context.Context, userID string, req *domain.PaymentRequest) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if req.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if req.MerchantUID == "" {
		return nil, fmt.Errorf("merchant_uid is required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	already, err := s.registrationRepo.IsRegistered(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check registration: %w", err)
	}
	if already {
		return nil, fmt.Errorf("user is already registered")
	}

	result, err := s.provider.Charge(ctx, req)
	if err != nil {
		// Gateway transport failures keep their sentinel so the handler
		// can answer with the 406 helper.
		if errors.Is(err, domain.ErrPaymentGateway) {
			return nil, err
		}
		return nil, fmt.Errorf("payment failed: %w", err)
	}

	now := time.Now()
	reg := &domain.Registration{
		UserID:        userID,
		Email:         user.Email,
		MerchantUID:   req.MerchantUID,
		TransactionID: result.TransactionID,
		Amount:        result.Amount,
		PaymentStatus: result.Status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		return nil, fmt.Errorf("failed to record registration: %w", err)
	}
	return reg, nil
}

func (s *registrationService) GetOwn(ctx context.Context, userID string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.registrationRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return reg, nil
}
