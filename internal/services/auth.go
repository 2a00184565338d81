package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"confsite/internal/domain"
)

const (
	bcryptCost         = 10
	loginTokenTemplate = "login_token"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authService struct {
	userRepo      domain.UserRepository
	profileRepo   domain.ProfileRepository
	tokenRepo     domain.EmailTokenRepository
	emailService  domain.EmailService
	tokenIssuer   domain.TokenIssuer
	sessionExpiry time.Duration
	tokenTTL      time.Duration
	baseURL       string
}

// NewAuthService creates an AuthService implementing the passwordless
// email-token login flow. tokenTTL is the validity window of emailed tokens.
func NewAuthService(userRepo domain.UserRepository, profileRepo domain.ProfileRepository, tokenRepo domain.EmailTokenRepository, emailService domain.EmailService, tokenIssuer domain.TokenIssuer, sessionExpiry, tokenTTL time.Duration, baseURL string) domain.AuthService {
	return &authService{
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		tokenRepo:     tokenRepo,
		emailService:  emailService,
		tokenIssuer:   tokenIssuer,
		sessionExpiry: sessionExpiry,
		tokenTTL:      tokenTTL,
		baseURL:       strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *authService) RequestLoginToken(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	// Remove previous tokens before creating the new one. One active token
	// per email: requesting again kills every stale login link.
	if _, err := s.tokenRepo.DeleteByEmail(ctx, email); err != nil {
		return fmt.Errorf("failed to delete previous tokens: %w", err)
	}

	token := &domain.EmailToken{
		Email:   email,
		Token:   uuid.NewString(),
		Created: time.Now(),
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return fmt.Errorf("failed to store login token: %w", err)
	}

	if s.emailService != nil {
		data := &domain.LoginTokenEmailData{
			Email:            email,
			LoginURL:         fmt.Sprintf("%s/auth/login/%s", s.baseURL, token.Token),
			ExpiresInMinutes: int(s.tokenTTL.Minutes()),
		}
		if err := s.emailService.SendLoginToken(ctx, data); err != nil {
			return fmt.Errorf("failed to send login token email: %w", err)
		}
	}
	return nil
}

func (s *authService) RedeemLoginToken(ctx context.Context, token string) (string, *domain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", nil, domain.ErrInvalidToken
	}

	// The age filter lives in the lookup itself: a token past the validity
	// window fails exactly like a token that never existed.
	issuedAfter := time.Now().Add(-s.tokenTTL)
	record, err := s.tokenRepo.GetValid(ctx, token, issuedAfter)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			return "", nil, domain.ErrInvalidToken
		}
		return "", nil, fmt.Errorf("failed to look up token: %w", err)
	}

	user, err := s.userRepo.GetByEmail(ctx, record.Email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return "", nil, fmt.Errorf("failed to get user: %w", err)
		}
		user, err = s.provisionUser(ctx, record)
		if err != nil {
			return "", nil, err
		}
	}

	// One-time use: the token dies with this redemption.
	if err := s.tokenRepo.Delete(ctx, record.ID); err != nil {
		return "", nil, fmt.Errorf("failed to delete token: %w", err)
	}

	session, err := s.tokenIssuer.Issue(user.ID, user.Email, s.sessionExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return session, user, nil
}

// provisionUser creates the account and its empty profile on first login.
// The email is the account identity; the redeemed token string is hashed as
// a throwaway password placeholder, matching the documented policy that a
// token-provisioned account has no usable password.
func (s *authService) provisionUser(ctx context.Context, record *domain.EmailToken) (*domain.User, error) {
	placeholder, err := bcrypt.GenerateFromPassword([]byte(record.Token), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash placeholder password: %w", err)
	}
	now := time.Now()
	user := &domain.User{
		Email:        record.Email,
		PasswordHash: string(placeholder),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	profile := &domain.Profile{
		UserID:    user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return user, nil
}
