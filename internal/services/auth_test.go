package services

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"confsite/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmailTokenRepo implements domain.EmailTokenRepository for tests. It
// enforces the validity window in GetValid the way the real repository's SQL
// does, and records call order so tests can assert delete-before-create.
type fakeEmailTokenRepo struct {
	tokens map[string]*domain.EmailToken // keyed by token value
	nextID int
	calls  []string
}

func newFakeEmailTokenRepo() *fakeEmailTokenRepo {
	return &fakeEmailTokenRepo{tokens: make(map[string]*domain.EmailToken)}
}

func (f *fakeEmailTokenRepo) Create(ctx context.Context, t *domain.EmailToken) error {
	f.calls = append(f.calls, "create")
	f.nextID++
	t.ID = fmt.Sprintf("token-%d", f.nextID)
	f.tokens[t.Token] = t
	return nil
}

func (f *fakeEmailTokenRepo) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	f.calls = append(f.calls, "deleteByEmail")
	var n int64
	for value, t := range f.tokens {
		if t.Email == email {
			delete(f.tokens, value)
			n++
		}
	}
	return n, nil
}

func (f *fakeEmailTokenRepo) GetValid(ctx context.Context, token string, issuedAfter time.Time) (*domain.EmailToken, error) {
	t, ok := f.tokens[token]
	if !ok || t.Created.Before(issuedAfter) {
		return nil, domain.ErrInvalidToken
	}
	cp := *t
	return &cp, nil
}

func (f *fakeEmailTokenRepo) Delete(ctx context.Context, id string) error {
	f.calls = append(f.calls, "delete")
	for value, t := range f.tokens {
		if t.ID == id {
			delete(f.tokens, value)
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeUserRepo implements domain.UserRepository for tests.
type fakeUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
	created int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	f.created++
	u.ID = "user-created"
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

// fakeProfileRepo implements domain.ProfileRepository for tests.
type fakeProfileRepo struct {
	byUserID map[string]*domain.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byUserID: make(map[string]*domain.Profile)}
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	p.ID = "profile-" + p.UserID
	f.byUserID[p.UserID] = p
	return nil
}

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	if p, ok := f.byUserID[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	if _, ok := f.byUserID[p.UserID]; !ok {
		return domain.ErrNotFound
	}
	f.byUserID[p.UserID] = p
	return nil
}

// fakeEmailService implements domain.EmailService for tests.
type fakeEmailService struct {
	sent []*domain.LoginTokenEmailData
	err  error
}

func (f *fakeEmailService) SendLoginToken(ctx context.Context, data *domain.LoginTokenEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	err error
}

func (f *fakeTokenIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "session-" + userID, nil
}

type authFixture struct {
	userRepo    *fakeUserRepo
	profileRepo *fakeProfileRepo
	tokenRepo   *fakeEmailTokenRepo
	mail        *fakeEmailService
	svc         domain.AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		userRepo:    newFakeUserRepo(),
		profileRepo: newFakeProfileRepo(),
		tokenRepo:   newFakeEmailTokenRepo(),
		mail:        &fakeEmailService{},
	}
	f.svc = NewAuthService(
		f.userRepo, f.profileRepo, f.tokenRepo, f.mail, &fakeTokenIssuer{},
		72*time.Hour, time.Hour, "https://conf.example.org",
	)
	return f
}

func TestAuthService_RequestLoginToken(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid email", email: "alice@example.org"},
		{name: "uppercase is normalized", email: "Alice@Example.ORG"},
		{name: "missing at sign", email: "not-an-email", wantErr: true},
		{name: "empty", email: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			err := f.svc.RequestLoginToken(ctx, tt.email)

			if tt.wantErr {
				require.Error(t, err)
				assert.Empty(t, f.mail.sent)
				return
			}
			require.NoError(t, err)
			require.Len(t, f.mail.sent, 1)
			assert.Equal(t, "alice@example.org", f.mail.sent[0].Email)
			assert.Contains(t, f.mail.sent[0].LoginURL, "https://conf.example.org/auth/login/")
			assert.Equal(t, 60, f.mail.sent[0].ExpiresInMinutes)
		})
	}
}

func TestAuthService_RequestLoginToken_ReplacesPriorToken(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	require.NoError(t, f.svc.RequestLoginToken(ctx, "alice@example.org"))
	firstURL := f.mail.sent[0].LoginURL

	require.NoError(t, f.svc.RequestLoginToken(ctx, "alice@example.org"))
	secondURL := f.mail.sent[1].LoginURL
	assert.NotEqual(t, firstURL, secondURL)

	// Only the latest token survives, and the old ones are removed before
	// the new one is stored.
	assert.Len(t, f.tokenRepo.tokens, 1)
	assert.Equal(t, []string{"deleteByEmail", "create", "deleteByEmail", "create"}, f.tokenRepo.calls)
}

func TestAuthService_RedeemLoginToken_ProvisionsUser(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	f.tokenRepo.tokens["tok-1"] = &domain.EmailToken{
		ID: "token-1", Email: "new@example.org", Token: "tok-1", Created: time.Now(),
	}

	session, user, err := f.svc.RedeemLoginToken(ctx, "tok-1")
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, "new@example.org", user.Email)
	assert.Equal(t, "session-"+user.ID, session)
	assert.Equal(t, 1, f.userRepo.created)
	assert.NotEmpty(t, user.PasswordHash, "provisioned account carries a placeholder hash")

	profile, err := f.profileRepo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, profile.Name, "profile starts empty")
}

func TestAuthService_RedeemLoginToken_ExistingUser(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	existing := &domain.User{ID: "user-7", Email: "alice@example.org"}
	f.userRepo.byID[existing.ID] = existing
	f.userRepo.byEmail[existing.Email] = existing
	f.tokenRepo.tokens["tok-2"] = &domain.EmailToken{
		ID: "token-2", Email: "alice@example.org", Token: "tok-2", Created: time.Now(),
	}

	session, user, err := f.svc.RedeemLoginToken(ctx, "tok-2")
	require.NoError(t, err)
	assert.Equal(t, "user-7", user.ID)
	assert.Equal(t, "session-user-7", session)
	assert.Equal(t, 0, f.userRepo.created)
}

func TestAuthService_RedeemLoginToken_SingleUse(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	f.tokenRepo.tokens["tok-3"] = &domain.EmailToken{
		ID: "token-3", Email: "alice@example.org", Token: "tok-3", Created: time.Now(),
	}

	_, _, err := f.svc.RedeemLoginToken(ctx, "tok-3")
	require.NoError(t, err)

	_, _, err = f.svc.RedeemLoginToken(ctx, "tok-3")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestAuthService_RedeemLoginToken_InvalidTokens(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		token string
		setup func(*fakeEmailTokenRepo)
	}{
		{
			name:  "never issued",
			token: "no-such-token",
			setup: func(f *fakeEmailTokenRepo) {},
		},
		{
			name:  "expired",
			token: "tok-old",
			setup: func(f *fakeEmailTokenRepo) {
				f.tokens["tok-old"] = &domain.EmailToken{
					ID: "token-9", Email: "alice@example.org", Token: "tok-old",
					Created: time.Now().Add(-2 * time.Hour),
				}
			},
		},
		{
			name:  "blank",
			token: "  ",
			setup: func(f *fakeEmailTokenRepo) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			tt.setup(f.tokenRepo)

			session, user, err := f.svc.RedeemLoginToken(ctx, tt.token)

			// Expired and never-issued fail with the same sentinel so the
			// handler cannot leak which one it was.
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
			assert.Empty(t, session)
			assert.Nil(t, user)
			assert.Equal(t, 0, f.userRepo.created)
		})
	}
}

func TestAuthService_RedeemLoginToken_JustInsideWindow(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	f.tokenRepo.tokens["tok-4"] = &domain.EmailToken{
		ID: "token-4", Email: "alice@example.org", Token: "tok-4",
		Created: time.Now().Add(-59 * time.Minute),
	}

	_, user, err := f.svc.RedeemLoginToken(ctx, "tok-4")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.org", user.Email)
}
