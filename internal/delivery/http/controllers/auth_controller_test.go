package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"confsite/internal/delivery/http/helpers"
	"confsite/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	requestErr error
	redeemErr  error
	session    string
	user       *domain.User
	lastEmail  string
	lastToken  string
}

func (f *fakeAuthService) RequestLoginToken(ctx context.Context, email string) error {
	f.lastEmail = email
	return f.requestErr
}

func (f *fakeAuthService) RedeemLoginToken(ctx context.Context, token string) (string, *domain.User, error) {
	f.lastToken = token
	if f.redeemErr != nil {
		return "", nil, f.redeemErr
	}
	return f.session, f.user, nil
}

func TestAuthController_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		requestErr error
		wantStatus int
	}{
		{name: "success", body: `{"email":"alice@example.org"}`, wantStatus: http.StatusOK},
		{name: "invalid email", body: `{"email":"nope"}`, wantStatus: http.StatusBadRequest},
		{name: "empty body", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "malformed json", body: `{`, wantStatus: http.StatusBadRequest},
		{
			name:       "service failure",
			body:       `{"email":"alice@example.org"}`,
			requestErr: errors.New("smtp down"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAuthService{requestErr: tt.requestErr}
			ctrl := NewAuthController(testLogger, fake)

			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			ctrl.Login(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "alice@example.org", fake.lastEmail)
				var resp helpers.APIResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				data, ok := resp.Data.(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "mail sent", data["status"])
			}
		})
	}
}

func TestAuthController_Redeem(t *testing.T) {
	tests := []struct {
		name       string
		redeemErr  error
		session    string
		user       *domain.User
		wantStatus int
		wantValid  bool
	}{
		{
			name:       "valid token",
			session:    "jwt-abc",
			user:       &domain.User{ID: "user-1", Email: "alice@example.org"},
			wantStatus: http.StatusOK,
			wantValid:  true,
		},
		{
			// Expired and never-issued both surface as ErrInvalidToken and
			// both answer 200 with valid=false.
			name:       "invalid token",
			redeemErr:  domain.ErrInvalidToken,
			wantStatus: http.StatusOK,
			wantValid:  false,
		},
		{
			name:       "backend failure",
			redeemErr:  errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAuthService{redeemErr: tt.redeemErr, session: tt.session, user: tt.user}
			ctrl := NewAuthController(testLogger, fake)

			req := httptest.NewRequest(http.MethodGet, "/auth/login/some-token", nil)
			req.SetPathValue("token", "some-token")
			rec := httptest.NewRecorder()

			ctrl.Redeem(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "some-token", fake.lastToken)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp helpers.APIResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			data, ok := resp.Data.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tt.wantValid, data["valid"])
			if tt.wantValid {
				assert.Equal(t, "jwt-abc", data["token"])
				assert.Equal(t, "Bearer", data["token_type"])
			} else {
				assert.Equal(t, "not valid token", data["status"])
				assert.NotContains(t, data, "token")
			}
		})
	}
}
