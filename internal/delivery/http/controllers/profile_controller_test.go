package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"confsite/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProfileService implements domain.ProfileService for handler tests.
type fakeProfileService struct {
	view      *domain.ProfileView
	getErr    error
	updateErr error
	lastImage string
	updated   *domain.Profile
}

func (f *fakeProfileService) GetOwn(ctx context.Context, userID string) (*domain.ProfileView, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.view, nil
}

func (f *fakeProfileService) UpdateOwn(ctx context.Context, profile *domain.Profile) error {
	f.updated = profile
	return f.updateErr
}

func (f *fakeProfileService) SetOwnImage(ctx context.Context, userID, image string) error {
	f.lastImage = image
	return nil
}

func TestProfileController_Get(t *testing.T) {
	tests := []struct {
		name         string
		view         *domain.ProfileView
		getErr       error
		wantStatus   int
		wantLocation string
	}{
		{
			name: "named profile",
			view: &domain.ProfileView{
				Profile:      &domain.Profile{UserID: "user-1", Name: "Alice"},
				IsRegistered: true,
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "empty name redirects to edit",
			view: &domain.ProfileView{
				Profile: &domain.Profile{UserID: "user-1"},
			},
			wantStatus:   http.StatusFound,
			wantLocation: "/profile/edit",
		},
		{
			name:       "missing profile",
			getErr:     domain.ErrNotFound,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeProfileService{view: tt.view, getErr: tt.getErr}
			ctrl := NewProfileController(testLogger, fake, nil)

			req := withUser(httptest.NewRequest(http.MethodGet, "/profile", nil), "user-1", "alice@example.org")
			rec := httptest.NewRecorder()

			ctrl.Get(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			}
		})
	}
}

func TestProfileController_GetForEdit_NoRedirect(t *testing.T) {
	fake := &fakeProfileService{
		view: &domain.ProfileView{Profile: &domain.Profile{UserID: "user-1"}},
	}
	ctrl := NewProfileController(testLogger, fake, nil)

	req := withUser(httptest.NewRequest(http.MethodGet, "/profile/edit", nil), "user-1", "alice@example.org")
	rec := httptest.NewRecorder()

	ctrl.GetForEdit(rec, req)

	// The edit endpoint serves the empty profile as-is.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
}

func TestProfileController_Update(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		updateErr  error
		wantStatus int
	}{
		{
			name:       "success",
			body:       `{"name":"Alice","organization":"Gophers Inc"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing name",
			body:       `{"organization":"Gophers Inc"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown field",
			body:       `{"name":"Alice","user_id":"user-2"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not found",
			body:       `{"name":"Alice"}`,
			updateErr:  domain.ErrNotFound,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeProfileService{updateErr: tt.updateErr}
			ctrl := NewProfileController(testLogger, fake, nil)

			req := withUser(httptest.NewRequest(http.MethodPut, "/profile", bytes.NewBufferString(tt.body)), "user-1", "alice@example.org")
			rec := httptest.NewRecorder()

			ctrl.Update(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, fake.updated)
				assert.Equal(t, "user-1", fake.updated.UserID, "write is scoped to the requester")
				assert.Equal(t, "Alice", fake.updated.Name)
			}
		})
	}
}
