package controllers

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"confsite/internal/delivery/http/middleware"
	"confsite/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeProposalService implements domain.ProposalService for handler tests.
type fakeProposalService struct {
	createErr    error
	getErr       error
	updateErr    error
	lastProposal *domain.Proposal
	existing     *domain.Proposal
}

func (f *fakeProposalService) Create(ctx context.Context, p *domain.Proposal) error {
	f.lastProposal = p
	if f.createErr != nil {
		return f.createErr
	}
	p.ID = "proposal-created"
	return nil
}

func (f *fakeProposalService) GetOwn(ctx context.Context, userID string) (*domain.Proposal, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.existing, nil
}

func (f *fakeProposalService) UpdateOwn(ctx context.Context, p *domain.Proposal) error {
	f.lastProposal = p
	return f.updateErr
}

func withUser(r *http.Request, userID, email string) *http.Request {
	return r.WithContext(middleware.SetUser(r.Context(), userID, email))
}

func TestProposalController_Create(t *testing.T) {
	validBody := `{"title":"Go at scale","brief":"Lessons","desc":"Long form","difficulty":"intermediate","duration":"40min","language":"en"}`

	tests := []struct {
		name         string
		body         string
		createErr    error
		noUser       bool
		wantStatus   int
		wantLocation string
	}{
		{
			name:       "success",
			body:       validBody,
			wantStatus: http.StatusCreated,
		},
		{
			name:         "duplicate redirects to existing proposal",
			body:         validBody,
			createErr:    domain.ErrDuplicateProposal,
			wantStatus:   http.StatusFound,
			wantLocation: "/proposals/me",
		},
		{
			name:       "missing title",
			body:       `{"brief":"b","desc":"d","difficulty":"beginner","duration":"25min"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad difficulty",
			body:       `{"title":"t","brief":"b","desc":"d","difficulty":"expert","duration":"25min"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no user in context",
			body:       validBody,
			noUser:     true,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeProposalService{createErr: tt.createErr}
			ctrl := NewProposalController(testLogger, fake)

			req := httptest.NewRequest(http.MethodPost, "/proposals", bytes.NewBufferString(tt.body))
			if !tt.noUser {
				req = withUser(req, "user-1", "alice@example.org")
			}
			rec := httptest.NewRecorder()

			ctrl.Create(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			}
			if tt.wantStatus == http.StatusCreated {
				require.NotNil(t, fake.lastProposal)
				assert.Equal(t, "user-1", fake.lastProposal.UserID)
				assert.Equal(t, "Go at scale", fake.lastProposal.Title)
			}
		})
	}
}

func TestProposalController_GetOwn(t *testing.T) {
	tests := []struct {
		name         string
		existing     *domain.Proposal
		getErr       error
		wantStatus   int
		wantLocation string
	}{
		{
			name:       "success",
			existing:   &domain.Proposal{ID: "proposal-1", UserID: "user-1", Title: "Go at scale"},
			wantStatus: http.StatusOK,
		},
		{
			name:         "no proposal redirects to submission",
			getErr:       domain.ErrNotFound,
			wantStatus:   http.StatusFound,
			wantLocation: "/proposals",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeProposalService{existing: tt.existing, getErr: tt.getErr}
			ctrl := NewProposalController(testLogger, fake)

			req := withUser(httptest.NewRequest(http.MethodGet, "/proposals/me", nil), "user-1", "alice@example.org")
			rec := httptest.NewRecorder()

			ctrl.GetOwn(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			}
		})
	}
}

func TestProposalController_UpdateOwn(t *testing.T) {
	validBody := `{"title":"Updated","brief":"b","desc":"d","difficulty":"advanced","duration":"25min"}`

	tests := []struct {
		name       string
		updateErr  error
		wantStatus int
	}{
		{name: "success", wantStatus: http.StatusOK},
		{name: "not found", updateErr: domain.ErrNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeProposalService{updateErr: tt.updateErr}
			ctrl := NewProposalController(testLogger, fake)

			req := withUser(httptest.NewRequest(http.MethodPut, "/proposals/me", bytes.NewBufferString(validBody)), "user-1", "alice@example.org")
			rec := httptest.NewRecorder()

			ctrl.UpdateOwn(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
