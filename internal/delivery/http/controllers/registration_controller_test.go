package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"confsite/internal/delivery/http/helpers"
	"confsite/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRegistrationService implements domain.RegistrationService for handler tests.
type fakeRegistrationService struct {
	paymentErr error
	getErr     error
	reg        *domain.Registration
	lastReq    *domain.PaymentRequest
}

func (f *fakeRegistrationService) ProcessPayment(ctx context.Context, userID string, req *domain.PaymentRequest) (*domain.Registration, error) {
	f.lastReq = req
	if f.paymentErr != nil {
		return nil, f.paymentErr
	}
	return f.reg, nil
}

func (f *fakeRegistrationService) GetOwn(ctx context.Context, userID string) (*domain.Registration, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.reg, nil
}

func TestRegistrationController_Payment(t *testing.T) {
	validBody := `{"merchant_uid":"order-1","amount":15000,"card_number":"4111-1111-1111-1111","expiry":"2028-08","birth":"900101","pwd_2digit":"00"}`

	tests := []struct {
		name       string
		body       string
		paymentErr error
		noUser     bool
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			body:       validBody,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "gateway outage answers 406 io_error",
			body:       validBody,
			paymentErr: fmt.Errorf("%w: connect timeout", domain.ErrPaymentGateway),
			wantStatus: http.StatusNotAcceptable,
			wantCode:   helpers.ErrCodeIOError,
		},
		{
			name:       "already registered",
			body:       validBody,
			paymentErr: errors.New("user is already registered"),
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "card declined",
			body:       validBody,
			paymentErr: errors.New("payment failed: card declined"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeInternalError,
		},
		{
			name:       "missing amount",
			body:       `{"merchant_uid":"order-1","card_number":"4111","expiry":"2028-08"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "no user in context",
			body:       validBody,
			noUser:     true,
			wantStatus: http.StatusUnauthorized,
			wantCode:   helpers.ErrCodeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeRegistrationService{
				paymentErr: tt.paymentErr,
				reg:        &domain.Registration{ID: "reg-1", UserID: "user-1", PaymentStatus: domain.PaymentStatusPaid},
			}
			ctrl := NewRegistrationController(testLogger, fake)

			req := httptest.NewRequest(http.MethodPost, "/registration/payment", bytes.NewBufferString(tt.body))
			if !tt.noUser {
				req = withUser(req, "user-1", "alice@example.org")
			}
			rec := httptest.NewRecorder()

			ctrl.Payment(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				var resp helpers.APIResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				require.NotNil(t, resp.Error)
				assert.Equal(t, tt.wantCode, resp.Error.Code)
			}
			if tt.wantStatus == http.StatusCreated {
				require.NotNil(t, fake.lastReq)
				assert.Equal(t, "order-1", fake.lastReq.MerchantUID)
				assert.Equal(t, 15000, fake.lastReq.Amount)
			}
		})
	}
}

func TestRegistrationController_Status(t *testing.T) {
	tests := []struct {
		name       string
		getErr     error
		wantStatus int
	}{
		{name: "success", wantStatus: http.StatusOK},
		{name: "not registered", getErr: domain.ErrNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeRegistrationService{
				getErr: tt.getErr,
				reg:    &domain.Registration{ID: "reg-1", UserID: "user-1", PaymentStatus: domain.PaymentStatusReady},
			}
			ctrl := NewRegistrationController(testLogger, fake)

			req := withUser(httptest.NewRequest(http.MethodGet, "/registration", nil), "user-1", "alice@example.org")
			rec := httptest.NewRecorder()

			ctrl.Status(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
