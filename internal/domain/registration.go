package domain

import (
	"context"
	"time"
)

// Registration payment statuses. "ready" covers bank-transfer payments that
// have a virtual account assigned but not yet funded; both ready and paid
// count as registered.
const (
	PaymentStatusReady     = "ready"
	PaymentStatusPaid      = "paid"
	PaymentStatusCancelled = "cancelled"
)

// Registration is a paid (or pending) conference registration.
// swagger:model Registration
type Registration struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	MerchantUID   string    `json:"merchant_uid"`
	TransactionID string    `json:"transaction_id"`
	Amount        int       `json:"amount"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PaymentRequest is the charge request forwarded to the payment provider.
type PaymentRequest struct {
	MerchantUID string `json:"merchant_uid"`
	Amount      int    `json:"amount"`
	CardNumber  string `json:"card_number"`
	Expiry      string `json:"expiry"`
	Birth       string `json:"birth"`
	Pwd2Digit   string `json:"pwd_2digit"`
}

// PaymentResult is the provider's answer to a charge.
type PaymentResult struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	Amount        int    `json:"amount"`
}

// PaymentProvider is the port to the external payment gateway. Transport
// failures surface as errors wrapping ErrPaymentGateway.
type PaymentProvider interface {
	Charge(ctx context.Context, req *PaymentRequest) (*PaymentResult, error)
}

// RegistrationRepository defines the interface for registration storage.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	GetByUserID(ctx context.Context, userID string) (*Registration, error)
	// IsRegistered reports whether the user has a registration with
	// payment status paid or ready.
	IsRegistered(ctx context.Context, userID string) (bool, error)
	UpdateStatus(ctx context.Context, id, status, transactionID string) error
}

// RegistrationService defines the payment-gated registration flow.
type RegistrationService interface {
	// ProcessPayment charges via the provider and records the registration.
	ProcessPayment(ctx context.Context, userID string, req *PaymentRequest) (*Registration, error)
	GetOwn(ctx context.Context, userID string) (*Registration, error)
}
