package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"confsite/internal/domain"
)

const defaultBaseURL = "https://api.iamport.kr"

type iamportClient struct {
	client    *http.Client
	baseURL   string
	apiKey    string
	apiSecret string
}

// NewIamportClient returns a PaymentProvider backed by the Iamport REST API.
// A nil http.Client falls back to http.DefaultClient.
func NewIamportClient(client *http.Client, apiKey, apiSecret string) domain.PaymentProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &iamportClient{
		client:    client,
		baseURL:   defaultBaseURL,
		apiKey:    apiKey,
		apiSecret: apiSecret,
	}
}

type tokenResponse struct {
	Response struct {
		AccessToken string `json:"access_token"`
	} `json:"response"`
}

type chargeResponse struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Response struct {
		ImpUID string `json:"imp_uid"`
		Status string `json:"status"`
		Amount int    `json:"amount"`
	} `json:"response"`
}

// Charge obtains an access token and performs a one-time card payment.
// Transport-level failures wrap domain.ErrPaymentGateway; a provider-side
// rejection (declined card etc.) is a plain error.
func (c *iamportClient) Charge(ctx context.Context, req *domain.PaymentRequest) (*domain.PaymentResult, error) {
	token, err := c.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"merchant_uid": req.MerchantUID,
		"amount":       req.Amount,
		"card_number":  req.CardNumber,
		"expiry":       req.Expiry,
		"birth":        req.Birth,
		"pwd_2digit":   req.Pwd2Digit,
	}
	var out chargeResponse
	if err := c.post(ctx, "/subscribe/payments/onetime", token, payload, &out); err != nil {
		return nil, err
	}
	if out.Code != 0 {
		return nil, fmt.Errorf("payment rejected: %s", out.Message)
	}
	return &domain.PaymentResult{
		TransactionID: out.Response.ImpUID,
		Status:        out.Response.Status,
		Amount:        out.Response.Amount,
	}, nil
}

func (c *iamportClient) getAccessToken(ctx context.Context) (string, error) {
	payload := map[string]any{
		"imp_key":    c.apiKey,
		"imp_secret": c.apiSecret,
	}
	var out tokenResponse
	if err := c.post(ctx, "/users/getToken", "", payload, &out); err != nil {
		return "", err
	}
	if out.Response.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", domain.ErrPaymentGateway)
	}
	return out.Response.AccessToken, nil
}

func (c *iamportClient) post(ctx context.Context, path, token string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPaymentGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: provider returned status %d", domain.ErrPaymentGateway, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", domain.ErrPaymentGateway, err)
	}
	return nil
}
