// Package checkout drives the multi-step checkout flow: OTP dispatch and
// verification against the provider, field validation, and the step state
// machine.
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// FallbackOTPCode is the only code accepted while the provider is down.
const FallbackOTPCode = "123456"

var (
	// ErrProviderUnavailable means the OTP provider did not respond; the
	// flow switches to fallback mode on seeing it.
	ErrProviderUnavailable = errors.New("otp provider unavailable")

	// ErrCodeRejected means the provider answered and refused the code.
	ErrCodeRejected = errors.New("otp code rejected")
)

// OTPService is what the flow needs from the verification provider.
type OTPService interface {
	Send(ctx context.Context, phone string) error
	Verify(ctx context.Context, phone, code string) error
}

// OTPClient talks to the external checkout-OTP endpoints. SMS delivery is the
// provider's problem; only the verification protocol lives here.
type OTPClient struct {
	baseURL string
	client  *http.Client
}

func NewOTPClient(baseURL string, timeout time.Duration) *OTPClient {
	return &OTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type otpRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp,omitempty"`
}

type otpResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (c *OTPClient) Send(ctx context.Context, phone string) error {
	return c.post(ctx, "/send-checkout-otp", otpRequest{Phone: phone}, ErrProviderUnavailable)
}

func (c *OTPClient) Verify(ctx context.Context, phone, code string) error {
	return c.post(ctx, "/verify-checkout-otp", otpRequest{Phone: phone, OTP: code}, ErrCodeRejected)
}

func (c *OTPClient) post(ctx context.Context, path string, payload otpRequest, rejection error) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return ErrProviderUnavailable
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return ErrProviderUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return ErrProviderUnavailable
	}

	var parsed otpResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return ErrProviderUnavailable
	}
	if resp.StatusCode != http.StatusOK || !parsed.Success {
		return rejection
	}

	return nil
}
