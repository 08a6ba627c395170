// Package gateway wraps the Paystack REST API used for rent collection.
package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tenantportal-backend/internal/logger"
)

// PaymentGateway initiates and verifies transactions with the payment
// processor. Implementations must be safe for concurrent use.
type PaymentGateway interface {
	InitializeTransaction(ctx context.Context, req *InitializeRequest) (*InitializeResult, error)
	VerifyTransaction(ctx context.Context, reference string) (*VerifyResult, error)
	VerifyWebhookSignature(body []byte, signature string) bool
}

// InitializeRequest carries the fields Paystack needs to open a checkout
// session. Amount is in minor units (kobo).
type InitializeRequest struct {
	Email       string
	Amount      int64
	Reference   string
	CallbackURL string
	Metadata    map[string]interface{}
}

type InitializeResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
	Raw              []byte
}

// VerifyResult reports the processor's view of a transaction. Amount and
// Fees are in minor units.
type VerifyResult struct {
	Status    string
	Reference string
	Amount    int64
	Fees      int64
	Channel   string
	PaidAt    string
	Raw       []byte
}

// Success reports whether the processor settled the charge.
func (r *VerifyResult) Success() bool {
	return r.Status == "success"
}

type paystackClient struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewPaystackClient(secretKey, baseURL string) PaymentGateway {
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}
	return &paystackClient{
		secretKey: secretKey,
		baseURL:   baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *paystackClient) InitializeTransaction(ctx context.Context, req *InitializeRequest) (*InitializeResult, error) {
	payload := map[string]interface{}{
		"email":     req.Email,
		"amount":    req.Amount,
		"reference": req.Reference,
	}
	if req.CallbackURL != "" {
		payload["callback_url"] = req.CallbackURL
	}
	if req.Metadata != nil {
		payload["metadata"] = req.Metadata
	}

	logger.ExternalServiceCall("paystack", "initialize", "reference", req.Reference, "amount", req.Amount)
	data, err := c.post(ctx, "/transaction/initialize", payload)
	logger.ExternalServiceResult("paystack", "initialize", err, "reference", req.Reference)
	if err != nil {
		return nil, err
	}

	var body struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("decode initialize response: %w", err)
	}
	return &InitializeResult{
		AuthorizationURL: body.AuthorizationURL,
		AccessCode:       body.AccessCode,
		Reference:        body.Reference,
		Raw:              data,
	}, nil
}

func (c *paystackClient) VerifyTransaction(ctx context.Context, reference string) (*VerifyResult, error) {
	logger.ExternalServiceCall("paystack", "verify", "reference", reference)
	data, err := c.get(ctx, "/transaction/verify/"+reference)
	logger.ExternalServiceResult("paystack", "verify", err, "reference", reference)
	if err != nil {
		return nil, err
	}

	var body struct {
		Status    string `json:"status"`
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
		Fees      int64  `json:"fees"`
		Channel   string `json:"channel"`
		PaidAt    string `json:"paid_at"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("decode verify response: %w", err)
	}
	return &VerifyResult{
		Status:    body.Status,
		Reference: body.Reference,
		Amount:    body.Amount,
		Fees:      body.Fees,
		Channel:   body.Channel,
		PaidAt:    body.PaidAt,
		Raw:       data,
	}, nil
}

// VerifyWebhookSignature checks the HMAC-SHA512 of the raw request body
// against the x-paystack-signature header.
func (c *paystackClient) VerifyWebhookSignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(c.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (c *paystackClient) post(ctx context.Context, path string, payload interface{}) (json.RawMessage, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *paystackClient) get(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *paystackClient) do(req *http.Request) (json.RawMessage, error) {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paystack request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read paystack response: %w", err)
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode paystack response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode >= 400 || !envelope.Status {
		return nil, fmt.Errorf("paystack error (status %d): %s", resp.StatusCode, envelope.Message)
	}
	return envelope.Data, nil
}
