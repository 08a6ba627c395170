package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signBody(t *testing.T, secret string, body []byte) string {
	t.Helper()
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestInitializeTransaction(t *testing.T) {
	t.Run("sends the charge and returns the checkout session", func(t *testing.T) {
		var gotAuth string
		var gotPayload map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/transaction/initialize", r.URL.Path)
			gotAuth = r.Header.Get("Authorization")
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
			w.Write([]byte(`{"status":true,"message":"Authorization URL created","data":{
				"authorization_url":"https://checkout.paystack.com/abc123",
				"access_code":"abc123",
				"reference":"TM_1700000000000_7"}}`))
		}))
		defer server.Close()

		client := NewPaystackClient("sk_test_secret", server.URL)
		result, err := client.InitializeTransaction(context.Background(), &InitializeRequest{
			Email:     "ada@example.com",
			Amount:    15500000,
			Reference: "TM_1700000000000_7",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://checkout.paystack.com/abc123", result.AuthorizationURL)
		assert.Equal(t, "abc123", result.AccessCode)
		assert.Equal(t, "Bearer sk_test_secret", gotAuth)
		assert.Equal(t, float64(15500000), gotPayload["amount"])
	})

	t.Run("surfaces the API message on failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"status":false,"message":"Invalid amount"}`))
		}))
		defer server.Close()

		client := NewPaystackClient("sk_test_secret", server.URL)
		_, err := client.InitializeTransaction(context.Background(), &InitializeRequest{
			Email:  "ada@example.com",
			Amount: -1,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid amount")
	})
}

func TestVerifyTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/TM_1700000000000_7", r.URL.Path)
		w.Write([]byte(`{"status":true,"message":"Verification successful","data":{
			"status":"success",
			"reference":"TM_1700000000000_7",
			"amount":15500000,
			"fees":232500,
			"channel":"card",
			"paid_at":"2026-08-30T09:00:00.000Z"}}`))
	}))
	defer server.Close()

	client := NewPaystackClient("sk_test_secret", server.URL)
	result, err := client.VerifyTransaction(context.Background(), "TM_1700000000000_7")
	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Equal(t, int64(15500000), result.Amount)
	assert.Equal(t, int64(232500), result.Fees)
}

func TestVerifyWebhookSignature(t *testing.T) {
	client := NewPaystackClient("sk_test_secret", "")
	body := []byte(`{"event":"charge.success"}`)

	// HMAC-SHA512 of body under sk_test_secret.
	valid := signBody(t, "sk_test_secret", body)

	assert.True(t, client.VerifyWebhookSignature(body, valid))
	assert.False(t, client.VerifyWebhookSignature(body, "deadbeef"))
	assert.False(t, client.VerifyWebhookSignature(body, ""))
	assert.False(t, client.VerifyWebhookSignature([]byte(`{}`), valid))
}
