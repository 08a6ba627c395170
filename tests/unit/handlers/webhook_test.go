package handlers

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpapi "tenantportal-backend/internal/api/http"
	"tenantportal-backend/internal/gateway"
)

const webhookSecret = "sk_test_0123456789abcdef"

func sign(body string) string {
	mac := hmac.New(sha512.New, []byte(webhookSecret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func postWebhook(handler *httpapi.PaymentHandler, body, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", strings.NewReader(body))
	if signature != "" {
		req.Header.Set("x-paystack-signature", signature)
	}
	rec := httptest.NewRecorder()
	handler.Webhook(rec, req)
	return rec
}

func TestWebhook(t *testing.T) {
	gw := gateway.NewPaystackClient(webhookSecret, "")

	t.Run("settles a correctly signed charge.success", func(t *testing.T) {
		paymentSvc := new(MockPaymentService)
		handler := httpapi.NewPaymentHandler(paymentSvc, gw)

		body := `{"event":"charge.success","data":{"reference":"TM_1700000000000_7"}}`
		paymentSvc.On("HandleWebhookEvent", mock.Anything, "charge.success", "TM_1700000000000_7").
			Return(nil).Once()

		rec := postWebhook(handler, body, sign(body))
		assert.Equal(t, http.StatusOK, rec.Code)
		paymentSvc.AssertExpectations(t)
	})

	t.Run("rejects a bad signature without touching the service", func(t *testing.T) {
		paymentSvc := new(MockPaymentService)
		handler := httpapi.NewPaymentHandler(paymentSvc, gw)

		body := `{"event":"charge.success","data":{"reference":"TM_1700000000000_7"}}`
		rec := postWebhook(handler, body, sign(body+"tampered"))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		paymentSvc.AssertNotCalled(t, "HandleWebhookEvent", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a missing signature", func(t *testing.T) {
		paymentSvc := new(MockPaymentService)
		handler := httpapi.NewPaymentHandler(paymentSvc, gw)

		body := `{"event":"charge.success","data":{"reference":"TM_1700000000000_7"}}`
		rec := postWebhook(handler, body, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a signed but malformed payload", func(t *testing.T) {
		paymentSvc := new(MockPaymentService)
		handler := httpapi.NewPaymentHandler(paymentSvc, gw)

		body := `{"event":`
		rec := postWebhook(handler, body, sign(body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		paymentSvc.AssertNotCalled(t, "HandleWebhookEvent", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("returns 500 so the gateway retries a failed settlement", func(t *testing.T) {
		paymentSvc := new(MockPaymentService)
		handler := httpapi.NewPaymentHandler(paymentSvc, gw)

		body := `{"event":"charge.success","data":{"reference":"TM_1700000000000_7"}}`
		paymentSvc.On("HandleWebhookEvent", mock.Anything, "charge.success", "TM_1700000000000_7").
			Return(errors.New("gateway timeout")).Once()

		rec := postWebhook(handler, body, sign(body))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
