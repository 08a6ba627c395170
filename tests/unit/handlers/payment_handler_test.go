package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpapi "tenantportal-backend/internal/api/http"
	"tenantportal-backend/internal/gateway"
)

func TestSendOverdueNotices(t *testing.T) {
	gw := gateway.NewPaystackClient(webhookSecret, "")

	t.Run("reports the sent and failed counts", func(t *testing.T) {
		paymentSvc := new(MockPaymentService)
		handler := httpapi.NewPaymentHandler(paymentSvc, gw)

		paymentSvc.On("SendOverdueNotices", mock.Anything).Return(3, 1, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/admin/payments/send-overdue-notices", nil)
		rec := httptest.NewRecorder()
		handler.SendOverdueNotices(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"sent":3,"failed":1}`, rec.Body.String())
		paymentSvc.AssertExpectations(t)
	})

	t.Run("surfaces a service failure", func(t *testing.T) {
		paymentSvc := new(MockPaymentService)
		handler := httpapi.NewPaymentHandler(paymentSvc, gw)

		paymentSvc.On("SendOverdueNotices", mock.Anything).Return(0, 0, assert.AnError).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/admin/payments/send-overdue-notices", nil)
		rec := httptest.NewRecorder()
		handler.SendOverdueNotices(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestSendUpcomingReminders(t *testing.T) {
	gw := gateway.NewPaystackClient(webhookSecret, "")

	t.Run("passes the days window through", func(t *testing.T) {
		paymentSvc := new(MockPaymentService)
		handler := httpapi.NewPaymentHandler(paymentSvc, gw)

		paymentSvc.On("SendPaymentReminders", mock.Anything, 5).Return(2, 0, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/admin/payments/send-payment-reminders?days=5", nil)
		rec := httptest.NewRecorder()
		handler.SendUpcomingReminders(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"sent":2,"failed":0}`, rec.Body.String())
		paymentSvc.AssertExpectations(t)
	})

	t.Run("defers to the service default when no window is given", func(t *testing.T) {
		paymentSvc := new(MockPaymentService)
		handler := httpapi.NewPaymentHandler(paymentSvc, gw)

		paymentSvc.On("SendPaymentReminders", mock.Anything, 0).Return(1, 0, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/admin/payments/send-payment-reminders", nil)
		rec := httptest.NewRecorder()
		handler.SendUpcomingReminders(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		paymentSvc.AssertExpectations(t)
	})

	t.Run("rejects a malformed window", func(t *testing.T) {
		paymentSvc := new(MockPaymentService)
		handler := httpapi.NewPaymentHandler(paymentSvc, gw)

		req := httptest.NewRequest(http.MethodPost, "/api/admin/payments/send-payment-reminders?days=soon", nil)
		rec := httptest.NewRecorder()
		handler.SendUpcomingReminders(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		paymentSvc.AssertNotCalled(t, "SendPaymentReminders", mock.Anything, mock.Anything)
	})
}
