package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"tenantportal-backend/internal/gateway"
	"tenantportal-backend/internal/logger"
	"tenantportal-backend/internal/service"
)

type PaymentHandler struct {
	paymentSvc service.PaymentService
	gateway    gateway.PaymentGateway
}

func NewPaymentHandler(paymentSvc service.PaymentService, gw gateway.PaymentGateway) *PaymentHandler {
	return &PaymentHandler{
		paymentSvc: paymentSvc,
		gateway:    gw,
	}
}

func (h *PaymentHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaymentIDs []int32 `json:"payment_ids"`
		Amount     float64 `json:"amount"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	claims := ClaimsFrom(r.Context())
	result, err := h.paymentSvc.InitiateTransaction(r.Context(), claims.UserID, req.PaymentIDs, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	reference := mux.Vars(r)["reference"]
	claims := ClaimsFrom(r.Context())

	result, err := h.paymentSvc.SettleTransaction(r.Context(), reference, scopeUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	switch {
	case result.AlreadyProcessed:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":     "Payment already processed",
			"transaction": result.Transaction,
		})
	case result.Settled:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":     "Payment verified successfully",
			"transaction": result.Transaction,
		})
	default:
		logger.Info("Verification returned non-success", "reference", reference, "user_id", claims.UserID, "status", result.GatewayStatus)
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "Payment not successful",
			"status": result.GatewayStatus,
		})
	}
}

func (h *PaymentHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	reference := mux.Vars(r)["reference"]
	tx, err := h.paymentSvc.GetTransaction(r.Context(), reference, scopeUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *PaymentHandler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	overdue, err := h.paymentSvc.ListOverdue(r.Context(), scopeUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overdue)
}

func (h *PaymentHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.paymentSvc.ListPending(r.Context(), scopeUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pending)
}

func (h *PaymentHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.paymentSvc.ListTransactions(r.Context(), scopeUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transactions)
}

// Webhook receives gateway callbacks. The signature covers the raw body, so
// the body must be read before any decoding.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Unreadable body"})
		return
	}
	defer r.Body.Close()

	signature := r.Header.Get("x-paystack-signature")
	if !h.gateway.VerifyWebhookSignature(body, signature) {
		logger.Warn("Webhook signature rejected")
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid signature"})
		return
	}

	var event struct {
		Event string `json:"event"`
		Data  struct {
			Reference string `json:"reference"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid payload"})
		return
	}

	if err := h.paymentSvc.HandleWebhookEvent(r.Context(), event.Event, event.Data.Reference); err != nil {
		// Tell the gateway to retry later.
		logger.Error("Webhook processing failed", "event", event.Event, "reference", event.Data.Reference, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Processing failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "OK"})
}

func (h *PaymentHandler) SendReminders(w http.ResponseWriter, r *http.Request) {
	sent, failed, err := h.paymentSvc.SendOverdueReminders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"sent":   sent,
		"failed": failed,
	})
}

func (h *PaymentHandler) SendOverdueNotices(w http.ResponseWriter, r *http.Request) {
	sent, failed, err := h.paymentSvc.SendOverdueNotices(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"sent":   sent,
		"failed": failed,
	})
}

func (h *PaymentHandler) SendUpcomingReminders(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, fmt.Errorf("%w: days must be a positive integer", service.ErrValidation))
			return
		}
		days = parsed
	}

	sent, failed, err := h.paymentSvc.SendPaymentReminders(r.Context(), days)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"sent":   sent,
		"failed": failed,
	})
}
