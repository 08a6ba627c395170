// Package http exposes the REST API consumed by the tenant portal SPA and
// by the payment gateway's webhook callbacks.
package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"tenantportal-backend/internal/security"
)

type Handlers struct {
	Auth        *AuthHandler
	Tenant      *TenantHandler
	Admin       *AdminHandler
	Payment     *PaymentHandler
	Calendar    *CalendarHandler
	Maintenance *MaintenanceHandler
}

// NewRouter wires every API route. The webhook and login endpoints are the
// only unauthenticated ones; the webhook authenticates by signature instead.
func NewRouter(h *Handlers, tokens security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Public
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/payments/webhook", h.Payment.Webhook).Methods(http.MethodPost)

	auth := AuthMiddleware(tokens)

	// Authenticated
	authed := api.NewRoute().Subrouter()
	authed.Use(auth)
	authed.HandleFunc("/auth/me", h.Auth.Me).Methods(http.MethodGet)

	authed.HandleFunc("/tenants/my-payments", h.Tenant.MyPayments).Methods(http.MethodGet)
	authed.HandleFunc("/tenants/my-lease", h.Tenant.MyLease).Methods(http.MethodGet)
	authed.HandleFunc("/tenants/update-profile", h.Tenant.UpdateProfile).Methods(http.MethodPut)

	authed.HandleFunc("/payments/initialize", h.Payment.Initialize).Methods(http.MethodPost)
	authed.HandleFunc("/payments/verify/{reference}", h.Payment.Verify).Methods(http.MethodPost)
	authed.HandleFunc("/payments/transactions", h.Payment.ListTransactions).Methods(http.MethodGet)
	authed.HandleFunc("/payments/transactions/{reference}", h.Payment.GetTransaction).Methods(http.MethodGet)
	authed.HandleFunc("/payments/overdue", h.Payment.ListOverdue).Methods(http.MethodGet)
	authed.HandleFunc("/payments/pending", h.Payment.ListPending).Methods(http.MethodGet)

	authed.HandleFunc("/calendar/events", h.Calendar.List).Methods(http.MethodGet)
	authed.HandleFunc("/calendar/events/range", h.Calendar.ListRange).Methods(http.MethodGet)
	authed.HandleFunc("/calendar/events/upcoming", h.Calendar.ListUpcoming).Methods(http.MethodGet)

	authed.HandleFunc("/maintenance", h.Maintenance.Create).Methods(http.MethodPost)
	authed.HandleFunc("/maintenance", h.Maintenance.List).Methods(http.MethodGet)
	authed.HandleFunc("/maintenance/{id}", h.Maintenance.Get).Methods(http.MethodGet)
	authed.HandleFunc("/maintenance/{id}", h.Maintenance.Update).Methods(http.MethodPut)
	authed.HandleFunc("/maintenance/{id}", h.Maintenance.Delete).Methods(http.MethodDelete)
	authed.HandleFunc("/maintenance/{id}/attachments", h.Maintenance.UploadAttachment).Methods(http.MethodPost)
	authed.HandleFunc("/maintenance/{id}/attachments", h.Maintenance.ListAttachments).Methods(http.MethodGet)
	authed.HandleFunc("/maintenance/attachments/{attachmentId}", h.Maintenance.DownloadAttachment).Methods(http.MethodGet)

	// Admin only
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(auth, RequireAdmin)
	admin.HandleFunc("/dashboard", h.Admin.Dashboard).Methods(http.MethodGet)

	admin.HandleFunc("/tenants", h.Admin.ListTenants).Methods(http.MethodGet)
	admin.HandleFunc("/tenants", h.Admin.CreateTenant).Methods(http.MethodPost)
	admin.HandleFunc("/tenants/{id}", h.Admin.UpdateTenant).Methods(http.MethodPut)
	admin.HandleFunc("/tenants/{id}", h.Admin.DeleteTenant).Methods(http.MethodDelete)

	admin.HandleFunc("/properties", h.Admin.ListProperties).Methods(http.MethodGet)
	admin.HandleFunc("/properties", h.Admin.CreateProperty).Methods(http.MethodPost)
	admin.HandleFunc("/properties/{id}", h.Admin.UpdatePropertyRent).Methods(http.MethodPut)
	admin.HandleFunc("/properties/{id}", h.Admin.DeleteProperty).Methods(http.MethodDelete)

	admin.HandleFunc("/leases", h.Admin.CreateLease).Methods(http.MethodPost)

	admin.HandleFunc("/payments", h.Admin.ListPayments).Methods(http.MethodGet)
	admin.HandleFunc("/payments", h.Admin.CreatePayment).Methods(http.MethodPost)
	admin.HandleFunc("/payments/{id}/mark-paid", h.Admin.MarkPaymentPaid).Methods(http.MethodPut)
	admin.HandleFunc("/payments/upcoming", h.Admin.UpcomingPayments).Methods(http.MethodGet)
	admin.HandleFunc("/payments/stats", h.Admin.PaymentStats).Methods(http.MethodGet)
	admin.HandleFunc("/payments/generate-recurring", h.Admin.GenerateRecurringPayments).Methods(http.MethodPost)
	admin.HandleFunc("/payments/send-reminders", h.Payment.SendReminders).Methods(http.MethodPost)
	admin.HandleFunc("/payments/send-overdue-notices", h.Payment.SendOverdueNotices).Methods(http.MethodPost)
	admin.HandleFunc("/payments/send-payment-reminders", h.Payment.SendUpcomingReminders).Methods(http.MethodPost)

	admin.HandleFunc("/users", h.Auth.CreateUser).Methods(http.MethodPost)
	admin.HandleFunc("/maintenance/stats", h.Maintenance.Stats).Methods(http.MethodGet)

	admin.HandleFunc("/calendar/events", h.Calendar.Create).Methods(http.MethodPost)
	admin.HandleFunc("/calendar/events/{id}", h.Calendar.Update).Methods(http.MethodPut)
	admin.HandleFunc("/calendar/events/{id}", h.Calendar.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/calendar/sync-payment-events", h.Calendar.SyncPaymentEvents).Methods(http.MethodPost)

	return r
}
