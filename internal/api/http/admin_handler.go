package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"tenantportal-backend/internal/domain"
	"tenantportal-backend/internal/service"
)

type AdminHandler struct {
	adminSvc service.AdminService
}

func NewAdminHandler(adminSvc service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", service.ErrValidation, name)
	}
	return int32(id), nil
}

func parseDate(value, field string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", service.ErrValidation, field)
	}
	return t, nil
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	rows, err := h.adminSvc.Dashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *AdminHandler) ListTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.adminSvc.ListTenants(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tenants)
}

func (h *AdminHandler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	tenant, err := h.adminSvc.CreateTenant(r.Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tenant)
}

func (h *AdminHandler) UpdateTenant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.adminSvc.UpdateTenant(r.Context(), id, req.Name, req.Email, req.Phone, req.Password); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Tenant updated"})
}

func (h *AdminHandler) DeleteTenant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.adminSvc.DeleteTenant(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Tenant deleted"})
}

func (h *AdminHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.adminSvc.ListProperties(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, properties)
}

func (h *AdminHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string  `json:"name"`
		Type       string  `json:"type"`
		RentAmount float64 `json:"rent_amount"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	property := &domain.Property{
		Name:       req.Name,
		Type:       req.Type,
		RentAmount: req.RentAmount,
	}
	if err := h.adminSvc.CreateProperty(r.Context(), property); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, property)
}

func (h *AdminHandler) UpdatePropertyRent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		RentAmount float64 `json:"rent_amount"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.adminSvc.UpdatePropertyRent(r.Context(), id, req.RentAmount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Rent updated"})
}

func (h *AdminHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.adminSvc.DeleteProperty(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Property deleted"})
}

func (h *AdminHandler) CreateLease(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID     int32  `json:"user_id"`
		PropertyID int32  `json:"property_id"`
		StartDate  string `json:"start_date"`
		EndDate    string `json:"end_date"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	start, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		writeError(w, err)
		return
	}

	lease := &domain.Lease{
		UserID:     req.UserID,
		PropertyID: req.PropertyID,
		StartDate:  start,
		EndDate:    end,
		Status:     domain.LeaseStatusActive,
	}
	if err := h.adminSvc.CreateLease(r.Context(), lease); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, lease)
}

func (h *AdminHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.adminSvc.ListPayments(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *AdminHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID     int32   `json:"user_id"`
		PropertyID int32   `json:"property_id"`
		Amount     float64 `json:"amount"`
		DueDate    string  `json:"due_date"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	dueDate, err := parseDate(req.DueDate, "due_date")
	if err != nil {
		writeError(w, err)
		return
	}

	payment := &domain.Payment{
		UserID:     req.UserID,
		PropertyID: req.PropertyID,
		Amount:     req.Amount,
		DueDate:    dueDate,
	}
	if err := h.adminSvc.CreatePayment(r.Context(), payment); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (h *AdminHandler) MarkPaymentPaid(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.adminSvc.MarkPaymentPaid(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Payment marked as paid"})
}

func (h *AdminHandler) UpcomingPayments(w http.ResponseWriter, r *http.Request) {
	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			days = parsed
		}
	}
	upcoming, err := h.adminSvc.UpcomingPayments(r.Context(), days)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, upcoming)
}

func (h *AdminHandler) PaymentStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminSvc.PaymentStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) GenerateRecurringPayments(w http.ResponseWriter, r *http.Request) {
	created, skipped, err := h.adminSvc.GenerateRecurringPayments(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"created": created,
		"skipped": skipped,
	})
}
