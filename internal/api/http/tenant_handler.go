package http

import (
	"net/http"

	"tenantportal-backend/internal/service"
)

type TenantHandler struct {
	tenantSvc service.TenantService
}

func NewTenantHandler(tenantSvc service.TenantService) *TenantHandler {
	return &TenantHandler{tenantSvc: tenantSvc}
}

func (h *TenantHandler) MyPayments(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	payments, err := h.tenantSvc.MyPayments(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *TenantHandler) MyLease(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	lease, err := h.tenantSvc.MyLease(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lease)
}

func (h *TenantHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Phone           string `json:"phone"`
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	claims := ClaimsFrom(r.Context())
	user, err := h.tenantSvc.UpdateProfile(r.Context(), claims.UserID, &service.ProfileUpdate{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
