package http

import (
	"fmt"
	"io"
	"net/http"

	"tenantportal-backend/internal/domain"
	"tenantportal-backend/internal/logger"
	"tenantportal-backend/internal/service"
)

type MaintenanceHandler struct {
	maintSvc    service.MaintenanceService
	maxFileSize int64 // bytes
}

func NewMaintenanceHandler(maintSvc service.MaintenanceService, maxFileSizeMB int64) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintSvc:    maintSvc,
		maxFileSize: maxFileSizeMB << 20,
	}
}

func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PropertyID  int32  `json:"property_id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Priority    string `json:"priority"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	claims := ClaimsFrom(r.Context())
	request, err := h.maintSvc.CreateRequest(r.Context(), &domain.MaintenanceRequest{
		UserID:      claims.UserID,
		PropertyID:  req.PropertyID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.MaintenancePriority(req.Priority),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

func (h *MaintenanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	request, err := h.maintSvc.GetRequest(r.Context(), id, scopeUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) {
	requests, err := h.maintSvc.ListRequests(r.Context(), scopeUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// Update dispatches on role: tenants may only reshape their own pending
// request, admins control the full workflow fields.
func (h *MaintenanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	claims := ClaimsFrom(r.Context())
	if claims.Role == domain.UserRoleAdmin {
		var req struct {
			Title         *string  `json:"title"`
			Description   *string  `json:"description"`
			Priority      *string  `json:"priority"`
			Status        *string  `json:"status"`
			ScheduledDate *string  `json:"scheduled_date"`
			AssignedTo    *string  `json:"assigned_to"`
			EstimatedCost *float64 `json:"estimated_cost"`
			ActualCost    *float64 `json:"actual_cost"`
		}
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}

		update := &domain.MaintenanceUpdate{
			Title:         req.Title,
			Description:   req.Description,
			AssignedTo:    req.AssignedTo,
			EstimatedCost: req.EstimatedCost,
			ActualCost:    req.ActualCost,
		}
		if req.Priority != nil {
			p := domain.MaintenancePriority(*req.Priority)
			update.Priority = &p
		}
		if req.Status != nil {
			s := domain.MaintenanceStatus(*req.Status)
			update.Status = &s
		}
		if req.ScheduledDate != nil {
			scheduled, err := parseDate(*req.ScheduledDate, "scheduled_date")
			if err != nil {
				writeError(w, err)
				return
			}
			update.ScheduledDate = &scheduled
		}

		if err := h.maintSvc.UpdateByAdmin(r.Context(), id, update); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Request updated"})
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Priority    string `json:"priority"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.maintSvc.UpdateByTenant(r.Context(), claims.UserID, id, req.Title, req.Description, domain.MaintenancePriority(req.Priority)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Request updated"})
}

func (h *MaintenanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.maintSvc.DeleteRequest(r.Context(), id, scopeUserID(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Request deleted"})
}

func (h *MaintenanceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.maintSvc.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *MaintenanceHandler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		writeError(w, fmt.Errorf("%w: file too large or malformed upload", service.ErrValidation))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, fmt.Errorf("%w: missing file field", service.ErrValidation))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	att, err := h.maintSvc.UploadAttachment(r.Context(), id, scopeUserID(r.Context()), header.Filename, contentType, file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, att)
}

func (h *MaintenanceHandler) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	attachmentID, err := pathID(r, "attachmentId")
	if err != nil {
		writeError(w, err)
		return
	}

	att, reader, err := h.maintSvc.OpenAttachment(r.Context(), attachmentID, scopeUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", att.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", att.FileName))
	if _, err := io.Copy(w, reader); err != nil {
		// Headers are already out; nothing left to do but log.
		logger.Error("Attachment download interrupted", "attachment_id", att.ID, "error", err)
	}
}

func (h *MaintenanceHandler) ListAttachments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	atts, err := h.maintSvc.ListAttachments(r.Context(), id, scopeUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, atts)
}
