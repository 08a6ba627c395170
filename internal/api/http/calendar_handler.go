package http

import (
	"net/http"
	"strconv"

	"tenantportal-backend/internal/domain"
	"tenantportal-backend/internal/service"
)

type CalendarHandler struct {
	calendarSvc service.CalendarService
}

func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

type eventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	EventType   string `json:"event_type"`
	UserID      *int32 `json:"user_id"`
	PropertyID  *int32 `json:"property_id"`
	Status      string `json:"status"`
}

func (req *eventRequest) toDomain() (*domain.CalendarEvent, error) {
	start, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		return nil, err
	}
	end, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		return nil, err
	}
	status := domain.EventStatus(req.Status)
	if req.Status == "" {
		status = domain.EventStatusScheduled
	}
	return &domain.CalendarEvent{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
		EventType:   domain.EventType(req.EventType),
		UserID:      req.UserID,
		PropertyID:  req.PropertyID,
		Status:      status,
	}, nil
}

func (h *CalendarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	event, err := req.toDomain()
	if err != nil {
		writeError(w, err)
		return
	}
	event.CreatedBy = ClaimsFrom(r.Context()).UserID

	if err := h.calendarSvc.CreateEvent(r.Context(), event); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

func (h *CalendarHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	event, err := req.toDomain()
	if err != nil {
		writeError(w, err)
		return
	}
	event.ID = id

	if err := h.calendarSvc.UpdateEvent(r.Context(), event); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *CalendarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.calendarSvc.DeleteEvent(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Event deleted"})
}

func (h *CalendarHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.calendarSvc.ListEvents(r.Context(), scopeUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *CalendarHandler) ListRange(w http.ResponseWriter, r *http.Request) {
	start, err := parseDate(r.URL.Query().Get("start"), "start")
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseDate(r.URL.Query().Get("end"), "end")
	if err != nil {
		writeError(w, err)
		return
	}

	events, err := h.calendarSvc.ListRange(r.Context(), scopeUserID(r.Context()), start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *CalendarHandler) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			days = parsed
		}
	}
	events, err := h.calendarSvc.ListUpcoming(r.Context(), scopeUserID(r.Context()), days)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *CalendarHandler) SyncPaymentEvents(w http.ResponseWriter, r *http.Request) {
	created, err := h.calendarSvc.SyncPaymentEvents(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"created": created})
}
