package domain

import "time"

type EventType string

const (
	EventTypePayment     EventType = "payment"
	EventTypeMaintenance EventType = "maintenance"
	EventTypeInspection  EventType = "inspection"
	EventTypeGeneral     EventType = "general"
)

type EventStatus string

const (
	EventStatusScheduled EventStatus = "scheduled"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

type CalendarEvent struct {
	ID          int32       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	EventType   EventType   `json:"event_type"`
	UserID      *int32      `json:"user_id,omitempty"`     // nil = visible to everyone
	PropertyID  *int32      `json:"property_id,omitempty"`
	CreatedBy   int32       `json:"created_by"`
	Status      EventStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`

	TenantName   string `json:"tenant_name,omitempty"`
	PropertyName string `json:"property_name,omitempty"`
}
