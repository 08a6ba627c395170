package domain

import "time"

type MaintenancePriority string

const (
	MaintenancePriorityUrgent MaintenancePriority = "urgent"
	MaintenancePriorityHigh   MaintenancePriority = "high"
	MaintenancePriorityMedium MaintenancePriority = "medium"
	MaintenancePriorityLow    MaintenancePriority = "low"
)

type MaintenanceStatus string

const (
	MaintenanceStatusPending    MaintenanceStatus = "pending"
	MaintenanceStatusAssigned   MaintenanceStatus = "assigned"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "completed"
	MaintenanceStatusCancelled  MaintenanceStatus = "cancelled"
)

type MaintenanceRequest struct {
	ID            int32               `json:"id"`
	UserID        int32               `json:"user_id"`
	PropertyID    int32               `json:"property_id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Priority      MaintenancePriority `json:"priority"`
	Status        MaintenanceStatus   `json:"status"`
	ScheduledDate *time.Time          `json:"scheduled_date,omitempty"`
	CompletedDate *time.Time          `json:"completed_date,omitempty"`
	AssignedTo    string              `json:"assigned_to,omitempty"`
	EstimatedCost *float64            `json:"estimated_cost,omitempty"`
	ActualCost    *float64            `json:"actual_cost,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`

	TenantName   string `json:"tenant_name,omitempty"`
	TenantEmail  string `json:"tenant_email,omitempty"`
	TenantPhone  string `json:"tenant_phone,omitempty"`
	PropertyName string `json:"property_name,omitempty"`
}

// MaintenanceUpdate carries the optional fields of an admin-side update.
// Nil means "leave unchanged".
type MaintenanceUpdate struct {
	Title         *string
	Description   *string
	Priority      *MaintenancePriority
	Status        *MaintenanceStatus
	ScheduledDate *time.Time
	AssignedTo    *string
	EstimatedCost *float64
	ActualCost    *float64
}

type MaintenanceStats struct {
	Total       int32   `json:"total"`
	Pending     int32   `json:"pending"`
	InProgress  int32   `json:"in_progress"`
	Completed   int32   `json:"completed"`
	Urgent      int32   `json:"urgent"`
	AverageCost float64 `json:"average_cost"`
	Overdue     int32   `json:"overdue"`
}

type MaintenanceAttachment struct {
	ID          int32     `json:"id"`
	RequestID   int32     `json:"request_id"`
	FileName    string    `json:"file_name"`
	StorageKey  string    `json:"storage_key"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}
