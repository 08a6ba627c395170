package domain

import "time"

type LeaseStatus string

const (
	LeaseStatusActive     LeaseStatus = "active"
	LeaseStatusTerminated LeaseStatus = "terminated"
	LeaseStatusExpired    LeaseStatus = "expired"
)

type Lease struct {
	ID         int32       `json:"id"`
	UserID     int32       `json:"user_id"`
	PropertyID int32       `json:"property_id"`
	StartDate  time.Time   `json:"start_date"`
	EndDate    time.Time   `json:"end_date"`
	Status     LeaseStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`

	// Joined property fields, populated by lease queries that need them.
	PropertyName string  `json:"property_name,omitempty"`
	PropertyType string  `json:"type,omitempty"`
	RentAmount   float64 `json:"rent_amount,omitempty"`
}

// ActiveLeaseholder is one active tenant-property assignment, used by
// recurring payment generation.
type ActiveLeaseholder struct {
	UserID       int32   `json:"user_id"`
	TenantName   string  `json:"tenant_name"`
	Email        string  `json:"email"`
	PropertyID   int32   `json:"property_id"`
	PropertyName string  `json:"property_name"`
	RentAmount   float64 `json:"rent_amount"`
}
