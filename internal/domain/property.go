package domain

import "time"

type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "available"
	PropertyStatusOccupied  PropertyStatus = "occupied"
)

type Property struct {
	ID         int32          `json:"id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	RentAmount float64        `json:"rent_amount"`
	Status     PropertyStatus `json:"status,omitempty"` // derived from active leases
	CreatedAt  time.Time      `json:"created_at"`
}
