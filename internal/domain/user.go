package domain

import "time"

type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleTenant UserRole = "tenant"
)

type User struct {
	ID           int32     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// TenantOverview is one row of the admin dashboard join
// (tenant x lease x property x payment).
type TenantOverview struct {
	UserID        int32      `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	PropertyName  string     `json:"property_name,omitempty"`
	RentAmount    float64    `json:"rent_amount,omitempty"`
	LeaseStart    *time.Time `json:"start_date,omitempty"`
	LeaseEnd      *time.Time `json:"end_date,omitempty"`
	PaymentStatus string     `json:"payment_status,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
	Amount        float64    `json:"amount,omitempty"`
}
