package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Payment is a single rent charge due from a tenant by a specific date.
type Payment struct {
	ID               int32         `json:"id"`
	UserID           int32         `json:"user_id"`
	PropertyID       int32         `json:"property_id"`
	Amount           float64       `json:"amount"`
	DueDate          time.Time     `json:"due_date"`
	Status           PaymentStatus `json:"status"`
	PaidAt           *time.Time    `json:"payment_date,omitempty"`
	PaymentReference string        `json:"payment_reference,omitempty"`
	PaymentMethod    string        `json:"payment_method,omitempty"`
	TransactionFee   float64       `json:"transaction_fee,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`

	PropertyName string `json:"property_name,omitempty"`
	TenantName   string `json:"tenant_name,omitempty"`
	TenantEmail  string `json:"tenant_email,omitempty"`
}

// OverduePayment annotates a pending payment with the late fee owed as of the
// evaluation date. LateFee and TotalDue always come from the same fee
// function that batch validation uses.
type OverduePayment struct {
	Payment
	LateFee  float64 `json:"late_fee"`
	TotalDue float64 `json:"total_amount_due"`
}

// PaymentHistoryEntry annotates a payment for tenant and admin listings.
type PaymentHistoryEntry struct {
	Payment
	IsOverdue   bool  `json:"is_overdue"`
	DaysOverdue int32 `json:"days_overdue,omitempty"`
}

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
)

// GatewayTransaction records one payment-gateway checkout attempt covering a
// batch of payments. It transitions pending -> completed exactly once.
type GatewayTransaction struct {
	ID               int32             `json:"id"`
	Reference        string            `json:"reference"`
	UserID           int32             `json:"user_id"`
	Amount           float64           `json:"amount"`
	PaymentIDs       []int32           `json:"payment_ids"`
	Status           TransactionStatus `json:"status"`
	GatewayData      []byte            `json:"-"` // raw initialization response
	VerificationData []byte            `json:"-"` // raw verification response
	CreatedAt        time.Time         `json:"created_at"`
	VerifiedAt       *time.Time        `json:"verified_at,omitempty"`
}

// UpcomingPayment is a pending payment due within the reminder window.
type UpcomingPayment struct {
	PaymentID    int32     `json:"payment_id"`
	TenantName   string    `json:"tenant_name"`
	TenantEmail  string    `json:"email"`
	PropertyName string    `json:"property_name"`
	Amount       float64   `json:"amount"`
	DueDate      time.Time `json:"due_date"`
	DaysUntilDue int32     `json:"days_until_due"`
}

// PaymentStats backs the admin dashboard statistics widget.
type PaymentStats struct {
	TotalPayments       int32   `json:"total_payments"`
	TotalAmount         float64 `json:"total_amount"`
	GatewayTransactions int32   `json:"gateway_transactions"`
	GatewayAmount       float64 `json:"gateway_amount"`
	OverdueCount        int32   `json:"overdue_count"`
	OverdueAmount       float64 `json:"overdue_amount"`
	SuccessRate         float64 `json:"success_rate"`
}
