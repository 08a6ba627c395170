package service

import (
	"context"
	"io"
	"time"

	"tenantportal-backend/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.User, string, error) // user, access token
	CreateUser(ctx context.Context, name, email, phone, password string, role domain.UserRole) (*domain.User, error)
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
}

type TenantService interface {
	MyPayments(ctx context.Context, userID int32) ([]domain.PaymentHistoryEntry, error)
	MyLease(ctx context.Context, userID int32) (*domain.Lease, error)
	UpdateProfile(ctx context.Context, userID int32, upd *ProfileUpdate) (*domain.User, error)
}

// ProfileUpdate carries a tenant's self-service profile change. A non-empty
// NewPassword requires CurrentPassword to verify.
type ProfileUpdate struct {
	Name            string
	Email           string
	Phone           string
	CurrentPassword string
	NewPassword     string
}

type AdminService interface {
	Dashboard(ctx context.Context) ([]domain.TenantOverview, error)

	CreateTenant(ctx context.Context, name, email, phone, password string) (*domain.User, error)
	UpdateTenant(ctx context.Context, id int32, name, email, phone, password string) error
	DeleteTenant(ctx context.Context, id int32) error
	ListTenants(ctx context.Context) ([]domain.TenantOverview, error)

	CreateProperty(ctx context.Context, property *domain.Property) error
	UpdatePropertyRent(ctx context.Context, id int32, rentAmount float64) error
	DeleteProperty(ctx context.Context, id int32) error
	ListProperties(ctx context.Context) ([]domain.Property, error)

	CreateLease(ctx context.Context, lease *domain.Lease) error

	CreatePayment(ctx context.Context, payment *domain.Payment) error
	MarkPaymentPaid(ctx context.Context, id int32) error
	ListPayments(ctx context.Context) ([]domain.PaymentHistoryEntry, error)
	UpcomingPayments(ctx context.Context, daysAhead int) ([]domain.UpcomingPayment, error)
	PaymentStats(ctx context.Context) (*domain.PaymentStats, error)

	GenerateRecurringPayments(ctx context.Context) (created, skipped int, err error)
}

// InitiationResult is the outcome of opening a gateway checkout session.
type InitiationResult struct {
	AuthorizationURL string  `json:"authorization_url"`
	AccessCode       string  `json:"access_code"`
	Reference        string  `json:"reference"`
	Amount           float64 `json:"amount"`
	PaymentIDs       []int32 `json:"payment_ids"`
}

// SettlementResult reports what a verification attempt did. Exactly one of
// the flags is meaningful: AlreadyProcessed means a prior attempt settled
// the transaction, Settled means this attempt did, and neither means the
// gateway reported the charge as not successful (see GatewayStatus).
type SettlementResult struct {
	AlreadyProcessed bool                       `json:"already_processed"`
	Settled          bool                       `json:"settled"`
	GatewayStatus    string                     `json:"gateway_status,omitempty"`
	Transaction      *domain.GatewayTransaction `json:"transaction,omitempty"`
}

type PaymentService interface {
	ValidateBatch(ctx context.Context, tenantID int32, paymentIDs []int32, claimedTotal float64) ([]domain.Payment, float64, error)
	InitiateTransaction(ctx context.Context, tenantID int32, paymentIDs []int32, claimedTotal float64) (*InitiationResult, error)

	// SettleTransaction verifies the referenced transaction with the gateway
	// and, on success, marks it completed and its payments paid exactly once.
	// tenantID 0 skips the ownership check (webhook path).
	SettleTransaction(ctx context.Context, reference string, tenantID int32) (*SettlementResult, error)

	HandleWebhookEvent(ctx context.Context, event, reference string) error

	GetTransaction(ctx context.Context, reference string, tenantID int32) (*domain.GatewayTransaction, error)
	ListTransactions(ctx context.Context, tenantID int32) ([]domain.GatewayTransaction, error)
	ListOverdue(ctx context.Context, tenantID int32) ([]domain.OverduePayment, error) // tenantID 0 = all
	ListPending(ctx context.Context, tenantID int32) ([]domain.Payment, error)

	SendOverdueReminders(ctx context.Context) (sent, failed int, err error)
	SendOverdueNotices(ctx context.Context) (sent, failed int, err error)
	SendPaymentReminders(ctx context.Context, daysAhead int) (sent, failed int, err error)
}

type CalendarService interface {
	CreateEvent(ctx context.Context, event *domain.CalendarEvent) error
	UpdateEvent(ctx context.Context, event *domain.CalendarEvent) error
	DeleteEvent(ctx context.Context, id int32) error
	ListEvents(ctx context.Context, userID int32) ([]domain.CalendarEvent, error)
	ListRange(ctx context.Context, userID int32, start, end time.Time) ([]domain.CalendarEvent, error)
	ListUpcoming(ctx context.Context, userID int32, days int) ([]domain.CalendarEvent, error)
	SyncPaymentEvents(ctx context.Context) (created int, err error)
}

type MaintenanceService interface {
	CreateRequest(ctx context.Context, req *domain.MaintenanceRequest) (*domain.MaintenanceRequest, error)
	GetRequest(ctx context.Context, id, userID int32) (*domain.MaintenanceRequest, error)
	ListRequests(ctx context.Context, userID int32) ([]domain.MaintenanceRequest, error)
	UpdateByTenant(ctx context.Context, userID, id int32, title, description string, priority domain.MaintenancePriority) error
	UpdateByAdmin(ctx context.Context, id int32, update *domain.MaintenanceUpdate) error
	DeleteRequest(ctx context.Context, id, userID int32) error
	Stats(ctx context.Context) (*domain.MaintenanceStats, error)

	UploadAttachment(ctx context.Context, requestID, userID int32, fileName, contentType string, r io.Reader) (*domain.MaintenanceAttachment, error)
	OpenAttachment(ctx context.Context, attachmentID, userID int32) (*domain.MaintenanceAttachment, io.ReadCloser, error)
	ListAttachments(ctx context.Context, requestID, userID int32) ([]domain.MaintenanceAttachment, error)
}

type EmailService interface {
	SendWelcome(toEmail, name string) error
	SendPaymentReceived(toEmail, name string, amount float64, propertyName, reference string) error
	SendPaymentReminder(toEmail, name string, amount float64, dueDate time.Time, propertyName string) error
	SendOverdueNotice(toEmail, name string, amount, lateFee, total float64, dueDate time.Time, propertyName string) error
	SendArrearsSummary(toEmail, name string, overdue []domain.OverduePayment, total float64) error
}
