package repository

import (
	"context"
	"time"

	"tenantportal-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	EmailTakenByOther(ctx context.Context, email string, userID int32) (bool, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateTenant(ctx context.Context, tenant *domain.User) error
	DeleteTenant(ctx context.Context, id int32) error
	ListTenants(ctx context.Context) ([]domain.TenantOverview, error)
	DashboardRows(ctx context.Context) ([]domain.TenantOverview, error)
}

type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	UpdateRent(ctx context.Context, id int32, rentAmount float64) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Property, error)
}

type LeaseRepository interface {
	Create(ctx context.Context, lease *domain.Lease) error
	GetActiveByUser(ctx context.Context, userID int32) (*domain.Lease, error)
	HasActiveLease(ctx context.Context, userID, propertyID int32) (bool, error)
	ListActiveLeaseholders(ctx context.Context) ([]domain.ActiveLeaseholder, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	Exists(ctx context.Context, userID, propertyID int32, dueDate time.Time) (bool, error)
	MarkPaid(ctx context.Context, id int32, reference string) error
	GetForReceipt(ctx context.Context, id int32) (*domain.Payment, error)

	// ListPendingByIDs fetches payments matching the requested IDs that are
	// owned by userID and still pending. IDs that fail any of those
	// constraints are absent from the result, not an error.
	ListPendingByIDs(ctx context.Context, ids []int32, userID int32) ([]domain.Payment, error)

	ListByUser(ctx context.Context, userID int32) ([]domain.Payment, error)
	ListAll(ctx context.Context) ([]domain.Payment, error)
	ListOverdue(ctx context.Context, userID int32) ([]domain.Payment, error) // userID 0 = all tenants
	ListPendingNotDue(ctx context.Context, userID int32) ([]domain.Payment, error)
	ListUpcoming(ctx context.Context, daysAhead int) ([]domain.UpcomingPayment, error)
	Stats(ctx context.Context) (*domain.PaymentStats, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.GatewayTransaction) error
	GetByReference(ctx context.Context, reference string, userID int32) (*domain.GatewayTransaction, error) // userID 0 = unscoped (webhook path)
	ListByUser(ctx context.Context, userID int32) ([]domain.GatewayTransaction, error)
	ListAll(ctx context.Context) ([]domain.GatewayTransaction, error)

	// Settle atomically claims the pending transaction identified by
	// reference and marks its payments paid. It returns claimed=false when
	// another settlement attempt already flipped the transaction; any failure
	// after the claim rolls the whole settlement back, leaving the
	// transaction pending.
	Settle(ctx context.Context, reference string, paymentIDs []int32, transactionFee float64, verificationData []byte) (claimed bool, err error)
}

type EventRepository interface {
	Create(ctx context.Context, event *domain.CalendarEvent) error
	Update(ctx context.Context, event *domain.CalendarEvent) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, userID int32) ([]domain.CalendarEvent, error) // userID 0 = all events (admin)
	ListRange(ctx context.Context, userID int32, start, end time.Time) ([]domain.CalendarEvent, error)
	ListUpcoming(ctx context.Context, userID int32, days int, limit int) ([]domain.CalendarEvent, error)
	ListPaymentsWithoutEvent(ctx context.Context) ([]domain.Payment, error)
}

type MaintenanceRepository interface {
	Create(ctx context.Context, req *domain.MaintenanceRequest) error
	GetByID(ctx context.Context, id int32, userID int32) (*domain.MaintenanceRequest, error) // userID 0 = unscoped (admin)
	List(ctx context.Context, userID int32) ([]domain.MaintenanceRequest, error)
	UpdateByTenant(ctx context.Context, req *domain.MaintenanceRequest) error
	UpdateByAdmin(ctx context.Context, id int32, update *domain.MaintenanceUpdate) error
	Delete(ctx context.Context, id int32, userID int32) error
	Stats(ctx context.Context) (*domain.MaintenanceStats, error)

	CreateAttachment(ctx context.Context, att *domain.MaintenanceAttachment) error
	GetAttachment(ctx context.Context, id int32) (*domain.MaintenanceAttachment, error)
	ListAttachments(ctx context.Context, requestID int32) ([]domain.MaintenanceAttachment, error)
}
