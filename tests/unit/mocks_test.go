package unit

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"tenantportal-backend/internal/domain"
	"tenantportal-backend/internal/gateway"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) EmailTakenByOther(ctx context.Context, email string, userID int32) (bool, error) {
	args := m.Called(ctx, email, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) UpdateTenant(ctx context.Context, tenant *domain.User) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}
func (m *MockUserRepo) DeleteTenant(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockUserRepo) ListTenants(ctx context.Context) ([]domain.TenantOverview, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.TenantOverview), args.Error(1)
}
func (m *MockUserRepo) DashboardRows(ctx context.Context) ([]domain.TenantOverview, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.TenantOverview), args.Error(1)
}

// MockPropertyRepo
type MockPropertyRepo struct {
	mock.Mock
}

func (m *MockPropertyRepo) Create(ctx context.Context, property *domain.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}
func (m *MockPropertyRepo) UpdateRent(ctx context.Context, id int32, rentAmount float64) error {
	args := m.Called(ctx, id, rentAmount)
	return args.Error(0)
}
func (m *MockPropertyRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPropertyRepo) List(ctx context.Context) ([]domain.Property, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Property), args.Error(1)
}

// MockLeaseRepo
type MockLeaseRepo struct {
	mock.Mock
}

func (m *MockLeaseRepo) Create(ctx context.Context, lease *domain.Lease) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}
func (m *MockLeaseRepo) GetActiveByUser(ctx context.Context, userID int32) (*domain.Lease, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lease), args.Error(1)
}
func (m *MockLeaseRepo) HasActiveLease(ctx context.Context, userID, propertyID int32) (bool, error) {
	args := m.Called(ctx, userID, propertyID)
	return args.Bool(0), args.Error(1)
}
func (m *MockLeaseRepo) ListActiveLeaseholders(ctx context.Context) ([]domain.ActiveLeaseholder, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ActiveLeaseholder), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentRepo) Exists(ctx context.Context, userID, propertyID int32, dueDate time.Time) (bool, error) {
	args := m.Called(ctx, userID, propertyID, dueDate)
	return args.Bool(0), args.Error(1)
}
func (m *MockPaymentRepo) MarkPaid(ctx context.Context, id int32, reference string) error {
	args := m.Called(ctx, id, reference)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetForReceipt(ctx context.Context, id int32) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListPendingByIDs(ctx context.Context, ids []int32, userID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, ids, userID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListByUser(ctx context.Context, userID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListAll(ctx context.Context) ([]domain.Payment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListOverdue(ctx context.Context, userID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListPendingNotDue(ctx context.Context, userID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListUpcoming(ctx context.Context, daysAhead int) ([]domain.UpcomingPayment, error) {
	args := m.Called(ctx, daysAhead)
	return args.Get(0).([]domain.UpcomingPayment), args.Error(1)
}
func (m *MockPaymentRepo) Stats(ctx context.Context) (*domain.PaymentStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentStats), args.Error(1)
}

// MockTransactionRepo
type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) Create(ctx context.Context, tx *domain.GatewayTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockTransactionRepo) GetByReference(ctx context.Context, reference string, userID int32) (*domain.GatewayTransaction, error) {
	args := m.Called(ctx, reference, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GatewayTransaction), args.Error(1)
}
func (m *MockTransactionRepo) ListByUser(ctx context.Context, userID int32) ([]domain.GatewayTransaction, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.GatewayTransaction), args.Error(1)
}
func (m *MockTransactionRepo) ListAll(ctx context.Context) ([]domain.GatewayTransaction, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.GatewayTransaction), args.Error(1)
}
func (m *MockTransactionRepo) Settle(ctx context.Context, reference string, paymentIDs []int32, transactionFee float64, verificationData []byte) (bool, error) {
	args := m.Called(ctx, reference, paymentIDs, transactionFee, verificationData)
	return args.Bool(0), args.Error(1)
}

// MockEventRepo
type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) Create(ctx context.Context, event *domain.CalendarEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockEventRepo) Update(ctx context.Context, event *domain.CalendarEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockEventRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEventRepo) List(ctx context.Context, userID int32) ([]domain.CalendarEvent, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.CalendarEvent), args.Error(1)
}
func (m *MockEventRepo) ListRange(ctx context.Context, userID int32, start, end time.Time) ([]domain.CalendarEvent, error) {
	args := m.Called(ctx, userID, start, end)
	return args.Get(0).([]domain.CalendarEvent), args.Error(1)
}
func (m *MockEventRepo) ListUpcoming(ctx context.Context, userID int32, days int, limit int) ([]domain.CalendarEvent, error) {
	args := m.Called(ctx, userID, days, limit)
	return args.Get(0).([]domain.CalendarEvent), args.Error(1)
}
func (m *MockEventRepo) ListPaymentsWithoutEvent(ctx context.Context) ([]domain.Payment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

// MockMaintenanceRepo
type MockMaintenanceRepo struct {
	mock.Mock
}

func (m *MockMaintenanceRepo) Create(ctx context.Context, req *domain.MaintenanceRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockMaintenanceRepo) GetByID(ctx context.Context, id int32, userID int32) (*domain.MaintenanceRequest, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MaintenanceRequest), args.Error(1)
}
func (m *MockMaintenanceRepo) List(ctx context.Context, userID int32) ([]domain.MaintenanceRequest, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.MaintenanceRequest), args.Error(1)
}
func (m *MockMaintenanceRepo) UpdateByTenant(ctx context.Context, req *domain.MaintenanceRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockMaintenanceRepo) UpdateByAdmin(ctx context.Context, id int32, update *domain.MaintenanceUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}
func (m *MockMaintenanceRepo) Delete(ctx context.Context, id int32, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
func (m *MockMaintenanceRepo) Stats(ctx context.Context) (*domain.MaintenanceStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MaintenanceStats), args.Error(1)
}
func (m *MockMaintenanceRepo) CreateAttachment(ctx context.Context, att *domain.MaintenanceAttachment) error {
	args := m.Called(ctx, att)
	return args.Error(0)
}
func (m *MockMaintenanceRepo) GetAttachment(ctx context.Context, id int32) (*domain.MaintenanceAttachment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MaintenanceAttachment), args.Error(1)
}
func (m *MockMaintenanceRepo) ListAttachments(ctx context.Context, requestID int32) ([]domain.MaintenanceAttachment, error) {
	args := m.Called(ctx, requestID)
	return args.Get(0).([]domain.MaintenanceAttachment), args.Error(1)
}

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) InitializeTransaction(ctx context.Context, req *gateway.InitializeRequest) (*gateway.InitializeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.InitializeResult), args.Error(1)
}
func (m *MockGateway) VerifyTransaction(ctx context.Context, reference string) (*gateway.VerifyResult, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.VerifyResult), args.Error(1)
}
func (m *MockGateway) VerifyWebhookSignature(body []byte, signature string) bool {
	args := m.Called(body, signature)
	return args.Bool(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendWelcome(toEmail, name string) error {
	args := m.Called(toEmail, name)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentReceived(toEmail, name string, amount float64, propertyName, reference string) error {
	args := m.Called(toEmail, name, amount, propertyName, reference)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentReminder(toEmail, name string, amount float64, dueDate time.Time, propertyName string) error {
	args := m.Called(toEmail, name, amount, dueDate, propertyName)
	return args.Error(0)
}
func (m *MockEmailService) SendOverdueNotice(toEmail, name string, amount, lateFee, total float64, dueDate time.Time, propertyName string) error {
	args := m.Called(toEmail, name, amount, lateFee, total, dueDate, propertyName)
	return args.Error(0)
}
func (m *MockEmailService) SendArrearsSummary(toEmail, name string, overdue []domain.OverduePayment, total float64) error {
	args := m.Called(toEmail, name, overdue, total)
	return args.Error(0)
}
