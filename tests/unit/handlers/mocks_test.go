package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tenantportal-backend/internal/domain"
	"tenantportal-backend/internal/service"
)

// MockPaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) ValidateBatch(ctx context.Context, tenantID int32, paymentIDs []int32, claimedTotal float64) ([]domain.Payment, float64, error) {
	args := m.Called(ctx, tenantID, paymentIDs, claimedTotal)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Payment), args.Get(1).(float64), args.Error(2)
}
func (m *MockPaymentService) InitiateTransaction(ctx context.Context, tenantID int32, paymentIDs []int32, claimedTotal float64) (*service.InitiationResult, error) {
	args := m.Called(ctx, tenantID, paymentIDs, claimedTotal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InitiationResult), args.Error(1)
}
func (m *MockPaymentService) SettleTransaction(ctx context.Context, reference string, tenantID int32) (*service.SettlementResult, error) {
	args := m.Called(ctx, reference, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SettlementResult), args.Error(1)
}
func (m *MockPaymentService) HandleWebhookEvent(ctx context.Context, event, reference string) error {
	args := m.Called(ctx, event, reference)
	return args.Error(0)
}
func (m *MockPaymentService) GetTransaction(ctx context.Context, reference string, tenantID int32) (*domain.GatewayTransaction, error) {
	args := m.Called(ctx, reference, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GatewayTransaction), args.Error(1)
}
func (m *MockPaymentService) ListTransactions(ctx context.Context, tenantID int32) ([]domain.GatewayTransaction, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]domain.GatewayTransaction), args.Error(1)
}
func (m *MockPaymentService) ListOverdue(ctx context.Context, tenantID int32) ([]domain.OverduePayment, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]domain.OverduePayment), args.Error(1)
}
func (m *MockPaymentService) ListPending(ctx context.Context, tenantID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentService) SendOverdueReminders(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}
func (m *MockPaymentService) SendOverdueNotices(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}
func (m *MockPaymentService) SendPaymentReminders(ctx context.Context, daysAhead int) (int, int, error) {
	args := m.Called(ctx, daysAhead)
	return args.Int(0), args.Int(1), args.Error(2)
}
