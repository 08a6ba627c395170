package unit

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tenantportal-backend/internal/domain"
	"tenantportal-backend/internal/service"
)

func newAdminService(userRepo *MockUserRepo, propertyRepo *MockPropertyRepo, leaseRepo *MockLeaseRepo, paymentRepo *MockPaymentRepo, emailSvc *MockEmailService) service.AdminService {
	return service.NewAdminService(userRepo, propertyRepo, leaseRepo, paymentRepo, emailSvc)
}

func TestCreateTenant(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the tenant even when the welcome email fails", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		emailSvc := new(MockEmailService)
		svc := newAdminService(userRepo, new(MockPropertyRepo), new(MockLeaseRepo), new(MockPaymentRepo), emailSvc)

		userRepo.On("GetByEmail", ctx, "grace@example.com").Return(nil, sql.ErrNoRows).Once()
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.UserRoleTenant && u.Email == "grace@example.com"
		})).Return(nil).Once()
		emailSvc.On("SendWelcome", "grace@example.com", "Grace").
			Return(assert.AnError).Once()

		tenant, err := svc.CreateTenant(ctx, "Grace", "Grace@Example.com", "08012345678", "s3cret99")
		require.NoError(t, err)
		assert.Equal(t, "grace@example.com", tenant.Email)
		emailSvc.AssertExpectations(t)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := newAdminService(userRepo, new(MockPropertyRepo), new(MockLeaseRepo), new(MockPaymentRepo), new(MockEmailService))

		userRepo.On("GetByEmail", ctx, "ada@example.com").Return(&domain.User{ID: 7}, nil).Once()

		_, err := svc.CreateTenant(ctx, "Ada", "ada@example.com", "", "hunter22")
		assert.ErrorIs(t, err, service.ErrEmailTaken)
	})
}

func TestMarkPaymentPaid(t *testing.T) {
	ctx := context.Background()

	t.Run("records a manual reference and emails a receipt", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		emailSvc := new(MockEmailService)
		svc := newAdminService(new(MockUserRepo), new(MockPropertyRepo), new(MockLeaseRepo), paymentRepo, emailSvc)

		var reference string
		paymentRepo.On("MarkPaid", ctx, int32(5), mock.MatchedBy(func(ref string) bool {
			reference = ref
			return true
		})).Return(nil).Once()
		paymentRepo.On("GetForReceipt", ctx, int32(5)).Return(&domain.Payment{
			ID:           5,
			Amount:       50000,
			PropertyName: "Unit 4B",
			TenantName:   "Ada",
			TenantEmail:  "ada@example.com",
		}, nil).Once()
		emailSvc.On("SendPaymentReceived", "ada@example.com", "Ada", 50000.0, "Unit 4B", mock.Anything).
			Return(nil).Once()

		require.NoError(t, svc.MarkPaymentPaid(ctx, 5))
		assert.Regexp(t, `^MANUAL_\d+$`, reference)
		emailSvc.AssertExpectations(t)
	})

	t.Run("reports not found for an unknown or already paid payment", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		svc := newAdminService(new(MockUserRepo), new(MockPropertyRepo), new(MockLeaseRepo), paymentRepo, new(MockEmailService))

		paymentRepo.On("MarkPaid", ctx, int32(99), mock.Anything).Return(sql.ErrNoRows).Once()

		err := svc.MarkPaymentPaid(ctx, 99)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestGenerateRecurringPayments(t *testing.T) {
	ctx := context.Background()

	leaseRepo := new(MockLeaseRepo)
	paymentRepo := new(MockPaymentRepo)
	svc := newAdminService(new(MockUserRepo), new(MockPropertyRepo), leaseRepo, paymentRepo, new(MockEmailService))

	leaseRepo.On("ListActiveLeaseholders", ctx).Return([]domain.ActiveLeaseholder{
		{UserID: 7, PropertyID: 1, RentAmount: 100000},
		{UserID: 9, PropertyID: 2, RentAmount: 80000},
	}, nil).Once()

	now := time.Now()
	dueDate := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)

	// Tenant 7 already has next month's charge; only tenant 9 gets a new one.
	paymentRepo.On("Exists", ctx, int32(7), int32(1), dueDate).Return(true, nil).Once()
	paymentRepo.On("Exists", ctx, int32(9), int32(2), dueDate).Return(false, nil).Once()
	paymentRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.UserID == 9 && p.Amount == 80000 &&
			p.DueDate.Equal(dueDate) && p.Status == domain.PaymentStatusPending
	})).Return(nil).Once()

	created, skipped, err := svc.GenerateRecurringPayments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, skipped)
	paymentRepo.AssertExpectations(t)
}
