package unit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tenantportal-backend/internal/domain"
	"tenantportal-backend/internal/service"
)

func TestMyPayments(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepo)
	leaseRepo := new(MockLeaseRepo)
	paymentRepo := new(MockPaymentRepo)
	svc := service.NewTenantService(userRepo, leaseRepo, paymentRepo)

	paid := pendingPayment(1, 100000, -30)
	paid.Status = domain.PaymentStatusPaid
	paymentRepo.On("ListByUser", ctx, int32(7)).Return([]domain.Payment{
		overduePayment(2, 100000, 10),
		pendingPayment(3, 50000, 5),
		paid,
	}, nil).Once()

	history, err := svc.MyPayments(ctx, 7)
	require.NoError(t, err)
	require.Len(t, history, 3)

	assert.True(t, history[0].IsOverdue)
	assert.Equal(t, int32(10), history[0].DaysOverdue)
	assert.False(t, history[1].IsOverdue)
	// Paid payments are never overdue, whatever their due date.
	assert.False(t, history[2].IsOverdue)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	existing := func(t *testing.T) *domain.User {
		return &domain.User{
			ID:           7,
			Name:         "Ada",
			Email:        "ada@example.com",
			PasswordHash: hashPassword(t, "hunter22"),
		}
	}

	t.Run("changes the password when the current one checks out", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewTenantService(userRepo, new(MockLeaseRepo), new(MockPaymentRepo))

		userRepo.On("GetByID", ctx, int32(7)).Return(existing(t), nil).Once()
		userRepo.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("n3wpass99")) == nil
		})).Return(nil).Once()

		_, err := svc.UpdateProfile(ctx, 7, &service.ProfileUpdate{
			Name:            "Ada",
			Email:           "ada@example.com",
			CurrentPassword: "hunter22",
			NewPassword:     "n3wpass99",
		})
		require.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("refuses a password change without the current password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewTenantService(userRepo, new(MockLeaseRepo), new(MockPaymentRepo))

		userRepo.On("GetByID", ctx, int32(7)).Return(existing(t), nil).Once()

		_, err := svc.UpdateProfile(ctx, 7, &service.ProfileUpdate{
			Name:            "Ada",
			Email:           "ada@example.com",
			CurrentPassword: "wrong",
			NewPassword:     "n3wpass99",
		})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("refuses an email already taken by another account", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewTenantService(userRepo, new(MockLeaseRepo), new(MockPaymentRepo))

		userRepo.On("GetByID", ctx, int32(7)).Return(existing(t), nil).Once()
		userRepo.On("EmailTakenByOther", ctx, "grace@example.com", int32(7)).Return(true, nil).Once()

		_, err := svc.UpdateProfile(ctx, 7, &service.ProfileUpdate{
			Name:  "Ada",
			Email: "grace@example.com",
		})
		assert.ErrorIs(t, err, service.ErrEmailTaken)
	})
}
