package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tenantportal-backend/internal/domain"
	"tenantportal-backend/internal/logger"
	"tenantportal-backend/internal/repository"
)

type adminService struct {
	userRepo     repository.UserRepository
	propertyRepo repository.PropertyRepository
	leaseRepo    repository.LeaseRepository
	paymentRepo  repository.PaymentRepository
	emailSvc     EmailService
}

func NewAdminService(
	userRepo repository.UserRepository,
	propertyRepo repository.PropertyRepository,
	leaseRepo repository.LeaseRepository,
	paymentRepo repository.PaymentRepository,
	emailSvc EmailService,
) AdminService {
	return &adminService{
		userRepo:     userRepo,
		propertyRepo: propertyRepo,
		leaseRepo:    leaseRepo,
		paymentRepo:  paymentRepo,
		emailSvc:     emailSvc,
	}
}

func (s *adminService) Dashboard(ctx context.Context) ([]domain.TenantOverview, error) {
	return s.userRepo.DashboardRows(ctx)
}

func (s *adminService) CreateTenant(ctx context.Context, name, email, phone, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	tenant := &domain.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         domain.UserRoleTenant,
	}
	if err := s.userRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	// Welcome email is best effort; account creation already succeeded.
	if err := s.emailSvc.SendWelcome(tenant.Email, tenant.Name); err != nil {
		logger.Warn("Failed to send welcome email", "user_id", tenant.ID, "error", err)
	}
	return tenant, nil
}

func (s *adminService) UpdateTenant(ctx context.Context, id int32, name, email, phone, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return fmt.Errorf("%w: name and email are required", ErrValidation)
	}

	taken, err := s.userRepo.EmailTakenByOther(ctx, email, id)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}

	tenant := &domain.User{
		ID:    id,
		Name:  name,
		Email: email,
		Phone: phone,
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		tenant.PasswordHash = string(hash)
	}

	if err := s.userRepo.UpdateTenant(ctx, tenant); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *adminService) DeleteTenant(ctx context.Context, id int32) error {
	if err := s.userRepo.DeleteTenant(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *adminService) ListTenants(ctx context.Context) ([]domain.TenantOverview, error) {
	return s.userRepo.ListTenants(ctx)
}

func (s *adminService) CreateProperty(ctx context.Context, property *domain.Property) error {
	if property.Name == "" || property.RentAmount <= 0 {
		return fmt.Errorf("%w: property name and a positive rent amount are required", ErrValidation)
	}
	return s.propertyRepo.Create(ctx, property)
}

func (s *adminService) UpdatePropertyRent(ctx context.Context, id int32, rentAmount float64) error {
	if rentAmount <= 0 {
		return fmt.Errorf("%w: rent amount must be positive", ErrValidation)
	}
	if err := s.propertyRepo.UpdateRent(ctx, id, rentAmount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *adminService) DeleteProperty(ctx context.Context, id int32) error {
	if err := s.propertyRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *adminService) ListProperties(ctx context.Context) ([]domain.Property, error) {
	return s.propertyRepo.List(ctx)
}

func (s *adminService) CreateLease(ctx context.Context, lease *domain.Lease) error {
	if lease.UserID == 0 || lease.PropertyID == 0 {
		return fmt.Errorf("%w: tenant and property are required", ErrValidation)
	}
	if !lease.EndDate.After(lease.StartDate) {
		return fmt.Errorf("%w: lease end date must be after the start date", ErrValidation)
	}
	if lease.Status == "" {
		lease.Status = domain.LeaseStatusActive
	}
	return s.leaseRepo.Create(ctx, lease)
}

func (s *adminService) CreatePayment(ctx context.Context, payment *domain.Payment) error {
	if payment.UserID == 0 || payment.PropertyID == 0 {
		return fmt.Errorf("%w: tenant and property are required", ErrValidation)
	}
	if payment.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	payment.Status = domain.PaymentStatusPending
	return s.paymentRepo.Create(ctx, payment)
}

func (s *adminService) MarkPaymentPaid(ctx context.Context, id int32) error {
	reference := fmt.Sprintf("MANUAL_%d", time.Now().UnixMilli())
	if err := s.paymentRepo.MarkPaid(ctx, id, reference); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	payment, err := s.paymentRepo.GetForReceipt(ctx, id)
	if err != nil {
		logger.Warn("Payment marked paid but receipt lookup failed", "payment_id", id, "error", err)
		return nil
	}
	if err := s.emailSvc.SendPaymentReceived(payment.TenantEmail, payment.TenantName,
		payment.Amount, payment.PropertyName, reference); err != nil {
		logger.Warn("Failed to send payment confirmation", "payment_id", id, "error", err)
	}
	return nil
}

func (s *adminService) ListPayments(ctx context.Context) ([]domain.PaymentHistoryEntry, error) {
	payments, err := s.paymentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return annotateHistory(payments, time.Now()), nil
}

func (s *adminService) UpcomingPayments(ctx context.Context, daysAhead int) ([]domain.UpcomingPayment, error) {
	if daysAhead <= 0 {
		daysAhead = 7
	}
	return s.paymentRepo.ListUpcoming(ctx, daysAhead)
}

func (s *adminService) PaymentStats(ctx context.Context) (*domain.PaymentStats, error) {
	return s.paymentRepo.Stats(ctx)
}

// GenerateRecurringPayments creates next month's rent charge for every active
// lease, skipping tenants that already have one for that due date.
func (s *adminService) GenerateRecurringPayments(ctx context.Context) (int, int, error) {
	leaseholders, err := s.leaseRepo.ListActiveLeaseholders(ctx)
	if err != nil {
		return 0, 0, err
	}

	now := time.Now()
	dueDate := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)

	created, skipped := 0, 0
	for _, lh := range leaseholders {
		exists, err := s.paymentRepo.Exists(ctx, lh.UserID, lh.PropertyID, dueDate)
		if err != nil {
			return created, skipped, err
		}
		if exists {
			skipped++
			continue
		}
		payment := &domain.Payment{
			UserID:     lh.UserID,
			PropertyID: lh.PropertyID,
			Amount:     lh.RentAmount,
			DueDate:    dueDate,
			Status:     domain.PaymentStatusPending,
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return created, skipped, err
		}
		created++
	}

	logger.Info("Recurring payments generated", "due_date", dueDate.Format("2006-01-02"), "created", created, "skipped", skipped)
	return created, skipped, nil
}
