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
	"tenantportal-backend/internal/repository"
)

type tenantService struct {
	userRepo    repository.UserRepository
	leaseRepo   repository.LeaseRepository
	paymentRepo repository.PaymentRepository
}

func NewTenantService(
	userRepo repository.UserRepository,
	leaseRepo repository.LeaseRepository,
	paymentRepo repository.PaymentRepository,
) TenantService {
	return &tenantService{
		userRepo:    userRepo,
		leaseRepo:   leaseRepo,
		paymentRepo: paymentRepo,
	}
}

func (s *tenantService) MyPayments(ctx context.Context, userID int32) ([]domain.PaymentHistoryEntry, error) {
	payments, err := s.paymentRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return annotateHistory(payments, time.Now()), nil
}

func (s *tenantService) MyLease(ctx context.Context, userID int32) (*domain.Lease, error) {
	lease, err := s.leaseRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return lease, nil
}

func (s *tenantService) UpdateProfile(ctx context.Context, userID int32, upd *ProfileUpdate) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	name := strings.TrimSpace(upd.Name)
	email := strings.ToLower(strings.TrimSpace(upd.Email))
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrValidation)
	}

	if email != user.Email {
		taken, err := s.userRepo.EmailTakenByOther(ctx, email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}

	user.Name = name
	user.Email = email
	user.Phone = upd.Phone

	// A password change requires proving knowledge of the current one.
	if upd.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(upd.CurrentPassword)); err != nil {
			return nil, ErrInvalidCredentials
		}
		if len(upd.NewPassword) < 6 {
			return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(upd.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// annotateHistory marks pending payments past their due date as overdue.
func annotateHistory(payments []domain.Payment, now time.Time) []domain.PaymentHistoryEntry {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	entries := make([]domain.PaymentHistoryEntry, 0, len(payments))
	for _, p := range payments {
		entry := domain.PaymentHistoryEntry{Payment: p}
		due := time.Date(p.DueDate.Year(), p.DueDate.Month(), p.DueDate.Day(), 0, 0, 0, 0, p.DueDate.Location())
		if p.Status == domain.PaymentStatusPending && due.Before(today) {
			entry.IsOverdue = true
			entry.DaysOverdue = int32(today.Sub(due).Hours() / 24)
		}
		entries = append(entries, entry)
	}
	return entries
}
