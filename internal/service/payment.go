package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tenantportal-backend/internal/domain"
	"tenantportal-backend/internal/gateway"
	"tenantportal-backend/internal/logger"
	"tenantportal-backend/internal/repository"
	"tenantportal-backend/internal/utils"
)

type paymentService struct {
	paymentRepo repository.PaymentRepository
	txRepo      repository.TransactionRepository
	userRepo    repository.UserRepository
	gateway     gateway.PaymentGateway
	emailSvc    EmailService
	callbackURL string
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	txRepo repository.TransactionRepository,
	userRepo repository.UserRepository,
	gw gateway.PaymentGateway,
	emailSvc EmailService,
	callbackURL string,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		txRepo:      txRepo,
		userRepo:    userRepo,
		gateway:     gw,
		emailSvc:    emailSvc,
		callbackURL: callbackURL,
	}
}

// ValidateBatch fetches the tenant's payable payments from the requested set
// and recomputes the total due, late fees included. IDs that are not the
// tenant's, or no longer pending, are dropped rather than rejected. A claimed
// total more than 0.01 away from the recomputed one is a mismatch.
func (s *paymentService) ValidateBatch(ctx context.Context, tenantID int32, paymentIDs []int32, claimedTotal float64) ([]domain.Payment, float64, error) {
	if len(paymentIDs) == 0 {
		return nil, 0, fmt.Errorf("%w: no payments selected", ErrValidation)
	}

	payments, err := s.paymentRepo.ListPendingByIDs(ctx, paymentIDs, tenantID)
	if err != nil {
		return nil, 0, err
	}
	if len(payments) == 0 {
		return nil, 0, fmt.Errorf("%w: no payable payments in the selection", ErrNotFound)
	}
	// The fetch dedups repeated ids, so count distinct requests.
	unique := make(map[int32]struct{}, len(paymentIDs))
	for _, id := range paymentIDs {
		unique[id] = struct{}{}
	}
	if dropped := len(unique) - len(payments); dropped > 0 {
		logger.Warn("Dropped unpayable payment ids from batch",
			"tenant_id", tenantID, "requested", len(unique), "dropped", dropped)
	}

	now := time.Now()
	var total float64
	for _, p := range payments {
		total += utils.TotalDue(p.Amount, p.DueDate, now)
	}
	total = utils.Round2(total)

	diff := total - claimedTotal
	if diff < 0 {
		diff = -diff
	}
	if diff > utils.AmountEpsilon {
		return nil, 0, &AmountMismatchError{
			Claimed:    claimedTotal,
			Computed:   total,
			Difference: utils.Round2(diff),
		}
	}
	return payments, total, nil
}

func (s *paymentService) InitiateTransaction(ctx context.Context, tenantID int32, paymentIDs []int32, claimedTotal float64) (*InitiationResult, error) {
	user, err := s.userRepo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	payments, total, err := s.ValidateBatch(ctx, tenantID, paymentIDs, claimedTotal)
	if err != nil {
		return nil, err
	}

	ids := make([]int32, 0, len(payments))
	for _, p := range payments {
		ids = append(ids, p.ID)
	}
	reference := fmt.Sprintf("TM_%d_%d", time.Now().UnixMilli(), tenantID)

	result, err := s.gateway.InitializeTransaction(ctx, &gateway.InitializeRequest{
		Email:       user.Email,
		Amount:      utils.ToMinorUnits(total),
		Reference:   reference,
		CallbackURL: s.callbackURL,
		Metadata: map[string]interface{}{
			"payment_ids": ids,
			"user_id":     tenantID,
		},
	})
	if err != nil {
		// Nothing was persisted; the tenant can simply retry.
		return nil, &GatewayError{Operation: "initialize", Err: err}
	}

	tx := &domain.GatewayTransaction{
		Reference:   reference,
		UserID:      tenantID,
		Amount:      total,
		PaymentIDs:  ids,
		Status:      domain.TransactionStatusPending,
		GatewayData: result.Raw,
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Gateway transaction initiated",
		"reference", reference, "tenant_id", tenantID, "amount", total, "payments", len(ids))
	return &InitiationResult{
		AuthorizationURL: result.AuthorizationURL,
		AccessCode:       result.AccessCode,
		Reference:        reference,
		Amount:           total,
		PaymentIDs:       ids,
	}, nil
}

func (s *paymentService) SettleTransaction(ctx context.Context, reference string, tenantID int32) (*SettlementResult, error) {
	tx, err := s.txRepo.GetByReference(ctx, reference, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if tx.Status == domain.TransactionStatusCompleted {
		return &SettlementResult{AlreadyProcessed: true, Transaction: tx}, nil
	}

	verification, err := s.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		return nil, &GatewayError{Operation: "verify", Err: err}
	}
	if !verification.Success() {
		logger.Info("Gateway reported non-success status",
			"reference", reference, "status", verification.Status)
		return &SettlementResult{GatewayStatus: verification.Status, Transaction: tx}, nil
	}

	if expected := utils.ToMinorUnits(tx.Amount); verification.Amount != expected {
		logger.Warn("Gateway amount differs from initiated amount",
			"reference", reference, "expected", expected, "reported", verification.Amount)
	}

	fee := utils.FromMinorUnits(verification.Fees)
	claimed, err := s.txRepo.Settle(ctx, reference, tx.PaymentIDs, fee, verification.Raw)
	if err != nil {
		return nil, err
	}
	if !claimed {
		// A concurrent verify or webhook got there first.
		return &SettlementResult{AlreadyProcessed: true, Transaction: tx}, nil
	}

	now := time.Now()
	tx.Status = domain.TransactionStatusCompleted
	tx.VerifiedAt = &now

	// The claim winner sends the single confirmation email.
	s.sendSettlementReceipt(ctx, tx, reference)

	logger.Info("Transaction settled",
		"reference", reference, "tenant_id", tx.UserID, "amount", tx.Amount, "payments", len(tx.PaymentIDs))
	return &SettlementResult{Settled: true, GatewayStatus: verification.Status, Transaction: tx}, nil
}

func (s *paymentService) sendSettlementReceipt(ctx context.Context, tx *domain.GatewayTransaction, reference string) {
	user, err := s.userRepo.GetByID(ctx, tx.UserID)
	if err != nil {
		logger.Warn("Settled but could not load tenant for receipt", "reference", reference, "error", err)
		return
	}
	propertyName := "your rental"
	if len(tx.PaymentIDs) > 0 {
		if p, err := s.paymentRepo.GetForReceipt(ctx, tx.PaymentIDs[0]); err == nil {
			propertyName = p.PropertyName
		}
	}
	if err := s.emailSvc.SendPaymentReceived(user.Email, user.Name, tx.Amount, propertyName, reference); err != nil {
		logger.Warn("Failed to send payment confirmation", "reference", reference, "error", err)
	}
}

func (s *paymentService) HandleWebhookEvent(ctx context.Context, event, reference string) error {
	if event != "charge.success" {
		logger.Debug("Ignoring webhook event", "event", event, "reference", reference)
		return nil
	}
	result, err := s.SettleTransaction(ctx, reference, 0)
	if err != nil {
		// An unknown reference is not retryable; acknowledge and move on.
		if errors.Is(err, ErrNotFound) {
			logger.Warn("Webhook for unknown reference", "event", event, "reference", reference)
			return nil
		}
		return err
	}
	if result.AlreadyProcessed {
		logger.Debug("Webhook for already settled transaction", "reference", reference)
	}
	return nil
}

func (s *paymentService) GetTransaction(ctx context.Context, reference string, tenantID int32) (*domain.GatewayTransaction, error) {
	tx, err := s.txRepo.GetByReference(ctx, reference, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tx, nil
}

func (s *paymentService) ListTransactions(ctx context.Context, tenantID int32) ([]domain.GatewayTransaction, error) {
	if tenantID == 0 {
		return s.txRepo.ListAll(ctx)
	}
	return s.txRepo.ListByUser(ctx, tenantID)
}

// ListOverdue annotates each overdue payment with the fee owed as of now.
// The fee is always computed here, never stored, so listings and batch
// validation can never disagree.
func (s *paymentService) ListOverdue(ctx context.Context, tenantID int32) ([]domain.OverduePayment, error) {
	payments, err := s.paymentRepo.ListOverdue(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	overdue := make([]domain.OverduePayment, 0, len(payments))
	for _, p := range payments {
		fee := utils.LateFee(p.Amount, p.DueDate, now)
		overdue = append(overdue, domain.OverduePayment{
			Payment:  p,
			LateFee:  fee,
			TotalDue: utils.Round2(p.Amount + fee),
		})
	}
	return overdue, nil
}

func (s *paymentService) ListPending(ctx context.Context, tenantID int32) ([]domain.Payment, error) {
	return s.paymentRepo.ListPendingNotDue(ctx, tenantID)
}

// SendOverdueReminders emails each tenant one summary of everything they owe,
// not one email per overdue payment.
func (s *paymentService) SendOverdueReminders(ctx context.Context) (int, int, error) {
	overdue, err := s.ListOverdue(ctx, 0)
	if err != nil {
		return 0, 0, err
	}

	byTenant := make(map[int32][]domain.OverduePayment)
	var order []int32
	for _, p := range overdue {
		if _, seen := byTenant[p.UserID]; !seen {
			order = append(order, p.UserID)
		}
		byTenant[p.UserID] = append(byTenant[p.UserID], p)
	}

	sent, failed := 0, 0
	for _, userID := range order {
		items := byTenant[userID]
		var total float64
		for _, p := range items {
			total += p.TotalDue
		}
		total = utils.Round2(total)

		if err := s.emailSvc.SendArrearsSummary(items[0].TenantEmail, items[0].TenantName, items, total); err != nil {
			logger.Warn("Failed to send arrears summary", "tenant_id", userID, "error", err)
			failed++
			continue
		}
		sent++
	}

	logger.Info("Overdue reminders dispatched", "tenants", len(order), "sent", sent, "failed", failed)
	return sent, failed, nil
}

// SendOverdueNotices emails one notice per overdue payment, unlike
// SendOverdueReminders which rolls a tenant's arrears into one summary.
func (s *paymentService) SendOverdueNotices(ctx context.Context) (int, int, error) {
	overdue, err := s.ListOverdue(ctx, 0)
	if err != nil {
		return 0, 0, err
	}

	sent, failed := 0, 0
	for _, p := range overdue {
		if err := s.emailSvc.SendOverdueNotice(p.TenantEmail, p.TenantName, p.Amount, p.LateFee, p.TotalDue, p.DueDate, p.PropertyName); err != nil {
			logger.Warn("Failed to send overdue notice", "payment_id", p.ID, "error", err)
			failed++
			continue
		}
		sent++
	}

	logger.Info("Overdue notices dispatched", "overdue", len(overdue), "sent", sent, "failed", failed)
	return sent, failed, nil
}

func (s *paymentService) SendPaymentReminders(ctx context.Context, daysAhead int) (int, int, error) {
	if daysAhead <= 0 {
		daysAhead = 3
	}
	upcoming, err := s.paymentRepo.ListUpcoming(ctx, daysAhead)
	if err != nil {
		return 0, 0, err
	}

	sent, failed := 0, 0
	for _, p := range upcoming {
		if err := s.emailSvc.SendPaymentReminder(p.TenantEmail, p.TenantName, p.Amount, p.DueDate, p.PropertyName); err != nil {
			logger.Warn("Failed to send payment reminder", "payment_id", p.PaymentID, "error", err)
			failed++
			continue
		}
		sent++
	}

	logger.Info("Payment reminders dispatched", "upcoming", len(upcoming), "sent", sent, "failed", failed)
	return sent, failed, nil
}
