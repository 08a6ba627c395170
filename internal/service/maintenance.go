package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"tenantportal-backend/internal/domain"
	"tenantportal-backend/internal/logger"
	"tenantportal-backend/internal/repository"
	"tenantportal-backend/internal/storage"
)

type maintenanceService struct {
	maintRepo    repository.MaintenanceRepository
	leaseRepo    repository.LeaseRepository
	eventRepo    repository.EventRepository
	storage      storage.StorageService
	allowedTypes map[string]struct{}
}

func NewMaintenanceService(
	maintRepo repository.MaintenanceRepository,
	leaseRepo repository.LeaseRepository,
	eventRepo repository.EventRepository,
	storageSvc storage.StorageService,
	allowedTypes []string,
) MaintenanceService {
	allowed := make(map[string]struct{}, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[t] = struct{}{}
	}
	return &maintenanceService{
		maintRepo:    maintRepo,
		leaseRepo:    leaseRepo,
		eventRepo:    eventRepo,
		storage:      storageSvc,
		allowedTypes: allowed,
	}
}

func (s *maintenanceService) CreateRequest(ctx context.Context, req *domain.MaintenanceRequest) (*domain.MaintenanceRequest, error) {
	if req.Title == "" || req.Description == "" {
		return nil, fmt.Errorf("%w: title and description are required", ErrValidation)
	}
	switch req.Priority {
	case "", domain.MaintenancePriorityUrgent, domain.MaintenancePriorityHigh,
		domain.MaintenancePriorityMedium, domain.MaintenancePriorityLow:
	default:
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, req.Priority)
	}

	// Tenants can only raise requests against a property they lease.
	hasLease, err := s.leaseRepo.HasActiveLease(ctx, req.UserID, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if !hasLease {
		return nil, ErrForbidden
	}

	if err := s.maintRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	// Block out a provisional visit slot; scheduling failure is not fatal.
	userID := req.UserID
	propertyID := req.PropertyID
	start := time.Now().Add(24 * time.Hour)
	event := &domain.CalendarEvent{
		Title:       fmt.Sprintf("Maintenance: %s", req.Title),
		Description: req.Description,
		StartDate:   start,
		EndDate:     start.Add(2 * time.Hour),
		EventType:   domain.EventTypeMaintenance,
		UserID:      &userID,
		PropertyID:  &propertyID,
		CreatedBy:   req.UserID,
		Status:      domain.EventStatusScheduled,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		logger.Warn("Failed to create maintenance calendar event", "request_id", req.ID, "error", err)
	}

	logger.Info("Maintenance request created", "request_id", req.ID, "tenant_id", req.UserID, "priority", req.Priority)
	return req, nil
}

func (s *maintenanceService) GetRequest(ctx context.Context, id, userID int32) (*domain.MaintenanceRequest, error) {
	req, err := s.maintRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (s *maintenanceService) ListRequests(ctx context.Context, userID int32) ([]domain.MaintenanceRequest, error) {
	return s.maintRepo.List(ctx, userID)
}

func (s *maintenanceService) UpdateByTenant(ctx context.Context, userID, id int32, title, description string, priority domain.MaintenancePriority) error {
	if title == "" || description == "" {
		return fmt.Errorf("%w: title and description are required", ErrValidation)
	}
	req := &domain.MaintenanceRequest{
		ID:          id,
		UserID:      userID,
		Title:       title,
		Description: description,
		Priority:    priority,
	}
	if err := s.maintRepo.UpdateByTenant(ctx, req); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *maintenanceService) UpdateByAdmin(ctx context.Context, id int32, update *domain.MaintenanceUpdate) error {
	if update.Status != nil {
		switch *update.Status {
		case domain.MaintenanceStatusPending, domain.MaintenanceStatusAssigned,
			domain.MaintenanceStatusInProgress, domain.MaintenanceStatusCompleted,
			domain.MaintenanceStatusCancelled:
		default:
			return fmt.Errorf("%w: unknown status %q", ErrValidation, *update.Status)
		}
	}
	if err := s.maintRepo.UpdateByAdmin(ctx, id, update); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *maintenanceService) DeleteRequest(ctx context.Context, id, userID int32) error {
	if err := s.maintRepo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *maintenanceService) Stats(ctx context.Context) (*domain.MaintenanceStats, error) {
	return s.maintRepo.Stats(ctx)
}

func (s *maintenanceService) UploadAttachment(ctx context.Context, requestID, userID int32, fileName, contentType string, r io.Reader) (*domain.MaintenanceAttachment, error) {
	if _, ok := s.allowedTypes[contentType]; !ok {
		return nil, fmt.Errorf("%w: file type %q is not allowed", ErrValidation, contentType)
	}

	// The scoped lookup doubles as the access check.
	if _, err := s.GetRequest(ctx, requestID, userID); err != nil {
		return nil, err
	}

	key, size, err := s.storage.Save(fileName, r)
	if err != nil {
		return nil, err
	}

	att := &domain.MaintenanceAttachment{
		RequestID:   requestID,
		FileName:    fileName,
		StorageKey:  key,
		ContentType: contentType,
		SizeBytes:   size,
	}
	if err := s.maintRepo.CreateAttachment(ctx, att); err != nil {
		if delErr := s.storage.Delete(key); delErr != nil {
			logger.Warn("Failed to remove orphaned attachment file", "key", key, "error", delErr)
		}
		return nil, err
	}
	return att, nil
}

func (s *maintenanceService) OpenAttachment(ctx context.Context, attachmentID, userID int32) (*domain.MaintenanceAttachment, io.ReadCloser, error) {
	att, err := s.maintRepo.GetAttachment(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if _, err := s.GetRequest(ctx, att.RequestID, userID); err != nil {
		return nil, nil, err
	}

	reader, err := s.storage.Open(att.StorageKey)
	if err != nil {
		return nil, nil, err
	}
	return att, reader, nil
}

func (s *maintenanceService) ListAttachments(ctx context.Context, requestID, userID int32) ([]domain.MaintenanceAttachment, error) {
	if _, err := s.GetRequest(ctx, requestID, userID); err != nil {
		return nil, err
	}
	return s.maintRepo.ListAttachments(ctx, requestID)
}
