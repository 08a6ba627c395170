package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tenantportal-backend/internal/domain"
	"tenantportal-backend/internal/logger"
	"tenantportal-backend/internal/repository"
)

const upcomingEventLimit = 10

type calendarService struct {
	eventRepo repository.EventRepository
}

func NewCalendarService(eventRepo repository.EventRepository) CalendarService {
	return &calendarService{eventRepo: eventRepo}
}

func (s *calendarService) CreateEvent(ctx context.Context, event *domain.CalendarEvent) error {
	if err := validateEvent(event); err != nil {
		return err
	}
	return s.eventRepo.Create(ctx, event)
}

func (s *calendarService) UpdateEvent(ctx context.Context, event *domain.CalendarEvent) error {
	if err := validateEvent(event); err != nil {
		return err
	}
	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *calendarService) DeleteEvent(ctx context.Context, id int32) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *calendarService) ListEvents(ctx context.Context, userID int32) ([]domain.CalendarEvent, error) {
	return s.eventRepo.List(ctx, userID)
}

func (s *calendarService) ListRange(ctx context.Context, userID int32, start, end time.Time) ([]domain.CalendarEvent, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end must be after start", ErrValidation)
	}
	return s.eventRepo.ListRange(ctx, userID, start, end)
}

func (s *calendarService) ListUpcoming(ctx context.Context, userID int32, days int) ([]domain.CalendarEvent, error) {
	if days <= 0 {
		days = 7
	}
	return s.eventRepo.ListUpcoming(ctx, userID, days, upcomingEventLimit)
}

// SyncPaymentEvents creates a payment-due calendar entry for every pending
// payment that does not have one yet.
func (s *calendarService) SyncPaymentEvents(ctx context.Context) (int, error) {
	payments, err := s.eventRepo.ListPaymentsWithoutEvent(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for i := range payments {
		p := payments[i]
		userID := p.UserID
		propertyID := p.PropertyID
		event := &domain.CalendarEvent{
			Title:       fmt.Sprintf("Rent due: %s", p.PropertyName),
			Description: fmt.Sprintf("Rent payment of %.2f due for %s", p.Amount, p.PropertyName),
			StartDate:   p.DueDate,
			EndDate:     p.DueDate.Add(time.Hour),
			EventType:   domain.EventTypePayment,
			UserID:      &userID,
			PropertyID:  &propertyID,
			Status:      domain.EventStatusScheduled,
		}
		if err := s.eventRepo.Create(ctx, event); err != nil {
			return created, err
		}
		created++
	}

	logger.Info("Payment events synced", "created", created)
	return created, nil
}

func validateEvent(event *domain.CalendarEvent) error {
	if event.Title == "" {
		return fmt.Errorf("%w: event title is required", ErrValidation)
	}
	if !event.EndDate.After(event.StartDate) {
		return fmt.Errorf("%w: event end must be after its start", ErrValidation)
	}
	switch event.EventType {
	case domain.EventTypePayment, domain.EventTypeMaintenance, domain.EventTypeInspection, domain.EventTypeGeneral:
	default:
		return fmt.Errorf("%w: unknown event type %q", ErrValidation, event.EventType)
	}
	return nil
}
