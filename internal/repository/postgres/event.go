package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tenantportal-backend/internal/domain"
	"tenantportal-backend/internal/repository"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `ce.id, ce.title, COALESCE(ce.description, ''), ce.start_date, ce.end_date,
	ce.event_type, ce.user_id, ce.property_id, ce.created_by, ce.status, ce.created_at,
	COALESCE(u.name, ''), COALESCE(p.name, '')`

const eventJoins = ` FROM calendar_events ce
	LEFT JOIN users u ON ce.user_id = u.id
	LEFT JOIN properties p ON ce.property_id = p.id`

func (r *eventRepository) Create(ctx context.Context, e *domain.CalendarEvent) error {
	query := `INSERT INTO calendar_events
	          (title, description, start_date, end_date, event_type, user_id, property_id, created_by, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	if e.Status == "" {
		e.Status = domain.EventStatusScheduled
	}
	return r.db.QueryRowContext(ctx, query,
		e.Title, e.Description, e.StartDate, e.EndDate, e.EventType, e.UserID, e.PropertyID, e.CreatedBy, e.Status, time.Now()).Scan(&e.ID)
}

func (r *eventRepository) Update(ctx context.Context, e *domain.CalendarEvent) error {
	query := `UPDATE calendar_events
	          SET title = $1, description = $2, start_date = $3, end_date = $4,
	              event_type = $5, user_id = $6, property_id = $7, status = $8
	          WHERE id = $9`
	result, err := r.db.ExecContext(ctx, query,
		e.Title, e.Description, e.StartDate, e.EndDate, e.EventType, e.UserID, e.PropertyID, e.Status, e.ID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id int32) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM calendar_events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns all events for admins (userID 0), or a tenant's own events
// plus global events (user_id IS NULL).
func (r *eventRepository) List(ctx context.Context, userID int32) ([]domain.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + eventJoins
	args := []interface{}{}
	if userID != 0 {
		query += ` WHERE ce.user_id = $1 OR ce.user_id IS NULL`
		args = append(args, userID)
	}
	query += ` ORDER BY ce.start_date ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *eventRepository) ListRange(ctx context.Context, userID int32, start, end time.Time) ([]domain.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + eventJoins
	var args []interface{}
	if userID != 0 {
		query += ` WHERE (ce.user_id = $1 OR ce.user_id IS NULL) AND ce.start_date >= $2 AND ce.end_date <= $3`
		args = []interface{}{userID, start, end}
	} else {
		query += ` WHERE ce.start_date >= $1 AND ce.end_date <= $2`
		args = []interface{}{start, end}
	}
	query += ` ORDER BY ce.start_date ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *eventRepository) ListUpcoming(ctx context.Context, userID int32, days int, limit int) ([]domain.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + eventJoins
	var args []interface{}
	idx := 1
	if userID != 0 {
		query += fmt.Sprintf(` WHERE (ce.user_id = $%d OR ce.user_id IS NULL)`, idx)
		args = append(args, userID)
		idx++
	} else {
		query += ` WHERE true`
	}
	query += fmt.Sprintf(` AND ce.start_date >= CURRENT_DATE
	          AND ce.start_date <= CURRENT_DATE + $%d * INTERVAL '1 day'
	          AND ce.status = 'scheduled'
	          ORDER BY ce.start_date ASC LIMIT $%d`, idx, idx+1)
	args = append(args, days, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListPaymentsWithoutEvent finds pending payments that have no matching
// payment-due calendar entry yet.
func (r *eventRepository) ListPaymentsWithoutEvent(ctx context.Context) ([]domain.Payment, error) {
	query := `SELECT p.id, p.user_id, p.property_id, p.amount, p.due_date, p.status, p.created_at,
	                 pr.name, u.name, u.email
	          FROM payments p
	          JOIN users u ON p.user_id = u.id
	          JOIN properties pr ON p.property_id = pr.id
	          WHERE p.status = 'pending'
	          AND NOT EXISTS (
	              SELECT 1 FROM calendar_events ce
	              WHERE ce.event_type = 'payment'
	              AND ce.user_id = p.user_id
	              AND ce.property_id = p.property_id
	              AND ce.start_date::date = p.due_date::date
	          )`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows, true)
}

func scanEvents(rows *sql.Rows) ([]domain.CalendarEvent, error) {
	var events []domain.CalendarEvent
	for rows.Next() {
		var e domain.CalendarEvent
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate,
			&e.EventType, &e.UserID, &e.PropertyID, &e.CreatedBy, &e.Status, &e.CreatedAt,
			&e.TenantName, &e.PropertyName); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
