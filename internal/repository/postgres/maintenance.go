package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tenantportal-backend/internal/domain"
	"tenantportal-backend/internal/repository"
)

type maintenanceRepository struct {
	db *sql.DB
}

func NewMaintenanceRepository(db *sql.DB) repository.MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

const maintenanceColumns = `m.id, m.user_id, m.property_id, m.title, m.description, m.priority, m.status,
	m.scheduled_date, m.completed_date, COALESCE(m.assigned_to, ''), m.estimated_cost, m.actual_cost, m.created_at,
	u.name, u.email, COALESCE(u.phone, ''), p.name`

const maintenanceJoins = ` FROM maintenance_requests m
	JOIN users u ON m.user_id = u.id
	JOIN properties p ON m.property_id = p.id`

// Urgent requests sort first regardless of age.
const maintenanceOrder = ` ORDER BY
	CASE m.priority WHEN 'urgent' THEN 1 WHEN 'high' THEN 2 WHEN 'medium' THEN 3 ELSE 4 END,
	m.created_at DESC`

func (r *maintenanceRepository) Create(ctx context.Context, req *domain.MaintenanceRequest) error {
	query := `INSERT INTO maintenance_requests
	          (user_id, property_id, title, description, priority, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if req.Priority == "" {
		req.Priority = domain.MaintenancePriorityMedium
	}
	req.Status = domain.MaintenanceStatusPending
	req.CreatedAt = time.Now()
	return r.db.QueryRowContext(ctx, query,
		req.UserID, req.PropertyID, req.Title, req.Description, req.Priority, req.Status, req.CreatedAt).Scan(&req.ID)
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id int32, userID int32) (*domain.MaintenanceRequest, error) {
	query := `SELECT ` + maintenanceColumns + maintenanceJoins + ` WHERE m.id = $1`
	args := []interface{}{id}
	if userID != 0 {
		query += ` AND m.user_id = $2`
		args = append(args, userID)
	}

	var req domain.MaintenanceRequest
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&req.ID, &req.UserID, &req.PropertyID, &req.Title, &req.Description, &req.Priority, &req.Status,
		&req.ScheduledDate, &req.CompletedDate, &req.AssignedTo, &req.EstimatedCost, &req.ActualCost, &req.CreatedAt,
		&req.TenantName, &req.TenantEmail, &req.TenantPhone, &req.PropertyName)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *maintenanceRepository) List(ctx context.Context, userID int32) ([]domain.MaintenanceRequest, error) {
	query := `SELECT ` + maintenanceColumns + maintenanceJoins
	args := []interface{}{}
	if userID != 0 {
		query += ` WHERE m.user_id = $1`
		args = append(args, userID)
	}
	query += maintenanceOrder

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.MaintenanceRequest
	for rows.Next() {
		var req domain.MaintenanceRequest
		if err := rows.Scan(
			&req.ID, &req.UserID, &req.PropertyID, &req.Title, &req.Description, &req.Priority, &req.Status,
			&req.ScheduledDate, &req.CompletedDate, &req.AssignedTo, &req.EstimatedCost, &req.ActualCost, &req.CreatedAt,
			&req.TenantName, &req.TenantEmail, &req.TenantPhone, &req.PropertyName); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// UpdateByTenant lets a tenant edit title, description and priority of their
// own request while it is still pending.
func (r *maintenanceRepository) UpdateByTenant(ctx context.Context, req *domain.MaintenanceRequest) error {
	query := `UPDATE maintenance_requests
	          SET title = $1, description = $2, priority = $3
	          WHERE id = $4 AND user_id = $5 AND status = 'pending'`
	result, err := r.db.ExecContext(ctx, query, req.Title, req.Description, req.Priority, req.ID, req.UserID)
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

func (r *maintenanceRepository) UpdateByAdmin(ctx context.Context, id int32, update *domain.MaintenanceUpdate) error {
	set := []string{}
	args := []interface{}{}
	idx := 1

	add := func(column string, value interface{}) {
		set = append(set, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if update.Title != nil {
		add("title", *update.Title)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.Priority != nil {
		add("priority", *update.Priority)
	}
	if update.Status != nil {
		add("status", *update.Status)
		if *update.Status == domain.MaintenanceStatusCompleted {
			add("completed_date", time.Now())
		}
	}
	if update.ScheduledDate != nil {
		add("scheduled_date", *update.ScheduledDate)
	}
	if update.AssignedTo != nil {
		add("assigned_to", *update.AssignedTo)
	}
	if update.EstimatedCost != nil {
		add("estimated_cost", *update.EstimatedCost)
	}
	if update.ActualCost != nil {
		add("actual_cost", *update.ActualCost)
	}
	if len(set) == 0 {
		return nil
	}

	query := "UPDATE maintenance_requests SET "
	for i, clause := range set {
		if i > 0 {
			query += ", "
		}
		query += clause
	}
	query += fmt.Sprintf(" WHERE id = $%d", idx)
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
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

func (r *maintenanceRepository) Delete(ctx context.Context, id int32, userID int32) error {
	query := `DELETE FROM maintenance_requests WHERE id = $1`
	args := []interface{}{id}
	if userID != 0 {
		query += ` AND user_id = $2 AND status = 'pending'`
		args = append(args, userID)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
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

func (r *maintenanceRepository) Stats(ctx context.Context) (*domain.MaintenanceStats, error) {
	query := `SELECT
	          count(*),
	          count(*) FILTER (WHERE status = 'pending'),
	          count(*) FILTER (WHERE status = 'in_progress'),
	          count(*) FILTER (WHERE status = 'completed'),
	          count(*) FILTER (WHERE priority = 'urgent' AND status NOT IN ('completed', 'cancelled')),
	          COALESCE(avg(actual_cost) FILTER (WHERE actual_cost IS NOT NULL), 0),
	          count(*) FILTER (WHERE scheduled_date < CURRENT_DATE AND status NOT IN ('completed', 'cancelled'))
	          FROM maintenance_requests`
	var stats domain.MaintenanceStats
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.Total, &stats.Pending, &stats.InProgress, &stats.Completed,
		&stats.Urgent, &stats.AverageCost, &stats.Overdue)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *maintenanceRepository) CreateAttachment(ctx context.Context, att *domain.MaintenanceAttachment) error {
	query := `INSERT INTO maintenance_attachments
	          (request_id, file_name, storage_key, content_type, size_bytes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	att.CreatedAt = time.Now()
	return r.db.QueryRowContext(ctx, query,
		att.RequestID, att.FileName, att.StorageKey, att.ContentType, att.SizeBytes, att.CreatedAt).Scan(&att.ID)
}

func (r *maintenanceRepository) GetAttachment(ctx context.Context, id int32) (*domain.MaintenanceAttachment, error) {
	query := `SELECT id, request_id, file_name, storage_key, content_type, size_bytes, created_at
	          FROM maintenance_attachments WHERE id = $1`
	var att domain.MaintenanceAttachment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&att.ID, &att.RequestID, &att.FileName, &att.StorageKey, &att.ContentType, &att.SizeBytes, &att.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *maintenanceRepository) ListAttachments(ctx context.Context, requestID int32) ([]domain.MaintenanceAttachment, error) {
	query := `SELECT id, request_id, file_name, storage_key, content_type, size_bytes, created_at
	          FROM maintenance_attachments WHERE request_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var atts []domain.MaintenanceAttachment
	for rows.Next() {
		var att domain.MaintenanceAttachment
		if err := rows.Scan(&att.ID, &att.RequestID, &att.FileName, &att.StorageKey,
			&att.ContentType, &att.SizeBytes, &att.CreatedAt); err != nil {
			return nil, err
		}
		atts = append(atts, att)
	}
	return atts, rows.Err()
}
