package postgres

import (
	"context"
	"database/sql"
	"time"

	"tenantportal-backend/internal/domain"
	"tenantportal-backend/internal/repository"
)

type leaseRepository struct {
	db *sql.DB
}

func NewLeaseRepository(db *sql.DB) repository.LeaseRepository {
	return &leaseRepository{db: db}
}

func (r *leaseRepository) Create(ctx context.Context, l *domain.Lease) error {
	query := `INSERT INTO leases (user_id, property_id, start_date, end_date, status, created_at)
	          VALUES ($1, $2, $3, $4, 'active', $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, l.UserID, l.PropertyID, l.StartDate, l.EndDate, time.Now()).Scan(&l.ID)
}

func (r *leaseRepository) GetActiveByUser(ctx context.Context, userID int32) (*domain.Lease, error) {
	l := &domain.Lease{}
	query := `SELECT l.id, l.user_id, l.property_id, l.start_date, l.end_date, l.status, l.created_at,
	                 p.name, p.type, p.rent_amount
	          FROM leases l
	          JOIN properties p ON l.property_id = p.id
	          WHERE l.user_id = $1 AND l.status = 'active'`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&l.ID, &l.UserID, &l.PropertyID, &l.StartDate, &l.EndDate, &l.Status, &l.CreatedAt,
		&l.PropertyName, &l.PropertyType, &l.RentAmount)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *leaseRepository) HasActiveLease(ctx context.Context, userID, propertyID int32) (bool, error) {
	var count int32
	query := `SELECT count(*) FROM leases WHERE user_id = $1 AND property_id = $2 AND status = 'active'`
	err := r.db.QueryRowContext(ctx, query, userID, propertyID).Scan(&count)
	return count > 0, err
}

func (r *leaseRepository) ListActiveLeaseholders(ctx context.Context) ([]domain.ActiveLeaseholder, error) {
	query := `SELECT DISTINCT u.id, u.name, u.email, p.id, p.name, p.rent_amount
	          FROM users u
	          JOIN leases l ON u.id = l.user_id AND l.status = 'active'
	          JOIN properties p ON l.property_id = p.id
	          WHERE u.role = 'tenant'`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holders []domain.ActiveLeaseholder
	for rows.Next() {
		var h domain.ActiveLeaseholder
		if err := rows.Scan(&h.UserID, &h.TenantName, &h.Email, &h.PropertyID, &h.PropertyName, &h.RentAmount); err != nil {
			return nil, err
		}
		holders = append(holders, h)
	}
	return holders, rows.Err()
}
