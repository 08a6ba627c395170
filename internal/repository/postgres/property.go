package postgres

import (
	"context"
	"database/sql"
	"time"

	"tenantportal-backend/internal/domain"
	"tenantportal-backend/internal/repository"
)

type propertyRepository struct {
	db *sql.DB
}

func NewPropertyRepository(db *sql.DB) repository.PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(ctx context.Context, p *domain.Property) error {
	query := `INSERT INTO properties (name, type, rent_amount, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRowContext(ctx, query, p.Name, p.Type, p.RentAmount, time.Now()).Scan(&p.ID)
}

func (r *propertyRepository) UpdateRent(ctx context.Context, id int32, rentAmount float64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE properties SET rent_amount = $1 WHERE id = $2`, rentAmount, id)
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

func (r *propertyRepository) Delete(ctx context.Context, id int32) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
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

func (r *propertyRepository) List(ctx context.Context) ([]domain.Property, error) {
	query := `SELECT p.id, p.name, p.type, p.rent_amount, p.created_at,
	                 CASE WHEN l.id IS NOT NULL THEN 'occupied' ELSE 'available' END as status
	          FROM properties p
	          LEFT JOIN leases l ON p.id = l.property_id AND l.status = 'active'
	          ORDER BY p.name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		var p domain.Property
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.RentAmount, &p.CreatedAt, &p.Status); err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}
