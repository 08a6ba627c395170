package postgres

import (
	"context"
	"database/sql"
	"time"

	"tenantportal-backend/internal/domain"
	"tenantportal-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (name, email, phone, password_hash, role, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query, u.Name, u.Email, u.Phone, u.PasswordHash, u.Role, time.Now()).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, name, email, COALESCE(phone, ''), password_hash, role, created_at FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, name, email, COALESCE(phone, ''), password_hash, role, created_at FROM users WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) EmailTakenByOther(ctx context.Context, email string, userID int32) (bool, error) {
	var count int32
	query := `SELECT count(*) FROM users WHERE email = $1 AND id != $2`
	err := r.db.QueryRowContext(ctx, query, email, userID).Scan(&count)
	return count > 0, err
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET name = $1, email = $2, phone = $3, password_hash = $4 WHERE id = $5`
	_, err := r.db.ExecContext(ctx, query, u.Name, u.Email, u.Phone, u.PasswordHash, u.ID)
	return err
}

func (r *userRepository) UpdateTenant(ctx context.Context, t *domain.User) error {
	query := `UPDATE users SET name = $1, email = $2, phone = $3, password_hash = $4 WHERE id = $5 AND role = 'tenant'`
	result, err := r.db.ExecContext(ctx, query, t.Name, t.Email, t.Phone, t.PasswordHash, t.ID)
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

func (r *userRepository) DeleteTenant(ctx context.Context, id int32) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1 AND role = 'tenant'`, id)
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

func (r *userRepository) ListTenants(ctx context.Context) ([]domain.TenantOverview, error) {
	query := `SELECT u.id, u.name, u.email, COALESCE(u.phone, ''), COALESCE(p.name, '')
	          FROM users u
	          LEFT JOIN leases l ON u.id = l.user_id AND l.status = 'active'
	          LEFT JOIN properties p ON l.property_id = p.id
	          WHERE u.role = 'tenant'
	          ORDER BY u.name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []domain.TenantOverview
	for rows.Next() {
		var t domain.TenantOverview
		if err := rows.Scan(&t.UserID, &t.Name, &t.Email, &t.Phone, &t.PropertyName); err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

func (r *userRepository) DashboardRows(ctx context.Context) ([]domain.TenantOverview, error) {
	query := `SELECT u.id, u.name, u.email, COALESCE(u.phone, ''),
	                 COALESCE(p.name, ''), COALESCE(p.rent_amount, 0),
	                 l.start_date, l.end_date,
	                 pay.payment_date, pay.due_date, COALESCE(pay.status, ''), COALESCE(pay.amount, 0)
	          FROM users u
	          LEFT JOIN leases l ON u.id = l.user_id
	          LEFT JOIN properties p ON l.property_id = p.id
	          LEFT JOIN payments pay ON u.id = pay.user_id
	          WHERE u.role = 'tenant'
	          ORDER BY u.name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TenantOverview
	for rows.Next() {
		var t domain.TenantOverview
		if err := rows.Scan(&t.UserID, &t.Name, &t.Email, &t.Phone,
			&t.PropertyName, &t.RentAmount,
			&t.LeaseStart, &t.LeaseEnd,
			&t.PaymentDate, &t.DueDate, &t.PaymentStatus, &t.Amount); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
