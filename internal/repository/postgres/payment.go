package postgres

import (
	"context"
	"database/sql"
	"time"

	"tenantportal-backend/internal/domain"
	"tenantportal-backend/internal/repository"

	"github.com/lib/pq"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (user_id, property_id, amount, due_date, status, created_at)
	          VALUES ($1, $2, $3, $4, 'pending', $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, p.UserID, p.PropertyID, p.Amount, p.DueDate, time.Now()).Scan(&p.ID)
}

func (r *paymentRepository) Exists(ctx context.Context, userID, propertyID int32, dueDate time.Time) (bool, error) {
	var count int32
	query := `SELECT count(*) FROM payments WHERE user_id = $1 AND property_id = $2 AND due_date = $3`
	err := r.db.QueryRowContext(ctx, query, userID, propertyID, dueDate).Scan(&count)
	return count > 0, err
}

func (r *paymentRepository) MarkPaid(ctx context.Context, id int32, reference string) error {
	query := `UPDATE payments SET status = 'paid', payment_date = $1, payment_reference = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, time.Now(), reference, id)
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

func (r *paymentRepository) GetForReceipt(ctx context.Context, id int32) (*domain.Payment, error) {
	p := &domain.Payment{}
	query := `SELECT p.id, p.user_id, p.property_id, p.amount, p.due_date, p.status, p.created_at,
	                 pr.name, u.name, u.email
	          FROM payments p
	          JOIN properties pr ON p.property_id = pr.id
	          JOIN users u ON p.user_id = u.id
	          WHERE p.id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.UserID, &p.PropertyID, &p.Amount, &p.DueDate, &p.Status, &p.CreatedAt,
		&p.PropertyName, &p.TenantName, &p.TenantEmail)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) ListPendingByIDs(ctx context.Context, ids []int32, userID int32) ([]domain.Payment, error) {
	query := `SELECT p.id, p.user_id, p.property_id, p.amount, p.due_date, p.status, p.created_at, pr.name
	          FROM payments p
	          JOIN properties pr ON p.property_id = pr.id
	          WHERE p.id = ANY($1) AND p.user_id = $2 AND p.status = 'pending'`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows, false)
}

func (r *paymentRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Payment, error) {
	query := `SELECT p.id, p.user_id, p.property_id, p.amount, p.due_date, p.status,
	                 p.payment_date, COALESCE(p.payment_reference, ''), p.created_at, pr.name
	          FROM payments p
	          JOIN properties pr ON p.property_id = pr.id
	          WHERE p.user_id = $1
	          ORDER BY p.due_date DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.PropertyID, &p.Amount, &p.DueDate, &p.Status,
			&p.PaidAt, &p.PaymentReference, &p.CreatedAt, &p.PropertyName); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) ListAll(ctx context.Context) ([]domain.Payment, error) {
	query := `SELECT p.id, p.user_id, p.property_id, p.amount, p.due_date, p.status,
	                 p.payment_date, COALESCE(p.payment_reference, ''), p.created_at,
	                 pr.name, u.name, u.email
	          FROM payments p
	          JOIN properties pr ON p.property_id = pr.id
	          JOIN users u ON p.user_id = u.id
	          ORDER BY p.due_date DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.PropertyID, &p.Amount, &p.DueDate, &p.Status,
			&p.PaidAt, &p.PaymentReference, &p.CreatedAt,
			&p.PropertyName, &p.TenantName, &p.TenantEmail); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// ListOverdue returns pending payments whose due date has passed. A zero
// userID lists every tenant's overdue payments (admin/reminder path).
func (r *paymentRepository) ListOverdue(ctx context.Context, userID int32) ([]domain.Payment, error) {
	query := `SELECT p.id, p.user_id, p.property_id, p.amount, p.due_date, p.status, p.created_at,
	                 pr.name, u.name, u.email
	          FROM payments p
	          JOIN properties pr ON p.property_id = pr.id
	          JOIN users u ON p.user_id = u.id
	          WHERE p.status = 'pending' AND p.due_date < CURRENT_DATE`
	args := []interface{}{}
	if userID != 0 {
		query += ` AND p.user_id = $1`
		args = append(args, userID)
	}
	query += ` ORDER BY p.due_date ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows, true)
}

func (r *paymentRepository) ListPendingNotDue(ctx context.Context, userID int32) ([]domain.Payment, error) {
	query := `SELECT p.id, p.user_id, p.property_id, p.amount, p.due_date, p.status, p.created_at, pr.name
	          FROM payments p
	          JOIN properties pr ON p.property_id = pr.id
	          WHERE p.user_id = $1 AND p.status = 'pending' AND p.due_date >= CURRENT_DATE
	          ORDER BY p.due_date ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows, false)
}

func (r *paymentRepository) ListUpcoming(ctx context.Context, daysAhead int) ([]domain.UpcomingPayment, error) {
	query := `SELECT p.id, u.name, u.email, pr.name, p.amount, p.due_date,
	                 (p.due_date::date - CURRENT_DATE) as days_until_due
	          FROM payments p
	          JOIN users u ON p.user_id = u.id
	          JOIN properties pr ON p.property_id = pr.id
	          WHERE p.status = 'pending'
	          AND p.due_date > CURRENT_DATE
	          AND (p.due_date::date - CURRENT_DATE) <= $1
	          ORDER BY p.due_date ASC`
	rows, err := r.db.QueryContext(ctx, query, daysAhead)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var upcoming []domain.UpcomingPayment
	for rows.Next() {
		var u domain.UpcomingPayment
		if err := rows.Scan(&u.PaymentID, &u.TenantName, &u.TenantEmail, &u.PropertyName, &u.Amount, &u.DueDate, &u.DaysUntilDue); err != nil {
			return nil, err
		}
		upcoming = append(upcoming, u)
	}
	return upcoming, rows.Err()
}

func (r *paymentRepository) Stats(ctx context.Context) (*domain.PaymentStats, error) {
	stats := &domain.PaymentStats{}

	err := r.db.QueryRowContext(ctx, `SELECT count(*), COALESCE(SUM(amount), 0) FROM payments
	          WHERE date_trunc('month', created_at) = date_trunc('month', CURRENT_DATE)`).
		Scan(&stats.TotalPayments, &stats.TotalAmount)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `SELECT count(*), COALESCE(SUM(amount), 0) FROM payment_transactions
	          WHERE status = 'completed'
	          AND date_trunc('month', created_at) = date_trunc('month', CURRENT_DATE)`).
		Scan(&stats.GatewayTransactions, &stats.GatewayAmount)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `SELECT count(*), COALESCE(SUM(amount), 0) FROM payments
	          WHERE status = 'pending' AND due_date < CURRENT_DATE`).
		Scan(&stats.OverdueCount, &stats.OverdueAmount)
	if err != nil {
		return nil, err
	}

	var successful, total int32
	err = r.db.QueryRowContext(ctx, `SELECT count(*) FILTER (WHERE status = 'completed'), count(*) FROM payment_transactions`).
		Scan(&successful, &total)
	if err != nil {
		return nil, err
	}
	if total > 0 {
		stats.SuccessRate = float64(successful) / float64(total) * 100
	}

	return stats, nil
}

func scanPayments(rows *sql.Rows, withTenant bool) ([]domain.Payment, error) {
	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		var err error
		if withTenant {
			err = rows.Scan(&p.ID, &p.UserID, &p.PropertyID, &p.Amount, &p.DueDate, &p.Status, &p.CreatedAt,
				&p.PropertyName, &p.TenantName, &p.TenantEmail)
		} else {
			err = rows.Scan(&p.ID, &p.UserID, &p.PropertyID, &p.Amount, &p.DueDate, &p.Status, &p.CreatedAt, &p.PropertyName)
		}
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
