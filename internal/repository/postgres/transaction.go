package postgres

import (
	"context"
	"database/sql"
	"time"

	"tenantportal-backend/internal/domain"
	"tenantportal-backend/internal/repository"

	"github.com/lib/pq"
)

type transactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.GatewayTransaction) error {
	query := `INSERT INTO payment_transactions (reference, user_id, amount, payment_ids, status, gateway_data, created_at)
	          VALUES ($1, $2, $3, $4, 'pending', $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		tx.Reference, tx.UserID, tx.Amount, pq.Array(tx.PaymentIDs), tx.GatewayData, time.Now()).Scan(&tx.ID)
}

// GetByReference looks up a transaction by its gateway reference. A zero
// userID skips the ownership check (webhook path, where the caller is the
// gateway itself).
func (r *transactionRepository) GetByReference(ctx context.Context, reference string, userID int32) (*domain.GatewayTransaction, error) {
	tx := &domain.GatewayTransaction{}
	var paymentIDs pq.Int32Array

	query := `SELECT id, reference, user_id, amount, payment_ids, status, created_at, verified_at
	          FROM payment_transactions WHERE reference = $1`
	args := []interface{}{reference}
	if userID != 0 {
		query += ` AND user_id = $2`
		args = append(args, userID)
	}

	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&tx.ID, &tx.Reference, &tx.UserID, &tx.Amount, &paymentIDs, &tx.Status, &tx.CreatedAt, &tx.VerifiedAt)
	if err != nil {
		return nil, err
	}
	tx.PaymentIDs = []int32(paymentIDs)
	return tx, nil
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID int32) ([]domain.GatewayTransaction, error) {
	query := `SELECT id, reference, user_id, amount, payment_ids, status, created_at, verified_at
	          FROM payment_transactions WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *transactionRepository) ListAll(ctx context.Context) ([]domain.GatewayTransaction, error) {
	query := `SELECT id, reference, user_id, amount, payment_ids, status, created_at, verified_at
	          FROM payment_transactions ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// Settle flips the transaction to completed and its payments to paid in one
// database transaction. The conditional update on the transaction row is the
// serialization point between racing settlement attempts (webhook vs
// client-driven verify): only one attempt matches status = 'pending', and the
// loser reports claimed = false without touching any payment row.
func (r *transactionRepository) Settle(ctx context.Context, reference string, paymentIDs []int32, transactionFee float64, verificationData []byte) (bool, error) {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer dbTx.Rollback()

	now := time.Now()

	result, err := dbTx.ExecContext(ctx,
		`UPDATE payment_transactions
		 SET status = 'completed', verified_at = $1, verification_data = $2
		 WHERE reference = $3 AND status = 'pending'`,
		now, verificationData, reference)
	if err != nil {
		return false, err
	}
	claimed, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if claimed == 0 {
		return false, nil
	}

	_, err = dbTx.ExecContext(ctx,
		`UPDATE payments
		 SET status = 'paid', payment_date = $1, payment_reference = $2,
		     payment_method = 'paystack', transaction_fee = $3
		 WHERE id = ANY($4) AND status = 'pending'`,
		now, reference, transactionFee, pq.Array(paymentIDs))
	if err != nil {
		// Rolls back the claim; the transaction stays pending for a retry.
		return false, err
	}

	if err := dbTx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func scanTransactions(rows *sql.Rows) ([]domain.GatewayTransaction, error) {
	var txs []domain.GatewayTransaction
	for rows.Next() {
		var tx domain.GatewayTransaction
		var paymentIDs pq.Int32Array
		if err := rows.Scan(&tx.ID, &tx.Reference, &tx.UserID, &tx.Amount, &paymentIDs, &tx.Status, &tx.CreatedAt, &tx.VerifiedAt); err != nil {
			return nil, err
		}
		tx.PaymentIDs = []int32(paymentIDs)
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
