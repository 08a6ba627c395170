package repos

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenantportal-backend/internal/domain"
	"tenantportal-backend/internal/repository/postgres"
)

func TestTransactionSettle(t *testing.T) {
	ctx := context.Background()
	reference := "TM_1700000000000_7"
	verification := []byte(`{"status":"success"}`)

	t.Run("claims the pending transaction and marks its payments paid", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := postgres.NewTransactionRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE payment_transactions").
			WithArgs(sqlmock.AnyArg(), verification, reference).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE payments").
			WithArgs(sqlmock.AnyArg(), reference, 2325.0, pq.Array([]int32{1, 2})).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		claimed, err := repo.Settle(ctx, reference, []int32{1, 2}, 2325.0, verification)
		require.NoError(t, err)
		assert.True(t, claimed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("loses the claim when the transaction is no longer pending", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := postgres.NewTransactionRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE payment_transactions").
			WithArgs(sqlmock.AnyArg(), verification, reference).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		claimed, err := repo.Settle(ctx, reference, []int32{1, 2}, 2325.0, verification)
		require.NoError(t, err)
		assert.False(t, claimed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back the claim when the payments update fails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := postgres.NewTransactionRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE payment_transactions").
			WithArgs(sqlmock.AnyArg(), verification, reference).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE payments").
			WithArgs(sqlmock.AnyArg(), reference, 2325.0, pq.Array([]int32{1, 2})).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		claimed, err := repo.Settle(ctx, reference, []int32{1, 2}, 2325.0, verification)
		assert.Error(t, err)
		assert.False(t, claimed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransactionGetByReference(t *testing.T) {
	ctx := context.Background()
	columns := []string{"id", "reference", "user_id", "amount", "payment_ids", "status", "created_at", "verified_at"}

	t.Run("scopes the lookup to the tenant", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := postgres.NewTransactionRepository(db)

		rows := sqlmock.NewRows(columns).
			AddRow(1, "TM_1700000000000_7", 7, 155000.0, "{1,2}", "pending", time.Now(), nil)
		mock.ExpectQuery("FROM payment_transactions WHERE reference = \\$1 AND user_id = \\$2").
			WithArgs("TM_1700000000000_7", int32(7)).
			WillReturnRows(rows)

		tx, err := repo.GetByReference(ctx, "TM_1700000000000_7", 7)
		require.NoError(t, err)
		assert.Equal(t, []int32{1, 2}, tx.PaymentIDs)
		assert.Equal(t, domain.TransactionStatusPending, tx.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("skips the ownership check for a zero user id", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := postgres.NewTransactionRepository(db)

		rows := sqlmock.NewRows(columns).
			AddRow(1, "TM_1700000000000_7", 7, 155000.0, "{1,2}", "completed", time.Now(), time.Now())
		mock.ExpectQuery("FROM payment_transactions WHERE reference = \\$1").
			WithArgs("TM_1700000000000_7").
			WillReturnRows(rows)

		tx, err := repo.GetByReference(ctx, "TM_1700000000000_7", 0)
		require.NoError(t, err)
		assert.Equal(t, domain.TransactionStatusCompleted, tx.Status)
		require.NotNil(t, tx.VerifiedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns sql.ErrNoRows for an unknown reference", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := postgres.NewTransactionRepository(db)

		mock.ExpectQuery("FROM payment_transactions WHERE reference = \\$1").
			WithArgs("TM_missing", int32(7)).
			WillReturnError(sql.ErrNoRows)

		_, err = repo.GetByReference(ctx, "TM_missing", 7)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestTransactionCreate(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := postgres.NewTransactionRepository(db)

	tx := &domain.GatewayTransaction{
		Reference:   "TM_1700000000000_7",
		UserID:      7,
		Amount:      155000,
		PaymentIDs:  []int32{1, 2},
		GatewayData: []byte(`{"access_code":"abc123"}`),
	}

	mock.ExpectQuery("INSERT INTO payment_transactions").
		WithArgs(tx.Reference, tx.UserID, tx.Amount, pq.Array(tx.PaymentIDs), tx.GatewayData, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	require.NoError(t, repo.Create(ctx, tx))
	assert.Equal(t, int32(42), tx.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
