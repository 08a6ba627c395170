package postgres

import (
	"database/sql"

	"tenantportal-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.PropertyRepository
	repository.LeaseRepository
	repository.PaymentRepository
	repository.TransactionRepository
	repository.EventRepository
	repository.MaintenanceRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		UserRepository:        NewUserRepository(db),
		PropertyRepository:    NewPropertyRepository(db),
		LeaseRepository:       NewLeaseRepository(db),
		PaymentRepository:     NewPaymentRepository(db),
		TransactionRepository: NewTransactionRepository(db),
		EventRepository:       NewEventRepository(db),
		MaintenanceRepository: NewMaintenanceRepository(db),
	}
}
