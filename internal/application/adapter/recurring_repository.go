package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// RecurringTransactionRepository defines the interface for recurring
// transaction persistence operations.
type RecurringTransactionRepository interface {
	// Create creates a new recurring transaction in the database.
	Create(ctx context.Context, recurring *entity.RecurringTransaction) error

	// FindByIDForUser retrieves a recurring transaction by ID, scoped to the owning user.
	FindByIDForUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.RecurringTransaction, error)

	// FindByUser retrieves all recurring transactions for a given user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringTransaction, error)

	// FindDue retrieves every active recurring transaction whose
	// next_process_date is due at asOf and whose end date, if any, has not
	// passed.
	FindDue(ctx context.Context, asOf time.Time) ([]*entity.RecurringTransaction, error)

	// Update updates an existing recurring transaction in the database.
	Update(ctx context.Context, recurring *entity.RecurringTransaction) error

	// Delete removes a recurring transaction, scoped to the owning user.
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error

	// MaterializeOccurrence posts one due occurrence as a single atomic unit:
	// it advances the record's schedule position from recurring.NextProcessDate
	// to nextProcessDate with a compare-and-advance write, inserts the
	// materialized transaction, and applies delta to the target account's
	// balance. When the schedule position no longer matches (a concurrent run
	// advanced it first) the unit aborts with ErrScheduleAlreadyAdvanced and
	// nothing is written.
	MaterializeOccurrence(
		ctx context.Context,
		recurring *entity.RecurringTransaction,
		transaction *entity.Transaction,
		delta decimal.Decimal,
		nextProcessDate time.Time,
	) error
}
