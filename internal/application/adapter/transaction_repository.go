package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// Posting pairs a transaction with the signed balance delta it applies to its
// account.
type Posting struct {
	Transaction  *entity.Transaction
	BalanceDelta decimal.Decimal
}

// TransactionRepository defines the interface for ledger persistence
// operations. Every method that takes a balance delta executes the row writes
// and the balance adjustment as one atomic unit: either all writes commit or
// none are visible.
type TransactionRepository interface {
	// CreateWithBalanceEffect inserts the transaction and applies delta to
	// its account's balance atomically. Returns ErrAccountNotFound when the
	// account does not resolve for the transaction's user and kind.
	CreateWithBalanceEffect(ctx context.Context, transaction *entity.Transaction, delta decimal.Decimal) error

	// CreateBatchWithBalanceEffects applies every posting inside a single
	// atomic unit spanning the whole batch. Any failure rolls back all of it.
	CreateBatchWithBalanceEffects(ctx context.Context, postings []Posting) error

	// FindByIDForUser retrieves a transaction by ID, scoped to the owning user.
	FindByIDForUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Transaction, error)

	// FindByAccount retrieves all transactions posted against an account.
	FindByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Transaction, error)

	// UpdateWithBalanceEffect persists the transaction's field changes and
	// applies delta to its account's balance atomically. A zero delta skips
	// the balance write.
	UpdateWithBalanceEffect(ctx context.Context, transaction *entity.Transaction, delta decimal.Decimal) error

	// DeleteWithBalanceEffect reverses the transaction's balance effect by
	// applying delta, then removes the row, atomically. When the account no
	// longer resolves the reversal is skipped and the row is still removed.
	DeleteWithBalanceEffect(ctx context.Context, transaction *entity.Transaction, delta decimal.Decimal) error
}
