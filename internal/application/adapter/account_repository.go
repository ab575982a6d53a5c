// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// AccountRepository defines the interface for account persistence operations.
type AccountRepository interface {
	// Create creates a new account in the database.
	Create(ctx context.Context, account *entity.Account) error

	// FindByIDForUser retrieves an account by ID, scoped to the owning user.
	FindByIDForUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Account, error)

	// FindByUser retrieves all accounts for a given user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error)

	// DeleteIfUnused deletes the account only when it owns zero transactions.
	// The existence check, the transaction count, and the delete execute as
	// one atomic unit. Returns an AccountError with code
	// ErrCodeAccountHasTransactions carrying the count when the guard fails.
	DeleteIfUnused(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}
