package recurrence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-ledger/backend/internal/application/adapter"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// DeleteRecurringInput represents the input for deleting a recurring transaction.
type DeleteRecurringInput struct {
	RecurringID uuid.UUID
	UserID      uuid.UUID
}

// DeleteRecurringOutput represents the output of deleting a recurring transaction.
type DeleteRecurringOutput struct{}

// DeleteRecurringUseCase handles recurring transaction deletion logic.
// Transactions already materialized from the definition are untouched; they
// keep their back-reference.
type DeleteRecurringUseCase struct {
	recurringRepo adapter.RecurringTransactionRepository
}

// NewDeleteRecurringUseCase creates a new DeleteRecurringUseCase instance.
func NewDeleteRecurringUseCase(recurringRepo adapter.RecurringTransactionRepository) *DeleteRecurringUseCase {
	return &DeleteRecurringUseCase{
		recurringRepo: recurringRepo,
	}
}

// Execute deletes the recurring transaction.
func (uc *DeleteRecurringUseCase) Execute(ctx context.Context, input DeleteRecurringInput) (*DeleteRecurringOutput, error) {
	if err := uc.recurringRepo.Delete(ctx, input.RecurringID, input.UserID); err != nil {
		if errors.Is(err, domainerror.ErrRecurringNotFound) {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeRecurringNotFound,
				"recurring transaction not found",
				domainerror.ErrRecurringNotFound,
			)
		}
		return nil, fmt.Errorf("failed to delete recurring transaction: %w", err)
	}

	return &DeleteRecurringOutput{}, nil
}
