package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// UpdateTransactionInput represents the input for a transaction update. The
// updatable fields are enumerated explicitly so the balance delta can reason
// about exactly which of them affect the account balance.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	Date          *time.Time
	Description   *string
	Amount        *decimal.Decimal
	Type          *entity.TransactionType
	CategoryID    *uuid.UUID
	ClearCategory bool // Set to true to remove category
	Merchant      *string
	Tags          []string
}

// UpdateTransactionOutput represents the output of a transaction update.
type UpdateTransactionOutput struct {
	Transaction *TransactionOutput
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(transactionRepo adapter.TransactionRepository) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute applies the patch. When amount or type change, the account balance
// is adjusted by newEffect minus oldEffect in the same atomic unit as the row
// update; otherwise no balance write occurs.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	transaction, err := uc.transactionRepo.FindByIDForUser(ctx, input.TransactionID, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	oldEffect := BalanceEffect(transaction.AccountKind, transaction.Type, transaction.Amount)
	balanceAffected := false

	if input.Date != nil {
		transaction.Date = *input.Date
	}

	if input.Description != nil {
		if len(*input.Description) > MaxDescriptionLength {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeDescriptionTooLong,
				fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
				domainerror.ErrDescriptionTooLong,
			)
		}
		transaction.Description = *input.Description
	}

	if input.Amount != nil {
		if !isValidAmount(*input.Amount) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionAmount,
				"amount must be positive with at most two decimal places",
				domainerror.ErrInvalidTransactionAmount,
			)
		}
		if !transaction.Amount.Equal(*input.Amount) {
			balanceAffected = true
		}
		transaction.Amount = *input.Amount
	}

	if input.Type != nil {
		if !isValidTransactionType(*input.Type) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionType,
				"transaction type must be 'income', 'expense' or 'transfer'",
				domainerror.ErrInvalidTransactionType,
			)
		}
		if transaction.Type != *input.Type {
			balanceAffected = true
		}
		transaction.Type = *input.Type
	}

	if input.ClearCategory {
		transaction.CategoryID = nil
	} else if input.CategoryID != nil {
		transaction.CategoryID = input.CategoryID
	}

	if input.Merchant != nil {
		transaction.Merchant = *input.Merchant
	}

	if input.Tags != nil {
		transaction.Tags = input.Tags
	}

	transaction.UpdatedAt = time.Now().UTC()

	// Only amount and type feed the sign table, so the delta is zero unless
	// one of them changed.
	delta := decimal.Zero
	if balanceAffected {
		newEffect := BalanceEffect(transaction.AccountKind, transaction.Type, transaction.Amount)
		delta = newEffect.Sub(oldEffect)
	}

	if err := uc.transactionRepo.UpdateWithBalanceEffect(ctx, transaction, delta); err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnAccountNotFound,
				"account not found",
				domainerror.ErrAccountNotFound,
			)
		}
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return &UpdateTransactionOutput{Transaction: toTransactionOutput(transaction)}, nil
}
