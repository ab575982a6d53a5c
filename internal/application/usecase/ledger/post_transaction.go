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

// PostTransactionInput represents the input for posting a transaction.
type PostTransactionInput struct {
	UserID      uuid.UUID
	AccountID   uuid.UUID
	AccountKind entity.AccountKind
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        entity.TransactionType
	CategoryID  *uuid.UUID
	InvestmentID *uuid.UUID
	Merchant    string
	Tags        []string

	// Set by the recurrence component when materializing an occurrence.
	IsRecurring            bool
	RecurringTransactionID *uuid.UUID
}

// PostTransactionOutput represents the output of posting a transaction.
type PostTransactionOutput struct {
	Transaction *TransactionOutput
}

// PostTransactionUseCase handles transaction posting logic.
type PostTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewPostTransactionUseCase creates a new PostTransactionUseCase instance.
func NewPostTransactionUseCase(transactionRepo adapter.TransactionRepository) *PostTransactionUseCase {
	return &PostTransactionUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute validates the input, computes the balance effect, and commits the
// transaction row together with the account balance adjustment as one atomic
// unit.
func (uc *PostTransactionUseCase) Execute(ctx context.Context, input PostTransactionInput) (*PostTransactionOutput, error) {
	transaction, err := buildTransaction(input)
	if err != nil {
		return nil, err
	}

	delta := BalanceEffect(input.AccountKind, input.Type, input.Amount)

	if err := uc.transactionRepo.CreateWithBalanceEffect(ctx, transaction, delta); err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnAccountNotFound,
				"account not found",
				domainerror.ErrAccountNotFound,
			)
		}
		return nil, fmt.Errorf("failed to post transaction: %w", err)
	}

	return &PostTransactionOutput{Transaction: toTransactionOutput(transaction)}, nil
}

// buildTransaction validates a posting input and constructs the entity.
// Shared between single posting and bulk posting.
func buildTransaction(input PostTransactionInput) (*entity.Transaction, error) {
	if !isValidAccountKind(input.AccountKind) {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidAccountKind,
			"account kind must be 'bank' or 'credit'",
			domainerror.ErrInvalidAccountKind,
		)
	}

	if !isValidTransactionType(input.Type) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'income', 'expense' or 'transfer'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if !isValidAmount(input.Amount) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be positive with at most two decimal places",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	if len(input.Description) > MaxDescriptionLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	transaction := entity.NewTransaction(
		input.UserID,
		input.AccountID,
		input.AccountKind,
		input.Date,
		input.Description,
		input.Amount,
		input.Type,
	)
	transaction.CategoryID = input.CategoryID
	transaction.InvestmentID = input.InvestmentID
	transaction.Merchant = input.Merchant
	transaction.Tags = input.Tags
	transaction.IsRecurring = input.IsRecurring
	transaction.RecurringTransactionID = input.RecurringTransactionID

	return transaction, nil
}
