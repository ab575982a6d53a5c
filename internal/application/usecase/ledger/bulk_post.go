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

// BulkTransactionInput is one entry of a bulk posting.
type BulkTransactionInput struct {
	AccountID   uuid.UUID
	AccountKind entity.AccountKind
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        entity.TransactionType
	CategoryID  *uuid.UUID
	Merchant    string
	Tags        []string
}

// BulkPostInput represents the input for a bulk posting.
type BulkPostInput struct {
	UserID uuid.UUID
	Inputs []BulkTransactionInput
}

// BulkPostOutput represents the output of a bulk posting.
type BulkPostOutput struct {
	Transactions []*TransactionOutput
}

// BulkPostUseCase posts a batch of transactions with all-or-nothing
// semantics: if any individual posting fails, the entire batch rolls back.
// This is deliberately not a loop of independently committed postings.
type BulkPostUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewBulkPostUseCase creates a new BulkPostUseCase instance.
func NewBulkPostUseCase(transactionRepo adapter.TransactionRepository) *BulkPostUseCase {
	return &BulkPostUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute validates every input up front, then applies the whole batch inside
// a single atomic unit.
func (uc *BulkPostUseCase) Execute(ctx context.Context, input BulkPostInput) (*BulkPostOutput, error) {
	if len(input.Inputs) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyBatch,
			"bulk posting requires at least one transaction",
			domainerror.ErrEmptyBatch,
		)
	}

	postings := make([]adapter.Posting, 0, len(input.Inputs))
	outputs := make([]*TransactionOutput, 0, len(input.Inputs))

	for i, item := range input.Inputs {
		transaction, err := buildTransaction(PostTransactionInput{
			UserID:      input.UserID,
			AccountID:   item.AccountID,
			AccountKind: item.AccountKind,
			Date:        item.Date,
			Description: item.Description,
			Amount:      item.Amount,
			Type:        item.Type,
			CategoryID:  item.CategoryID,
			Merchant:    item.Merchant,
			Tags:        item.Tags,
		})
		if err != nil {
			return nil, fmt.Errorf("invalid transaction at index %d: %w", i, err)
		}

		postings = append(postings, adapter.Posting{
			Transaction:  transaction,
			BalanceDelta: BalanceEffect(item.AccountKind, item.Type, item.Amount),
		})
		outputs = append(outputs, toTransactionOutput(transaction))
	}

	if err := uc.transactionRepo.CreateBatchWithBalanceEffects(ctx, postings); err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnAccountNotFound,
				"account not found, batch rolled back",
				domainerror.ErrAccountNotFound,
			)
		}
		return nil, fmt.Errorf("failed to post batch: %w", err)
	}

	return &BulkPostOutput{Transactions: outputs}, nil
}
