package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// TransactionOutput represents a transaction in use case outputs.
type TransactionOutput struct {
	ID                     uuid.UUID
	UserID                 uuid.UUID
	AccountID              uuid.UUID
	AccountKind            entity.AccountKind
	Date                   time.Time
	Description            string
	Amount                 decimal.Decimal
	Type                   entity.TransactionType
	CategoryID             *uuid.UUID
	InvestmentID           *uuid.UUID
	Merchant               string
	Tags                   []string
	IsRecurring            bool
	RecurringTransactionID *uuid.UUID
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// toTransactionOutput converts a domain Transaction to a TransactionOutput.
func toTransactionOutput(transaction *entity.Transaction) *TransactionOutput {
	return &TransactionOutput{
		ID:                     transaction.ID,
		UserID:                 transaction.UserID,
		AccountID:              transaction.AccountID,
		AccountKind:            transaction.AccountKind,
		Date:                   transaction.Date,
		Description:            transaction.Description,
		Amount:                 transaction.Amount,
		Type:                   transaction.Type,
		CategoryID:             transaction.CategoryID,
		InvestmentID:           transaction.InvestmentID,
		Merchant:               transaction.Merchant,
		Tags:                   transaction.Tags,
		IsRecurring:            transaction.IsRecurring,
		RecurringTransactionID: transaction.RecurringTransactionID,
		CreatedAt:              transaction.CreatedAt,
		UpdatedAt:              transaction.UpdatedAt,
	}
}
