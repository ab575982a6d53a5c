package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction.
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

// Transaction represents a posted financial transaction.
//
// Amount is always strictly positive; the direction of the balance effect is
// carried by Type and the kind of the target account, never by the sign of
// Amount. Every persisted Transaction has already had its balance effect
// applied to exactly one account.
type Transaction struct {
	ID                     uuid.UUID
	UserID                 uuid.UUID
	AccountID              uuid.UUID
	AccountKind            AccountKind
	Date                   time.Time
	Description            string
	Amount                 decimal.Decimal
	Type                   TransactionType
	CategoryID             *uuid.UUID
	InvestmentID           *uuid.UUID
	Merchant               string
	Tags                   []string
	IsRecurring            bool
	RecurringTransactionID *uuid.UUID
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	accountID uuid.UUID,
	accountKind AccountKind,
	date time.Time,
	description string,
	amount decimal.Decimal,
	transactionType TransactionType,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		AccountID:   accountID,
		AccountKind: accountKind,
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        transactionType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
