// Package ledger contains the use cases that post, update, and delete
// transactions while keeping account balances consistent with history.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

const (
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 255
)

// BalanceEffect returns the signed delta a transaction applies to its
// account's balance.
//
// Bank accounts: income increases the balance, expense and transfer decrease
// it. Credit accounts track debt, so an income (a payment) decreases the
// balance, an expense (a purchase) increases it, and a transfer decreases it.
func BalanceEffect(kind entity.AccountKind, transactionType entity.TransactionType, amount decimal.Decimal) decimal.Decimal {
	switch kind {
	case entity.AccountKindBank:
		if transactionType == entity.TransactionTypeIncome {
			return amount
		}
		return amount.Neg()
	case entity.AccountKindCredit:
		if transactionType == entity.TransactionTypeExpense {
			return amount
		}
		return amount.Neg()
	}
	return decimal.Zero
}

// isValidTransactionType validates the transaction type.
func isValidTransactionType(transactionType entity.TransactionType) bool {
	switch transactionType {
	case entity.TransactionTypeIncome, entity.TransactionTypeExpense, entity.TransactionTypeTransfer:
		return true
	}
	return false
}

// isValidAccountKind validates the account kind.
func isValidAccountKind(kind entity.AccountKind) bool {
	return kind == entity.AccountKindBank || kind == entity.AccountKindCredit
}

// isValidAmount reports whether amount is strictly positive and representable
// with two decimal places. Amounts are fixed-point; anything finer would
// permit rounding drift.
func isValidAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Round(2))
}
