// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountKind discriminates between bank accounts and credit cards.
type AccountKind string

const (
	AccountKindBank   AccountKind = "bank"
	AccountKindCredit AccountKind = "credit"
)

// Account represents a bank account or a credit card owned by a user.
//
// For bank accounts, Balance is the current balance. For credit accounts,
// Balance is the outstanding balance and AvailableCredit is always
// CreditLimit minus Balance.
type Account struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Kind            AccountKind
	Name            string
	Balance         decimal.Decimal
	CreditLimit     decimal.Decimal // credit accounts only
	AvailableCredit decimal.Decimal // credit accounts only, derived
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBankAccount creates a new bank Account entity.
func NewBankAccount(userID uuid.UUID, name string, openingBalance decimal.Decimal) *Account {
	now := time.Now().UTC()

	return &Account{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      AccountKindBank,
		Name:      name,
		Balance:   openingBalance,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewCreditAccount creates a new credit card Account entity.
func NewCreditAccount(userID uuid.UUID, name string, creditLimit, currentBalance decimal.Decimal) *Account {
	now := time.Now().UTC()

	return &Account{
		ID:              uuid.New(),
		UserID:          userID,
		Kind:            AccountKindCredit,
		Name:            name,
		Balance:         currentBalance,
		CreditLimit:     creditLimit,
		AvailableCredit: creditLimit.Sub(currentBalance),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// ApplyDelta adjusts the balance by the given signed delta and recomputes
// the derived AvailableCredit field for credit accounts.
func (a *Account) ApplyDelta(delta decimal.Decimal) {
	a.Balance = a.Balance.Add(delta)
	if a.Kind == AccountKindCredit {
		a.AvailableCredit = a.CreditLimit.Sub(a.Balance)
	}
	a.UpdatedAt = time.Now().UTC()
}
