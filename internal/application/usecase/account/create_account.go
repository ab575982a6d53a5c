// Package account contains account-related use cases.
package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// MaxAccountNameLength is the maximum allowed length for account names.
const MaxAccountNameLength = 100

// CreateAccountInput represents the input for account creation.
type CreateAccountInput struct {
	UserID         uuid.UUID
	Kind           entity.AccountKind
	Name           string
	OpeningBalance decimal.Decimal // bank accounts
	CreditLimit    decimal.Decimal // credit accounts
	CurrentBalance decimal.Decimal // credit accounts
}

// CreateAccountOutput represents the output of account creation.
type CreateAccountOutput struct {
	Account *entity.Account
}

// CreateAccountUseCase handles account creation logic.
type CreateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewCreateAccountUseCase creates a new CreateAccountUseCase instance.
func NewCreateAccountUseCase(accountRepo adapter.AccountRepository) *CreateAccountUseCase {
	return &CreateAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the account creation.
func (uc *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error) {
	if input.Name == "" || len(input.Name) > MaxAccountNameLength {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeMissingAccountName,
			fmt.Sprintf("account name is required and must not exceed %d characters", MaxAccountNameLength),
			domainerror.ErrMissingAccountName,
		)
	}

	var account *entity.Account

	switch input.Kind {
	case entity.AccountKindBank:
		account = entity.NewBankAccount(input.UserID, input.Name, input.OpeningBalance)
	case entity.AccountKindCredit:
		if !input.CreditLimit.IsPositive() {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeInvalidCreditLimit,
				"credit limit must be positive",
				domainerror.ErrInvalidCreditLimit,
			)
		}
		account = entity.NewCreditAccount(input.UserID, input.Name, input.CreditLimit, input.CurrentBalance)
	default:
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidAccountKind,
			"account kind must be 'bank' or 'credit'",
			domainerror.ErrInvalidAccountKind,
		)
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &CreateAccountOutput{Account: account}, nil
}
