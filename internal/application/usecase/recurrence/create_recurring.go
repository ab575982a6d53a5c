package recurrence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// CreateRecurringInput represents the input for creating a recurring transaction.
type CreateRecurringInput struct {
	UserID      uuid.UUID
	AccountID   uuid.UUID
	AccountKind entity.AccountKind
	Amount      decimal.Decimal
	Type        entity.TransactionType
	Description string
	Frequency   entity.Frequency
	StartDate   time.Time
	EndDate     *time.Time
	CategoryID  *uuid.UUID
	Merchant    string
	Tags        []string
	Notes       string
}

// CreateRecurringOutput represents the output of creating a recurring transaction.
type CreateRecurringOutput struct {
	Recurring *entity.RecurringTransaction
}

// CreateRecurringUseCase handles recurring transaction creation logic.
type CreateRecurringUseCase struct {
	recurringRepo adapter.RecurringTransactionRepository
	clock         adapter.Clock
}

// NewCreateRecurringUseCase creates a new CreateRecurringUseCase instance.
func NewCreateRecurringUseCase(
	recurringRepo adapter.RecurringTransactionRepository,
	clock adapter.Clock,
) *CreateRecurringUseCase {
	return &CreateRecurringUseCase{
		recurringRepo: recurringRepo,
		clock:         clock,
	}
}

// Execute validates the definition and persists it with its initial schedule
// position.
func (uc *CreateRecurringUseCase) Execute(ctx context.Context, input CreateRecurringInput) (*CreateRecurringOutput, error) {
	if err := validateRecurringFields(input.Type, input.Frequency, input.Amount, input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	recurring := entity.NewRecurringTransaction(
		input.UserID,
		input.AccountID,
		input.AccountKind,
		input.Amount,
		input.Type,
		input.Description,
		input.Frequency,
		input.StartDate,
	)
	recurring.EndDate = input.EndDate
	recurring.CategoryID = input.CategoryID
	recurring.Merchant = input.Merchant
	recurring.Tags = input.Tags
	recurring.Notes = input.Notes
	recurring.NextProcessDate = initialNextProcessDate(input.StartDate, input.Frequency, uc.clock.Now())

	if err := uc.recurringRepo.Create(ctx, recurring); err != nil {
		return nil, fmt.Errorf("failed to create recurring transaction: %w", err)
	}

	return &CreateRecurringOutput{Recurring: recurring}, nil
}

// validateRecurringFields validates the type, frequency, amount, and date
// range of a recurring transaction definition.
func validateRecurringFields(
	transactionType entity.TransactionType,
	frequency entity.Frequency,
	amount decimal.Decimal,
	startDate time.Time,
	endDate *time.Time,
) error {
	if transactionType != entity.TransactionTypeIncome && transactionType != entity.TransactionTypeExpense {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidRecurringType,
			"recurring transaction type must be 'income' or 'expense'",
			domainerror.ErrInvalidRecurringType,
		)
	}

	if !isValidFrequency(frequency) {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidFrequency,
			"frequency must be one of daily, weekly, biweekly, monthly, quarterly, annually",
			domainerror.ErrInvalidFrequency,
		)
	}

	if !amount.IsPositive() || !amount.Equal(amount.Round(2)) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be positive with at most two decimal places",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	if endDate != nil && endDate.Before(startDate) {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidDateRange,
			"end date must not precede start date",
			domainerror.ErrInvalidDateRange,
		)
	}

	return nil
}
