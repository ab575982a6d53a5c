package recurrence

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

// UpdateRecurringInput represents the input for updating a recurring
// transaction. Updatable fields are enumerated explicitly.
type UpdateRecurringInput struct {
	RecurringID uuid.UUID
	UserID      uuid.UUID
	Amount      *decimal.Decimal
	Type        *entity.TransactionType
	Description *string
	Frequency   *entity.Frequency
	StartDate   *time.Time
	EndDate     *time.Time
	ClearEndDate bool
	CategoryID  *uuid.UUID
	Merchant    *string
	Tags        []string
	Notes       *string
	IsActive    *bool
}

// UpdateRecurringOutput represents the output of updating a recurring transaction.
type UpdateRecurringOutput struct {
	Recurring *entity.RecurringTransaction
}

// UpdateRecurringUseCase handles recurring transaction update logic.
type UpdateRecurringUseCase struct {
	recurringRepo adapter.RecurringTransactionRepository
	clock         adapter.Clock
}

// NewUpdateRecurringUseCase creates a new UpdateRecurringUseCase instance.
func NewUpdateRecurringUseCase(
	recurringRepo adapter.RecurringTransactionRepository,
	clock adapter.Clock,
) *UpdateRecurringUseCase {
	return &UpdateRecurringUseCase{
		recurringRepo: recurringRepo,
		clock:         clock,
	}
}

// Execute applies the patch. Changing frequency or start date resets the
// schedule position from the new pair, discarding any prior position.
func (uc *UpdateRecurringUseCase) Execute(ctx context.Context, input UpdateRecurringInput) (*UpdateRecurringOutput, error) {
	recurring, err := uc.recurringRepo.FindByIDForUser(ctx, input.RecurringID, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrRecurringNotFound) {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeRecurringNotFound,
				"recurring transaction not found",
				domainerror.ErrRecurringNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find recurring transaction: %w", err)
	}

	scheduleReset := false

	if input.Amount != nil {
		recurring.Amount = *input.Amount
	}
	if input.Type != nil {
		recurring.Type = *input.Type
	}
	if input.Description != nil {
		recurring.Description = *input.Description
	}
	if input.Frequency != nil && *input.Frequency != recurring.Frequency {
		recurring.Frequency = *input.Frequency
		scheduleReset = true
	}
	if input.StartDate != nil && !input.StartDate.Equal(recurring.StartDate) {
		recurring.StartDate = *input.StartDate
		scheduleReset = true
	}
	if input.ClearEndDate {
		recurring.EndDate = nil
	} else if input.EndDate != nil {
		recurring.EndDate = input.EndDate
	}
	if input.CategoryID != nil {
		recurring.CategoryID = input.CategoryID
	}
	if input.Merchant != nil {
		recurring.Merchant = *input.Merchant
	}
	if input.Tags != nil {
		recurring.Tags = input.Tags
	}
	if input.Notes != nil {
		recurring.Notes = *input.Notes
	}
	if input.IsActive != nil {
		recurring.IsActive = *input.IsActive
	}

	if err := validateRecurringFields(recurring.Type, recurring.Frequency, recurring.Amount, recurring.StartDate, recurring.EndDate); err != nil {
		return nil, err
	}

	if scheduleReset {
		recurring.LastProcessedDate = nil
		recurring.NextProcessDate = initialNextProcessDate(recurring.StartDate, recurring.Frequency, uc.clock.Now())
	}

	recurring.UpdatedAt = time.Now().UTC()

	if err := uc.recurringRepo.Update(ctx, recurring); err != nil {
		return nil, fmt.Errorf("failed to update recurring transaction: %w", err)
	}

	return &UpdateRecurringOutput{Recurring: recurring}, nil
}
