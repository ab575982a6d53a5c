package recurrence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/application/usecase/ledger"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// MaxOccurrencesPerRun caps how many occurrences a single record may
// materialize in one catch-up pass. It bounds worst-case latency after long
// downtime; the remainder is picked up by the next pass.
const MaxOccurrencesPerRun = 100

// CatchUpInput represents the input for a catch-up pass. A nil AsOf means
// "now" from the injected clock.
type CatchUpInput struct {
	AsOf *time.Time
}

// CatchUpOutput summarizes a catch-up pass.
type CatchUpOutput struct {
	Materialized int // occurrences posted
	Failed       int // records that hit an error and were skipped
}

// CatchUpUseCase materializes every due occurrence of every active recurring
// transaction up to the as-of date.
//
// Each occurrence posts its transaction and advances the record's schedule in
// one atomic unit, so a retried pass naturally resumes from the correct point
// and never double-posts. Failures are isolated per record: one broken
// recurrence must not block the rest of the schedules.
type CatchUpUseCase struct {
	recurringRepo adapter.RecurringTransactionRepository
	clock         adapter.Clock
}

// NewCatchUpUseCase creates a new CatchUpUseCase instance.
func NewCatchUpUseCase(
	recurringRepo adapter.RecurringTransactionRepository,
	clock adapter.Clock,
) *CatchUpUseCase {
	return &CatchUpUseCase{
		recurringRepo: recurringRepo,
		clock:         clock,
	}
}

// Execute runs one catch-up pass.
func (uc *CatchUpUseCase) Execute(ctx context.Context, input CatchUpInput) (*CatchUpOutput, error) {
	asOf := uc.clock.Now()
	if input.AsOf != nil {
		asOf = *input.AsOf
	}

	due, err := uc.recurringRepo.FindDue(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to select due recurring transactions: %w", err)
	}

	output := &CatchUpOutput{}

	for _, recurring := range due {
		if ctx.Err() != nil {
			// Stop launching new per-record loops; in-flight units have
			// already committed or rolled back whole.
			break
		}

		materialized, err := uc.catchUpRecord(ctx, recurring, asOf)
		output.Materialized += materialized
		if err != nil {
			output.Failed++
			slog.Error("Failed to materialize recurring transaction, skipping record",
				"recurring_transaction_id", recurring.ID,
				"user_id", recurring.UserID,
				"next_process_date", recurring.NextProcessDate,
				"error", err,
			)
		}
	}

	return output, nil
}

// catchUpRecord materializes every due occurrence of one record, bounded by
// MaxOccurrencesPerRun. It returns how many occurrences were posted together
// with the first error encountered, if any.
func (uc *CatchUpUseCase) catchUpRecord(ctx context.Context, recurring *entity.RecurringTransaction, asOf time.Time) (int, error) {
	materialized := 0

	for i := 0; i < MaxOccurrencesPerRun; i++ {
		if recurring.NextProcessDate.After(asOf) {
			break
		}
		if recurring.EndDate != nil && recurring.NextProcessDate.After(*recurring.EndDate) {
			break
		}

		occurrenceDate := recurring.NextProcessDate
		next := NextOccurrence(occurrenceDate, recurring.Frequency)

		transaction := entity.NewTransaction(
			recurring.UserID,
			recurring.AccountID,
			recurring.AccountKind,
			occurrenceDate,
			recurring.Description,
			recurring.Amount,
			recurring.Type,
		)
		transaction.CategoryID = recurring.CategoryID
		transaction.Merchant = recurring.Merchant
		transaction.Tags = recurring.Tags
		transaction.IsRecurring = true
		recurringID := recurring.ID
		transaction.RecurringTransactionID = &recurringID

		delta := ledger.BalanceEffect(recurring.AccountKind, recurring.Type, recurring.Amount)

		err := uc.recurringRepo.MaterializeOccurrence(ctx, recurring, transaction, delta, next)
		if err != nil {
			if errors.Is(err, domainerror.ErrScheduleAlreadyAdvanced) {
				// A concurrent pass owns this record; its occurrences are
				// being handled there.
				slog.Debug("Recurring transaction already advanced by concurrent run",
					"recurring_transaction_id", recurring.ID,
				)
				return materialized, nil
			}
			return materialized, err
		}

		// The schedule only advances after a successful post.
		recurring.LastProcessedDate = &occurrenceDate
		recurring.NextProcessDate = next
		materialized++
	}

	return materialized, nil
}
