package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
	"github.com/finance-ledger/backend/internal/integration/persistence/model"
)

// recurringTransactionRepository implements the
// adapter.RecurringTransactionRepository interface.
type recurringTransactionRepository struct {
	db *gorm.DB
}

// NewRecurringTransactionRepository creates a new recurring transaction
// repository instance.
func NewRecurringTransactionRepository(db *gorm.DB) adapter.RecurringTransactionRepository {
	return &recurringTransactionRepository{
		db: db,
	}
}

// Create inserts a new recurring transaction schedule.
func (r *recurringTransactionRepository) Create(ctx context.Context, recurring *entity.RecurringTransaction) error {
	return r.db.WithContext(ctx).Create(model.RecurringTransactionFromEntity(recurring)).Error
}

// FindByIDForUser retrieves a recurring transaction by ID, scoped to the
// owning user.
func (r *recurringTransactionRepository) FindByIDForUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.RecurringTransaction, error) {
	var recurringModel model.RecurringTransactionModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&recurringModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRecurringNotFound
		}
		return nil, result.Error
	}
	return recurringModel.ToEntity(), nil
}

// FindByUser retrieves all recurring transactions for a user.
func (r *recurringTransactionRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringTransaction, error) {
	var recurringModels []model.RecurringTransactionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&recurringModels)
	if result.Error != nil {
		return nil, result.Error
	}

	recurrings := make([]*entity.RecurringTransaction, len(recurringModels))
	for i, rm := range recurringModels {
		recurrings[i] = rm.ToEntity()
	}
	return recurrings, nil
}

// FindDue retrieves active schedules whose next process date is on or before
// asOf and whose end date has not passed.
func (r *recurringTransactionRepository) FindDue(ctx context.Context, asOf time.Time) ([]*entity.RecurringTransaction, error) {
	var recurringModels []model.RecurringTransactionModel
	result := r.db.WithContext(ctx).
		Where("is_active = ? AND next_process_date <= ?", true, asOf).
		Where("end_date IS NULL OR end_date >= next_process_date").
		Order("next_process_date ASC").
		Find(&recurringModels)
	if result.Error != nil {
		return nil, result.Error
	}

	recurrings := make([]*entity.RecurringTransaction, len(recurringModels))
	for i, rm := range recurringModels {
		recurrings[i] = rm.ToEntity()
	}
	return recurrings, nil
}

// Update persists changes to a recurring transaction schedule.
func (r *recurringTransactionRepository) Update(ctx context.Context, recurring *entity.RecurringTransaction) error {
	return r.db.WithContext(ctx).Save(model.RecurringTransactionFromEntity(recurring)).Error
}

// Delete removes a recurring transaction schedule, scoped to the owning user.
func (r *recurringTransactionRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.RecurringTransactionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRecurringNotFound
	}
	return nil
}

// MaterializeOccurrence posts one occurrence of a schedule atomically: it
// advances the schedule, applies the balance effect and inserts the generated
// transaction in a single database transaction. The schedule advance is a
// compare-and-set on next_process_date, so two runs racing on the same
// occurrence cannot both post it; the loser gets ErrScheduleAlreadyAdvanced
// and nothing else it did survives.
func (r *recurringTransactionRepository) MaterializeOccurrence(
	ctx context.Context,
	recurring *entity.RecurringTransaction,
	transaction *entity.Transaction,
	delta decimal.Decimal,
	nextProcessDate time.Time,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.RecurringTransactionModel{}).
			Where("id = ? AND next_process_date = ?", recurring.ID, recurring.NextProcessDate).
			Updates(map[string]interface{}{
				"last_processed_date": recurring.NextProcessDate,
				"next_process_date":   nextProcessDate,
				"updated_at":          time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrScheduleAlreadyAdvanced
		}

		if err := applyBalanceDelta(tx, transaction.AccountID, transaction.UserID, transaction.AccountKind, delta); err != nil {
			return err
		}
		return tx.Create(model.TransactionFromEntity(transaction)).Error
	})
}
