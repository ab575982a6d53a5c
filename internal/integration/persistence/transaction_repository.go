package persistence

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
	"github.com/finance-ledger/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// CreateWithBalanceEffect inserts the transaction and applies its balance
// effect to the owning account in one database transaction. Both writes
// commit or fail together; no partial state is visible to other readers.
func (r *transactionRepository) CreateWithBalanceEffect(ctx context.Context, transaction *entity.Transaction, delta decimal.Decimal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := applyBalanceDelta(tx, transaction.AccountID, transaction.UserID, transaction.AccountKind, delta); err != nil {
			return err
		}
		return tx.Create(model.TransactionFromEntity(transaction)).Error
	})
}

// CreateBatchWithBalanceEffects applies every posting inside a single
// database transaction spanning the whole batch. The first failure rolls
// back everything already applied.
func (r *transactionRepository) CreateBatchWithBalanceEffects(ctx context.Context, postings []adapter.Posting) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, posting := range postings {
			txn := posting.Transaction
			if err := applyBalanceDelta(tx, txn.AccountID, txn.UserID, txn.AccountKind, posting.BalanceDelta); err != nil {
				return err
			}
			if err := tx.Create(model.TransactionFromEntity(txn)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByIDForUser retrieves a transaction by ID, scoped to the owning user.
func (r *transactionRepository) FindByIDForUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByAccount retrieves all transactions posted against an account.
func (r *transactionRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("date DESC, created_at DESC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}

// UpdateWithBalanceEffect persists the transaction's fields and applies delta
// to its account's balance in one database transaction. A zero delta means
// the update touched neither amount nor type, so the balance write is skipped
// entirely.
func (r *transactionRepository) UpdateWithBalanceEffect(ctx context.Context, transaction *entity.Transaction, delta decimal.Decimal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !delta.IsZero() {
			if err := applyBalanceDelta(tx, transaction.AccountID, transaction.UserID, transaction.AccountKind, delta); err != nil {
				return err
			}
		}
		return tx.Save(model.TransactionFromEntity(transaction)).Error
	})
}

// DeleteWithBalanceEffect reverses the transaction's balance effect and
// removes the row in one database transaction. A transaction whose account no
// longer resolves is still removed; the reversal is skipped so the row does
// not get stranded.
func (r *transactionRepository) DeleteWithBalanceEffect(ctx context.Context, transaction *entity.Transaction, delta decimal.Decimal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := applyBalanceDelta(tx, transaction.AccountID, transaction.UserID, transaction.AccountKind, delta)
		if err != nil {
			if !errors.Is(err, domainerror.ErrAccountNotFound) {
				return err
			}
			slog.Warn("Deleting transaction whose account no longer resolves, balance reversal skipped",
				"transaction_id", transaction.ID,
				"account_id", transaction.AccountID,
			)
		}

		result := tx.Delete(&model.TransactionModel{}, "id = ?", transaction.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrTransactionNotFound
		}
		return nil
	})
}
