package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
	"github.com/finance-ledger/backend/internal/integration/persistence/model"
)

// accountRepository implements the adapter.AccountRepository interface.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository instance.
func NewAccountRepository(db *gorm.DB) adapter.AccountRepository {
	return &accountRepository{
		db: db,
	}
}

// Create creates a new account in the database.
func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountModel := model.AccountFromEntity(account)
	result := r.db.WithContext(ctx).Create(accountModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByIDForUser retrieves an account by ID, scoped to the owning user.
func (r *accountRepository) FindByIDForUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Account, error) {
	var accountModel model.AccountModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&accountModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAccountNotFound
		}
		return nil, result.Error
	}
	return accountModel.ToEntity(), nil
}

// FindByUser retrieves all accounts for a given user.
func (r *accountRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error) {
	var accountModels []model.AccountModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&accountModels)
	if result.Error != nil {
		return nil, result.Error
	}

	accounts := make([]*entity.Account, len(accountModels))
	for i, am := range accountModels {
		accounts[i] = am.ToEntity()
	}
	return accounts, nil
}

// DeleteIfUnused deletes the account only when it owns zero transactions.
// Lookup, count, and delete run inside one transaction so the guard cannot
// race with a concurrent posting.
func (r *accountRepository) DeleteIfUnused(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var accountModel model.AccountModel
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&accountModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerror.ErrAccountNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&model.TransactionModel{}).
			Where("account_id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			accountErr := domainerror.NewAccountError(
				domainerror.ErrCodeAccountHasTransactions,
				fmt.Sprintf("cannot delete account with existing transactions, count=%d", count),
				domainerror.ErrAccountHasTransactions,
			)
			accountErr.TransactionCount = count
			return accountErr
		}

		return tx.Delete(&model.AccountModel{}, "id = ?", id).Error
	})
}
