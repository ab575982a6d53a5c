// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
	"github.com/finance-ledger/backend/internal/integration/persistence/model"
)

// applyBalanceDelta adjusts an account's balance by delta in a single SQL
// statement, so the read-modify-write happens under the row lock the UPDATE
// itself takes and two concurrent postings to the same account serialize
// instead of losing one update. For credit accounts the derived
// available_credit is recomputed in the same statement.
//
// Must be called inside an open transaction. Returns ErrAccountNotFound when
// no row matches the id, user, and kind.
func applyBalanceDelta(
	tx *gorm.DB,
	accountID uuid.UUID,
	userID uuid.UUID,
	kind entity.AccountKind,
	delta decimal.Decimal,
) error {
	updates := map[string]interface{}{
		"balance":    gorm.Expr("balance + ?", delta),
		"updated_at": time.Now().UTC(),
	}
	if kind == entity.AccountKindCredit {
		// UPDATE evaluates every right-hand side against the pre-update row,
		// so this sees the old balance plus the delta.
		updates["available_credit"] = gorm.Expr("credit_limit - (balance + ?)", delta)
	}

	result := tx.Model(&model.AccountModel{}).
		Where("id = ? AND user_id = ? AND kind = ?", accountID, userID, string(kind)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAccountNotFound
	}

	return nil
}
