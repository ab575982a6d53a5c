// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// AccountModel represents the accounts table in the database.
type AccountModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind            string          `gorm:"type:varchar(10);not null;index"`
	Name            string          `gorm:"type:varchar(100);not null"`
	Balance         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreditLimit     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	AvailableCredit decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for the AccountModel.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToEntity converts an AccountModel to a domain Account entity.
func (m *AccountModel) ToEntity() *entity.Account {
	return &entity.Account{
		ID:              m.ID,
		UserID:          m.UserID,
		Kind:            entity.AccountKind(m.Kind),
		Name:            m.Name,
		Balance:         m.Balance,
		CreditLimit:     m.CreditLimit,
		AvailableCredit: m.AvailableCredit,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// AccountFromEntity creates an AccountModel from a domain Account entity.
func AccountFromEntity(account *entity.Account) *AccountModel {
	return &AccountModel{
		ID:              account.ID,
		UserID:          account.UserID,
		Kind:            string(account.Kind),
		Name:            account.Name,
		Balance:         account.Balance,
		CreditLimit:     account.CreditLimit,
		AvailableCredit: account.AvailableCredit,
		CreatedAt:       account.CreatedAt,
		UpdatedAt:       account.UpdatedAt,
	}
}
