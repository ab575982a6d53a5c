package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID                     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID                 uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID              uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountKind            string          `gorm:"type:varchar(10);not null"`
	Date                   time.Time       `gorm:"type:date;not null;index"`
	Description            string          `gorm:"type:varchar(255);not null"`
	Amount                 decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type                   string          `gorm:"type:varchar(10);not null;index"`
	CategoryID             *uuid.UUID      `gorm:"type:uuid;index"`
	InvestmentID           *uuid.UUID      `gorm:"type:uuid"`
	Merchant               string          `gorm:"type:varchar(120)"`
	Tags                   pq.StringArray  `gorm:"type:text[]"`
	IsRecurring            bool            `gorm:"default:false"`
	RecurringTransactionID *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt              time.Time       `gorm:"not null"`
	UpdatedAt              time.Time       `gorm:"not null"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:                     m.ID,
		UserID:                 m.UserID,
		AccountID:              m.AccountID,
		AccountKind:            entity.AccountKind(m.AccountKind),
		Date:                   m.Date,
		Description:            m.Description,
		Amount:                 m.Amount,
		Type:                   entity.TransactionType(m.Type),
		CategoryID:             m.CategoryID,
		InvestmentID:           m.InvestmentID,
		Merchant:               m.Merchant,
		Tags:                   []string(m.Tags),
		IsRecurring:            m.IsRecurring,
		RecurringTransactionID: m.RecurringTransactionID,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:                     transaction.ID,
		UserID:                 transaction.UserID,
		AccountID:              transaction.AccountID,
		AccountKind:            string(transaction.AccountKind),
		Date:                   transaction.Date,
		Description:            transaction.Description,
		Amount:                 transaction.Amount,
		Type:                   string(transaction.Type),
		CategoryID:             transaction.CategoryID,
		InvestmentID:           transaction.InvestmentID,
		Merchant:               transaction.Merchant,
		Tags:                   pq.StringArray(transaction.Tags),
		IsRecurring:            transaction.IsRecurring,
		RecurringTransactionID: transaction.RecurringTransactionID,
		CreatedAt:              transaction.CreatedAt,
		UpdatedAt:              transaction.UpdatedAt,
	}
}
