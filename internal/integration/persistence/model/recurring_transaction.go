package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// RecurringTransactionModel represents the recurring_transactions table in the database.
type RecurringTransactionModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountKind       string          `gorm:"type:varchar(10);not null"`
	Amount            decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type              string          `gorm:"type:varchar(10);not null"`
	Description       string          `gorm:"type:varchar(255);not null"`
	Frequency         string          `gorm:"type:varchar(10);not null"`
	StartDate         time.Time       `gorm:"type:date;not null"`
	EndDate           *time.Time      `gorm:"type:date"`
	LastProcessedDate *time.Time      `gorm:"type:date"`
	NextProcessDate   time.Time       `gorm:"type:date;not null;index"`
	CategoryID        *uuid.UUID      `gorm:"type:uuid"`
	Merchant          string          `gorm:"type:varchar(120)"`
	Tags              pq.StringArray  `gorm:"type:text[]"`
	Notes             string          `gorm:"type:text"`
	IsActive          bool            `gorm:"default:true;index"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for the RecurringTransactionModel.
func (RecurringTransactionModel) TableName() string {
	return "recurring_transactions"
}

// ToEntity converts a RecurringTransactionModel to a domain RecurringTransaction entity.
func (m *RecurringTransactionModel) ToEntity() *entity.RecurringTransaction {
	return &entity.RecurringTransaction{
		ID:                m.ID,
		UserID:            m.UserID,
		AccountID:         m.AccountID,
		AccountKind:       entity.AccountKind(m.AccountKind),
		Amount:            m.Amount,
		Type:              entity.TransactionType(m.Type),
		Description:       m.Description,
		Frequency:         entity.Frequency(m.Frequency),
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		LastProcessedDate: m.LastProcessedDate,
		NextProcessDate:   m.NextProcessDate,
		CategoryID:        m.CategoryID,
		Merchant:          m.Merchant,
		Tags:              []string(m.Tags),
		Notes:             m.Notes,
		IsActive:          m.IsActive,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// RecurringTransactionFromEntity creates a RecurringTransactionModel from a
// domain RecurringTransaction entity.
func RecurringTransactionFromEntity(recurring *entity.RecurringTransaction) *RecurringTransactionModel {
	return &RecurringTransactionModel{
		ID:                recurring.ID,
		UserID:            recurring.UserID,
		AccountID:         recurring.AccountID,
		AccountKind:       string(recurring.AccountKind),
		Amount:            recurring.Amount,
		Type:              string(recurring.Type),
		Description:       recurring.Description,
		Frequency:         string(recurring.Frequency),
		StartDate:         recurring.StartDate,
		EndDate:           recurring.EndDate,
		LastProcessedDate: recurring.LastProcessedDate,
		NextProcessDate:   recurring.NextProcessDate,
		CategoryID:        recurring.CategoryID,
		Merchant:          recurring.Merchant,
		Tags:              pq.StringArray(recurring.Tags),
		Notes:             recurring.Notes,
		IsActive:          recurring.IsActive,
		CreatedAt:         recurring.CreatedAt,
		UpdatedAt:         recurring.UpdatedAt,
	}
}
