package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Frequency represents how often a recurring transaction materializes.
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyAnnually Frequency = "annually"
)

// RecurringTransaction defines a transaction template that is materialized
// into concrete transactions on a schedule.
//
// NextProcessDate is the chronologically next date to materialize. It is
// mutated only by the materialization step, which advances it one Frequency
// step at a time after each successful post.
type RecurringTransaction struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	AccountID         uuid.UUID
	AccountKind       AccountKind
	Amount            decimal.Decimal
	Type              TransactionType // income or expense, transfer is not supported
	Description       string
	Frequency         Frequency
	StartDate         time.Time
	EndDate           *time.Time
	LastProcessedDate *time.Time
	NextProcessDate   time.Time
	CategoryID        *uuid.UUID
	Merchant          string
	Tags              []string
	Notes             string
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewRecurringTransaction creates a new RecurringTransaction entity. The
// caller is responsible for setting NextProcessDate from the schedule rules.
func NewRecurringTransaction(
	userID uuid.UUID,
	accountID uuid.UUID,
	accountKind AccountKind,
	amount decimal.Decimal,
	transactionType TransactionType,
	description string,
	frequency Frequency,
	startDate time.Time,
) *RecurringTransaction {
	now := time.Now().UTC()

	return &RecurringTransaction{
		ID:          uuid.New(),
		UserID:      userID,
		AccountID:   accountID,
		AccountKind: accountKind,
		Amount:      amount,
		Type:        transactionType,
		Description: description,
		Frequency:   frequency,
		StartDate:   startDate,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
