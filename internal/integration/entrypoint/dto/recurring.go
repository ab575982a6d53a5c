package dto

import (
	"time"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// CreateRecurringTransactionRequest represents the request body for creating
// a recurring transaction definition.
type CreateRecurringTransactionRequest struct {
	AccountID   string   `json:"account_id" binding:"required"`
	AccountKind string   `json:"account_kind" binding:"required,oneof=bank credit"`
	Amount      float64  `json:"amount" binding:"required"`
	Type        string   `json:"type" binding:"required,oneof=income expense"`
	Description string   `json:"description" binding:"required,min=1,max=255"`
	Frequency   string   `json:"frequency" binding:"required,oneof=daily weekly biweekly monthly quarterly annually"`
	StartDate   string   `json:"start_date" binding:"required"`
	EndDate     *string  `json:"end_date,omitempty"`
	CategoryID  *string  `json:"category_id,omitempty"`
	Merchant    string   `json:"merchant,omitempty" binding:"omitempty,max=255"`
	Tags        []string `json:"tags,omitempty"`
	Notes       string   `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// UpdateRecurringTransactionRequest represents the request body for updating
// a recurring transaction definition.
type UpdateRecurringTransactionRequest struct {
	Amount       *float64 `json:"amount,omitempty"`
	Type         *string  `json:"type,omitempty" binding:"omitempty,oneof=income expense"`
	Description  *string  `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	Frequency    *string  `json:"frequency,omitempty" binding:"omitempty,oneof=daily weekly biweekly monthly quarterly annually"`
	StartDate    *string  `json:"start_date,omitempty"`
	EndDate      *string  `json:"end_date,omitempty"`
	ClearEndDate bool     `json:"clear_end_date,omitempty"`
	CategoryID   *string  `json:"category_id,omitempty"`
	Merchant     *string  `json:"merchant,omitempty" binding:"omitempty,max=255"`
	Tags         []string `json:"tags,omitempty"`
	Notes        *string  `json:"notes,omitempty" binding:"omitempty,max=1000"`
	IsActive     *bool    `json:"is_active,omitempty"`
}

// RecurringTransactionResponse represents a recurring transaction definition
// in API responses.
type RecurringTransactionResponse struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	AccountID         string    `json:"account_id"`
	AccountKind       string    `json:"account_kind"`
	Amount            string    `json:"amount"`
	Type              string    `json:"type"`
	Description       string    `json:"description"`
	Frequency         string    `json:"frequency"`
	StartDate         string    `json:"start_date"`
	EndDate           *string   `json:"end_date,omitempty"`
	LastProcessedDate *string   `json:"last_processed_date,omitempty"`
	NextProcessDate   string    `json:"next_process_date"`
	CategoryID        *string   `json:"category_id,omitempty"`
	Merchant          string    `json:"merchant,omitempty"`
	Tags              []string  `json:"tags,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// RecurringTransactionListResponse represents the response for listing
// recurring transaction definitions.
type RecurringTransactionListResponse struct {
	RecurringTransactions []RecurringTransactionResponse `json:"recurring_transactions"`
}

// ToRecurringTransactionResponse converts a domain RecurringTransaction
// entity to its response DTO.
func ToRecurringTransactionResponse(recurring *entity.RecurringTransaction) RecurringTransactionResponse {
	response := RecurringTransactionResponse{
		ID:              recurring.ID.String(),
		UserID:          recurring.UserID.String(),
		AccountID:       recurring.AccountID.String(),
		AccountKind:     string(recurring.AccountKind),
		Amount:          recurring.Amount.StringFixed(2),
		Type:            string(recurring.Type),
		Description:     recurring.Description,
		Frequency:       string(recurring.Frequency),
		StartDate:       recurring.StartDate.Format("2006-01-02"),
		NextProcessDate: recurring.NextProcessDate.Format("2006-01-02"),
		Merchant:        recurring.Merchant,
		Tags:            recurring.Tags,
		Notes:           recurring.Notes,
		IsActive:        recurring.IsActive,
		CreatedAt:       recurring.CreatedAt,
		UpdatedAt:       recurring.UpdatedAt,
	}

	if recurring.EndDate != nil {
		d := recurring.EndDate.Format("2006-01-02")
		response.EndDate = &d
	}
	if recurring.LastProcessedDate != nil {
		d := recurring.LastProcessedDate.Format("2006-01-02")
		response.LastProcessedDate = &d
	}
	if recurring.CategoryID != nil {
		id := recurring.CategoryID.String()
		response.CategoryID = &id
	}

	return response
}

// ToRecurringTransactionListResponse converts a slice of recurring
// transactions to its list response DTO.
func ToRecurringTransactionListResponse(recurrings []*entity.RecurringTransaction) RecurringTransactionListResponse {
	responses := make([]RecurringTransactionResponse, len(recurrings))
	for i, recurring := range recurrings {
		responses[i] = ToRecurringTransactionResponse(recurring)
	}
	return RecurringTransactionListResponse{RecurringTransactions: responses}
}
