package dto

import (
	"time"

	"github.com/finance-ledger/backend/internal/application/usecase/ledger"
)

// CreateTransactionRequest represents the request body for posting a transaction.
type CreateTransactionRequest struct {
	AccountID   string   `json:"account_id" binding:"required"`
	AccountKind string   `json:"account_kind" binding:"required,oneof=bank credit"`
	Date        string   `json:"date" binding:"required"`
	Description string   `json:"description" binding:"required,min=1,max=255"`
	Amount      float64  `json:"amount" binding:"required"`
	Type        string   `json:"type" binding:"required,oneof=income expense transfer"`
	CategoryID  *string  `json:"category_id,omitempty"`
	Merchant    string   `json:"merchant,omitempty" binding:"omitempty,max=255"`
	Tags        []string `json:"tags,omitempty"`
}

// UpdateTransactionRequest represents the request body for a transaction update.
type UpdateTransactionRequest struct {
	Date          *string  `json:"date,omitempty"`
	Description   *string  `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	Amount        *float64 `json:"amount,omitempty"`
	Type          *string  `json:"type,omitempty" binding:"omitempty,oneof=income expense transfer"`
	CategoryID    *string  `json:"category_id,omitempty"`
	ClearCategory bool     `json:"clear_category,omitempty"`
	Merchant      *string  `json:"merchant,omitempty" binding:"omitempty,max=255"`
	Tags          []string `json:"tags,omitempty"`
}

// BulkCreateTransactionsRequest represents the request body for bulk posting.
type BulkCreateTransactionsRequest struct {
	Transactions []CreateTransactionRequest `json:"transactions" binding:"required,min=1,dive"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID                     string    `json:"id"`
	UserID                 string    `json:"user_id"`
	AccountID              string    `json:"account_id"`
	AccountKind            string    `json:"account_kind"`
	Date                   string    `json:"date"`
	Description            string    `json:"description"`
	Amount                 string    `json:"amount"`
	Type                   string    `json:"type"`
	CategoryID             *string   `json:"category_id,omitempty"`
	Merchant               string    `json:"merchant,omitempty"`
	Tags                   []string  `json:"tags,omitempty"`
	IsRecurring            bool      `json:"is_recurring"`
	RecurringTransactionID *string   `json:"recurring_transaction_id,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// BulkCreateTransactionsResponse represents the response for bulk posting.
type BulkCreateTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	CreatedCount int                   `json:"created_count"`
}

// ToTransactionResponse converts a use case transaction output to a TransactionResponse DTO.
func ToTransactionResponse(transaction *ledger.TransactionOutput) TransactionResponse {
	response := TransactionResponse{
		ID:          transaction.ID.String(),
		UserID:      transaction.UserID.String(),
		AccountID:   transaction.AccountID.String(),
		AccountKind: string(transaction.AccountKind),
		Date:        transaction.Date.Format("2006-01-02"),
		Description: transaction.Description,
		Amount:      transaction.Amount.StringFixed(2),
		Type:        string(transaction.Type),
		Merchant:    transaction.Merchant,
		Tags:        transaction.Tags,
		IsRecurring: transaction.IsRecurring,
		CreatedAt:   transaction.CreatedAt,
		UpdatedAt:   transaction.UpdatedAt,
	}

	if transaction.CategoryID != nil {
		id := transaction.CategoryID.String()
		response.CategoryID = &id
	}
	if transaction.RecurringTransactionID != nil {
		id := transaction.RecurringTransactionID.String()
		response.RecurringTransactionID = &id
	}

	return response
}

// ToBulkCreateTransactionsResponse converts bulk posting output to its response DTO.
func ToBulkCreateTransactionsResponse(transactions []*ledger.TransactionOutput) BulkCreateTransactionsResponse {
	responses := make([]TransactionResponse, len(transactions))
	for i, transaction := range transactions {
		responses[i] = ToTransactionResponse(transaction)
	}
	return BulkCreateTransactionsResponse{
		Transactions: responses,
		CreatedCount: len(responses),
	}
}
