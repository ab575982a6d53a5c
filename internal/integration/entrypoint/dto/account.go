package dto

import (
	"time"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// CreateAccountRequest represents the request body for account creation.
type CreateAccountRequest struct {
	Kind           string  `json:"kind" binding:"required,oneof=bank credit"`
	Name           string  `json:"name" binding:"required,min=1,max=100"`
	OpeningBalance float64 `json:"opening_balance,omitempty"`
	CreditLimit    float64 `json:"credit_limit,omitempty"`
	CurrentBalance float64 `json:"current_balance,omitempty"`
}

// AccountResponse represents a single account in API responses.
type AccountResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Kind            string    `json:"kind"`
	Name            string    `json:"name"`
	Balance         string    `json:"balance"`
	CreditLimit     string    `json:"credit_limit,omitempty"`
	AvailableCredit string    `json:"available_credit,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AccountListResponse represents the response for listing accounts.
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain Account entity to an AccountResponse DTO.
func ToAccountResponse(account *entity.Account) AccountResponse {
	response := AccountResponse{
		ID:        account.ID.String(),
		UserID:    account.UserID.String(),
		Kind:      string(account.Kind),
		Name:      account.Name,
		Balance:   account.Balance.StringFixed(2),
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}

	if account.Kind == entity.AccountKindCredit {
		response.CreditLimit = account.CreditLimit.StringFixed(2)
		response.AvailableCredit = account.AvailableCredit.StringFixed(2)
	}

	return response
}

// ToAccountListResponse converts a slice of accounts to an AccountListResponse.
func ToAccountListResponse(accounts []*entity.Account) AccountListResponse {
	responses := make([]AccountResponse, len(accounts))
	for i, account := range accounts {
		responses[i] = ToAccountResponse(account)
	}
	return AccountListResponse{Accounts: responses}
}
