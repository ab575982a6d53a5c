package ledger

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

func validPostInput(accountID uuid.UUID) PostTransactionInput {
	return PostTransactionInput{
		UserID:      uuid.New(),
		AccountID:   accountID,
		AccountKind: entity.AccountKindBank,
		Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Groceries",
		Amount:      decimal.NewFromFloat(54.30),
		Type:        entity.TransactionTypeExpense,
	}
}

func TestPostTransactionUseCase_Execute(t *testing.T) {
	t.Run("posts transaction and applies balance effect", func(t *testing.T) {
		repo := newFakeTransactionRepository()
		uc := NewPostTransactionUseCase(repo)

		accountID := uuid.New()
		input := validPostInput(accountID)

		output, err := uc.Execute(context.Background(), input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Transaction.Description != "Groceries" {
			t.Errorf("expected description 'Groceries', got %q", output.Transaction.Description)
		}

		// Bank expense decreases the balance.
		want := decimal.NewFromFloat(-54.30)
		if !repo.balances[accountID].Equal(want) {
			t.Errorf("expected balance %s, got %s", want, repo.balances[accountID])
		}
	})

	t.Run("credit expense increases debt", func(t *testing.T) {
		repo := newFakeTransactionRepository()
		uc := NewPostTransactionUseCase(repo)

		accountID := uuid.New()
		input := validPostInput(accountID)
		input.AccountKind = entity.AccountKindCredit

		if _, err := uc.Execute(context.Background(), input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := decimal.NewFromFloat(54.30)
		if !repo.balances[accountID].Equal(want) {
			t.Errorf("expected balance %s, got %s", want, repo.balances[accountID])
		}
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		repo := newFakeTransactionRepository()
		uc := NewPostTransactionUseCase(repo)

		input := validPostInput(uuid.New())
		input.Amount = decimal.Zero

		_, err := uc.Execute(context.Background(), input)
		if !errors.Is(err, domainerror.ErrInvalidTransactionAmount) {
			t.Errorf("expected ErrInvalidTransactionAmount, got %v", err)
		}
		if len(repo.createCalls) != 0 {
			t.Error("expected no repository write for invalid input")
		}
	})

	t.Run("rejects amount with more than two decimal places", func(t *testing.T) {
		repo := newFakeTransactionRepository()
		uc := NewPostTransactionUseCase(repo)

		input := validPostInput(uuid.New())
		input.Amount = decimal.RequireFromString("10.001")

		_, err := uc.Execute(context.Background(), input)
		if !errors.Is(err, domainerror.ErrInvalidTransactionAmount) {
			t.Errorf("expected ErrInvalidTransactionAmount, got %v", err)
		}
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		repo := newFakeTransactionRepository()
		uc := NewPostTransactionUseCase(repo)

		input := validPostInput(uuid.New())
		input.Type = entity.TransactionType("refund")

		_, err := uc.Execute(context.Background(), input)
		if !errors.Is(err, domainerror.ErrInvalidTransactionType) {
			t.Errorf("expected ErrInvalidTransactionType, got %v", err)
		}
	})

	t.Run("rejects overlong description", func(t *testing.T) {
		repo := newFakeTransactionRepository()
		uc := NewPostTransactionUseCase(repo)

		input := validPostInput(uuid.New())
		input.Description = strings.Repeat("x", MaxDescriptionLength+1)

		_, err := uc.Execute(context.Background(), input)
		if !errors.Is(err, domainerror.ErrDescriptionTooLong) {
			t.Errorf("expected ErrDescriptionTooLong, got %v", err)
		}
	})

	t.Run("maps missing account to coded transaction error", func(t *testing.T) {
		repo := newFakeTransactionRepository()
		uc := NewPostTransactionUseCase(repo)

		accountID := uuid.New()
		repo.missingAccounts[accountID] = true

		_, err := uc.Execute(context.Background(), validPostInput(accountID))

		var txnErr *domainerror.TransactionError
		if !errors.As(err, &txnErr) {
			t.Fatalf("expected TransactionError, got %v", err)
		}
		if txnErr.Code != domainerror.ErrCodeTxnAccountNotFound {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeTxnAccountNotFound, txnErr.Code)
		}
	})
}

func TestBulkPostUseCase_Execute(t *testing.T) {
	userID := uuid.New()

	bulkItem := func(accountID uuid.UUID, amount float64, typ entity.TransactionType) BulkTransactionInput {
		return BulkTransactionInput{
			AccountID:   accountID,
			AccountKind: entity.AccountKindBank,
			Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			Description: "Imported",
			Amount:      decimal.NewFromFloat(amount),
			Type:        typ,
		}
	}

	t.Run("applies all postings to balances", func(t *testing.T) {
		repo := newFakeTransactionRepository()
		uc := NewBulkPostUseCase(repo)

		accountID := uuid.New()
		output, err := uc.Execute(context.Background(), BulkPostInput{
			UserID: userID,
			Inputs: []BulkTransactionInput{
				bulkItem(accountID, 100.00, entity.TransactionTypeIncome),
				bulkItem(accountID, 30.00, entity.TransactionTypeExpense),
				bulkItem(accountID, 20.00, entity.TransactionTypeTransfer),
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Transactions) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(output.Transactions))
		}

		// 100 - 30 - 20
		want := decimal.NewFromInt(50)
		if !repo.balances[accountID].Equal(want) {
			t.Errorf("expected balance %s, got %s", want, repo.balances[accountID])
		}
	})

	t.Run("rejects empty batch", func(t *testing.T) {
		uc := NewBulkPostUseCase(newFakeTransactionRepository())

		_, err := uc.Execute(context.Background(), BulkPostInput{UserID: userID})
		if !errors.Is(err, domainerror.ErrEmptyBatch) {
			t.Errorf("expected ErrEmptyBatch, got %v", err)
		}
	})

	t.Run("invalid item fails before any write", func(t *testing.T) {
		repo := newFakeTransactionRepository()
		uc := NewBulkPostUseCase(repo)

		accountID := uuid.New()
		bad := bulkItem(accountID, 10.00, entity.TransactionTypeExpense)
		bad.Amount = decimal.NewFromInt(-5)

		_, err := uc.Execute(context.Background(), BulkPostInput{
			UserID: userID,
			Inputs: []BulkTransactionInput{
				bulkItem(accountID, 100.00, entity.TransactionTypeIncome),
				bad,
			},
		})
		if err == nil {
			t.Fatal("expected validation error")
		}
		if !strings.Contains(err.Error(), "index 1") {
			t.Errorf("expected error to name the failing index, got %v", err)
		}
		if !repo.balances[accountID].IsZero() {
			t.Errorf("expected untouched balance, got %s", repo.balances[accountID])
		}
	})

	t.Run("mid-batch failure rolls back everything", func(t *testing.T) {
		repo := newFakeTransactionRepository()
		repo.failBatchAt = 2
		uc := NewBulkPostUseCase(repo)

		accountID := uuid.New()
		_, err := uc.Execute(context.Background(), BulkPostInput{
			UserID: userID,
			Inputs: []BulkTransactionInput{
				bulkItem(accountID, 100.00, entity.TransactionTypeIncome),
				bulkItem(accountID, 50.00, entity.TransactionTypeIncome),
				bulkItem(accountID, 25.00, entity.TransactionTypeIncome),
			},
		})
		if err == nil {
			t.Fatal("expected batch error")
		}
		if !repo.balances[accountID].IsZero() {
			t.Errorf("expected balance rolled back to zero, got %s", repo.balances[accountID])
		}
		if len(repo.transactions) != 0 {
			t.Errorf("expected no transactions stored, got %d", len(repo.transactions))
		}
	})
}
