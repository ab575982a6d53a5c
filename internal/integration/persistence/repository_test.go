package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
	"github.com/finance-ledger/backend/internal/integration/persistence/model"
)

// newTestDB opens a fresh in-memory SQLite database and migrates the schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	db, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}

	if err := db.AutoMigrate(
		&model.AccountModel{},
		&model.TransactionModel{},
		&model.RecurringTransactionModel{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func createBankAccount(t *testing.T, db *gorm.DB, userID uuid.UUID, balance float64) *entity.Account {
	t.Helper()

	account := entity.NewBankAccount(userID, "Checking", decimal.NewFromFloat(balance))
	if err := NewAccountRepository(db).Create(context.Background(), account); err != nil {
		t.Fatalf("failed to create account: %v", err)
	}
	return account
}

func createCreditAccount(t *testing.T, db *gorm.DB, userID uuid.UUID, limit, balance float64) *entity.Account {
	t.Helper()

	account := entity.NewCreditAccount(userID, "Card", decimal.NewFromFloat(limit), decimal.NewFromFloat(balance))
	if err := NewAccountRepository(db).Create(context.Background(), account); err != nil {
		t.Fatalf("failed to create account: %v", err)
	}
	return account
}

func fetchAccount(t *testing.T, db *gorm.DB, id, userID uuid.UUID) *entity.Account {
	t.Helper()

	account, err := NewAccountRepository(db).FindByIDForUser(context.Background(), id, userID)
	if err != nil {
		t.Fatalf("failed to fetch account: %v", err)
	}
	return account
}

func newBankTransaction(userID, accountID uuid.UUID, amount float64, typ entity.TransactionType) *entity.Transaction {
	return entity.NewTransaction(
		userID,
		accountID,
		entity.AccountKindBank,
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		"Test transaction",
		decimal.NewFromFloat(amount),
		typ,
	)
}

func TestTransactionRepository_CreateWithBalanceEffect(t *testing.T) {
	ctx := context.Background()

	t.Run("applies delta to bank balance", func(t *testing.T) {
		db := newTestDB(t)
		userID := uuid.New()
		account := createBankAccount(t, db, userID, 100.00)
		repo := NewTransactionRepository(db)

		txn := newBankTransaction(userID, account.ID, 30.00, entity.TransactionTypeExpense)
		if err := repo.CreateWithBalanceEffect(ctx, txn, decimal.NewFromFloat(-30.00)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := fetchAccount(t, db, account.ID, userID)
		if want := decimal.NewFromFloat(70.00); !got.Balance.Equal(want) {
			t.Errorf("expected balance %s, got %s", want, got.Balance)
		}

		stored, err := repo.FindByIDForUser(ctx, txn.ID, userID)
		if err != nil {
			t.Fatalf("expected transaction stored: %v", err)
		}
		if !stored.Amount.Equal(decimal.NewFromFloat(30.00)) {
			t.Errorf("expected amount 30.00, got %s", stored.Amount)
		}
	})

	t.Run("recomputes available credit on credit accounts", func(t *testing.T) {
		db := newTestDB(t)
		userID := uuid.New()
		account := createCreditAccount(t, db, userID, 1000.00, 200.00)
		repo := NewTransactionRepository(db)

		txn := newBankTransaction(userID, account.ID, 150.00, entity.TransactionTypeExpense)
		txn.AccountKind = entity.AccountKindCredit

		if err := repo.CreateWithBalanceEffect(ctx, txn, decimal.NewFromFloat(150.00)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := fetchAccount(t, db, account.ID, userID)
		if want := decimal.NewFromFloat(350.00); !got.Balance.Equal(want) {
			t.Errorf("expected balance %s, got %s", want, got.Balance)
		}
		if want := decimal.NewFromFloat(650.00); !got.AvailableCredit.Equal(want) {
			t.Errorf("expected available credit %s, got %s", want, got.AvailableCredit)
		}
	})

	t.Run("missing account leaves no transaction row", func(t *testing.T) {
		db := newTestDB(t)
		userID := uuid.New()
		repo := NewTransactionRepository(db)

		txn := newBankTransaction(userID, uuid.New(), 30.00, entity.TransactionTypeExpense)
		err := repo.CreateWithBalanceEffect(ctx, txn, decimal.NewFromFloat(-30.00))
		if !errors.Is(err, domainerror.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}

		if _, err := repo.FindByIDForUser(ctx, txn.ID, userID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Error("expected no transaction row after rollback")
		}
	})

	t.Run("kind mismatch does not resolve the account", func(t *testing.T) {
		db := newTestDB(t)
		userID := uuid.New()
		account := createBankAccount(t, db, userID, 100.00)
		repo := NewTransactionRepository(db)

		txn := newBankTransaction(userID, account.ID, 30.00, entity.TransactionTypeExpense)
		txn.AccountKind = entity.AccountKindCredit

		err := repo.CreateWithBalanceEffect(ctx, txn, decimal.NewFromFloat(30.00))
		if !errors.Is(err, domainerror.ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound for kind mismatch, got %v", err)
		}
	})

	t.Run("other user's account does not resolve", func(t *testing.T) {
		db := newTestDB(t)
		owner := uuid.New()
		account := createBankAccount(t, db, owner, 100.00)
		repo := NewTransactionRepository(db)

		txn := newBankTransaction(uuid.New(), account.ID, 30.00, entity.TransactionTypeExpense)
		err := repo.CreateWithBalanceEffect(ctx, txn, decimal.NewFromFloat(-30.00))
		if !errors.Is(err, domainerror.ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound for foreign account, got %v", err)
		}

		got := fetchAccount(t, db, account.ID, owner)
		if want := decimal.NewFromFloat(100.00); !got.Balance.Equal(want) {
			t.Errorf("expected untouched balance %s, got %s", want, got.Balance)
		}
	})
}

func TestTransactionRepository_CreateBatchWithBalanceEffects(t *testing.T) {
	ctx := context.Background()

	t.Run("commits whole batch", func(t *testing.T) {
		db := newTestDB(t)
		userID := uuid.New()
		account := createBankAccount(t, db, userID, 0)
		repo := NewTransactionRepository(db)

		postings := []adapter.Posting{
			{Transaction: newBankTransaction(userID, account.ID, 100.00, entity.TransactionTypeIncome), BalanceDelta: decimal.NewFromFloat(100.00)},
			{Transaction: newBankTransaction(userID, account.ID, 40.00, entity.TransactionTypeExpense), BalanceDelta: decimal.NewFromFloat(-40.00)},
		}
		if err := repo.CreateBatchWithBalanceEffects(ctx, postings); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := fetchAccount(t, db, account.ID, userID)
		if want := decimal.NewFromFloat(60.00); !got.Balance.Equal(want) {
			t.Errorf("expected balance %s, got %s", want, got.Balance)
		}

		transactions, err := repo.FindByAccount(ctx, account.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(transactions) != 2 {
			t.Errorf("expected 2 transactions, got %d", len(transactions))
		}
	})

	t.Run("one bad posting rolls back the batch", func(t *testing.T) {
		db := newTestDB(t)
		userID := uuid.New()
		account := createBankAccount(t, db, userID, 0)
		repo := NewTransactionRepository(db)

		postings := []adapter.Posting{
			{Transaction: newBankTransaction(userID, account.ID, 100.00, entity.TransactionTypeIncome), BalanceDelta: decimal.NewFromFloat(100.00)},
			{Transaction: newBankTransaction(userID, uuid.New(), 40.00, entity.TransactionTypeExpense), BalanceDelta: decimal.NewFromFloat(-40.00)},
		}
		err := repo.CreateBatchWithBalanceEffects(ctx, postings)
		if !errors.Is(err, domainerror.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}

		got := fetchAccount(t, db, account.ID, userID)
		if !got.Balance.IsZero() {
			t.Errorf("expected balance rolled back to zero, got %s", got.Balance)
		}

		transactions, err := repo.FindByAccount(ctx, account.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(transactions) != 0 {
			t.Errorf("expected no transactions after rollback, got %d", len(transactions))
		}
	})
}

func TestTransactionRepository_UpdateWithBalanceEffect(t *testing.T) {
	ctx := context.Background()

	t.Run("applies delta and persists changes", func(t *testing.T) {
		db := newTestDB(t)
		userID := uuid.New()
		account := createBankAccount(t, db, userID, 100.00)
		repo := NewTransactionRepository(db)

		txn := newBankTransaction(userID, account.ID, 30.00, entity.TransactionTypeExpense)
		if err := repo.CreateWithBalanceEffect(ctx, txn, decimal.NewFromFloat(-30.00)); err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		// Amount grows from 30 to 50: effect moves from -30 to -50.
		txn.Amount = decimal.NewFromFloat(50.00)
		if err := repo.UpdateWithBalanceEffect(ctx, txn, decimal.NewFromFloat(-20.00)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := fetchAccount(t, db, account.ID, userID)
		if want := decimal.NewFromFloat(50.00); !got.Balance.Equal(want) {
			t.Errorf("expected balance %s, got %s", want, got.Balance)
		}

		stored, err := repo.FindByIDForUser(ctx, txn.ID, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !stored.Amount.Equal(decimal.NewFromFloat(50.00)) {
			t.Errorf("expected stored amount 50.00, got %s", stored.Amount)
		}
	})

	t.Run("zero delta skips the balance write", func(t *testing.T) {
		db := newTestDB(t)
		userID := uuid.New()
		account := createBankAccount(t, db, userID, 100.00)
		repo := NewTransactionRepository(db)

		txn := newBankTransaction(userID, account.ID, 30.00, entity.TransactionTypeExpense)
		if err := repo.CreateWithBalanceEffect(ctx, txn, decimal.NewFromFloat(-30.00)); err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		txn.Description = "Renamed"
		if err := repo.UpdateWithBalanceEffect(ctx, txn, decimal.Zero); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := fetchAccount(t, db, account.ID, userID)
		if want := decimal.NewFromFloat(70.00); !got.Balance.Equal(want) {
			t.Errorf("expected balance %s, got %s", want, got.Balance)
		}
	})
}

func TestTransactionRepository_DeleteWithBalanceEffect(t *testing.T) {
	ctx := context.Background()

	t.Run("reverses effect and removes the row", func(t *testing.T) {
		db := newTestDB(t)
		userID := uuid.New()
		account := createBankAccount(t, db, userID, 100.00)
		repo := NewTransactionRepository(db)

		txn := newBankTransaction(userID, account.ID, 30.00, entity.TransactionTypeExpense)
		if err := repo.CreateWithBalanceEffect(ctx, txn, decimal.NewFromFloat(-30.00)); err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		if err := repo.DeleteWithBalanceEffect(ctx, txn, decimal.NewFromFloat(30.00)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := fetchAccount(t, db, account.ID, userID)
		if want := decimal.NewFromFloat(100.00); !got.Balance.Equal(want) {
			t.Errorf("expected balance restored to %s, got %s", want, got.Balance)
		}

		if _, err := repo.FindByIDForUser(ctx, txn.ID, userID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Error("expected transaction removed")
		}
	})

	t.Run("missing account still removes the row", func(t *testing.T) {
		db := newTestDB(t)
		userID := uuid.New()
		account := createBankAccount(t, db, userID, 100.00)
		repo := NewTransactionRepository(db)

		txn := newBankTransaction(userID, account.ID, 30.00, entity.TransactionTypeExpense)
		if err := repo.CreateWithBalanceEffect(ctx, txn, decimal.NewFromFloat(-30.00)); err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		// Drop the account out from under the transaction.
		if err := db.Delete(&model.AccountModel{}, "id = ?", account.ID).Error; err != nil {
			t.Fatalf("failed to drop account: %v", err)
		}

		if err := repo.DeleteWithBalanceEffect(ctx, txn, decimal.NewFromFloat(30.00)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := repo.FindByIDForUser(ctx, txn.ID, userID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Error("expected transaction removed despite missing account")
		}
	})
}

func TestAccountRepository_DeleteIfUnused(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes account without transactions", func(t *testing.T) {
		db := newTestDB(t)
		userID := uuid.New()
		account := createBankAccount(t, db, userID, 100.00)
		repo := NewAccountRepository(db)

		if err := repo.DeleteIfUnused(ctx, account.ID, userID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := repo.FindByIDForUser(ctx, account.ID, userID); !errors.Is(err, domainerror.ErrAccountNotFound) {
			t.Error("expected account removed")
		}
	})

	t.Run("refuses to delete account with transactions", func(t *testing.T) {
		db := newTestDB(t)
		userID := uuid.New()
		account := createBankAccount(t, db, userID, 100.00)
		txnRepo := NewTransactionRepository(db)

		txn := newBankTransaction(userID, account.ID, 30.00, entity.TransactionTypeExpense)
		if err := txnRepo.CreateWithBalanceEffect(ctx, txn, decimal.NewFromFloat(-30.00)); err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		repo := NewAccountRepository(db)
		err := repo.DeleteIfUnused(ctx, account.ID, userID)

		var accErr *domainerror.AccountError
		if !errors.As(err, &accErr) {
			t.Fatalf("expected AccountError, got %v", err)
		}
		if accErr.Code != domainerror.ErrCodeAccountHasTransactions {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeAccountHasTransactions, accErr.Code)
		}
		if accErr.TransactionCount != 1 {
			t.Errorf("expected transaction count 1, got %d", accErr.TransactionCount)
		}

		// Account survives the refused delete.
		if _, err := repo.FindByIDForUser(ctx, account.ID, userID); err != nil {
			t.Errorf("expected account still present: %v", err)
		}
	})
}
