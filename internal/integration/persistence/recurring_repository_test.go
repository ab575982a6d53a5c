package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

func seedRecurring(t *testing.T, db *gorm.DB, userID, accountID uuid.UUID, nextProcessDate time.Time) *entity.RecurringTransaction {
	t.Helper()

	recurring := entity.NewRecurringTransaction(
		userID,
		accountID,
		entity.AccountKindBank,
		decimal.NewFromFloat(100.00),
		entity.TransactionTypeExpense,
		"Rent",
		entity.FrequencyMonthly,
		nextProcessDate,
	)
	recurring.NextProcessDate = nextProcessDate

	repo := NewRecurringTransactionRepository(db)
	if err := repo.Create(context.Background(), recurring); err != nil {
		t.Fatalf("failed to create recurring transaction: %v", err)
	}

	// Read back so the in-memory schedule matches the stored representation.
	stored, err := repo.FindByIDForUser(context.Background(), recurring.ID, userID)
	if err != nil {
		t.Fatalf("failed to read back recurring transaction: %v", err)
	}
	return stored
}

func TestRecurringTransactionRepository_FindDue(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	userID := uuid.New()
	account := createBankAccount(t, db, userID, 0)
	repo := NewRecurringTransactionRepository(db)

	asOf := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	due := seedRecurring(t, db, userID, account.ID, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	dueToday := seedRecurring(t, db, userID, account.ID, asOf)
	seedRecurring(t, db, userID, account.ID, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))

	inactive := seedRecurring(t, db, userID, account.ID, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	inactive.IsActive = false
	if err := repo.Update(ctx, inactive); err != nil {
		t.Fatalf("failed to deactivate: %v", err)
	}

	ended := seedRecurring(t, db, userID, account.ID, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))
	endDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	ended.EndDate = &endDate
	if err := repo.Update(ctx, ended); err != nil {
		t.Fatalf("failed to set end date: %v", err)
	}

	got, err := repo.FindDue(ctx, asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 due schedules, got %d", len(got))
	}
	if got[0].ID != due.ID {
		t.Errorf("expected earliest schedule first, got %s", got[0].ID)
	}
	if got[1].ID != dueToday.ID {
		t.Errorf("expected schedule due today second, got %s", got[1].ID)
	}
}

func TestRecurringTransactionRepository_MaterializeOccurrence(t *testing.T) {
	ctx := context.Background()

	t.Run("advances schedule and posts the occurrence", func(t *testing.T) {
		db := newTestDB(t)
		userID := uuid.New()
		account := createBankAccount(t, db, userID, 500.00)
		repo := NewRecurringTransactionRepository(db)

		recurring := seedRecurring(t, db, userID, account.ID, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
		nextProcessDate := time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC)

		txn := entity.NewTransaction(
			userID,
			account.ID,
			entity.AccountKindBank,
			recurring.NextProcessDate,
			recurring.Description,
			recurring.Amount,
			recurring.Type,
		)
		txn.IsRecurring = true
		txn.RecurringTransactionID = &recurring.ID

		err := repo.MaterializeOccurrence(ctx, recurring, txn, decimal.NewFromFloat(-100.00), nextProcessDate)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		stored, err := repo.FindByIDForUser(ctx, recurring.ID, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !stored.NextProcessDate.Equal(nextProcessDate) {
			t.Errorf("expected next process date %s, got %s", nextProcessDate, stored.NextProcessDate)
		}
		if stored.LastProcessedDate == nil || !stored.LastProcessedDate.Equal(recurring.NextProcessDate) {
			t.Errorf("expected last processed date %s, got %v", recurring.NextProcessDate, stored.LastProcessedDate)
		}

		gotAccount := fetchAccount(t, db, account.ID, userID)
		if want := decimal.NewFromFloat(400.00); !gotAccount.Balance.Equal(want) {
			t.Errorf("expected balance %s, got %s", want, gotAccount.Balance)
		}

		storedTxn, err := NewTransactionRepository(db).FindByIDForUser(ctx, txn.ID, userID)
		if err != nil {
			t.Fatalf("expected generated transaction stored: %v", err)
		}
		if !storedTxn.IsRecurring {
			t.Error("expected generated transaction flagged as recurring")
		}
		if storedTxn.RecurringTransactionID == nil || *storedTxn.RecurringTransactionID != recurring.ID {
			t.Error("expected generated transaction to reference the schedule")
		}
	})

	t.Run("stale schedule loses the race and commits nothing", func(t *testing.T) {
		db := newTestDB(t)
		userID := uuid.New()
		account := createBankAccount(t, db, userID, 500.00)
		repo := NewRecurringTransactionRepository(db)

		recurring := seedRecurring(t, db, userID, account.ID, time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC))

		// A stale snapshot still holding the previous occurrence date.
		stale := *recurring
		stale.NextProcessDate = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

		txn := entity.NewTransaction(
			userID,
			account.ID,
			entity.AccountKindBank,
			stale.NextProcessDate,
			stale.Description,
			stale.Amount,
			stale.Type,
		)
		txn.IsRecurring = true
		txn.RecurringTransactionID = &recurring.ID

		err := repo.MaterializeOccurrence(ctx, &stale, txn, decimal.NewFromFloat(-100.00), time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC))
		if !errors.Is(err, domainerror.ErrScheduleAlreadyAdvanced) {
			t.Fatalf("expected ErrScheduleAlreadyAdvanced, got %v", err)
		}

		gotAccount := fetchAccount(t, db, account.ID, userID)
		if want := decimal.NewFromFloat(500.00); !gotAccount.Balance.Equal(want) {
			t.Errorf("expected untouched balance %s, got %s", want, gotAccount.Balance)
		}
		if _, err := NewTransactionRepository(db).FindByIDForUser(ctx, txn.ID, userID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Error("expected no transaction committed by the losing run")
		}
	})

	t.Run("missing account rolls back the schedule advance", func(t *testing.T) {
		db := newTestDB(t)
		userID := uuid.New()
		repo := NewRecurringTransactionRepository(db)

		recurring := seedRecurring(t, db, userID, uuid.New(), time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))

		txn := entity.NewTransaction(
			userID,
			recurring.AccountID,
			entity.AccountKindBank,
			recurring.NextProcessDate,
			recurring.Description,
			recurring.Amount,
			recurring.Type,
		)

		err := repo.MaterializeOccurrence(ctx, recurring, txn, decimal.NewFromFloat(-100.00), time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC))
		if !errors.Is(err, domainerror.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}

		stored, err := repo.FindByIDForUser(ctx, recurring.ID, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !stored.NextProcessDate.Equal(recurring.NextProcessDate) {
			t.Error("expected schedule advance rolled back")
		}
		if stored.LastProcessedDate != nil {
			t.Error("expected last processed date rolled back")
		}
	})
}

func TestRecurringTransactionRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	userID := uuid.New()
	account := createBankAccount(t, db, userID, 0)
	repo := NewRecurringTransactionRepository(db)

	recurring := seedRecurring(t, db, userID, account.ID, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))

	t.Run("other user's schedule is not visible", func(t *testing.T) {
		if err := repo.Delete(ctx, recurring.ID, uuid.New()); !errors.Is(err, domainerror.ErrRecurringNotFound) {
			t.Errorf("expected ErrRecurringNotFound, got %v", err)
		}
	})

	t.Run("owner deletes the schedule", func(t *testing.T) {
		if err := repo.Delete(ctx, recurring.ID, userID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := repo.FindByIDForUser(ctx, recurring.ID, userID); !errors.Is(err, domainerror.ErrRecurringNotFound) {
			t.Error("expected schedule removed")
		}
	})
}
