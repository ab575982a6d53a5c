package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
	domainerror "github.com/finance-ledger/backend/internal/domain/error"
)

// fakeTransactionRepository is an in-memory TransactionRepository that tracks
// one balance per account, so tests can assert on the applied deltas.
type fakeTransactionRepository struct {
	transactions map[uuid.UUID]*entity.Transaction
	balances     map[uuid.UUID]decimal.Decimal

	// missingAccounts simulates accounts that do not resolve.
	missingAccounts map[uuid.UUID]bool

	// failBatchAt makes the batch fail after this many postings applied.
	failBatchAt int

	createCalls []decimal.Decimal
	updateCalls []decimal.Decimal
	deleteCalls []decimal.Decimal
}

func newFakeTransactionRepository() *fakeTransactionRepository {
	return &fakeTransactionRepository{
		transactions:    make(map[uuid.UUID]*entity.Transaction),
		balances:        make(map[uuid.UUID]decimal.Decimal),
		missingAccounts: make(map[uuid.UUID]bool),
		failBatchAt:     -1,
	}
}

func (f *fakeTransactionRepository) CreateWithBalanceEffect(_ context.Context, transaction *entity.Transaction, delta decimal.Decimal) error {
	if f.missingAccounts[transaction.AccountID] {
		return domainerror.ErrAccountNotFound
	}
	f.createCalls = append(f.createCalls, delta)
	f.balances[transaction.AccountID] = f.balances[transaction.AccountID].Add(delta)
	f.transactions[transaction.ID] = transaction
	return nil
}

func (f *fakeTransactionRepository) CreateBatchWithBalanceEffects(_ context.Context, postings []adapter.Posting) error {
	for i, posting := range postings {
		if i == f.failBatchAt || f.missingAccounts[posting.Transaction.AccountID] {
			// Roll back what this batch already applied.
			for j := 0; j < i; j++ {
				prev := postings[j]
				f.balances[prev.Transaction.AccountID] = f.balances[prev.Transaction.AccountID].Sub(prev.BalanceDelta)
				delete(f.transactions, prev.Transaction.ID)
			}
			return domainerror.ErrAccountNotFound
		}
		f.balances[posting.Transaction.AccountID] = f.balances[posting.Transaction.AccountID].Add(posting.BalanceDelta)
		f.transactions[posting.Transaction.ID] = posting.Transaction
	}
	return nil
}

func (f *fakeTransactionRepository) FindByIDForUser(_ context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Transaction, error) {
	transaction, ok := f.transactions[id]
	if !ok || transaction.UserID != userID {
		return nil, domainerror.ErrTransactionNotFound
	}
	clone := *transaction
	return &clone, nil
}

func (f *fakeTransactionRepository) FindByAccount(_ context.Context, accountID uuid.UUID) ([]*entity.Transaction, error) {
	var result []*entity.Transaction
	for _, transaction := range f.transactions {
		if transaction.AccountID == accountID {
			result = append(result, transaction)
		}
	}
	return result, nil
}

func (f *fakeTransactionRepository) UpdateWithBalanceEffect(_ context.Context, transaction *entity.Transaction, delta decimal.Decimal) error {
	if !delta.IsZero() && f.missingAccounts[transaction.AccountID] {
		return domainerror.ErrAccountNotFound
	}
	f.updateCalls = append(f.updateCalls, delta)
	f.balances[transaction.AccountID] = f.balances[transaction.AccountID].Add(delta)
	f.transactions[transaction.ID] = transaction
	return nil
}

func (f *fakeTransactionRepository) DeleteWithBalanceEffect(_ context.Context, transaction *entity.Transaction, delta decimal.Decimal) error {
	if _, ok := f.transactions[transaction.ID]; !ok {
		return domainerror.ErrTransactionNotFound
	}
	f.deleteCalls = append(f.deleteCalls, delta)
	if !f.missingAccounts[transaction.AccountID] {
		f.balances[transaction.AccountID] = f.balances[transaction.AccountID].Add(delta)
	}
	delete(f.transactions, transaction.ID)
	return nil
}
