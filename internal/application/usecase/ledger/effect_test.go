package ledger

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

func TestBalanceEffect(t *testing.T) {
	amount := decimal.NewFromFloat(100.50)

	tests := []struct {
		name string
		kind entity.AccountKind
		typ  entity.TransactionType
		want decimal.Decimal
	}{
		{"bank income increases balance", entity.AccountKindBank, entity.TransactionTypeIncome, amount},
		{"bank expense decreases balance", entity.AccountKindBank, entity.TransactionTypeExpense, amount.Neg()},
		{"bank transfer decreases balance", entity.AccountKindBank, entity.TransactionTypeTransfer, amount.Neg()},
		{"credit expense increases debt", entity.AccountKindCredit, entity.TransactionTypeExpense, amount},
		{"credit income decreases debt", entity.AccountKindCredit, entity.TransactionTypeIncome, amount.Neg()},
		{"credit transfer decreases debt", entity.AccountKindCredit, entity.TransactionTypeTransfer, amount.Neg()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BalanceEffect(tt.kind, tt.typ, amount)
			if !got.Equal(tt.want) {
				t.Errorf("BalanceEffect(%s, %s) = %s, want %s", tt.kind, tt.typ, got, tt.want)
			}
		})
	}
}

func TestBalanceEffect_DeleteReversal(t *testing.T) {
	// The reversal of an effect must restore the balance exactly.
	amount := decimal.NewFromFloat(42.13)

	for _, kind := range []entity.AccountKind{entity.AccountKindBank, entity.AccountKindCredit} {
		for _, typ := range []entity.TransactionType{
			entity.TransactionTypeIncome,
			entity.TransactionTypeExpense,
			entity.TransactionTypeTransfer,
		} {
			effect := BalanceEffect(kind, typ, amount)
			if !effect.Add(effect.Neg()).IsZero() {
				t.Errorf("effect %s for %s/%s does not cancel with its negation", effect, kind, typ)
			}
		}
	}
}

func TestIsValidAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   bool
	}{
		{"positive two decimals", decimal.NewFromFloat(10.25), true},
		{"positive integer", decimal.NewFromInt(10), true},
		{"one decimal place", decimal.NewFromFloat(0.1), true},
		{"zero", decimal.Zero, false},
		{"negative", decimal.NewFromFloat(-5.00), false},
		{"three decimal places", decimal.RequireFromString("1.005"), false},
		{"smallest valid", decimal.RequireFromString("0.01"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isValidAmount(tt.amount); got != tt.want {
				t.Errorf("isValidAmount(%s) = %v, want %v", tt.amount, got, tt.want)
			}
		})
	}
}
