package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validExpense() Transaction {
	return Transaction{
		ID:       uuid.New(),
		Kind:     TransactionKindExpense,
		Amount:   decimal.NewFromInt(100),
		Date:     MustParseDate("2024-03-01"),
		Category: ExpenseCategoryPersonal,
	}
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(tx *Transaction)
		wantErr bool
	}{
		{
			name:    "valid one-off expense should pass",
			mutate:  func(tx *Transaction) {},
			wantErr: false,
		},
		{
			name: "valid open-ended monthly recurrence should pass",
			mutate: func(tx *Transaction) {
				tx.IsRecurring = true
				tx.Frequency = FrequencyMonthly
			},
			wantErr: false,
		},
		{
			name: "valid income without category should pass",
			mutate: func(tx *Transaction) {
				tx.Kind = TransactionKindIncome
				tx.Category = ""
			},
			wantErr: false,
		},
		{
			name: "unknown kind should fail",
			mutate: func(tx *Transaction) {
				tx.Kind = "TRANSFER"
			},
			wantErr: true,
		},
		{
			name: "zero amount should fail",
			mutate: func(tx *Transaction) {
				tx.Amount = decimal.Zero
			},
			wantErr: true,
		},
		{
			name: "negative amount should fail",
			mutate: func(tx *Transaction) {
				tx.Amount = decimal.NewFromInt(-10)
			},
			wantErr: true,
		},
		{
			name: "missing start date should fail",
			mutate: func(tx *Transaction) {
				tx.Date = Date{}
			},
			wantErr: true,
		},
		{
			name: "recurring without monthly frequency should fail",
			mutate: func(tx *Transaction) {
				tx.IsRecurring = true
			},
			wantErr: true,
		},
		{
			name: "end date before start date should fail",
			mutate: func(tx *Transaction) {
				tx.IsRecurring = true
				tx.Frequency = FrequencyMonthly
				tx.EndDate = MustParseDate("2024-02-01")
			},
			wantErr: true,
		},
		{
			name: "expense without category should fail",
			mutate: func(tx *Transaction) {
				tx.Category = ""
			},
			wantErr: true,
		},
		{
			name: "income with expense category should fail",
			mutate: func(tx *Transaction) {
				tx.Kind = TransactionKindIncome
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validExpense()
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransaction_Snapshot(t *testing.T) {
	tx := validExpense()
	tx.Description = "Groceries"
	tx.IsRecurring = true
	tx.Frequency = FrequencyMonthly
	tx.EndDate = MustParseDate("2024-12-31")

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	snap := tx.Snapshot(ChangeTypeInitialEntry, at)

	assert.True(t, snap.Amount.Equal(tx.Amount))
	assert.Equal(t, "Groceries", snap.Description)
	assert.Equal(t, tx.Date, snap.Date)
	assert.True(t, snap.IsRecurring)
	assert.Equal(t, FrequencyMonthly, snap.Frequency)
	assert.Equal(t, tx.EndDate, snap.EndDate)
	assert.Equal(t, ExpenseCategoryPersonal, snap.Category)
	assert.Equal(t, ChangeTypeInitialEntry, snap.ChangeType)
	assert.Equal(t, at, snap.RecordedAt)
}

func TestTransaction_SnapshotIsDetached(t *testing.T) {
	tx := validExpense()
	snap := tx.Snapshot(ChangeTypeInitialEntry, time.Now())

	tx.Amount = decimal.NewFromInt(999)
	tx.Description = "edited"

	assert.True(t, snap.Amount.Equal(decimal.NewFromInt(100)))
	require.Empty(t, snap.Description)
}
