package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind separates incomes from expenses
type TransactionKind string

const (
	TransactionKindIncome  TransactionKind = "INCOME"
	TransactionKindExpense TransactionKind = "EXPENSE"
)

// Frequency represents how often a recurring transaction repeats.
// Only Monthly carries month-granularity recurrence semantics.
type Frequency string

const (
	FrequencyMonthly Frequency = "Monthly"
)

// ExpenseCategory represents the spending category of an expense
type ExpenseCategory string

const (
	ExpenseCategoryPersonal ExpenseCategory = "Personal"
	ExpenseCategoryShared   ExpenseCategory = "Shared"
)

// ChangeType tags a history snapshot
type ChangeType string

const (
	ChangeTypeInitialEntry ChangeType = "Initial Entry"
	ChangeTypeUpdate       ChangeType = "Update"
)

// TransactionSnapshot is the full field set of a transaction at a point in
// time. The history log is append-only and insertion-ordered.
type TransactionSnapshot struct {
	Amount      decimal.Decimal
	Description string
	Date        Date
	IsRecurring bool
	Frequency   Frequency
	EndDate     Date // zero means open-ended
	Category    ExpenseCategory
	ChangeType  ChangeType
	RecordedAt  time.Time
}

// Transaction represents an income or expense entity in the domain layer
// Incomes and expenses share the same shape; only expenses carry a category.
// EndDate is only meaningful on recurring transactions; a zero EndDate means
// the recurrence is open-ended. Deleting a transaction removes the whole
// record, history included.
type Transaction struct {
	ID          uuid.UUID
	Kind        TransactionKind
	Amount      decimal.Decimal // Always positive
	Description string
	Date        Date // start date
	IsRecurring bool
	Frequency   Frequency
	EndDate     Date // zero means open-ended
	Category    ExpenseCategory
	History     []TransactionSnapshot
}

// Snapshot captures the transaction's current field set as a history entry
func (t *Transaction) Snapshot(changeType ChangeType, at time.Time) TransactionSnapshot {
	return TransactionSnapshot{
		Amount:      t.Amount,
		Description: t.Description,
		Date:        t.Date,
		IsRecurring: t.IsRecurring,
		Frequency:   t.Frequency,
		EndDate:     t.EndDate,
		Category:    t.Category,
		ChangeType:  changeType,
		RecordedAt:  at,
	}
}

// Validate ensures the transaction adheres to domain rules
// Returns an error if validation fails
// This is the boundary check: the derivation engine itself tolerates
// malformed records and is not relied on to reject them.
func (t *Transaction) Validate() error {
	if t.Kind != TransactionKindIncome && t.Kind != TransactionKindExpense {
		return errors.New("transaction kind must be INCOME or EXPENSE")
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("transaction amount must be positive")
	}

	if t.Date.IsZero() {
		return errors.New("transaction must have a start date")
	}

	if t.IsRecurring && t.Frequency != FrequencyMonthly {
		return errors.New("recurring transaction frequency must be Monthly")
	}

	if !t.EndDate.IsZero() && t.EndDate.Before(t.Date) {
		return errors.New("end date cannot be earlier than start date")
	}

	if t.Kind == TransactionKindExpense {
		if t.Category != ExpenseCategoryPersonal && t.Category != ExpenseCategoryShared {
			return errors.New("expense category must be Personal or Shared")
		}
	} else if t.Category != "" {
		return errors.New("income transaction cannot have an expense category")
	}

	return nil
}
