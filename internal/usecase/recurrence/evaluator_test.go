package recurrence

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/networth-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func monthlyTx(start, end string) *domain.Transaction {
	tx := &domain.Transaction{
		Kind:        domain.TransactionKindIncome,
		Amount:      decimal.NewFromInt(100),
		Date:        domain.MustParseDate(start),
		IsRecurring: true,
		Frequency:   domain.FrequencyMonthly,
	}
	if end != "" {
		tx.EndDate = domain.MustParseDate(end)
	}
	return tx
}

func ym(year int, month time.Month) domain.YearMonth {
	return domain.YearMonth{Year: year, Month: month}
}

func TestActiveInMonth_RecurringWindow(t *testing.T) {
	tx := monthlyTx("2024-03-15", "2024-05-10")

	assert.False(t, ActiveInMonth(tx, ym(2024, time.February)))
	assert.True(t, ActiveInMonth(tx, ym(2024, time.March)))
	assert.True(t, ActiveInMonth(tx, ym(2024, time.April)))
	assert.True(t, ActiveInMonth(tx, ym(2024, time.May)))
	assert.False(t, ActiveInMonth(tx, ym(2024, time.June)))
}

func TestActiveInMonth_RecurringOpenEnded(t *testing.T) {
	tx := monthlyTx("2024-03-15", "")

	assert.False(t, ActiveInMonth(tx, ym(2024, time.February)))
	assert.True(t, ActiveInMonth(tx, ym(2024, time.March)))
	assert.True(t, ActiveInMonth(tx, ym(2030, time.December)))
}

func TestActiveInMonth_RecurringCrossYearComparison(t *testing.T) {
	tx := monthlyTx("2023-11-01", "2024-02-29")

	// Year compares before month: December 2023 is inside the window even
	// though 12 > 2.
	assert.True(t, ActiveInMonth(tx, ym(2023, time.December)))
	assert.True(t, ActiveInMonth(tx, ym(2024, time.January)))
	assert.False(t, ActiveInMonth(tx, ym(2024, time.March)))
}

func TestActiveInMonth_OneOffExactMonthOnly(t *testing.T) {
	tx := &domain.Transaction{
		Kind:   domain.TransactionKindExpense,
		Amount: decimal.NewFromInt(50),
		Date:   domain.MustParseDate("2024-03-15"),
	}

	assert.True(t, ActiveInMonth(tx, ym(2024, time.March)))
	assert.False(t, ActiveInMonth(tx, ym(2024, time.February)))
	assert.False(t, ActiveInMonth(tx, ym(2024, time.April)))
	assert.False(t, ActiveInMonth(tx, ym(2023, time.March)))
}

func TestActiveInMonth_NonMonthlyFrequencyTreatedAsOneOff(t *testing.T) {
	tx := monthlyTx("2024-03-15", "")
	tx.Frequency = "Weekly"

	assert.True(t, ActiveInMonth(tx, ym(2024, time.March)))
	assert.False(t, ActiveInMonth(tx, ym(2024, time.April)))
}

func TestActiveInMonth_InvertedRangeNeverActive(t *testing.T) {
	// End before start is not rejected; it just matches no month.
	tx := monthlyTx("2024-05-10", "2024-03-15")

	for month := time.January; month <= time.December; month++ {
		assert.False(t, ActiveInMonth(tx, ym(2024, month)))
	}
}

func TestActiveInMonth_NilTransaction(t *testing.T) {
	assert.False(t, ActiveInMonth(nil, ym(2024, time.January)))
}
