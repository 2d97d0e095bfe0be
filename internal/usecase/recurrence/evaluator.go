// Package recurrence decides whether a transaction counts as active within
// a given calendar month.
package recurrence

import (
	"github.com/simaogato/networth-backend/internal/domain"
)

// ActiveInMonth reports whether the transaction is active during the target
// calendar month.
//
// Only recurring transactions with a Monthly frequency use month-granularity
// logic: such a transaction is active from the month of its start date
// through the month of its end date inclusive, or open-ended when it has no
// end date. The day component of both dates is discarded, so a recurring
// transaction dated any day in month M is present for the whole of M.
//
// Every other transaction is a one-off: active in exactly the calendar month
// of its own date.
//
// An end date earlier than the start date is not rejected; the comparison
// naturally yields "never active" for every month. Callers are expected to
// validate the range at entry.
func ActiveInMonth(tx *domain.Transaction, target domain.YearMonth) bool {
	if tx == nil {
		return false
	}

	if !tx.IsRecurring || tx.Frequency != domain.FrequencyMonthly {
		return tx.Date.YearMonth() == target
	}

	start := tx.Date.YearMonth()
	if start.After(target) {
		return false
	}
	if tx.EndDate.IsZero() {
		return true
	}
	return !target.After(tx.EndDate.YearMonth())
}
