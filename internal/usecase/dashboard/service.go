// Package dashboard reduces the income and expense collections into the
// monthly summary consumed by the dashboard: filtered lists, totals and
// expense breakdowns.
package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/networth-backend/internal/domain"
	"github.com/simaogato/networth-backend/internal/usecase/recurrence"
)

// Breakdown labels for the expense type grouping
const (
	TypeRecurring = "Recurring"
	TypeOneOff    = "One-Off"
)

// BreakdownEntry is one group of a breakdown, reduced to its summed amount
type BreakdownEntry struct {
	Label  string
	Amount decimal.Decimal
}

// MonthlySummary is the aggregate for one calendar month
type MonthlySummary struct {
	Year          int
	Month         time.Month
	Incomes       []*domain.Transaction // active in the month, sorted descending by date
	Expenses      []*domain.Transaction // active in the month, sorted descending by date
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Balance       decimal.Decimal // income - expenses
	ByCategory    []BreakdownEntry
	ByType        []BreakdownEntry
}

// Summarize filters the income and expense collections down to the records
// active in the target month and reduces them into totals and breakdowns.
//
// Each record is matched independently through the recurrence evaluator.
// Sums always use the raw amounts, with no conversion. Breakdowns are sorted
// descending by amount; equal amounts keep the insertion order of their
// first occurrence, so the output is deterministic. Inputs are not mutated.
func Summarize(incomes, expenses []*domain.Transaction, target domain.YearMonth) MonthlySummary {
	summary := MonthlySummary{Year: target.Year, Month: target.Month}

	summary.Incomes = filterActive(incomes, target)
	summary.Expenses = filterActive(expenses, target)

	summary.TotalIncome = sumAmounts(summary.Incomes)
	summary.TotalExpenses = sumAmounts(summary.Expenses)
	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpenses)

	summary.ByCategory = breakdown(summary.Expenses, func(tx *domain.Transaction) string {
		return string(tx.Category)
	})
	summary.ByType = breakdown(summary.Expenses, func(tx *domain.Transaction) string {
		if tx.IsRecurring {
			return TypeRecurring
		}
		return TypeOneOff
	})

	return summary
}

// AvailableYears returns the sorted set of years the dashboard can select:
// the current year plus its neighbors, so the default selection is never
// empty, and every year touched by a transaction's start or end date, so
// historical and future recurring ranges remain reachable.
func AvailableYears(txs []*domain.Transaction, currentYear int) []int {
	seen := map[int]struct{}{
		currentYear - 1: {},
		currentYear:     {},
		currentYear + 1: {},
	}
	for _, tx := range txs {
		if tx == nil {
			continue
		}
		if !tx.Date.IsZero() {
			seen[tx.Date.Year] = struct{}{}
		}
		if !tx.EndDate.IsZero() {
			seen[tx.EndDate.Year] = struct{}{}
		}
	}

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

func filterActive(txs []*domain.Transaction, target domain.YearMonth) []*domain.Transaction {
	active := make([]*domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if recurrence.ActiveInMonth(tx, target) {
			active = append(active, tx)
		}
	}
	// Descending by date; stable so same-date records keep input order.
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Date.After(active[j].Date)
	})
	return active
}

func sumAmounts(txs []*domain.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	return total
}

// breakdown groups transactions by a label and sums their amounts.
// Groups are emitted in first-occurrence order, then stably sorted
// descending by amount, which makes first occurrence the tie-break.
func breakdown(txs []*domain.Transaction, labelOf func(*domain.Transaction) string) []BreakdownEntry {
	index := make(map[string]int)
	entries := make([]BreakdownEntry, 0)

	for _, tx := range txs {
		label := labelOf(tx)
		i, ok := index[label]
		if !ok {
			i = len(entries)
			index[label] = i
			entries = append(entries, BreakdownEntry{Label: label})
		}
		entries[i].Amount = entries[i].Amount.Add(tx.Amount)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Amount.GreaterThan(entries[j].Amount)
	})
	return entries
}

// Service derives monthly summaries from the persisted transaction collections
type Service struct {
	TransactionRepo domain.TransactionRepository
}

// NewService creates a new dashboard Service instance
func NewService(transactionRepo domain.TransactionRepository) *Service {
	return &Service{TransactionRepo: transactionRepo}
}

// GetMonthlySummary loads the current transaction snapshot and summarizes
// the target month
func (s *Service) GetMonthlySummary(ctx context.Context, target domain.YearMonth) (MonthlySummary, error) {
	incomes, err := s.TransactionRepo.ListByKind(ctx, domain.TransactionKindIncome)
	if err != nil {
		return MonthlySummary{}, fmt.Errorf("failed to list incomes: %w", err)
	}

	expenses, err := s.TransactionRepo.ListByKind(ctx, domain.TransactionKindExpense)
	if err != nil {
		return MonthlySummary{}, fmt.Errorf("failed to list expenses: %w", err)
	}

	return Summarize(incomes, expenses, target), nil
}

// GetAvailableYears loads every transaction and returns the selectable years
func (s *Service) GetAvailableYears(ctx context.Context, currentYear int) ([]int, error) {
	txs, err := s.TransactionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return AvailableYears(txs, currentYear), nil
}
