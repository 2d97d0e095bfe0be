package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/networth-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func income(amount int64, date string) *domain.Transaction {
	return &domain.Transaction{
		ID:     uuid.New(),
		Kind:   domain.TransactionKindIncome,
		Amount: decimal.NewFromInt(amount),
		Date:   domain.MustParseDate(date),
	}
}

func expense(amount int64, date string, category domain.ExpenseCategory, recurring bool) *domain.Transaction {
	tx := &domain.Transaction{
		ID:       uuid.New(),
		Kind:     domain.TransactionKindExpense,
		Amount:   decimal.NewFromInt(amount),
		Date:     domain.MustParseDate(date),
		Category: category,
	}
	if recurring {
		tx.IsRecurring = true
		tx.Frequency = domain.FrequencyMonthly
	}
	return tx
}

func TestSummarize_FiltersAndTotals(t *testing.T) {
	target := domain.YearMonth{Year: 2024, Month: time.March}

	incomes := []*domain.Transaction{
		income(3000, "2024-03-01"),
		income(500, "2024-02-01"), // different month, filtered out
	}
	expenses := []*domain.Transaction{
		expense(100, "2024-03-10", domain.ExpenseCategoryPersonal, false),
		expense(400, "2024-01-05", domain.ExpenseCategoryShared, true), // recurring, still active in March
		expense(50, "2024-04-01", domain.ExpenseCategoryPersonal, false),
	}

	summary := Summarize(incomes, expenses, target)

	require.Len(t, summary.Incomes, 1)
	require.Len(t, summary.Expenses, 2)
	assert.Equal(t, "3000.00", summary.TotalIncome.StringFixed(2))
	assert.Equal(t, "500.00", summary.TotalExpenses.StringFixed(2))
	assert.Equal(t, "2500.00", summary.Balance.StringFixed(2))
}

func TestSummarize_ExpensesSortedDescendingByDate(t *testing.T) {
	target := domain.YearMonth{Year: 2024, Month: time.March}

	expenses := []*domain.Transaction{
		expense(10, "2024-03-05", domain.ExpenseCategoryPersonal, false),
		expense(20, "2024-03-20", domain.ExpenseCategoryPersonal, false),
		expense(30, "2024-03-12", domain.ExpenseCategoryPersonal, false),
	}

	summary := Summarize(nil, expenses, target)

	require.Len(t, summary.Expenses, 3)
	assert.Equal(t, "2024-03-20", summary.Expenses[0].Date.String())
	assert.Equal(t, "2024-03-12", summary.Expenses[1].Date.String())
	assert.Equal(t, "2024-03-05", summary.Expenses[2].Date.String())
}

func TestSummarize_CategoryBreakdownSortedByAmount(t *testing.T) {
	target := domain.YearMonth{Year: 2024, Month: time.March}

	expenses := []*domain.Transaction{
		expense(100, "2024-03-01", domain.ExpenseCategoryPersonal, false),
		expense(300, "2024-03-02", domain.ExpenseCategoryShared, false),
		expense(50, "2024-03-03", domain.ExpenseCategoryPersonal, false),
	}

	summary := Summarize(nil, expenses, target)

	require.Len(t, summary.ByCategory, 2)
	assert.Equal(t, "Shared", summary.ByCategory[0].Label)
	assert.Equal(t, "300.00", summary.ByCategory[0].Amount.StringFixed(2))
	assert.Equal(t, "Personal", summary.ByCategory[1].Label)
	assert.Equal(t, "150.00", summary.ByCategory[1].Amount.StringFixed(2))
}

func TestSummarize_TypeBreakdownAndTieBreak(t *testing.T) {
	target := domain.YearMonth{Year: 2024, Month: time.March}

	// Equal totals: first occurrence in the date-descending expense list
	// decides, and the recurring expense has the later date.
	expenses := []*domain.Transaction{
		expense(200, "2024-03-01", domain.ExpenseCategoryPersonal, false),
		expense(200, "2024-03-02", domain.ExpenseCategoryShared, true),
	}

	summary := Summarize(nil, expenses, target)

	require.Len(t, summary.ByType, 2)
	assert.Equal(t, TypeRecurring, summary.ByType[0].Label)
	assert.Equal(t, TypeOneOff, summary.ByType[1].Label)
}

func TestSummarize_BreakdownSumsMatchFilteredList(t *testing.T) {
	target := domain.YearMonth{Year: 2024, Month: time.March}

	expenses := []*domain.Transaction{
		expense(120, "2024-03-01", domain.ExpenseCategoryPersonal, false),
		expense(80, "2024-03-02", domain.ExpenseCategoryShared, true),
		expense(40, "2024-02-15", domain.ExpenseCategoryShared, true), // recurring into March
		expense(999, "2024-09-09", domain.ExpenseCategoryShared, false),
	}

	summary := Summarize(nil, expenses, target)

	byCategory := decimal.Zero
	for _, entry := range summary.ByCategory {
		byCategory = byCategory.Add(entry.Amount)
	}
	byType := decimal.Zero
	for _, entry := range summary.ByType {
		byType = byType.Add(entry.Amount)
	}

	assert.True(t, byCategory.Equal(summary.TotalExpenses))
	assert.True(t, byType.Equal(summary.TotalExpenses))
}

func TestSummarize_EmptyMonth(t *testing.T) {
	summary := Summarize(nil, nil, domain.YearMonth{Year: 2024, Month: time.July})

	assert.Empty(t, summary.Incomes)
	assert.Empty(t, summary.Expenses)
	assert.Equal(t, "0.00", summary.Balance.StringFixed(2))
	assert.Empty(t, summary.ByCategory)
	assert.Empty(t, summary.ByType)
}

func TestAvailableYears(t *testing.T) {
	txs := []*domain.Transaction{
		income(100, "2019-06-01"),
		monthlySpanning("2024-01-01", "2030-12-31"),
		nil,
	}

	years := AvailableYears(txs, 2025)

	assert.Equal(t, []int{2019, 2024, 2025, 2026, 2030}, years)
}

func TestAvailableYears_NoTransactions(t *testing.T) {
	years := AvailableYears(nil, 2025)

	assert.Equal(t, []int{2024, 2025, 2026}, years)
}

func monthlySpanning(start, end string) *domain.Transaction {
	return &domain.Transaction{
		ID:          uuid.New(),
		Kind:        domain.TransactionKindExpense,
		Amount:      decimal.NewFromInt(10),
		Date:        domain.MustParseDate(start),
		EndDate:     domain.MustParseDate(end),
		IsRecurring: true,
		Frequency:   domain.FrequencyMonthly,
		Category:    domain.ExpenseCategoryPersonal,
	}
}

// MockTransactionRepository is a mock implementation of TransactionRepository for testing
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListByKind(ctx context.Context, kind domain.TransactionKind) ([]*domain.Transaction, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_GetMonthlySummary(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockTransactionRepository)
	service := NewService(mockRepo)

	target := domain.YearMonth{Year: 2024, Month: time.March}
	mockRepo.On("ListByKind", ctx, domain.TransactionKindIncome).
		Return([]*domain.Transaction{income(1000, "2024-03-01")}, nil)
	mockRepo.On("ListByKind", ctx, domain.TransactionKindExpense).
		Return([]*domain.Transaction{expense(300, "2024-03-05", domain.ExpenseCategoryShared, false)}, nil)

	summary, err := service.GetMonthlySummary(ctx, target)

	assert.NoError(t, err)
	assert.Equal(t, "700.00", summary.Balance.StringFixed(2))
	mockRepo.AssertExpectations(t)
}
