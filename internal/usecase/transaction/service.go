package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/networth-backend/internal/domain"
)

// CreateTransactionInput represents the input for creating an income or expense
type CreateTransactionInput struct {
	Kind        domain.TransactionKind
	Amount      decimal.Decimal
	Description string
	Date        domain.Date
	IsRecurring bool
	Frequency   domain.Frequency
	EndDate     domain.Date // zero means open-ended
	Category    domain.ExpenseCategory
}

// UpdateTransactionInput represents the editable field set of a transaction
type UpdateTransactionInput struct {
	Amount      decimal.Decimal
	Description string
	Date        domain.Date
	IsRecurring bool
	Frequency   domain.Frequency
	EndDate     domain.Date
	Category    domain.ExpenseCategory
}

// Service handles the transaction write path. Creation seeds the history
// with an Initial Entry snapshot; every edit appends an Update snapshot;
// deletion removes the record and its history outright.
type Service struct {
	TransactionRepo domain.TransactionRepository

	// now is the clock used for snapshot timestamps; tests may replace it
	now func() time.Time
}

// NewService creates a new transaction Service instance
func NewService(transactionRepo domain.TransactionRepository) *Service {
	return &Service{
		TransactionRepo: transactionRepo,
		now:             time.Now,
	}
}

// CreateTransaction validates and persists a new transaction with its
// Initial Entry history snapshot
func (s *Service) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	tx := &domain.Transaction{
		ID:          uuid.New(),
		Kind:        input.Kind,
		Amount:      input.Amount,
		Description: input.Description,
		Date:        input.Date,
		IsRecurring: input.IsRecurring,
		Frequency:   input.Frequency,
		EndDate:     input.EndDate,
		Category:    input.Category,
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	tx.History = []domain.TransactionSnapshot{
		tx.Snapshot(domain.ChangeTypeInitialEntry, s.now()),
	}

	if err := s.TransactionRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// UpdateTransaction applies the edited field set and appends an Update
// snapshot to the transaction's history
func (s *Service) UpdateTransaction(ctx context.Context, id uuid.UUID, input UpdateTransactionInput) (*domain.Transaction, error) {
	tx, err := s.TransactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tx.Amount = input.Amount
	tx.Description = input.Description
	tx.Date = input.Date
	tx.IsRecurring = input.IsRecurring
	tx.Frequency = input.Frequency
	tx.EndDate = input.EndDate
	tx.Category = input.Category

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	tx.History = append(tx.History, tx.Snapshot(domain.ChangeTypeUpdate, s.now()))

	if err := s.TransactionRepo.Update(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// DeleteTransaction removes the transaction record entirely
func (s *Service) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return s.TransactionRepo.Delete(ctx, id)
}

// ListIncomes retrieves all income transactions
func (s *Service) ListIncomes(ctx context.Context) ([]*domain.Transaction, error) {
	return s.TransactionRepo.ListByKind(ctx, domain.TransactionKindIncome)
}

// ListExpenses retrieves all expense transactions
func (s *Service) ListExpenses(ctx context.Context) ([]*domain.Transaction, error) {
	return s.TransactionRepo.ListByKind(ctx, domain.TransactionKindExpense)
}
