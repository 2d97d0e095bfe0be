package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/networth-backend/internal/domain"
)

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create creates a new transaction together with its history snapshots
func (r *transactionRepository) Create(ctx context.Context, txn *domain.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (id, kind, amount, description, date, is_recurring, frequency, end_date, category)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		txn.ID,
		string(txn.Kind),
		txn.Amount.String(),
		txn.Description,
		txn.Date.String(),
		txn.IsRecurring,
		string(txn.Frequency),
		endDateValue(txn.EndDate),
		string(txn.Category),
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	for _, snapshot := range txn.History {
		if err := insertSnapshot(ctx, tx, txn.ID, snapshot); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction creation: %w", err)
	}

	return nil
}

// GetByID retrieves a transaction with its snapshot history
func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `
		SELECT id, kind, amount, description, date, is_recurring, frequency, end_date, category
		FROM transactions
		WHERE id = $1
	`

	txn, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction not found: %w", err)
		}
		return nil, err
	}

	if err := r.loadHistory(ctx, txn); err != nil {
		return nil, err
	}

	return txn, nil
}

// ListByKind retrieves all transactions of the given kind, in creation order
func (r *transactionRepository) ListByKind(ctx context.Context, kind domain.TransactionKind) ([]*domain.Transaction, error) {
	query := `
		SELECT id, kind, amount, description, date, is_recurring, frequency, end_date, category
		FROM transactions
		WHERE kind = $1
		ORDER BY created_at, id
	`
	return r.list(ctx, query, string(kind))
}

// List retrieves all transactions regardless of kind, in creation order
func (r *transactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	query := `
		SELECT id, kind, amount, description, date, is_recurring, frequency, end_date, category
		FROM transactions
		ORDER BY created_at, id
	`
	return r.list(ctx, query)
}

// Update persists the transaction's current fields and rewrites nothing in
// the history table beyond appending the newest snapshot
func (r *transactionRepository) Update(ctx context.Context, txn *domain.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE transactions
		 SET amount = $2, description = $3, date = $4, is_recurring = $5, frequency = $6, end_date = $7, category = $8
		 WHERE id = $1`,
		txn.ID,
		txn.Amount.String(),
		txn.Description,
		txn.Date.String(),
		txn.IsRecurring,
		string(txn.Frequency),
		endDateValue(txn.EndDate),
		string(txn.Category),
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return errors.New("transaction not found")
	}

	if len(txn.History) > 0 {
		latest := txn.History[len(txn.History)-1]
		if err := insertSnapshot(ctx, tx, txn.ID, latest); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction update: %w", err)
	}

	return nil
}

// Delete removes the transaction; its history cascades with it
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return errors.New("transaction not found")
	}
	return nil
}

func (r *transactionRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]*domain.Transaction, 0)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			// Skip individual malformed records rather than failing the
			// whole listing.
			slog.Warn("skipping malformed transaction row", "error", err)
			continue
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transaction rows: %w", err)
	}

	for _, txn := range txns {
		if err := r.loadHistory(ctx, txn); err != nil {
			return nil, err
		}
	}

	return txns, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var txn domain.Transaction
	var amountStr, dateStr, endDateStr string

	err := row.Scan(
		&txn.ID,
		&txn.Kind,
		&amountStr,
		&txn.Description,
		&dateStr,
		&txn.IsRecurring,
		&txn.Frequency,
		&endDateStr,
		&txn.Category,
	)
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}
	txn.Amount = amount

	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date: %w", err)
	}
	txn.Date = date

	if endDateStr != "" {
		endDate, err := domain.ParseDate(endDateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse end_date: %w", err)
		}
		txn.EndDate = endDate
	}

	return &txn, nil
}

func insertSnapshot(ctx context.Context, e execer, txnID uuid.UUID, snapshot domain.TransactionSnapshot) error {
	_, err := e.ExecContext(ctx,
		`INSERT INTO transaction_history (transaction_id, amount, description, date, is_recurring, frequency, end_date, category, change_type, recorded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		txnID,
		snapshot.Amount.String(),
		snapshot.Description,
		snapshot.Date.String(),
		snapshot.IsRecurring,
		string(snapshot.Frequency),
		endDateValue(snapshot.EndDate),
		string(snapshot.Category),
		string(snapshot.ChangeType),
		snapshot.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert history snapshot: %w", err)
	}
	return nil
}

func (r *transactionRepository) loadHistory(ctx context.Context, txn *domain.Transaction) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT amount, description, date, is_recurring, frequency, end_date, category, change_type, recorded_at
		 FROM transaction_history
		 WHERE transaction_id = $1
		 ORDER BY seq`,
		txn.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to load transaction history: %w", err)
	}
	defer rows.Close()

	txn.History = txn.History[:0]
	for rows.Next() {
		var snapshot domain.TransactionSnapshot
		var amountStr, dateStr, endDateStr string
		var recordedAt time.Time

		err := rows.Scan(
			&amountStr,
			&snapshot.Description,
			&dateStr,
			&snapshot.IsRecurring,
			&snapshot.Frequency,
			&endDateStr,
			&snapshot.Category,
			&snapshot.ChangeType,
			&recordedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to scan history row: %w", err)
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			slog.Warn("skipping malformed history snapshot", "transaction_id", txn.ID, "error", err)
			continue
		}
		date, err := domain.ParseDate(dateStr)
		if err != nil {
			slog.Warn("skipping malformed history snapshot", "transaction_id", txn.ID, "error", err)
			continue
		}

		snapshot.Amount = amount
		snapshot.Date = date
		snapshot.RecordedAt = recordedAt
		if endDateStr != "" {
			if endDate, err := domain.ParseDate(endDateStr); err == nil {
				snapshot.EndDate = endDate
			}
		}

		txn.History = append(txn.History, snapshot)
	}
	return rows.Err()
}

// endDateValue maps the zero Date to the empty string (open-ended)
func endDateValue(d domain.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}
