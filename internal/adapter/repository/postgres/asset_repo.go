package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/networth-backend/internal/domain"
)

// assetRepository implements domain.AssetRepository
type assetRepository struct {
	db *DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *DB) domain.AssetRepository {
	return &assetRepository{db: db}
}

// Create creates a new asset together with its seed valuation history
func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO assets (id, name, asset_type, initial_value) VALUES ($1, $2, $3, $4)`,
		asset.ID,
		asset.Name,
		string(asset.Type),
		asset.InitialValue.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}

	for _, point := range asset.ValueHistory {
		if err := insertValuation(ctx, tx, asset.ID, point); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit asset creation: %w", err)
	}

	return nil
}

// GetByID retrieves an asset with its valuation history and contributions
func (r *assetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	query := `
		SELECT id, name, asset_type, initial_value
		FROM assets
		WHERE id = $1
	`

	var asset domain.Asset
	var initialValueStr string

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&asset.ID,
		&asset.Name,
		&asset.Type,
		&initialValueStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("asset not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get asset by ID: %w", err)
	}

	initialValue, err := decimal.NewFromString(initialValueStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse initial_value: %w", err)
	}
	asset.InitialValue = initialValue

	if err := r.loadHistory(ctx, &asset); err != nil {
		return nil, err
	}

	return &asset, nil
}

// List retrieves all assets with their histories, in creation order
func (r *assetRepository) List(ctx context.Context) ([]*domain.Asset, error) {
	query := `
		SELECT id, name, asset_type, initial_value
		FROM assets
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	assets := make([]*domain.Asset, 0)
	for rows.Next() {
		var asset domain.Asset
		var initialValueStr string

		if err := rows.Scan(&asset.ID, &asset.Name, &asset.Type, &initialValueStr); err != nil {
			return nil, fmt.Errorf("failed to scan asset row: %w", err)
		}

		initialValue, err := decimal.NewFromString(initialValueStr)
		if err != nil {
			slog.Warn("skipping asset with malformed initial value", "asset_id", asset.ID, "error", err)
			continue
		}
		asset.InitialValue = initialValue

		assets = append(assets, &asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate asset rows: %w", err)
	}

	for _, asset := range assets {
		if err := r.loadHistory(ctx, asset); err != nil {
			return nil, err
		}
	}

	return assets, nil
}

// AppendValuation appends a valuation point to an asset's history
func (r *assetRepository) AppendValuation(ctx context.Context, assetID uuid.UUID, point domain.ValuationPoint) error {
	return insertValuation(ctx, r.db.DB, assetID, point)
}

// AddContribution records a contribution and its derived valuation point atomically
func (r *assetRepository) AddContribution(ctx context.Context, assetID uuid.UUID, contribution domain.Contribution, point domain.ValuationPoint) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO asset_contributions (asset_id, amount, date) VALUES ($1, $2, $3)`,
		assetID,
		contribution.Amount.String(),
		contribution.Date.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert contribution: %w", err)
	}

	if err := insertValuation(ctx, tx, assetID, point); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit contribution: %w", err)
	}

	return nil
}

// Delete removes the asset; valuations and contributions cascade
func (r *assetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return errors.New("asset not found")
	}
	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func insertValuation(ctx context.Context, e execer, assetID uuid.UUID, point domain.ValuationPoint) error {
	_, err := e.ExecContext(ctx,
		`INSERT INTO asset_valuations (asset_id, value, date, kind) VALUES ($1, $2, $3, $4)`,
		assetID,
		point.Value.String(),
		point.Date.String(),
		string(point.Kind),
	)
	if err != nil {
		return fmt.Errorf("failed to insert valuation point: %w", err)
	}
	return nil
}

// loadHistory populates ValueHistory, Contributions and the derived
// CurrentValue. Rows with unparsable values or dates are skipped with a
// warning instead of failing the load.
func (r *assetRepository) loadHistory(ctx context.Context, asset *domain.Asset) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT value, date, kind FROM asset_valuations WHERE asset_id = $1 ORDER BY seq`,
		asset.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to load valuation history: %w", err)
	}
	defer rows.Close()

	asset.ValueHistory = asset.ValueHistory[:0]
	for rows.Next() {
		var valueStr, dateStr, kind string
		if err := rows.Scan(&valueStr, &dateStr, &kind); err != nil {
			return fmt.Errorf("failed to scan valuation row: %w", err)
		}

		value, err := decimal.NewFromString(valueStr)
		if err != nil {
			slog.Warn("skipping malformed valuation point", "asset_id", asset.ID, "error", err)
			continue
		}
		date, err := domain.ParseDate(dateStr)
		if err != nil {
			slog.Warn("skipping malformed valuation point", "asset_id", asset.ID, "error", err)
			continue
		}

		asset.ValueHistory = append(asset.ValueHistory, domain.ValuationPoint{
			Value: value,
			Date:  date,
			Kind:  domain.ValuationKind(kind),
		})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate valuation rows: %w", err)
	}

	crows, err := r.db.QueryContext(ctx,
		`SELECT amount, date FROM asset_contributions WHERE asset_id = $1 ORDER BY seq`,
		asset.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to load contributions: %w", err)
	}
	defer crows.Close()

	asset.Contributions = asset.Contributions[:0]
	for crows.Next() {
		var amountStr, dateStr string
		if err := crows.Scan(&amountStr, &dateStr); err != nil {
			return fmt.Errorf("failed to scan contribution row: %w", err)
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			slog.Warn("skipping malformed contribution", "asset_id", asset.ID, "error", err)
			continue
		}
		date, err := domain.ParseDate(dateStr)
		if err != nil {
			slog.Warn("skipping malformed contribution", "asset_id", asset.ID, "error", err)
			continue
		}

		asset.Contributions = append(asset.Contributions, domain.Contribution{Amount: amount, Date: date})
	}
	if err := crows.Err(); err != nil {
		return fmt.Errorf("failed to iterate contribution rows: %w", err)
	}

	if latest, ok := asset.LatestValuation(); ok {
		asset.CurrentValue = latest.Value
	}

	return nil
}
