package sqlite

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

func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO assets (id, name, asset_type, initial_value) VALUES (?, ?, ?, ?)`,
		asset.ID.String(),
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

func (r *assetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, asset_type, initial_value FROM assets WHERE id = ?`,
		id.String(),
	)

	asset, err := scanAsset(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("asset not found: %w", err)
		}
		return nil, err
	}

	if err := r.loadHistory(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (r *assetRepository) List(ctx context.Context) ([]*domain.Asset, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, asset_type, initial_value FROM assets ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	assets := make([]*domain.Asset, 0)
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			slog.Warn("skipping malformed asset row", "error", err)
			continue
		}
		assets = append(assets, asset)
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

func (r *assetRepository) AppendValuation(ctx context.Context, assetID uuid.UUID, point domain.ValuationPoint) error {
	return insertValuation(ctx, r.db.DB, assetID, point)
}

func (r *assetRepository) AddContribution(ctx context.Context, assetID uuid.UUID, contribution domain.Contribution, point domain.ValuationPoint) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO asset_contributions (asset_id, amount, date) VALUES (?, ?, ?)`,
		assetID.String(),
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

func (r *assetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE id = ?`, id.String())
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

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func insertValuation(ctx context.Context, e execer, assetID uuid.UUID, point domain.ValuationPoint) error {
	_, err := e.ExecContext(ctx,
		`INSERT INTO asset_valuations (asset_id, value, date, kind) VALUES (?, ?, ?, ?)`,
		assetID.String(),
		point.Value.String(),
		point.Date.String(),
		string(point.Kind),
	)
	if err != nil {
		return fmt.Errorf("failed to insert valuation point: %w", err)
	}
	return nil
}

func scanAsset(row rowScanner) (*domain.Asset, error) {
	var asset domain.Asset
	var idStr, initialValueStr string

	if err := row.Scan(&idStr, &asset.Name, &asset.Type, &initialValueStr); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse asset id: %w", err)
	}
	asset.ID = id

	initialValue, err := decimal.NewFromString(initialValueStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse initial_value: %w", err)
	}
	asset.InitialValue = initialValue

	return &asset, nil
}

// loadHistory populates ValueHistory, Contributions and the derived
// CurrentValue, skipping rows that fail to parse.
func (r *assetRepository) loadHistory(ctx context.Context, asset *domain.Asset) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT value, date, kind FROM asset_valuations WHERE asset_id = ? ORDER BY seq`,
		asset.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to load valuation history: %w", err)
	}
	defer rows.Close()

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
		`SELECT amount, date FROM asset_contributions WHERE asset_id = ? ORDER BY seq`,
		asset.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to load contributions: %w", err)
	}
	defer crows.Close()

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
