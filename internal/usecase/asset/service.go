package asset

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/networth-backend/internal/domain"
)

// CreateAssetInput represents the input for creating an asset
type CreateAssetInput struct {
	Name         string
	Type         domain.AssetType
	InitialValue decimal.Decimal
	Date         domain.Date // date of the seed valuation
}

// Service handles the asset write path: creation, value updates and
// contributions. Every mutation appends to the asset's valuation history;
// nothing ever rewrites a recorded point.
type Service struct {
	AssetRepo domain.AssetRepository
}

// NewService creates a new asset Service instance
func NewService(assetRepo domain.AssetRepository) *Service {
	return &Service{AssetRepo: assetRepo}
}

// CreateAsset creates an asset seeded with one valuation point, so the
// history is never empty after creation
// Logic:
//  1. Build the asset with CurrentValue = InitialValue
//  2. Seed ValueHistory with a single point at the given date
//  3. Validate and save
func (s *Service) CreateAsset(ctx context.Context, input CreateAssetInput) (*domain.Asset, error) {
	if input.Date.IsZero() {
		return nil, errors.New("asset must have a valuation date")
	}

	asset := &domain.Asset{
		ID:           uuid.New(),
		Name:         input.Name,
		Type:         input.Type,
		InitialValue: input.InitialValue,
		CurrentValue: input.InitialValue,
		ValueHistory: []domain.ValuationPoint{
			{Value: input.InitialValue, Date: input.Date},
		},
	}

	if err := asset.Validate(); err != nil {
		return nil, err
	}

	if err := s.AssetRepo.Create(ctx, asset); err != nil {
		return nil, err
	}

	return asset, nil
}

// UpdateValue records a new value observation for an asset
// Logic: append exactly one valuation point; the asset's current value
// follows from the chronologically latest point.
func (s *Service) UpdateValue(ctx context.Context, assetID uuid.UUID, value decimal.Decimal, date domain.Date) (*domain.Asset, error) {
	if value.LessThan(decimal.Zero) {
		return nil, errors.New("asset value cannot be negative")
	}
	if date.IsZero() {
		return nil, errors.New("valuation date is required")
	}

	asset, err := s.AssetRepo.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	point := domain.ValuationPoint{Value: value, Date: date}
	if err := s.AssetRepo.AppendValuation(ctx, assetID, point); err != nil {
		return nil, err
	}

	asset.ValueHistory = append(asset.ValueHistory, point)
	if latest, ok := asset.LatestValuation(); ok {
		asset.CurrentValue = latest.Value
	}

	return asset, nil
}

// AddContribution records money paid into an asset
// Logic:
//  1. Validate amount is positive
//  2. Append the contribution to the insertion-ordered contribution list
//  3. Append one valuation point tagged "contribution" whose value is the
//     asset's current value plus the contributed amount
func (s *Service) AddContribution(ctx context.Context, assetID uuid.UUID, amount decimal.Decimal, date domain.Date) (*domain.Asset, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("contribution amount must be positive")
	}
	if date.IsZero() {
		return nil, errors.New("contribution date is required")
	}

	asset, err := s.AssetRepo.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	contribution := domain.Contribution{Amount: amount, Date: date}
	point := domain.ValuationPoint{
		Value: asset.CurrentValue.Add(amount),
		Date:  date,
		Kind:  domain.ValuationKindContribution,
	}

	if err := s.AssetRepo.AddContribution(ctx, assetID, contribution, point); err != nil {
		return nil, err
	}

	asset.Contributions = append(asset.Contributions, contribution)
	asset.ValueHistory = append(asset.ValueHistory, point)
	if latest, ok := asset.LatestValuation(); ok {
		asset.CurrentValue = latest.Value
	}

	return asset, nil
}

// ListAssets retrieves all assets with their histories
func (s *Service) ListAssets(ctx context.Context) ([]*domain.Asset, error) {
	return s.AssetRepo.List(ctx)
}

// DeleteAsset removes an asset and its entire valuation history.
// Deleted assets simply disappear from derived series; there are no
// tombstone semantics.
func (s *Service) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	return s.AssetRepo.Delete(ctx, id)
}
