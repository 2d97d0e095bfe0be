package domain

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetType represents the type of asset in the system
type AssetType string

const (
	AssetTypeCash       AssetType = "Cash"
	AssetTypeInvestment AssetType = "Investment"
	AssetTypeRealEstate AssetType = "Real Estate"
	AssetTypeVehicle    AssetType = "Vehicle"
	AssetTypeOther      AssetType = "Other"
)

// ValuationKind tags how a valuation point was produced
type ValuationKind string

const (
	// ValuationKindUpdate is a plain value observation (the default).
	ValuationKindUpdate ValuationKind = ""
	// ValuationKindContribution marks a point appended by a contribution.
	ValuationKindContribution ValuationKind = "contribution"
)

// ValuationPoint is a single recorded (date, value) observation for an asset
type ValuationPoint struct {
	Value decimal.Decimal // Always >= 0
	Date  Date
	Kind  ValuationKind
}

// Contribution is money paid into an asset on a given date
type Contribution struct {
	Amount decimal.Decimal // Always positive
	Date   Date
}

// Asset represents an asset entity in the domain layer
// ValueHistory is an append-only, insertion-ordered log: every value update
// or contribution appends exactly one point and never mutates prior entries.
// CurrentValue always reflects the chronologically latest point (date ties
// broken by insertion order).
type Asset struct {
	ID            uuid.UUID
	Name          string
	Type          AssetType
	InitialValue  decimal.Decimal
	CurrentValue  decimal.Decimal
	Contributions []Contribution
	ValueHistory  []ValuationPoint
}

// LatestValuation returns the chronologically latest valuation point,
// with date ties broken by insertion order (the later-inserted point wins).
// Returns false if the asset has no history.
func (a *Asset) LatestValuation() (ValuationPoint, bool) {
	if len(a.ValueHistory) == 0 {
		return ValuationPoint{}, false
	}
	latest := a.ValueHistory[0]
	for _, p := range a.ValueHistory[1:] {
		if !p.Date.Before(latest.Date) {
			latest = p
		}
	}
	return latest, true
}

// Validate ensures the asset adheres to domain rules
// Returns an error if validation fails
func (a *Asset) Validate() error {
	if a.Name == "" {
		return errors.New("asset name cannot be empty")
	}

	switch a.Type {
	case AssetTypeCash, AssetTypeInvestment, AssetTypeRealEstate, AssetTypeVehicle, AssetTypeOther:
	default:
		return errors.New("asset type must be Cash, Investment, Real Estate, Vehicle or Other")
	}

	if a.InitialValue.LessThan(decimal.Zero) {
		return errors.New("asset initial value cannot be negative")
	}

	for _, p := range a.ValueHistory {
		if p.Value.LessThan(decimal.Zero) {
			return errors.New("valuation point value cannot be negative")
		}
		if p.Date.IsZero() {
			return errors.New("valuation point must have a date")
		}
	}

	for _, c := range a.Contributions {
		if c.Amount.LessThanOrEqual(decimal.Zero) {
			return errors.New("contribution amount must be positive")
		}
		if c.Date.IsZero() {
			return errors.New("contribution must have a date")
		}
	}

	return nil
}
