// Package projection runs the fixed monthly compounding simulation behind
// the net-worth projection chart.
package projection

import (
	"errors"

	"github.com/shopspring/decimal"
)

const (
	// MinHorizonYears and MaxHorizonYears bound the simulation horizon.
	MinHorizonYears = 1
	MaxHorizonYears = 50
)

var (
	hundred      = decimal.NewFromInt(100)
	monthsInYear = decimal.NewFromInt(12)
	one          = decimal.NewFromInt(1)
)

// Point is the projected net worth at the end of a calendar year
type Point struct {
	Year  int
	Value decimal.Decimal // rounded to 2 decimals
}

// Project simulates monthly compounded growth with a fixed monthly
// contribution over a whole-year horizon.
//
// monthlyRate = annualGrowthRate / 100 / 12. Each simulated month adds the
// contribution first and applies growth to the new balance, so the current
// month's contribution compounds too. This is a deterministic fixed-point
// simulation, not a closed-form annuity: the running value is kept at full
// precision and rounded only when a year's point is emitted.
//
// The first emitted point is "now": startYear with the current net worth
// unchanged, followed by one point per completed year of the horizon.
func Project(currentNetWorth, annualGrowthRate, monthlyContribution decimal.Decimal, horizonYears, startYear int) ([]Point, error) {
	if horizonYears < MinHorizonYears || horizonYears > MaxHorizonYears {
		return nil, errors.New("projection horizon must be between 1 and 50 years")
	}
	if annualGrowthRate.LessThan(decimal.Zero) {
		return nil, errors.New("annual growth rate cannot be negative")
	}
	if monthlyContribution.LessThan(decimal.Zero) {
		return nil, errors.New("monthly contribution cannot be negative")
	}

	monthlyRate := annualGrowthRate.Div(hundred).Div(monthsInYear)
	growthFactor := one.Add(monthlyRate)

	points := make([]Point, 0, horizonYears+1)
	points = append(points, Point{Year: startYear, Value: currentNetWorth.Round(2)})

	value := currentNetWorth
	for year := 1; year <= horizonYears; year++ {
		for month := 0; month < 12; month++ {
			value = value.Add(monthlyContribution)
			value = value.Mul(growthFactor)
		}
		points = append(points, Point{Year: startYear + year, Value: value.Round(2)})
	}

	return points, nil
}
