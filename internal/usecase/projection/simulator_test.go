package projection

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_ZeroRateIsPlainAccumulation(t *testing.T) {
	points, err := Project(
		decimal.NewFromInt(1000),
		decimal.Zero,
		decimal.NewFromInt(100),
		1, 2025,
	)

	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, 2025, points[0].Year)
	assert.Equal(t, "1000.00", points[0].Value.StringFixed(2))
	assert.Equal(t, 2026, points[1].Year)
	assert.Equal(t, "2200.00", points[1].Value.StringFixed(2))
}

func TestProject_FirstPointIsCurrentNetWorth(t *testing.T) {
	current := decimal.RequireFromString("12345.678")

	points, err := Project(current, decimal.NewFromInt(7), decimal.NewFromInt(500), 10, 2025)

	require.NoError(t, err)
	require.Len(t, points, 11)
	assert.Equal(t, 2025, points[0].Year)
	assert.Equal(t, "12345.68", points[0].Value.StringFixed(2))
	assert.Equal(t, 2035, points[len(points)-1].Year)
}

func TestProject_GrowthCompoundsMonthly(t *testing.T) {
	// 12% annual => 1% monthly. One month from 1000 with a 100 contribution:
	// (1000 + 100) * 1.01 = 1111. Repeat for 12 months and compare against a
	// hand-rolled reference of the same recurrence.
	rate := decimal.NewFromInt(12)
	contribution := decimal.NewFromInt(100)

	points, err := Project(decimal.NewFromInt(1000), rate, contribution, 1, 2025)
	require.NoError(t, err)

	expected := decimal.NewFromInt(1000)
	factor := decimal.NewFromInt(1).Add(decimal.RequireFromString("0.01"))
	for i := 0; i < 12; i++ {
		expected = expected.Add(contribution).Mul(factor)
	}
	assert.Equal(t, expected.Round(2).StringFixed(2), points[1].Value.StringFixed(2))
}

func TestProject_RunningValueNotRoundedBetweenYears(t *testing.T) {
	// A rate chosen so intermediate balances carry long fractions. Projecting
	// two years in one call must equal continuing a one-year projection at
	// full precision, which fails if the running value were rounded at the
	// year boundary.
	rate := decimal.RequireFromString("5.5")
	contribution := decimal.RequireFromString("333.33")
	start := decimal.RequireFromString("10000.01")

	twoYears, err := Project(start, rate, contribution, 2, 2025)
	require.NoError(t, err)

	factor := decimal.NewFromInt(1).Add(rate.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(12)))
	value := start
	for i := 0; i < 24; i++ {
		value = value.Add(contribution).Mul(factor)
	}
	assert.Equal(t, value.Round(2).StringFixed(2), twoYears[2].Value.StringFixed(2))
}

func TestProject_HorizonBounds(t *testing.T) {
	current := decimal.NewFromInt(1000)
	rate := decimal.NewFromInt(5)
	contribution := decimal.NewFromInt(100)

	_, err := Project(current, rate, contribution, 0, 2025)
	assert.Error(t, err)

	_, err = Project(current, rate, contribution, 51, 2025)
	assert.Error(t, err)

	points, err := Project(current, rate, contribution, 50, 2025)
	assert.NoError(t, err)
	assert.Len(t, points, 51)
}

func TestProject_RejectsNegativeInputs(t *testing.T) {
	current := decimal.NewFromInt(1000)

	_, err := Project(current, decimal.NewFromInt(-1), decimal.NewFromInt(100), 5, 2025)
	assert.Error(t, err)

	_, err = Project(current, decimal.NewFromInt(5), decimal.NewFromInt(-100), 5, 2025)
	assert.Error(t, err)
}

func TestProject_NegativeNetWorthAllowed(t *testing.T) {
	points, err := Project(decimal.NewFromInt(-500), decimal.Zero, decimal.NewFromInt(100), 1, 2025)

	require.NoError(t, err)
	assert.Equal(t, "-500.00", points[0].Value.StringFixed(2))
	assert.Equal(t, "700.00", points[1].Value.StringFixed(2))
}
