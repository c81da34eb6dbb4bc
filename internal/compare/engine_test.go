package compare

import (
	"context"
	"testing"

	"github.com/rgehrsitz/hpcalc/internal/calculation"
	"github.com/rgehrsitz/hpcalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareEngine_Compare(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	compSet, err := engine.Compare(context.Background(), domain.DefaultConfig(), CompareOptions{
		Templates:  []string{"solar_3kw", "no_grant"},
		ConfigPath: "home.yaml",
	})
	require.NoError(t, err)

	assert.Equal(t, calculation.BaseScenarioName, compSet.BaseScenarioName)
	assert.Equal(t, "home.yaml", compSet.ConfigPath)
	require.NotNil(t, compSet.BaseResult)
	assert.Equal(t, domain.Figure(-824), compSet.BaseResult.LifetimeSavings)

	require.Len(t, compSet.AlternativeResults, 2)

	solar := compSet.AlternativeResults[0]
	assert.Equal(t, "solar_3kw", solar.ScenarioName)
	assert.NotEmpty(t, solar.Description)
	assert.Equal(t, domain.Figure(340), solar.AnnualSavingSmart)
	assert.InDelta(t, 13.2, solar.PaybackYearsSmart.Float64(), 1e-9)
	assert.Equal(t, domain.Figure(2977), solar.LifetimeSavings)
	assert.Equal(t, domain.Figure(173), solar.SavingDiffFromBase)
	assert.Equal(t, domain.Figure(3801), solar.LifetimeDiffFromBase)
	assert.InDelta(t, -13.7, solar.PaybackDiffFromBase.Float64(), 1e-9)

	noGrant := compSet.AlternativeResults[1]
	assert.Equal(t, domain.Figure(12000), noGrant.NetCost)
	assert.False(t, noGrant.RecommendationChanged)

	require.GreaterOrEqual(t, len(compSet.Recommendations), 2)
	assert.Equal(t, "Best Lifetime Savings: solar_3kw adds 3801 over the heat pump's life", compSet.Recommendations[0])
	assert.Equal(t, "Fastest Payback: solar_3kw pays back in 13.2 years (base: 26.9)", compSet.Recommendations[1])
}

func TestCompareEngine_Compare_UnknownTemplate(t *testing.T) {
	engine := NewCompareEngine(nil)

	_, err := engine.Compare(context.Background(), domain.DefaultConfig(), CompareOptions{Templates: []string{"heat_battery"}})

	assert.EqualError(t, err, "template heat_battery not found")
}

func TestCompareEngine_Compare_Cancelled(t *testing.T) {
	engine := NewCompareEngine(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Compare(ctx, domain.DefaultConfig(), CompareOptions{Templates: []string{"no_grant"}})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompareEngine_CompareScenarios(t *testing.T) {
	engine := NewCompareEngine(nil)
	scenarios := []domain.Scenario{
		{Name: "pricey", Overrides: domain.Overrides{HPTariffPrice: domain.Float(0.3)}},
		{Name: "solar", Overrides: domain.Overrides{SolarGeneration: domain.Float(2700)}},
	}

	t.Run("all scenarios", func(t *testing.T) {
		compSet, err := engine.CompareScenarios(context.Background(), domain.DefaultConfig(), scenarios, nil)
		require.NoError(t, err)

		require.Len(t, compSet.AlternativeResults, 2)
		assert.True(t, compSet.AlternativeResults[0].RecommendationChanged)
		assert.Contains(t, compSet.Recommendations, `Recommendation Change: pricey gives "Keep gas boiler for now"`)
	})

	t.Run("selected by name", func(t *testing.T) {
		compSet, err := engine.CompareScenarios(context.Background(), domain.DefaultConfig(), scenarios, []string{"solar"})
		require.NoError(t, err)

		require.Len(t, compSet.AlternativeResults, 1)
		assert.Equal(t, "solar", compSet.AlternativeResults[0].ScenarioName)
		assert.Equal(t, domain.Figure(340), compSet.AlternativeResults[0].AnnualSavingSmart)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := engine.CompareScenarios(context.Background(), domain.DefaultConfig(), scenarios, []string{"wind"})
		assert.EqualError(t, err, "alternative scenario wind not found")
	})
}
